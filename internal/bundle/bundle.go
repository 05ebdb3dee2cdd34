// Package bundle packs a file and its signature tag into a ZIP archive and
// reads them back.
//
// A bundle holds the original file under its own name and a text entry
// named "<name>.sign". Entries are classified by that suffix alone; when an
// archive carries several entries of one kind, the last one wins.
package bundle

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/vaultsandbox/cipherlab/internal/cipherr"
)

// SignatureSuffix names the signature entry of a bundle.
const SignatureSuffix = ".sign"

// Bundle is the content of a signed archive.
type Bundle struct {
	// Name is the original file name.
	Name string
	// Data is the original file content.
	Data []byte
	// Signature is the signature tag stored in Name + SignatureSuffix.
	Signature string
}

// Pack writes name and name+SignatureSuffix into a new ZIP archive.
func Pack(name string, data []byte, signature string) ([]byte, error) {
	if name == "" || strings.HasSuffix(name, "/") {
		return nil, fmt.Errorf("%w: bundle entry name %q", cipherr.ErrInvalidOptions, name)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if err := writeEntry(zw, name, data); err != nil {
		return nil, err
	}
	if err := writeEntry(zw, name+SignatureSuffix, []byte(signature)); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write entry %s: %w", name, err)
	}
	return nil
}

// Unpack reads a bundle. It returns a *cipherr.BundleError when either the
// original file or the signature entry is missing.
func Unpack(archive []byte) (*Bundle, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	var original, signature *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if strings.HasSuffix(f.Name, SignatureSuffix) {
			signature = f
		} else {
			original = f
		}
	}

	if signature == nil {
		return nil, &cipherr.BundleError{Missing: "signature entry (*" + SignatureSuffix + ")"}
	}
	if original == nil {
		return nil, &cipherr.BundleError{Missing: "original file"}
	}

	data, err := readEntry(original)
	if err != nil {
		return nil, err
	}
	sig, err := readEntry(signature)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Name:      original.Name,
		Data:      data,
		Signature: string(sig),
	}, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read entry %s: %w", f.Name, err)
	}
	return data, nil
}
