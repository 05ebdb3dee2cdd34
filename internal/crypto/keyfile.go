package crypto

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/vaultsandbox/cipherlab/internal/cipherr"
)

// ExportPublicKey renders k as "RSA <b64(n)> <b64(e)>", each field being the
// base64 of the decimal string.
func ExportPublicKey(k PublicKey) (string, error) {
	if err := k.Validate(); err != nil {
		return "", err
	}
	return exportKey(k.N, k.E), nil
}

// ExportPrivateKey renders k as "RSA <b64(n)> <b64(d)>".
func ExportPrivateKey(k PrivateKey) (string, error) {
	if err := k.Validate(); err != nil {
		return "", err
	}
	return exportKey(k.N, k.D), nil
}

// ImportPublicKey parses the output of ExportPublicKey.
func ImportPublicKey(s string) (PublicKey, error) {
	n, e, err := importKey(s)
	if err != nil {
		return PublicKey{}, err
	}
	k := PublicKey{N: n, E: e}
	if err := k.Validate(); err != nil {
		return PublicKey{}, err
	}
	return k, nil
}

// ImportPrivateKey parses the output of ExportPrivateKey.
func ImportPrivateKey(s string) (PrivateKey, error) {
	n, d, err := importKey(s)
	if err != nil {
		return PrivateKey{}, err
	}
	k := PrivateKey{N: n, D: d}
	if err := k.Validate(); err != nil {
		return PrivateKey{}, err
	}
	return k, nil
}

func exportKey(n, exp *big.Int) string {
	return strings.Join([]string{
		KeyAlgorithm,
		ToBase64([]byte(n.String())),
		ToBase64([]byte(exp.String())),
	}, " ")
}

// importKey reads fields by position: tag, modulus, exponent.
func importKey(s string) (n, exp *big.Int, err error) {
	fields := strings.Split(strings.TrimSpace(s), " ")
	if len(fields) != 3 {
		return nil, nil, fmt.Errorf("%w: expected 3 fields, got %d", cipherr.ErrInvalidKey, len(fields))
	}
	if fields[0] != KeyAlgorithm {
		return nil, nil, fmt.Errorf("%w: unknown algorithm %q", cipherr.ErrInvalidKey, fields[0])
	}

	n, err = decodeField(fields[1], "modulus")
	if err != nil {
		return nil, nil, err
	}
	exp, err = decodeField(fields[2], "exponent")
	if err != nil {
		return nil, nil, err
	}
	return n, exp, nil
}

func decodeField(field, name string) (*big.Int, error) {
	raw, err := DecodeBase64(field)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", cipherr.ErrInvalidKey, name, err)
	}
	v, ok := new(big.Int).SetString(string(raw), 10)
	if !ok || !isDecimal(string(raw)) {
		return nil, fmt.Errorf("%w: %s is not a decimal integer", cipherr.ErrInvalidKey, name)
	}
	return v, nil
}

// isDecimal reports whether s is a non-empty run of ASCII digits. big.Int's
// SetString also accepts a leading sign.
func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
