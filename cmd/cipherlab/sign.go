package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
)

// errSignatureMismatch is returned by verify when the bundle is well formed
// but the signature does not match its contents.
var errSignatureMismatch = errors.New("signature does not match")

func newDigestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "digest FILE",
		Short: "Print the hex digest of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			digest, err := a.lab.DigestFile(data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", digest, args[0])
			return nil
		},
	}
}

func newSignCmd(a *app) *cobra.Command {
	var keyFile, out string
	cmd := &cobra.Command{
		Use:   "sign FILE",
		Short: "Sign a file into a ZIP bundle",
		Long: `Sign digests FILE, signs the digest with the private key and writes a
ZIP archive holding FILE and FILE.sign. The archive defaults to FILE.zip.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := readPrivateKey(keyFile)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			name := filepath.Base(args[0])
			archive, err := a.lab.SignFile(name, data, key)
			if err != nil {
				return err
			}

			if out == "" {
				out = args[0] + ".zip"
			}
			if err := os.WriteFile(out, archive, 0o644); err != nil {
				return fmt.Errorf("write bundle: %w", err)
			}
			jww.INFO.Printf("Signed %s into %s", name, out)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyFile, "key", "k", "", "Private key file")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Bundle path (default FILE.zip)")
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	var keyFile string
	cmd := &cobra.Command{
		Use:   "verify BUNDLE",
		Short: "Verify a signed ZIP bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := readPublicKey(keyFile)
			if err != nil {
				return err
			}
			archive, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read bundle: %w", err)
			}

			b, err := a.lab.OpenBundle(archive)
			if err != nil {
				return err
			}
			ok, err := a.lab.Verify(b.Data, b.Signature, key)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: INVALID\n", b.Name)
				return fmt.Errorf("%s: %w", b.Name, errSignatureMismatch)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", b.Name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyFile, "key", "k", "", "Public key file")
	return cmd
}
