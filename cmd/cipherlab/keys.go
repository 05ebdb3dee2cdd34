package main

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/vaultsandbox/cipherlab"
)

const (
	publicKeyExt  = ".pub"
	privateKeyExt = ".priv"
)

func newKeysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate and derive RSA key pairs",
	}
	cmd.AddCommand(newKeysGenerateCmd(a), newKeysDeriveCmd(a))
	return cmd
}

func newKeysGenerateCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a key pair from two random probable primes",
		Long: `Generate draws two distinct probable primes of --prime-bits bits and
writes the exported keys to <out>.pub and <out>.priv. Without --out both
keys are printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jww.INFO.Printf("Generating key pair with %d-bit primes", a.params.PrimeBits)
			kp, err := a.lab.GenerateKeyPair()
			if err != nil {
				return err
			}
			jww.DEBUG.Printf("Modulus is %d bits, e = %s", kp.N.BitLen(), kp.E)
			return a.writeKeyPair(cmd, kp, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Path prefix for the .pub and .priv files")
	return cmd
}

func newKeysDeriveCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "derive P Q",
		Short: "Derive a key pair from two known primes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := new(big.Int).SetString(args[0], 10)
			if !ok {
				return fmt.Errorf("%w: p is not a decimal integer", cipherlab.ErrInvalidKey)
			}
			q, ok := new(big.Int).SetString(args[1], 10)
			if !ok {
				return fmt.Errorf("%w: q is not a decimal integer", cipherlab.ErrInvalidKey)
			}
			kp, err := a.lab.KeyPairFromPrimes(p, q)
			if err != nil {
				return err
			}
			return a.writeKeyPair(cmd, kp, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Path prefix for the .pub and .priv files")
	return cmd
}

func (a *app) writeKeyPair(cmd *cobra.Command, kp *cipherlab.KeyPair, prefix string) error {
	pub, err := cipherlab.ExportPublicKey(kp.Public())
	if err != nil {
		return err
	}
	priv, err := cipherlab.ExportPrivateKey(kp.Private())
	if err != nil {
		return err
	}

	if prefix == "" {
		fmt.Fprintln(cmd.OutOrStdout(), pub)
		fmt.Fprintln(cmd.OutOrStdout(), priv)
		return nil
	}

	if err := os.WriteFile(prefix+publicKeyExt, []byte(pub), 0o644); err != nil {
		return fmt.Errorf("write public key: %w", err)
	}
	if err := os.WriteFile(prefix+privateKeyExt, []byte(priv), 0o600); err != nil {
		return fmt.Errorf("write private key: %w", err)
	}
	jww.INFO.Printf("Wrote %s%s and %s%s", prefix, publicKeyExt, prefix, privateKeyExt)
	fmt.Fprintln(cmd.OutOrStdout(), pub)
	return nil
}

func readPublicKey(path string) (cipherlab.PublicKey, error) {
	data, err := readKeyFile(path)
	if err != nil {
		return cipherlab.PublicKey{}, err
	}
	return cipherlab.ImportPublicKey(data)
}

func readPrivateKey(path string) (cipherlab.PrivateKey, error) {
	data, err := readKeyFile(path)
	if err != nil {
		return cipherlab.PrivateKey{}, err
	}
	return cipherlab.ImportPrivateKey(data)
}

func readKeyFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: no key file given", cipherlab.ErrInvalidKey)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read key: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
