package main

import (
	"fmt"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
)

func newRSACmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rsa",
		Short: "Encrypt and decrypt text with textbook RSA",
	}
	cmd.AddCommand(newRSAEncryptCmd(a), newRSADecryptCmd(a))
	return cmd
}

func newRSAEncryptCmd(a *app) *cobra.Command {
	var keyFile string
	cmd := &cobra.Command{
		Use:   "encrypt [TEXT...]",
		Short: "Encrypt text with a public key",
		Long: `Encrypt reads the text from the arguments or stdin and prints one
decimal number per block of --block-chars characters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := readPublicKey(keyFile)
			if err != nil {
				return err
			}
			text, err := a.readInput(args)
			if err != nil {
				return err
			}
			jww.DEBUG.Printf("Encrypting %d characters in blocks of %d", len(text), a.params.BlockChars)
			ct, err := a.lab.EncryptText(text, key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ct)
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyFile, "key", "k", "", "Public key file")
	return cmd
}

func newRSADecryptCmd(a *app) *cobra.Command {
	var keyFile string
	cmd := &cobra.Command{
		Use:   "decrypt [CIPHERTEXT...]",
		Short: "Decrypt block ciphertext with a private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := readPrivateKey(keyFile)
			if err != nil {
				return err
			}
			ct, err := a.readInput(args)
			if err != nil {
				return err
			}
			text, err := a.lab.DecryptText(ct, key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyFile, "key", "k", "", "Private key file")
	return cmd
}
