package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaultsandbox/cipherlab/adfgvx"
	"github.com/vaultsandbox/cipherlab/playfair"
)

// codecCmd builds an encode or decode subcommand around fn. Flags are read
// when fn runs, after cobra has parsed them.
func codecCmd(a *app, use, short string, fn func(text string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [TEXT...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readInput(args)
			if err != nil {
				return err
			}
			out, err := fn(text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newAffineCmd(a *app) *cobra.Command {
	var mul, add int
	cmd := &cobra.Command{
		Use:   "affine",
		Short: "Affine cipher over letters and digits",
		Long: `The affine cipher maps letters with (a*x + b) mod 26 and digits with
(a*x + b) mod 10. The multiplier must be coprime to both.`,
	}
	cmd.PersistentFlags().IntVarP(&mul, "mul", "a", 1, "Multiplier a")
	cmd.PersistentFlags().IntVarP(&add, "add", "b", 0, "Shift b")

	cmd.AddCommand(
		codecCmd(a, "encode", "Encode text", func(text string) (string, error) {
			return a.lab.AffineEncode(text, mul, add)
		}),
		codecCmd(a, "decode", "Decode text", func(text string) (string, error) {
			return a.lab.AffineDecode(text, mul, add)
		}),
	)
	return cmd
}

func newPlayfairCmd(a *app) *cobra.Command {
	var key string
	var length int
	cmd := &cobra.Command{
		Use:   "playfair",
		Short: "Playfair digraph cipher",
	}
	cmd.PersistentFlags().StringVarP(&key, "key", "k", "", "Square key")

	decode := codecCmd(a, "decode", "Decode text", func(text string) (string, error) {
		var opts []playfair.DecodeOption
		if length > 0 {
			opts = append(opts, playfair.WithLength(length))
		}
		return a.lab.PlayfairDecode(text, key, opts...)
	})
	decode.Flags().IntVar(&length, "length", 0, "Prepared stream length before padding (0 keeps all)")

	cmd.AddCommand(
		codecCmd(a, "encode", "Encode text", func(text string) (string, error) {
			return a.lab.PlayfairEncode(text, key)
		}),
		decode,
		&cobra.Command{
			Use:   "square",
			Short: "Print the keyed square",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := playfair.New(key, a.lab.Options().PlayfairVariant)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), c.Square())
				return nil
			},
		},
	)
	return cmd
}

func newADFGVXCmd(a *app) *cobra.Command {
	var squareKey, transKey string
	cmd := &cobra.Command{
		Use:     "adfgvx",
		Aliases: []string{"adfgx"},
		Short:   "ADFGX and ADFGVX fractionating ciphers",
		Long: `Substitutes each symbol with its row and column indicators in a keyed
square, then applies a columnar transposition. --variant selects ADFGX or
ADFGVX.`,
	}
	cmd.PersistentFlags().StringVarP(&squareKey, "square", "s", "", "Square key")
	cmd.PersistentFlags().StringVarP(&transKey, "transposition", "t", "", "Transposition key")

	cmd.AddCommand(
		codecCmd(a, "encode", "Encode text", func(text string) (string, error) {
			return a.lab.ADFGVXEncode(text, squareKey, transKey)
		}),
		codecCmd(a, "decode", "Decode text", func(text string) (string, error) {
			return a.lab.ADFGVXDecode(text, squareKey, transKey)
		}),
		&cobra.Command{
			Use:   "square",
			Short: "Print the keyed square",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := adfgvx.New(squareKey, "A", a.lab.Options().AlphabetVariant)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), c.Square())
				return nil
			},
		},
	)
	return cmd
}
