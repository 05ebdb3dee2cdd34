package config

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/viper"

	"github.com/vaultsandbox/cipherlab"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	vip := viper.New()
	SetDefaults(vip)
	return vip
}

func TestNewParams_Defaults(t *testing.T) {
	params, err := NewParams(newViper(t))
	if err != nil {
		t.Fatalf("NewParams() error = %v", err)
	}

	want := Params{
		Variant:             "ADFGVX",
		BlockChars:          cipherlab.DefaultBlockChars,
		PrimeBits:           cipherlab.DefaultPrimeBits,
		WitnessRounds:       cipherlab.DefaultWitnessRounds,
		MaxAttempts:         cipherlab.DefaultMaxAttempts,
		ExponentSearch:      "up",
		ExponentSearchLimit: cipherlab.DefaultExponentSearchLimit,
		Playfair:            "J=I",
		Digest:              "keccak256",
	}
	if *params != want {
		t.Errorf("NewParams() = %+v, want %+v", *params, want)
	}

	opts, err := params.Options()
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	d := cipherlab.DefaultOptions()
	if opts.AlphabetVariant != d.AlphabetVariant || opts.PlayfairVariant != d.PlayfairVariant ||
		opts.Digest != d.Digest || opts.ExponentSearch != d.ExponentSearch {
		t.Errorf("Options() = %+v, want defaults %+v", opts, d)
	}
	if opts.Rand != nil {
		t.Error("Options().Rand should be nil without a seed")
	}
}

func TestNewParams_YAML(t *testing.T) {
	vip := newViper(t)
	vip.SetConfigType("yaml")
	cfg := []byte(`
variant: adfgx
gridSize: 5
blockChars: 4
primeBits: 64
exponentSearch: down
playfair: W
digest: sha3-256
seed: fixed
verbose: true
`)
	if err := vip.ReadConfig(bytes.NewReader(cfg)); err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	params, err := NewParams(vip)
	if err != nil {
		t.Fatalf("NewParams() error = %v", err)
	}
	if params.BlockChars != 4 || params.PrimeBits != 64 || !params.Verbose {
		t.Errorf("NewParams() = %+v", *params)
	}
	if params.WitnessRounds != cipherlab.DefaultWitnessRounds {
		t.Errorf("WitnessRounds = %d, want default %d", params.WitnessRounds, cipherlab.DefaultWitnessRounds)
	}

	opts, err := params.Options()
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if opts.AlphabetVariant != cipherlab.AlphabetADFGX {
		t.Errorf("AlphabetVariant = %s, want ADFGX", opts.AlphabetVariant)
	}
	if opts.ExponentSearch != cipherlab.ExponentSearchDown {
		t.Errorf("ExponentSearch = %s, want down", opts.ExponentSearch)
	}
	if opts.PlayfairVariant != cipherlab.PlayfairFoldW {
		t.Errorf("PlayfairVariant = %s, want W=V", opts.PlayfairVariant)
	}
	if opts.Digest != cipherlab.DigestSHA3_256 {
		t.Errorf("Digest = %s, want sha3-256", opts.Digest)
	}
	if opts.Rand == nil {
		t.Error("Options().Rand should be seeded")
	}
}

func TestNewParams_Environment(t *testing.T) {
	t.Setenv("CIPHERLAB_BLOCKCHARS", "3")
	t.Setenv("CIPHERLAB_DIGEST", "sha3")

	params, err := NewParams(newViper(t))
	if err != nil {
		t.Fatalf("NewParams() error = %v", err)
	}
	if params.BlockChars != 3 {
		t.Errorf("BlockChars = %d, want 3", params.BlockChars)
	}
	if params.Digest != "sha3" {
		t.Errorf("Digest = %q, want %q", params.Digest, "sha3")
	}
}

func TestParams_Options_Invalid(t *testing.T) {
	base := func() *Params {
		params, err := NewParams(newViper(t))
		if err != nil {
			t.Fatal(err)
		}
		return params
	}

	tests := []struct {
		name   string
		mutate func(*Params)
		want   error
	}{
		{"variant", func(p *Params) { p.Variant = "ADFGVXZ" }, cipherlab.ErrInvalidOptions},
		{"search", func(p *Params) { p.ExponentSearch = "left" }, cipherlab.ErrInvalidOptions},
		{"playfair", func(p *Params) { p.Playfair = "Q" }, cipherlab.ErrInvalidOptions},
		{"digest", func(p *Params) { p.Digest = "md5" }, cipherlab.ErrInvalidOptions},
		{"grid mismatch", func(p *Params) { p.GridSize = 5 }, cipherlab.ErrInvalidOptions},
		{"block chars", func(p *Params) { p.BlockChars = 0 }, cipherlab.ErrInvalidOptions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base()
			tt.mutate(p)
			if _, err := p.Options(); !errors.Is(err, tt.want) {
				t.Errorf("Options() error = %v, want %v", err, tt.want)
			}
		})
	}
}
