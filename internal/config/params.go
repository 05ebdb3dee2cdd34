// Package config maps command-line configuration onto cipherlab options.
//
// Values come from a viper instance, so a YAML file, CIPHERLAB_* environment
// variables and bound flags all feed the same Params.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/vaultsandbox/cipherlab"
	"github.com/vaultsandbox/cipherlab/adfgvx"
	"github.com/vaultsandbox/cipherlab/internal/crypto"
	"github.com/vaultsandbox/cipherlab/playfair"
)

// EnvPrefix is prepended to every environment variable read by viper.
const EnvPrefix = "CIPHERLAB"

// Keys understood by NewParams.
const (
	KeyVariant             = "variant"
	KeyGridSize            = "gridSize"
	KeyBlockChars          = "blockChars"
	KeyPrimeBits           = "primeBits"
	KeyWitnessRounds       = "witnessRounds"
	KeyMaxAttempts         = "maxAttempts"
	KeyExponentSearch      = "exponentSearch"
	KeyExponentSearchLimit = "exponentSearchLimit"
	KeyPlayfair            = "playfair"
	KeyDigest              = "digest"
	KeySeed                = "seed"
	KeyLog                 = "log"
	KeyVerbose             = "verbose"
)

// Params is the flat, string-typed form of cipherlab.Options used by the
// command line and config files.
type Params struct {
	Variant             string `mapstructure:"variant" yaml:"variant"`
	GridSize            int    `mapstructure:"gridSize" yaml:"gridSize"`
	BlockChars          int    `mapstructure:"blockChars" yaml:"blockChars"`
	PrimeBits           int    `mapstructure:"primeBits" yaml:"primeBits"`
	WitnessRounds       int    `mapstructure:"witnessRounds" yaml:"witnessRounds"`
	MaxAttempts         int    `mapstructure:"maxAttempts" yaml:"maxAttempts"`
	ExponentSearch      string `mapstructure:"exponentSearch" yaml:"exponentSearch"`
	ExponentSearchLimit int    `mapstructure:"exponentSearchLimit" yaml:"exponentSearchLimit"`
	Playfair            string `mapstructure:"playfair" yaml:"playfair"`
	Digest              string `mapstructure:"digest" yaml:"digest"`

	// Seed makes key generation deterministic when set.
	Seed string `mapstructure:"seed" yaml:"seed,omitempty"`

	Log     string `mapstructure:"log" yaml:"log,omitempty"`
	Verbose bool   `mapstructure:"verbose" yaml:"verbose"`
}

// SetDefaults registers every key with its default value and enables
// CIPHERLAB_* environment lookups. Keys unknown to viper are not read from the
// environment, so this must run before NewParams.
func SetDefaults(vip *viper.Viper) {
	d := cipherlab.DefaultOptions()

	vip.SetDefault(KeyVariant, d.AlphabetVariant.String())
	vip.SetDefault(KeyGridSize, 0)
	vip.SetDefault(KeyBlockChars, d.BlockChars)
	vip.SetDefault(KeyPrimeBits, d.PrimeBits)
	vip.SetDefault(KeyWitnessRounds, d.WitnessRounds)
	vip.SetDefault(KeyMaxAttempts, d.MaxAttempts)
	vip.SetDefault(KeyExponentSearch, d.ExponentSearch.String())
	vip.SetDefault(KeyExponentSearchLimit, d.ExponentSearchLimit)
	vip.SetDefault(KeyPlayfair, d.PlayfairVariant.String())
	vip.SetDefault(KeyDigest, d.Digest.String())
	vip.SetDefault(KeySeed, "")
	vip.SetDefault(KeyLog, "")
	vip.SetDefault(KeyVerbose, false)

	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	vip.AutomaticEnv()
}

// NewParams returns a params object if it is able to unmarshal the viper
// config, otherwise it returns an error.
func NewParams(vip *viper.Viper) (*Params, error) {
	params := Params{}
	if err := vip.Unmarshal(&params); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &params, nil
}

// Options converts the parameters to validated cipherlab options.
func (p *Params) Options() (cipherlab.Options, error) {
	variant, err := adfgvx.ParseVariant(p.Variant)
	if err != nil {
		return cipherlab.Options{}, err
	}
	search, err := crypto.ParseExponentSearch(p.ExponentSearch)
	if err != nil {
		return cipherlab.Options{}, err
	}
	pf, err := playfair.ParseVariant(p.Playfair)
	if err != nil {
		return cipherlab.Options{}, err
	}
	digest, err := crypto.ParseDigestAlgorithm(p.Digest)
	if err != nil {
		return cipherlab.Options{}, err
	}

	o := cipherlab.Options{
		AlphabetVariant:     variant,
		GridSize:            p.GridSize,
		BlockChars:          p.BlockChars,
		PrimeBits:           p.PrimeBits,
		WitnessRounds:       p.WitnessRounds,
		MaxAttempts:         p.MaxAttempts,
		ExponentSearch:      search,
		ExponentSearchLimit: p.ExponentSearchLimit,
		PlayfairVariant:     pf,
		Digest:              digest,
	}
	if p.Seed != "" {
		o.Rand = cipherlab.NewSeededRand([]byte(p.Seed))
	}

	if err := o.Validate(); err != nil {
		return cipherlab.Options{}, err
	}
	return o, nil
}
