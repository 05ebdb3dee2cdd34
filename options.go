package cipherlab

import (
	"fmt"
	"io"

	"github.com/vaultsandbox/cipherlab/adfgvx"
	"github.com/vaultsandbox/cipherlab/internal/cipherr"
	"github.com/vaultsandbox/cipherlab/internal/crypto"
	"github.com/vaultsandbox/cipherlab/playfair"
)

// AlphabetVariant selects the ADFGX or ADFGVX square.
type AlphabetVariant = adfgvx.Variant

const (
	// AlphabetADFGX is the 5x5 letters-only square (J read as I).
	AlphabetADFGX = adfgvx.ADFGX
	// AlphabetADFGVX is the 6x6 letters-and-digits square.
	AlphabetADFGVX = adfgvx.ADFGVX
)

// PlayfairVariant selects the letter folded away in the Playfair square.
type PlayfairVariant = playfair.Variant

const (
	// PlayfairFoldJ merges J into I.
	PlayfairFoldJ = playfair.FoldJ
	// PlayfairFoldW merges W into V.
	PlayfairFoldW = playfair.FoldW
)

// ExponentSearch is the direction searched from 65537 for a public exponent.
type ExponentSearch = crypto.ExponentSearch

const (
	// ExponentSearchUp tries 65537, 65539, ...
	ExponentSearchUp = crypto.SearchUp
	// ExponentSearchDown tries 65537, 65535, ... down to 3.
	ExponentSearchDown = crypto.SearchDown
)

// DigestAlgorithm selects the file digest used for signing.
type DigestAlgorithm = crypto.DigestAlgorithm

const (
	// DigestKeccak256 is pre-standard Keccak-256.
	DigestKeccak256 = crypto.Keccak256
	// DigestSHA3_256 is FIPS 202 SHA3-256.
	DigestSHA3_256 = crypto.SHA3_256
)

// Defaults applied by DefaultOptions.
const (
	DefaultBlockChars          = crypto.DefaultBlockChars
	DefaultPrimeBits           = crypto.DefaultPrimeBits
	DefaultWitnessRounds       = crypto.DefaultWitnessRounds
	DefaultMaxAttempts         = crypto.DefaultMaxAttempts
	DefaultExponentSearchLimit = crypto.DefaultExponentSearchLimit
)

// Options holds the configuration of a Lab.
type Options struct {
	// AlphabetVariant selects the ADFGX or ADFGVX square.
	AlphabetVariant AlphabetVariant
	// GridSize is the side of the ADFGX/ADFGVX square. Zero derives it from
	// AlphabetVariant; any other value must agree with it.
	GridSize int
	// BlockChars is the number of characters per RSA text block.
	BlockChars int
	// PrimeBits is the size of each RSA prime.
	PrimeBits int
	// WitnessRounds is the number of Fermat witnesses per prime candidate.
	WitnessRounds int
	// MaxAttempts bounds the candidates drawn per prime. Zero removes the
	// bound.
	MaxAttempts int
	// ExponentSearch is the public exponent search direction.
	ExponentSearch ExponentSearch
	// ExponentSearchLimit bounds the exponent candidates tried.
	ExponentSearchLimit int
	// PlayfairVariant selects the folded letter.
	PlayfairVariant PlayfairVariant
	// Digest selects the file digest.
	Digest DigestAlgorithm
	// Rand is the random source. Nil selects the operating system source.
	Rand io.Reader
}

// Option configures a Lab.
type Option func(*Options)

// DefaultOptions returns the configuration used by New without options.
func DefaultOptions() Options {
	return Options{
		AlphabetVariant:     AlphabetADFGVX,
		BlockChars:          DefaultBlockChars,
		PrimeBits:           DefaultPrimeBits,
		WitnessRounds:       DefaultWitnessRounds,
		MaxAttempts:         DefaultMaxAttempts,
		ExponentSearch:      ExponentSearchUp,
		ExponentSearchLimit: DefaultExponentSearchLimit,
		PlayfairVariant:     PlayfairFoldJ,
		Digest:              DigestKeccak256,
	}
}

// WithAlphabetVariant sets the ADFGX/ADFGVX variant.
func WithAlphabetVariant(v AlphabetVariant) Option {
	return func(o *Options) {
		o.AlphabetVariant = v
	}
}

// WithGridSize sets the expected ADFGX/ADFGVX square size.
func WithGridSize(size int) Option {
	return func(o *Options) {
		o.GridSize = size
	}
}

// WithBlockChars sets the number of characters per RSA block.
func WithBlockChars(n int) Option {
	return func(o *Options) {
		o.BlockChars = n
	}
}

// WithPrimeBits sets the RSA prime size.
func WithPrimeBits(bits int) Option {
	return func(o *Options) {
		o.PrimeBits = bits
	}
}

// WithWitnessRounds sets the number of Fermat witnesses.
func WithWitnessRounds(rounds int) Option {
	return func(o *Options) {
		o.WitnessRounds = rounds
	}
}

// WithMaxAttempts bounds the prime search. Zero removes the bound.
func WithMaxAttempts(n int) Option {
	return func(o *Options) {
		o.MaxAttempts = n
	}
}

// WithExponentSearch sets the exponent search direction and bound.
func WithExponentSearch(search ExponentSearch, limit int) Option {
	return func(o *Options) {
		o.ExponentSearch = search
		o.ExponentSearchLimit = limit
	}
}

// WithPlayfairVariant sets the Playfair folding rule.
func WithPlayfairVariant(v PlayfairVariant) Option {
	return func(o *Options) {
		o.PlayfairVariant = v
	}
}

// WithDigest sets the file digest algorithm.
func WithDigest(alg DigestAlgorithm) Option {
	return func(o *Options) {
		o.Digest = alg
	}
}

// WithRand sets the random source used by key generation.
func WithRand(r io.Reader) Option {
	return func(o *Options) {
		o.Rand = r
	}
}

// Validate checks every field and reports all failures at once.
func (o Options) Validate() error {
	var errs []string

	switch o.AlphabetVariant {
	case AlphabetADFGX, AlphabetADFGVX:
		if o.GridSize != 0 && o.GridSize != o.AlphabetVariant.GridSize() {
			errs = append(errs, fmt.Sprintf("grid size %d does not match %s (%d)",
				o.GridSize, o.AlphabetVariant, o.AlphabetVariant.GridSize()))
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown alphabet variant %d", int(o.AlphabetVariant)))
	}

	if o.BlockChars < 1 {
		errs = append(errs, fmt.Sprintf("block chars must be at least 1, got %d", o.BlockChars))
	}
	if o.PrimeBits < crypto.MinPrimeBits {
		errs = append(errs, fmt.Sprintf("prime bits must be at least %d, got %d", crypto.MinPrimeBits, o.PrimeBits))
	}
	if o.WitnessRounds < 1 {
		errs = append(errs, fmt.Sprintf("witness rounds must be at least 1, got %d", o.WitnessRounds))
	}
	if o.MaxAttempts < 0 {
		errs = append(errs, fmt.Sprintf("max attempts must not be negative, got %d", o.MaxAttempts))
	}
	if o.ExponentSearch != ExponentSearchUp && o.ExponentSearch != ExponentSearchDown {
		errs = append(errs, fmt.Sprintf("unknown exponent search %d", int(o.ExponentSearch)))
	}
	if o.ExponentSearchLimit < 1 {
		errs = append(errs, fmt.Sprintf("exponent search limit must be at least 1, got %d", o.ExponentSearchLimit))
	}
	if o.PlayfairVariant != PlayfairFoldJ && o.PlayfairVariant != PlayfairFoldW {
		errs = append(errs, fmt.Sprintf("unknown playfair variant %d", int(o.PlayfairVariant)))
	}
	if o.Digest != DigestKeccak256 && o.Digest != DigestSHA3_256 {
		errs = append(errs, fmt.Sprintf("unknown digest %d", int(o.Digest)))
	}

	if len(errs) > 0 {
		return &cipherr.ValidationError{Errors: errs}
	}
	return nil
}

func (o Options) keyGenParams() crypto.KeyGenParams {
	return crypto.KeyGenParams{
		PrimeBits:     o.PrimeBits,
		WitnessRounds: o.WitnessRounds,
		MaxAttempts:   o.MaxAttempts,
		Search:        o.ExponentSearch,
		SearchLimit:   o.ExponentSearchLimit,
		Rand:          o.Rand,
	}
}
