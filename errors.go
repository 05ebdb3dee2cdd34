package cipherlab

import (
	"github.com/vaultsandbox/cipherlab/internal/cipherr"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidCoefficient is returned when an affine multiplier is not
	// coprime to an alphabet size.
	ErrInvalidCoefficient = cipherr.ErrInvalidCoefficient

	// ErrNoInverseExists is returned when a modular inverse is undefined.
	ErrNoInverseExists = cipherr.ErrNoInverseExists

	// ErrNoValidExponent is returned when the public exponent search is
	// exhausted.
	ErrNoValidExponent = cipherr.ErrNoValidExponent

	// ErrMalformedCipherToken is returned for a non-numeric RSA block or an
	// odd-length digraph stream.
	ErrMalformedCipherToken = cipherr.ErrMalformedCipherToken

	// ErrUnknownSymbol is returned when a character is absent from the
	// active grid or indicator alphabet.
	ErrUnknownSymbol = cipherr.ErrUnknownSymbol

	// ErrMissingBundleEntry is returned when a signed bundle is incomplete.
	ErrMissingBundleEntry = cipherr.ErrMissingBundleEntry

	// ErrKeyGenerationTimeout is returned when the prime search runs out of
	// attempts.
	ErrKeyGenerationTimeout = cipherr.ErrKeyGenerationTimeout

	// ErrInvalidKey is returned for an unusable key or key string.
	ErrInvalidKey = cipherr.ErrInvalidKey

	// ErrInvalidSignature is returned when a signature tag cannot be parsed.
	ErrInvalidSignature = cipherr.ErrInvalidSignature

	// ErrBlockTooLarge is returned when the block width does not fit below
	// the modulus.
	ErrBlockTooLarge = cipherr.ErrBlockTooLarge

	// ErrInvalidOptions is returned when Options fail validation.
	ErrInvalidOptions = cipherr.ErrInvalidOptions
)

// CipherlabError is implemented by all typed errors of this module.
type CipherlabError interface {
	error
	CipherlabError() // marker method
}

// CoefficientError reports an affine multiplier without an inverse.
type CoefficientError = cipherr.CoefficientError

// SymbolError reports a character missing from a grid or indicator set.
type SymbolError = cipherr.SymbolError

// TokenError reports a ciphertext token that failed to parse.
type TokenError = cipherr.TokenError

// BundleError reports a missing entry of a signed bundle.
type BundleError = cipherr.BundleError

// TimeoutError reports a search that gave up after its attempt budget.
type TimeoutError = cipherr.TimeoutError

// ValidationError contains multiple validation failures.
type ValidationError = cipherr.ValidationError
