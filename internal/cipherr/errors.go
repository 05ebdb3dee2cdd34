// Package cipherr provides shared error types for the cipherlab packages.
package cipherr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidCoefficient is returned when an affine multiplier is not
	// coprime to the size of an alphabet it must act on.
	ErrInvalidCoefficient = errors.New("invalid coefficient")

	// ErrNoInverseExists is returned when a modular inverse is undefined.
	ErrNoInverseExists = errors.New("no modular inverse exists")

	// ErrNoValidExponent is returned when the public exponent search runs out
	// of candidates without finding one coprime to the totient.
	ErrNoValidExponent = errors.New("no valid public exponent")

	// ErrMalformedCipherToken is returned for a ciphertext that cannot be
	// parsed: a non-numeric RSA block or an odd-length digraph stream.
	ErrMalformedCipherToken = errors.New("malformed cipher token")

	// ErrUnknownSymbol is returned when a character is absent from the
	// active grid or indicator alphabet.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrMissingBundleEntry is returned when a signed bundle lacks the
	// original file or its .sign entry.
	ErrMissingBundleEntry = errors.New("missing bundle entry")

	// ErrKeyGenerationTimeout is returned when the prime search exceeds its
	// attempt budget.
	ErrKeyGenerationTimeout = errors.New("key generation timed out")

	// ErrInvalidKey is returned for an unusable key string or a malformed
	// exported key.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidSignature is returned when a signature entry cannot be parsed.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrBlockTooLarge is returned when a plaintext block cannot be
	// represented below the modulus.
	ErrBlockTooLarge = errors.New("block too large for modulus")

	// ErrInvalidOptions is returned when configuration fails validation.
	ErrInvalidOptions = errors.New("invalid options")
)

// CoefficientError reports an affine multiplier that has no inverse
// modulo the alphabet size.
type CoefficientError struct {
	A       int
	Modulus int
}

func (e *CoefficientError) Error() string {
	return fmt.Sprintf("invalid coefficient: a=%d is not coprime to %d", e.A, e.Modulus)
}

// Is implements errors.Is for sentinel error matching.
func (e *CoefficientError) Is(target error) bool {
	return target == ErrInvalidCoefficient
}

// SymbolError reports a character that could not be located.
type SymbolError struct {
	Symbol rune
	Where  string
}

func (e *SymbolError) Error() string {
	if e.Where != "" {
		return fmt.Sprintf("unknown symbol %q in %s", e.Symbol, e.Where)
	}
	return fmt.Sprintf("unknown symbol %q", e.Symbol)
}

// Is implements errors.Is for sentinel error matching.
func (e *SymbolError) Is(target error) bool {
	return target == ErrUnknownSymbol
}

// TokenError reports a ciphertext token that failed to parse.
type TokenError struct {
	Token    string
	Position int
	Reason   string
}

func (e *TokenError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("malformed cipher token %q at position %d: %s", e.Token, e.Position, e.Reason)
	}
	return fmt.Sprintf("malformed cipher token at position %d: %s", e.Position, e.Reason)
}

// Is implements errors.Is for sentinel error matching.
func (e *TokenError) Is(target error) bool {
	return target == ErrMalformedCipherToken
}

// BundleError reports which entry of a signed bundle is missing.
type BundleError struct {
	Missing string
}

func (e *BundleError) Error() string {
	return fmt.Sprintf("missing bundle entry: %s", e.Missing)
}

// Is implements errors.Is for sentinel error matching.
func (e *BundleError) Is(target error) bool {
	return target == ErrMissingBundleEntry
}

// TimeoutError represents a search that gave up after its attempt budget.
type TimeoutError struct {
	Operation string
	Attempts  int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s gave up after %d attempts", e.Operation, e.Attempts)
}

// Is implements errors.Is for sentinel error matching.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrKeyGenerationTimeout
}

// ValidationError contains multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidOptions
}

// CipherlabError marks the typed errors of this module.
func (e *CoefficientError) CipherlabError() {}

// CipherlabError marks the typed errors of this module.
func (e *SymbolError) CipherlabError() {}

// CipherlabError marks the typed errors of this module.
func (e *TokenError) CipherlabError() {}

// CipherlabError marks the typed errors of this module.
func (e *BundleError) CipherlabError() {}

// CipherlabError marks the typed errors of this module.
func (e *TimeoutError) CipherlabError() {}

// CipherlabError marks the typed errors of this module.
func (e *ValidationError) CipherlabError() {}
