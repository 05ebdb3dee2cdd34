package crypto

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/vaultsandbox/cipherlab/internal/arith"
	"github.com/vaultsandbox/cipherlab/internal/cipherr"
	"github.com/vaultsandbox/cipherlab/internal/rng"
)

// ExponentSearch is the direction taken from PreferredExponent when it is
// not coprime to the totient.
type ExponentSearch int

const (
	// SearchUp tries 65537, 65539, 65541, ...
	SearchUp ExponentSearch = iota
	// SearchDown tries 65537, 65535, 65533, ... down to 3.
	SearchDown
)

func (s ExponentSearch) String() string {
	switch s {
	case SearchUp:
		return "up"
	case SearchDown:
		return "down"
	}
	return fmt.Sprintf("ExponentSearch(%d)", int(s))
}

// ParseExponentSearch maps "up" or "down" (any case) to an ExponentSearch.
// The empty string selects SearchUp.
func ParseExponentSearch(s string) (ExponentSearch, error) {
	switch strings.ToLower(s) {
	case "up", "":
		return SearchUp, nil
	case "down":
		return SearchDown, nil
	}
	return 0, fmt.Errorf("%w: unknown exponent search %q", cipherr.ErrInvalidOptions, s)
}

// PublicKey is the modulus and public exponent.
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// PrivateKey is the modulus and private exponent.
type PrivateKey struct {
	N *big.Int
	D *big.Int
}

// KeyPair is an RSA key pair. P and Q are kept when the pair was generated
// locally and are nil for imported keys.
type KeyPair struct {
	N *big.Int
	E *big.Int
	D *big.Int
	P *big.Int
	Q *big.Int
}

// KeyGenParams configures GenerateKeyPair.
type KeyGenParams struct {
	// PrimeBits is the size of each prime.
	PrimeBits int
	// WitnessRounds is the number of Fermat trials per candidate.
	WitnessRounds int
	// MaxAttempts bounds the candidates drawn per prime (<= 0: unbounded).
	MaxAttempts int
	// Search is the exponent search direction.
	Search ExponentSearch
	// SearchLimit bounds the number of exponents tried.
	SearchLimit int
	// Rand is the random source; nil selects the operating system source.
	Rand io.Reader
}

// DefaultKeyGenParams returns the parameters used when none are given.
func DefaultKeyGenParams() KeyGenParams {
	return KeyGenParams{
		PrimeBits:     DefaultPrimeBits,
		WitnessRounds: DefaultWitnessRounds,
		MaxAttempts:   DefaultMaxAttempts,
		Search:        SearchUp,
		SearchLimit:   DefaultExponentSearchLimit,
	}
}

// GenerateKeyPair draws two distinct probable primes p and q and derives
// n = p*q, λ = (p-1)(q-1), e (see ChooseExponent) and d = e^-1 mod λ.
func GenerateKeyPair(params KeyGenParams) (*KeyPair, error) {
	if params.PrimeBits < MinPrimeBits {
		return nil, fmt.Errorf("%w: prime size %d below minimum %d", cipherr.ErrInvalidOptions, params.PrimeBits, MinPrimeBits)
	}
	r := rng.Or(params.Rand)

	p, err := generatePrime(r, params.PrimeBits, params.WitnessRounds, params.MaxAttempts, nil)
	if err != nil {
		return nil, fmt.Errorf("generate p: %w", err)
	}
	q, err := generatePrime(r, params.PrimeBits, params.WitnessRounds, params.MaxAttempts, p)
	if err != nil {
		return nil, fmt.Errorf("generate q: %w", err)
	}

	return NewKeyPair(p, q, params.Search, params.SearchLimit)
}

// NewKeyPair derives a key pair from two known primes.
func NewKeyPair(p, q *big.Int, search ExponentSearch, searchLimit int) (*KeyPair, error) {
	if p.Cmp(q) == 0 {
		return nil, fmt.Errorf("%w: p and q must be distinct", cipherr.ErrInvalidKey)
	}
	if p.Cmp(two) < 0 || q.Cmp(two) < 0 {
		return nil, fmt.Errorf("%w: primes must be at least 2", cipherr.ErrInvalidKey)
	}

	n := new(big.Int).Mul(p, q)
	lambda := Totient(p, q)

	e, err := ChooseExponent(lambda, search, searchLimit)
	if err != nil {
		return nil, err
	}
	d, err := arith.ModInverse(e, lambda)
	if err != nil {
		return nil, fmt.Errorf("derive private exponent: %w", err)
	}

	return &KeyPair{
		N: n,
		E: e,
		D: d,
		P: new(big.Int).Set(p),
		Q: new(big.Int).Set(q),
	}, nil
}

// Totient returns (p-1)(q-1).
func Totient(p, q *big.Int) *big.Int {
	pm1 := new(big.Int).Sub(p, one)
	qm1 := new(big.Int).Sub(q, one)
	return pm1.Mul(pm1, qm1)
}

// ChooseExponent returns PreferredExponent when it is coprime to lambda,
// otherwise the nearest odd candidate in the search direction. At most limit
// candidates are tried.
func ChooseExponent(lambda *big.Int, search ExponentSearch, limit int) (*big.Int, error) {
	e := big.NewInt(PreferredExponent)
	step := big.NewInt(2)
	if search == SearchDown {
		step.Neg(step)
	}

	for i := 0; i < limit && e.Cmp(three) >= 0; i++ {
		if arith.Coprime(e, lambda) {
			return e, nil
		}
		e.Add(e, step)
	}
	return nil, fmt.Errorf("%w: searched %d candidates %s from %d", cipherr.ErrNoValidExponent, limit, search, PreferredExponent)
}

// Public returns the public half of the pair.
func (k *KeyPair) Public() PublicKey {
	return PublicKey{N: new(big.Int).Set(k.N), E: new(big.Int).Set(k.E)}
}

// Private returns the private half of the pair.
func (k *KeyPair) Private() PrivateKey {
	return PrivateKey{N: new(big.Int).Set(k.N), D: new(big.Int).Set(k.D)}
}

// Validate checks the pair's structure and, when the primes are known,
// that n = p*q and e*d ≡ 1 (mod λ).
func (k *KeyPair) Validate() error {
	if k == nil {
		return fmt.Errorf("%w: nil key pair", cipherr.ErrInvalidKey)
	}
	if err := k.Public().Validate(); err != nil {
		return err
	}
	if err := k.Private().Validate(); err != nil {
		return err
	}
	if k.P == nil || k.Q == nil {
		return nil
	}

	if new(big.Int).Mul(k.P, k.Q).Cmp(k.N) != 0 {
		return fmt.Errorf("%w: modulus is not p*q", cipherr.ErrInvalidKey)
	}
	check := new(big.Int).Mul(k.E, k.D)
	check.Mod(check, Totient(k.P, k.Q))
	if check.Cmp(one) != 0 {
		return fmt.Errorf("%w: e*d is not 1 mod λ", cipherr.ErrInvalidKey)
	}
	return nil
}

// Validate checks that the key can be used for exponentiation.
func (k PublicKey) Validate() error {
	return validateKey(k.N, k.E, "public exponent")
}

// Validate checks that the key can be used for exponentiation.
func (k PrivateKey) Validate() error {
	return validateKey(k.N, k.D, "private exponent")
}

func validateKey(n, exp *big.Int, name string) error {
	if n == nil || n.Cmp(one) <= 0 {
		return fmt.Errorf("%w: modulus must be greater than 1", cipherr.ErrInvalidKey)
	}
	if exp == nil || exp.Sign() <= 0 {
		return fmt.Errorf("%w: %s must be positive", cipherr.ErrInvalidKey, name)
	}
	return nil
}
