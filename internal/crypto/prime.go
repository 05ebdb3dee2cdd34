package crypto

import (
	"fmt"
	"io"
	"math/big"

	"github.com/vaultsandbox/cipherlab/internal/arith"
	"github.com/vaultsandbox/cipherlab/internal/cipherr"
	"github.com/vaultsandbox/cipherlab/internal/rng"
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// IsProbablePrime runs rounds Fermat trials on n. Each trial draws a witness
// a uniformly from [2, n-2] and rejects n when a^(n-1) mod n != 1.
//
// This is a single-residue Fermat test, not Miller-Rabin: Carmichael numbers
// pass it for every witness coprime to them.
func IsProbablePrime(r io.Reader, n *big.Int, rounds int) (bool, error) {
	if n.Cmp(one) <= 0 {
		return false, nil
	}
	if n.Cmp(three) <= 0 {
		return true, nil
	}

	nMinus1 := new(big.Int).Sub(n, one)
	nMinus2 := new(big.Int).Sub(n, two)
	for i := 0; i < rounds; i++ {
		a, err := rng.Between(r, two, nMinus2)
		if err != nil {
			return false, fmt.Errorf("draw witness: %w", err)
		}
		if arith.ModPow(a, nMinus1, n).Cmp(one) != 0 {
			return false, nil
		}
	}
	return true, nil
}

// GeneratePrime samples odd candidates of exactly bits bits until one passes
// IsProbablePrime. maxAttempts bounds the number of candidates; zero or a
// negative value removes the bound.
func GeneratePrime(r io.Reader, bits, rounds, maxAttempts int) (*big.Int, error) {
	return generatePrime(r, bits, rounds, maxAttempts, nil)
}

// generatePrime is GeneratePrime with an optional value to avoid, so that a
// redraw of q == p counts against the same budget.
func generatePrime(r io.Reader, bits, rounds, maxAttempts int, avoid *big.Int) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("%w: prime size %d bits", cipherr.ErrInvalidOptions, bits)
	}

	for attempt := 1; maxAttempts <= 0 || attempt <= maxAttempts; attempt++ {
		candidate, err := rng.OddWithBits(r, bits)
		if err != nil {
			return nil, fmt.Errorf("draw candidate: %w", err)
		}
		if avoid != nil && candidate.Cmp(avoid) == 0 {
			continue
		}

		ok, err := IsProbablePrime(r, candidate, rounds)
		if err != nil {
			return nil, err
		}
		if ok {
			return candidate, nil
		}
	}

	return nil, &cipherr.TimeoutError{Operation: fmt.Sprintf("%d-bit prime search", bits), Attempts: maxAttempts}
}
