// Package arith is the modular arithmetic kernel shared by key generation,
// encryption, decryption, signing and verification.
//
// All functions are pure: arguments are never modified and every result is a
// freshly allocated value.
package arith

import (
	"fmt"
	"math/big"

	"github.com/vaultsandbox/cipherlab/internal/cipherr"
)

var one = big.NewInt(1)

// GCD returns the greatest common divisor of a and b using the Euclidean
// algorithm. GCD(a, 0) is |a|.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	for y.Sign() != 0 {
		x.Mod(x, y)
		x, y = y, x
	}
	return x
}

// ModPow computes base^exponent mod modulus by square-and-multiply, consuming
// the exponent from its lowest bit upward. The result lies in [0, modulus).
// ModPow(b, 0, m) is 1 mod m.
//
// It panics if modulus is not positive or exponent is negative.
func ModPow(base, exponent, modulus *big.Int) *big.Int {
	if modulus.Sign() <= 0 {
		panic("arith: modulus must be positive")
	}
	if exponent.Sign() < 0 {
		panic("arith: exponent must be non-negative")
	}

	result := new(big.Int).Mod(one, modulus)
	b := new(big.Int).Mod(base, modulus)

	for i := 0; i < exponent.BitLen(); i++ {
		if exponent.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
		b.Mul(b, b)
		b.Mod(b, modulus)
	}
	return result
}

// ModInverse returns r in [0, modulus) with a*r ≡ 1 (mod modulus), computed
// with the extended Euclidean algorithm. It fails with
// cipherr.ErrNoInverseExists when gcd(a, modulus) != 1 or modulus is not
// positive.
func ModInverse(a, modulus *big.Int) (*big.Int, error) {
	if modulus.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus %s is not positive", cipherr.ErrNoInverseExists, modulus)
	}

	// Invariant: oldR = oldS*a (mod modulus), r = s*a (mod modulus).
	oldR := new(big.Int).Mod(a, modulus)
	r := new(big.Int).Set(modulus)
	oldS := big.NewInt(1)
	s := big.NewInt(0)

	q := new(big.Int)
	tmp := new(big.Int)
	for r.Sign() != 0 {
		q.Div(oldR, r)

		tmp.Mul(q, r)
		tmp.Sub(oldR, tmp)
		oldR, r = r, new(big.Int).Set(tmp)

		tmp.Mul(q, s)
		tmp.Sub(oldS, tmp)
		oldS, s = s, new(big.Int).Set(tmp)
	}

	if oldR.Cmp(one) != 0 {
		return nil, fmt.Errorf("%w: gcd(%s, %s) = %s", cipherr.ErrNoInverseExists, a, modulus, oldR)
	}

	return oldS.Mod(oldS, modulus), nil
}

// Coprime reports whether gcd(a, b) == 1.
func Coprime(a, b *big.Int) bool {
	return GCD(a, b).Cmp(one) == 0
}

// ModInt reduces x into [0, m) for small machine integers. m must be positive.
func ModInt(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}
