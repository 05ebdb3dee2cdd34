// Package rng supplies the randomness used for prime candidates and
// primality witnesses. Every consumer takes an io.Reader so tests can swap
// the operating system source for a reproducible stream.
package rng

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"

	"github.com/cloudflare/circl/xof"
)

// ErrEmptyRange is returned when sampling from an empty interval.
var ErrEmptyRange = errors.New("rng: empty range")

// Default returns the operating system random source.
func Default() io.Reader {
	return rand.Reader
}

// NewSeeded returns a deterministic stream: the SHAKE-256 output for seed.
// Two readers built from the same seed yield identical bytes.
func NewSeeded(seed []byte) io.Reader {
	x := xof.SHAKE256.New()
	// Write on a fresh XOF never fails.
	_, _ = x.Write(seed)
	return x
}

// Or returns r, or Default() when r is nil.
func Or(r io.Reader) io.Reader {
	if r == nil {
		return Default()
	}
	return r
}

// Below returns a uniform integer in [0, n) by rejection sampling.
func Below(r io.Reader, n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, ErrEmptyRange
	}

	top := new(big.Int).Sub(n, big.NewInt(1))
	bitLen := top.BitLen()
	if bitLen == 0 {
		return new(big.Int), nil
	}

	buf := make([]byte, (bitLen+7)/8)
	// Mask the bits above bitLen.
	mask := byte(0xff >> (uint(len(buf)*8 - bitLen)))

	v := new(big.Int)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		buf[0] &= mask
		v.SetBytes(buf)
		if v.Cmp(n) < 0 {
			return v, nil
		}
	}
}

// Between returns a uniform integer in the closed interval [lo, hi].
func Between(r io.Reader, lo, hi *big.Int) (*big.Int, error) {
	span := new(big.Int).Sub(hi, lo)
	span.Add(span, big.NewInt(1))
	v, err := Below(r, span)
	if err != nil {
		return nil, err
	}
	return v.Add(v, lo), nil
}

// OddWithBits returns a random odd integer of exactly bits bits: the top and
// bottom bits are forced to one.
func OddWithBits(r io.Reader, bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, ErrEmptyRange
	}

	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}

	v := new(big.Int).SetBytes(buf)
	// Drop bytes beyond the requested width, then pin the boundary bits.
	v.Rsh(v, uint(len(buf)*8-bits))
	v.SetBit(v, bits-1, 1)
	v.SetBit(v, 0, 1)
	return v, nil
}
