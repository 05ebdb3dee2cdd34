package crypto

import (
	"math/big"
	"testing"
)

func bi(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad literal " + s)
	}
	return n
}

// zeroReader yields an endless stream of zero bytes. OddWithBits(r, b) then
// always returns 2^(b-1)+1 and every witness is 2.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

// textbookKey is the classic n = 61*53 example.
func textbookKey() *KeyPair {
	return &KeyPair{
		N: big.NewInt(3233),
		E: big.NewInt(17),
		D: big.NewInt(2753),
		P: big.NewInt(61),
		Q: big.NewInt(53),
	}
}

// mersenneKey is built from the primes 2^127-1 and 2^521-1. Its 648-bit
// modulus is wide enough to sign a 256-bit digest.
func mersenneKey(t *testing.T) *KeyPair {
	t.Helper()
	p := new(big.Int).Lsh(big.NewInt(1), 127)
	p.Sub(p, big.NewInt(1))
	q := new(big.Int).Lsh(big.NewInt(1), 521)
	q.Sub(q, big.NewInt(1))

	kp, err := NewKeyPair(p, q, SearchUp, DefaultExponentSearchLimit)
	if err != nil {
		t.Fatalf("NewKeyPair() error = %v", err)
	}
	if kp.E.Cmp(big.NewInt(PreferredExponent)) != 0 {
		t.Fatalf("E = %s, want %d", kp.E, PreferredExponent)
	}
	return kp
}
