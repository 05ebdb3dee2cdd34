package crypto

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/vaultsandbox/cipherlab/internal/arith"
	"github.com/vaultsandbox/cipherlab/internal/cipherr"
	"github.com/vaultsandbox/cipherlab/internal/textutil"
)

// CheckBlockWidth reports whether blocks of blockChars characters always
// encode to an integer below n.
func CheckBlockWidth(n *big.Int, blockChars int) error {
	if blockChars <= 0 {
		return fmt.Errorf("%w: block width %d", cipherr.ErrInvalidOptions, blockChars)
	}
	if bits := blockChars * BitsPerChar; bits >= n.BitLen() {
		return fmt.Errorf("%w: %d-bit blocks need a modulus of at least %d bits, have %d",
			cipherr.ErrBlockTooLarge, bits, bits+1, n.BitLen())
	}
	return nil
}

// EncryptText canonicalizes text to printable ASCII, pads it with spaces to
// a multiple of blockChars and encrypts each block of characters as one
// big-endian integer. The result is the decimal blocks joined by spaces.
func EncryptText(text string, key PublicKey, blockChars int) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}
	if err := CheckBlockWidth(key.N, blockChars); err != nil {
		return "", err
	}

	plain := []byte(textutil.Canonicalize(text, textutil.Printable))
	if rem := len(plain) % blockChars; rem != 0 {
		plain = append(plain, strings.Repeat(" ", blockChars-rem)...)
	}

	blocks := make([]string, 0, len(plain)/blockChars)
	m := new(big.Int)
	for i := 0; i < len(plain); i += blockChars {
		m.SetBytes(plain[i : i+blockChars])
		blocks = append(blocks, arith.ModPow(m, key.E, key.N).String())
	}
	return strings.Join(blocks, " "), nil
}

// DecryptText reverses EncryptText. Every whitespace-separated token must be
// a non-negative decimal integer. A single trailing space is dropped when it
// is the last character of the last block; other padding is kept.
func DecryptText(ciphertext string, key PrivateKey, blockChars int) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}
	if err := CheckBlockWidth(key.N, blockChars); err != nil {
		return "", err
	}

	tokens := strings.Fields(ciphertext)
	plain := make([]byte, 0, len(tokens)*blockChars)
	maxBits := blockChars * BitsPerChar
	for i, tok := range tokens {
		if !isDecimal(tok) {
			return "", &cipherr.TokenError{Token: tok, Position: i, Reason: "not a non-negative integer"}
		}
		c, _ := new(big.Int).SetString(tok, 10)

		m := arith.ModPow(c, key.D, key.N)
		if m.BitLen() > maxBits {
			return "", &cipherr.TokenError{Token: tok, Position: i,
				Reason: fmt.Sprintf("decrypts to more than %d characters", blockChars)}
		}
		plain = append(plain, m.FillBytes(make([]byte, blockChars))...)
	}

	if n := len(plain); n > 0 && plain[n-1] == ' ' {
		plain = plain[:n-1]
	}
	return string(plain), nil
}
