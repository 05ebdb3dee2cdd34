// Package affine implements the affine substitution cipher over letters and
// digits.
//
// Letters map through x -> (a*x + b) mod 26 and digits, independently,
// through d -> (a*d + b) mod 10. Spaces become SpaceToken, which is not
// enciphered. Input is canonicalized first: diacritics are stripped, letters
// upper-cased and everything except letters, digits and spaces dropped.
package affine

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/vaultsandbox/cipherlab/internal/arith"
	"github.com/vaultsandbox/cipherlab/internal/cipherr"
	"github.com/vaultsandbox/cipherlab/internal/textutil"
)

const (
	// Letters is the size of the letter alphabet.
	Letters = 26
	// Digits is the size of the digit alphabet.
	Digits = 10
)

// SpaceToken stands in for a space in the ciphertext. Decode turns every
// occurrence back into a space before reversing the substitution, so
// ciphertext letters that happen to spell it are read as a space too.
const SpaceToken = "XSPACEX"

// Encode enciphers text with the key (a, b). a must be coprime to both 26
// and 10 so that letters and digits can be decoded.
func Encode(text string, a, b int) (string, error) {
	if err := ValidateKey(a); err != nil {
		return "", err
	}

	var out strings.Builder
	for _, r := range textutil.Canonicalize(text, textutil.LettersDigitsSpace) {
		switch {
		case r >= 'A' && r <= 'Z':
			out.WriteRune('A' + rune(arith.ModInt(a*int(r-'A')+b, Letters)))
		case r >= '0' && r <= '9':
			out.WriteRune('0' + rune(arith.ModInt(a*int(r-'0')+b, Digits)))
		case r == ' ':
			out.WriteString(SpaceToken)
		default:
			out.WriteRune(r)
		}
	}
	return out.String(), nil
}

// Decode reverses Encode. It fails with cipherr.ErrNoInverseExists when a
// has no inverse modulo 26 or modulo 10.
func Decode(text string, a, b int) (string, error) {
	aInvLetters, err := inverse(a, Letters)
	if err != nil {
		return "", err
	}
	aInvDigits, err := inverse(a, Digits)
	if err != nil {
		return "", err
	}

	text = textutil.Canonicalize(text, textutil.LettersDigitsSpace)
	text = strings.ReplaceAll(text, SpaceToken, " ")

	var out strings.Builder
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			out.WriteRune('A' + rune(arith.ModInt(aInvLetters*(int(r-'A')-b), Letters)))
		case r >= '0' && r <= '9':
			out.WriteRune('0' + rune(arith.ModInt(aInvDigits*(int(r-'0')-b), Digits)))
		default:
			out.WriteRune(r)
		}
	}
	return out.String(), nil
}

// ValidateKey checks that a is invertible modulo both alphabet sizes.
func ValidateKey(a int) error {
	for _, m := range []int{Letters, Digits} {
		if !arith.Coprime(big.NewInt(int64(a)), big.NewInt(int64(m))) {
			return &cipherr.CoefficientError{A: a, Modulus: m}
		}
	}
	return nil
}

// ValidMultipliers returns every a in [1, 26) accepted by ValidateKey.
func ValidMultipliers() []int {
	var out []int
	for a := 1; a < Letters; a++ {
		if ValidateKey(a) == nil {
			out = append(out, a)
		}
	}
	return out
}

func inverse(a, m int) (int, error) {
	inv, err := arith.ModInverse(big.NewInt(int64(a)), big.NewInt(int64(m)))
	if err != nil {
		return 0, fmt.Errorf("affine multiplier %d mod %d: %w", a, m, err)
	}
	return int(inv.Int64()), nil
}
