package textutil

import "strings"

// Tokens selects which characters are replaced by placeholder tokens.
type Tokens uint8

const (
	// SpaceTokens replaces the space character.
	SpaceTokens Tokens = 1 << iota
	// DigitTokens replaces 0-9.
	DigitTokens
)

// AllTokens replaces both spaces and digits.
const AllTokens = SpaceTokens | DigitTokens

// Every token starts with Q, ends with Z, has no doubled letters and avoids
// J and W, which the 5x5 squares fold away. Q occurs only at position 0 of a
// token, so no token can be found straddling two adjacent tokens.
const spaceToken = "QSPZ"

var digitTokens = [10]string{
	"QNAZ", "QNBZ", "QNCZ", "QNDZ", "QNEZ",
	"QNFZ", "QNGZ", "QNHZ", "QNIZ", "QNKZ",
}

// SpaceToken returns the placeholder for a space.
func SpaceToken() string {
	return spaceToken
}

// DigitToken returns the placeholder for digit d (0-9).
func DigitToken(d int) string {
	return digitTokens[d]
}

// EncodePlaceholders substitutes tokens for the characters selected by set.
// It must be the last step before a letters-only cipher.
func EncodePlaceholders(text string, set Tokens) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == ' ' && set&SpaceTokens != 0:
			b.WriteString(spaceToken)
		case r >= '0' && r <= '9' && set&DigitTokens != 0:
			b.WriteString(digitTokens[r-'0'])
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DecodePlaceholders reverses EncodePlaceholders, scanning left to right.
// It must be the first step after a letters-only cipher has produced
// plaintext letters.
func DecodePlaceholders(text string, set Tokens) string {
	var b strings.Builder
	for i := 0; i < len(text); {
		if tok, r, ok := tokenAt(text[i:], set); ok {
			b.WriteRune(r)
			i += len(tok)
			continue
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

func tokenAt(s string, set Tokens) (string, rune, bool) {
	if set&SpaceTokens != 0 && strings.HasPrefix(s, spaceToken) {
		return spaceToken, ' ', true
	}
	if set&DigitTokens != 0 {
		for d, tok := range digitTokens {
			if strings.HasPrefix(s, tok) {
				return tok, rune('0' + d), true
			}
		}
	}
	return "", 0, false
}
