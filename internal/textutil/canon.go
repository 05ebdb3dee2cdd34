// Package textutil canonicalizes text before it enters a cipher and provides
// the reversible placeholder tokens that carry spaces and digits through
// letters-only transforms.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Retain selects which symbols survive canonicalization.
type Retain uint8

const (
	// Letters keeps A-Z (input is upper-cased first).
	Letters Retain = 1 << iota
	// Digits keeps 0-9.
	Digits
	// Space keeps the ASCII space character.
	Space
	// Printable keeps every printable ASCII character (0x20-0x7E) and
	// preserves case. It overrides the other flags.
	Printable
)

// Common retain sets.
const (
	LettersOnly        = Letters
	LettersDigits      = Letters | Digits
	LettersDigitsSpace = Letters | Digits | Space
)

// StripDiacritics removes combining marks after canonical decomposition, so
// "Příliš" becomes "Prilis". Characters with no decomposition are kept as-is.
func StripDiacritics(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

// Canonicalize strips diacritics, upper-cases (unless keep includes
// Printable) and removes every character outside the retained set.
func Canonicalize(text string, keep Retain) string {
	text = StripDiacritics(text)
	if keep&Printable == 0 {
		text = strings.ToUpper(text)
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if Keeps(keep, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Keeps reports whether r belongs to the retained set.
func Keeps(keep Retain, r rune) bool {
	switch {
	case keep&Printable != 0:
		return r >= 0x20 && r <= 0x7e
	case r >= 'A' && r <= 'Z':
		return keep&Letters != 0
	case r >= '0' && r <= '9':
		return keep&Digits != 0
	case r == ' ':
		return keep&Space != 0
	}
	return false
}

// Fold replaces every occurrence of from with to. Playfair and ADFGX use it
// to merge J into I (or W into V) so the alphabet fits a 5x5 square.
func Fold(text string, from, to rune) string {
	if from == 0 {
		return text
	}
	return strings.Map(func(r rune) rune {
		if r == from {
			return to
		}
		return r
	}, text)
}
