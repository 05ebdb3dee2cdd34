// Package adfgvx implements the ADFGX and ADFGVX field ciphers: a keyed
// Polybius square substitutes every symbol with a pair of indicator letters
// and a keyed columnar transposition then reorders the indicators.
package adfgvx

import (
	"fmt"
	"strings"

	"github.com/vaultsandbox/cipherlab/internal/cipherr"
	"github.com/vaultsandbox/cipherlab/internal/grid"
	"github.com/vaultsandbox/cipherlab/internal/textutil"
)

// Variant selects the square and indicator alphabet.
type Variant int

const (
	// ADFGX uses a 5x5 square of letters with J read as I. Spaces and
	// digits travel as placeholder tokens.
	ADFGX Variant = iota
	// ADFGVX uses a 6x6 square of letters and digits. Only spaces need
	// placeholder tokens.
	ADFGVX
)

func (v Variant) String() string {
	switch v {
	case ADFGX:
		return "ADFGX"
	case ADFGVX:
		return "ADFGVX"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant maps "ADFGX" or "ADFGVX" (any case) to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToUpper(s) {
	case "ADFGX":
		return ADFGX, nil
	case "ADFGVX":
		return ADFGVX, nil
	}
	return 0, fmt.Errorf("%w: unknown variant %q", cipherr.ErrInvalidOptions, s)
}

type params struct {
	size       int
	alphabet   string
	indicators string
	tokens     textutil.Tokens
	fold       rune
}

func (v Variant) params() (params, error) {
	switch v {
	case ADFGX:
		return params{5, grid.AlphabetNoJ, "ADFGX", textutil.AllTokens, 'J'}, nil
	case ADFGVX:
		return params{6, grid.Alphanumeric, "ADFGVX", textutil.SpaceTokens, 0}, nil
	}
	return params{}, fmt.Errorf("%w: unknown variant %d", cipherr.ErrInvalidOptions, int(v))
}

// GridSize returns the side of the variant's square.
func (v Variant) GridSize() int {
	p, _ := v.params()
	return p.size
}

// Indicators returns the letters that label rows and columns.
func (v Variant) Indicators() string {
	p, _ := v.params()
	return p.indicators
}

// Square is the keyed Polybius square.
type Square struct {
	g grid.Grid
}

// Rows returns the square row by row.
func (s Square) Rows() []string {
	return s.g.Rows()
}

func (s Square) String() string {
	return s.g.String()
}

// Cipher holds a square and a transposition key.
type Cipher struct {
	variant Variant
	p       params
	square  Square
	key     string
}

// New builds a cipher from the square key and the transposition key. Both
// keys are canonicalized; the transposition key must keep at least one
// symbol.
func New(squareKey, transpositionKey string, v Variant) (*Cipher, error) {
	p, err := v.params()
	if err != nil {
		return nil, err
	}

	squareKey = textutil.Fold(textutil.Canonicalize(squareKey, textutil.LettersDigits), p.fold, 'I')
	g, err := grid.New(squareKey, p.alphabet, p.size)
	if err != nil {
		return nil, err
	}

	key, err := transpositionColumns(transpositionKey)
	if err != nil {
		return nil, err
	}

	return &Cipher{variant: v, p: p, square: Square{g: g}, key: key}, nil
}

// Square returns the cipher's Polybius square.
func (c *Cipher) Square() Square {
	return c.square
}

// Variant returns the cipher's variant.
func (c *Cipher) Variant() Variant {
	return c.variant
}

// Encode canonicalizes text, replaces spaces (and for ADFGX digits) with
// placeholder tokens, substitutes and transposes.
func (c *Cipher) Encode(text string) (string, error) {
	sub, err := c.Substitute(text)
	if err != nil {
		return "", err
	}
	return transpose(sub, c.key), nil
}

// Decode reverses Encode. Characters outside the indicator alphabet fail
// with a *cipherr.SymbolError and an odd number of indicators with a
// *cipherr.TokenError.
func (c *Cipher) Decode(ciphertext string) (string, error) {
	stream := textutil.Canonicalize(ciphertext, textutil.LettersDigits)
	for _, r := range stream {
		if !strings.ContainsRune(c.p.indicators, r) {
			return "", &cipherr.SymbolError{Symbol: r, Where: c.variant.String() + " indicators"}
		}
	}
	return c.Unsubstitute(untranspose(stream, c.key))
}

// Substitute performs the Polybius step alone: each prepared symbol becomes
// its row indicator followed by its column indicator.
func (c *Cipher) Substitute(text string) (string, error) {
	prepared := textutil.Canonicalize(text, textutil.LettersDigitsSpace)
	prepared = textutil.EncodePlaceholders(prepared, c.p.tokens)
	prepared = textutil.Fold(prepared, c.p.fold, 'I')

	var b strings.Builder
	b.Grow(2 * len(prepared))
	for _, r := range prepared {
		row, col, err := c.square.g.Locate(r)
		if err != nil {
			return "", err
		}
		b.WriteByte(c.p.indicators[row])
		b.WriteByte(c.p.indicators[col])
	}
	return b.String(), nil
}

// Unsubstitute reverses Substitute and decodes placeholder tokens.
func (c *Cipher) Unsubstitute(stream string) (string, error) {
	if len(stream)%2 != 0 {
		return "", &cipherr.TokenError{Position: len(stream), Reason: "odd number of indicators"}
	}

	var b strings.Builder
	b.Grow(len(stream) / 2)
	for i := 0; i < len(stream); i += 2 {
		row := strings.IndexByte(c.p.indicators, stream[i])
		col := strings.IndexByte(c.p.indicators, stream[i+1])
		if row < 0 || col < 0 {
			bad := stream[i]
			if row >= 0 {
				bad = stream[i+1]
			}
			return "", &cipherr.SymbolError{Symbol: rune(bad), Where: c.variant.String() + " indicators"}
		}
		b.WriteRune(c.square.g.At(row, col))
	}
	return textutil.DecodePlaceholders(b.String(), c.p.tokens), nil
}

// Encode enciphers text with a fresh cipher.
func Encode(text, squareKey, transpositionKey string, v Variant) (string, error) {
	c, err := New(squareKey, transpositionKey, v)
	if err != nil {
		return "", err
	}
	return c.Encode(text)
}

// Decode deciphers text with a fresh cipher.
func Decode(ciphertext, squareKey, transpositionKey string, v Variant) (string, error) {
	c, err := New(squareKey, transpositionKey, v)
	if err != nil {
		return "", err
	}
	return c.Decode(ciphertext)
}
