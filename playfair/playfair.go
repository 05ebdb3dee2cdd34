// Package playfair implements the Playfair digraph cipher on a keyed 5x5
// square.
//
// Messages are canonicalized to letters, digits and spaces; spaces and
// digits are replaced by placeholder tokens and the result is folded into
// the 25-letter alphabet of the chosen Variant before it is split into
// digraphs.
package playfair

import (
	"fmt"
	"strings"

	"github.com/vaultsandbox/cipherlab/internal/cipherr"
	"github.com/vaultsandbox/cipherlab/internal/grid"
	"github.com/vaultsandbox/cipherlab/internal/textutil"
)

// Variant selects the letter merged away to fit 26 letters into 25 cells.
type Variant int

const (
	// FoldJ merges J into I.
	FoldJ Variant = iota
	// FoldW merges W into V.
	FoldW
)

func (v Variant) String() string {
	switch v {
	case FoldJ:
		return "J=I"
	case FoldW:
		return "W=V"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant maps "J", "I", "J=I" or "FOLDJ" to FoldJ and "W", "V", "W=V"
// or "FOLDW" to FoldW, in any case.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToUpper(s) {
	case "J", "I", "J=I", "FOLDJ", "":
		return FoldJ, nil
	case "W", "V", "W=V", "FOLDW":
		return FoldW, nil
	}
	return 0, fmt.Errorf("%w: unknown playfair variant %q", cipherr.ErrInvalidOptions, s)
}

func (v Variant) fold() (from, to rune, alphabet string, err error) {
	switch v {
	case FoldJ:
		return 'J', 'I', grid.AlphabetNoJ, nil
	case FoldW:
		return 'W', 'V', grid.AlphabetNoW, nil
	}
	return 0, 0, "", fmt.Errorf("%w: unknown playfair variant %d", cipherr.ErrInvalidOptions, int(v))
}

const (
	// Filler separates doubled letters and pads an odd final letter.
	Filler = 'X'
	// AltFiller replaces Filler next to an X.
	AltFiller = 'G'
)

const size = 5

// Square is the keyed 5x5 grid.
type Square struct {
	g grid.Grid
}

// Rows returns the square as five strings.
func (s Square) Rows() []string {
	return s.g.Rows()
}

func (s Square) String() string {
	return s.g.String()
}

// Cipher enciphers and deciphers with one square.
type Cipher struct {
	square  Square
	variant Variant
}

// New builds the square for key: letters only, folded, unique key letters
// first and then the rest of the alphabet.
func New(key string, v Variant) (*Cipher, error) {
	from, to, alphabet, err := v.fold()
	if err != nil {
		return nil, err
	}
	key = textutil.Fold(textutil.Canonicalize(key, textutil.LettersOnly), from, to)
	g, err := grid.New(key, alphabet, size)
	if err != nil {
		return nil, err
	}
	return &Cipher{square: Square{g: g}, variant: v}, nil
}

// Square returns the cipher's grid.
func (c *Cipher) Square() Square {
	return c.square
}

// Encode enciphers the digraph stream produced by Prepare.
func (c *Cipher) Encode(text string) (string, error) {
	stream, _, err := Prepare(text, c.variant)
	if err != nil {
		return "", err
	}
	return c.shift(stream, 1)
}

// DecodeOption configures Decode.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	length int
}

// WithLength truncates the deciphered stream to n letters before the
// placeholder tokens are decoded. Pass the length reported by Prepare to
// drop the pad letter.
func WithLength(n int) DecodeOption {
	return func(c *decodeConfig) {
		c.length = n
	}
}

// Decode reverses Encode. Letters outside the alphabet are ignored and the
// folded letter is read as its replacement. Filler letters inserted between
// doubled letters stay in the output.
func (c *Cipher) Decode(ciphertext string, opts ...DecodeOption) (string, error) {
	cfg := decodeConfig{length: -1}
	for _, opt := range opts {
		opt(&cfg)
	}

	from, to, _, err := c.variant.fold()
	if err != nil {
		return "", err
	}
	stream := textutil.Fold(textutil.Canonicalize(ciphertext, textutil.LettersOnly), from, to)
	if len(stream)%2 != 0 {
		return "", &cipherr.TokenError{Position: len(stream), Reason: "odd number of letters in digraph stream"}
	}

	plain, err := c.shift(stream, -1)
	if err != nil {
		return "", err
	}
	if cfg.length >= 0 && cfg.length < len(plain) {
		plain = plain[:cfg.length]
	}
	return textutil.DecodePlaceholders(plain, textutil.AllTokens), nil
}

// shift applies the digraph rules to an even-length stream. dir is +1 to
// encipher (right, down) and -1 to decipher (left, up).
func (c *Cipher) shift(stream string, dir int) (string, error) {
	g := c.square.g
	out := make([]rune, 0, len(stream))
	letters := []rune(stream)
	for i := 0; i+1 < len(letters); i += 2 {
		r1, c1, err := g.Locate(letters[i])
		if err != nil {
			return "", err
		}
		r2, c2, err := g.Locate(letters[i+1])
		if err != nil {
			return "", err
		}

		switch {
		case r1 == r2:
			out = append(out, g.At(r1, c1+dir), g.At(r2, c2+dir))
		case c1 == c2:
			out = append(out, g.At(r1+dir, c1), g.At(r2+dir, c2))
		default:
			out = append(out, g.At(r1, c2), g.At(r2, c1))
		}
	}
	return string(out), nil
}

// Prepare returns the digraph stream that Encode enciphers and the length
// of that stream before the final pad letter. Doubled letters inside a pair
// are split by Filler (AltFiller when the letter is X itself); an odd
// final letter is padded the same way.
func Prepare(text string, v Variant) (stream string, length int, err error) {
	from, to, _, err := v.fold()
	if err != nil {
		return "", 0, err
	}
	text = textutil.Canonicalize(text, textutil.LettersDigitsSpace)
	text = textutil.EncodePlaceholders(text, textutil.AllTokens)
	letters := []rune(textutil.Fold(text, from, to))

	out := make([]rune, 0, len(letters)+len(letters)/2+1)
	for i := 0; i < len(letters); {
		a := letters[i]
		if i+1 == len(letters) {
			length = len(out) + 1
			out = append(out, a, fillerFor(a))
			return string(out), length, nil
		}

		b := letters[i+1]
		if a == b {
			out = append(out, a, fillerFor(a))
			i++
			continue
		}
		out = append(out, a, b)
		i += 2
	}
	return string(out), len(out), nil
}

func fillerFor(r rune) rune {
	if r == Filler {
		return AltFiller
	}
	return Filler
}

// Encode enciphers text with a square built from key.
func Encode(text, key string, v Variant) (string, error) {
	c, err := New(key, v)
	if err != nil {
		return "", err
	}
	return c.Encode(text)
}

// Decode deciphers text with a square built from key.
func Decode(ciphertext, key string, v Variant, opts ...DecodeOption) (string, error) {
	c, err := New(key, v)
	if err != nil {
		return "", err
	}
	return c.Decode(ciphertext, opts...)
}
