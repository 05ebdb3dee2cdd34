// Package grid builds the keyed squares used by Playfair and the ADFGX and
// ADFGVX ciphers: unique key symbols first, then the rest of the alphabet in
// canonical order, read row by row.
package grid

import (
	"fmt"
	"strings"

	"github.com/vaultsandbox/cipherlab/internal/cipherr"
)

// Alphabets in canonical order.
const (
	// AlphabetNoJ is the 25-letter alphabet with J merged into I.
	AlphabetNoJ = "ABCDEFGHIKLMNOPQRSTUVWXYZ"
	// AlphabetNoW is the 25-letter alphabet with W merged into V.
	AlphabetNoW = "ABCDEFGHIJKLMNOPQRSTUVXYZ"
	// Alphanumeric is the 36-symbol alphabet of the 6x6 square.
	Alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type position struct {
	row, col int
}

// Grid is an immutable size x size square of symbols.
type Grid struct {
	size  int
	cells []rune
	index map[rune]position
}

// New builds the square for key over alphabet. Key symbols not in the
// alphabet are skipped, so callers canonicalize and fold the key first.
// The alphabet must be duplicate-free with exactly size*size symbols.
func New(key, alphabet string, size int) (Grid, error) {
	symbols := []rune(alphabet)
	if size <= 0 || len(symbols) != size*size {
		return Grid{}, fmt.Errorf("%w: alphabet of %d symbols cannot fill a %dx%d grid",
			cipherr.ErrInvalidOptions, len(symbols), size, size)
	}

	inAlphabet := make(map[rune]bool, len(symbols))
	for _, r := range symbols {
		if inAlphabet[r] {
			return Grid{}, fmt.Errorf("%w: duplicate symbol %q in alphabet", cipherr.ErrInvalidOptions, r)
		}
		inAlphabet[r] = true
	}

	g := Grid{
		size:  size,
		cells: make([]rune, 0, len(symbols)),
		index: make(map[rune]position, len(symbols)),
	}
	place := func(r rune) {
		if !inAlphabet[r] {
			return
		}
		if _, seen := g.index[r]; seen {
			return
		}
		i := len(g.cells)
		g.index[r] = position{row: i / size, col: i % size}
		g.cells = append(g.cells, r)
	}

	for _, r := range key {
		place(r)
	}
	for _, r := range symbols {
		place(r)
	}
	return g, nil
}

// Size returns the number of rows (and columns).
func (g Grid) Size() int {
	return g.size
}

// At returns the symbol at row, col. Both wrap modulo the grid size.
func (g Grid) At(row, col int) rune {
	row = ((row % g.size) + g.size) % g.size
	col = ((col % g.size) + g.size) % g.size
	return g.cells[row*g.size+col]
}

// Locate returns the coordinates of r, or a *cipherr.SymbolError.
func (g Grid) Locate(r rune) (row, col int, err error) {
	p, ok := g.index[r]
	if !ok {
		return 0, 0, &cipherr.SymbolError{Symbol: r, Where: "grid"}
	}
	return p.row, p.col, nil
}

// Contains reports whether r is in the grid.
func (g Grid) Contains(r rune) bool {
	_, ok := g.index[r]
	return ok
}

// Rows returns the grid as one string per row.
func (g Grid) Rows() []string {
	rows := make([]string, g.size)
	for i := range rows {
		rows[i] = string(g.cells[i*g.size : (i+1)*g.size])
	}
	return rows
}

// String renders the grid with rows separated by newlines.
func (g Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}
