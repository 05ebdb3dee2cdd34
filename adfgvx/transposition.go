package adfgvx

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vaultsandbox/cipherlab/internal/cipherr"
	"github.com/vaultsandbox/cipherlab/internal/textutil"
)

// Transpose writes text row by row under key and reads the columns out in
// the sorted order of the key's symbols, ties broken by position. The key
// is canonicalized to letters and digits; text is handled byte by byte.
func Transpose(text, key string) (string, error) {
	k, err := transpositionColumns(key)
	if err != nil {
		return "", err
	}
	return transpose(text, k), nil
}

// Untranspose reverses Transpose for any text length.
func Untranspose(text, key string) (string, error) {
	k, err := transpositionColumns(key)
	if err != nil {
		return "", err
	}
	return untranspose(text, k), nil
}

func transpositionColumns(key string) (string, error) {
	k := textutil.Canonicalize(key, textutil.LettersDigits)
	if k == "" {
		return "", fmt.Errorf("%w: transposition key has no letters or digits", cipherr.ErrInvalidKey)
	}
	return k, nil
}

// columnOrder returns column indexes in read-out order.
func columnOrder(key string) []int {
	order := make([]int, len(key))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return key[order[a]] < key[order[b]]
	})
	return order
}

func transpose(text, key string) string {
	cols := len(key)
	var b strings.Builder
	b.Grow(len(text))
	for _, col := range columnOrder(key) {
		for i := col; i < len(text); i += cols {
			b.WriteByte(text[i])
		}
	}
	return b.String()
}

// untranspose rebuilds the columns. With rows = ceil(n/cols), the last
// rows*cols-n columns by position hold one symbol fewer.
func untranspose(text, key string) string {
	n, cols := len(text), len(key)
	if n == 0 {
		return ""
	}
	rows := (n + cols - 1) / cols
	short := rows*cols - n

	out := make([]byte, n)
	pos := 0
	for _, col := range columnOrder(key) {
		height := rows
		if col >= cols-short {
			height--
		}
		for r := 0; r < height; r++ {
			out[r*cols+col] = text[pos]
			pos++
		}
	}
	return string(out)
}
