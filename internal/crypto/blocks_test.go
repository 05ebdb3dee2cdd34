package crypto

import (
	"errors"
	"strings"
	"testing"

	"github.com/vaultsandbox/cipherlab/internal/cipherr"
)

func TestEncryptText_Textbook(t *testing.T) {
	kp := textbookKey()

	got, err := EncryptText("Hi!", kp.Public(), 1)
	if err != nil {
		t.Fatalf("EncryptText() error = %v", err)
	}
	if want := "3000 3179 1853"; got != want {
		t.Errorf("EncryptText() = %q, want %q", got, want)
	}

	plain, err := DecryptText(got, kp.Private(), 1)
	if err != nil {
		t.Fatalf("DecryptText() error = %v", err)
	}
	if plain != "Hi!" {
		t.Errorf("DecryptText() = %q, want %q", plain, "Hi!")
	}
}

func TestEncryptText_RoundTrip(t *testing.T) {
	kp := mersenneKey(t)

	tests := []struct {
		name       string
		input      string
		blockChars int
		want       string
	}{
		{"exact blocks", "ABCDEFGH", 8, "ABCDEFGH"},
		{"one pad space dropped", "ABCDEFG", 8, "ABCDEFG"},
		{"only one pad space dropped", "HELLO", 8, "HELLO  "},
		{"mixed case kept", "Hello, World", 4, "Hello, World"},
		{"diacritics stripped", "Příliš žluťoučký", 16, "Prilis zlutoucky"},
		{"control chars removed", "a\tb\nc", 3, "abc"},
		{"wide blocks", strings.Repeat("xyz", 30), 80, strings.Repeat("xyz", 30) + strings.Repeat(" ", 69)},
		{"empty", "", 8, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := EncryptText(tt.input, kp.Public(), tt.blockChars)
			if err != nil {
				t.Fatalf("EncryptText() error = %v", err)
			}
			got, err := DecryptText(ct, kp.Private(), tt.blockChars)
			if err != nil {
				t.Fatalf("DecryptText() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("round trip = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncryptText_BlockCount(t *testing.T) {
	kp := mersenneKey(t)
	ct, err := EncryptText("seventeen letters", kp.Public(), 8)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(strings.Fields(ct)); n != 3 {
		t.Errorf("got %d blocks, want 3", n)
	}
}

func TestCheckBlockWidth(t *testing.T) {
	small := textbookKey().N // 12 bits
	if err := CheckBlockWidth(small, 1); err != nil {
		t.Errorf("CheckBlockWidth(3233, 1) error = %v", err)
	}
	if err := CheckBlockWidth(small, 2); !errors.Is(err, cipherr.ErrBlockTooLarge) {
		t.Errorf("CheckBlockWidth(3233, 2) error = %v, want ErrBlockTooLarge", err)
	}
	if err := CheckBlockWidth(small, 0); !errors.Is(err, cipherr.ErrInvalidOptions) {
		t.Errorf("CheckBlockWidth(3233, 0) error = %v, want ErrInvalidOptions", err)
	}

	kp := mersenneKey(t) // 648 bits
	if err := CheckBlockWidth(kp.N, 80); err != nil {
		t.Errorf("CheckBlockWidth(648 bits, 80) error = %v", err)
	}
	if _, err := EncryptText("x", kp.Public(), 81); !errors.Is(err, cipherr.ErrBlockTooLarge) {
		t.Errorf("EncryptText(81 chars) error = %v, want ErrBlockTooLarge", err)
	}
}

func TestDecryptText_MalformedTokens(t *testing.T) {
	priv := textbookKey().Private()

	tests := []struct {
		name     string
		input    string
		position int
	}{
		{"letters", "3000 12a", 1},
		{"negative", "-5", 0},
		{"plus sign", "+3000", 0},
		{"decimal point", "3000 3179 1.5", 2},
		{"too wide", "3000 391", 1}, // 391 decrypts to 300
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecryptText(tt.input, priv, 1)
			if !errors.Is(err, cipherr.ErrMalformedCipherToken) {
				t.Fatalf("DecryptText() error = %v, want ErrMalformedCipherToken", err)
			}
			if got != "" {
				t.Errorf("DecryptText() returned partial output %q", got)
			}
			var te *cipherr.TokenError
			if !errors.As(err, &te) {
				t.Fatalf("error is not *TokenError: %T", err)
			}
			if te.Position != tt.position {
				t.Errorf("Position = %d, want %d", te.Position, tt.position)
			}
		})
	}
}

func TestDecryptText_Whitespace(t *testing.T) {
	got, err := DecryptText("  3000\t3179\n1853  ", textbookKey().Private(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hi!" {
		t.Errorf("DecryptText() = %q, want %q", got, "Hi!")
	}
}

func BenchmarkEncryptText(b *testing.B) {
	kp, err := GenerateKeyPair(testParams("bench", DefaultPrimeBits))
	if err != nil {
		b.Fatal(err)
	}
	pub := kp.Public()
	text := strings.Repeat("The quick brown fox ", 10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := EncryptText(text, pub, DefaultBlockChars); err != nil {
			b.Fatal(err)
		}
	}
}
