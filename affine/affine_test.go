package affine

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/vaultsandbox/cipherlab/internal/cipherr"
	"github.com/vaultsandbox/cipherlab/internal/textutil"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		text string
		a, b int
		want string
	}{
		{"letters digits space", "Hello World 2024", 7, 3, "AFCCXXSPACEXBXSCYXSPACEX7371"},
		{"classic", "AFFINE CIPHER", 3, 5, "FUUDSRXSPACEXLDYARE"},
		{"identity", "ABC", 1, 0, "ABC"},
		{"negative shift", "Z9", 1, -1, "Y8"},
		{"punctuation dropped", "a-b,c!", 1, 0, "ABC"},
		{"diacritics stripped", "Čau", 1, 0, "CAU"},
		{"empty", "", 7, 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.text, tt.a, tt.b)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Encode(%q, %d, %d) = %q, want %q", tt.text, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEncode_InvalidCoefficient(t *testing.T) {
	tests := []struct {
		a       int
		modulus int
	}{
		{0, 26},
		{2, 26},
		{13, 26},
		{5, 10},
		{15, 10},
		{26, 26},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.a), func(t *testing.T) {
			got, err := Encode("HELLO", tt.a, 1)
			if !errors.Is(err, cipherr.ErrInvalidCoefficient) {
				t.Fatalf("Encode() error = %v, want ErrInvalidCoefficient", err)
			}
			if got != "" {
				t.Errorf("Encode() returned %q on error", got)
			}
			var ce *cipherr.CoefficientError
			if !errors.As(err, &ce) {
				t.Fatalf("error is not *CoefficientError: %T", err)
			}
			if ce.Modulus != tt.modulus {
				t.Errorf("Modulus = %d, want %d", ce.Modulus, tt.modulus)
			}
		})
	}
}

func TestDecode_NoInverse(t *testing.T) {
	for _, a := range []int{0, 2, 5, 13} {
		if _, err := Decode("ABC", a, 0); !errors.Is(err, cipherr.ErrNoInverseExists) {
			t.Errorf("Decode(a=%d) error = %v, want ErrNoInverseExists", a, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	texts := []string{
		"THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG",
		"Meet me at 10 30 near gate 7",
		"0123456789",
		"  leading and trailing  ",
		"Žluťoučký kůň úpěl ďábelské ódy",
	}

	for _, a := range ValidMultipliers() {
		for _, b := range []int{0, 1, 8, 25, -3, 100} {
			for _, text := range texts {
				enc, err := Encode(text, a, b)
				if err != nil {
					t.Fatalf("Encode(a=%d, b=%d) error = %v", a, b, err)
				}
				dec, err := Decode(enc, a, b)
				if err != nil {
					t.Fatalf("Decode(a=%d, b=%d) error = %v", a, b, err)
				}
				want := textutil.Canonicalize(text, textutil.LettersDigitsSpace)
				if dec != want {
					t.Errorf("a=%d b=%d: round trip of %q = %q, want %q", a, b, text, dec, want)
				}
			}
		}
	}
}

func TestValidMultipliers(t *testing.T) {
	want := []int{1, 3, 7, 9, 11, 17, 19, 21, 23}
	if got := ValidMultipliers(); !reflect.DeepEqual(got, want) {
		t.Errorf("ValidMultipliers() = %v, want %v", got, want)
	}
}

func ExampleEncode() {
	enc, _ := Encode("Affine cipher", 3, 5)
	dec, _ := Decode(enc, 3, 5)
	fmt.Println(enc)
	fmt.Println(dec)
	// Output:
	// FUUDSRXSPACEXLDYARE
	// AFFINE CIPHER
}
