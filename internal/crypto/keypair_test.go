package crypto

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/vaultsandbox/cipherlab/internal/arith"
	"github.com/vaultsandbox/cipherlab/internal/cipherr"
	"github.com/vaultsandbox/cipherlab/internal/rng"
)

func testParams(seed string, bits int) KeyGenParams {
	p := DefaultKeyGenParams()
	p.PrimeBits = bits
	p.Rand = rng.NewSeeded([]byte(seed))
	return p
}

func TestGenerateKeyPair(t *testing.T) {
	kp, err := GenerateKeyPair(testParams("keypair", 64))
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}

	if err := kp.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if kp.P.Cmp(kp.Q) == 0 {
		t.Error("p == q")
	}
	if bits := kp.N.BitLen(); bits < 127 || bits > 128 {
		t.Errorf("modulus has %d bits, want 127 or 128", bits)
	}
	if kp.E.Cmp(big.NewInt(PreferredExponent)) < 0 || kp.E.Bit(0) != 1 {
		t.Errorf("E = %s, want an odd value >= %d", kp.E, PreferredExponent)
	}
	if !arith.Coprime(kp.E, Totient(kp.P, kp.Q)) {
		t.Error("E is not coprime to the totient")
	}
}

func TestGenerateKeyPair_RoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair(testParams("roundtrip", 48))
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}

	r := rng.NewSeeded([]byte("messages"))
	for i := 0; i < 50; i++ {
		m, err := rng.Below(r, kp.N)
		if err != nil {
			t.Fatal(err)
		}
		c := arith.ModPow(m, kp.E, kp.N)
		if got := arith.ModPow(c, kp.D, kp.N); got.Cmp(m) != 0 {
			t.Fatalf("round trip of %s gave %s", m, got)
		}
	}
}

func TestGenerateKeyPair_Uniqueness(t *testing.T) {
	a, err := GenerateKeyPair(testParams("one", 64))
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateKeyPair(testParams("two", 64))
	if err != nil {
		t.Fatal(err)
	}
	if a.N.Cmp(b.N) == 0 {
		t.Error("different seeds produced the same modulus")
	}
}

func TestGenerateKeyPair_Timeout(t *testing.T) {
	params := KeyGenParams{
		PrimeBits:     MinPrimeBits,
		WitnessRounds: 5,
		MaxAttempts:   10,
		SearchLimit:   DefaultExponentSearchLimit,
		Rand:          zeroReader{},
	}

	_, err := GenerateKeyPair(params)
	if !errors.Is(err, cipherr.ErrKeyGenerationTimeout) {
		t.Fatalf("error = %v, want ErrKeyGenerationTimeout", err)
	}
	if !strings.Contains(err.Error(), "generate p") {
		t.Errorf("error = %q, want it to name p", err)
	}
}

func TestGenerateKeyPair_RedrawsEqualPrimes(t *testing.T) {
	// With 5-bit candidates the zero stream always yields 17, so q can
	// never differ from p and the budget for q runs out.
	params := KeyGenParams{
		PrimeBits:     5,
		WitnessRounds: 5,
		MaxAttempts:   10,
		SearchLimit:   DefaultExponentSearchLimit,
		Rand:          zeroReader{},
	}

	_, err := GenerateKeyPair(params)
	if !errors.Is(err, cipherr.ErrKeyGenerationTimeout) {
		t.Fatalf("error = %v, want ErrKeyGenerationTimeout", err)
	}
	if !strings.Contains(err.Error(), "generate q") {
		t.Errorf("error = %q, want it to name q", err)
	}
}

func TestGenerateKeyPair_TooSmall(t *testing.T) {
	_, err := GenerateKeyPair(testParams("small", MinPrimeBits-1))
	if !errors.Is(err, cipherr.ErrInvalidOptions) {
		t.Errorf("error = %v, want ErrInvalidOptions", err)
	}
}

func TestNewKeyPair_Textbook(t *testing.T) {
	kp, err := NewKeyPair(big.NewInt(61), big.NewInt(53), SearchUp, DefaultExponentSearchLimit)
	if err != nil {
		t.Fatalf("NewKeyPair() error = %v", err)
	}

	// 65537 ≡ 17 (mod 3120), so d matches the textbook 2753.
	if kp.N.Int64() != 3233 {
		t.Errorf("N = %s, want 3233", kp.N)
	}
	if kp.E.Int64() != PreferredExponent {
		t.Errorf("E = %s, want %d", kp.E, PreferredExponent)
	}
	if kp.D.Int64() != 2753 {
		t.Errorf("D = %s, want 2753", kp.D)
	}
}

func TestNewKeyPair_EqualPrimes(t *testing.T) {
	_, err := NewKeyPair(big.NewInt(61), big.NewInt(61), SearchUp, 10)
	if !errors.Is(err, cipherr.ErrInvalidKey) {
		t.Errorf("error = %v, want ErrInvalidKey", err)
	}
}

func TestChooseExponent(t *testing.T) {
	blocked := big.NewInt(2 * PreferredExponent)

	tests := []struct {
		name   string
		lambda *big.Int
		search ExponentSearch
		limit  int
		want   int64
	}{
		{"preferred", big.NewInt(3120), SearchUp, 10, 65537},
		{"up", blocked, SearchUp, 10, 65539},
		{"down", blocked, SearchDown, 10, 65535},
		{"up skips shared factor", big.NewInt(2 * 65537 * 65539), SearchUp, 10, 65541},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ChooseExponent(tt.lambda, tt.search, tt.limit)
			if err != nil {
				t.Fatalf("ChooseExponent() error = %v", err)
			}
			if got.Int64() != tt.want {
				t.Errorf("ChooseExponent() = %s, want %d", got, tt.want)
			}
		})
	}
}

func TestChooseExponent_Exhausted(t *testing.T) {
	blocked := big.NewInt(2 * PreferredExponent)
	for _, limit := range []int{0, 1} {
		_, err := ChooseExponent(blocked, SearchUp, limit)
		if !errors.Is(err, cipherr.ErrNoValidExponent) {
			t.Errorf("limit %d: error = %v, want ErrNoValidExponent", limit, err)
		}
	}
}

func TestKeyPair_Validate(t *testing.T) {
	kp := textbookKey()
	if err := kp.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	broken := textbookKey()
	broken.D = big.NewInt(2754)
	if err := broken.Validate(); !errors.Is(err, cipherr.ErrInvalidKey) {
		t.Errorf("wrong d: error = %v, want ErrInvalidKey", err)
	}

	broken = textbookKey()
	broken.Q = big.NewInt(59)
	if err := broken.Validate(); !errors.Is(err, cipherr.ErrInvalidKey) {
		t.Errorf("wrong q: error = %v, want ErrInvalidKey", err)
	}

	imported := textbookKey()
	imported.P, imported.Q = nil, nil
	if err := imported.Validate(); err != nil {
		t.Errorf("without primes: error = %v", err)
	}

	var nilPair *KeyPair
	if err := nilPair.Validate(); !errors.Is(err, cipherr.ErrInvalidKey) {
		t.Errorf("nil pair: error = %v, want ErrInvalidKey", err)
	}
}

func TestKeyPair_HalvesAreCopies(t *testing.T) {
	kp := textbookKey()
	pub := kp.Public()
	priv := kp.Private()

	pub.N.SetInt64(1)
	priv.D.SetInt64(1)
	if kp.N.Int64() != 3233 || kp.D.Int64() != 2753 {
		t.Error("mutating a half changed the pair")
	}
}

func TestKeyValidate(t *testing.T) {
	tests := []struct {
		name string
		key  PublicKey
	}{
		{"nil modulus", PublicKey{E: big.NewInt(3)}},
		{"modulus one", PublicKey{N: big.NewInt(1), E: big.NewInt(3)}},
		{"nil exponent", PublicKey{N: big.NewInt(3233)}},
		{"zero exponent", PublicKey{N: big.NewInt(3233), E: big.NewInt(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.key.Validate(); !errors.Is(err, cipherr.ErrInvalidKey) {
				t.Errorf("Validate() error = %v, want ErrInvalidKey", err)
			}
		})
	}
}

func TestExponentSearch_String(t *testing.T) {
	if SearchUp.String() != "up" || SearchDown.String() != "down" {
		t.Errorf("String() = %q, %q", SearchUp, SearchDown)
	}
	if got := ExponentSearch(7).String(); got != "ExponentSearch(7)" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseExponentSearch(t *testing.T) {
	tests := []struct {
		in   string
		want ExponentSearch
	}{
		{"up", SearchUp},
		{"", SearchUp},
		{"DOWN", SearchDown},
	}
	for _, tt := range tests {
		got, err := ParseExponentSearch(tt.in)
		if err != nil {
			t.Fatalf("ParseExponentSearch(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseExponentSearch(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseExponentSearch("sideways"); !errors.Is(err, cipherr.ErrInvalidOptions) {
		t.Errorf("ParseExponentSearch(sideways) error = %v, want ErrInvalidOptions", err)
	}
}
