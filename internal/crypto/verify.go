package crypto

import (
	"encoding/hex"
	"fmt"
	"hash"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/vaultsandbox/cipherlab/internal/arith"
	"github.com/vaultsandbox/cipherlab/internal/cipherr"
)

// DigestAlgorithm selects the 256-bit hash applied to signed files.
type DigestAlgorithm int

const (
	// Keccak256 is the pre-standard Keccak with 256-bit output, the digest
	// that browser "SHA3" implementations compute. It is the default.
	Keccak256 DigestAlgorithm = iota
	// SHA3_256 is FIPS 202 SHA3-256.
	SHA3_256
)

func (a DigestAlgorithm) String() string {
	switch a {
	case Keccak256:
		return "keccak256"
	case SHA3_256:
		return "sha3-256"
	}
	return fmt.Sprintf("DigestAlgorithm(%d)", int(a))
}

// ParseDigestAlgorithm maps a name produced by String back to its value.
func ParseDigestAlgorithm(s string) (DigestAlgorithm, error) {
	switch strings.ToLower(s) {
	case "keccak256", "keccak-256", "":
		return Keccak256, nil
	case "sha3-256", "sha3_256", "sha3":
		return SHA3_256, nil
	}
	return 0, fmt.Errorf("%w: unknown digest %q", cipherr.ErrInvalidOptions, s)
}

func (a DigestAlgorithm) new() (hash.Hash, error) {
	switch a {
	case Keccak256:
		return sha3.NewLegacyKeccak256(), nil
	case SHA3_256:
		return sha3.New256(), nil
	}
	return nil, fmt.Errorf("%w: unknown digest %s", cipherr.ErrInvalidOptions, a)
}

// Digest returns the lower-case hex digest of data.
func Digest(alg DigestAlgorithm, data []byte) (string, error) {
	h, err := alg.new()
	if err != nil {
		return "", err
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Sign hashes data, reads the hex digest as an integer h and returns the
// signature tag for h^d mod n.
func Sign(alg DigestAlgorithm, data []byte, key PrivateKey) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}
	digest, err := Digest(alg, data)
	if err != nil {
		return "", err
	}

	h, _ := new(big.Int).SetString(digest, 16)
	return EncodeSignature(arith.ModPow(h, key.D, key.N)), nil
}

// Verify recovers s^e mod n from the signature tag, strips leading zero hex
// digits and compares the result with the hex digest of data. The digest
// itself is not stripped, so a digest with a leading zero nibble never
// verifies.
//
// A malformed tag is an error; a well-formed signature that does not match
// returns false with a nil error.
func Verify(alg DigestAlgorithm, data []byte, signature string, key PublicKey) (bool, error) {
	if err := key.Validate(); err != nil {
		return false, err
	}
	s, err := DecodeSignature(signature)
	if err != nil {
		return false, err
	}
	digest, err := Digest(alg, data)
	if err != nil {
		return false, err
	}

	recovered := strings.TrimLeft(arith.ModPow(s, key.E, key.N).Text(16), "0")
	return recovered == digest, nil
}

// EncodeSignature renders s as "RSA_SHA3-512 <base64 of big-endian bytes>".
func EncodeSignature(s *big.Int) string {
	return SignatureAlgorithm + " " + ToBase64(s.Bytes())
}

// DecodeSignature parses a signature tag. Only the second field is read;
// the algorithm name is informational.
func DecodeSignature(tag string) (*big.Int, error) {
	fields := strings.Split(strings.TrimSpace(tag), " ")
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: expected \"<algorithm> <base64>\"", cipherr.ErrInvalidSignature)
	}
	raw, err := FromBase64(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: decode signature: %v", cipherr.ErrInvalidSignature, err)
	}
	return new(big.Int).SetBytes(raw), nil
}
