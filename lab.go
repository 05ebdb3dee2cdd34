package cipherlab

import (
	"fmt"
	"io"
	"math/big"

	"github.com/vaultsandbox/cipherlab/adfgvx"
	"github.com/vaultsandbox/cipherlab/affine"
	"github.com/vaultsandbox/cipherlab/internal/bundle"
	"github.com/vaultsandbox/cipherlab/internal/crypto"
	"github.com/vaultsandbox/cipherlab/internal/rng"
	"github.com/vaultsandbox/cipherlab/playfair"
)

// KeyPair is an RSA key pair. P and Q are nil for imported keys.
type KeyPair = crypto.KeyPair

// PublicKey is the modulus and public exponent.
type PublicKey = crypto.PublicKey

// PrivateKey is the modulus and private exponent.
type PrivateKey = crypto.PrivateKey

// Bundle is the content of a signed archive.
type Bundle = bundle.Bundle

// Lab runs every cipher with one validated configuration. A Lab holds no
// mutable state and is safe for concurrent use as long as its random
// source is.
type Lab struct {
	opts Options
}

// New returns a Lab configured by opts on top of DefaultOptions.
func New(opts ...Option) (*Lab, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &Lab{opts: o}, nil
}

// NewFromOptions returns a Lab for a fully specified Options value.
func NewFromOptions(o Options) (*Lab, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &Lab{opts: o}, nil
}

// Options returns the Lab's configuration.
func (l *Lab) Options() Options {
	return l.opts
}

// NewSeededRand returns a deterministic random stream for seed, for use
// with WithRand.
func NewSeededRand(seed []byte) io.Reader {
	return rng.NewSeeded(seed)
}

// GenerateKeyPair draws two distinct probable primes of Options.PrimeBits
// bits and derives an RSA key pair from them.
func (l *Lab) GenerateKeyPair() (*KeyPair, error) {
	kp, err := crypto.GenerateKeyPair(l.opts.keyGenParams())
	if err != nil {
		return nil, fmt.Errorf("generate key pair: %w", err)
	}
	return kp, nil
}

// KeyPairFromPrimes derives a key pair from known primes p and q using the
// Lab's exponent search.
func (l *Lab) KeyPairFromPrimes(p, q *big.Int) (*KeyPair, error) {
	return crypto.NewKeyPair(p, q, l.opts.ExponentSearch, l.opts.ExponentSearchLimit)
}

// EncryptText encrypts text in blocks of Options.BlockChars characters.
func (l *Lab) EncryptText(text string, key PublicKey) (string, error) {
	return crypto.EncryptText(text, key, l.opts.BlockChars)
}

// DecryptText reverses EncryptText.
func (l *Lab) DecryptText(ciphertext string, key PrivateKey) (string, error) {
	return crypto.DecryptText(ciphertext, key, l.opts.BlockChars)
}

// DigestFile returns the lower-case hex digest of data.
func (l *Lab) DigestFile(data []byte) (string, error) {
	return crypto.Digest(l.opts.Digest, data)
}

// Sign returns the signature tag for data.
func (l *Lab) Sign(data []byte, key PrivateKey) (string, error) {
	return crypto.Sign(l.opts.Digest, data, key)
}

// Verify checks a signature tag against data.
func (l *Lab) Verify(data []byte, signature string, key PublicKey) (bool, error) {
	return crypto.Verify(l.opts.Digest, data, signature, key)
}

// SignFile signs data and returns a ZIP archive holding name and
// name+".sign".
func (l *Lab) SignFile(name string, data []byte, key PrivateKey) ([]byte, error) {
	sig, err := l.Sign(data, key)
	if err != nil {
		return nil, fmt.Errorf("sign %s: %w", name, err)
	}
	archive, err := bundle.Pack(name, data, sig)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", name, err)
	}
	return archive, nil
}

// VerifyBundle opens an archive made by SignFile and verifies it. A missing
// entry or malformed signature is an error; a signature that does not match
// returns false.
func (l *Lab) VerifyBundle(archive []byte, key PublicKey) (bool, error) {
	b, err := l.OpenBundle(archive)
	if err != nil {
		return false, err
	}
	return l.Verify(b.Data, b.Signature, key)
}

// OpenBundle returns the entries of a signed archive without verifying them.
func (l *Lab) OpenBundle(archive []byte) (*Bundle, error) {
	b, err := bundle.Unpack(archive)
	if err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}
	return b, nil
}

// AffineEncode enciphers text with the affine key (a, b).
func (l *Lab) AffineEncode(text string, a, b int) (string, error) {
	return affine.Encode(text, a, b)
}

// AffineDecode reverses AffineEncode.
func (l *Lab) AffineDecode(text string, a, b int) (string, error) {
	return affine.Decode(text, a, b)
}

// PlayfairEncode enciphers text with a square built from key.
func (l *Lab) PlayfairEncode(text, key string) (string, error) {
	return playfair.Encode(text, key, l.opts.PlayfairVariant)
}

// PlayfairDecode deciphers text with a square built from key.
func (l *Lab) PlayfairDecode(ciphertext, key string, opts ...playfair.DecodeOption) (string, error) {
	return playfair.Decode(ciphertext, key, l.opts.PlayfairVariant, opts...)
}

// ADFGVXEncode enciphers text with the configured alphabet variant.
func (l *Lab) ADFGVXEncode(text, squareKey, transpositionKey string) (string, error) {
	return adfgvx.Encode(text, squareKey, transpositionKey, l.opts.AlphabetVariant)
}

// ADFGVXDecode reverses ADFGVXEncode.
func (l *Lab) ADFGVXDecode(ciphertext, squareKey, transpositionKey string) (string, error) {
	return adfgvx.Decode(ciphertext, squareKey, transpositionKey, l.opts.AlphabetVariant)
}

// ExportPublicKey renders key as "RSA <b64(n)> <b64(e)>".
func ExportPublicKey(key PublicKey) (string, error) {
	return crypto.ExportPublicKey(key)
}

// ExportPrivateKey renders key as "RSA <b64(n)> <b64(d)>".
func ExportPrivateKey(key PrivateKey) (string, error) {
	return crypto.ExportPrivateKey(key)
}

// ImportPublicKey parses the output of ExportPublicKey.
func ImportPublicKey(s string) (PublicKey, error) {
	return crypto.ImportPublicKey(s)
}

// ImportPrivateKey parses the output of ExportPrivateKey.
func ImportPrivateKey(s string) (PrivateKey, error) {
	return crypto.ImportPrivateKey(s)
}
