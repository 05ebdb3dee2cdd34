package crypto

const (
	// KeyAlgorithm is the tag that opens an exported key.
	KeyAlgorithm = "RSA"

	// SignatureAlgorithm is the tag that opens a signature entry. The name
	// is part of the wire format and does not describe the digest width.
	SignatureAlgorithm = "RSA_SHA3-512"

	// PreferredExponent is the first public exponent tried.
	PreferredExponent = 65537

	// BitsPerChar is the width of one character inside an RSA text block.
	BitsPerChar = 8

	// DefaultPrimeBits is the size of each RSA prime.
	DefaultPrimeBits = 256
	// DefaultWitnessRounds is the number of Fermat witnesses per candidate.
	DefaultWitnessRounds = 5
	// DefaultBlockChars is the number of characters packed into one block.
	DefaultBlockChars = 8
	// DefaultMaxAttempts bounds the candidates drawn per prime.
	DefaultMaxAttempts = 100000
	// DefaultExponentSearchLimit bounds the public exponent search.
	DefaultExponentSearchLimit = 1 << 16

	// MinPrimeBits is the smallest prime size that still yields two
	// distinct primes.
	MinPrimeBits = 4
)
