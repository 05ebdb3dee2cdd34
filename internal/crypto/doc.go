// Package crypto implements the textbook RSA used by cipherlab: a Fermat
// primality test, prime and key-pair generation, fixed-width text blocks,
// file digests and signatures, and the plain-text key format.
//
// # Algorithm Suite
//
//   - Primality: Fermat witnesses a^(n-1) ≡ 1 (mod n) for random a in
//     [2, n-2]. Carmichael numbers pass; this is not Miller-Rabin.
//
//   - Keys: n = p*q for distinct probable primes, λ = (p-1)(q-1), e = 65537
//     or the nearest odd coprime value in the configured direction, and
//     d = e^-1 mod λ.
//
//   - Text: printable ASCII, BitsPerChar bits per character, blockChars
//     characters per block, no padding scheme.
//
//   - Digest: Keccak-256 by default (the pre-standard variant), or FIPS
//     SHA3-256, rendered as lower-case hex.
//
// # Security Model
//
// There is none. Keys are small, the arithmetic is not constant time and
// no padding is applied. Use crypto/rsa for anything real.
//
// # Formats
//
// Exported keys are "RSA <b64(decimal n)> <b64(decimal e or d)>". A
// signature is "RSA_SHA3-512 <b64(big-endian signature bytes)>". Both use
// standard padded base64 ([ToBase64]); import goes through the lenient
// [DecodeBase64].
//
// # Randomness
//
// Every function that draws random values takes an io.Reader. Pass
// rng.NewSeeded for reproducible runs.
package crypto
