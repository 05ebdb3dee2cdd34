// Package cipherlab implements textbook RSA and three classical ciphers for
// teaching: affine, Playfair and ADFGX/ADFGVX.
//
// None of it is secure. RSA here has no padding, uses small keys, a Fermat
// primality test and non-constant-time arithmetic, and reproduces those
// simplifications on purpose.
//
// Basic usage:
//
//	lab, err := cipherlab.New(cipherlab.WithPrimeBits(128))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	kp, err := lab.GenerateKeyPair()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ct, err := lab.EncryptText("Hello, World", kp.Public())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pt, err := lab.DecryptText(ct, kp.Private())
//
// Signing produces a ZIP archive with the original file and a ".sign"
// entry:
//
//	archive, err := lab.SignFile("report.pdf", data, kp.Private())
//	ok, err := lab.VerifyBundle(archive, kp.Public())
//
// The classical ciphers live in the affine, playfair and adfgvx packages;
// Lab wraps them with the variants chosen in Options.
package cipherlab
