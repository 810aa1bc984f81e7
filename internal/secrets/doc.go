// Package secrets provides the cryptographic core of agentg.
//
// Every artifact the store persists (system prompt, profiles, notebook
// pages) is sealed by a single Cipher built from the ENCRYPTION_KEY
// environment variable.
//
// # Key Format
//
// The key is 32 random bytes encoded as base64. URL-safe encoding with
// padding is canonical (it is what `agentg keygen` prints), but standard and
// unpadded encodings are accepted. A missing key yields ErrMissingKey and a
// key that does not decode to 32 bytes yields ErrInvalidKeyFormat; both are
// fatal at startup.
//
// # Blob Format
//
// Encryption uses NaCl secretbox (XSalsa20-Poly1305) with a random 24-byte
// nonce prepended to the ciphertext:
//
//	nonce(24) || secretbox(plaintext)   // secretbox adds a 16-byte tag
//
// There is no other framing. Re-encrypting the same plaintext produces
// different output.
//
// # Integrity
//
// Decrypt never returns partial plaintext. A wrong key, a truncated or
// modified blob, or data that was never produced by this scheme all fail
// with ErrAuthenticationFailed.
package secrets
