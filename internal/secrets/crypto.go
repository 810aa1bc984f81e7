package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/agentg/internal/errors"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// KeySize is the length of the symmetric key in bytes.
	KeySize = 32

	// NonceSize is the length of the random nonce prepended to every blob.
	NonceSize = 24

	// Overhead is the number of bytes Encrypt adds to a plaintext.
	Overhead = NonceSize + secretbox.Overhead
)

// Cipher encrypts and decrypts blobs under one process-wide key.
// It holds no mutable state and is safe to share across a session.
type Cipher struct {
	key [KeySize]byte
}

// New parses keyMaterial (base64 of 32 bytes) into a Cipher.
func New(keyMaterial string) (*Cipher, error) {
	keyMaterial = strings.TrimSpace(keyMaterial)
	if keyMaterial == "" {
		return nil, kerrors.ErrMissingKey
	}

	raw, err := decodeKey(keyMaterial)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidKeyFormat, err)
	}
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", kerrors.ErrInvalidKeyFormat, KeySize, len(raw))
	}

	c := &Cipher{}
	copy(c.key[:], raw)
	return c, nil
}

// FromEnv builds a Cipher from the named environment variable.
func FromEnv(name string) (*Cipher, error) {
	value, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(value) == "" {
		return nil, fmt.Errorf("%w: %s is not set", kerrors.ErrMissingKey, name)
	}
	return New(value)
}

// GenerateKey returns a new random key in the encoding New accepts.
func GenerateKey() (string, error) {
	raw := make([]byte, KeySize)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

// Encrypt seals plaintext with a fresh random nonce. The nonce is prepended
// to the output, so encrypting the same plaintext twice yields different blobs.
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	var nonce [NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("%w: reading nonce: %v", kerrors.ErrEncryptFailed, err)
	}

	return secretbox.Seal(nonce[:], plaintext, &nonce, &c.key), nil
}

// Decrypt opens a blob produced by Encrypt. Any verification failure returns
// ErrAuthenticationFailed and no plaintext.
func (c *Cipher) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < Overhead {
		return nil, fmt.Errorf("%w: ciphertext too short (%d bytes)", kerrors.ErrAuthenticationFailed, len(ciphertext))
	}

	var nonce [NonceSize]byte
	copy(nonce[:], ciphertext[:NonceSize])

	plaintext, ok := secretbox.Open(nil, ciphertext[NonceSize:], &nonce, &c.key)
	if !ok {
		return nil, kerrors.ErrAuthenticationFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}

// decodeKey accepts URL-safe or standard base64, padded or not.
func decodeKey(s string) ([]byte, error) {
	encodings := []*base64.Encoding{
		base64.URLEncoding,
		base64.StdEncoding,
		base64.RawURLEncoding,
		base64.RawStdEncoding,
	}

	var lastErr error
	for _, enc := range encodings {
		raw, err := enc.DecodeString(s)
		if err == nil {
			return raw, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// Sealer is the encrypt/decrypt contract the stores depend on. *Cipher
// satisfies it; tests substitute failing implementations.
type Sealer interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

var _ Sealer = (*Cipher)(nil)
