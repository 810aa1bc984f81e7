// Package prompt loads and stores the encrypted system prompt.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/agentg/internal/errors"
	"github.com/PolarWolf314/agentg/internal/secrets"
	"github.com/PolarWolf314/agentg/internal/utils"
)

// DefaultFileName is the prompt artifact name used when no path is configured.
const DefaultFileName = "system_prompt.md.enc"

// Loader reads and writes the prompt artifact at one path.
type Loader struct {
	path   string
	cipher secrets.Sealer
}

func NewLoader(path string, cipher secrets.Sealer) *Loader {
	return &Loader{path: path, cipher: cipher}
}

// Path returns the prompt artifact path.
func (l *Loader) Path() string {
	return l.path
}

// Load reads, decrypts and decodes the prompt. Every failure is fatal to a
// session; there is no fallback text.
func (l *Loader) Load() (string, error) {
	blob, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", kerrors.ErrPromptNotFound, l.path)
		}
		return "", fmt.Errorf("%w: reading %s: %v", kerrors.ErrPromptDecryptFailed, l.path, err)
	}

	plaintext, err := l.cipher.Decrypt(blob)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", kerrors.ErrPromptDecryptFailed, l.path, err)
	}

	if !utf8.Valid(plaintext) {
		return "", fmt.Errorf("%w: %s", kerrors.ErrPromptInvalidEncoding, l.path)
	}
	return string(plaintext), nil
}

// Save encrypts text and atomically replaces the prompt artifact. The
// containing directory must already exist.
func (l *Loader) Save(text string) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: refusing to save", kerrors.ErrPromptInvalidEncoding)
	}

	blob, err := l.cipher.Encrypt([]byte(text))
	if err != nil {
		return fmt.Errorf("%w: system prompt: %v", kerrors.ErrEncryptFailed, err)
	}

	if err := utils.WriteFileAtomic(l.path, blob, 0600); err != nil {
		return fmt.Errorf("%w: %s: %v", kerrors.ErrWriteFailed, l.path, err)
	}
	return nil
}
