package utils

import (
	"fmt"
	"io"
	"os"
)

// ReadStdin reads all piped content from stdin. It fails when stdin is a
// terminal or carries no data.
func ReadStdin() ([]byte, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat stdin: %w", err)
	}

	// ModeCharDevice means a terminal, not a pipe.
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, fmt.Errorf("no data provided on stdin (hint: pipe the new content to this command)")
	}

	return ReadNonEmpty(os.Stdin, "stdin")
}

// ReadNonEmpty reads r to EOF and rejects empty input. what names the source
// in error messages.
func ReadNonEmpty(r io.Reader, what string) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read from %s: %w", what, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty", what)
	}
	return data, nil
}
