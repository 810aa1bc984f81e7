package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/agentg/internal/audit"
	kerrors "github.com/PolarWolf314/agentg/internal/errors"
)

// ShowPromptResult contains the decrypted system prompt.
type ShowPromptResult struct {
	Path string
	Text string
}

// ShowPrompt decrypts and returns the system prompt.
//
// Returns ErrPromptNotFound, ErrPromptDecryptFailed or ErrPromptInvalidEncoding
// when the prompt cannot be loaded.
func ShowPrompt(ctx context.Context, rt *Runtime) (*ShowPromptResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loader, err := rt.promptLoader()
	if err != nil {
		return nil, err
	}

	text, err := loader.Load()
	if err != nil {
		return nil, err
	}
	return &ShowPromptResult{Path: loader.Path(), Text: text}, nil
}

// SetPromptOptions configures the set-prompt workflow.
type SetPromptOptions struct {
	// Text is the new prompt in plaintext.
	Text string
}

// SetPromptResult contains the outcome of replacing the prompt.
type SetPromptResult struct {
	Path string

	// Bytes is the plaintext length written.
	Bytes int
}

// SetPrompt encrypts Text and replaces the system prompt artifact.
//
// Returns ErrEmptyInput if Text is blank.
func SetPrompt(ctx context.Context, rt *Runtime, opts SetPromptOptions) (*SetPromptResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.Text) == "" {
		return nil, fmt.Errorf("%w: system prompt", kerrors.ErrEmptyInput)
	}

	loader, err := rt.promptLoader()
	if err != nil {
		return nil, err
	}

	if err := loader.Save(opts.Text); err != nil {
		return nil, err
	}

	rt.record(audit.Entry{Operation: audit.OpPromptUpdated, Files: []string{loader.Path()}})

	return &SetPromptResult{Path: loader.Path(), Bytes: len(opts.Text)}, nil
}
