// Package errors provides typed error values for agentg.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Key errors: the process key is missing or malformed (ErrMissingKey, ErrInvalidKeyFormat)
//   - Crypto errors: a blob failed to verify (ErrAuthenticationFailed)
//   - Prompt errors: the system prompt cannot be used (ErrPromptNotFound, ErrPromptDecryptFailed)
//   - Profile errors: bad names or roles (ErrInvalidProfileName, ErrInvalidRole)
//   - Notebook errors: corpus directory or page issues (ErrNotebookDirNotFound, ErrInvalidPageName)
//   - File errors: discovery and write failures (ErrNoFilesFound, ErrWriteFailed)
//
// Key and prompt errors are fatal to a session. Profile artifact problems are
// never errors: they surface as a Fallback outcome from the profile store.
//
// # Usage
//
//	svc, err := cipher.FromEnv(configs.EnvEncryptionKey)
//	if errors.Is(err, aerrors.ErrMissingKey) {
//	    // tell the user how to run `agentg keygen`
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading page %s: %w", name, errors.ErrAuthenticationFailed)
package errors
