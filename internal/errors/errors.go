package errors

import "errors"

// Key errors indicate the encryption key could not be established.
var (
	// ErrMissingKey indicates the encryption key is absent from the environment.
	ErrMissingKey = errors.New("encryption key not found in environment")

	// ErrInvalidKeyFormat indicates the key does not decode to 32 bytes of key material.
	ErrInvalidKeyFormat = errors.New("invalid encryption key format")
)

// Cryptographic errors indicate failures during encryption or decryption operations.
var (
	// ErrAuthenticationFailed indicates a ciphertext did not verify under the loaded key.
	// It covers wrong keys, truncation, tampering and foreign formats alike.
	ErrAuthenticationFailed = errors.New("ciphertext authentication failed")

	// ErrEncryptFailed indicates a payload could not be encrypted.
	ErrEncryptFailed = errors.New("failed to encrypt data")
)

// Prompt errors indicate the system prompt could not be loaded. All of them
// are fatal to a session.
var (
	// ErrPromptNotFound indicates the system prompt artifact does not exist.
	ErrPromptNotFound = errors.New("system prompt not found")

	// ErrPromptDecryptFailed indicates the system prompt could not be read or decrypted.
	ErrPromptDecryptFailed = errors.New("failed to decrypt system prompt")

	// ErrPromptInvalidEncoding indicates the decrypted prompt is not valid UTF-8.
	ErrPromptInvalidEncoding = errors.New("system prompt is not valid UTF-8")
)

// Profile errors indicate issues resolving or persisting a profile.
var (
	// ErrInvalidProfileName indicates a profile name contains characters outside [A-Za-z0-9_-].
	ErrInvalidProfileName = errors.New("invalid profile name")

	// ErrInvalidRole indicates a turn role other than user or model.
	ErrInvalidRole = errors.New("invalid turn role")

	// ErrProfileNotFound indicates no artifact exists for the profile.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrMalformedProfile indicates profile data is not a UTF-8 JSON object.
	ErrMalformedProfile = errors.New("malformed profile data")
)

// Notebook errors indicate issues with the notebook corpus.
var (
	// ErrNotebookDirNotFound indicates the notebook directory does not exist.
	ErrNotebookDirNotFound = errors.New("notebook directory not found")

	// ErrInvalidPageName indicates a filename does not follow <id>___Page<n>.txt[.enc].
	ErrInvalidPageName = errors.New("invalid notebook page filename")

	// ErrDuplicatePage indicates two import sources map to the same stored page.
	ErrDuplicatePage = errors.New("duplicate notebook page")

	// ErrInvalidPageContent indicates a decrypted page is not valid UTF-8.
	ErrInvalidPageContent = errors.New("notebook page is not valid UTF-8")
)

// Session errors indicate misuse of a session.
var (
	// ErrSessionReadOnly indicates a write was attempted on a read-only session.
	ErrSessionReadOnly = errors.New("session is read-only")

	// ErrSessionClosed indicates the session has already been closed.
	ErrSessionClosed = errors.New("session is closed")
)

// Input errors indicate invalid command input.
var (
	// ErrInvalidDateFormat indicates a date filter is not in YYYY-MM-DD form.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrConfigExists indicates a config file would be overwritten.
	ErrConfigExists = errors.New("config file already exists")

	// ErrEmptyInput indicates required input was empty.
	ErrEmptyInput = errors.New("input is empty")
)

// File errors indicate issues with file discovery or access.
var (
	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrFileNotFound indicates a specific file or directory could not be located.
	ErrFileNotFound = errors.New("file not found")

	// ErrWriteFailed indicates an artifact could not be written.
	ErrWriteFailed = errors.New("failed to write artifact")
)
