package audit

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/PolarWolf314/agentg/internal/utils"

	"github.com/google/uuid"
)

// Operation names recorded in the log.
const (
	OpProfileSaved    = "profile-saved"
	OpProfileReset    = "profile-reset"
	OpProfileMigrated = "profile-migrated"
	OpPromptUpdated   = "prompt-updated"
	OpPagesImported   = "pages-imported"
	OpPageAdded       = "page-added"
	OpSessionOpened   = "session-opened"
	OpSessionClosed   = "session-closed"
)

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// Entry is one line of the audit log. It never carries plaintext content,
// only names and counts.
type Entry struct {
	Timestamp string `json:"ts"`
	SessionID string `json:"session"`
	Operator  string `json:"operator"`
	Operation string `json:"op"`

	Profile    string   `json:"profile,omitempty"`
	Outcome    string   `json:"outcome,omitempty"`
	Files      []string `json:"files,omitempty"`
	FilesCount int      `json:"files_count,omitempty"`
	Turns      int      `json:"turns,omitempty"`
}

// Logger appends entries to a JSON Lines file. A Logger with an empty path
// drops every entry.
type Logger struct {
	path      string
	sessionID string
	operator  string
	mu        sync.Mutex
}

// NewLogger returns a Logger writing to path under a fresh session id.
func NewLogger(path string) *Logger {
	return &Logger{
		path:      path,
		sessionID: uuid.NewString(),
		operator:  utils.CurrentOperator(),
	}
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}

// SessionID identifies every entry written by this Logger.
func (l *Logger) SessionID() string {
	return l.sessionID
}

// Log appends entry, filling in the timestamp, session and operator. Audit
// logging is best-effort: failures are reported to the caller for display
// but must not fail the operation being audited.
func (l *Logger) Log(entry Entry) error {
	if l == nil || l.path == "" {
		return nil
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(timestampLayout)
	}
	entry.SessionID = l.sessionID
	if entry.Operator == "" {
		entry.Operator = l.operator
	}
	if entry.FilesCount == 0 {
		entry.FilesCount = len(entry.Files)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(data, '\n'))
	return err
}

// ReadEntries reads every entry from the log at path. A missing log yields
// no entries.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseEntries(data), nil
}

// ParseEntries parses JSON Lines data. Malformed lines, such as a torn
// final write, are skipped.
func ParseEntries(data []byte) []Entry {
	var entries []Entry
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// Tail returns the last n entries, or all of them when n <= 0.
func Tail(entries []Entry, n int) []Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}
