package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_CreatesFileAndDirectory(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "audit.jsonl")
	l := NewLogger(logPath)

	require.NoError(t, l.Log(Entry{Operation: OpProfileSaved, Profile: "ana", Turns: 4}))

	info, err := os.Stat(logPath)
	require.NoError(t, err, "audit log file was not created")
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLog_AppendsEntries(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")
	l := NewLogger(logPath)

	for _, op := range []string{OpSessionOpened, OpProfileSaved, OpSessionClosed} {
		require.NoError(t, l.Log(Entry{Operation: op, Profile: "ana"}))
	}

	entries, err := ReadEntries(logPath)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, OpSessionOpened, entries[0].Operation)
	assert.Equal(t, OpSessionClosed, entries[2].Operation)
	for _, e := range entries {
		assert.Equal(t, l.SessionID(), e.SessionID)
	}
}

func TestLog_FillsMetadata(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")
	l := NewLogger(logPath)

	require.NoError(t, l.Log(Entry{Operation: OpPagesImported, Files: []string{"Blue___Page001.txt.enc", "Blue___Page002.txt.enc"}}))

	entries, err := ReadEntries(logPath)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	e := entries[0]

	_, err = time.Parse(timestampLayout, e.Timestamp)
	assert.NoError(t, err, "timestamp %q not in expected layout", e.Timestamp)
	assert.Len(t, e.SessionID, 36, "expected UUID session id")
	assert.Contains(t, e.Operator, "@")
	assert.Equal(t, 2, e.FilesCount)
}

func TestLog_OmitsEmptyFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")
	require.NoError(t, NewLogger(logPath).Log(Entry{Operation: OpPromptUpdated}))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &raw))
	for _, field := range []string{"profile", "outcome", "files", "files_count", "turns"} {
		assert.NotContains(t, raw, field, "field should be omitted when empty")
	}
}

func TestLog_EmptyPathIsNoop(t *testing.T) {
	assert.NoError(t, NewLogger("").Log(Entry{Operation: OpProfileSaved}))

	var l *Logger
	assert.NoError(t, l.Log(Entry{Operation: OpProfileSaved}))
}

func TestReadEntries_MissingLog(t *testing.T) {
	entries, err := ReadEntries(filepath.Join(t.TempDir(), "missing.jsonl"))
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"ts":"2026-01-01T00:00:00.000000Z","op":"profile-saved","profile":"ana"}
not json
{"ts":"2026-01-01T00:00:01.000000Z","op":"page-added","files":["Blue___Page001.txt.enc"]}
{"ts":"2026-01-01T00:00:02`)

	entries := ParseEntries(data)
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"Blue___Page001.txt.enc"}, entries[1].Files)
}

func TestParseEntries_EmptyData(t *testing.T) {
	assert.Empty(t, ParseEntries(nil))
}

func TestTail(t *testing.T) {
	entries := []Entry{{Operation: "a"}, {Operation: "b"}, {Operation: "c"}}

	got := Tail(entries, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Operation)

	assert.Len(t, Tail(entries, 0), 3, "Tail(0) returns everything")
	assert.Len(t, Tail(entries, 10), 3, "Tail(10) returns everything")
}
