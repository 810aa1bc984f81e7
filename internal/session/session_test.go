package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/agentg/internal/audit"
	"github.com/PolarWolf314/agentg/internal/configs"
	kerrors "github.com/PolarWolf314/agentg/internal/errors"
	logger "github.com/PolarWolf314/agentg/internal/logging"
	"github.com/PolarWolf314/agentg/internal/notebooks"
	"github.com/PolarWolf314/agentg/internal/profiles"
	"github.com/PolarWolf314/agentg/internal/prompt"
	"github.com/PolarWolf314/agentg/internal/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	cfg      *configs.Config
	cipher   *secrets.Cipher
	warnings *bytes.Buffer
	audit    *audit.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	baseDir := t.TempDir()

	cfg := configs.NewDefaultConfig()
	cfg.Resolve(baseDir)

	key, err := secrets.GenerateKey()
	require.NoError(t, err)
	c, err := secrets.New(key)
	require.NoError(t, err)

	require.NoError(t, prompt.NewLoader(cfg.Paths.SystemPrompt, c).Save("You are a careful archivist."))

	return &fixture{
		cfg:      cfg,
		cipher:   c,
		warnings: &bytes.Buffer{},
		audit:    audit.NewLogger(cfg.Paths.AuditLog),
	}
}

func (f *fixture) deps() Deps {
	return Deps{
		Config: f.cfg,
		Cipher: f.cipher,
		Logger: logger.Logger{Out: &bytes.Buffer{}, Err: f.warnings},
		Audit:  f.audit,
	}
}

func (f *fixture) addPage(t *testing.T, id string, page int, content string) {
	t.Helper()
	store := notebooks.NewStore(f.cfg.Paths.NotebookDir, f.cipher, logger.Logger{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	_, err := store.WritePage(id, page, content)
	require.NoError(t, err)
}

func TestOpen_FreshProfile(t *testing.T) {
	f := newFixture(t)
	f.addPage(t, "Blue", 7, "The harbour at dawn.")

	s, err := Open(context.Background(), f.deps(), "")
	require.NoError(t, err)

	assert.Equal(t, "test_user", s.ProfileName())
	assert.Equal(t, "You are a careful archivist.", s.Prompt())
	assert.Equal(t, profiles.Created, s.LoadResult().Outcome)
	assert.Empty(t, s.Profile().History)
	assert.True(t, s.CorpusReport().OK())
	assert.NoError(t, s.CorpusErr())
	assert.Contains(t, s.Corpus(), "--- From: Blue, Page 7 (Blue___Page007.txt.enc) ---")
	assert.Len(t, s.Pages(), 1)
}

func TestOpen_MissingPromptIsFatal(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(f.cfg.Paths.SystemPrompt))

	_, err := Open(context.Background(), f.deps(), "ana")
	assert.ErrorIs(t, err, kerrors.ErrPromptNotFound)
}

func TestOpen_PromptUnderOtherKeyIsFatal(t *testing.T) {
	f := newFixture(t)
	key, err := secrets.GenerateKey()
	require.NoError(t, err)
	other, err := secrets.New(key)
	require.NoError(t, err)
	require.NoError(t, prompt.NewLoader(f.cfg.Paths.SystemPrompt, other).Save("someone else's prompt"))

	_, err = Open(context.Background(), f.deps(), "ana")
	assert.ErrorIs(t, err, kerrors.ErrPromptDecryptFailed)
}

func TestOpen_MissingNotebooksIsNotFatal(t *testing.T) {
	f := newFixture(t)

	s, err := Open(context.Background(), f.deps(), "ana")
	require.NoError(t, err)

	assert.ErrorIs(t, s.CorpusErr(), kerrors.ErrNotebookDirNotFound)
	assert.False(t, s.CorpusReport().OK())
	assert.Empty(t, s.Corpus())
	assert.Contains(t, f.warnings.String(), "No notebook data loaded")
}

func TestOpen_InvalidProfileName(t *testing.T) {
	f := newFixture(t)

	_, err := Open(context.Background(), f.deps(), "../ana")
	assert.ErrorIs(t, err, kerrors.ErrInvalidProfileName)
}

func TestOpen_Cancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Open(ctx, f.deps(), "ana")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecordTurn_PersistsAcrossSessions(t *testing.T) {
	f := newFixture(t)

	s, err := Open(context.Background(), f.deps(), "ana")
	require.NoError(t, err)
	require.NoError(t, s.RecordTurn("What is on page 7?", "The harbour at dawn."))
	require.NoError(t, s.RecordTurn("And page 8?", "There is no page 8."))
	require.NoError(t, s.Close())

	reopened, err := Open(context.Background(), f.deps(), "ana")
	require.NoError(t, err)
	assert.Equal(t, profiles.Loaded, reopened.LoadResult().Outcome)

	history := reopened.Profile().History
	require.Len(t, history, 4)
	assert.Equal(t, profiles.RoleUser, history[0].Role)
	assert.Equal(t, "What is on page 7?", history[0].Text)
	assert.Equal(t, profiles.RoleModel, history[3].Role)
	assert.Equal(t, "There is no page 8.", history[3].Text)

	contents := reopened.Contents()
	require.Len(t, contents, 4)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "The harbour at dawn.", contents[1].Parts[0].Text)
}

func TestClearHistoryOnLoad(t *testing.T) {
	f := newFixture(t)

	s, err := Open(context.Background(), f.deps(), "ana")
	require.NoError(t, err)
	require.NoError(t, s.RecordTurn("hello", "hi"))
	require.NoError(t, s.Close())

	f.cfg.Session.ClearHistoryOnLoad = true
	reopened, err := Open(context.Background(), f.deps(), "ana")
	require.NoError(t, err)
	assert.Equal(t, profiles.Loaded, reopened.LoadResult().Outcome)
	assert.Empty(t, reopened.Profile().History)
}

func TestReadOnlySession(t *testing.T) {
	f := newFixture(t)
	deps := f.deps()
	deps.ReadOnly = true

	s, err := Open(context.Background(), deps, "ana")
	require.NoError(t, err)
	assert.True(t, s.ReadOnly())

	assert.ErrorIs(t, s.RecordTurn("hello", "hi"), kerrors.ErrSessionReadOnly)
	require.NoError(t, s.Close())

	_, err = os.Stat(filepath.Join(f.cfg.Paths.ProfileDir, "ana.json.enc"))
	assert.True(t, os.IsNotExist(err), "read-only session must not write the profile")

	_, err = os.Stat(f.cfg.Paths.AuditLog)
	assert.True(t, os.IsNotExist(err), "read-only session must not write the audit log")
}

func TestClose(t *testing.T) {
	f := newFixture(t)

	s, err := Open(context.Background(), f.deps(), "ana")
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.RecordTurn("late", "too late"), kerrors.ErrSessionClosed)

	_, err = os.Stat(filepath.Join(f.cfg.Paths.ProfileDir, "ana.json.enc"))
	assert.NoError(t, err, "Close should perform the final save")
}

func TestAuditTrail(t *testing.T) {
	f := newFixture(t)

	s, err := Open(context.Background(), f.deps(), "ana")
	require.NoError(t, err)
	require.NoError(t, s.RecordTurn("secret question", "secret answer"))
	require.NoError(t, s.Close())

	entries, err := audit.ReadEntries(f.cfg.Paths.AuditLog)
	require.NoError(t, err)

	var ops []string
	for _, e := range entries {
		ops = append(ops, e.Operation)
		assert.Equal(t, "ana", e.Profile)
	}
	assert.Equal(t, []string{
		audit.OpSessionOpened,
		audit.OpProfileSaved,
		audit.OpProfileSaved,
		audit.OpSessionClosed,
	}, ops)

	raw, err := os.ReadFile(f.cfg.Paths.AuditLog)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
}
