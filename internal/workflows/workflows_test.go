package workflows

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
	"github.com/PolarWolf314/agentg/internal/profiles"
	"github.com/PolarWolf314/agentg/internal/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	cfg := configs.NewDefaultConfig()
	cfg.Resolve(t.TempDir())

	key, err := secrets.GenerateKey()
	require.NoError(t, err)
	c, err := secrets.New(key)
	require.NoError(t, err)

	rt := NewRuntime(cfg, logger.Logger{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	rt.Cipher = c
	return rt
}

func auditOps(t *testing.T, rt *Runtime) []string {
	t.Helper()
	entries, err := audit.ReadEntries(rt.Config.Paths.AuditLog)
	require.NoError(t, err)
	var ops []string
	for _, e := range entries {
		ops = append(ops, e.Operation)
	}
	return ops
}

func TestKeygen(t *testing.T) {
	result, err := Keygen(context.Background())
	require.NoError(t, err)

	_, err = secrets.New(result.Key)
	assert.NoError(t, err)
	assert.Equal(t, "ENCRYPTION_KEY="+result.Key, result.EnvLine)
}

func TestPromptRoundTrip(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime(t)

	_, err := ShowPrompt(ctx, rt)
	assert.ErrorIs(t, err, kerrors.ErrPromptNotFound)

	set, err := SetPrompt(ctx, rt, SetPromptOptions{Text: "Answer only from the notebooks."})
	require.NoError(t, err)
	assert.Equal(t, rt.Config.Paths.SystemPrompt, set.Path)

	shown, err := ShowPrompt(ctx, rt)
	require.NoError(t, err)
	assert.Equal(t, "Answer only from the notebooks.", shown.Text)

	assert.Equal(t, []string{audit.OpPromptUpdated}, auditOps(t, rt))
}

func TestSetPrompt_RejectsEmpty(t *testing.T) {
	rt := newTestRuntime(t)

	_, err := SetPrompt(context.Background(), rt, SetPromptOptions{Text: "  \n"})
	assert.ErrorIs(t, err, kerrors.ErrEmptyInput)
}

func TestMissingKey(t *testing.T) {
	rt := newTestRuntime(t)
	rt.Cipher = nil
	t.Setenv(configs.EnvEncryptionKey, "")

	_, err := ShowPrompt(context.Background(), rt)
	assert.ErrorIs(t, err, kerrors.ErrMissingKey)
}

func TestProfileWorkflows(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime(t)
	store, err := rt.profileStore()
	require.NoError(t, err)

	p := profiles.NewDefault("ana")
	require.NoError(t, p.Append(profiles.RoleUser, "hello"))
	require.NoError(t, p.Append(profiles.RoleModel, "hi"))
	require.NoError(t, p.Append(profiles.RoleUser, "bye"))
	require.NoError(t, store.Save("ana", p))

	list, err := ListProfiles(ctx, rt)
	require.NoError(t, err)
	assert.Equal(t, []string{"ana"}, list.Profiles)
	assert.Empty(t, list.Legacy)
	assert.Equal(t, "test_user", list.Default)

	shown, err := ShowProfile(ctx, rt, ShowProfileOptions{Name: "ana", Last: 2})
	require.NoError(t, err)
	assert.Equal(t, profiles.Loaded, shown.Outcome)
	require.Len(t, shown.History, 2)
	assert.Equal(t, "hi", shown.History[0].Text)
	assert.Len(t, shown.Profile.History, 3)

	reset, err := ResetProfile(ctx, rt, ResetProfileOptions{Name: "ana"})
	require.NoError(t, err)
	assert.Equal(t, 3, reset.ClearedTurns)

	shown, err = ShowProfile(ctx, rt, ShowProfileOptions{Name: "ana"})
	require.NoError(t, err)
	assert.Empty(t, shown.Profile.History)
	assert.Equal(t, "ana", shown.Profile.PreferredName)

	_, err = ResetProfile(ctx, rt, ResetProfileOptions{Name: "nobody"})
	assert.ErrorIs(t, err, kerrors.ErrProfileNotFound)
}

func TestShowProfile_IgnoresClearHistorySetting(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime(t)
	rt.Config.Session.ClearHistoryOnLoad = true

	store, err := rt.profileStore()
	require.NoError(t, err)
	p := profiles.NewDefault("ana")
	require.NoError(t, p.Append(profiles.RoleUser, "hello"))
	require.NoError(t, store.Save("ana", p))

	shown, err := ShowProfile(ctx, rt, ShowProfileOptions{Name: "ana"})
	require.NoError(t, err)
	assert.Len(t, shown.Profile.History, 1)
}

func TestMigrateProfiles(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime(t)

	legacy := `{"preferred_name": "Ben", "pronouns": "he/him", "context": "", "conversation_history": []}`
	require.NoError(t, os.MkdirAll(rt.Config.Paths.ProfileDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(rt.Config.Paths.ProfileDir, "ben.json"), []byte(legacy), 0600))

	result, err := MigrateProfiles(ctx, rt)
	require.NoError(t, err)
	assert.Equal(t, []string{"ben"}, result.Migrated)
	assert.Empty(t, result.Remaining)

	shown, err := ShowProfile(ctx, rt, ShowProfileOptions{Name: "ben"})
	require.NoError(t, err)
	assert.Equal(t, profiles.Loaded, shown.Outcome)
	assert.Equal(t, "Ben", shown.Profile.PreferredName)

	assert.Equal(t, []string{audit.OpProfileMigrated}, auditOps(t, rt))
}

func TestNotebookWorkflows(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime(t)

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "Blue___Page001.txt"), []byte("Gulls."), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Green___Page002.txt"), []byte("Moss."), 0600))

	imported, err := ImportPages(ctx, rt, ImportPagesOptions{SourceDir: src})
	require.NoError(t, err)
	assert.Len(t, imported.Written, 2)

	added, err := AddPage(ctx, rt, AddPageOptions{Notebook: "Blue", Page: 2, Content: "Tide out."})
	require.NoError(t, err)
	assert.Equal(t, "Blue___Page002.txt.enc", added.Filename)

	list, err := ListPages(ctx, rt, ListPagesOptions{})
	require.NoError(t, err)
	assert.Len(t, list.Pages, 3)
	assert.Equal(t, map[string]int{"Blue": 2, "Green": 1}, list.Notebooks)
	for _, p := range list.Pages {
		assert.Empty(t, p.Content, "listing must not expose page content")
	}

	blue, err := ListPages(ctx, rt, ListPagesOptions{Notebook: "Blue"})
	require.NoError(t, err)
	assert.Len(t, blue.Pages, 2)

	page, err := ShowPage(ctx, rt, ShowPageOptions{Notebook: "Blue", Page: 2})
	require.NoError(t, err)
	assert.Equal(t, "Tide out.", page.Content)

	rendered, err := RenderCorpus(ctx, rt)
	require.NoError(t, err)
	assert.Contains(t, rendered.Text, "--- From: Green, Page 2 (Green___Page002.txt.enc) ---\nMoss.\n\n")

	assert.Equal(t, []string{audit.OpPagesImported, audit.OpPageAdded}, auditOps(t, rt))
}

func TestRenderCorpus_MissingDirectory(t *testing.T) {
	rt := newTestRuntime(t)

	rendered, err := RenderCorpus(context.Background(), rt)
	require.NoError(t, err)
	assert.Empty(t, rendered.Text)
	assert.False(t, rendered.Report.OK())
}

func TestListPages_MissingDirectory(t *testing.T) {
	rt := newTestRuntime(t)

	_, err := ListPages(context.Background(), rt, ListPagesOptions{})
	assert.ErrorIs(t, err, kerrors.ErrNotebookDirNotFound)
}

func TestConfigWorkflows(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	result, err := InitConfig(ctx, InitConfigOptions{Dir: dir})
	require.NoError(t, err)
	assert.FileExists(t, result.Path)

	_, err = InitConfig(ctx, InitConfigOptions{Dir: dir})
	assert.ErrorIs(t, err, kerrors.ErrConfigExists)

	_, err = InitConfig(ctx, InitConfigOptions{Dir: dir, Force: true})
	assert.NoError(t, err)

	rt := newTestRuntime(t)
	shown, err := ShowConfig(ctx, rt)
	require.NoError(t, err)
	assert.NoError(t, shown.KeyErr)
	assert.Equal(t, rt.Config, shown.Config)
}
