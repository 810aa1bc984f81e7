package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	original := NewDefaultConfig()
	original.Paths.NotebookDir = "notebooks/blue"
	original.Session.DefaultProfile = "ana"
	original.Session.ClearHistoryOnLoad = true

	require.NoError(t, SaveTOML(path, original))

	loaded := &Config{}
	require.NoError(t, LoadTOML(path, loaded))
	assert.Equal(t, original, loaded)
}

func TestSaveTOMLPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)

	require.NoError(t, SaveTOML(path, NewDefaultConfig()))

	info, err := os.Stat(path)
	require.NoError(t, err, "config file was not created")
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadTOMLKeepsUnsetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("[session]\ndefault_profile = \"ben\"\n"), 0600))

	cfg := NewDefaultConfig()
	require.NoError(t, LoadTOML(path, cfg))

	assert.Equal(t, "ben", cfg.Session.DefaultProfile)
	assert.Equal(t, DefaultProfileDir, cfg.Paths.ProfileDir)
}

func TestLoadTOMLNonExistent(t *testing.T) {
	assert.Error(t, LoadTOML(filepath.Join(t.TempDir(), "missing.toml"), &Config{}))
}
