package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rolodex.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /tmp/contacts\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/contacts", cfg.DBPath)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, 0.6, cfg.SuggestionCutoff)
}

func TestLoadFullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rolodex.yaml")
	content := "db_path: /tmp/contacts\npage_size: 10\nsuggestion_cutoff: 0.4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 0.4, cfg.SuggestionCutoff)
}

func TestLoadHonorsExplicitZeros(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rolodex.yaml")
	content := "page_size: 0\nsuggestion_cutoff: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.PageSize, "explicit page_size: 0 should not be rewritten")
	assert.Equal(t, 0.0, cfg.SuggestionCutoff, "explicit suggestion_cutoff: 0 should disable suggestions")
	assert.Equal(t, Default().DBPath, cfg.DBPath)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rolodex.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_size: [broken\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
