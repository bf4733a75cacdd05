package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "algolia", cfg.Source)
	assert.Equal(t, 30, cfg.FrontPageSize)
	assert.Equal(t, "last", cfg.DuplicatePolicy)
	assert.Equal(t, filepath.Join(cfg.CacheDir, "cache.db"), cfg.DBPath)
	assert.True(t, cfg.Persist)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frontpage.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
cache_dir = "`+dir+`"
source = "firebase"
front_page_size = 10
refresh_interval = "1m"
duplicate_policy = "first"
`), 0o644))

	t.Setenv("FRONTPAGE_FRONT_PAGE_SIZE", "15")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "firebase", cfg.Source)
	assert.Equal(t, 15, cfg.FrontPageSize)
	assert.Equal(t, time.Minute, cfg.RefreshInterval)
	assert.Equal(t, "first", cfg.DuplicatePolicy)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, filepath.Join(dir, "cache.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "debug.log"), cfg.LogPath)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	assert.Error(t, err)
}
