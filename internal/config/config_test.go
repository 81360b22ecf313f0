package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SHOWRUNNER_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("SHOWRUNNER_DB", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.TerritoryBufferHours)
	assert.Equal(t, 9, cfg.BusinessHoursStart)
	assert.Equal(t, 18, cfg.BusinessHoursEnd)
	assert.NotEmpty(t, cfg.DBPath)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "db_path: /tmp/from-file.db\nterritory_buffer_hours: 6\nbusiness_hours_start: 8\nbusiness_hours_end: 17\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("SHOWRUNNER_CONFIG", path)
	t.Setenv("SHOWRUNNER_DB", "/tmp/from-env.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath, "env beats file")
	assert.Equal(t, 6.0, cfg.TerritoryBufferHours)
	assert.Equal(t, 8, cfg.BusinessHoursStart)
}

func TestLoad_RejectsBadBusinessHours(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("business_hours_start: 20\nbusiness_hours_end: 9\n"), 0o644))
	t.Setenv("SHOWRUNNER_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RejectsNegativeBuffer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("territory_buffer_hours: -1\n"), 0o644))
	t.Setenv("SHOWRUNNER_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}
