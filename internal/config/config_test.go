package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typetutor/internal/config"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{config.EnvDB, config.EnvLogLevel, config.EnvLogFile, config.EnvLesson, config.EnvWindow} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Storage.DB)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[practice]\nwords = 3\n"), 0o644))

	_, err := config.LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "practice.words")
}

func TestResolveLayers(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[practice]
lesson = "abc"

[stats]
curve-window = 3

[storage]
db = "/tmp/file.db"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	fc, err := config.LoadConfig(path)
	require.NoError(t, err)

	app, err := config.Resolve(fc)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/file.db", app.DBPath)
	assert.Equal(t, "debug", app.LogLevel)
	assert.Equal(t, "abc", app.Lesson)
	assert.Equal(t, 3, app.CurveWindow)

	t.Setenv(config.EnvDB, "/tmp/env.db")
	t.Setenv(config.EnvWindow, "7")
	app, err = config.Resolve(fc)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", app.DBPath)
	assert.Equal(t, 7, app.CurveWindow)
}

func TestResolveDefaults(t *testing.T) {
	clearEnv(t)
	app, err := config.Resolve(config.FileConfig{})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultDBPath(), app.DBPath)
	assert.Equal(t, config.DefaultLogLevel, app.LogLevel)
	assert.Equal(t, config.DefaultCurveWindow, app.CurveWindow)
}

func TestResolveInvalidWindow(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvWindow, "many")
	_, err := config.Resolve(config.FileConfig{})
	require.Error(t, err)

	t.Setenv(config.EnvWindow, "0")
	_, err = config.Resolve(config.FileConfig{})
	require.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv(config.EnvLesson))
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TYPETUTOR_LESSON=from-dotenv\n"), 0o644))

	require.NoError(t, config.LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	t.Cleanup(func() { _ = os.Unsetenv(config.EnvLesson) })
	assert.Equal(t, "from-dotenv", os.Getenv(config.EnvLesson))
}
