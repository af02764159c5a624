package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typetutor/internal/model"
	"github.com/verte-zerg/typetutor/internal/store"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("TYPETUTOR_DB", "")
	t.Setenv("TYPETUTOR_LESSON", "")
	t.Setenv("TYPETUTOR_LOG_LEVEL", "")
	t.Setenv("TYPETUTOR_LOG_FILE", "")
	t.Setenv("TYPETUTOR_CURVE_WINDOW", "")
	return filepath.Join(dir, "test.db")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLessonsListSeedsDefaults(t *testing.T) {
	db := setupEnv(t)
	out, err := run(t, "lessons", "list", "--db", db)
	require.NoError(t, err)
	for _, title := range []string{"Basic Home Row", "Quick Brown Fox", "Programming Practice", "Common Words"} {
		assert.Contains(t, out, title)
	}
}

func TestLessonsStayEmptyAfterDeletingAll(t *testing.T) {
	db := setupEnv(t)
	_, err := run(t, "lessons", "list", "--db", db)
	require.NoError(t, err)

	st, err := store.Open(db)
	require.NoError(t, err)
	all, err := st.ListLessons(context.Background())
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.Len(t, all, 4)
	for _, l := range all {
		_, err := run(t, "lessons", "delete", l.ID, "--db", db)
		require.NoError(t, err)
	}

	out, err := run(t, "lessons", "list", "--db", db)
	require.NoError(t, err)
	for _, title := range []string{"Basic Home Row", "Quick Brown Fox", "Programming Practice", "Common Words"} {
		assert.NotContains(t, out, title)
	}
}

func TestLessonsAddEditDelete(t *testing.T) {
	db := setupEnv(t)
	out, err := run(t, "lessons", "add", "--db", db, "--title", "Drill", "--content", "aaa bbb", "--difficulty", "advanced")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, `Created "Drill" (`), out)
	id := strings.TrimSuffix(strings.TrimSpace(out[strings.LastIndex(out, "(")+1:]), ")")

	_, err = run(t, "lessons", "edit", id, "--db", db, "--title", "Drill 2")
	require.NoError(t, err)

	out, err = run(t, "lessons", "show", id, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Title:      Drill 2")
	assert.Contains(t, out, "Difficulty: advanced")
	assert.Contains(t, out, "aaa bbb")

	_, err = run(t, "lessons", "delete", id, "--db", db)
	require.NoError(t, err)
	_, err = run(t, "lessons", "show", id, "--db", db)
	require.Error(t, err)
}

func TestLessonsAddRejectsBlankTitle(t *testing.T) {
	db := setupEnv(t)
	_, err := run(t, "lessons", "add", "--db", db, "--title", " ", "--content", "abc")
	require.Error(t, err)
}

func TestLessonsImportAndExport(t *testing.T) {
	db := setupEnv(t)
	dir := t.TempDir()
	textPath := filepath.Join(dir, "numbers.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("12 34\n56"), 0o644))
	_, err := run(t, "lessons", "import", textPath, "--db", db)
	require.NoError(t, err)

	bundlePath := filepath.Join(dir, "all.yaml")
	_, err = run(t, "lessons", "export", bundlePath, "--db", db)
	require.NoError(t, err)
	raw, err := os.ReadFile(bundlePath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "title: numbers")
	assert.Contains(t, string(raw), "content: 12 34 56")

	other := filepath.Join(dir, "other.db")
	_, err = run(t, "lessons", "import", bundlePath, "--db", other)
	require.NoError(t, err)
	out, err := run(t, "lessons", "list", "--db", other)
	require.NoError(t, err)
	assert.Contains(t, out, "numbers")

	out, err = run(t, "lessons", "export", "-", "--format", "json", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "numbers"`)
}

func TestSettingsCommand(t *testing.T) {
	db := setupEnv(t)
	out, err := run(t, "settings", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "theme = light")

	out, err = run(t, "settings", "theme", "dark", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "theme = dark")

	out, err = run(t, "settings", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "theme = dark")

	_, err = run(t, "settings", "font-size", "100", "--db", db)
	require.Error(t, err)
	_, err = run(t, "settings", "theme", "--db", db)
	require.Error(t, err)
}

func TestStatsPlainAndClear(t *testing.T) {
	db := setupEnv(t)
	st, err := store.Open(db)
	require.NoError(t, err)
	require.NoError(t, st.Record(context.Background(), model.StatRecord{
		WPM:             42,
		Accuracy:        97,
		DurationSeconds: 90,
		CompletedAt:     time.Now(),
		LessonID:        "x",
		LessonTitle:     "Custom",
	}))
	require.NoError(t, st.Close())

	out, err := run(t, "stats", "--plain", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Sessions:")
	assert.Contains(t, out, "Custom")
	assert.Contains(t, out, "1:30")

	_, err = run(t, "stats", "--clear", "--db", db)
	require.NoError(t, err)
	out, err = run(t, "stats", "--plain", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "No sessions found.\n", out)
}

func TestStatsRejectsBadSince(t *testing.T) {
	db := setupEnv(t)
	_, err := run(t, "stats", "--plain", "--since", "yesterday", "--db", db)
	require.Error(t, err)
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	db := setupEnv(t)
	cfgPath := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "typetutor", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o755))
	require.NoError(t, os.WriteFile(cfgPath, []byte("[storage]\ndb = \""+filepath.ToSlash(db)+"\"\n"), 0o644))

	_, err := run(t, "lessons", "list")
	require.NoError(t, err)
	_, err = os.Stat(db)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(cfgPath, []byte("[practice]\nwords = 3\n"), 0o644))
	_, err = run(t, "lessons", "list")
	require.Error(t, err)
}
