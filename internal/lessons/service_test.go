package lessons_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typetutor/internal/lessons"
	"github.com/verte-zerg/typetutor/internal/model"
	"github.com/verte-zerg/typetutor/internal/store"
)

func newService(t *testing.T) *lessons.Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "typetutor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return lessons.NewService(st, nil)
}

func strPtr(s string) *string { return &s }

func TestSeedOnce(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	n, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Basic Home Row", all[0].Title)
	assert.Equal(t, "Common Words", all[3].Title)
	assert.Equal(t, model.Advanced, all[2].Difficulty)
}

func TestSeedSkipsEmptiedCatalog(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Seed(ctx)
	require.NoError(t, err)
	all, err := svc.List(ctx)
	require.NoError(t, err)
	for _, l := range all {
		require.NoError(t, svc.Delete(ctx, l.ID))
	}

	n, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	all, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, lessons.Draft{Title: "  ", Content: "abc"})
	assert.True(t, errors.Is(err, lessons.ErrInvalid))

	_, err = svc.Create(ctx, lessons.Draft{Title: "t", Content: " \n "})
	assert.True(t, errors.Is(err, lessons.ErrInvalid))

	_, err = svc.Create(ctx, lessons.Draft{Title: "t", Content: "abc", Difficulty: "expert"})
	assert.True(t, errors.Is(err, lessons.ErrInvalid))

	l, err := svc.Create(ctx, lessons.Draft{Title: " Drill ", Content: "abc", Category: " keys "})
	require.NoError(t, err)
	assert.Equal(t, "Drill", l.Title)
	assert.Equal(t, "keys", l.Category)
	assert.Equal(t, model.Beginner, l.Difficulty)
	assert.NotEmpty(t, l.ID)
	assert.False(t, l.CreatedAt.IsZero())
}

func TestUpdateAndDelete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	l, err := svc.Create(ctx, lessons.Draft{Title: "Drill", Content: "abc"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, l.ID, lessons.Patch{Title: strPtr("Drill 2"), Difficulty: strPtr("Intermediate")})
	require.NoError(t, err)
	assert.Equal(t, "Drill 2", updated.Title)
	assert.Equal(t, "abc", updated.Content)
	assert.Equal(t, model.Intermediate, updated.Difficulty)

	_, err = svc.Update(ctx, l.ID, lessons.Patch{Content: strPtr("")})
	assert.True(t, errors.Is(err, lessons.ErrInvalid))

	got, err := svc.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Content)

	require.NoError(t, svc.Delete(ctx, l.ID))
	_, err = svc.Get(ctx, l.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
	assert.True(t, errors.Is(svc.Delete(ctx, l.ID), store.ErrNotFound))
}

func TestImportText(t *testing.T) {
	svc := newService(t)
	path := filepath.Join(t.TempDir(), "home-row.notes.md")
	require.NoError(t, os.WriteFile(path, []byte("  asdf   jkl;\n\n fdsa\t;lkj \n"), 0o644))

	l, err := svc.ImportText(context.Background(), path, lessons.Draft{Category: "basics"})
	require.NoError(t, err)
	assert.Equal(t, "home-row", l.Title)
	assert.Equal(t, "asdf jkl; fdsa ;lkj", l.Content)
	assert.Equal(t, "basics", l.Category)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("\n \n"), 0o644))
	_, err = svc.ImportText(context.Background(), empty, lessons.Draft{})
	assert.Error(t, err)
}

func TestBundleRoundTripAcrossFormats(t *testing.T) {
	for _, format := range []lessons.Format{lessons.FormatTOML, lessons.FormatYAML, lessons.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			src := newService(t)
			ctx := context.Background()
			_, err := src.Seed(ctx)
			require.NoError(t, err)

			var buf bytes.Buffer
			n, err := src.Export(ctx, &buf, format)
			require.NoError(t, err)
			assert.Equal(t, 4, n)

			dst := newService(t)
			created, err := dst.ImportBundle(ctx, &buf, format)
			require.NoError(t, err)
			require.Len(t, created, 4)
			assert.Equal(t, "Quick Brown Fox", created[1].Title)
			assert.Equal(t, model.Intermediate, created[1].Difficulty)
		})
	}
}

func TestImportBundleStopsAtInvalid(t *testing.T) {
	svc := newService(t)
	body := `{"lessons":[{"title":"ok","content":"abc"},{"title":"","content":"x"}]}`
	created, err := svc.ImportBundle(context.Background(), bytes.NewBufferString(body), lessons.FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.Is(err, lessons.ErrInvalid))
	assert.Len(t, created, 1)
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]lessons.Format{
		"a.txt":  lessons.FormatText,
		"a.MD":   lessons.FormatText,
		"a.toml": lessons.FormatTOML,
		"a.yml":  lessons.FormatYAML,
		"a.json": lessons.FormatJSON,
	}
	for path, want := range cases {
		got, err := lessons.FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := lessons.FormatFromPath("a.csv")
	assert.Error(t, err)
}
