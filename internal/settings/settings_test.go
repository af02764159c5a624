package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/verte-zerg/typetutor/internal/model"
	"github.com/verte-zerg/typetutor/internal/store"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	got, err := Load(context.Background(), store.NewMemoryKV(), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != Defaults() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	want := model.Settings{Theme: model.ThemeDark, SoundEnabled: false, ShowKeyboard: true, FontSize: 22}
	if err := Save(ctx, kv, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(ctx, kv, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestLoadFallsBackOnGarbage(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	if err := kv.Set(ctx, Key, []byte("{not json")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := Load(ctx, kv, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != Defaults() {
		t.Fatalf("expected defaults, got %+v", got)
	}

	if err := kv.Set(ctx, Key, []byte(`{"theme":"neon","fontSize":18}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _ = Load(ctx, kv, nil)
	if got != Defaults() {
		t.Fatalf("expected defaults for invalid theme, got %+v", got)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	s := Defaults()
	s.FontSize = 99
	if err := Save(context.Background(), store.NewMemoryKV(), s); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestApply(t *testing.T) {
	s := Defaults()
	var err error
	if s, err = Apply(s, "theme", "Dark"); err != nil || s.Theme != model.ThemeDark {
		t.Fatalf("theme: %+v %v", s, err)
	}
	if s, err = Apply(s, "sound", "false"); err != nil || s.SoundEnabled {
		t.Fatalf("sound: %+v %v", s, err)
	}
	if s, err = Apply(s, "font-size", "12"); err != nil || s.FontSize != 12 {
		t.Fatalf("font-size: %+v %v", s, err)
	}
	for _, tc := range [][2]string{{"theme", "blue"}, {"sound", "maybe"}, {"font-size", "9"}, {"font-size", "x"}, {"colour", "red"}} {
		if _, err := Apply(s, tc[0], tc[1]); !errors.Is(err, ErrInvalid) {
			t.Fatalf("expected ErrInvalid for %s=%s, got %v", tc[0], tc[1], err)
		}
	}
	if Value(s, "font-size") != "12" || Value(s, "sound") != "false" {
		t.Fatalf("unexpected rendered values")
	}
}

func TestToggleTheme(t *testing.T) {
	s := ToggleTheme(Defaults())
	if s.Theme != model.ThemeDark {
		t.Fatalf("expected dark")
	}
	if ToggleTheme(s).Theme != model.ThemeLight {
		t.Fatalf("expected light")
	}
}
