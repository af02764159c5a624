// Package settings loads and persists presentation preferences.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/verte-zerg/typetutor/internal/model"
	"github.com/verte-zerg/typetutor/internal/store"
)

// Key is the KV key holding the settings blob.
const Key = "settings"

// Font size bounds.
const (
	MinFontSize = 10
	MaxFontSize = 32
)

// Keys accepted by Apply, in display order.
var Keys = []string{"theme", "sound", "keyboard", "font-size"}

// ErrInvalid marks a rejected settings value.
var ErrInvalid = errors.New("invalid setting")

// Defaults returns the factory settings.
func Defaults() model.Settings {
	return model.Settings{
		Theme:        model.ThemeLight,
		SoundEnabled: true,
		ShowKeyboard: true,
		FontSize:     18,
	}
}

// Validate checks enum and range values.
func Validate(s model.Settings) error {
	if s.Theme != model.ThemeLight && s.Theme != model.ThemeDark {
		return fmt.Errorf("%w: theme must be light or dark, got %q", ErrInvalid, s.Theme)
	}
	if s.FontSize < MinFontSize || s.FontSize > MaxFontSize {
		return fmt.Errorf("%w: font-size must be between %d and %d, got %d", ErrInvalid, MinFontSize, MaxFontSize, s.FontSize)
	}
	return nil
}

// Load returns the stored settings, or defaults when none are usable.
func Load(ctx context.Context, kv store.KV, log *zap.Logger) (model.Settings, error) {
	raw, ok, err := kv.Get(ctx, Key)
	if err != nil {
		return Defaults(), fmt.Errorf("failed to read settings: %w", err)
	}
	if !ok {
		return Defaults(), nil
	}
	s := Defaults()
	if err := json.Unmarshal(raw, &s); err != nil {
		if log != nil {
			log.Warn("discarding unreadable settings", zap.Error(err))
		}
		return Defaults(), nil
	}
	if err := Validate(s); err != nil {
		if log != nil {
			log.Warn("discarding invalid settings", zap.Error(err))
		}
		return Defaults(), nil
	}
	return s, nil
}

// Save validates and persists settings.
func Save(ctx context.Context, kv store.KV, s model.Settings) error {
	if err := Validate(s); err != nil {
		return err
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := kv.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Apply sets one named value from its string form.
func Apply(s model.Settings, key, value string) (model.Settings, error) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "theme":
		s.Theme = model.Theme(strings.ToLower(value))
	case "sound":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return s, fmt.Errorf("%w: sound must be true or false", ErrInvalid)
		}
		s.SoundEnabled = b
	case "keyboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return s, fmt.Errorf("%w: keyboard must be true or false", ErrInvalid)
		}
		s.ShowKeyboard = b
	case "font-size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return s, fmt.Errorf("%w: font-size must be a number", ErrInvalid)
		}
		s.FontSize = n
	default:
		return s, fmt.Errorf("%w: unknown key %q (known: %s)", ErrInvalid, key, strings.Join(Keys, ", "))
	}
	if err := Validate(s); err != nil {
		return s, err
	}
	return s, nil
}

// Value renders one setting for display.
func Value(s model.Settings, key string) string {
	switch key {
	case "theme":
		return string(s.Theme)
	case "sound":
		return strconv.FormatBool(s.SoundEnabled)
	case "keyboard":
		return strconv.FormatBool(s.ShowKeyboard)
	case "font-size":
		return strconv.Itoa(s.FontSize)
	default:
		return ""
	}
}

// ToggleTheme flips between light and dark.
func ToggleTheme(s model.Settings) model.Settings {
	if s.Theme == model.ThemeDark {
		s.Theme = model.ThemeLight
	} else {
		s.Theme = model.ThemeDark
	}
	return s
}
