// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty grades a lesson.
type Difficulty string

// Known lesson difficulties.
const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Difficulties lists the accepted difficulty values in ascending order.
var Difficulties = []Difficulty{Beginner, Intermediate, Advanced}

// ParseDifficulty normalizes and validates a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Difficulties {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want beginner, intermediate or advanced)", s)
}

// Lesson is a named block of reference text used as practice material.
type Lesson struct {
	ID         string     `json:"id" toml:"id" yaml:"id"`
	Title      string     `json:"title" toml:"title" yaml:"title"`
	Content    string     `json:"content" toml:"content" yaml:"content"`
	Difficulty Difficulty `json:"difficulty" toml:"difficulty" yaml:"difficulty"`
	Category   string     `json:"category" toml:"category" yaml:"category"`
	CreatedAt  time.Time  `json:"createdAt" toml:"created_at" yaml:"created_at"`
}

// StatRecord captures the outcome of one completed session.
type StatRecord struct {
	ID              int64
	WPM             int
	Accuracy        int
	DurationSeconds int
	CompletedAt     time.Time
	LessonID        string
	LessonTitle     string
}

// Theme selects the color palette.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Settings holds presentation preferences.
type Settings struct {
	Theme        Theme `json:"theme"`
	SoundEnabled bool  `json:"soundEnabled"`
	ShowKeyboard bool  `json:"showKeyboard"`
	FontSize     int   `json:"fontSize"`
}

// StatsFilter narrows the stat records returned by the store.
type StatsFilter struct {
	LessonID string
	Since    *time.Time
	Last     int
}
