// Package session implements the typing session state machine and its scoring.
package session

import (
	"time"

	"github.com/verte-zerg/typetutor/internal/model"
)

// Phase is the coarse state of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// State is a snapshot of one practice attempt.
//
// Invariant: Correct+Incorrect == Cursor <= len(Text).
type State struct {
	Text      []rune
	Cursor    int
	Correct   int
	Incorrect int
	// StartTime is zero when no attempt is timing.
	StartTime time.Time
	Active    bool
	Completed bool
	Lesson    *model.Lesson
}

// Phase derives the state machine phase from the flags.
func (s State) Phase() Phase {
	switch {
	case s.Active:
		return PhaseActive
	case s.Completed:
		return PhaseCompleted
	default:
		return PhaseIdle
	}
}

// Expected returns the rune under the cursor.
func (s State) Expected() (rune, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Text) {
		return 0, false
	}
	return s.Text[s.Cursor], true
}

// Start begins a timed attempt on the lesson. Empty lessons complete at once.
func Start(lesson model.Lesson, now time.Time) State {
	l := lesson
	next := State{
		Text:      []rune(lesson.Content),
		StartTime: now,
		Active:    true,
		Lesson:    &l,
	}
	if len(next.Text) == 0 {
		next.Active = false
		next.Completed = true
	}
	return next
}

// Submit scores one typed rune. Wrong runes still advance the cursor.
// The returned flag reports whether this call completed the session.
func Submit(s State, typed rune) (State, bool) {
	expected, ok := s.Expected()
	if !s.Active || !ok {
		return s, false
	}
	next := s
	if typed == expected {
		next.Correct++
	} else {
		next.Incorrect++
	}
	next.Cursor++
	if next.Cursor == len(next.Text) {
		next.Active = false
		next.Completed = true
		return next, true
	}
	return next, false
}

// Reset returns the session to idle, keeping the loaded text and lesson.
func Reset(s State) State {
	return State{
		Text:   s.Text,
		Lesson: s.Lesson,
	}
}
