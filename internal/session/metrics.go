package session

import (
	"math"
	"time"
)

// charsPerWord is the conventional word length used for WPM.
const charsPerWord = 5.0

// WordsPerMinute returns the live typing speed. Inactive sessions report 0.
func WordsPerMinute(s State, now time.Time) int {
	if !s.Active {
		return 0
	}
	return wpmAt(s, now)
}

func wpmAt(s State, now time.Time) int {
	if s.StartTime.IsZero() {
		return 0
	}
	minutes := now.Sub(s.StartTime).Minutes()
	if minutes <= 0 {
		return 0
	}
	return int(math.Round((float64(s.Correct) / charsPerWord) / minutes))
}

// AccuracyPercent returns the share of correct keystrokes, 100 before any input.
func AccuracyPercent(s State) int {
	total := s.Correct + s.Incorrect
	if total == 0 {
		return 100
	}
	return int(math.Round(100 * float64(s.Correct) / float64(total)))
}

// ElapsedSeconds returns whole seconds since the attempt started.
func ElapsedSeconds(s State, now time.Time) int {
	if s.StartTime.IsZero() {
		return 0
	}
	return int(math.Round(now.Sub(s.StartTime).Seconds()))
}

// Progress returns the typed share of the text in percent.
func Progress(s State) int {
	if len(s.Text) == 0 {
		if s.Completed {
			return 100
		}
		return 0
	}
	return int(math.Round(100 * float64(s.Cursor) / float64(len(s.Text))))
}
