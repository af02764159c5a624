package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/typetutor/internal/model"
)

func testStyles() styles {
	return newStyles(model.ThemeDark)
}

func TestBuildStyledRunesCursor(t *testing.T) {
	st := testStyles()
	runes := buildStyledRunes(st, []rune("ab"), []rune("a"), 1)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != st.correct.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != st.currentWord.Underline(true).Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	st := testStyles()
	runes := buildStyledRunes(st, []rune("a"), []rune("a"), -1)
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].s != st.correct.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	st := testStyles()
	runes := buildStyledRunes(st, []rune("ab"), []rune("ax"), -1)
	if runes[1].s != st.incorrect.Render("b") {
		t.Fatalf("expected incorrect style showing the target rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	st := testStyles()
	runes := buildStyledRunes(st, []rune("one two"), []rune("o"), 1)
	if runes[2].s != st.currentWord.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != st.pending.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	st := testStyles()
	runes := buildStyledRunes(st, []rune("a b"), []rune("ax"), 2)
	if runes[1].s != st.incorrect.Render("•") {
		t.Fatalf("expected dot for wrong space")
	}
}

func TestBuildStyledRunesNewline(t *testing.T) {
	st := testStyles()
	runes := buildStyledRunes(st, []rune("a\nb"), nil, 0)
	if !runes[1].isSpace || runes[1].s != st.pending.Render("↵") {
		t.Fatalf("expected newline to render as a visible break")
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	runes := make([]styledRune, 0)
	for _, r := range "one two three" {
		runes = append(runes, styledRune{s: string(r), width: 1, isSpace: r == ' '})
	}
	got := wrapStyledRunes(runes, 8)
	want := "one two \nthree"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapStyledRunesSplitsLongWords(t *testing.T) {
	runes := make([]styledRune, 0)
	for _, r := range "abcdefgh" {
		runes = append(runes, styledRune{s: string(r), width: 1})
	}
	got := wrapStyledRunes(runes, 3)
	if lines := strings.Split(got, "\n"); len(lines) != 3 || lines[0] != "abc" || lines[2] != "gh" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}
