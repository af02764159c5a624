package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typetutor/internal/model"
)

type palette struct {
	correct   lipgloss.Color
	incorrect lipgloss.Color
	pending   lipgloss.Color
	accent    lipgloss.Color
	muted     lipgloss.Color
	success   lipgloss.Color
	keyFg     lipgloss.Color
	keyBg     lipgloss.Color
	nextBg    lipgloss.Color
	pressedBg lipgloss.Color
}

var palettes = map[model.Theme]palette{
	model.ThemeDark: {
		correct:   "#F0F0F0",
		incorrect: "#FF4D4F",
		pending:   "#8C8C8C",
		accent:    "#C89A3A",
		muted:     "#6E6E6E",
		success:   "#52C41A",
		keyFg:     "#D0D0D0",
		keyBg:     "#303030",
		nextBg:    "#C89A3A",
		pressedBg: "#5A5A5A",
	},
	model.ThemeLight: {
		correct:   "#1F1F1F",
		incorrect: "#CF1322",
		pending:   "#A0A0A0",
		accent:    "#A86B00",
		muted:     "#7A7A7A",
		success:   "#237804",
		keyFg:     "#303030",
		keyBg:     "#E8E8E8",
		nextBg:    "#FFD666",
		pressedBg: "#BFBFBF",
	},
}

type styles struct {
	correct     lipgloss.Style
	incorrect   lipgloss.Style
	pending     lipgloss.Style
	currentWord lipgloss.Style
	title       lipgloss.Style
	footer      lipgloss.Style
	banner      lipgloss.Style
	status      lipgloss.Style
	key         lipgloss.Style
	keyNext     lipgloss.Style
	keyPressed  lipgloss.Style
}

func newStyles(theme model.Theme) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[model.ThemeLight]
	}
	return styles{
		correct:     lipgloss.NewStyle().Foreground(p.correct),
		incorrect:   lipgloss.NewStyle().Foreground(p.incorrect),
		pending:     lipgloss.NewStyle().Foreground(p.pending),
		currentWord: lipgloss.NewStyle().Foreground(p.accent),
		title:       lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		footer:      lipgloss.NewStyle().Foreground(p.muted),
		banner:      lipgloss.NewStyle().Foreground(p.success).Bold(true),
		status:      lipgloss.NewStyle().Foreground(p.incorrect),
		key:         lipgloss.NewStyle().Foreground(p.keyFg).Background(p.keyBg),
		keyNext:     lipgloss.NewStyle().Foreground(p.keyBg).Background(p.nextBg).Bold(true),
		keyPressed:  lipgloss.NewStyle().Foreground(p.keyFg).Background(p.pressedBg).Underline(true),
	}
}
