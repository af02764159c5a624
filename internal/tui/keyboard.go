package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

var keyboardRows = [][]rune{
	[]rune("`1234567890-="),
	[]rune("qwertyuiop[]\\"),
	[]rune("asdfghjkl;'"),
	[]rune("zxcvbnm,./"),
	{' '},
}

// shiftedKeys maps shifted symbols to the key that produces them.
var shiftedKeys = map[rune]rune{
	'~': '`', '!': '1', '@': '2', '#': '3', '$': '4', '%': '5', '^': '6',
	'&': '7', '*': '8', '(': '9', ')': '0', '_': '-', '+': '=',
	'{': '[', '}': ']', '|': '\\', ':': ';', '"': '\'', '<': ',', '>': '.', '?': '/',
}

// keyFor returns the physical key for a typed rune.
func keyFor(r rune) rune {
	if k, ok := shiftedKeys[r]; ok {
		return k
	}
	return unicode.ToLower(r)
}

func keyLabel(k rune) string {
	if k == ' ' {
		return strings.Repeat(" ", 12) + "space" + strings.Repeat(" ", 12)
	}
	return " " + strings.ToUpper(string(k)) + " "
}

// renderKeyboard draws the QWERTY overlay. next is the key the cursor expects,
// pressed the last key typed; zero means none.
func renderKeyboard(st styles, next, pressed rune) string {
	if next != 0 {
		next = keyFor(next)
	}
	if pressed != 0 {
		pressed = keyFor(pressed)
	}
	rows := make([]string, 0, len(keyboardRows))
	for _, row := range keyboardRows {
		cells := make([]string, 0, len(row))
		for _, k := range row {
			style := st.key
			switch k {
			case next:
				style = st.keyNext
			case pressed:
				style = st.keyPressed
			}
			cells = append(cells, style.Render(keyLabel(k)))
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
