// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/typetutor/internal/model"
	"github.com/verte-zerg/typetutor/internal/session"
	"github.com/verte-zerg/typetutor/internal/settings"
	"github.com/verte-zerg/typetutor/internal/stats"
	"github.com/verte-zerg/typetutor/internal/store"
)

type screen int

const (
	screenPicker screen = iota
	screenTyping
)

const (
	contentRatio = 0.70
	helpLine     = "ctrl+r restart · esc lessons · ctrl+t theme · ctrl+k keyboard · ctrl+c quit"
)

type tickMsg struct {
	seq int
}

type lessonItem struct {
	lesson model.Lesson
}

func (i lessonItem) Title() string { return i.lesson.Title }

func (i lessonItem) Description() string {
	parts := []string{string(i.lesson.Difficulty)}
	if i.lesson.Category != "" {
		parts = append(parts, i.lesson.Category)
	}
	parts = append(parts, fmt.Sprintf("%d chars", len([]rune(i.lesson.Content))))
	return strings.Join(parts, " · ")
}

func (i lessonItem) FilterValue() string { return i.lesson.Title + " " + i.lesson.Category }

// metrics is what the footer shows.
type metrics struct {
	wpm      int
	accuracy int
	seconds  int
	progress int
}

// Model implements the Bubble Tea practice UI.
type Model struct {
	engine  *session.Engine
	lessons []model.Lesson
	picker  list.Model
	screen  screen

	prefs  model.Settings
	kv     store.KV
	log    *zap.Logger
	styles styles
	bell   io.Writer

	// input mirrors the runes the engine accepted, for diffing.
	input   []rune
	lastKey rune
	tickSeq int
	status  string

	width  int
	height int
}

// NewModel constructs the practice UI. kv may be nil, in which case
// settings toggles are not persisted.
func NewModel(engine *session.Engine, lessons []model.Lesson, prefs model.Settings, kv store.KV, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	items := make([]list.Item, len(lessons))
	for i, l := range lessons {
		items[i] = lessonItem{lesson: l}
	}
	picker := list.New(items, list.NewDefaultDelegate(), 0, 0)
	picker.Title = "Lessons"
	picker.SetStatusBarItemName("lesson", "lessons")

	m := &Model{
		engine:  engine,
		lessons: lessons,
		picker:  picker,
		prefs:   prefs,
		kv:      kv,
		log:     log.Named("tui"),
		bell:    os.Stderr,
	}
	m.applyTheme()
	return m
}

// StartLesson skips the picker and begins practicing the lesson with id.
func (m *Model) StartLesson(id string) error {
	for _, l := range m.lessons {
		if l.ID == id {
			m.start(l)
			return nil
		}
	}
	return fmt.Errorf("unknown lesson %q", id)
}

// Settings returns the current, possibly toggled, preferences.
func (m *Model) Settings() model.Settings {
	return m.prefs
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.engine.State().Active {
		return m.tick()
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.SetSize(msg.Width, max(msg.Height-2, 1))
		return m, nil
	case tickMsg:
		if msg.seq == m.tickSeq && m.engine.State().Active {
			return m, m.tick()
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyCtrlT:
			m.prefs = settings.ToggleTheme(m.prefs)
			m.applyTheme()
			m.persist()
			return m, nil
		case tea.KeyCtrlK:
			m.prefs.ShowKeyboard = !m.prefs.ShowKeyboard
			m.persist()
			return m, nil
		}
		if m.screen == screenTyping {
			return m, m.handleTypingKey(msg)
		}
		return m, m.handlePickerKey(msg)
	}
	if m.screen == screenPicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEnter && m.picker.FilterState() != list.Filtering {
		item, ok := m.picker.SelectedItem().(lessonItem)
		if !ok {
			return nil
		}
		return m.start(item.lesson)
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return cmd
}

func (m *Model) handleTypingKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlR:
		st := m.engine.State()
		if st.Lesson == nil {
			return nil
		}
		m.engine.Reset()
		return m.start(*st.Lesson)
	case tea.KeyEsc:
		m.engine.Reset()
		m.input = nil
		m.lastKey = 0
		m.status = ""
		m.screen = screenPicker
		m.tickSeq++
		return nil
	case tea.KeySpace:
		return m.submit([]rune{' '}, false)
	case tea.KeyEnter:
		return m.submit([]rune{'\n'}, false)
	case tea.KeyTab:
		return m.submit([]rune{'\t'}, false)
	case tea.KeyRunes:
		// Alt chords are shortcuts, not keystrokes.
		if msg.Alt {
			return nil
		}
		return m.submit(msg.Runes, msg.Paste || len(msg.Runes) > 1)
	default:
		return nil
	}
}

func (m *Model) start(l model.Lesson) tea.Cmd {
	m.screen = screenTyping
	m.input = m.input[:0]
	m.lastKey = 0
	m.status = ""
	m.tickSeq++
	if err := m.engine.Start(context.Background(), l); err != nil {
		m.fail("failed to save session", err)
	}
	if m.engine.State().Active {
		return m.tick()
	}
	return nil
}

// submit feeds runes to the engine and mirrors what it accepted.
func (m *Model) submit(runes []rune, paste bool) tea.Cmd {
	if len(runes) == 0 {
		return nil
	}
	before := m.engine.State()
	if !before.Active {
		return nil
	}
	m.lastKey = runes[len(runes)-1]

	var err error
	if paste {
		err = m.engine.SubmitText(context.Background(), string(runes))
	} else {
		err = m.engine.SubmitChar(context.Background(), runes[0])
	}
	after := m.engine.State()
	if accepted := after.Cursor - before.Cursor; accepted > 0 {
		m.input = append(m.input, runes[:accepted]...)
	}
	if err != nil {
		m.fail("failed to save session", err)
	}
	if m.prefs.SoundEnabled && after.Incorrect > before.Incorrect {
		return m.ring()
	}
	return nil
}

func (m *Model) ring() tea.Cmd {
	w := m.bell
	return func() tea.Msg {
		if _, err := io.WriteString(w, "\a"); err != nil {
			// Best-effort bell.
			_ = err
		}
		return nil
	}
}

func (m *Model) tick() tea.Cmd {
	seq := m.tickSeq
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

func (m *Model) applyTheme() {
	m.styles = newStyles(m.prefs.Theme)
	m.picker.Styles.Title = m.picker.Styles.Title.Background(palettes[m.prefs.Theme].accent)
}

func (m *Model) persist() {
	if m.kv == nil {
		return
	}
	if err := settings.Save(context.Background(), m.kv, m.prefs); err != nil {
		m.fail("failed to save settings", err)
	}
}

func (m *Model) fail(what string, err error) {
	m.log.Error(what, zap.Error(err))
	m.status = fmt.Sprintf("%s: %v", what, err)
}

func (m *Model) currentMetrics() metrics {
	st := m.engine.State()
	if st.Completed {
		if rec, ok := m.engine.LastRecord(); ok {
			return metrics{wpm: rec.WPM, accuracy: rec.Accuracy, seconds: rec.DurationSeconds, progress: 100}
		}
	}
	return metrics{
		wpm:      m.engine.WordsPerMinute(),
		accuracy: m.engine.AccuracyPercent(),
		seconds:  m.engine.ElapsedSeconds(),
		progress: session.Progress(st),
	}
}

func (m *Model) renderFooter(mt metrics) string {
	return m.styles.footer.Render(fmt.Sprintf("WPM %d · Accuracy %d%% · Time %s · Progress %d%%",
		mt.wpm, mt.accuracy, stats.FormatDuration(mt.seconds), mt.progress))
}

func (m *Model) renderSettingsLine() string {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	return m.styles.footer.Render(fmt.Sprintf("theme %s · sound %s · keyboard %s · font %dpx",
		m.prefs.Theme, onOff(m.prefs.SoundEnabled), onOff(m.prefs.ShowKeyboard), m.prefs.FontSize))
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.screen == screenPicker {
		return m.viewPicker()
	}
	return m.viewTyping()
}

func (m *Model) viewPicker() string {
	parts := []string{m.picker.View()}
	if m.status != "" {
		parts = append(parts, m.styles.status.Render(m.status))
	}
	parts = append(parts, m.renderSettingsLine())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) viewTyping() string {
	st := m.engine.State()
	cursorIndex := -1
	if st.Active {
		cursorIndex = st.Cursor
	}
	styledRunes := buildStyledRunes(m.styles, st.Text, m.input, cursorIndex)

	contentWidth := 0
	if m.width > 0 {
		contentWidth = max(int(float64(m.width)*contentRatio), 1)
	}
	var text string
	if contentWidth > 0 {
		text = lipgloss.NewStyle().Width(contentWidth).Render(wrapStyledRunes(styledRunes, contentWidth))
	} else {
		text = renderStyledRunes(styledRunes)
	}

	parts := make([]string, 0, 8)
	if st.Lesson != nil {
		title := st.Lesson.Title
		if st.Lesson.Category != "" {
			title += " · " + st.Lesson.Category
		}
		parts = append(parts, m.styles.title.Render(title), "")
	}
	parts = append(parts, text, "")
	if st.Completed {
		parts = append(parts, m.styles.banner.Render("Lesson completed! Great job!"))
	}
	parts = append(parts, m.renderFooter(m.currentMetrics()))
	if m.prefs.ShowKeyboard {
		var next rune
		if r, ok := st.Expected(); ok && st.Active {
			next = r
		}
		parts = append(parts, "", renderKeyboard(m.styles, next, m.lastKey))
	}
	if m.status != "" {
		parts = append(parts, m.styles.status.Render(m.status))
	}
	parts = append(parts, "", m.styles.footer.Render(helpLine), m.renderSettingsLine())

	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}
