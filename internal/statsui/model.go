// Package statsui provides the Bubble Tea stats dashboard.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typetutor/internal/model"
	"github.com/verte-zerg/typetutor/internal/stats"
)

const (
	tabOverview = iota
	tabLessons
	tabHistory
)

const dateLayout = "2006-01-02"

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// RecordSource lists stat records.
type RecordSource interface {
	ListRecords(ctx context.Context, filter model.StatsFilter) ([]model.StatRecord, error)
}

// Model implements the Bubble Tea stats UI.
type Model struct {
	src    RecordSource
	filter model.StatsFilter
	window int

	records []model.StatRecord
	errMsg  string

	tabs      []string
	activeTab int
	overview  viewport.Model
	lessons   table.Model
	history   table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a stats UI model.
func NewModel(src RecordSource, filter model.StatsFilter, window int) *Model {
	m := &Model{
		src:      src,
		filter:   filter,
		window:   max(window, 1),
		tabs:     []string{"Overview", "Lessons", "History"},
		overview: viewport.New(0, 0),
		lessons:  newTable(lessonColumns()),
		history:  newTable(historyColumns()),
	}
	m.initInputs()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.window = nextCurveWindow(m.window)
			m.renderOverview()
			return m, nil
		case "-":
			m.window = prevCurveWindow(m.window)
			m.renderOverview()
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			m.gotoEdge(true)
			return m, nil
		case "G", "end":
			m.gotoEdge(false)
			return m, nil
		}
		var cmd tea.Cmd
		switch m.activeTab {
		case tabLessons:
			m.lessons, cmd = m.lessons.Update(msg)
		case tabHistory:
			m.history, cmd = m.history.Update(msg)
		default:
			m.overview, cmd = m.overview.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Lesson id: "),
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
	}
	m.setInputsFromFilter()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromFilter() {
	m.filterInputs[0].SetValue(m.filter.LessonID)
	if m.filter.Since != nil {
		m.filterInputs[1].SetValue(m.filter.Since.Format(dateLayout))
	} else {
		m.filterInputs[1].SetValue("")
	}
	if m.filter.Last > 0 {
		m.filterInputs[2].SetValue(strconv.Itoa(m.filter.Last))
	} else {
		m.filterInputs[2].SetValue("")
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(lipgloss.Height(activeNavStyle.Render("X")), 1)
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	for _, t := range []*table.Model{&m.lessons, &m.history} {
		t.SetWidth(m.width)
		t.SetHeight(max(bodyHeight-1, 1))
	}
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = max(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	m.lessons.Blur()
	m.history.Blur()
	switch m.activeTab {
	case tabLessons:
		m.lessons.Focus()
	case tabHistory:
		m.history.Focus()
	}
}

func (m *Model) gotoEdge(top bool) {
	switch m.activeTab {
	case tabLessons:
		if top {
			m.lessons.GotoTop()
		} else {
			m.lessons.GotoBottom()
		}
	case tabHistory:
		if top {
			m.history.GotoTop()
		} else {
			m.history.GotoBottom()
		}
	default:
		if top {
			m.overview.GotoTop()
		} else {
			m.overview.GotoBottom()
		}
	}
}

func (m *Model) refresh() {
	records, err := m.src.ListRecords(context.Background(), m.filter)
	if err != nil {
		m.errMsg = err.Error()
		m.records = nil
	} else {
		m.errMsg = ""
		m.records = records
	}
	m.lessons.SetRows(lessonRows(m.records))
	m.history.SetRows(historyRows(m.records))
	m.renderOverview()
}

func (m *Model) renderOverview() {
	if m.errMsg != "" {
		m.overview.SetContent("Failed to load stats.")
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.records, m.window, width))
}

func renderOverview(records []model.StatRecord, window, width int) string {
	if len(records) == 0 {
		return "No sessions found. Complete a lesson to see your progress here."
	}
	s := stats.Summarize(records)
	cards := []string{
		metricCard("Avg WPM", strconv.Itoa(s.AvgWPM)),
		metricCard("Avg Accuracy", fmt.Sprintf("%d%%", s.AvgAccuracy)),
		metricCard("Total Time", fmt.Sprintf("%dm", s.TotalMinutes)),
		metricCard("Sessions", strconv.Itoa(s.Sessions)),
		metricCard("Best WPM", strconv.Itoa(s.BestWPM)),
		metricCard("Best Accuracy", fmt.Sprintf("%d%%", s.BestAccuracy)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2], cards[3])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[4], cards[5])
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	var buf bytes.Buffer
	if err := stats.RenderTrend(&buf, records, window, width); err != nil {
		return summary + "\n\n" + fmt.Sprintf("Failed to render trend: %v", err)
	}
	return strings.TrimRight(summary+"\n\n"+buf.String(), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(1),
	)
	t.SetStyles(tableStyles())
	return t
}

func lessonColumns() []table.Column {
	return []table.Column{
		{Title: "Lesson", Width: 32},
		{Title: "Sessions", Width: 8},
	}
}

func historyColumns() []table.Column {
	return []table.Column{
		{Title: "Completed", Width: 16},
		{Title: "Lesson", Width: 28},
		{Title: "WPM", Width: 5},
		{Title: "Accuracy", Width: 8},
		{Title: "Time", Width: 6},
	}
}

func lessonRows(records []model.StatRecord) []table.Row {
	counts := stats.LessonCounts(records)
	rows := make([]table.Row, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, table.Row{c.Title, strconv.Itoa(c.Count)})
	}
	return rows
}

// historyRows lists records newest first.
func historyRows(records []model.StatRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		rows = append(rows, table.Row(stats.RecordRow(records[i])))
	}
	return rows
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return padLines(m.renderTabs(), m.width) + "\n" + padLines(m.renderFilterSummary(), m.width)
}

func (m *Model) renderFilterSummary() string {
	lesson := m.filter.LessonID
	if lesson == "" {
		lesson = "any"
	}
	since := "any"
	if m.filter.Since != nil {
		since = m.filter.Since.Format(dateLayout)
	}
	last := "all"
	if m.filter.Last > 0 {
		last = strconv.Itoa(m.filter.Last)
	}
	summary := fmt.Sprintf("Filter: lesson=%s  since=%s  last=%s  window=%d", lesson, since, last, m.window)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Filter: /  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody() string {
	if m.filterMode {
		lines := []string{"Filter (enter to apply, esc to cancel)"}
		for _, input := range m.filterInputs {
			lines = append(lines, input.View())
		}
		if m.filterError != "" {
			lines = append(lines, errorStyle.Render(m.filterError))
		}
		return strings.Join(lines, "\n")
	}
	switch m.activeTab {
	case tabLessons:
		if len(m.records) == 0 {
			return "No sessions found."
		}
		return tableMutedStyle.Render(m.lessons.View())
	case tabHistory:
		if len(m.records) == 0 {
			return "No sessions found."
		}
		return tableMutedStyle.Render(m.history.View())
	default:
		return m.overview.View()
	}
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromFilter()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		filter, err := m.parseFilter()
		if err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filter = filter
		m.filterMode = false
		m.filterError = ""
		m.refresh()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	m.filterIndex = (idx + count) % count
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) parseFilter() (model.StatsFilter, error) {
	filter := model.StatsFilter{LessonID: strings.TrimSpace(m.filterInputs[0].Value())}
	if raw := strings.TrimSpace(m.filterInputs[1].Value()); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return filter, fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		filter.Since = &parsed
	}
	if raw := strings.TrimSpace(m.filterInputs[2].Value()); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return filter, fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		filter.Last = parsed
	}
	return filter, nil
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	return (n/5 + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	if w := lipgloss.Width(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
