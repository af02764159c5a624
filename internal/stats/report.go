package stats

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/verte-zerg/typetutor/internal/model"
)

const (
	terminalWidthBackup = 80
	timeFormat          = "2006-01-02 15:04"
	trendLabelWidth     = len("Accuracy  ")
)

// TerminalWidth reports the stdout width, or a fallback when it is not a tty.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderSummary prints the summary block for the records.
func RenderSummary(w io.Writer, records []model.StatRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	s := Summarize(records)
	lines := FormatTable(nil, [][]string{
		{"Sessions:", strconv.Itoa(s.Sessions)},
		{"Avg WPM:", strconv.Itoa(s.AvgWPM)},
		{"Avg Accuracy:", fmt.Sprintf("%d%%", s.AvgAccuracy)},
		{"Total Time:", fmt.Sprintf("%dm", s.TotalMinutes)},
		{"Best WPM:", strconv.Itoa(s.BestWPM)},
		{"Best Accuracy:", fmt.Sprintf("%d%%", s.BestAccuracy)},
	}, map[int]bool{1: true})
	return writeBlock(w, "Summary", lines)
}

// RenderTrend prints WPM and accuracy sparklines for the recent records,
// smoothed over window and clipped to width cells.
func RenderTrend(w io.Writer, records []model.StatRecord, window, width int) error {
	recent := Recent(records, RecentLimit)
	if len(recent) == 0 {
		return nil
	}
	if room := width - trendLabelWidth; room > 0 && len(recent) > room {
		recent = recent[len(recent)-room:]
	}
	title := fmt.Sprintf("Trend (last %d, window %d)", len(recent), window)
	lines := []string{
		fmt.Sprintf("%-*s%s", trendLabelWidth, "WPM", Sparkline(MovingAverage(WPMSeries(recent), window))),
		fmt.Sprintf("%-*s%s", trendLabelWidth, "Accuracy", Sparkline(MovingAverage(AccuracySeries(recent), window))),
	}
	return writeBlock(w, title, lines)
}

// RenderLessonTable prints practice counts per lesson.
func RenderLessonTable(w io.Writer, counts []LessonCount) error {
	if len(counts) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Title, strconv.Itoa(c.Count)})
	}
	return writeBlock(w, "Lessons", FormatTable([]string{"Lesson", "Sessions"}, rows, map[int]bool{1: true}))
}

// RenderRecent prints one line per record, newest last.
func RenderRecent(w io.Writer, records []model.StatRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, RecordRow(r))
	}
	return writeBlock(w, "Recent Sessions", FormatTable(RecordHeaders, rows, map[int]bool{2: true, 3: true, 4: true}))
}

// RecordHeaders names the RecordRow columns.
var RecordHeaders = []string{"Completed", "Lesson", "WPM", "Accuracy", "Time"}

// RecordRow formats a record for tabular output.
func RecordRow(r model.StatRecord) []string {
	return []string{
		r.CompletedAt.Local().Format(timeFormat),
		r.LessonTitle,
		strconv.Itoa(r.WPM),
		fmt.Sprintf("%d%%", r.Accuracy),
		FormatDuration(r.DurationSeconds),
	}
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func writeBlock(w io.Writer, title string, lines []string) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
