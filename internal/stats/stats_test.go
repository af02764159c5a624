package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typetutor/internal/model"
)

func rec(title string, wpm, acc, secs int) model.StatRecord {
	return model.StatRecord{
		WPM:             wpm,
		Accuracy:        acc,
		DurationSeconds: secs,
		LessonTitle:     title,
		CompletedAt:     time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); got != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", got)
	}
}

func TestSummarize(t *testing.T) {
	records := []model.StatRecord{
		rec("A", 30, 90, 50),
		rec("B", 41, 95, 40),
		rec("A", 40, 100, 45),
	}
	got := Summarize(records)
	want := Summary{
		Sessions:     3,
		AvgWPM:       37,
		AvgAccuracy:  95,
		TotalMinutes: 2,
		BestWPM:      41,
		BestAccuracy: 100,
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestRecent(t *testing.T) {
	records := []model.StatRecord{rec("A", 1, 1, 1), rec("A", 2, 1, 1), rec("A", 3, 1, 1)}
	got := Recent(records, 2)
	if len(got) != 2 || got[0].WPM != 2 || got[1].WPM != 3 {
		t.Fatalf("unexpected recent slice: %+v", got)
	}
	if len(Recent(records, 0)) != 3 || len(Recent(records, 10)) != 3 {
		t.Fatalf("expected full slice for non-positive or large n")
	}
}

func TestLessonCountsOrder(t *testing.T) {
	records := []model.StatRecord{
		rec("Numbers", 1, 1, 1),
		rec("Home Row", 1, 1, 1),
		rec("Alphabet", 1, 1, 1),
		rec("Home Row", 1, 1, 1),
	}
	got := LessonCounts(records)
	want := []LessonCount{{"Home Row", 2}, {"Alphabet", 1}, {"Numbers", 1}}
	if len(got) != len(want) {
		t.Fatalf("expected %d counts, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("unexpected sparkline: %q", got)
	}
	if got := Sparkline([]float64{5, 5, 5}); got != "+++" {
		t.Fatalf("unexpected flat sparkline: %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No sessions found.\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderReport(t *testing.T) {
	records := []model.StatRecord{rec("Home Row", 30, 90, 75), rec("Numbers", 40, 100, 30)}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, records); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if err := RenderTrend(&buf, records, 1, 80); err != nil {
		t.Fatalf("trend: %v", err)
	}
	if err := RenderLessonTable(&buf, LessonCounts(records)); err != nil {
		t.Fatalf("lessons: %v", err)
	}
	if err := RenderRecent(&buf, records); err != nil {
		t.Fatalf("recent: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Avg WPM:         35",
		"Total Time:      2m",
		"Trend (last 2, window 1)",
		"Home Row        1",
		"1:15",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(125); got != "2:05" {
		t.Fatalf("unexpected duration: %q", got)
	}
}
