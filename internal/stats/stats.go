// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/typetutor/internal/model"
)

const sparkChars = " .:-=+*#%@"

// RecentLimit is how many records the trend views show.
const RecentLimit = 20

// Summary aggregates a record log.
type Summary struct {
	Sessions     int
	AvgWPM       int
	AvgAccuracy  int
	TotalMinutes int
	BestWPM      int
	BestAccuracy int
}

// Summarize computes the dashboard cards. An empty log yields zeros.
func Summarize(records []model.StatRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	var totalWPM, totalAcc, totalSeconds int
	sum := Summary{Sessions: len(records)}
	for _, r := range records {
		totalWPM += r.WPM
		totalAcc += r.Accuracy
		totalSeconds += r.DurationSeconds
		if r.WPM > sum.BestWPM {
			sum.BestWPM = r.WPM
		}
		if r.Accuracy > sum.BestAccuracy {
			sum.BestAccuracy = r.Accuracy
		}
	}
	n := float64(len(records))
	sum.AvgWPM = int(math.Round(float64(totalWPM) / n))
	sum.AvgAccuracy = int(math.Round(float64(totalAcc) / n))
	sum.TotalMinutes = int(math.Round(float64(totalSeconds) / 60))
	return sum
}

// Recent returns the last n records, oldest first.
func Recent(records []model.StatRecord, n int) []model.StatRecord {
	if n <= 0 || len(records) <= n {
		return records
	}
	return records[len(records)-n:]
}

// LessonCount is the number of completed sessions for one lesson title.
type LessonCount struct {
	Title string
	Count int
}

// LessonCounts groups records by lesson title, most practiced first.
func LessonCounts(records []model.StatRecord) []LessonCount {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.LessonTitle]++
	}
	out := make([]LessonCount, 0, len(counts))
	for title, count := range counts {
		out = append(out, LessonCount{Title: title, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Title < out[j].Title
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// WPMSeries extracts WPM values in record order.
func WPMSeries(records []model.StatRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = float64(r.WPM)
	}
	return out
}

// AccuracySeries extracts accuracy values in record order.
func AccuracySeries(records []model.StatRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = float64(r.Accuracy)
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.Abs(hi-lo) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round((v - lo) / (hi - lo) * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
