// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/typoeq/internal/model"
)

const sparkChars = " .:-=+*#%@"

// SessionMetrics computes words per minute and keystroke accuracy for a run.
// WPM counts completed dictionary words, not five-character groups.
func SessionMetrics(completed, typed, failed int, durationMs int64) (wpm, accuracy float64) {
	if typed > 0 {
		accuracy = float64(typed-failed) / float64(typed)
		if accuracy < 0 {
			accuracy = 0
		}
	}
	if durationMs <= 0 {
		return 0, accuracy
	}
	minutes := float64(durationMs) / 60000.0
	wpm = float64(completed) / minutes
	return wpm, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		den := float64(i + 1)
		if i >= window {
			sum -= values[i-window]
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values. When width
// is positive only the most recent width values are drawn.
func Sparkline(values []float64, width int) string {
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Totals accumulates session aggregates.
type Totals struct {
	Sessions    int
	Completed   int
	CharsTyped  int
	CharsFailed int
	Duration    time.Duration
	AvgWPM      float64
	BestWPM     float64
	AvgAccuracy float64
}

// Summarize totals sessions, averaging per-session WPM and accuracy.
func Summarize(sessions []model.SessionAggregate) Totals {
	var t Totals
	if len(sessions) == 0 {
		return t
	}
	var sumWPM, sumAcc float64
	for _, s := range sessions {
		wpm, acc := SessionMetrics(s.Completed, s.CharsTyped, s.CharsFailed, s.DurationMs)
		sumWPM += wpm
		sumAcc += acc
		t.BestWPM = math.Max(t.BestWPM, wpm)
		t.Completed += s.Completed
		t.CharsTyped += s.CharsTyped
		t.CharsFailed += s.CharsFailed
		t.Duration += time.Duration(s.DurationMs) * time.Millisecond
	}
	t.Sessions = len(sessions)
	t.AvgWPM = sumWPM / float64(t.Sessions)
	t.AvgAccuracy = sumAcc / float64(t.Sessions)
	return t
}

// Series returns per-session WPM and accuracy (percent) smoothed over window.
func Series(sessions []model.SessionAggregate, window int) (wpms, accs []float64) {
	wpms = make([]float64, len(sessions))
	accs = make([]float64, len(sessions))
	for i, s := range sessions {
		wpm, acc := SessionMetrics(s.Completed, s.CharsTyped, s.CharsFailed, s.DurationMs)
		wpms[i] = wpm
		accs[i] = acc * 100
	}
	return MovingAverage(wpms, window), MovingAverage(accs, window)
}

// RenderSummary prints a summary block for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	t := Summarize(sessions)
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", t.Sessions),
		fmt.Sprintf("Words completed: %d", t.Completed),
		fmt.Sprintf("Practice time: %s", t.Duration.Round(time.Second)),
		fmt.Sprintf("Avg WPM: %.2f", t.AvgWPM),
		fmt.Sprintf("Best WPM: %.2f", t.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", t.AvgAccuracy*100),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints WPM and accuracy sparklines, clipped to totalWidth when
// it is positive.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window, totalWidth int) error {
	if len(sessions) == 0 {
		return nil
	}
	wpms, accs := Series(sessions, window)
	const labelWidth = 10
	width := 0
	if totalWidth > labelWidth {
		width = totalWidth - labelWidth
	}
	if _, err := fmt.Fprintf(w, "Learning Curves (window %d)\n", max(window, 1)); err != nil {
		return err
	}
	rows := []struct {
		name   string
		values []float64
	}{
		{"WPM", wpms},
		{"Accuracy", accs},
	}
	for _, r := range rows {
		label := padCell(r.name, labelWidth-1, false)
		if _, err := fmt.Fprintf(w, "%s %s\n", label, Sparkline(r.values, width)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
