package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typoeq/internal/model"
)

func TestSessionMetrics(t *testing.T) {
	wpm, acc := SessionMetrics(6, 40, 4, 2*60000)
	if math.Abs(wpm-3) > 1e-9 {
		t.Fatalf("expected 3 wpm, got %v", wpm)
	}
	if math.Abs(acc-0.9) > 1e-9 {
		t.Fatalf("expected 0.9 accuracy, got %v", acc)
	}

	wpm, acc = SessionMetrics(6, 0, 0, 0)
	if wpm != 0 || acc != 0 {
		t.Fatalf("expected zero metrics, got %v %v", wpm, acc)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 9}, 0); got != " @" {
		t.Fatalf("unexpected sparkline: %q", got)
	}
	if got := Sparkline([]float64{1, 1, 1}, 0); got != "+++" {
		t.Fatalf("unexpected flat sparkline: %q", got)
	}
	if got := Sparkline([]float64{5, 0, 9}, 2); got != " @" {
		t.Fatalf("expected most recent values only, got %q", got)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("unexpected empty output: %q", buf.String())
	}

	buf.Reset()
	sessions := []model.SessionAggregate{
		{SessionID: 1, EndedAt: time.Unix(60, 0), Completed: 4, CharsTyped: 10, CharsFailed: 0, DurationMs: 60000},
		{SessionID: 2, EndedAt: time.Unix(120, 0), Completed: 2, CharsTyped: 10, CharsFailed: 5, DurationMs: 60000},
	}
	if err := RenderSummary(&buf, sessions); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 2", "Words completed: 6", "Practice time: 2m0s", "Avg WPM: 3.00", "Best WPM: 4.00", "Avg Accuracy: 75.00%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderCurvesClipsWidth(t *testing.T) {
	sessions := make([]model.SessionAggregate, 30)
	for i := range sessions {
		sessions[i] = model.SessionAggregate{Completed: i, CharsTyped: 10, DurationMs: 60000}
	}
	var buf bytes.Buffer
	if err := RenderCurves(&buf, sessions, 1, 20); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[1], "WPM") || len(lines[1]) != 20 {
		t.Fatalf("unexpected WPM line: %q", lines[1])
	}
}
