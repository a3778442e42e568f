package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Word", "Count", "Level"}
	rows := [][]string{
		{"cat", "12", "learnt"},
		{"ice cream", "3", "seen"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Word      Count Level" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "cat          12 learnt" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "ice cream     3 seen" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Word", "N"}, [][]string{{"日本", "1"}, {"a", "2"}}, nil)
	if lines[1] != "日本 1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "a    2" {
		t.Fatalf("unexpected narrow row: %q", lines[2])
	}
}
