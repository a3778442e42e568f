package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/verte-zerg/typoeq/internal/model"
	"github.com/verte-zerg/typoeq/internal/profile"
)

// WordRow is one line of the per-word mastery table.
type WordRow struct {
	Word   string
	Count  int
	Level  profile.Level
	Recent int
}

// MasteryRows joins profile counts with windowed completions, weakest first.
func MasteryRows(learnt map[string]int, window []model.WordAggregate) []WordRow {
	recent := make(map[string]int, len(window))
	for _, agg := range window {
		recent[agg.Word] = agg.Completions
	}
	rows := make([]WordRow, 0, len(learnt))
	for word, count := range learnt {
		rows = append(rows, WordRow{
			Word:   word,
			Count:  count,
			Level:  profile.LevelFor(count),
			Recent: recent[word],
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count == rows[j].Count {
			return rows[i].Word < rows[j].Word
		}
		return rows[i].Count < rows[j].Count
	})
	return rows
}

// LevelCounts returns how many profile words sit at each mastery level.
func LevelCounts(learnt map[string]int) map[profile.Level]int {
	counts := map[profile.Level]int{}
	for _, c := range learnt {
		counts[profile.LevelFor(c)]++
	}
	return counts
}

// RenderWordTable prints per-word mastery rows.
func RenderWordTable(w io.Writer, rows []WordRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No learnt words found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Per-Word Mastery"); err != nil {
		return err
	}
	headers := []string{"Word", "Count", "Level", "Recent"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.Word,
			fmt.Sprintf("%d", r.Count),
			r.Level.String(),
			fmt.Sprintf("%d", r.Recent),
		})
	}
	for _, line := range formatTable(headers, tableRows, map[int]bool{1: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
