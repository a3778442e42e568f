package stats

import (
	"sort"

	"github.com/verte-zerg/typoeq/internal/model"
)

// TopWordsByCompletions returns the top N words by completions, ties by word.
func TopWordsByCompletions(aggs []model.WordAggregate, n int) []model.WordAggregate {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	items := make([]model.WordAggregate, len(aggs))
	copy(items, aggs)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Completions == items[j].Completions {
			return items[i].Word < items[j].Word
		}
		return items[i].Completions > items[j].Completions
	})
	return items[:min(n, len(items))]
}
