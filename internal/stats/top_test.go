package stats

import (
	"testing"

	"github.com/verte-zerg/typoeq/internal/model"
)

func TestTopWordsByCompletions(t *testing.T) {
	aggs := []model.WordAggregate{
		{Word: "dog", Completions: 4},
		{Word: "cat", Completions: 4},
		{Word: "sun", Completions: 1},
	}
	top := TopWordsByCompletions(aggs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 words, got %d", len(top))
	}
	if top[0].Word != "cat" || top[1].Word != "dog" {
		t.Fatalf("unexpected order: %v", top)
	}
	if aggs[0].Word != "dog" {
		t.Fatalf("input slice was reordered")
	}
	if got := TopWordsByCompletions(aggs, 0); got != nil {
		t.Fatalf("expected nil for n=0, got %v", got)
	}
}
