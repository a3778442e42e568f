// Package generator picks the next practice word.
package generator

import (
	"math/rand"
	"sort"
	"time"

	"github.com/verte-zerg/typoeq/internal/dictionary"
)

// Relative weights of the two selection branches.
const (
	dictionaryWeight = 1
	masteryWeight    = 2
)

// Origin reports which branch produced a word.
type Origin int

// Selection branches.
const (
	FromDictionary Origin = iota
	FromMastery
)

// Generator draws words uniformly from a dictionary, biased toward words the
// profile has already completed.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator using src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Pick selects the next word. With weight 1 it draws from the whole word list;
// with weight 2 it draws among learnt words and resolves them in dict. An empty
// learnt map, or a learnt word missing from dict, falls back to the uniform draw.
// dict must contain at least one word.
func (g *Generator) Pick(dict *dictionary.Dictionary, learnt map[string]int) (dictionary.Word, Origin) {
	if len(learnt) > 0 && g.rnd.Intn(dictionaryWeight+masteryWeight) >= dictionaryWeight {
		known := sortedKeys(learnt)
		id := known[g.rnd.Intn(len(known))]
		if word, ok := dict.Lookup(id); ok {
			return word, FromMastery
		}
	}
	return g.Uniform(dict.Words()), FromDictionary
}

// Uniform draws one word with equal probability.
func (g *Generator) Uniform(words []dictionary.Word) dictionary.Word {
	return words[g.rnd.Intn(len(words))]
}

// sortedKeys keeps draws reproducible for a seeded source.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
