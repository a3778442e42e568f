package engine

import "github.com/verte-zerg/typoeq/internal/dictionary"

// HistorySize is the number of recently completed words kept for display.
const HistorySize = 5

// History is a bounded buffer of completed words; the oldest is evicted first.
type History struct {
	items    []dictionary.Word
	capacity int
}

// NewHistory returns an empty history holding at most capacity words.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{items: make([]dictionary.Word, 0, capacity), capacity: capacity}
}

// Push appends w, evicting the oldest word when full.
func (h *History) Push(w dictionary.Word) {
	if len(h.items) == h.capacity {
		copy(h.items, h.items[1:])
		h.items = h.items[:len(h.items)-1]
	}
	h.items = append(h.items, w)
}

// Items returns the words oldest-first.
func (h *History) Items() []dictionary.Word {
	out := make([]dictionary.Word, len(h.items))
	copy(out, h.items)
	return out
}
