// Package engine implements the per-keystroke practice state machine.
package engine

import (
	"errors"
	"time"
	"unicode"

	"github.com/verte-zerg/typoeq/internal/dictionary"
	"github.com/verte-zerg/typoeq/internal/generator"
	"github.com/verte-zerg/typoeq/internal/profile"
)

// ErrNoWords is returned when a session is created without any words to practice.
var ErrNoWords = errors.New("dictionary has no words to practice")

// Event describes how a keystroke changed the session.
type Event int

// Keystroke outcomes.
const (
	EventNone Event = iota
	EventAdvanced
	EventFailed
	EventCleared
	EventCompleted
)

func (e Event) String() string {
	switch e {
	case EventAdvanced:
		return "advanced"
	case EventFailed:
		return "failed"
	case EventCleared:
		return "cleared"
	case EventCompleted:
		return "completed"
	default:
		return "none"
	}
}

// Picker selects the next word to practice.
type Picker interface {
	Pick(dict *dictionary.Dictionary, learnt map[string]int) (dictionary.Word, generator.Origin)
}

// Stats are the running counters of a session.
type Stats struct {
	Completed   int
	CharsTyped  int
	CharsFailed int
}

// State is the live typing state of the current word.
type State struct {
	Progress   int
	Failed     bool
	StartedAt  time.Time
	LastWordAt time.Time
	// WPM is 1 / minutes elapsed since the previous completion, refreshed on
	// every keystroke. It is a cadence figure, not an average.
	WPM    float64
	Origin generator.Origin
	Stats  Stats
}

// Summary is the end-of-run snapshot.
type Summary struct {
	Completed   int
	CharsTyped  int
	CharsFailed int
	StartedAt   time.Time
	EndedAt     time.Time
}

// Duration returns the elapsed session time.
func (s Summary) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}

// Session drives one practice run. It is not safe for concurrent use.
type Session struct {
	dict    *dictionary.Dictionary
	profile *profile.Profile
	picker  Picker
	now     func() time.Time

	word    dictionary.Word
	target  []rune
	state   State
	history *History

	completedWords map[string]int
}

// NewSession starts a session and selects the first word. A nil picker uses a
// time-seeded generator and a nil now uses time.Now.
func NewSession(dict *dictionary.Dictionary, prof *profile.Profile, picker Picker, now func() time.Time) (*Session, error) {
	if dict == nil || len(dict.Words()) == 0 {
		return nil, ErrNoWords
	}
	if prof == nil {
		prof = profile.New(profile.DefaultName)
	}
	if picker == nil {
		picker = generator.New()
	}
	if now == nil {
		now = time.Now
	}
	s := &Session{
		dict:           dict,
		profile:        prof,
		picker:         picker,
		now:            now,
		history:        NewHistory(HistorySize),
		completedWords: map[string]int{},
	}
	started := now()
	s.state.StartedAt = started
	s.state.LastWordAt = started
	s.nextWord()
	return s, nil
}

// Word returns the word being typed.
func (s *Session) Word() dictionary.Word { return s.word }

// Target returns the runes of the current word.
func (s *Session) Target() []rune { return s.target }

// State returns a copy of the live state.
func (s *Session) State() State { return s.state }

// Profile returns the profile mutated by this session.
func (s *Session) Profile() *profile.Profile { return s.profile }

// Dictionary returns the dictionary being practiced.
func (s *Session) Dictionary() *dictionary.Dictionary { return s.dict }

// Recent returns recently completed words, oldest first.
func (s *Session) Recent() []dictionary.Word { return s.history.Items() }

// CompletedWords returns per-word completions made during this session.
func (s *Session) CompletedWords() map[string]int {
	out := make(map[string]int, len(s.completedWords))
	for k, v := range s.completedWords {
		out[k] = v
	}
	return out
}

// TypeRune scores one typed character against the current word.
func (s *Session) TypeRune(r rune) Event {
	if s.state.Progress >= len(s.target) {
		s.nextWord()
	}
	now := s.now()
	s.state.Stats.CharsTyped++

	ev := EventFailed
	if matches(s.target[s.state.Progress], r) {
		s.state.Progress++
		s.state.Failed = false
		ev = EventAdvanced
	} else {
		s.state.Failed = true
		s.state.Stats.CharsFailed++
	}
	s.state.WPM = instantWPM(now, s.state.LastWordAt)

	if s.state.Progress >= len(s.target) {
		s.complete(now)
		return EventCompleted
	}
	return ev
}

// Backspace clears a pending mistype. Progress never moves backwards.
func (s *Session) Backspace() Event {
	if !s.state.Failed {
		return EventNone
	}
	s.state.Failed = false
	return EventCleared
}

// Summary returns counters and timing for the run so far.
func (s *Session) Summary() Summary {
	return Summary{
		Completed:   s.state.Stats.Completed,
		CharsTyped:  s.state.Stats.CharsTyped,
		CharsFailed: s.state.Stats.CharsFailed,
		StartedAt:   s.state.StartedAt,
		EndedAt:     s.now(),
	}
}

func (s *Session) complete(now time.Time) {
	s.state.LastWordAt = now
	s.state.Stats.Completed++
	s.profile.Complete(s.word.Identifier)
	s.completedWords[s.word.Identifier]++
	s.history.Push(s.word)
	s.nextWord()
}

func (s *Session) nextWord() {
	word, origin := s.picker.Pick(s.dict, s.profile.WordsLearnt)
	s.word = word
	s.target = []rune(word.Identifier)
	s.state.Progress = 0
	s.state.Failed = false
	s.state.Origin = origin
}

// skippable runes advance on any non-alphanumeric keystroke.
var skippable = map[rune]struct{}{
	'/': {},
	'|': {},
}

func matches(expected, typed rune) bool {
	if _, ok := skippable[expected]; ok && !isAlphanumeric(typed) {
		return true
	}
	return expected == typed
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

func instantWPM(now, last time.Time) float64 {
	minutes := now.Sub(last).Minutes()
	if minutes <= 0 {
		return 0
	}
	return 1.0 / minutes
}
