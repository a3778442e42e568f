// Package dictionary holds imported bilingual dictionaries and their parsers.
package dictionary

import (
	"errors"
	"strings"
)

// UnknownLanguage is used when a source does not declare its languages.
const UnknownLanguage = "Unknown"

// ErrEmptyDictionary is returned when a source yields no words.
var ErrEmptyDictionary = errors.New("dictionary contains no words")

// Entry is a single dictionary record: either a Word or a Phrase.
type Entry interface {
	ID() string
	isEntry()
}

// Word is a headword with its ordered translations.
type Word struct {
	Identifier   string
	Translations []string
}

// ID implements Entry.
func (w Word) ID() string { return w.Identifier }

func (Word) isEntry() {}

// Translation joins all translations for display.
func (w Word) Translation() string {
	return strings.Join(w.Translations, ", ")
}

// Phrase is an example phrase attached to a headword.
type Phrase struct {
	Identifier  string
	Translation string
	ExampleFor  string
}

// ID implements Entry.
func (p Phrase) ID() string { return p.Identifier }

func (Phrase) isEntry() {}

// Dictionary is the immutable result of an import. Slices returned by its
// accessors must not be modified.
type Dictionary struct {
	entries []Entry
	words   []Word
	phrases []Phrase
	from    string
	to      string
}

// New builds a dictionary from entries in source order. Empty language
// names fall back to UnknownLanguage.
func New(entries []Entry, from, to string) *Dictionary {
	d := &Dictionary{
		entries: make([]Entry, 0, len(entries)),
		from:    from,
		to:      to,
	}
	if d.from == "" {
		d.from = UnknownLanguage
	}
	if d.to == "" {
		d.to = UnknownLanguage
	}
	for _, entry := range entries {
		switch e := entry.(type) {
		case Word:
			if e.Identifier == "" {
				continue
			}
			d.words = append(d.words, e)
		case Phrase:
			if e.Identifier == "" {
				continue
			}
			d.phrases = append(d.phrases, e)
		default:
			continue
		}
		d.entries = append(d.entries, entry)
	}
	return d
}

// Entries returns all entries in file order.
func (d *Dictionary) Entries() []Entry { return d.entries }

// Words returns the word-only view.
func (d *Dictionary) Words() []Word { return d.words }

// Phrases returns the phrase-only view.
func (d *Dictionary) Phrases() []Phrase { return d.phrases }

// From returns the source language name.
func (d *Dictionary) From() string { return d.from }

// To returns the target language name.
func (d *Dictionary) To() string { return d.to }

// Lookup finds the first word with the given identifier.
func (d *Dictionary) Lookup(identifier string) (Word, bool) {
	for _, w := range d.words {
		if w.Identifier == identifier {
			return w, true
		}
	}
	return Word{}, false
}

// PhrasesFor returns the example phrases attached to a headword.
func (d *Dictionary) PhrasesFor(identifier string) []Phrase {
	var out []Phrase
	for _, p := range d.phrases {
		if p.ExampleFor == identifier {
			out = append(out, p)
		}
	}
	return out
}

// Validate reports ErrEmptyDictionary when there is nothing to practice.
func (d *Dictionary) Validate() error {
	if d == nil || len(d.words) == 0 {
		return ErrEmptyDictionary
	}
	return nil
}
