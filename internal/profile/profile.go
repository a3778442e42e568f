// Package profile persists per-word mastery counts in a flat text file.
//
// The file holds any number of sections:
//
//	[name]
//	word#count
package profile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DefaultName is used when no profile is requested.
const DefaultName = "default"

const countSeparator = "#"

// MaxLineLength bounds a single line; longer lines are skipped on load.
const MaxLineLength = 64 * 1024

// Profile maps word identifiers to how often they were typed to completion.
type Profile struct {
	Name        string
	WordsLearnt map[string]int
}

// New returns an empty profile.
func New(name string) *Profile {
	return &Profile{Name: name, WordsLearnt: map[string]int{}}
}

// Complete records one completion of word and returns the new count.
func (p *Profile) Complete(word string) int {
	if p.WordsLearnt == nil {
		p.WordsLearnt = map[string]int{}
	}
	p.WordsLearnt[word]++
	return p.WordsLearnt[word]
}

// Count returns the completion count for word.
func (p *Profile) Count(word string) int {
	return p.WordsLearnt[word]
}

// Words returns the learnt word identifiers in sorted order.
func (p *Profile) Words() []string {
	words := make([]string, 0, len(p.WordsLearnt))
	for w := range p.WordsLearnt {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// File is a set of named profiles backed by a path.
type File struct {
	Path     string
	Profiles map[string]*Profile
}

// NewFile returns an empty profile file for path.
func NewFile(path string) *File {
	return &File{Path: path, Profiles: map[string]*Profile{}}
}

// Profile returns the named profile, creating an empty one when missing.
func (f *File) Profile(name string) *Profile {
	if name == "" {
		name = DefaultName
	}
	if p, ok := f.Profiles[name]; ok {
		return p
	}
	p := New(name)
	f.Profiles[name] = p
	return p
}

// Names returns profile names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Profiles))
	for name := range f.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads all profiles from path. Lines that fail to parse a count keep
// the word with count 0. Lines longer than MaxLineLength are skipped. A file
// without any section yields an empty default profile.
func Load(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only profile file.
			_ = cerr
		}
	}()

	result := NewFile(path)
	var current *Profile
	reader := bufio.NewReader(file)
	lineNo := 0
	for {
		raw, rerr := reader.ReadString('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return nil, fmt.Errorf("failed to read profile file: %w", rerr)
		}
		if raw == "" && rerr != nil {
			break
		}
		lineNo++
		if len(raw) > MaxLineLength {
			slog.Warn("skipping oversized profile line", slog.String("path", path), slog.Int("line", lineNo), slog.Int("bytes", len(raw)))
			continue
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if name, ok := sectionName(line); ok {
			if current != nil {
				result.Profiles[current.Name] = current
			}
			current = New(name)
			continue
		}
		if current == nil {
			slog.Debug("profile line outside of any section", slog.String("path", path), slog.Int("line", lineNo))
			continue
		}
		word, count, ok := parseEntry(line)
		if !ok {
			slog.Warn("malformed profile line", slog.String("path", path), slog.Int("line", lineNo), slog.String("word", word))
		}
		if word == "" {
			continue
		}
		current.WordsLearnt[word] = count
	}
	if current != nil {
		result.Profiles[current.Name] = current
	}
	if len(result.Profiles) == 0 {
		result.Profiles[DefaultName] = New(DefaultName)
	}
	return result, nil
}

// Save rewrites the whole file, creating parent directories as needed.
func Save(f *File) error {
	if f.Path == "" {
		return fmt.Errorf("profile file path is empty")
	}
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "profiles-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp profile file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, name := range f.Names() {
		p := f.Profiles[name]
		if _, err := fmt.Fprintf(writer, "[%s]\n", name); err != nil {
			return fmt.Errorf("failed to write profile file: %w", err)
		}
		for _, word := range p.Words() {
			if !storable(word) {
				slog.Warn("skipping profile word that spans lines", slog.String("profile", name), slog.String("word", word))
				continue
			}
			if _, err := fmt.Fprintf(writer, "%s%s%d\n", word, countSeparator, p.WordsLearnt[word]); err != nil {
				return fmt.Errorf("failed to write profile file: %w", err)
			}
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush profile file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close profile file: %w", err)
	}
	if err := os.Rename(tmpPath, f.Path); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}
	return nil
}

// storable reports whether word survives a save and load unchanged.
func storable(word string) bool {
	return word != "" && word == strings.TrimSpace(word) && !strings.ContainsAny(word, "\r\n")
}

func sectionName(line string) (string, bool) {
	if len(line) < 2 || line[0] != '[' || line[len(line)-1] != ']' {
		return "", false
	}
	return strings.TrimSpace(line[1 : len(line)-1]), true
}

// parseEntry splits on the last separator so identifiers may contain '#'.
func parseEntry(line string) (string, int, bool) {
	idx := strings.LastIndex(line, countSeparator)
	if idx < 0 {
		return line, 0, false
	}
	word := line[:idx]
	count, err := strconv.Atoi(strings.TrimSpace(line[idx+len(countSeparator):]))
	if err != nil || count < 0 {
		return word, 0, false
	}
	return word, count, true
}
