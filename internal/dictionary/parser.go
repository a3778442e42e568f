package dictionary

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrNoParser is returned when no parser is registered for a file extension.
	ErrNoParser = errors.New("no parser for this extension")
	// ErrUnsupportedFormat is returned by parsers for formats that are reserved but not implemented.
	ErrUnsupportedFormat = errors.New("dictionary format is not supported yet")
)

// Parser turns a dictionary source into a Dictionary.
type Parser interface {
	Parse(r io.Reader) (*Dictionary, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(r io.Reader) (*Dictionary, error)

// Parse implements Parser.
func (f ParserFunc) Parse(r io.Reader) (*Dictionary, error) {
	return f(r)
}

// Registry selects a parser by file extension.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: map[string]Parser{}}
}

// DefaultRegistry returns a registry with the built-in formats.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(".xdxf", XDXFParser{})
	r.Register(".typo", TypoParser{})
	return r
}

// Register binds a parser to an extension such as ".xdxf".
func (r *Registry) Register(ext string, p Parser) {
	r.parsers[normalizeExt(ext)] = p
}

// Extensions lists registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.parsers))
	for ext := range r.parsers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ParserFor returns the parser registered for the path's extension.
func (r *Registry) ParserFor(path string) (Parser, error) {
	ext := normalizeExt(filepath.Ext(path))
	if ext == "" {
		return nil, fmt.Errorf("%w: %q has no extension", ErrNoParser, path)
	}
	p, ok := r.parsers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrNoParser, ext, strings.Join(r.Extensions(), ", "))
	}
	return p, nil
}

// ParseFile opens path and parses it with the matching parser.
func (r *Registry) ParseFile(path string) (*Dictionary, error) {
	p, err := r.ParserFor(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only dictionary.
			_ = cerr
		}
	}()
	dict, err := p.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return dict, nil
}

// ParseFile parses path with the default registry.
func ParseFile(path string) (*Dictionary, error) {
	return DefaultRegistry().ParseFile(path)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
