package dictionary

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeDict(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write dictionary: %v", err)
	}
	return path
}

func TestRegistrySelectsByExtension(t *testing.T) {
	path := writeDict(t, "words.XDXF", sampleXDXF)
	dict, err := DefaultRegistry().ParseFile(path)
	if err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if len(dict.Words()) != 4 {
		t.Fatalf("expected 4 words, got %d", len(dict.Words()))
	}
}

func TestRegistryUnknownExtension(t *testing.T) {
	path := writeDict(t, "words.csv", "a,b")
	_, err := DefaultRegistry().ParseFile(path)
	if !errors.Is(err, ErrNoParser) {
		t.Fatalf("expected ErrNoParser, got %v", err)
	}
	if _, err := DefaultRegistry().ParserFor("noext"); !errors.Is(err, ErrNoParser) {
		t.Fatalf("expected ErrNoParser for missing extension, got %v", err)
	}
}

func TestTypoFormatIsDeferred(t *testing.T) {
	path := writeDict(t, "words.typo", "anything")
	_, err := ParseFile(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestRegistryMissingFile(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.xdxf"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadAsyncEventOrder(t *testing.T) {
	path := writeDict(t, "words.xdxf", sampleXDXF)
	events := LoadAsync(context.Background(), DefaultRegistry(), path)

	var kinds []EventKind
	dict, err := Await(context.Background(), events, func(ev Event) {
		kinds = append(kinds, ev.Kind)
	})
	if err != nil {
		t.Fatalf("await: %v", err)
	}
	if dict == nil || len(dict.Words()) != 4 {
		t.Fatalf("expected loaded dictionary")
	}
	want := []EventKind{LoadingStarted, DictionaryLoaded, LoadingFinished}
	if len(kinds) != len(want) {
		t.Fatalf("expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, kinds)
		}
	}
}

func TestLoadAsyncEmptyDictionaryFails(t *testing.T) {
	path := writeDict(t, "empty.xdxf", `<xdxf lang_from="en" lang_to="de"></xdxf>`)
	_, err := Await(context.Background(), LoadAsync(context.Background(), DefaultRegistry(), path), nil)
	if !errors.Is(err, ErrEmptyDictionary) {
		t.Fatalf("expected ErrEmptyDictionary, got %v", err)
	}
}
