package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/typoeq/internal/config"
	"github.com/verte-zerg/typoeq/internal/engine"
	"github.com/verte-zerg/typoeq/internal/model"
	"github.com/verte-zerg/typoeq/internal/profile"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	meta, err := toml.Decode(defaultConfigTemplate(), &cfg)
	if err != nil {
		t.Fatalf("decode template: %v", err)
	}
	if len(meta.Undecoded()) != 0 {
		t.Fatalf("unexpected keys: %v", meta.Undecoded())
	}
	if !strings.Contains(defaultConfigTemplate(), "# profile-file =") {
		t.Fatalf("template missing profile-file key")
	}
}

func TestValidateConfig(t *testing.T) {
	good := model.Config{DictionaryPath: "dict.xdxf", ProfileName: "alice", ProfilePath: "/tmp/p.txt"}
	if err := validateConfig(good); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	bad := good
	bad.ProfileName = "a]b"
	if err := validateConfig(bad); err == nil {
		t.Fatalf("expected error for bracket in profile name")
	}
	bad = good
	bad.DictionaryPath = " "
	if err := validateConfig(bad); err == nil {
		t.Fatalf("expected error for empty dictionary path")
	}
}

func TestLoadDictionaryErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := loadDictionary(context.Background(), discardLogger(), filepath.Join(dir, "missing.xdxf"))
	if err == nil || !strings.Contains(err.Error(), "dictionary not found") {
		t.Fatalf("expected not found error, got %v", err)
	}

	path := filepath.Join(dir, "words.csv")
	if err := os.WriteFile(path, []byte("a,b"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err = loadDictionary(context.Background(), discardLogger(), path)
	if err == nil || !strings.Contains(err.Error(), ".xdxf") {
		t.Fatalf("expected unsupported extension error listing formats, got %v", err)
	}
}

func TestLoadDictionary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.xdxf")
	content := `<xdxf lang_from="en" lang_to="de"><ar><k>cat</k><dtrn>Katze</dtrn></ar></xdxf>`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	dict, err := loadDictionary(context.Background(), discardLogger(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(dict.Words()) != 1 || dict.From() != "en" || dict.To() != "de" {
		t.Fatalf("unexpected dictionary: %+v", dict.Words())
	}
}

func TestLoadProfilesFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.txt")
	profiles, persist := loadProfiles(discardLogger(), path)
	if !persist {
		t.Fatalf("expected a missing file to be saved on exit")
	}
	if profiles.Path != path || len(profiles.Profiles) != 0 {
		t.Fatalf("expected empty profile file, got %+v", profiles)
	}
	if p := profiles.Profile(""); p.Name != profile.DefaultName {
		t.Fatalf("expected default profile, got %q", p.Name)
	}
}

func TestLoadProfilesUnreadableIsNotPersisted(t *testing.T) {
	// A directory at the profile path makes reading fail with something other than not-exist.
	path := t.TempDir()
	profiles, persist := loadProfiles(discardLogger(), path)
	if persist {
		t.Fatalf("expected unreadable profile file not to be overwritten")
	}
	if profiles == nil || len(profiles.Profiles) != 0 {
		t.Fatalf("expected empty profile file, got %+v", profiles)
	}
}

func TestPrintRunSummary(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	summary := engine.Summary{
		Completed:   10,
		CharsTyped:  50,
		CharsFailed: 5,
		StartedAt:   start,
		EndedAt:     start.Add(2 * time.Minute),
	}
	var buf bytes.Buffer
	if err := printRunSummary(&buf, summary); err != nil {
		t.Fatalf("print: %v", err)
	}
	want := "Completed 10 words in 2m0s · 5.0 WPM · 90.0% accuracy\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteProfiles(t *testing.T) {
	f := profile.NewFile("profiles.txt")
	f.Profile("bob").WordsLearnt["cat"] = 7
	alice := f.Profile("alice")
	alice.WordsLearnt["cat"] = 2
	alice.WordsLearnt["dog"] = 0

	var buf bytes.Buffer
	if err := writeProfiles(&buf, f, map[string]bool{"bob": true}); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "alice: 2 words, 0 learnt, 1 seen\nbob: 1 words, 1 learnt, 0 seen  (history)\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	if got := expandHome("~/dicts/en.xdxf"); got != filepath.Join("/home/tester", "dicts", "en.xdxf") {
		t.Fatalf("unexpected expansion: %s", got)
	}
	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Fatalf("expected absolute path unchanged, got %s", got)
	}
}

func TestLogOptions(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/state")
	level := "info"
	opts := logOptions(true, config.LogConfig{Level: &level})
	if !opts.Debug || opts.Level != "info" || opts.File != filepath.Join("/state", "typoeq", "debug.log") {
		t.Fatalf("unexpected options: %+v", opts)
	}
}
