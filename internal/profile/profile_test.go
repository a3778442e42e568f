package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "profiles.txt")
	f := NewFile(path)
	alice := f.Profile("alice")
	alice.WordsLearnt["house"] = 0
	alice.WordsLearnt["cat"] = 1234
	alice.WordsLearnt["and/or"] = 7
	bob := f.Profile("bob")
	bob.WordsLearnt["C#"] = 3
	f.Profile("empty")

	if err := Save(f); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Profiles) != 3 {
		t.Fatalf("expected 3 profiles, got %v", loaded.Names())
	}
	for _, name := range f.Names() {
		want := f.Profiles[name].WordsLearnt
		got := loaded.Profiles[name]
		if got == nil {
			t.Fatalf("missing profile %q", name)
		}
		if len(got.WordsLearnt) != len(want) {
			t.Fatalf("profile %q: expected %v, got %v", name, want, got.WordsLearnt)
		}
		for word, count := range want {
			if got.WordsLearnt[word] != count {
				t.Fatalf("profile %q word %q: expected %d, got %d", name, word, count, got.WordsLearnt[word])
			}
		}
	}
}

func TestLoadMalformedLineKeepsWord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.txt")
	content := "[default]\nhouse#2\nbroken\ncat#x\ndog#5\n\n[other]\nsun#1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p := f.Profiles["default"]
	if p == nil {
		t.Fatalf("missing default profile")
	}
	if count, ok := p.WordsLearnt["broken"]; !ok || count != 0 {
		t.Fatalf("expected broken mapped to 0, got %d (present=%v)", count, ok)
	}
	if count, ok := p.WordsLearnt["cat"]; !ok || count != 0 {
		t.Fatalf("expected cat mapped to 0, got %d (present=%v)", count, ok)
	}
	if p.WordsLearnt["house"] != 2 || p.WordsLearnt["dog"] != 5 {
		t.Fatalf("expected valid lines kept: %v", p.WordsLearnt)
	}
	if f.Profiles["other"].WordsLearnt["sun"] != 1 {
		t.Fatalf("expected other profile parsed: %v", f.Profiles["other"].WordsLearnt)
	}
}

func TestLoadWithoutSectionsSynthesizesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.txt")
	if err := os.WriteFile(path, []byte("stray#3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p, ok := f.Profiles[DefaultName]
	if !ok || len(p.WordsLearnt) != 0 {
		t.Fatalf("expected empty default profile, got %+v", f.Profiles)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestProfileSynthesizedWhenMissing(t *testing.T) {
	f := NewFile("unused")
	p := f.Profile("new-user")
	if p.Name != "new-user" || len(p.WordsLearnt) != 0 {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if f.Profile("") != f.Profiles[DefaultName] {
		t.Fatalf("expected empty name to resolve to default")
	}
}

func TestCompleteIncrements(t *testing.T) {
	p := New("x")
	if got := p.Complete("word"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := p.Complete("word"); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestLevelFor(t *testing.T) {
	cases := map[int]Level{0: LevelNew, 1: LevelSeen, 4: LevelSeen, 5: LevelLearnt, 40: LevelLearnt}
	for count, want := range cases {
		if got := LevelFor(count); got != want {
			t.Fatalf("LevelFor(%d) = %v, want %v", count, got, want)
		}
	}
}

func TestLoadSkipsOversizedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.txt")
	long := strings.Repeat("x", 70000)
	content := "[default]\nalpha#3\n" + long + "#1\nbeta#2\n[other]\ngamma#9\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := f.Profiles["default"]
	if def == nil || def.WordsLearnt["alpha"] != 3 || def.WordsLearnt["beta"] != 2 {
		t.Fatalf("expected lines around the long one to survive, got %+v", def)
	}
	if _, ok := def.WordsLearnt[long]; ok {
		t.Fatalf("expected oversized line to be skipped")
	}
	if other := f.Profiles["other"]; other == nil || other.WordsLearnt["gamma"] != 9 {
		t.Fatalf("expected following section to survive, got %+v", other)
	}
}

func TestLoadLastLineWithoutNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.txt")
	if err := os.WriteFile(path, []byte("[default]\nsun#4"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.Profiles["default"].WordsLearnt["sun"] != 4 {
		t.Fatalf("expected final line to be read, got %+v", f.Profiles["default"])
	}
}

func TestSaveSkipsMultilineWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.txt")
	f := NewFile(path)
	p := f.Profile("default")
	p.WordsLearnt["to go\nout"] = 1
	p.WordsLearnt["go out"] = 2

	if err := Save(f); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := loaded.Profiles["default"].WordsLearnt
	if len(got) != 1 || got["go out"] != 2 {
		t.Fatalf("expected only the single-line word, got %v", got)
	}
}
