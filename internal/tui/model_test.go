package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typoeq/internal/dictionary"
	"github.com/verte-zerg/typoeq/internal/engine"
	"github.com/verte-zerg/typoeq/internal/generator"
	"github.com/verte-zerg/typoeq/internal/model"
	"github.com/verte-zerg/typoeq/internal/profile"
)

type firstWordPicker struct{}

func (firstWordPicker) Pick(dict *dictionary.Dictionary, _ map[string]int) (dictionary.Word, generator.Origin) {
	return dict.Words()[0], generator.FromDictionary
}

func newTestModel(t *testing.T, cfg model.Config) (*Model, *engine.Session) {
	t.Helper()
	entries := []dictionary.Entry{
		dictionary.Word{Identifier: "cat", Translations: []string{"chat", "matou"}},
		dictionary.Phrase{Identifier: "the cat sleeps", Translation: "le chat dort", ExampleFor: "cat"},
	}
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time {
		clock = clock.Add(10 * time.Second)
		return clock
	}
	session, err := engine.NewSession(dictionary.New(entries, "en", "fr"), profile.New("alice"), firstWordPicker{}, now)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return NewModel(cfg, session), session
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUpdateTypesAndCompletes(t *testing.T) {
	m, session := newTestModel(t, model.Config{})
	m.Update(keyRunes("ca"))
	if got := session.State().Progress; got != 2 {
		t.Fatalf("expected progress 2, got %d", got)
	}
	m.Update(keyRunes("t"))
	if m.lastEvent != engine.EventCompleted {
		t.Fatalf("expected completion, got %v", m.lastEvent)
	}
	if session.Profile().Count("cat") != 1 {
		t.Fatalf("expected profile count 1, got %d", session.Profile().Count("cat"))
	}
}

func TestUpdateBackspaceClearsFailure(t *testing.T) {
	m, session := newTestModel(t, model.Config{})
	m.Update(keyRunes("x"))
	if !session.State().Failed {
		t.Fatalf("expected failed state")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if session.State().Failed || m.lastEvent != engine.EventCleared {
		t.Fatalf("expected cleared failure, got %v", m.lastEvent)
	}
}

func TestUpdateIgnoresOtherKeys(t *testing.T) {
	m, session := newTestModel(t, model.Config{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if cmd != nil {
		t.Fatalf("expected no command for tab")
	}
	if session.State().Stats.CharsTyped != 0 {
		t.Fatalf("expected no keystroke recorded")
	}
}

func TestUpdateQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m, _ := newTestModel(t, model.Config{})
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		if cmd == nil {
			t.Fatalf("expected quit command for %v", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg for %v", key)
		}
		if m.View() != "" {
			t.Fatalf("expected empty view after quit")
		}
	}
}

func TestViewShowsTranslationAndPhrases(t *testing.T) {
	m, _ := newTestModel(t, model.Config{ShowPhrases: true})
	out := m.View()
	if !containsAll(out, []string{"chat, matou", "the cat sleeps", "le chat dort", "new"}) {
		t.Fatalf("view missing expected content: %s", out)
	}

	m, _ = newTestModel(t, model.Config{})
	if strings.Contains(m.View(), "the cat sleeps") {
		t.Fatalf("phrases shown without ShowPhrases")
	}
}

func TestRenderFooterFormats(t *testing.T) {
	m, _ := newTestModel(t, model.Config{})
	m.Update(keyRunes("cxat"))
	out := m.renderFooter()
	if !containsAll(out, []string{"1.5 WPM", "Done 1", "Acc 75.0%", "en → fr", "alice"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
	if !strings.Contains(m.View(), "seen ×1") {
		t.Fatalf("expected mastery label after completion: %s", m.View())
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
