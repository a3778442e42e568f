// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typoeq/internal/engine"
	"github.com/verte-zerg/typoeq/internal/generator"
	"github.com/verte-zerg/typoeq/internal/model"
	"github.com/verte-zerg/typoeq/internal/profile"
	statsPkg "github.com/verte-zerg/typoeq/internal/stats"
)

// Model implements the Bubble Tea practice UI on top of an engine session.
type Model struct {
	config  model.Config
	session *engine.Session

	width  int
	height int

	lastEvent engine.Event
	quitting  bool
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Underline(true)
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = currentWordStyle.Underline(true)
	translationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	phraseStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0")).Italic(true)
	historyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))

	levelStyles = map[profile.Level]lipgloss.Style{
		profile.LevelNew:    lipgloss.NewStyle().Foreground(lipgloss.Color("#40A9FF")),
		profile.LevelSeen:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FAAD14")),
		profile.LevelLearnt: lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")),
	}
)

// NewModel constructs a practice TUI model for session.
func NewModel(cfg model.Config, session *engine.Session) *Model {
	return &Model{config: cfg, session: session}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Esc and Ctrl+C quit, discarding the unfinished
// word; keys other than characters and backspace are ignored.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyBackspace:
			m.lastEvent = m.session.Backspace()
			return m, nil
		case tea.KeySpace:
			m.handleRunes([]rune{' '})
			return m, nil
		case tea.KeyRunes:
			m.handleRunes(msg.Runes)
			return m, nil
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

func (m *Model) handleRunes(runes []rune) {
	for _, r := range runes {
		before := m.session.Word()
		m.lastEvent = m.session.TypeRune(r)
		if m.lastEvent == engine.EventCompleted {
			slog.Debug("word completed",
				slog.String("word", before.Identifier),
				slog.Int("count", m.session.Profile().Count(before.Identifier)),
				slog.Float64("wpm", m.session.State().WPM),
			)
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	content := m.renderContent()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + m.renderFooter()
	}
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(int(float64(m.width)*0.70), 1)
}

func (m *Model) renderContent() string {
	word := m.session.Word()
	state := m.session.State()
	width := m.contentWidth()

	blocks := []string{
		m.renderLevel(),
		wrapStyledRunes(buildStyledRunes(m.session.Target(), state.Progress, state.Failed), width),
		wrapStyledRunes(plainStyledRunes(word.Translation(), translationStyle), width),
	}
	if m.config.ShowPhrases {
		for _, p := range m.session.Dictionary().PhrasesFor(word.Identifier) {
			text := p.Identifier
			if p.Translation != "" {
				text += " · " + p.Translation
			}
			blocks = append(blocks, wrapStyledRunes(plainStyledRunes(text, phraseStyle), width))
		}
	}
	if recent := m.renderHistory(); recent != "" {
		blocks = append(blocks, "", recent)
	}
	return lipgloss.JoinVertical(lipgloss.Center, blocks...)
}

func (m *Model) renderLevel() string {
	word := m.session.Word()
	count := m.session.Profile().Count(word.Identifier)
	level := profile.LevelFor(count)
	label := level.String()
	if count > 0 {
		label = fmt.Sprintf("%s ×%d", label, count)
	}
	if m.session.State().Origin == generator.FromMastery {
		label += " · review"
	}
	return levelStyles[level].Render(label)
}

func (m *Model) renderHistory() string {
	recent := m.session.Recent()
	if len(recent) == 0 {
		return ""
	}
	parts := make([]string, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		parts = append(parts, recent[i].Identifier)
	}
	return historyStyle.Render(strings.Join(parts, "  "))
}

func (m *Model) renderFooter() string {
	state := m.session.State()
	_, acc := statsPkg.SessionMetrics(state.Stats.Completed, state.Stats.CharsTyped, state.Stats.CharsFailed, 0)
	dict := m.session.Dictionary()
	segments := []string{
		fmt.Sprintf("%.1f WPM", state.WPM),
		fmt.Sprintf("Done %d", state.Stats.Completed),
		fmt.Sprintf("Acc %.1f%%", acc*100),
		fmt.Sprintf("%s → %s", dict.From(), dict.To()),
		m.session.Profile().Name,
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
