package statsui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typoeq/internal/model"
)

const (
	filterProfile = iota
	filterSince
	filterLast
	filterWindow
)

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Profile: "),
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
		newFilterInput("Curve window: "),
	}
	m.setInputsFromConfig()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	m.filterInputs[filterProfile].SetValue(m.cfg.Profile)
	since := ""
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	m.filterInputs[filterSince].SetValue(since)
	last := ""
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	m.filterInputs[filterLast].SetValue(last)
	m.filterInputs[filterWindow].SetValue(strconv.Itoa(m.cfg.CurveWindow))
}

func (m *Model) renderFilterSummary() string {
	prof := m.cfg.Profile
	if prof == "" {
		prof = "any"
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: profile=%s  since=%s  last=%s  window=%d", prof, since, last, m.cfg.CurveWindow)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	m.filterIndex = (idx + count) % count
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	cfg, err := parseFilter(
		m.filterInputs[filterProfile].Value(),
		m.filterInputs[filterSince].Value(),
		m.filterInputs[filterLast].Value(),
		m.filterInputs[filterWindow].Value(),
	)
	if err != nil {
		return err
	}
	cfg.ProfilePath = m.cfg.ProfilePath
	m.cfg = cfg
	return nil
}

func parseFilter(profileInput, sinceInput, lastInput, windowInput string) (model.StatsConfig, error) {
	var cfg model.StatsConfig
	cfg.Profile = strings.TrimSpace(profileInput)
	if s := strings.TrimSpace(sinceInput); s != "" {
		parsed, perr := time.ParseInLocation("2006-01-02", s, time.Local)
		if perr != nil {
			return cfg, fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		cfg.Since = &parsed
	}
	if s := strings.TrimSpace(lastInput); s != "" {
		parsed, perr := strconv.Atoi(s)
		if perr != nil || parsed < 0 {
			return cfg, fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		cfg.Last = parsed
	}
	cfg.CurveWindow = 1
	if s := strings.TrimSpace(windowInput); s != "" {
		parsed, perr := strconv.Atoi(s)
		if perr != nil || parsed < 1 {
			return cfg, fmt.Errorf("invalid curve window (use integer >= 1)")
		}
		cfg.CurveWindow = parsed
	}
	return cfg, nil
}

func truncateLine(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
