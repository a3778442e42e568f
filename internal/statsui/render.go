package statsui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typoeq/internal/profile"
	"github.com/verte-zerg/typoeq/internal/stats"
)

const topWordsShown = 5

func renderOverview(report stats.Report, window, width int) string {
	if len(report.Sessions) == 0 {
		return "No sessions found."
	}
	parts := []string{
		renderSummaryCards(report, width),
		renderCurves(report, window, width),
	}
	if top := renderTopWords(report); top != "" {
		parts = append(parts, top)
	}
	return strings.TrimRight(strings.Join(parts, "\n\n"), "\n")
}

func renderSummaryCards(report stats.Report, width int) string {
	t := stats.Summarize(report.Sessions)
	cards := []string{
		metricCard("Sessions", fmt.Sprintf("%d", t.Sessions)),
		metricCard("Words", fmt.Sprintf("%d", t.Completed)),
		metricCard("Time", t.Duration.Round(time.Second).String()),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", t.AvgWPM)),
		metricCard("Best WPM", fmt.Sprintf("%.1f", t.BestWPM)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", t.AvgAccuracy*100)),
		metricCard("Learnt", levelSummary(report.Levels)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[:3]...)
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3:]...)
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func levelSummary(levels map[profile.Level]int) string {
	return fmt.Sprintf("%d / %d / %d",
		levels[profile.LevelLearnt], levels[profile.LevelSeen], levels[profile.LevelNew])
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderCurves(report stats.Report, window, width int) string {
	wpms, accs := stats.Series(report.Sessions, window)
	const labelWidth = 10
	sparkWidth := max(width-labelWidth-12, 1)
	lines := []string{headerStyle.Render(fmt.Sprintf("Learning curves (window %d)", max(window, 1)))}
	lines = append(lines,
		curveLine("WPM", wpms, sparkWidth, "%.1f"),
		curveLine("Accuracy", accs, sparkWidth, "%.1f%%"),
	)
	return strings.Join(lines, "\n")
}

func curveLine(label string, values []float64, width int, format string) string {
	last := ""
	if len(values) > 0 {
		last = fmt.Sprintf(format, values[len(values)-1])
	}
	return fmt.Sprintf("%-9s %s %s", label, cardValueStyle.Render(stats.Sparkline(values, width)), last)
}

func renderTopWords(report stats.Report) string {
	top := stats.TopWordsByCompletions(report.WordAggsAll, topWordsShown)
	if len(top) == 0 {
		return ""
	}
	parts := make([]string, 0, len(top))
	for _, agg := range top {
		parts = append(parts, fmt.Sprintf("%s ×%d", agg.Word, agg.Completions))
	}
	return headerStyle.Render("Most typed: ") + strings.Join(parts, "  ")
}

func wordTableColumns() []table.Column {
	return []table.Column{
		{Title: "Word", Width: 24},
		{Title: "Count", Width: 6},
		{Title: "Level", Width: 7},
		{Title: "Window", Width: 7},
	}
}

func wordTableRows(rows []stats.WordRow) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, table.Row{
			r.Word,
			fmt.Sprintf("%d", r.Count),
			r.Level.String(),
			fmt.Sprintf("%d", r.Recent),
		})
	}
	return out
}

func buildWordTable(rows []stats.WordRow, width, height int) table.Model {
	t := table.New(
		table.WithColumns(wordTableColumns()),
		table.WithRows(wordTableRows(rows)),
		table.WithHeight(max(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(wordTableStyles())
	return t
}

func wordTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		PaddingLeft(0)
	styles.Cell = styles.Cell.PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
