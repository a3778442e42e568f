package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes renders the target word: runes before progress are typed,
// the rune at progress is the cursor (red while failed) and the rest pending.
// Pending runes in the same space-delimited part as the cursor are highlighted.
func buildStyledRunes(target []rune, progress int, failed bool) []styledRune {
	words := findWords(target)
	currentWord := wordForCursor(words, progress)

	out := make([]styledRune, 0, len(target))
	for i, r := range target {
		displayed := r
		var style lipgloss.Style
		switch {
		case i < progress:
			style = correctStyle
		case i == progress && failed:
			style = incorrectStyle
			if r == ' ' {
				displayed = '•'
			}
		case i == progress:
			style = cursorStyle
		case r != ' ' && currentWord != nil && i >= currentWord.start && i < currentWord.end:
			style = currentWordStyle
		default:
			style = pendingStyle
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: r == ' ',
		})
	}
	return out
}

// plainStyledRunes renders text in a single style for wrapping.
func plainStyledRunes(text string, style lipgloss.Style) []styledRune {
	out := make([]styledRune, 0, len(text))
	for _, r := range text {
		out = append(out, styledRune{
			s:       style.Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func findWords(target []rune) []wordRange {
	words := []wordRange{}
	start := -1
	for i, r := range target {
		if r == ' ' {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(target)})
	}
	return words
}

func wordForCursor(words []wordRange, cursor int) *wordRange {
	for i, w := range words {
		if cursor < w.end {
			return &words[i]
		}
	}
	return nil
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks lines at the last space that fits width, or hard
// breaks a run with no space.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
			} else {
				out.WriteString(renderStyledRunes(line))
				line = line[:0]
			}
			out.WriteRune('\n')
			lineWidth = lineWidthOf(line)
			lastSpaceIdx = lastSpaceIndex(line)
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
