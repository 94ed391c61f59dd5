package tui

import (
	"strings"

	"github.com/amonks/rulefind/internal/color"
	"github.com/amonks/rulefind/internal/help"
	"github.com/amonks/rulefind/internal/styles"
	"github.com/charmbracelet/lipgloss"
)

type layout struct {
	width         int
	resultsHeight int
	inlineHelp    bool
}

// The screen is, from the top: a header, the two inputs, a rule, the
// current match, a rule, the results, a rule, and the footer, with two
// lines of key help under it when there's room.
func (m *Model) layout() layout {
	l := layout{width: m.width}
	fixed := 8
	if m.height >= 20 {
		l.inlineHelp = true
		fixed += 2
	}
	l.resultsHeight = max(0, m.height-fixed)
	return l
}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(color.Yellow).
			Bold(true)
	toggleOn = lipgloss.NewStyle().
			Foreground(color.XXXLight).
			Bold(true)
	toggleOff = lipgloss.NewStyle().
			Foreground(color.XDark)
	footerStyle = lipgloss.NewStyle().
			Foreground(color.XLight)
	emptyStyle = styles.Muted.Copy().
			Italic(true)

	inlineHelp = &help.Styles{
		Keys: lipgloss.NewStyle().
			Italic(true).
			Foreground(color.Light),
		Desc: lipgloss.NewStyle().
			Foreground(color.XLight),
	}
)

func hr(width int, emphasize bool) string {
	if emphasize {
		return lipgloss.NewStyle().Foreground(color.Yellow).Render(strings.Repeat("─", width))
	}
	return lipgloss.NewStyle().Foreground(color.XDark).Render(strings.Repeat("─", width))
}
