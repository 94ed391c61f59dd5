// Package styles defines how matches, replacements, and status lines look.
package styles

import (
	"github.com/amonks/rulefind/cursor"
	"github.com/amonks/rulefind/internal/color"
	"github.com/charmbracelet/lipgloss"
)

var (
	Log = lipgloss.NewStyle().
		Foreground(color.XXXLight).
		Italic(true)

	Error = lipgloss.NewStyle().
		Foreground(color.Red).
		Bold(true)

	Match = lipgloss.NewStyle().
		Background(color.Highlight).
		Bold(true)

	Removed = lipgloss.NewStyle().
		Foreground(color.Red).
		Strikethrough(true)

	Inserted = lipgloss.NewStyle().
			Foreground(color.Green).
			Underline(true)

	Muted = lipgloss.NewStyle().
		Foreground(color.XDark)
)

// Level returns the style for a leaf's role label.
func Level(l cursor.Level) lipgloss.Style {
	s := lipgloss.NewStyle().Faint(true)
	switch l {
	case cursor.LevelTopicFilter:
		return s.Foreground(color.Violet)
	case cursor.LevelInput:
		return s.Foreground(color.Blue)
	case cursor.LevelOutput:
		return s.Foreground(color.Green)
	case cursor.LevelInvalid:
		return s.Foreground(color.Orange)
	case cursor.LevelCondition:
		return s.Foreground(color.Cyan)
	case cursor.LevelToEval, cursor.LevelToCal, cursor.LevelDoPattern:
		return s.Foreground(color.Magenta)
	}
	return s
}

// Editor returns the style for an editor's name.
func Editor(name string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color.Hash(name)).Bold(true)
}
