// Package color holds the palette shared by the printer and the terminal UI.
package color

import "github.com/charmbracelet/lipgloss"

// https://ethanschoonover.com/solarized/#the-values
var (
	Yellow  = lipgloss.Color("#B58900")
	Orange  = lipgloss.Color("#CB4B16")
	Red     = lipgloss.Color("#DC322F")
	Magenta = lipgloss.Color("#D33682")
	Violet  = lipgloss.Color("#6C71C4")
	Blue    = lipgloss.Color("#268BD2")
	Cyan    = lipgloss.Color("#2AA198")
	Green   = lipgloss.Color("#859900")

	XXXLight = lipgloss.AdaptiveColor{Dark: "#FDF6E3", Light: "#002B36"} // base3
	XLight   = lipgloss.AdaptiveColor{Dark: "#93A1A1", Light: "#586E75"} // base1
	Light    = lipgloss.AdaptiveColor{Dark: "#839496", Light: "#657B83"} // base0
	XDark    = lipgloss.AdaptiveColor{Dark: "#586E75", Light: "#93A1A1"} // base01
	XXDark   = lipgloss.AdaptiveColor{Dark: "#073642", Light: "#EEE8D5"} // base02
)

// Accents are the colors Hash picks from.
var Accents = []lipgloss.Color{Yellow, Orange, Red, Magenta, Violet, Blue, Cyan, Green}

// Highlight is the background of a matched span. It's a complete color so
// that the span stays visible on terminals without true color support.
var Highlight = lipgloss.CompleteAdaptiveColor{
	Dark:  lipgloss.CompleteColor{TrueColor: "#B58900", ANSI256: "136", ANSI: "3"},
	Light: lipgloss.CompleteColor{TrueColor: "#EEE8D5", ANSI256: "254", ANSI: "7"},
}
