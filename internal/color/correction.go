package color

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderWithCorrection renders s, which may already contain styled spans,
// inside style. Every reset inside s is followed by style's own colors
// again, so the outer background survives an inner highlight.
func RenderWithCorrection(style lipgloss.Style, s string) string {
	const ansiReset = "\033[0m"
	if !strings.Contains(s, ansiReset) {
		return style.Render(s)
	}
	var restore string
	if bg, ok := style.GetBackground().(lipgloss.Color); ok && bg != "" {
		r, g, b := extract(bg)
		restore += fmt.Sprintf("\033[48;2;%d;%d;%dm", r, g, b)
	}
	if fg, ok := style.GetForeground().(lipgloss.Color); ok && fg != "" {
		r, g, b := extract(fg)
		restore += fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
	}
	if restore == "" {
		return style.Render(s)
	}
	return style.Render(strings.ReplaceAll(s, ansiReset, ansiReset+restore))
}

func extract(c lipgloss.TerminalColor) (int, int, int) {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return 0, 0, 0
	}
	rf, gf, bf, af := float64(r), float64(g), float64(b), float64(a)
	return int(rf / af * 255), int(gf / af * 255), int(bf / af * 255)
}
