// Package help renders key bindings, either as a full-screen menu or as a
// compact block under the main view.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Menu []Section

type Section struct {
	Title string
	Keys  []Key
}

type Key struct {
	Keys string
	Desc string
}

var (
	Monochrome = &Styles{
		Container: lipgloss.NewStyle(),
		Header:    lipgloss.NewStyle().Transform(strings.ToUpper),
		Keys:      lipgloss.NewStyle(),
		Desc:      lipgloss.NewStyle(),
	}
	Colored = &Styles{
		Container: lipgloss.NewStyle().
			Padding(2, 4),
		Header: lipgloss.NewStyle().
			Underline(true).
			Bold(true).
			MarginBottom(1).
			Foreground(lipgloss.Color("#B58900")),
		Keys: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Dark: "#93A1A1", Light: "#586E75"}),
		Desc: lipgloss.NewStyle().Italic(true),
	}
)

type Styles struct {
	Container lipgloss.Style
	Header    lipgloss.Style
	Keys      lipgloss.Style
	Desc      lipgloss.Style
}

// Section returns the section with the given title, or an empty one.
func (m Menu) Section(title string) Section {
	for _, s := range m {
		if s.Title == title {
			return s
		}
	}
	return Section{Title: title}
}

// Render lays out every section as a column of aligned keys.
func (m Menu) Render(styles *Styles) string {
	var out strings.Builder
	var longest int
	for _, section := range m {
		for _, k := range section.Keys {
			if l := lipgloss.Width(k.Keys); l > longest {
				longest = l
			}
		}
	}
	for _, section := range m {
		out.WriteString(styles.Header.Render(section.Title) + "\n")
		for _, k := range section.Keys {
			pad := strings.Repeat(" ", longest-lipgloss.Width(k.Keys))
			out.WriteString(fmt.Sprintf("  %s%s %s\n", styles.Keys.Render(k.Keys), pad, styles.Desc.Render(k.Desc)))
		}
		out.WriteString("\n")
	}
	return styles.Container.Render(strings.TrimSuffix(out.String(), "\n"))
}

// RenderInline packs the section's keys into at most height lines of at
// most width cells. Keys that don't fit are left out.
func (s Section) RenderInline(styles *Styles, width, height int) string {
	const gap = "    "
	var lines []string
	i := 0
	for range height {
		var line strings.Builder
		for ; i < len(s.Keys); i++ {
			k := s.Keys[i]
			rendered := fmt.Sprintf("%s: %s", styles.Keys.Render(k.Keys), styles.Desc.Render(k.Desc))
			w := lipgloss.Width(rendered)
			if line.Len() > 0 {
				w += len(gap)
			}
			if lipgloss.Width(line.String())+w > width {
				break
			}
			if line.Len() > 0 {
				line.WriteString(gap)
			}
			line.WriteString(rendered)
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
