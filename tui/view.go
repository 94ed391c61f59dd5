package tui

import (
	"fmt"
	"strings"

	"github.com/amonks/rulefind/internal/styles"
	"github.com/amonks/rulefind/printer"
	"github.com/amonks/rulefind/ruletree"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

func (m *Model) View() string {
	if !m.gotSize {
		return ""
	}
	if m.focus == focusHelp {
		return m.help.View()
	}

	l := m.layout()
	sections := []string{
		m.renderHeader(l),
		m.find.View(),
		m.replace.View(),
		hr(l.width, false),
		m.renderCurrent(l),
		hr(l.width, m.focus == focusResults),
		m.results.View(),
		hr(l.width, false),
		m.renderFooter(l),
	}
	if l.inlineHelp {
		sections = append(sections, helpMenu.Section("Search").RenderInline(inlineHelp, l.width, 2))
	}
	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderHeader(l layout) string {
	toggle := func(name string, on bool) string {
		if on {
			return toggleOn.Render("[x] " + name)
		}
		return toggleOff.Render("[ ] " + name)
	}
	header := strings.Join([]string{
		headerStyle.Render("rulefind · " + m.project.Tree.Name),
		"scope: " + strings.ToLower(m.options.Scope.String()),
		toggle("case", m.options.MatchCase),
		toggle("regex", m.options.Regex),
		"include: " + m.options.Include.String(),
	}, "  ")
	return truncate.StringWithTail(header, uint(l.width), "…")
}

func (m *Model) renderCurrent(l layout) string {
	if m.current == nil {
		return emptyStyle.Render("no match selected")
	}
	c := m.current
	line := fmt.Sprintf("%s  %s  %s",
		styles.Editor(c.Editor.Name).Render(c.Editor.Name),
		styles.Level(c.State.Level).Render(printer.Label(c.State)),
		highlight(c.Leaf.Expression, c.Leaf.Selection, styles.Match))
	return truncate.StringWithTail(line, uint(l.width), "…")
}

func (m *Model) renderFooter(l layout) string {
	var footer strings.Builder
	if m.busy {
		footer.WriteString(m.spinner.View() + " ")
	}
	if m.total > 0 {
		fmt.Fprintf(&footer, "%d/%d  ", m.pos, m.total)
	}
	switch {
	case m.quitKey != "":
		footer.WriteString("press " + m.quitKey + " again to quit")
	case m.statusIsError:
		footer.WriteString(styles.Error.Render(m.status))
	default:
		footer.WriteString(m.status)
	}
	return footerStyle.Render(truncate.StringWithTail(footer.String(), uint(l.width), "…"))
}

// syncResults redraws the results list into its viewport.
func (m *Model) syncResults() {
	if len(m.rows) == 0 {
		m.results.SetContent(emptyStyle.Render("no results"))
		return
	}

	longest := 0
	for _, r := range m.rows {
		longest = max(longest, lipgloss.Width(r.match.Editor.Name))
	}
	gutter := lipgloss.NewStyle().Width(longest).Align(lipgloss.Right)

	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		marker := " "
		if i == m.selected && m.focus == focusResults {
			marker = ">"
		}
		line := fmt.Sprintf("%s %s  %s  %s",
			marker,
			gutter.Inherit(styles.Editor(r.match.Editor.Name)).Render(r.match.Editor.Name),
			styles.Level(r.match.State.Level).Width(18).Render(printer.Label(r.match.State)),
			renderRow(r))
		lines[i] = m.zones.Mark(rowZone(i), truncate.StringWithTail(line, uint(max(0, m.results.Width)), "…"))
	}
	m.results.SetContent(strings.Join(lines, "\n"))
}

func renderRow(r row) string {
	if r.replaced != nil {
		return highlight(r.replaced.After, r.replaced.Inserted(), styles.Inserted)
	}
	return highlight(r.match.Leaf.Expression, r.match.Selection, styles.Match)
}

func rowZone(i int) string { return fmt.Sprintf("row-%d", i) }

func highlight(expr string, sel ruletree.Selection, style lipgloss.Style) string {
	start := max(0, min(sel.Start, len(expr)))
	end := max(start, min(sel.End(), len(expr)))
	return expr[:start] + style.Render(expr[start:end]) + expr[end:]
}
