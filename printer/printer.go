// Package printer presents searches as lines of text, for use outside the
// interactive UI.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/amonks/rulefind/cursor"
	"github.com/amonks/rulefind/finder"
	"github.com/amonks/rulefind/internal/mutex"
	"github.com/amonks/rulefind/internal/styles"
	"github.com/amonks/rulefind/ruletree"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/muesli/termenv"
)

// A Printer writes one line per match or replacement. The editor name is
// printed in a gutter on the first line of each editor's run of lines.
type Printer struct {
	mu          *mutex.Mutex
	out         io.Writer
	r           *lipgloss.Renderer
	gutterWidth int
	lastEditor  string

	// Width wraps long lines when it's positive.
	Width int
}

var _ finder.Presenter = &Printer{}

// New creates a Printer. Colors are used only if out is a terminal that
// supports them.
func New(gutterWidth int, out io.Writer) *Printer {
	return &Printer{
		mu:          mutex.New("printer"),
		out:         out,
		r:           lipgloss.NewRenderer(out),
		gutterWidth: gutterWidth,
	}
}

// SetColorProfile overrides the detected color profile.
func (p *Printer) SetColorProfile(profile termenv.Profile) {
	defer p.mu.Lock("SetColorProfile").Unlock()
	p.r.SetColorProfile(profile)
}

func (p *Printer) plain() bool { return p.r.ColorProfile() == termenv.Ascii }

func (p *Printer) style(s lipgloss.Style) lipgloss.Style {
	return p.r.NewStyle().Inherit(s)
}

func (p *Printer) Present(m finder.Match) {
	defer p.mu.Lock("Present").Unlock()
	p.writeMatch(m)
}

func (p *Printer) writeMatch(m finder.Match) {
	body := p.highlight(m.Leaf.Expression, m.Selection)
	p.write(m.Editor.Name, m.State.Level, Label(m.State), body)
}

func (p *Printer) Replaced(r finder.Replacement) {
	defer p.mu.Lock("Replaced").Unlock()
	p.write(r.Editor.Name, r.State.Level, Label(r.State), p.diff(r.Before, r.After))
}

// Progress is ignored: lines are printed as they're found.
func (p *Printer) Progress(pos, total int) {}

func (p *Printer) Finished(sum finder.Summary) {
	defer p.mu.Lock("Finished").Unlock()

	if sum.Mode == finder.ModeFindAll {
		for _, g := range sum.Results.Groups() {
			for _, m := range g.Matches {
				p.writeMatch(m)
			}
		}
	}
	p.lastEditor = ""
	fmt.Fprintln(p.out, p.style(styles.Log).Render(Describe(sum)))
}

func (p *Printer) Report(err error) {
	defer p.mu.Lock("Report").Unlock()
	fmt.Fprintln(p.out, p.style(styles.Error).Render("error: "+err.Error()))
}

// Write prints a styled status line outside of any editor's run.
func (p *Printer) Write(message string) {
	defer p.mu.Lock("Write").Unlock()
	p.lastEditor = ""
	fmt.Fprintln(p.out, p.style(styles.Log).Render(message))
}

func (p *Printer) write(editor string, level cursor.Level, label, body string) {
	gutter, space := "", ""
	if editor != p.lastEditor {
		if p.lastEditor != "" {
			space = "\n"
		}
		gutter, p.lastEditor = editor, editor
	}

	gutterStyle := p.style(styles.Editor(editor)).
		Width(p.gutterWidth).
		Align(lipgloss.Right).
		Margin(0, 2, 0, 0)
	labelStyle := p.style(styles.Level(level)).Width(labelWidth).MarginRight(1)

	if p.Width > 0 {
		bodyWidth := p.Width - p.gutterWidth - 2 - labelWidth - 1
		if bodyWidth > 8 {
			body = wrap.String(body, bodyWidth)
		}
	}

	fmt.Fprintln(p.out, space+lipgloss.JoinHorizontal(
		lipgloss.Top,
		gutterStyle.Render(gutter),
		labelStyle.Render(label),
		body,
	))
}

func (p *Printer) highlight(expr string, sel ruletree.Selection) string {
	start, end := clamp(expr, sel.Start, sel.Start+sel.Length)
	if p.plain() {
		return expr
	}
	return expr[:start] + p.style(styles.Match).Render(expr[start:end]) + expr[end:]
}

func clamp(s string, start, end int) (int, int) {
	start = max(0, min(start, len(s)))
	end = max(start, min(end, len(s)))
	return start, end
}

// Describe says how a session ended, in one line.
func Describe(sum finder.Summary) string {
	var b strings.Builder
	switch {
	case sum.Err != nil:
		b.WriteString("failed: ")
	case sum.Canceled:
		b.WriteString("canceled: ")
	}

	switch sum.Mode {
	case finder.ModeReplaceAll:
		fmt.Fprintf(&b, "replaced %s", plural(sum.Replaced, "match", "matches"))
	case finder.ModeFind:
		ended := sum.Err == nil && !sum.Canceled
		switch {
		case ended && sum.Matches == 0:
			b.WriteString("no matches")
		case ended:
			b.WriteString("no more matches: " + plural(sum.Matches, "match", "matches"))
		default:
			b.WriteString(plural(sum.Matches, "match", "matches"))
		}
		if sum.Replaced > 0 {
			fmt.Fprintf(&b, ", %d replaced", sum.Replaced)
		}
	default:
		b.WriteString(plural(sum.Matches, "match", "matches"))
	}

	if groups := len(sum.Results.Groups()); groups > 0 {
		fmt.Fprintf(&b, " in %s", plural(groups, "editor", "editors"))
	}
	fmt.Fprintf(&b, " (%s searched)", plural(sum.Editors, "editor", "editors"))

	if sum.Err != nil {
		fmt.Fprintf(&b, ": %s", sum.Err)
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
