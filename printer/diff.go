package printer

import (
	"strings"

	"github.com/amonks/rulefind/internal/styles"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// diff renders the change from before to after inline. Without colors,
// removals are marked [-like this-] and insertions {+like this+}.
func (p *Printer) diff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	removed, inserted := p.style(styles.Removed), p.style(styles.Inserted)
	var out strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			out.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			if p.plain() {
				out.WriteString("[-" + d.Text + "-]")
			} else {
				out.WriteString(removed.Render(d.Text))
			}
		case diffmatchpatch.DiffInsert:
			if p.plain() {
				out.WriteString("{+" + d.Text + "+}")
			} else {
				out.WriteString(inserted.Render(d.Text))
			}
		}
	}
	return out.String()
}
