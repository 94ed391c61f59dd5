package help_test

import (
	"strings"
	"testing"

	"github.com/amonks/rulefind/internal/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

var sec = help.Section{
	Title: "Search",
	Keys: []help.Key{
		{Keys: "enter", Desc: "find next"},
		{Keys: "ctrl+r", Desc: "replace"},
		{Keys: "ctrl+a", Desc: "replace all"},
		{Keys: "esc", Desc: "cancel"},
	},
}

func TestRenderInline(t *testing.T) {
	t.Run("everything fits", func(t *testing.T) {
		out := sec.RenderInline(help.Monochrome, 200, 1)
		assert.Equal(t, "enter: find next    ctrl+r: replace    ctrl+a: replace all    esc: cancel", out)
	})

	t.Run("wraps onto lines", func(t *testing.T) {
		out := sec.RenderInline(help.Monochrome, 40, 2)
		assert.Equal(t, []string{
			"enter: find next    ctrl+r: replace",
			"ctrl+a: replace all    esc: cancel",
		}, strings.Split(out, "\n"))
	})

	t.Run("never exceeds the box", func(t *testing.T) {
		for w := 0; w < 80; w += 3 {
			for _, line := range strings.Split(sec.RenderInline(help.Monochrome, w, 2), "\n") {
				assert.LessOrEqual(t, lipgloss.Width(line), w)
			}
		}
	})
}

func TestRender(t *testing.T) {
	menu := help.Menu{sec, {Title: "Help", Keys: []help.Key{{Keys: "q", Desc: "exit help"}}}}
	out := menu.Render(help.Monochrome)
	assert.Contains(t, out, "SEARCH")
	assert.Contains(t, out, "  enter  find next")
	assert.Contains(t, out, "  q      exit help")

	assert.Equal(t, "Help", menu.Section("Help").Title)
	assert.Empty(t, menu.Section("nope").Keys)
}
