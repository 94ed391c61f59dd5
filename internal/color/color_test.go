package color_test

import (
	"testing"

	"github.com/amonks/rulefind/internal/color"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	for _, name := range []string{"greetings", "farewells", "", "small talk"} {
		c := color.Hash(name)
		assert.Contains(t, color.Accents, c)
		assert.Equal(t, c, color.Hash(name), name)
	}
	assert.Contains(t, color.RenderHash("greetings"), "greetings")
}

func TestRenderWithCorrection(t *testing.T) {
	t.Run("no inner resets", func(t *testing.T) {
		style := lipgloss.NewStyle().Background(color.Blue)
		assert.Equal(t, style.Render("plain"), color.RenderWithCorrection(style, "plain"))
	})

	t.Run("colorless style", func(t *testing.T) {
		style := lipgloss.NewStyle()
		s := "a\033[1mb\033[0mc"
		assert.Equal(t, style.Render(s), color.RenderWithCorrection(style, s))
	})
}
