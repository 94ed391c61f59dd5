package color

import (
	"hash/fnv"

	"github.com/amonks/rulefind/internal/mutex"
	"github.com/charmbracelet/lipgloss"
)

// Hash picks a stable accent color for a name, so that an editor is drawn
// in the same color everywhere.
func Hash(name string) lipgloss.Color {
	return globalColorer.hash(name)
}

// RenderHash renders name in its own color.
func RenderHash(name string) string {
	return globalColorer.render(name)
}

var globalColorer = &colorer{
	mu:          mutex.New("color"),
	renderCache: map[string]string{},
}

type colorer struct {
	mu          *mutex.Mutex
	renderCache map[string]string
}

func (c *colorer) hash(name string) lipgloss.Color {
	h := fnv.New32a()
	h.Write([]byte(name))
	return Accents[h.Sum32()%uint32(len(Accents))]
}

func (c *colorer) render(name string) string {
	defer c.mu.Lock("render").Unlock()

	if out, ok := c.renderCache[name]; ok {
		return out
	}
	out := lipgloss.NewStyle().Foreground(c.hash(name)).Render(name)
	c.renderCache[name] = out
	return out
}
