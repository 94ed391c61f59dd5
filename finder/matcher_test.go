package finder

import (
	"testing"

	"github.com/amonks/rulefind/ruletree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher(t *testing.T) {
	type find struct {
		from       int
		start, end int
		ok         bool
	}
	for _, tc := range []struct {
		name    string
		options Options
		text    string
		finds   []find
	}{
		{
			name:    "literal",
			options: Options{Text: "cat", MatchCase: true},
			text:    "cat Cat cat",
			finds:   []find{{0, 0, 3, true}, {1, 8, 11, true}, {9, 0, 0, false}},
		},
		{
			name:    "folded",
			options: Options{Text: "CAT"},
			text:    "cat Cat cat",
			finds:   []find{{0, 0, 3, true}, {1, 4, 7, true}, {11, 0, 0, false}, {12, 0, 0, false}},
		},
		{
			name:    "regex",
			options: Options{Text: `c.t`, Regex: true, MatchCase: true},
			text:    "cut CAT cot",
			finds:   []find{{0, 0, 3, true}, {1, 8, 11, true}},
		},
		{
			name:    "regex anchors apply to the rest of the text",
			options: Options{Text: `^cat`, Regex: true},
			text:    "cat cat",
			finds:   []find{{0, 0, 3, true}, {4, 4, 7, true}},
		},
		{
			name:    "regex context outside the match",
			options: Options{Text: `\Bcat`, Regex: true},
			text:    "cat bobcat",
			finds:   []find{{0, 7, 10, true}},
		},
		{
			name:    "folding across characters that change length",
			options: Options{Text: "cat"},
			text:    "ẞcatȺ",
			finds:   []find{{0, 3, 6, true}, {6, 0, 0, false}},
		},
		{
			name:    "metacharacters are literal",
			options: Options{Text: "a.b"},
			text:    "axb a.b",
			finds:   []find{{0, 4, 7, true}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m, err := compile(tc.options)
			require.NoError(t, err)
			for _, f := range tc.finds {
				h, ok := m.find(tc.text, f.from)
				assert.Equal(t, f.ok, ok, "from %d", f.from)
				if f.ok {
					assert.Equal(t, f.start, h.start(), "from %d", f.from)
					assert.Equal(t, f.end, h.end(), "from %d", f.from)
				}
			}
		})
	}
}

func TestMatcherMatchAt(t *testing.T) {
	sel := func(start, length int) ruletree.Selection {
		return ruletree.Selection{Start: start, Length: length}
	}

	m, _ := compile(Options{Text: "Cat"})
	_, ok := m.matchAt("a cAT", 0, sel(2, 3))
	assert.True(t, ok)
	_, ok = m.matchAt("a cats", 0, sel(2, 4))
	assert.False(t, ok)

	m, _ = compile(Options{Text: "Cat", MatchCase: true})
	_, ok = m.matchAt("Cat cat", 0, sel(0, 3))
	assert.True(t, ok)
	_, ok = m.matchAt("Cat cat", 0, sel(4, 3))
	assert.False(t, ok)

	t.Run("context around the selection", func(t *testing.T) {
		m, _ := compile(Options{Text: `\Bcat`, Regex: true})
		h, ok := m.matchAt("bobcat", 0, sel(3, 3))
		assert.True(t, ok)
		assert.Equal(t, sel(3, 3), h.selection())

		_, ok = m.matchAt("cat", 0, sel(0, 3))
		assert.False(t, ok)
	})

	t.Run("walks past earlier matches", func(t *testing.T) {
		m, _ := compile(Options{Text: `a*`, Regex: true})
		_, ok := m.matchAt("baab", 0, sel(1, 2))
		assert.True(t, ok)
		_, ok = m.matchAt("baab", 0, sel(2, 1))
		assert.False(t, ok)
	})
}

func TestMatcherExpand(t *testing.T) {
	m, _ := compile(Options{Text: `(\w+)@(\w+)`, Regex: true})
	h, ok := m.find("mail a@b now", 0)
	require.True(t, ok)
	assert.Equal(t, "b at a", m.expand(h, "$2 at $1"))

	m, _ = compile(Options{Text: `\Bcat`, Regex: true})
	h, ok = m.find("bobcat", 0)
	require.True(t, ok)
	assert.Equal(t, "dog", m.expand(h, "dog"))

	m, _ = compile(Options{Text: `a@b`})
	h, ok = m.find("a@b", 0)
	require.True(t, ok)
	assert.Equal(t, "$2", m.expand(h, "$2"))
}

func TestCompileError(t *testing.T) {
	_, err := compile(Options{Text: "(", Regex: true})
	var perr *PatternError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "invalid pattern '('")

	_, err = compile(Options{Text: "("})
	assert.NoError(t, err)
}
