package finder

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/amonks/rulefind/ruletree"
)

// matcher holds the search text compiled once per session.
type matcher struct {
	isRegex   bool
	matchCase bool

	// text is the literal search text, lowered unless matchCase.
	text string

	// ascii is set when the search text is ASCII, so an ASCII comparand
	// can be lowered and searched with plain byte offsets.
	ascii bool

	re *regexp.Regexp
}

// A hit is one match of a search in the text after from. loc holds the
// submatch indices, relative to hay.
type hit struct {
	hay  string
	from int
	loc  []int
}

func (h hit) start() int { return h.from + h.loc[0] }
func (h hit) end() int   { return h.from + h.loc[1] }

func (h hit) selection() ruletree.Selection {
	return ruletree.Selection{Start: h.start(), Length: h.loc[1] - h.loc[0]}
}

func compile(o Options) (*matcher, error) {
	m := &matcher{isRegex: o.Regex, matchCase: o.MatchCase, text: o.Text}
	pattern := o.Text
	if !o.Regex {
		pattern = regexp.QuoteMeta(o.Text)
	}
	if !o.MatchCase {
		m.text = strings.ToLower(o.Text)
		m.ascii = isASCII(o.Text)
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: o.Text, Err: err}
	}
	m.re = re
	return m, nil
}

// find looks for the first match in s at or after byte offset from.
func (m *matcher) find(s string, from int) (hit, bool) {
	if from > len(s) {
		return hit{}, false
	}
	hay := s[from:]

	switch {
	case m.isRegex:
	case m.matchCase:
		return index(hay, hay, m.text, from)
	case m.ascii && isASCII(hay):
		return index(hay, strings.ToLower(hay), m.text, from)
	}

	loc := m.re.FindStringSubmatchIndex(hay)
	if loc == nil {
		return hit{}, false
	}
	return hit{hay: hay, from: from, loc: loc}, true
}

func index(hay, comparand, text string, from int) (hit, bool) {
	i := strings.Index(comparand, text)
	if i < 0 {
		return hit{}, false
	}
	return hit{hay: hay, from: from, loc: []int{i, i + len(text)}}, true
}

// matchAt searches s from byte offset from the way a session walks a leaf,
// match after match, and returns the match covering exactly sel, if the
// walk finds one.
func (m *matcher) matchAt(s string, from int, sel ruletree.Selection) (hit, bool) {
	from = min(from, sel.Start)
	for from <= len(s) {
		h, ok := m.find(s, from)
		if !ok || h.start() > sel.Start {
			return hit{}, false
		}
		if h.start() == sel.Start && h.end() == sel.End() {
			return h, true
		}
		from = h.end()
		if h.end() == h.start() {
			from++
		}
	}
	return hit{}, false
}

// expand returns the text that replaces h. Regex replacements may refer to
// submatches.
func (m *matcher) expand(h hit, replacement string) string {
	if !m.isRegex {
		return replacement
	}
	return string(m.re.ExpandString(nil, replacement, h.hay, h.loc))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
