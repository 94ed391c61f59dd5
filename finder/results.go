package finder

import (
	"github.com/amonks/rulefind/cursor"
	"github.com/amonks/rulefind/ruletree"
	"github.com/google/uuid"
)

// A Match is one occurrence of the search text.
type Match struct {
	Editor *ruletree.Editor
	Leaf   *ruletree.Pattern

	// State is the cursor position of the leaf, which tells its
	// structural role.
	State cursor.State

	// Selection is relative to the leaf's whole expression.
	Selection ruletree.Selection

	// Text is the matched text.
	Text string
}

// A Replacement is a match that was replaced.
type Replacement struct {
	Match

	// With is the text that was inserted.
	With string

	// Before and After are the whole expression before and after the
	// splice.
	Before, After string
}

// Inserted is the selection covering the inserted text.
func (r Replacement) Inserted() ruletree.Selection {
	return ruletree.Selection{Start: r.Selection.Start, Length: len(r.With)}
}

// A Group holds the matches found in one editor.
type Group struct {
	Editor  *ruletree.Editor
	Matches []Match
}

// Results are the matches collected by a bulk search, grouped by editor in
// the order the editors were searched. A group exists only if it has
// matches.
type Results struct {
	groups   []*Group
	byEditor map[*ruletree.Editor]*Group
}

func newResults() *Results {
	return &Results{byEditor: map[*ruletree.Editor]*Group{}}
}

func (r *Results) add(m Match) {
	g, ok := r.byEditor[m.Editor]
	if !ok {
		g = &Group{Editor: m.Editor}
		r.byEditor[m.Editor] = g
		r.groups = append(r.groups, g)
	}
	g.Matches = append(g.Matches, m)
}

// Groups returns the groups in search order.
func (r *Results) Groups() []*Group {
	if r == nil {
		return nil
	}
	return append([]*Group{}, r.groups...)
}

// Len returns the total number of matches.
func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, g := range r.groups {
		n += len(g.Matches)
	}
	return n
}

// Leaves returns the identifiers of the matched leaves, in order, without
// duplicates.
func (r *Results) Leaves() []uuid.UUID {
	if r == nil {
		return nil
	}
	seen := map[uuid.UUID]bool{}
	var ids []uuid.UUID
	for _, g := range r.groups {
		for _, m := range g.Matches {
			if !seen[m.Leaf.ID] {
				seen[m.Leaf.ID] = true
				ids = append(ids, m.Leaf.ID)
			}
		}
	}
	return ids
}

// A Summary describes a finished session.
type Summary struct {
	Session uuid.UUID
	Mode    Mode

	Matches  int
	Replaced int

	// Editors is the number of editors searched.
	Editors int

	// Results are the collected matches of a bulk session; nil for
	// ModeFind.
	Results *Results

	// Canceled is set if the session was canceled before it finished.
	Canceled bool

	// Err is the error that ended the session, if any.
	Err error
}
