// Package ruletree holds the pattern-rule structure that a search walks: an
// editor's topic filters, its rules (inputs, ToEval/ToCal leaves, responses-for
// groups, conditionals, outputs, and do patterns), and its questions.
//
// Every searchable piece of text is a [Pattern] leaf. Leaves are identified by
// a [uuid.UUID] so that a search can hand around opaque identifiers and
// resolve them back to text through a [Project].
package ruletree

import (
	"github.com/google/uuid"
)

// Selection is a byte range inside a leaf's expression.
type Selection struct {
	Start  int
	Length int
}

// End returns the offset just past the selection.
func (s Selection) End() int { return s.Start + s.Length }

// A Pattern is a leaf: a node exposing a directly searchable text expression.
type Pattern struct {
	ID         uuid.UUID
	Expression string

	// Selection is the range highlighted by the UI, typically the last
	// match found in this leaf.
	Selection Selection

	// Owner is the structural parent of the leaf: an *Editor for topic
	// filters, a *Rule, a *Conditional, or an *Output for invalid
	// responses.
	Owner any
}

// NewPattern creates a leaf with a fresh ID.
func NewPattern(expr string) *Pattern {
	return &Pattern{ID: uuid.New(), Expression: expr}
}

// IsEmpty reports whether the leaf has no expression text.
func (p *Pattern) IsEmpty() bool { return p == nil || p.Expression == "" }

// SetExpression replaces the leaf's text and clears its selection.
func (p *Pattern) SetExpression(expr string) {
	p.Expression = expr
	p.Selection = Selection{}
}

// Select sets the highlighted range.
func (p *Pattern) Select(sel Selection) { p.Selection = sel }

// Selected returns the text covered by the current selection, clamped to the
// expression.
func (p *Pattern) Selected() string {
	start, end := p.clamp(p.Selection)
	return p.Expression[start:end]
}

// Splice replaces the text covered by sel with the given string, leaving
// everything outside of sel untouched, and selects the inserted text. It
// returns the expression as it was before the splice.
func (p *Pattern) Splice(sel Selection, with string) string {
	old := p.Expression
	start, end := p.clamp(sel)
	p.Expression = old[:start] + with + old[end:]
	p.Selection = Selection{Start: start, Length: len(with)}
	return old
}

func (p *Pattern) clamp(sel Selection) (int, int) {
	start := max(0, min(sel.Start, len(p.Expression)))
	end := max(start, min(sel.End(), len(p.Expression)))
	return start, end
}

// An Output is an output pattern. It is a leaf itself, and it owns the
// invalid responses used when no valid reply was given.
type Output struct {
	Pattern
	InvalidResponses []*Pattern
}

// NewOutput creates an output leaf with the given invalid responses.
func NewOutput(expr string, invalids ...string) *Output {
	o := &Output{Pattern: *NewPattern(expr)}
	for _, inv := range invalids {
		o.InvalidResponses = append(o.InvalidResponses, NewPattern(inv))
	}
	return o
}

// Leaf returns the output's own leaf.
func (o *Output) Leaf() *Pattern { return &o.Pattern }
