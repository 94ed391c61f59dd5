package ruletree

import (
	"github.com/google/uuid"
)

// An Editor is one text-pattern document: topic filters, rules, and
// questions.
type Editor struct {
	Name         string
	TopicFilters []*Pattern
	Rules        []*Rule
	Questions    []*Conditional

	open bool
}

// IsOpen reports whether the editor's content is loaded, as it is for an open
// document.
func (e *Editor) IsOpen() bool { return e.open }

// SetOpen loads or unloads the editor's content.
func (e *Editor) SetOpen(open bool) { e.open = open }

// Walk calls fn for every leaf in the editor, in document order, along with
// the leaf's structural parent. Empty leaves are included.
func (e *Editor) Walk(fn func(leaf *Pattern, owner any)) {
	for _, tf := range e.TopicFilters {
		fn(tf, e)
	}
	for _, r := range e.Rules {
		for _, in := range r.TextPatterns {
			fn(in, r)
		}
		if r.ToEval != nil {
			fn(r.ToEval, r)
		}
		if r.ToCal != nil {
			fn(r.ToCal, r)
		}
		for _, g := range r.ResponsesFor {
			for _, c := range g.Conditionals {
				walkConditional(c, fn)
			}
		}
		for _, c := range r.Conditionals {
			walkConditional(c, fn)
		}
		walkOutputs(r.Outputs, r, fn)
		if r.Do != nil {
			fn(r.Do, r)
		}
	}
	for _, q := range e.Questions {
		walkConditional(q, fn)
	}
}

func walkConditional(c *Conditional, fn func(*Pattern, any)) {
	if c.Condition != nil {
		fn(c.Condition, c)
	}
	walkOutputs(c.Outputs, c, fn)
	if c.Do != nil {
		fn(c.Do, c)
	}
}

func walkOutputs(outs []*Output, owner any, fn func(*Pattern, any)) {
	for _, o := range outs {
		fn(o.Leaf(), owner)
		for _, inv := range o.InvalidResponses {
			fn(inv, o)
		}
	}
}

// Leaves returns every leaf in the editor, in document order.
func (e *Editor) Leaves() []*Pattern {
	var leaves []*Pattern
	e.Walk(func(leaf *Pattern, _ any) { leaves = append(leaves, leaf) })
	return leaves
}

// Link assigns IDs to leaves that don't have one and points every leaf at its
// structural parent. Call it after building or decoding an editor.
func (e *Editor) Link() {
	e.Walk(func(leaf *Pattern, owner any) {
		if leaf.ID == uuid.Nil {
			leaf.ID = uuid.New()
		}
		leaf.Owner = owner
	})
}
