// Package cursor walks every searchable leaf of a [ruletree.Editor] in a
// fixed order, one leaf per step, and can stop and resume anywhere.
//
// The walk itself is the pure transition function [Next]. A [Cursor] wraps it
// with the bookkeeping a search needs: the offset inside the current leaf for
// multiple matches per string, the last selection, and the lazy-load
// reservation on the rule being walked.
package cursor

import (
	"fmt"

	"github.com/amonks/rulefind/ruletree"
)

// A Cursor is a position inside one editor. It's owned by a single search
// session and is not safe for concurrent use.
type Cursor struct {
	editor *ruletree.Editor
	state  State

	// TextPos is the offset into the current leaf's expression where the
	// next search of that leaf begins. It's reset to 0 on every move.
	TextPos int

	// Selection is the last match found in the current leaf, relative to
	// the full expression.
	Selection ruletree.Selection

	reserved reservation
}

// New creates a cursor for the given editor. Call GotoFirst before using it.
func New(e *ruletree.Editor) *Cursor {
	return &Cursor{editor: e}
}

// Editor returns the editor the cursor walks.
func (c *Cursor) Editor() *ruletree.Editor { return c.editor }

// SetEditor resets the cursor and points it at another editor.
func (c *Cursor) SetEditor(e *ruletree.Editor) {
	c.Reset()
	c.editor = e
}

// GotoFirst positions the cursor at the editor's first leaf. It returns false
// if the editor has no leaves.
func (c *Cursor) GotoFirst() bool {
	c.Reset()
	c.moveTo(First(c.editor))
	return !c.state.Done()
}

// Advance moves the cursor to the next leaf. Once the last leaf is passed,
// the cursor is Done and Advance does nothing.
//
// Advance panics if called before GotoFirst or Resume.
func (c *Cursor) Advance() {
	if c.state.Level == levelUnset {
		panic(fmt.Errorf("cursor: advance before GotoFirst"))
	}
	if c.state.Done() {
		return
	}
	c.moveTo(Next(c.editor, c.state))
}

// Finish moves the cursor past the last leaf.
func (c *Cursor) Finish() {
	c.moveTo(State{Level: LevelDone})
}

// Resume positions the cursor at a state previously returned by State.
func (c *Cursor) Resume(s State) {
	c.Reset()
	c.moveTo(settle(c.editor, s))
}

// Reset releases the rule reservation, restoring the rule's original load
// state, and zeroes the position. Call it when a walk over the editor ends,
// whether it finished or not.
func (c *Cursor) Reset() {
	c.reserved.release()
	c.state = State{}
	c.TextPos = 0
	c.Selection = ruletree.Selection{}
}

// Done reports whether the cursor has no current leaf.
func (c *Cursor) Done() bool {
	return c.state.Done() || c.state.Level == levelUnset
}

// State returns the cursor's position.
func (c *Cursor) State() State { return c.state }

// Level returns the structural role of the current leaf.
func (c *Cursor) Level() Level { return c.state.Level }

// Leaf returns the current leaf, or nil if the cursor is Done.
func (c *Cursor) Leaf() *ruletree.Pattern {
	if c.Done() {
		return nil
	}
	return LeafAt(c.editor, c.state)
}

// Owner returns the structural parent of the current leaf, or nil if the
// cursor is Done.
func (c *Cursor) Owner() any {
	if leaf := c.Leaf(); leaf != nil {
		return leaf.Owner
	}
	return nil
}

// Rule returns the rule the cursor is in, or nil outside of the rules.
func (c *Cursor) Rule() *ruletree.Rule {
	if !c.state.InRules() {
		return nil
	}
	return c.editor.Rules[c.state.Rule]
}

func (c *Cursor) moveTo(s State) {
	c.TextPos = 0
	c.Selection = ruletree.Selection{}
	if s.InRules() {
		c.reserved.hold(c.editor.Rules[s.Rule])
	} else {
		c.reserved.release()
	}
	c.state = s
}

// A reservation force-loads at most one rule at a time and remembers how to
// put it back.
type reservation struct {
	rule      *ruletree.Rule
	wasLoaded bool
}

func (r *reservation) hold(rule *ruletree.Rule) {
	if r.rule == rule {
		return
	}
	r.release()
	r.rule, r.wasLoaded = rule, rule.IsLoaded()
	rule.SetLoaded(true)
}

func (r *reservation) release() {
	if r.rule == nil {
		return
	}
	r.rule.SetLoaded(r.wasLoaded)
	r.rule, r.wasLoaded = nil, false
}
