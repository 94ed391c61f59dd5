// Package undo records replacements in groups so that a whole bulk replace
// can be reverted in one step.
//
// A group is everything recorded between a BeginGroup and its matching
// EndGroup. Groups nest: only the outermost pair closes a group. A change
// recorded outside of any group is a group of its own.
package undo

import (
	"fmt"

	"github.com/amonks/rulefind/internal/mutex"
	"github.com/amonks/rulefind/ruletree"
)

// A Transaction is the sink a replace writes to.
type Transaction interface {
	BeginGroup()
	EndGroup()
	Record(leaf *ruletree.Pattern, before string)
}

// A Change is one replacement: the leaf and its expression before and after.
type Change struct {
	Leaf   *ruletree.Pattern
	Before string
	After  string
}

type group struct {
	changes []Change
}

// A Journal is a stack of change groups. It's safe for concurrent use.
type Journal struct {
	mu      *mutex.Mutex
	groups  []*group
	current *group
	depth   int
}

var _ Transaction = &Journal{}

func NewJournal() *Journal {
	return &Journal{mu: mutex.New("undo")}
}

// BeginGroup opens a group, or nests inside the one that's open.
func (j *Journal) BeginGroup() {
	defer j.mu.Lock("BeginGroup").Unlock()

	j.depth++
	if j.depth == 1 {
		j.current = &group{}
	}
}

// EndGroup closes the innermost group. Closing the outermost group commits
// it, unless nothing was recorded. EndGroup panics if no group is open.
func (j *Journal) EndGroup() {
	defer j.mu.Lock("EndGroup").Unlock()

	if j.depth == 0 {
		panic(fmt.Errorf("undo: EndGroup without BeginGroup"))
	}
	j.depth--
	if j.depth > 0 {
		return
	}
	if len(j.current.changes) > 0 {
		j.groups = append(j.groups, j.current)
	}
	j.current = nil
}

// Record notes that leaf's expression was before, and is now whatever the
// leaf holds.
func (j *Journal) Record(leaf *ruletree.Pattern, before string) {
	defer j.mu.Lock("Record").Unlock()

	c := Change{Leaf: leaf, Before: before, After: leaf.Expression}
	if j.current == nil {
		j.groups = append(j.groups, &group{changes: []Change{c}})
		return
	}
	j.current.changes = append(j.current.changes, c)
}

// Groups returns the number of committed groups.
func (j *Journal) Groups() int {
	defer j.mu.Lock("Groups").Unlock()

	return len(j.groups)
}

// Open reports whether a group is being recorded.
func (j *Journal) Open() bool {
	defer j.mu.Lock("Open").Unlock()

	return j.depth > 0
}

// Last returns the changes of the most recent committed group, oldest first.
func (j *Journal) Last() []Change {
	defer j.mu.Lock("Last").Unlock()

	if len(j.groups) == 0 {
		return nil
	}
	return append([]Change{}, j.groups[len(j.groups)-1].changes...)
}

// Undo reverts the most recent committed group, newest change first, and
// returns the changes it reverted. It returns nil if there's nothing to undo.
func (j *Journal) Undo() []Change {
	defer j.mu.Lock("Undo").Unlock()

	if len(j.groups) == 0 {
		return nil
	}
	g := j.groups[len(j.groups)-1]
	j.groups = j.groups[:len(j.groups)-1]
	for i := len(g.changes) - 1; i >= 0; i-- {
		c := g.changes[i]
		c.Leaf.SetExpression(c.Before)
	}
	return g.changes
}
