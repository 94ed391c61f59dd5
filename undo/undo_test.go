package undo_test

import (
	"testing"

	"github.com/amonks/rulefind/ruletree"
	"github.com/amonks/rulefind/undo"
	"github.com/stretchr/testify/assert"
)

func replace(j *undo.Journal, leaf *ruletree.Pattern, expr string) {
	before := leaf.Expression
	leaf.SetExpression(expr)
	j.Record(leaf, before)
}

func TestJournal(t *testing.T) {
	t.Run("group reverts together", func(t *testing.T) {
		j := undo.NewJournal()
		a, b := ruletree.NewPattern("cat"), ruletree.NewPattern("cat cat")

		j.BeginGroup()
		replace(j, a, "dog")
		replace(j, b, "dog cat")
		replace(j, b, "dog dog")
		assert.True(t, j.Open())
		assert.Equal(t, 0, j.Groups())
		j.EndGroup()

		assert.False(t, j.Open())
		assert.Equal(t, 1, j.Groups())
		assert.Len(t, j.Last(), 3)

		reverted := j.Undo()
		assert.Len(t, reverted, 3)
		assert.Equal(t, "cat", a.Expression)
		assert.Equal(t, "cat cat", b.Expression)
		assert.Equal(t, 0, j.Groups())
		assert.Nil(t, j.Undo())
	})

	t.Run("nesting", func(t *testing.T) {
		j := undo.NewJournal()
		leaf := ruletree.NewPattern("a")

		j.BeginGroup()
		j.BeginGroup()
		replace(j, leaf, "b")
		j.EndGroup()
		assert.Equal(t, 0, j.Groups())
		replace(j, leaf, "c")
		j.EndGroup()

		assert.Equal(t, 1, j.Groups())
		j.Undo()
		assert.Equal(t, "a", leaf.Expression)
	})

	t.Run("ungrouped changes stand alone", func(t *testing.T) {
		j := undo.NewJournal()
		leaf := ruletree.NewPattern("a")
		replace(j, leaf, "b")
		replace(j, leaf, "c")
		assert.Equal(t, 2, j.Groups())

		j.Undo()
		assert.Equal(t, "b", leaf.Expression)
	})

	t.Run("empty group is dropped", func(t *testing.T) {
		j := undo.NewJournal()
		j.BeginGroup()
		j.EndGroup()
		assert.Equal(t, 0, j.Groups())
		assert.Nil(t, j.Last())
	})

	t.Run("unbalanced end", func(t *testing.T) {
		assert.Panics(t, func() { undo.NewJournal().EndGroup() })
	})
}
