package cursor_test

import (
	"fmt"
	"testing"

	"github.com/amonks/rulefind/cursor"
	"github.com/amonks/rulefind/internal/fixtures"
	"github.com/amonks/rulefind/internal/seq"
	"github.com/amonks/rulefind/ruletree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func p(expr string) *ruletree.Pattern { return ruletree.NewPattern(expr) }

func sampleEditor() *ruletree.Editor {
	e := &ruletree.Editor{
		Name:         "sample",
		TopicFilters: []*ruletree.Pattern{p(""), p("topic")},
		Rules: []*ruletree.Rule{
			{
				TextPatterns: []*ruletree.Pattern{p("in-1"), p("")},
				ToEval:       p("toeval"),
				ResponsesFor: []*ruletree.ResponsesForGroup{
					{Name: "empty"},
					{Name: "g", Conditionals: []*ruletree.Conditional{
						{},
						{
							Condition: p("g-cond"),
							Outputs: []*ruletree.Output{
								ruletree.NewOutput("g-out-1", "g-inv-1a", "g-inv-1b"),
								ruletree.NewOutput("g-out-2"),
							},
						},
					}},
				},
				Conditionals: []*ruletree.Conditional{{Do: p("c-do")}},
				Outputs:      []*ruletree.Output{ruletree.NewOutput("root-out", "root-inv")},
				Do:           p("root-do"),
			},
			{},
			{ToCal: p("tocal")},
		},
		Questions: []*ruletree.Conditional{
			{},
			{
				Condition: p("q-cond"),
				Outputs:   []*ruletree.Output{ruletree.NewOutput("q-out", "q-inv")},
				Do:        p("q-do"),
			},
		},
	}
	e.Link()
	return e
}

type visit struct {
	expr  string
	level cursor.Level
}

func (v visit) String() string { return fmt.Sprintf("%s@%s", v.expr, v.level) }

func walk(c *cursor.Cursor) []visit {
	var visits []visit
	for ok := c.GotoFirst(); ok && !c.Done(); c.Advance() {
		visits = append(visits, visit{c.Leaf().Expression, c.Level()})
	}
	return visits
}

func walkLeaves(c *cursor.Cursor) []*ruletree.Pattern {
	var leaves []*ruletree.Pattern
	for ok := c.GotoFirst(); ok && !c.Done(); c.Advance() {
		leaves = append(leaves, c.Leaf())
	}
	return leaves
}

func TestCursorOrder(t *testing.T) {
	c := cursor.New(sampleEditor())
	assert.Equal(t, []visit{
		{"topic", cursor.LevelTopicFilter},
		{"in-1", cursor.LevelInput},
		{"", cursor.LevelInput},
		{"toeval", cursor.LevelToEval},
		{"g-cond", cursor.LevelCondition},
		{"g-out-1", cursor.LevelOutput},
		{"g-inv-1a", cursor.LevelInvalid},
		{"g-inv-1b", cursor.LevelInvalid},
		{"g-out-2", cursor.LevelOutput},
		{"c-do", cursor.LevelDoPattern},
		{"root-out", cursor.LevelOutput},
		{"root-inv", cursor.LevelInvalid},
		{"root-do", cursor.LevelDoPattern},
		{"tocal", cursor.LevelToCal},
		{"q-cond", cursor.LevelCondition},
		{"q-out", cursor.LevelOutput},
		{"q-inv", cursor.LevelInvalid},
		{"q-do", cursor.LevelDoPattern},
	}, walk(c))
	assert.True(t, c.Done())
	assert.Nil(t, c.Leaf())

	t.Run("advance after the end does nothing", func(t *testing.T) {
		c.Advance()
		assert.True(t, c.Done())
	})
}

func TestCursorEmptyEditors(t *testing.T) {
	for name, e := range map[string]*ruletree.Editor{
		"nothing":           {},
		"empty topics":      {TopicFilters: []*ruletree.Pattern{p(""), p("")}},
		"empty rules":       {Rules: []*ruletree.Rule{{}, {ResponsesFor: []*ruletree.ResponsesForGroup{{}}}}},
		"empty conditional": {Rules: []*ruletree.Rule{{Conditionals: []*ruletree.Conditional{{}}}}},
		"empty questions":   {Questions: []*ruletree.Conditional{{}, {}}},
	} {
		t.Run(name, func(t *testing.T) {
			c := cursor.New(e)
			assert.False(t, c.GotoFirst())
			assert.True(t, c.Done())
		})
	}
}

func TestCursorFirst(t *testing.T) {
	t.Run("topic filter", func(t *testing.T) {
		e := sampleEditor()
		s := cursor.First(e)
		assert.Equal(t, cursor.LevelTopicFilter, s.Level)
		assert.Equal(t, 1, s.TopicFilter)
	})

	t.Run("first rule with content", func(t *testing.T) {
		e := &ruletree.Editor{Rules: []*ruletree.Rule{{}, {}, {Conditionals: []*ruletree.Conditional{{Condition: p("x")}}}}}
		e.Link()
		s := cursor.First(e)
		assert.Equal(t, cursor.LevelCondition, s.Level)
		assert.Equal(t, cursor.BranchConditionals, s.Branch)
		assert.Equal(t, 2, s.Rule)
	})

	t.Run("question", func(t *testing.T) {
		e := &ruletree.Editor{
			Rules:     []*ruletree.Rule{{}},
			Questions: []*ruletree.Conditional{{}, {Outputs: []*ruletree.Output{ruletree.NewOutput("q")}}},
		}
		e.Link()
		s := cursor.First(e)
		assert.Equal(t, cursor.LevelOutput, s.Level)
		assert.Equal(t, cursor.BranchQuestion, s.Branch)
		assert.Equal(t, 1, s.Question)
		assert.True(t, s.InQuestions())
	})
}

func TestCursorCompleteness(t *testing.T) {
	for seed := int64(1); seed <= 300; seed++ {
		e := fixtures.NewTreeBuilder(seed).Editor(fmt.Sprintf("editor-%d", seed))
		c := cursor.New(e)
		expect := fixtures.Searchable(e)
		got := walkLeaves(c)
		if !assert.Equal(t, fixtures.Expressions(expect), fixtures.Expressions(got), "seed %d", seed) {
			return
		}
		for i := range expect {
			if !assert.Same(t, expect[i], got[i], "seed %d leaf %d", seed, i) {
				return
			}
		}
		assert.True(t, c.Done())
	}
}

func TestCursorResume(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		e := fixtures.NewTreeBuilder(seed).Editor("editor")
		full := walkLeaves(cursor.New(e))

		for stop := 0; stop < len(full); stop++ {
			c := cursor.New(e)
			require.True(t, c.GotoFirst())
			for range stop {
				c.Advance()
			}
			saved := c.State()
			c.Reset()

			resumed := cursor.New(e)
			resumed.Resume(saved)
			var rest []*ruletree.Pattern
			for ; !resumed.Done(); resumed.Advance() {
				rest = append(rest, resumed.Leaf())
			}
			if !assert.Equal(t, fixtures.Expressions(full[stop:]), fixtures.Expressions(rest), "seed %d stop %d", seed, stop) {
				return
			}
		}
	}
}

func TestCursorNextIsPure(t *testing.T) {
	e := sampleEditor()
	s := cursor.First(e)
	var states []cursor.State
	for !s.Done() {
		states = append(states, s)
		s = cursor.Next(e, s)
	}
	for i := 0; i+1 < len(states); i++ {
		assert.Equal(t, states[i+1], cursor.Next(e, states[i]))
	}
	assert.Equal(t, cursor.LevelDone, cursor.Next(e, s).Level)
}

func TestCursorEmptySkip(t *testing.T) {
	e := &ruletree.Editor{
		TopicFilters: []*ruletree.Pattern{p(""), p("")},
		Rules: []*ruletree.Rule{{
			TextPatterns: []*ruletree.Pattern{p(""), p(""), p("")},
			ResponsesFor: []*ruletree.ResponsesForGroup{{}, {Conditionals: []*ruletree.Conditional{{}, {}}}},
			Conditionals: []*ruletree.Conditional{{}, {Do: p("do")}},
		}},
	}
	e.Link()

	var levels []cursor.Level
	c := cursor.New(e)
	for ok := c.GotoFirst(); ok && !c.Done(); c.Advance() {
		levels = append(levels, c.Level())
	}
	assert.Equal(t, []cursor.Level{
		cursor.LevelInput,
		cursor.LevelInput,
		cursor.LevelInput,
		cursor.LevelDoPattern,
	}, levels)
}

func TestCursorReservation(t *testing.T) {
	t.Run("one rule at a time, restored afterward", func(t *testing.T) {
		e := sampleEditor()
		preloaded := e.Rules[2]
		preloaded.SetLoaded(true)

		c := cursor.New(e)
		for ok := c.GotoFirst(); ok && !c.Done(); c.Advance() {
			forced := 0
			for _, r := range e.Rules {
				if r.IsLoaded() && r != preloaded {
					forced++
				}
			}
			assert.LessOrEqual(t, forced, 1, "at %s", c.State())
			if rule := c.Rule(); rule != nil {
				assert.True(t, rule.IsLoaded(), "at %s", c.State())
			}
		}
		c.Reset()

		assert.False(t, e.Rules[0].IsLoaded())
		assert.False(t, e.Rules[1].IsLoaded())
		assert.True(t, preloaded.IsLoaded())
		assert.Equal(t, 1, e.Rules[0].Loads())
		assert.Equal(t, 0, e.Rules[1].Loads())
	})

	t.Run("reset mid-rule restores", func(t *testing.T) {
		e := sampleEditor()
		c := cursor.New(e)
		require.True(t, c.GotoFirst())
		c.Advance()
		require.Equal(t, cursor.LevelInput, c.Level())
		assert.True(t, e.Rules[0].IsLoaded())

		c.Reset()
		assert.False(t, e.Rules[0].IsLoaded())
		assert.True(t, c.Done())
	})

	t.Run("switching editors restores", func(t *testing.T) {
		e := sampleEditor()
		c := cursor.New(e)
		require.True(t, c.GotoFirst())
		c.Advance()
		c.SetEditor(sampleEditor())
		assert.False(t, e.Rules[0].IsLoaded())
	})
}

func TestCursorTextPosResetsOnMove(t *testing.T) {
	c := cursor.New(sampleEditor())
	require.True(t, c.GotoFirst())
	c.TextPos = 3
	c.Selection = ruletree.Selection{Start: 0, Length: 3}
	c.Advance()
	assert.Equal(t, 0, c.TextPos)
	assert.Equal(t, ruletree.Selection{}, c.Selection)
}

func TestCursorPanics(t *testing.T) {
	t.Run("advance before goto first", func(t *testing.T) {
		c := cursor.New(sampleEditor())
		assert.Panics(t, func() { c.Advance() })
	})

	t.Run("undefined branch", func(t *testing.T) {
		e := sampleEditor()
		assert.Panics(t, func() {
			cursor.Next(e, cursor.State{Level: cursor.LevelCondition})
		})
		assert.Panics(t, func() {
			cursor.Next(e, cursor.State{Level: cursor.LevelToEval, Branch: cursor.BranchQuestion})
		})
	})
}

func TestCursorStateStrings(t *testing.T) {
	c := cursor.New(sampleEditor())
	var states []string
	for ok := c.GotoFirst(); ok && !c.Done(); c.Advance() {
		states = append(states, c.State().String())
	}
	seq.AssertContainsSequence(t, states,
		"topic filter 1",
		"rule 0 input 0",
		"rule 0 ToEval",
		"rule 0 group 1 conditional 1 Condition",
		"rule 0 group 1 conditional 1 output 0 invalid 1",
		"rule 0 conditional 0 DoPattern",
		"rule 0 output 0",
		"rule 2 ToCal",
		"question 1 output 0 invalid 0",
	)
}

func TestCursorOwner(t *testing.T) {
	e := sampleEditor()
	c := cursor.New(e)
	assert.Nil(t, c.Owner())

	require.True(t, c.GotoFirst())
	assert.Same(t, e, c.Owner())
	c.Advance()
	assert.Same(t, e.Rules[0], c.Owner())
}
