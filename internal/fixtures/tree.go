package fixtures

import (
	"fmt"
	"math/rand"

	"github.com/amonks/rulefind/ruletree"
)

// TreeBuilder generates editors with a random shape. Every non-empty leaf
// gets a unique expression naming its role, like "output-12".
type TreeBuilder struct {
	rng *rand.Rand
	n   int

	// Presence is the chance that an optional node (ToEval, a condition,
	// a do pattern...) exists.
	Presence float64

	// Empty is the chance that a leaf which may be skipped when empty
	// (a topic filter or an input) has no text.
	Empty float64

	// MaxList bounds the length of every generated list.
	MaxList int
}

func NewTreeBuilder(seed int64) *TreeBuilder {
	return &TreeBuilder{
		rng:      rand.New(rand.NewSource(seed)),
		Presence: 0.5,
		Empty:    0.2,
		MaxList:  3,
	}
}

// Editor generates a linked editor.
func (b *TreeBuilder) Editor(name string) *ruletree.Editor {
	e := &ruletree.Editor{Name: name}
	for range b.count() {
		e.TopicFilters = append(e.TopicFilters, b.maybeEmpty("topic"))
	}
	for range b.count() {
		e.Rules = append(e.Rules, b.rule())
	}
	for range b.count() {
		e.Questions = append(e.Questions, b.conditional("question"))
	}
	e.Link()
	return e
}

func (b *TreeBuilder) rule() *ruletree.Rule {
	r := &ruletree.Rule{Name: b.expr("rule")}
	for range b.count() {
		r.TextPatterns = append(r.TextPatterns, b.maybeEmpty("input"))
	}
	r.ToEval = b.maybe("toeval")
	r.ToCal = b.maybe("tocal")
	for range b.count() {
		g := &ruletree.ResponsesForGroup{Name: b.expr("group")}
		for range b.count() {
			g.Conditionals = append(g.Conditionals, b.conditional("group"))
		}
		r.ResponsesFor = append(r.ResponsesFor, g)
	}
	for range b.count() {
		r.Conditionals = append(r.Conditionals, b.conditional("conditional"))
	}
	r.Outputs = b.outputs("root")
	r.Do = b.maybe("root-do")
	return r
}

func (b *TreeBuilder) conditional(prefix string) *ruletree.Conditional {
	return &ruletree.Conditional{
		Condition: b.maybe(prefix + "-condition"),
		Outputs:   b.outputs(prefix),
		Do:        b.maybe(prefix + "-do"),
	}
}

func (b *TreeBuilder) outputs(prefix string) []*ruletree.Output {
	var outs []*ruletree.Output
	for range b.count() {
		o := ruletree.NewOutput(b.expr(prefix + "-output"))
		for range b.count() {
			o.InvalidResponses = append(o.InvalidResponses, ruletree.NewPattern(b.expr(prefix+"-invalid")))
		}
		outs = append(outs, o)
	}
	return outs
}

func (b *TreeBuilder) count() int {
	return b.rng.Intn(b.MaxList + 1)
}

func (b *TreeBuilder) maybe(role string) *ruletree.Pattern {
	if b.rng.Float64() >= b.Presence {
		return nil
	}
	return ruletree.NewPattern(b.expr(role))
}

func (b *TreeBuilder) maybeEmpty(role string) *ruletree.Pattern {
	if b.rng.Float64() < b.Empty {
		return ruletree.NewPattern("")
	}
	return ruletree.NewPattern(b.expr(role))
}

func (b *TreeBuilder) expr(role string) string {
	b.n++
	return fmt.Sprintf("%s-%d", role, b.n)
}

// Searchable returns the leaves a full walk of the editor must visit, in
// order: every leaf except empty topic filters.
func Searchable(e *ruletree.Editor) []*ruletree.Pattern {
	empty := map[*ruletree.Pattern]bool{}
	for _, tf := range e.TopicFilters {
		if tf.IsEmpty() {
			empty[tf] = true
		}
	}
	var leaves []*ruletree.Pattern
	for _, leaf := range e.Leaves() {
		if !empty[leaf] {
			leaves = append(leaves, leaf)
		}
	}
	return leaves
}

// Expressions lists the expressions of the given leaves.
func Expressions(leaves []*ruletree.Pattern) []string {
	exprs := make([]string, len(leaves))
	for i, leaf := range leaves {
		exprs[i] = leaf.Expression
	}
	return exprs
}
