package ruletree

// A ConditionalOwner is anything that holds an ordered list of conditionals.
// Both [Rule] and [ResponsesForGroup] are conditional owners, so traversal
// code can walk either one without caring which it has.
type ConditionalOwner interface {
	ConditionalList() []*Conditional
}

var (
	_ ConditionalOwner = &Rule{}
	_ ConditionalOwner = &ResponsesForGroup{}
)

// A Conditional guards a set of outputs and/or a do pattern. Questions are
// conditionals too.
type Conditional struct {
	Condition *Pattern
	Outputs   []*Output
	Do        *Pattern
}

// HasDo reports whether the conditional has a do pattern.
func (c *Conditional) HasDo() bool { return c.Do != nil }

// IsEmpty reports whether the conditional has no condition, no outputs, and
// no do pattern.
func (c *Conditional) IsEmpty() bool {
	return c.Condition == nil && len(c.Outputs) == 0 && c.Do == nil
}

// A ResponsesForGroup is a named group of conditionals scoped to specific
// respondents.
type ResponsesForGroup struct {
	Name         string
	Conditionals []*Conditional
}

func (g *ResponsesForGroup) ConditionalList() []*Conditional { return g.Conditionals }

// IsEmpty reports whether none of the group's conditionals hold anything.
func (g *ResponsesForGroup) IsEmpty() bool {
	for _, c := range g.Conditionals {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// A Rule is one pattern-matching unit: input patterns that trigger it, and
// the branches producing its response.
//
// The content of a rule may be lazily materialized by the host. A search
// force-loads the rule it's walking with SetLoaded and restores the previous
// state when it moves on.
type Rule struct {
	Name         string
	TextPatterns []*Pattern
	ToEval       *Pattern
	ToCal        *Pattern
	ResponsesFor []*ResponsesForGroup
	Conditionals []*Conditional
	Outputs      []*Output
	Do           *Pattern

	loaded bool
	loads  int
}

func (r *Rule) ConditionalList() []*Conditional { return r.Conditionals }

// IsLoaded reports whether the rule's content is materialized.
func (r *Rule) IsLoaded() bool { return r.loaded }

// SetLoaded toggles materialization of the rule's content.
func (r *Rule) SetLoaded(loaded bool) {
	if loaded && !r.loaded {
		r.loads++
	}
	r.loaded = loaded
}

// Loads returns how many times the rule went from unloaded to loaded.
func (r *Rule) Loads() int { return r.loads }

// IsEmpty reports whether the rule has no leaves at all.
func (r *Rule) IsEmpty() bool {
	if len(r.TextPatterns) > 0 || r.ToEval != nil || r.ToCal != nil || r.Do != nil || len(r.Outputs) > 0 {
		return false
	}
	for _, g := range r.ResponsesFor {
		if !g.IsEmpty() {
			return false
		}
	}
	for _, c := range r.Conditionals {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
