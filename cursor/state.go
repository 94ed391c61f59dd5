package cursor

import (
	"fmt"

	"github.com/amonks/rulefind/ruletree"
)

// State is a position in an editor. It's a plain value: save it, and hand it
// back to [Cursor.Resume] or [Next] later to pick up exactly where it left
// off.
//
// Which index fields matter depends on the Level and Branch. Fields that
// don't apply to the current position are zero.
type State struct {
	Level  Level
	Branch Branch

	TopicFilter  int
	Rule         int
	Input        int
	ResponsesFor int
	Conditional  int
	Output       int
	Invalid      int
	Question     int
}

// Done reports whether the state is past the last leaf.
func (s State) Done() bool { return s.Level == LevelDone }

// InRules reports whether the state points into a rule.
func (s State) InRules() bool {
	return s.Level >= LevelInput && s.Level <= LevelDoPattern && s.Branch != BranchQuestion
}

// InQuestions reports whether the state points into a question.
func (s State) InQuestions() bool {
	return s.Branch == BranchQuestion && s.Level != LevelDone
}

func (s State) String() string {
	switch {
	case s.Level == LevelTopicFilter:
		return fmt.Sprintf("topic filter %d", s.TopicFilter)
	case s.Branch == BranchQuestion:
		return fmt.Sprintf("question %d %s", s.Question, s.unitString())
	case s.InRules():
		switch s.Level {
		case LevelInput:
			return fmt.Sprintf("rule %d input %d", s.Rule, s.Input)
		case LevelToEval, LevelToCal:
			return fmt.Sprintf("rule %d %s", s.Rule, s.Level)
		}
		return fmt.Sprintf("rule %d %s", s.Rule, s.unitString())
	}
	return s.Level.String()
}

func (s State) unitString() string {
	var owner string
	switch s.Branch {
	case BranchResponsesFor:
		owner = fmt.Sprintf("group %d conditional %d ", s.ResponsesFor, s.Conditional)
	case BranchConditionals:
		owner = fmt.Sprintf("conditional %d ", s.Conditional)
	}
	switch s.Level {
	case LevelOutput:
		return fmt.Sprintf("%soutput %d", owner, s.Output)
	case LevelInvalid:
		return fmt.Sprintf("%soutput %d invalid %d", owner, s.Output, s.Invalid)
	}
	return owner + s.Level.String()
}

// First returns the position of the first leaf in the editor, skipping empty
// topic filters, and rules and questions without leaves. If the editor has no
// leaves at all, the returned state is Done.
func First(e *ruletree.Editor) State {
	return settle(e, State{Level: LevelTopicFilter})
}

// Next returns the position of the leaf that follows s in document order.
//
// The order is: non-empty topic filters; then, for each rule, its input
// patterns, ToEval, ToCal, the conditionals of each responses-for group, the
// rule's own conditionals, and the rule's root outputs and do pattern; then
// the questions. Inside a conditional, the condition comes first, then each
// output immediately followed by its invalid responses, then the do pattern.
//
// Next panics if s is not a position that [First] or Next could produce.
func Next(e *ruletree.Editor, s State) State {
	return settle(e, step(s))
}

// step moves s to the structurally next slot, which might not hold a leaf.
func step(s State) State {
	switch s.Level {
	case LevelTopicFilter:
		s.TopicFilter++
	case LevelInput:
		s.Input++
	case LevelToEval:
		s.Level = LevelToCal
	case LevelToCal:
		s = s.enterBranch(BranchResponsesFor)
	case LevelCondition:
		s.Level, s.Output, s.Invalid = LevelOutput, 0, 0
	case LevelOutput:
		s.Level, s.Invalid = LevelInvalid, 0
	case LevelInvalid:
		s.Invalid++
	case LevelDoPattern:
		s = s.nextUnit()
	case LevelDone:
	default:
		panic(fmt.Errorf("cursor: no transition out of level %s", s.Level))
	}
	return s
}

// settle moves s forward until it points at a leaf that exists, or until it's
// Done.
func settle(e *ruletree.Editor, s State) State {
	for {
		switch s.Level {
		case LevelDone:
			return s

		case LevelTopicFilter:
			for ; s.TopicFilter < len(e.TopicFilters); s.TopicFilter++ {
				if !e.TopicFilters[s.TopicFilter].IsEmpty() {
					return s
				}
			}
			s = enterRule(0)
			continue
		}

		if s.Branch != BranchQuestion && s.Rule >= len(e.Rules) {
			s = enterQuestion(0)
			continue
		}

		switch s.Level {
		case LevelInput, LevelToEval, LevelToCal:
			if s.Branch != branchNone {
				panic(fmt.Errorf("cursor: level %s is undefined in branch %s", s.Level, s.Branch))
			}
			rule := e.Rules[s.Rule]
			switch s.Level {
			case LevelInput:
				if s.Input < len(rule.TextPatterns) {
					return s
				}
				s.Level = LevelToEval
			case LevelToEval:
				if rule.ToEval != nil {
					return s
				}
				s.Level = LevelToCal
			case LevelToCal:
				if rule.ToCal != nil {
					return s
				}
				s = s.enterBranch(BranchResponsesFor)
			}

		case LevelCondition, LevelOutput, LevelInvalid, LevelDoPattern:
			next, moved := seekUnit(e, s)
			if moved {
				s = next
				continue
			}
			u := unitAt(e, s)
			switch s.Level {
			case LevelCondition:
				if u.condition != nil {
					return s
				}
				s.Level, s.Output, s.Invalid = LevelOutput, 0, 0
			case LevelOutput:
				if s.Output < len(u.outputs) {
					return s
				}
				s.Level = LevelDoPattern
			case LevelInvalid:
				if s.Output < len(u.outputs) && s.Invalid < len(u.outputs[s.Output].InvalidResponses) {
					return s
				}
				s.Level, s.Output, s.Invalid = LevelOutput, s.Output+1, 0
			case LevelDoPattern:
				if u.do != nil {
					return s
				}
				s = s.nextUnit()
			}

		default:
			panic(fmt.Errorf("cursor: no position at level %s", s.Level))
		}
	}
}

// seekUnit makes sure s points at a conditional (or rule root, or question)
// that exists. If the current one doesn't, it moves to the next one that
// does, positioned at its condition, and reports that it moved.
func seekUnit(e *ruletree.Editor, s State) (State, bool) {
	moved := false
	for {
		switch s.Branch {
		case BranchResponsesFor, BranchConditionals:
			owner, ok := chainOwner(e.Rules[s.Rule], s)
			if !ok {
				s, moved = s.enterBranch(BranchConditionals), true
				continue
			}
			if s.Conditional < len(owner.ConditionalList()) {
				return s, moved
			}
			if s.Branch == BranchResponsesFor {
				s.ResponsesFor++
				s = s.resetUnit()
				s.Conditional = 0
			} else {
				s = s.enterBranch(BranchRuleRoot)
			}
			moved = true

		case BranchRuleRoot:
			return s, moved

		case BranchQuestion:
			if s.Question >= len(e.Questions) {
				return State{Level: LevelDone}, true
			}
			return s, moved

		default:
			panic(fmt.Errorf("cursor: level %s is undefined in branch %s", s.Level, s.Branch))
		}
	}
}

// chainOwner returns the conditional owner for the responses-for and
// conditionals branches. It returns false when the responses-for groups are
// exhausted.
func chainOwner(rule *ruletree.Rule, s State) (ruletree.ConditionalOwner, bool) {
	if s.Branch == BranchConditionals {
		return rule, true
	}
	if s.ResponsesFor >= len(rule.ResponsesFor) {
		return nil, false
	}
	return rule.ResponsesFor[s.ResponsesFor], true
}

// unit is the condition, outputs, and do pattern visited together.
type unit struct {
	condition *ruletree.Pattern
	outputs   []*ruletree.Output
	do        *ruletree.Pattern
}

func unitAt(e *ruletree.Editor, s State) unit {
	var c *ruletree.Conditional
	switch s.Branch {
	case BranchResponsesFor, BranchConditionals:
		owner, _ := chainOwner(e.Rules[s.Rule], s)
		c = owner.ConditionalList()[s.Conditional]
	case BranchQuestion:
		c = e.Questions[s.Question]
	case BranchRuleRoot:
		rule := e.Rules[s.Rule]
		return unit{outputs: rule.Outputs, do: rule.Do}
	default:
		panic(fmt.Errorf("cursor: no unit in branch %s", s.Branch))
	}
	return unit{condition: c.Condition, outputs: c.Outputs, do: c.Do}
}

// LeafAt returns the leaf at position s, or nil if s is Done.
func LeafAt(e *ruletree.Editor, s State) *ruletree.Pattern {
	switch s.Level {
	case LevelTopicFilter:
		return e.TopicFilters[s.TopicFilter]
	case LevelInput:
		return e.Rules[s.Rule].TextPatterns[s.Input]
	case LevelToEval:
		return e.Rules[s.Rule].ToEval
	case LevelToCal:
		return e.Rules[s.Rule].ToCal
	case LevelCondition:
		return unitAt(e, s).condition
	case LevelOutput:
		return unitAt(e, s).outputs[s.Output].Leaf()
	case LevelInvalid:
		return unitAt(e, s).outputs[s.Output].InvalidResponses[s.Invalid]
	case LevelDoPattern:
		return unitAt(e, s).do
	}
	return nil
}

func enterRule(rule int) State {
	return State{Level: LevelInput, Rule: rule}
}

func enterQuestion(question int) State {
	return State{Level: LevelCondition, Branch: BranchQuestion, Question: question}
}

// enterBranch positions s at the start of the given branch of the current
// rule.
func (s State) enterBranch(b Branch) State {
	return State{Level: LevelCondition, Branch: b, Rule: s.Rule}
}

// resetUnit positions s at the condition of the current unit.
func (s State) resetUnit() State {
	s.Level, s.Output, s.Invalid = LevelCondition, 0, 0
	return s
}

// nextUnit positions s at the start of whatever follows the current unit.
func (s State) nextUnit() State {
	switch s.Branch {
	case BranchResponsesFor, BranchConditionals:
		s.Conditional++
		return s.resetUnit()
	case BranchQuestion:
		s.Question++
		return s.resetUnit()
	case BranchRuleRoot:
		return enterRule(s.Rule + 1)
	}
	panic(fmt.Errorf("cursor: no unit to leave in branch %s", s.Branch))
}
