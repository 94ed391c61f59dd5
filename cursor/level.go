package cursor

// Level is the structural role of the leaf a cursor points at.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type Level -trimprefix Level
type Level int

const (
	levelUnset Level = iota
	LevelTopicFilter
	LevelInput
	LevelToEval
	LevelToCal
	LevelCondition
	LevelOutput
	LevelInvalid
	LevelDoPattern

	// LevelDone marks an exhausted cursor: there is no further leaf.
	LevelDone
)

// Branch says which container supplies the condition, output, invalid, and
// do leaves of the current position.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type Branch -trimprefix Branch
type Branch int

const (
	branchNone Branch = iota

	// BranchResponsesFor walks the conditionals of a rule's responses-for
	// groups, in order.
	BranchResponsesFor

	// BranchConditionals walks the rule's own conditionals.
	BranchConditionals

	// BranchRuleRoot walks the outputs and do pattern attached directly to
	// the rule.
	BranchRuleRoot

	// BranchQuestion walks the editor's questions.
	BranchQuestion
)
