package printer

import (
	"github.com/amonks/rulefind/cursor"
)

// labelWidth fits the longest label, "question condition".
const labelWidth = 18

var levelLabels = map[cursor.Level]string{
	cursor.LevelTopicFilter: "topic filter",
	cursor.LevelInput:       "input",
	cursor.LevelToEval:      "to eval",
	cursor.LevelToCal:       "to cal",
	cursor.LevelCondition:   "condition",
	cursor.LevelOutput:      "output",
	cursor.LevelInvalid:     "invalid",
	cursor.LevelDoPattern:   "do",
}

// Label names a leaf's role, like "output" or "question condition".
func Label(s cursor.State) string {
	label, ok := levelLabels[s.Level]
	if !ok {
		return s.Level.String()
	}
	if s.InQuestions() {
		return "question " + label
	}
	return label
}
