package cursor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Options selects which categories of leaves a search looks at. The category
// of a leaf comes from its structural role, never from its content.
type Options struct {
	TopicFilters bool
	Input        bool
	Output       bool

	// NoReply covers invalid responses.
	NoReply   bool
	Condition bool

	// Do covers do patterns and the ToEval and ToCal leaves.
	Do bool

	// Questions gates everything after the rules. Leaves inside a
	// question are also subject to their own category.
	Questions bool
}

// AllOptions includes every category.
func AllOptions() Options {
	return Options{
		TopicFilters: true,
		Input:        true,
		Output:       true,
		NoReply:      true,
		Condition:    true,
		Do:           true,
		Questions:    true,
	}
}

var optionNames = map[string]func(*Options) *bool{
	"topics":    func(o *Options) *bool { return &o.TopicFilters },
	"input":     func(o *Options) *bool { return &o.Input },
	"output":    func(o *Options) *bool { return &o.Output },
	"noreply":   func(o *Options) *bool { return &o.NoReply },
	"condition": func(o *Options) *bool { return &o.Condition },
	"do":        func(o *Options) *bool { return &o.Do },
	"questions": func(o *Options) *bool { return &o.Questions },
}

// ParseOptions reads a comma-separated list of categories, as produced by
// [Options.String]. The word "all" includes everything.
func ParseOptions(s string) (Options, error) {
	var o Options
	for _, word := range strings.Split(s, ",") {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		if word == "all" {
			o = AllOptions()
			continue
		}
		field, ok := optionNames[word]
		if !ok {
			var legal []string
			for name := range optionNames {
				legal = append(legal, name)
			}
			sort.Strings(legal)
			return Options{}, fmt.Errorf("unknown category '%s'; legal values are all, %s", word, strings.Join(legal, ", "))
		}
		*field(&o) = true
	}
	return o, nil
}

func (o Options) String() string {
	if o == AllOptions() {
		return "all"
	}
	var names []string
	for name, field := range optionNames {
		if *field(&o) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

// Includes reports whether a leaf at position s belongs to an included
// category.
func (o Options) Includes(s State) bool {
	if s.Branch == BranchQuestion && !o.Questions {
		return false
	}
	switch s.Level {
	case LevelTopicFilter:
		return o.TopicFilters
	case LevelInput:
		return o.Input
	case LevelToEval, LevelToCal, LevelDoPattern:
		return o.Do
	case LevelCondition:
		return o.Condition
	case LevelOutput:
		return o.Output
	case LevelInvalid:
		return o.NoReply
	}
	return false
}

// An Iterator produces the identifiers of included leaves, lazily, by driving
// a cursor. It can't be restarted: call GotoFirst on the cursor to walk the
// editor again.
type Iterator struct {
	cursor  *Cursor
	options Options
}

// Filter wraps the cursor in an iterator over the included leaves.
func (c *Cursor) Filter(o Options) *Iterator {
	return &Iterator{cursor: c, options: o}
}

// Cursor returns the underlying cursor.
func (it *Iterator) Cursor() *Cursor { return it.cursor }

// Options returns the iterator's categories.
func (it *Iterator) Options() Options { return it.options }

// Seek returns the identifier of the current leaf if it's included. If it
// isn't, Seek advances the cursor until it finds one that is. It returns
// false once the cursor is exhausted.
//
// Once the walk reaches the questions of an editor and questions are
// excluded, nothing else can match, so Seek finishes the cursor right away.
func (it *Iterator) Seek() (uuid.UUID, bool) {
	for !it.cursor.Done() {
		s := it.cursor.State()
		if s.Branch == BranchQuestion && !it.options.Questions {
			it.cursor.Finish()
			break
		}
		if it.options.Includes(s) {
			return it.cursor.Leaf().ID, true
		}
		it.cursor.Advance()
	}
	return uuid.Nil, false
}

// Advance moves past the current leaf.
func (it *Iterator) Advance() {
	it.cursor.Advance()
}

// Collect walks the rest of the editor and returns every included leaf
// identifier, in order.
func (it *Iterator) Collect() []uuid.UUID {
	var ids []uuid.UUID
	for {
		id, ok := it.Seek()
		if !ok {
			return ids
		}
		ids = append(ids, id)
		it.Advance()
	}
}
