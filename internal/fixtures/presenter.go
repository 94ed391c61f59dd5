package fixtures

import (
	"fmt"
	"sync"

	"github.com/amonks/rulefind/finder"
	"github.com/amonks/rulefind/ruletree"
)

// Presenter records everything a controller shows. Events are logged as
// lines like "present greetings:hello there@6+5".
type Presenter struct {
	mu sync.Mutex

	Events       []string
	Matches      []finder.Match
	Replacements []finder.Replacement
	Summaries    []finder.Summary
	Errors       []error
}

var _ finder.Presenter = &Presenter{}

func NewPresenter() *Presenter { return &Presenter{} }

func (p *Presenter) Present(m finder.Match) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Matches = append(p.Matches, m)
	p.Events = append(p.Events, fmt.Sprintf("present %s", describe(m.Editor, m.Leaf, m.Selection)))
}

func (p *Presenter) Replaced(r finder.Replacement) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Replacements = append(p.Replacements, r)
	p.Events = append(p.Events, fmt.Sprintf("replace %s: %s -> %s", r.Editor.Name, r.Before, r.After))
}

func (p *Presenter) Progress(pos, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, fmt.Sprintf("progress %d/%d", pos, total))
}

func (p *Presenter) Finished(s finder.Summary) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Summaries = append(p.Summaries, s)
	p.Events = append(p.Events, fmt.Sprintf("finished %s", s.Mode))
}

func (p *Presenter) Report(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Errors = append(p.Errors, err)
	p.Events = append(p.Events, fmt.Sprintf("error %s", err))
}

// Last returns the most recently presented match.
func (p *Presenter) Last() finder.Match {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Matches) == 0 {
		return finder.Match{}
	}
	return p.Matches[len(p.Matches)-1]
}

func describe(e *ruletree.Editor, leaf *ruletree.Pattern, sel ruletree.Selection) string {
	return fmt.Sprintf("%s:%s@%d+%d", e.Name, leaf.Expression, sel.Start, sel.Length)
}

// Undo counts the calls a controller makes to its undo transaction.
type Undo struct {
	mu sync.Mutex

	Begins, Ends int

	// Records holds the expression each recorded leaf had before its
	// change, along with the depth of the group it was recorded in.
	Records []UndoRecord

	depth int
}

type UndoRecord struct {
	Leaf   *ruletree.Pattern
	Before string
	Depth  int
}

func (u *Undo) BeginGroup() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Begins++
	u.depth++
}

func (u *Undo) EndGroup() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Ends++
	u.depth--
}

func (u *Undo) Record(leaf *ruletree.Pattern, before string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Records = append(u.Records, UndoRecord{Leaf: leaf, Before: before, Depth: u.depth})
}

// Open reports whether a group is open.
func (u *Undo) Open() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.depth > 0
}
