package finder

import (
	"context"
	"errors"
	"fmt"

	"github.com/amonks/rulefind/cursor"
	"github.com/amonks/rulefind/internal/process"
	"github.com/amonks/rulefind/ruletree"
	"github.com/amonks/rulefind/scope"
	"github.com/google/uuid"
)

// A session is one walk over a scope. Its fields are touched by the step
// loop while the process runs, and by the controller only while it's
// suspended or finished.
type session struct {
	c       *Controller
	id      uuid.UUID
	mode    Mode
	matcher *matcher
	set     *scope.Set
	proc    *process.Process

	cursor  *cursor.Cursor
	iter    *cursor.Iterator
	index   int
	release func()

	// pendingAdvance defers moving past a leaf whose last match reached
	// the end of its text until the next step, after the caller has seen
	// the match.
	pendingAdvance bool

	// last is the match most recently presented in ModeFind, and lastFrom
	// the text position its search started from.
	last     *Match
	lastFrom int

	results  *Results
	matches  int
	replaced int
	editors  int
	grouped  bool

	pos, total int

	// busy and closed are guarded by the controller's mutex.
	busy   bool
	closed bool
}

func (c *Controller) newSession(mode Mode, m *matcher, o Options) *session {
	s := &session{
		c:       c,
		id:      uuid.New(),
		mode:    mode,
		matcher: m,
		set:     scope.Resolve(c.ws, o.Scope),
		cursor:  cursor.New(nil),
		index:   -1,
		pos:     -1,
	}
	s.iter = s.cursor.Filter(o.Include)
	if mode != ModeFind {
		s.results = newResults()
	}
	if mode == ModeReplaceAll {
		c.undo.BeginGroup()
		s.grouped = true
	}
	s.proc = process.New(s.step, c.tracker)
	c.logger.Debug("search started",
		"session", s.id,
		"mode", mode,
		"scope", o.Scope,
		"include", o.Include,
		"regex", o.Regex,
		"case", o.MatchCase)
	return s
}

// step tests one candidate leaf.
func (s *session) step(ctx context.Context) (process.Status, error) {
	if s.pendingAdvance {
		s.pendingAdvance = false
		s.iter.Advance()
	}
	if s.index < 0 {
		return s.nextEditor(), nil
	}

	id, ok := s.iter.Seek()
	if !ok {
		return s.nextEditor(), nil
	}
	s.reportProgress()

	leaf, ok := s.c.ws.Leaf(id)
	if !ok {
		return process.StatusDone, fmt.Errorf("leaf %s of editor '%s' (%s) is not in the project", id, s.cursor.Editor().Name, s.cursor.State())
	}

	h, found := s.matcher.find(leaf.Expression, s.cursor.TextPos)
	if !found {
		s.iter.Advance()
		return process.StatusContinue, nil
	}
	return s.onMatch(leaf, h)
}

func (s *session) onMatch(leaf *ruletree.Pattern, h hit) (process.Status, error) {
	e := s.cursor.Editor()
	sel := h.selection()
	m := Match{
		Editor:    e,
		Leaf:      leaf,
		State:     s.cursor.State(),
		Selection: sel,
		Text:      leaf.Expression[sel.Start:sel.End()],
	}
	s.matches++
	s.cursor.Selection = sel

	switch s.mode {
	case ModeFind:
		s.lastFrom = s.cursor.TextPos
		s.skipPast(leaf, sel, sel.Length)
		s.last = &m
		s.c.dispatch(func() {
			leaf.Select(sel)
			s.c.ws.SetCurrent(e)
			s.c.presenter.Present(m)
		})
		return process.StatusSuspend, nil

	case ModeFindAll:
		s.skipPast(leaf, sel, sel.Length)
		s.results.add(m)
		return process.StatusContinue, nil

	case ModeReplaceAll:
		var r Replacement
		s.c.dispatch(func() { r = s.c.splice(m, s.matcher.expand(h, s.c.Options().Replacement)) })
		s.replaced++
		s.skipPast(leaf, r.Inserted(), sel.Length)
		m.Selection = r.Inserted()
		m.Text = r.With
		s.results.add(m)
		return process.StatusContinue, nil
	}
	panic(fmt.Errorf("finder: no match handling for mode %s", s.mode))
}

// splice replaces the matched text in the leaf. It must run on the model's
// owner.
func (c *Controller) splice(m Match, with string) Replacement {
	before := m.Leaf.Splice(m.Selection, with)
	c.undo.Record(m.Leaf, before)
	r := Replacement{Match: m, With: with, Before: before, After: m.Leaf.Expression}
	c.presenter.Replaced(r)
	return r
}

// skipPast moves the text position past sel, the text that was matched or
// inserted for a match of the given length. After an empty match the
// position moves one more byte.
//
// A match reaching the end of the text leaves nothing more to find in the
// leaf, so the move to the next leaf is deferred to the next step.
func (s *session) skipPast(leaf *ruletree.Pattern, sel ruletree.Selection, matched int) {
	end := sel.End()
	if matched == 0 {
		end++
	}
	s.cursor.TextPos = end
	s.pendingAdvance = end > len(leaf.Expression) || matched > 0 && end == len(leaf.Expression)
}

func (s *session) nextEditor() process.Status {
	s.leaveEditor()
	s.index++
	e, release := s.set.Acquire(s.index)
	if e == nil {
		return process.StatusDone
	}
	s.release = release
	s.editors++
	s.cursor.SetEditor(e)
	s.cursor.GotoFirst()
	s.c.logger.Debug("searching editor", "session", s.id, "editor", e.Name, "index", s.index)
	s.reportProgress()
	return process.StatusContinue
}

func (s *session) leaveEditor() {
	s.cursor.Reset()
	if s.release != nil {
		s.release()
		s.release = nil
	}
}

// progress is measured in rules for the current editor, or in editors
// otherwise.
func (s *session) progress() (pos, total int) {
	total = s.set.Units()
	if s.set.Kind() != scope.KindCurrent {
		return max(s.index, 0), total
	}
	switch st := s.cursor.State(); {
	case st.InRules():
		return st.Rule, total
	case st.InQuestions():
		return total, total
	}
	return 0, total
}

func (s *session) reportProgress() {
	pos, total := s.progress()
	if pos == s.pos && total == s.total {
		return
	}
	s.pos, s.total = pos, total
	s.proc.SetProgress(pos, total)
	s.c.dispatch(func() { s.c.presenter.Progress(pos, total) })
}

// close puts everything the session touched back. It runs once, after the
// step loop has exited.
func (s *session) close() {
	s.leaveEditor()
	if s.grouped {
		s.c.undo.EndGroup()
		s.grouped = false
	}
}

func (s *session) summary(err error) Summary {
	sum := Summary{
		Session:  s.id,
		Mode:     s.mode,
		Matches:  s.matches,
		Replaced: s.replaced,
		Editors:  s.editors,
		Results:  s.results,
		Canceled: errors.Is(err, context.Canceled),
	}
	if !sum.Canceled {
		sum.Err = err
	}
	return sum
}
