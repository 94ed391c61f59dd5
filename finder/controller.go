// Package finder runs find and replace over the leaves of a project.
//
// A [Controller] owns at most one session at a time. A session walks the
// editors of a scope leaf by leaf, one leaf per step of a resumable
// [process.Process], so an interactive search can stop after each match and
// pick up where it left off.
//
// The controller never touches the rule tree or the presenter directly from
// the step loop: it goes through Config.Dispatch, which must run the given
// function on whichever goroutine owns the model, and return once it has.
package finder

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/amonks/rulefind/internal/mutex"
	"github.com/amonks/rulefind/internal/process"
	"github.com/amonks/rulefind/ruletree"
	"github.com/amonks/rulefind/scope"
	"github.com/amonks/rulefind/undo"
	"github.com/google/uuid"
)

// A Workspace is a scope.Workspace that can also resolve leaf identifiers.
// *ruletree.Project implements it.
type Workspace interface {
	scope.Workspace
	Leaf(uuid.UUID) (*ruletree.Pattern, bool)
}

var _ Workspace = &ruletree.Project{}

type Config struct {
	// Presenter defaults to NopPresenter.
	Presenter Presenter

	// Undo receives every replacement. It defaults to a new undo.Journal.
	Undo undo.Transaction

	// Tracker defaults to process.Default.
	Tracker *process.Tracker

	// Dispatch runs a function on the goroutine that owns the model and
	// returns after it ran. It defaults to calling the function directly.
	Dispatch func(func())

	// Logger defaults to discarding everything.
	Logger *slog.Logger
}

type Controller struct {
	ws        Workspace
	presenter Presenter
	undo      undo.Transaction
	tracker   *process.Tracker
	dispatch  func(func())
	logger    *slog.Logger

	mu         *mutex.Mutex
	options    Options
	matcher    *matcher
	patternErr error
	session    *session
	results    *Results
}

func New(ws Workspace, cfg Config) *Controller {
	c := &Controller{
		ws:        ws,
		presenter: cfg.Presenter,
		undo:      cfg.Undo,
		tracker:   cfg.Tracker,
		dispatch:  cfg.Dispatch,
		logger:    cfg.Logger,
		mu:        mutex.New("finder"),
		options:   DefaultOptions(),
	}
	if c.presenter == nil {
		c.presenter = NopPresenter{}
	}
	if c.undo == nil {
		c.undo = undo.NewJournal()
	}
	if c.tracker == nil {
		c.tracker = process.Default
	}
	if c.dispatch == nil {
		c.dispatch = func(fn func()) { fn() }
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.matcher, _ = compile(c.options)
	return c
}

// Options returns the current search criteria.
func (c *Controller) Options() Options {
	defer c.mu.Lock("Options").Unlock()
	return c.options
}

// SetOptions changes the search criteria. If the criteria differ from the
// active session's, that session is canceled first. A change to the
// replacement text alone applies to the active session.
//
// A search text that doesn't compile is reported to the presenter and
// returned as a *PatternError; searches fail with the same error until the
// text is fixed.
func (c *Controller) SetOptions(o Options) error {
	c.mu.Lock("SetOptions")
	changed := !o.sameCriteria(c.options)
	active := c.session != nil
	c.mu.Unlock()

	if changed && active {
		c.logger.Debug("criteria changed; canceling search")
		c.Cancel()
	}

	c.mu.Lock("SetOptions")
	c.options = o
	if changed || c.matcher == nil && c.patternErr == nil {
		c.matcher, c.patternErr = compile(o)
	}
	err := c.patternErr
	c.mu.Unlock()

	if err != nil && changed {
		c.logger.Debug("invalid search text", "text", o.Text, "error", err)
		c.dispatch(func() { c.presenter.Report(err) })
	}
	return err
}

// SetText changes the search text.
func (c *Controller) SetText(text string) error {
	o := c.Options()
	o.Text = text
	return c.SetOptions(o)
}

// SetReplacement changes the replacement text.
func (c *Controller) SetReplacement(text string) {
	o := c.Options()
	o.Replacement = text
	c.SetOptions(o)
}

// Active reports whether a session is in progress.
func (c *Controller) Active() bool {
	defer c.mu.Lock("Active").Unlock()
	return c.session != nil
}

// Results returns the matches collected by the last bulk session to finish.
func (c *Controller) Results() *Results {
	defer c.mu.Lock("Results").Unlock()
	return c.results
}

// TextPos returns the offset in the current leaf where the next search of
// that leaf begins, or 0 if there's no session.
func (c *Controller) TextPos() int {
	defer c.mu.Lock("TextPos").Unlock()
	if c.session == nil || c.session.busy {
		return 0
	}
	return c.session.cursor.TextPos
}

// Progress returns the position and total of the active session.
func (c *Controller) Progress() (pos, total int) {
	c.mu.Lock("Progress")
	s := c.session
	c.mu.Unlock()
	if s == nil {
		return 0, 0
	}
	return s.proc.Progress()
}

// FindNext presents the next match. It starts a session if there's none,
// and returns once a match is presented or the scope is exhausted. It does
// nothing if the search text is empty.
//
// If ctx is done before then, the session is canceled.
func (c *Controller) FindNext(ctx context.Context) error {
	c.mu.Lock("FindNext")
	if c.options.Text == "" {
		c.mu.Unlock()
		return nil
	}
	if c.patternErr != nil {
		err := c.patternErr
		c.mu.Unlock()
		return err
	}

	s := c.session
	var results <-chan process.Result
	switch {
	case s == nil:
		s = c.newSession(ModeFind, c.matcher, c.options)
		c.session = s
		s.busy = true
		results = s.proc.Start()
	case s.busy || s.mode != ModeFind:
		c.mu.Unlock()
		return ErrBusy
	default:
		s.busy = true
	}
	c.mu.Unlock()

	if results == nil {
		s.reportProgress()
		results = s.proc.ContinueStep()
	}
	return c.await(ctx, s, results)
}

// FindAll collects every match in the scope and returns once the scope is
// exhausted. An interactive session in progress is canceled first.
func (c *Controller) FindAll(ctx context.Context) error {
	return c.bulk(ctx, ModeFindAll)
}

// ReplaceAll replaces every match in the scope. All the replacements are
// recorded in one undo group, which is closed when the session ends,
// however it ends.
func (c *Controller) ReplaceAll(ctx context.Context) error {
	return c.bulk(ctx, ModeReplaceAll)
}

func (c *Controller) bulk(ctx context.Context, mode Mode) error {
	c.mu.Lock("bulk")
	if c.options.Text == "" {
		c.mu.Unlock()
		return nil
	}
	if c.patternErr != nil {
		err := c.patternErr
		c.mu.Unlock()
		return err
	}
	if s := c.session; s != nil {
		busy := s.busy
		c.mu.Unlock()
		if busy {
			return ErrBusy
		}
		c.Cancel()
		c.mu.Lock("bulk")
	}

	s := c.newSession(mode, c.matcher, c.options)
	c.session = s
	s.busy = true
	results := s.proc.FindAll()
	c.mu.Unlock()

	return c.await(ctx, s, results)
}

// Replace replaces the presented match, if the leaf's selection still
// matches the search text, and stays on the leaf. Otherwise it acts like
// FindNext, leaving the decision to the next call.
func (c *Controller) Replace(ctx context.Context) error {
	c.mu.Lock("Replace")
	s := c.session
	ready := s != nil && !s.busy && s.mode == ModeFind && s.last != nil && c.patternErr == nil
	c.mu.Unlock()

	if !ready {
		return c.FindNext(ctx)
	}

	r, ok := c.replaceSelected(*s.last, s.matcher, s.lastFrom)
	if !ok {
		return c.FindNext(ctx)
	}

	c.mu.Lock("Replace")
	defer c.mu.Unlock()
	s.replaced++
	s.last = nil
	s.cursor.TextPos += len(r.With) - r.Selection.Length
	s.pendingAdvance = s.cursor.TextPos >= len(r.After)
	c.logger.Debug("replaced", "session", s.id, "editor", r.Editor.Name, "leaf", r.Leaf.ID)
	return nil
}

// ReplaceMatch replaces m, a match focused outside of an interactive
// session, like a row of FindAll's results, if its leaf's selection still
// matches the search text. Otherwise it acts like FindNext.
//
// With an interactive session presenting a match, it acts like Replace.
func (c *Controller) ReplaceMatch(ctx context.Context, m Match) error {
	c.mu.Lock("ReplaceMatch")
	s := c.session
	matcher, patternErr := c.matcher, c.patternErr
	c.mu.Unlock()

	switch {
	case s != nil:
		return c.Replace(ctx)
	case patternErr != nil:
		return patternErr
	case c.Options().Text == "":
		return nil
	}

	r, ok := c.replaceSelected(m, matcher, 0)
	if !ok {
		return c.FindNext(ctx)
	}
	c.logger.Debug("replaced", "editor", r.Editor.Name, "leaf", r.Leaf.ID)
	return nil
}

// replaceSelected splices the replacement over the selection of m's leaf,
// if a search of the leaf starting at from finds exactly that selection.
func (c *Controller) replaceSelected(m Match, matcher *matcher, from int) (Replacement, bool) {
	var r Replacement
	replaced := false
	c.dispatch(func() {
		leaf := m.Leaf
		h, ok := matcher.matchAt(leaf.Expression, from, leaf.Selection)
		if !ok {
			return
		}
		m.Selection = h.selection()
		m.Text = leaf.Expression[m.Selection.Start:m.Selection.End()]
		r = c.splice(m, matcher.expand(h, c.Options().Replacement))
		replaced = true
	})
	return r, replaced
}

// Cancel stops the active session, if any, and puts back everything it
// touched: the rule it was walking is unloaded, editors opened for the
// search are closed, an open undo group is closed, and the session's
// process is released from its tracker. Cancel is safe to call at any
// time, and more than once.
//
// Call Cancel before discarding a controller with an active session, or
// the session's process stays in its tracker.
func (c *Controller) Cancel() {
	c.mu.Lock("Cancel")
	s := c.session
	c.mu.Unlock()
	if s == nil {
		return
	}
	s.proc.Cancel()
	c.finish(s, context.Canceled)
}

func (c *Controller) await(ctx context.Context, s *session, results <-chan process.Result) error {
	select {
	case res := <-results:
		c.mu.Lock("await")
		s.busy = false
		c.mu.Unlock()
		if errors.Is(res.Err, process.ErrRunning) {
			return ErrBusy
		}
		if res.Status == process.StatusSuspend {
			return nil
		}
		return c.finish(s, res.Err)
	case <-ctx.Done():
		c.Cancel()
		return ctx.Err()
	}
}

// finish ends a session. Only the first call for a session does anything.
func (c *Controller) finish(s *session, err error) error {
	c.mu.Lock("finish")
	if s.closed {
		c.mu.Unlock()
		return err
	}
	s.closed = true
	s.busy = false
	if c.session == s {
		c.session = nil
	}
	if s.results != nil {
		c.results = s.results
	}
	c.mu.Unlock()

	s.proc.Cancel()
	s.close()
	sum := s.summary(err)

	if sum.Err != nil {
		c.logger.Error("search failed", "session", s.id, "mode", s.mode, "error", sum.Err)
	} else {
		c.logger.Info("search finished",
			"session", s.id,
			"mode", s.mode,
			"matches", sum.Matches,
			"replaced", sum.Replaced,
			"editors", sum.Editors,
			"canceled", sum.Canceled)
	}

	c.dispatch(func() {
		c.presenter.Progress(0, 0)
		if sum.Err != nil {
			c.presenter.Report(sum.Err)
		}
		c.presenter.Finished(sum)
	})
	return sum.Err
}
