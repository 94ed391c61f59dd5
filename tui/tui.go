// Package tui is an interactive find and replace screen over a project.
//
// The rule tree belongs to the bubbletea program's goroutine. Controller
// calls run in tea.Cmds, and everything the controller does to the tree or
// the screen comes back through the program as a message, so that Update
// is the only code that ever touches either.
package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/amonks/rulefind/finder"
	"github.com/amonks/rulefind/internal/mutex"
	"github.com/amonks/rulefind/projectfile"
	tea "github.com/charmbracelet/bubbletea"
)

type Config struct {
	Project *projectfile.Project
	Options finder.Options
	Logger  *slog.Logger

	// Stdin and Stdout default to the process's own.
	Stdin  io.Reader
	Stdout io.Writer
}

// Start runs the UI until the user quits or ctx is done. Any search in
// progress is canceled before Start returns.
func Start(ctx context.Context, cfg Config) error {
	d := &dispatcher{mu: mutex.New("dispatch"), quit: make(chan struct{})}
	m := newModel(ctx, cfg, d.Dispatch)

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithMouseCellMotion(),
	}
	if cfg.Stdin != nil {
		opts = append(opts, tea.WithInput(cfg.Stdin))
	}
	if cfg.Stdout != nil {
		opts = append(opts, tea.WithOutput(cfg.Stdout))
	}
	p := tea.NewProgram(m, opts...)

	d.start(p.Send)
	_, err := p.Run()
	d.stop()
	m.ctrl.Cancel()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// A dispatcher runs functions on the program's goroutine. Until the
// program starts, and after it stops, functions run inline.
type dispatcher struct {
	mu   *mutex.Mutex
	send func(tea.Msg)
	quit chan struct{}
}

func (d *dispatcher) start(send func(tea.Msg)) {
	defer d.mu.Lock("start").Unlock()
	d.send = send
}

func (d *dispatcher) stop() {
	d.mu.Lock("stop")
	d.send = nil
	d.mu.Unlock()
	close(d.quit)
}

// Dispatch must not be called from Update.
func (d *dispatcher) Dispatch(fn func()) {
	d.mu.Lock("Dispatch")
	send := d.send
	d.mu.Unlock()

	if send == nil {
		fn()
		return
	}
	done := make(chan struct{})
	send(msgDispatch{fn: fn, done: done})
	select {
	case <-done:
	case <-d.quit:
	}
}

type (
	msgDispatch struct {
		fn   func()
		done chan struct{}
	}
	msgDone struct {
		op  string
		err error
	}
	msgUndo struct{}
)
