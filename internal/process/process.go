// Process takes a function that does one bounded step of work at a time and
// wraps it into an object that can be started, resumed between steps,
// switched to bulk mode, and canceled.
package process

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/amonks/rulefind/internal/mutex"
)

// A Step does one unit of work. It's never called concurrently with itself.
type Step func(ctx context.Context) (Status, error)

// Result is what a run of the step loop ended with: StatusSuspend, or
// StatusDone with the error that ended the process, if any.
type Result struct {
	Status Status
	Err    error
}

var ErrRunning = errors.New("process is already running")

type Process struct {
	step    Step
	tracker *Tracker

	mu     *mutex.Mutex
	token  int
	ctx    context.Context
	cancel func()

	running bool
	bulk    bool
	isDone  bool
	err     error
	exited  chan struct{}

	pos, total int
}

var tokenIncr = &incr{}

// New creates a process that registers itself with the given tracker while
// it's live. A nil tracker means Default.
func New(step Step, tracker *Tracker) *Process {
	if tracker == nil {
		tracker = Default
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Process{
		step:    step,
		tracker: tracker,
		mu:      mutex.New("process"),
		token:   tokenIncr.Incr(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (p *Process) Is(other *Process) bool {
	return other != nil && p.token == other.token
}

// Start runs steps until one suspends or the process is done.
func (p *Process) Start() <-chan Result {
	return p.run("Start", false)
}

// ContinueStep resumes a suspended process.
func (p *Process) ContinueStep() <-chan Result {
	return p.run("ContinueStep", false)
}

// FindAll switches the process to bulk mode, where suspensions are ignored,
// and runs it to completion.
func (p *Process) FindAll() <-chan Result {
	return p.run("FindAll", true)
}

func (p *Process) run(name string, bulk bool) <-chan Result {
	p.mu.Lock(name)
	defer p.mu.Unlock()

	c := make(chan Result, 1)
	if p.isDone {
		c <- Result{Status: StatusDone, Err: p.err}
		return c
	}
	if p.running {
		c <- Result{Status: StatusDone, Err: ErrRunning}
		return c
	}

	if bulk {
		p.bulk = true
	}
	p.running = true
	p.tracker.register(p)
	exited := make(chan struct{})
	p.exited = exited

	go func() {
		defer close(exited)
		res := p.loop()
		p.handleExit(res)
		c <- res
	}()
	return c
}

func (p *Process) loop() Result {
	for {
		if err := p.ctx.Err(); err != nil {
			return Result{Status: StatusDone, Err: err}
		}
		status, err := p.step(p.ctx)
		if err != nil {
			return Result{Status: StatusDone, Err: err}
		}
		switch status {
		case StatusContinue:
		case StatusSuspend:
			if !p.IsBulk() {
				return Result{Status: StatusSuspend}
			}
		case StatusDone:
			return Result{Status: StatusDone}
		default:
			panic(fmt.Errorf("process: step returned invalid status %s", status))
		}
	}
}

func (p *Process) handleExit(res Result) {
	p.mu.Lock("handleExit")
	defer p.mu.Unlock()

	p.running = false
	if res.Status == StatusDone {
		p.isDone = true
		p.err = res.Err
		p.tracker.release(p)
	}
}

// Cancel stops the process after the step that's running, if any, and waits
// for the loop to exit. It's safe to call at any time, and more than once.
//
// Don't call Cancel from inside a step: it would wait for itself.
func (p *Process) Cancel() {
	p.mu.Lock("Cancel")
	p.cancel()
	exited := p.exited
	p.mu.Unlock()

	if exited != nil {
		<-exited
	}

	p.mu.Lock("Cancel")
	defer p.mu.Unlock()
	if !p.isDone {
		p.isDone = true
		p.err = context.Canceled
	}
	p.tracker.release(p)
}

func (p *Process) IsDone() bool {
	defer p.mu.Lock("IsDone").Unlock()
	return p.isDone
}

func (p *Process) IsBulk() bool {
	defer p.mu.Lock("IsBulk").Unlock()
	return p.bulk
}

// Err returns the error the process ended with.
func (p *Process) Err() error {
	defer p.mu.Lock("Err").Unlock()
	return p.err
}

// SetProgress records how far along the process is.
func (p *Process) SetProgress(pos, total int) {
	defer p.mu.Lock("SetProgress").Unlock()
	p.pos, p.total = pos, total
}

// Progress returns the last position and total set with SetProgress.
func (p *Process) Progress() (pos, total int) {
	defer p.mu.Lock("Progress").Unlock()
	return p.pos, p.total
}

type incr struct {
	n  int
	mu sync.Mutex
}

func (i *incr) Incr() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.n += 1
	return i.n
}
