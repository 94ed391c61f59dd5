package process

import (
	"sort"

	"github.com/amonks/rulefind/internal/mutex"
)

// A Tracker holds every live process. A process is live from the time it
// first runs until it's done or canceled; one that's abandoned without
// either stays in its tracker.
type Tracker struct {
	mu    *mutex.Mutex
	procs map[int]*Process
}

// Default is the tracker used by processes created without one.
var Default = NewTracker()

func NewTracker() *Tracker {
	return &Tracker{mu: mutex.New("tracker"), procs: map[int]*Process{}}
}

func (t *Tracker) register(p *Process) {
	defer t.mu.Lock("register").Unlock()
	t.procs[p.token] = p
}

func (t *Tracker) release(p *Process) {
	defer t.mu.Lock("release").Unlock()
	delete(t.procs, p.token)
}

// Len returns the number of live processes.
func (t *Tracker) Len() int {
	defer t.mu.Lock("Len").Unlock()
	return len(t.procs)
}

// Live returns the live processes, oldest first.
func (t *Tracker) Live() []*Process {
	defer t.mu.Lock("Live").Unlock()

	procs := make([]*Process, 0, len(t.procs))
	for _, p := range t.procs {
		procs = append(procs, p)
	}
	sort.Slice(procs, func(i, j int) bool { return procs[i].token < procs[j].token })
	return procs
}

// Contains reports whether the process is live.
func (t *Tracker) Contains(p *Process) bool {
	defer t.mu.Lock("Contains").Unlock()
	_, ok := t.procs[p.token]
	return ok
}
