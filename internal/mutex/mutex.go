package mutex

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// New creates a named mutex. The name shows up in the debug trace.
func New(name string) *Mutex {
	mu := &Mutex{name: name}
	mu.Printf("--- begin ---")
	return mu
}

// Mutex wraps sync.Mutex, providing these additional features:
//   - You can `defer mu.Lock(...).Unlock()` in a single line
//   - If RULEFIND_MUTEX_LOG names a file, lock and unlock events, along with
//     the name of the current holder, are traced to it.
//   - You can add lines to that trace with [Mutex.Printf].
type Mutex struct {
	name string
	mu   sync.Mutex

	holderMu sync.Mutex
	holder   string
}

var trace *slog.Logger

func init() {
	path := os.Getenv("RULEFIND_MUTEX_LOG")
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	trace = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (mu *Mutex) Lock(name string) *Mutex {
	mu.Printf("%s seeks lock", name)
	mu.mu.Lock()
	mu.setHolder(name)
	mu.Printf("%s receives lock", name)

	return mu
}

func (mu *Mutex) Unlock() {
	mu.Printf("releases lock")
	mu.setHolder("")
	mu.mu.Unlock()
}

func (mu *Mutex) Printf(s string, args ...any) {
	if trace == nil {
		return
	}
	mu.holderMu.Lock()
	holder := mu.holder
	mu.holderMu.Unlock()

	trace.Debug(strings.TrimSpace(fmt.Sprintf(s, args...)), "mutex", mu.name, "holder", holder)
}

func (mu *Mutex) setHolder(name string) {
	mu.holderMu.Lock()
	defer mu.holderMu.Unlock()
	mu.holder = name
}
