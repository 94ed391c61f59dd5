package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"
)

var OriginalWatch = Watch

var (
	mocks   map[string]chan []Event
	mocksmu sync.Mutex
)

// Mock replaces Watch with a fake whose events come from Dispatch.
func Mock() {
	mocksmu.Lock()
	defer mocksmu.Unlock()

	mocks = map[string]chan []Event{}
	Watch = func(dir string, filter *Filter, wait time.Duration) (<-chan []Event, func(), error) {
		mocksmu.Lock()
		defer mocksmu.Unlock()

		dir = filepath.Clean(dir)
		mock, hasMock := mocks[dir]
		if !hasMock {
			mock = make(chan []Event)
			mocks[dir] = mock
		}
		var once sync.Once
		stop := func() {
			once.Do(func() {
				mocksmu.Lock()
				defer mocksmu.Unlock()
				delete(mocks, dir)
				close(mock)
			})
		}
		return mock, stop, nil
	}
}

// Dispatch sends one batch of changes to the mocked watch on dir.
func Dispatch(dir string, paths ...string) {
	mocksmu.Lock()
	mock, hasMock := mocks[filepath.Clean(dir)]
	mocksmu.Unlock()
	if !hasMock {
		panic(fmt.Errorf("can't dispatch on unwatched dir '%s'", dir))
	}

	var batch []Event
	for _, path := range paths {
		batch = append(batch, Event{Path: path, Op: "Write"})
	}
	mock <- batch
}

// Watching reports whether a mocked watch on dir is live.
func Watching(dir string) bool {
	mocksmu.Lock()
	defer mocksmu.Unlock()
	_, ok := mocks[filepath.Clean(dir)]
	return ok
}

func Unmock() {
	mocksmu.Lock()
	defer mocksmu.Unlock()
	mocks = nil
	Watch = OriginalWatch
}
