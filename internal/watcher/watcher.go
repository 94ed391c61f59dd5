// Package watcher reports changes to the editor files in a project
// directory.
package watcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/rjeczalik/notify"
)

// An Event is a change to one file. Path is relative to the watched
// directory.
type Event struct {
	Path string
	Op   string
}

// ProjectFiles matches every file a project can be loaded from.
var ProjectFiles = []string{"*.toml", "*.{yaml,yml}"}

// A Filter matches file names against a set of globs.
type Filter struct {
	globs []glob.Glob
}

// NewFilter compiles the given glob patterns. A filter without patterns
// matches everything.
func NewFilter(patterns ...string) (*Filter, error) {
	f := &Filter{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid watch pattern '%s': %w", pattern, err)
		}
		f.globs = append(f.globs, g)
	}
	return f, nil
}

// Match reports whether the path's base name matches any of the filter's
// patterns.
func (f *Filter) Match(path string) bool {
	if f == nil || len(f.globs) == 0 {
		return true
	}
	name := filepath.Base(path)
	for _, g := range f.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Watch watches dir (not recursively) and sends batches of changes to
// files matching the filter. Changes arriving within wait of the first
// change in a batch are delivered together, one event per path.
//
// The returned func stops the watch and closes the channel.
var Watch = func(dir string, filter *Filter, wait time.Duration) (<-chan []Event, func(), error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, nil, err
	}

	c := make(chan notify.EventInfo, 16)
	if err := notify.Watch(abs, c, notify.Create, notify.Write, notify.Remove, notify.Rename); err != nil {
		return nil, nil, fmt.Errorf("watching '%s': %w", dir, err)
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		for ev := range c {
			rel, err := filepath.Rel(abs, ev.Path())
			if err != nil || !filter.Match(rel) {
				continue
			}
			events <- Event{
				Path: rel,
				Op:   strings.TrimPrefix(ev.Event().String(), "notify."),
			}
		}
	}()

	var stopped bool
	stop := func() {
		if stopped {
			return
		}
		stopped = true
		notify.Stop(c)
		close(c)
	}

	return Debounce(wait, events), stop, nil
}

// Debounce groups events into batches. A batch is sent wait after its
// first event arrives; repeated events for one path keep only the latest.
// The returned channel closes once in closes and the final batch is
// delivered.
func Debounce(wait time.Duration, in <-chan Event) <-chan []Event {
	out := make(chan []Event)
	go func() {
		defer close(out)
		var (
			batch []Event
			timer <-chan time.Time
		)
		for {
			select {
			case ev, ok := <-in:
				if !ok {
					if len(batch) > 0 {
						out <- batch
					}
					return
				}
				batch = coalesce(batch, ev)
				if timer == nil {
					timer = time.After(wait)
				}
			case <-timer:
				out <- batch
				batch, timer = nil, nil
			}
		}
	}()
	return out
}

func coalesce(batch []Event, ev Event) []Event {
	for i := range batch {
		if batch[i].Path == ev.Path {
			batch[i].Op = ev.Op
			return batch
		}
	}
	return append(batch, ev)
}
