package watcher_test

import (
	"testing"
	"time"

	"github.com/amonks/rulefind/internal/watcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	f, err := watcher.NewFilter(watcher.ProjectFiles...)
	require.NoError(t, err)

	for path, expect := range map[string]bool{
		"greetings.toml":      true,
		"farewells.yaml":      true,
		"notes.yml":           true,
		"sub/dir/deep.toml":   true,
		"README.md":           false,
		".greetings.toml.swp": false,
	} {
		assert.Equal(t, expect, f.Match(path), path)
	}

	t.Run("empty filter matches everything", func(t *testing.T) {
		var nilFilter *watcher.Filter
		assert.True(t, nilFilter.Match("anything"))
		empty, err := watcher.NewFilter()
		require.NoError(t, err)
		assert.True(t, empty.Match("anything"))
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := watcher.NewFilter("[")
		assert.ErrorContains(t, err, "invalid watch pattern '['")
	})
}

func receive(t *testing.T, c <-chan []watcher.Event) []watcher.Event {
	t.Helper()
	select {
	case batch := <-c:
		return batch
	case <-time.After(time.Second):
		t.Fatal("no batch")
		return nil
	}
}

func TestDebounce(t *testing.T) {
	in := make(chan watcher.Event)
	out := watcher.Debounce(20*time.Millisecond, in)

	in <- watcher.Event{Path: "a.toml", Op: "Create"}
	in <- watcher.Event{Path: "b.yaml", Op: "Write"}
	in <- watcher.Event{Path: "a.toml", Op: "Write"}
	assert.Equal(t, []watcher.Event{
		{Path: "a.toml", Op: "Write"},
		{Path: "b.yaml", Op: "Write"},
	}, receive(t, out))

	in <- watcher.Event{Path: "c.toml", Op: "Remove"}
	close(in)
	assert.Equal(t, []watcher.Event{{Path: "c.toml", Op: "Remove"}}, receive(t, out))

	_, ok := <-out
	assert.False(t, ok)
}

func TestMock(t *testing.T) {
	watcher.Mock()
	defer watcher.Unmock()

	c, stop, err := watcher.Watch("project/", nil, time.Second)
	require.NoError(t, err)
	assert.True(t, watcher.Watching("project"))

	go watcher.Dispatch("project", "a.toml")
	assert.Equal(t, []watcher.Event{{Path: "a.toml", Op: "Write"}}, receive(t, c))

	stop()
	stop()
	assert.False(t, watcher.Watching("project"))
	assert.Panics(t, func() { watcher.Dispatch("project") })
}
