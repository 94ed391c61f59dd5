package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	meta "github.com/amonks/rulefind"
	"github.com/amonks/rulefind/internal/safebuffer"
	"github.com/amonks/rulefind/internal/watcher"
	"github.com/amonks/rulefind/projectfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func copyDemo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	entries, err := os.ReadDir("../../projectfile/testdata/demo")
	require.NoError(t, err)
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join("../../projectfile/testdata/demo", entry.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, entry.Name()), data, 0o644))
	}
	return dir
}

func runWith(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(""), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestFind(t *testing.T) {
	dir := copyDemo(t)

	t.Run("current editor", func(t *testing.T) {
		code, out, _ := runWith(t, "-dir", dir, "friend")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "greetings  condition          is_friend")
		assert.NotContains(t, out, "farewells")
		assert.Contains(t, out, "3 matches in 1 editor (1 editor searched)")
	})

	t.Run("whole project", func(t *testing.T) {
		code, out, _ := runWith(t, "-dir", dir, "-all", "friend")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "farewells  output             goodbye, friend")
		assert.Contains(t, out, "4 matches in 2 editors (2 editors searched)")
	})

	t.Run("focus another editor", func(t *testing.T) {
		code, out, _ := runWith(t, "-dir", dir, "-editor", "farewells", "friend")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "1 match in 1 editor (1 editor searched)")
	})

	t.Run("include", func(t *testing.T) {
		code, out, _ := runWith(t, "-dir", dir, "-all", "-include", "noreply", "friend")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "invalid            sorry friend?")
		assert.Contains(t, out, "1 match in 1 editor (2 editors searched)")
	})

	t.Run("no matches", func(t *testing.T) {
		code, out, _ := runWith(t, "-dir", dir, "-all", "zebra")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "0 matches (2 editors searched)")
	})
}

func TestReplace(t *testing.T) {
	t.Run("dry run", func(t *testing.T) {
		dir := copyDemo(t)
		before, err := os.ReadFile(filepath.Join(dir, "greetings.toml"))
		require.NoError(t, err)

		code, out, _ := runWith(t, "-dir", dir, "-all", "-replace", "pal", "friend")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "replaced 4 matches in 2 editors (2 editors searched)")
		assert.Contains(t, out, "dry run")

		after, err := os.ReadFile(filepath.Join(dir, "greetings.toml"))
		require.NoError(t, err)
		assert.Equal(t, string(before), string(after))
	})

	t.Run("write", func(t *testing.T) {
		dir := copyDemo(t)
		code, out, _ := runWith(t, "-dir", dir, "-all", "-replace", "pal", "-write", "friend")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "saved ")

		project, err := projectfile.Load(dir)
		require.NoError(t, err)
		greetings := project.Tree.Editor("greetings")
		assert.Equal(t, "is_pal", greetings.Rules[0].ResponsesFor[0].Conditionals[0].Condition.Expression)
		farewells := project.Tree.Editor("farewells")
		assert.Equal(t, "goodbye, pal", farewells.Rules[0].Outputs[0].Expression)
	})

	t.Run("regex", func(t *testing.T) {
		dir := copyDemo(t)
		code, _, _ := runWith(t, "-dir", dir, "-regex", "-replace", "$1!", "-write", `(hey|hello) \w+`)
		assert.Equal(t, 0, code)

		project, err := projectfile.Load(dir)
		require.NoError(t, err)
		greetings := project.Tree.Editor("greetings")
		assert.Equal(t, "hey!", greetings.Rules[0].ResponsesFor[0].Conditionals[0].Outputs[0].Expression)
		assert.Equal(t, "hello!", greetings.Rules[0].Outputs[0].Expression)
	})

	t.Run("nothing to replace", func(t *testing.T) {
		dir := copyDemo(t)
		code, out, _ := runWith(t, "-dir", dir, "-replace", "x", "-write", "zebra")
		assert.Equal(t, 0, code)
		assert.NotContains(t, out, "saved")
	})
}

func TestErrors(t *testing.T) {
	dir := copyDemo(t)
	for _, tc := range []struct {
		name   string
		args   []string
		expect string
	}{
		{"scope", []string{"-scope", "everywhere", "x"}, "unknown scope 'everywhere'"},
		{"include", []string{"-include", "bogus", "x"}, "unknown category 'bogus'"},
		{"ui", []string{"-ui", "gui", "x"}, "Invalid value for flag -ui"},
		{"watch and write", []string{"-watch", "-write", "x"}, "-watch can't be combined with -write"},
		{"missing editor", []string{"-editor", "nope", "x"}, "editor 'nope' doesn't exist"},
		{"missing open editor", []string{"-open", "greetings,nope", "x"}, "editor 'nope' doesn't exist"},
		{"no project", []string{"-dir", filepath.Join(dir, "missing"), "x"}, "Error loading project"},
		{"no text", []string{"-ui", "printer"}, "USAGE"},
		{"bad flag", []string{"-bogus"}, "flag provided but not defined"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"-dir", dir}, tc.args...)
			code, _, stderr := runWith(t, args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tc.expect)
		})
	}

	t.Run("bad pattern", func(t *testing.T) {
		code, out, _ := runWith(t, "-dir", dir, "-regex", "(")
		assert.Equal(t, 1, code)
		assert.Contains(t, out, "invalid pattern '('")
	})
}

func TestInfo(t *testing.T) {
	t.Run("version", func(t *testing.T) {
		code, out, _ := runWith(t, "-version")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "Version: "+meta.Version)
	})

	t.Run("help", func(t *testing.T) {
		code, out, _ := runWith(t, "-help")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "USAGE")
		assert.Contains(t, out, "-scope=string (default \"current\")")
		assert.Contains(t, out, "-replace=string\n")
	})
}

func TestLogFile(t *testing.T) {
	dir := copyDemo(t)
	logFile := filepath.Join(t.TempDir(), "rulefind.log")
	code, _, stderr := runWith(t, "-dir", dir, "-v", "-log", logFile, "friend")
	assert.Equal(t, 0, code)
	assert.Empty(t, stderr)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "search finished")
}

func TestWatch(t *testing.T) {
	watcher.Mock()
	defer watcher.Unmock()

	dir := copyDemo(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stdout, stderr := safebuffer.New(), safebuffer.New()
	exited := make(chan int)
	go func() {
		exited <- run(ctx, []string{"-dir", dir, "-watch", "weather"}, strings.NewReader(""), stdout, stderr)
	}()

	require.Eventually(t, func() bool {
		return watcher.Watching(dir) && stdout.Contains("watching "+dir+" for changes")
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, stdout.String(), "2 matches in 1 editor (1 editor searched)")

	path := filepath.Join(dir, "greetings.toml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data = bytes.Replace(data, []byte(`"hello there"`), []byte(`"nice weather"`), 1)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	watcher.Dispatch(dir, "greetings.toml")

	require.Eventually(t, func() bool {
		return stdout.Contains("3 matches in 1 editor (1 editor searched)")
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, stdout.String(), "greetings.toml changed")

	cancel()
	select {
	case code := <-exited:
		assert.Equal(t, 0, code)
	case <-time.After(time.Second):
		t.Fatal("run didn't exit")
	}
	assert.False(t, watcher.Watching(dir))
}
