package finder

import (
	"errors"
	"fmt"

	"github.com/amonks/rulefind/cursor"
	"github.com/amonks/rulefind/scope"
)

// Options are the search criteria.
type Options struct {
	Text        string
	Replacement string
	MatchCase   bool

	// Regex treats Text as a regular expression (RE2 syntax). Replacement
	// may then refer to submatches as $1 or ${name}.
	Regex bool

	Scope   scope.Kind
	Include cursor.Options
}

// DefaultOptions searches every leaf of the current editor, ignoring case.
func DefaultOptions() Options {
	return Options{Scope: scope.KindCurrent, Include: cursor.AllOptions()}
}

// sameCriteria reports whether two sets of options would find the same
// matches.
func (o Options) sameCriteria(other Options) bool {
	o.Replacement, other.Replacement = "", ""
	return o == other
}

// Mode is the kind of search a session runs.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type Mode -trimprefix Mode
type Mode int

const (
	modeInvalid Mode = iota

	// ModeFind presents one match at a time.
	ModeFind

	// ModeFindAll collects every match.
	ModeFindAll

	// ModeReplaceAll replaces every match as it's found.
	ModeReplaceAll
)

var (
	// ErrBusy is returned when an operation needs the session that's
	// running in another goroutine.
	ErrBusy = errors.New("a search is already running")
)

// A PatternError is a search text that isn't a valid regular expression.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern '%s': %s", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }
