package seq

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertContainsSequence asserts that seq appears in items, in order, and that
// none of the items named in seq show up anywhere else.
func AssertContainsSequence[T comparable](t *testing.T, items []T, seq ...T) bool {
	t.Helper()
	return assert.NoError(t, ContainsSequence(items, seq...))
}

// AssertStringContainsSequence is AssertContainsSequence over the lines of a
// string.
func AssertStringContainsSequence(t *testing.T, str string, seq ...string) bool {
	t.Helper()
	return assert.NoError(t, ContainsSequence(strings.Split(str, "\n"), seq...))
}

func ContainsSequence[T comparable](items []T, seq ...T) error {
	asserted := map[T]struct{}{}
	for _, s := range seq {
		asserted[s] = struct{}{}
	}

	index := 0
seqloop:
	for seqIndex, expect := range seq {
		for ; index < len(items); index++ {
			item := items[index]
			if item == expect {
				index++
				continue seqloop
			} else if _, isAsserted := asserted[item]; isAsserted {
				return fmt.Errorf(strings.Join([]string{
					"Found sequenced item outside of the sequence.",
					"Found: '%v'",
					"Looking for sequence item %d: '%v'",
					"",
					"Sequence:",
					"%s",
					"",
					"Actual:",
					"%s",
				}, "\n"),
					item,
					seqIndex+1, expect,
					lines(seq),
					lines(items),
				)
			}
		}
		return fmt.Errorf(strings.Join([]string{
			"Not found in sequence.",
			"Item %d: '%v'",
			"",
			"Sequence:",
			"%s",
			"",
			"Actual:",
			"%s",
		}, "\n"),
			seqIndex+1, expect,
			lines(seq),
			lines(items),
		)
	}

	// got through the seq; now make sure asserted items don't recur.
	for ; index < len(items); index++ {
		item := items[index]
		if _, isAsserted := asserted[item]; isAsserted {
			return fmt.Errorf(strings.Join([]string{
				"Found outside of sequence.",
				"Found: '%v'",
				"Entire sequence already consumed.",
				"",
				"Sequence:",
				"%s",
				"",
				"Actual:",
				"%s",
			}, "\n"),
				item,
				lines(seq),
				lines(items),
			)
		}
	}
	return nil
}

func lines[T any](items []T) string {
	var b strings.Builder
	for i, item := range items {
		if i != 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%v", item)
	}
	return b.String()
}
