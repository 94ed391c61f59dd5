package scope

import (
	"fmt"
	"strings"
)

// Kind is the set of editors a search covers.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type Kind -trimprefix Kind
type Kind int

const (
	kindInvalid Kind = iota

	// KindCurrent searches the focused editor.
	KindCurrent

	// KindOpen searches every open document, in the order they were
	// opened.
	KindOpen

	// KindProject searches every editor in the project, open or not.
	KindProject
)

// ParseKind reads a kind as written on the command line: "current", "open",
// or "project". "all" is accepted for "project".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "current":
		return KindCurrent, nil
	case "open":
		return KindOpen, nil
	case "project", "all":
		return KindProject, nil
	}
	return kindInvalid, fmt.Errorf("unknown scope '%s'; legal values are current, open, project", s)
}
