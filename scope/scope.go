// Package scope decides which editors a search walks, and in what order.
package scope

import (
	"fmt"

	"github.com/amonks/rulefind/ruletree"
)

// A Workspace is the host a search runs in. *ruletree.Project implements it.
type Workspace interface {
	Current() *ruletree.Editor
	SetCurrent(*ruletree.Editor)
	OpenDocuments() []*ruletree.Editor
	Editors() []*ruletree.Editor
	IsOpenDocument(*ruletree.Editor) bool
}

var _ Workspace = &ruletree.Project{}

// A Set is the ordered list of editors a search covers.
//
// For KindCurrent and KindProject the list is a snapshot taken by Resolve.
// For KindOpen it's the workspace's live open-document list: documents
// opened during the search are appended, and are searched too.
type Set struct {
	ws       Workspace
	kind     Kind
	snapshot []*ruletree.Editor
}

// Resolve builds the editor set for a kind. It panics if the kind is
// unknown.
func Resolve(ws Workspace, kind Kind) *Set {
	s := &Set{ws: ws, kind: kind}
	switch kind {
	case KindCurrent:
		if e := ws.Current(); e != nil {
			s.snapshot = []*ruletree.Editor{e}
		}
	case KindOpen:
	case KindProject:
		s.snapshot = ws.Editors()
	default:
		panic(fmt.Errorf("scope: invalid kind %s", kind))
	}
	return s
}

// Kind returns the kind the set was resolved for.
func (s *Set) Kind() Kind { return s.kind }

// Len returns the number of editors in the set.
func (s *Set) Len() int {
	if s.kind == KindOpen {
		return len(s.ws.OpenDocuments())
	}
	return len(s.snapshot)
}

// At returns the i'th editor, or nil if i is out of range.
func (s *Set) At(i int) *ruletree.Editor {
	editors := s.snapshot
	if s.kind == KindOpen {
		editors = s.ws.OpenDocuments()
	}
	if i < 0 || i >= len(editors) {
		return nil
	}
	return editors[i]
}

// Units returns the total used for progress reporting: the number of rules
// in the current editor, or the number of editors otherwise.
func (s *Set) Units() int {
	if s.kind == KindCurrent {
		if len(s.snapshot) == 0 {
			return 0
		}
		return len(s.snapshot[0].Rules)
	}
	return s.Len()
}

// Acquire returns the i'th editor, opened, along with a function that puts
// it back the way it was. An editor that was closed is closed again on
// release, unless it became an open document in the meantime.
//
// The release function may be called more than once.
func (s *Set) Acquire(i int) (*ruletree.Editor, func()) {
	e := s.At(i)
	if e == nil {
		return nil, func() {}
	}
	if e.IsOpen() {
		return e, func() {}
	}

	e.SetOpen(true)
	released := false
	return e, func() {
		if released {
			return
		}
		released = true
		if !s.ws.IsOpenDocument(e) {
			e.SetOpen(false)
		}
	}
}
