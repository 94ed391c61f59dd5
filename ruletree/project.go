package ruletree

import (
	"github.com/amonks/rulefind/internal/mutex"
	"github.com/google/uuid"
)

// A Project is the workspace a search runs in: every text-pattern editor,
// the list of open documents, and the editor that currently has focus.
//
// A Project is safe to access concurrently from multiple goroutines, but the
// editors it holds are not: mutate them from one goroutine at a time.
type Project struct {
	Name string

	mu      *mutex.Mutex
	editors []*Editor
	open    []*Editor
	current *Editor
	index   map[uuid.UUID]*Pattern
}

// NewProject creates a Project holding the given editors. The editors are
// linked (see [Editor.Link]) and indexed. No editor is open.
func NewProject(name string, editors ...*Editor) *Project {
	p := &Project{
		Name:  name,
		mu:    mutex.New("project"),
		index: map[uuid.UUID]*Pattern{},
	}
	for _, e := range editors {
		p.AddEditor(e)
	}
	return p
}

// AddEditor links and indexes an editor and appends it to the project.
func (p *Project) AddEditor(e *Editor) {
	defer p.mu.Lock("AddEditor").Unlock()

	e.Link()
	p.editors = append(p.editors, e)
	p.indexEditor(e)
}

// Reindex rebuilds the leaf index. Call it after adding leaves to an editor
// that's already in the project.
func (p *Project) Reindex() {
	defer p.mu.Lock("Reindex").Unlock()

	p.index = map[uuid.UUID]*Pattern{}
	for _, e := range p.editors {
		e.Link()
		p.indexEditor(e)
	}
}

func (p *Project) indexEditor(e *Editor) {
	e.Walk(func(leaf *Pattern, _ any) { p.index[leaf.ID] = leaf })
}

// Leaf resolves a leaf identifier.
func (p *Project) Leaf(id uuid.UUID) (*Pattern, bool) {
	defer p.mu.Lock("Leaf").Unlock()

	leaf, ok := p.index[id]
	return leaf, ok
}

// Editors returns every editor in the project, open or not.
func (p *Project) Editors() []*Editor {
	defer p.mu.Lock("Editors").Unlock()

	return append([]*Editor{}, p.editors...)
}

// Editor returns the editor with the given name, or nil.
func (p *Project) Editor(name string) *Editor {
	defer p.mu.Lock("Editor").Unlock()

	for _, e := range p.editors {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Current returns the focused editor, which may be nil.
func (p *Project) Current() *Editor {
	defer p.mu.Lock("Current").Unlock()

	return p.current
}

// SetCurrent focuses an editor, opening it as a document if it isn't open
// already.
func (p *Project) SetCurrent(e *Editor) {
	p.AddOpenDocument(e)

	defer p.mu.Lock("SetCurrent").Unlock()
	p.current = e
}

// OpenDocuments returns the open documents, in the order they were opened.
func (p *Project) OpenDocuments() []*Editor {
	defer p.mu.Lock("OpenDocuments").Unlock()

	return append([]*Editor{}, p.open...)
}

// AddOpenDocument opens an editor as a document. Opening an already-open
// document does nothing.
func (p *Project) AddOpenDocument(e *Editor) {
	defer p.mu.Lock("AddOpenDocument").Unlock()

	for _, o := range p.open {
		if o == e {
			return
		}
	}
	e.SetOpen(true)
	p.open = append(p.open, e)
}

// CloseDocument closes an open document.
func (p *Project) CloseDocument(e *Editor) {
	defer p.mu.Lock("CloseDocument").Unlock()

	for i, o := range p.open {
		if o == e {
			p.open = append(p.open[:i:i], p.open[i+1:]...)
			e.SetOpen(false)
			break
		}
	}
	if p.current == e {
		p.current = nil
	}
}

// IsOpenDocument reports whether the editor is in the open-documents list.
func (p *Project) IsOpenDocument(e *Editor) bool {
	defer p.mu.Lock("IsOpenDocument").Unlock()

	for _, o := range p.open {
		if o == e {
			return true
		}
	}
	return false
}
