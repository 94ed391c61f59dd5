// Package projectfile loads projects from disk and saves them back.
//
// A project is a directory of editor files, one editor per file, plus an
// optional project.toml naming the project, listing the editor files, and
// saying which editors are open.
package projectfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/amonks/rulefind/ruletree"
)

// ManifestName is the name of the project file in a project directory.
const ManifestName = "project.toml"

// Manifest defines the type of project.toml files.
type Manifest struct {
	Name string `toml:"name"`

	// Editors lists editor files relative to the project directory. If
	// it's empty, every .toml, .yaml, and .yml file in the directory is an
	// editor file.
	Editors []string `toml:"editors"`

	// Open lists the names of open editors, in the order they were
	// opened.
	Open []string `toml:"open"`

	// Current names the focused editor. It's opened if it isn't listed in
	// Open.
	Current string `toml:"current"`
}

// A Project is a rule tree project loaded from a directory.
type Project struct {
	Dir      string
	Manifest Manifest
	Tree     *ruletree.Project

	paths map[*ruletree.Editor]string
}

// Load loads the project in dir.
func Load(dir string) (*Project, error) {
	m, err := loadManifest(dir)
	if err != nil {
		return nil, err
	}
	if m.Name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		m.Name = filepath.Base(abs)
	}

	files := m.Editors
	if len(files) == 0 {
		if files, err = editorFiles(dir); err != nil {
			return nil, err
		}
	}

	p := &Project{
		Dir:      dir,
		Manifest: m,
		Tree:     ruletree.NewProject(m.Name),
		paths:    map[*ruletree.Editor]string{},
	}
	for _, file := range files {
		path := filepath.Join(dir, file)
		e, err := LoadEditor(path)
		if err != nil {
			return nil, err
		}
		if p.Tree.Editor(e.Name) != nil {
			return nil, fmt.Errorf("editor '%s' in '%s' is defined twice", e.Name, path)
		}
		p.Tree.AddEditor(e)
		p.paths[e] = path
	}

	for _, name := range m.Open {
		e := p.Tree.Editor(name)
		if e == nil {
			return nil, fmt.Errorf("%s: open editor '%s' doesn't exist", ManifestName, name)
		}
		p.Tree.AddOpenDocument(e)
	}
	if m.Current != "" {
		e := p.Tree.Editor(m.Current)
		if e == nil {
			return nil, fmt.Errorf("%s: current editor '%s' doesn't exist", ManifestName, m.Current)
		}
		p.Tree.SetCurrent(e)
	}

	return p, nil
}

func loadManifest(dir string) (Manifest, error) {
	var m Manifest
	f, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	} else if err != nil {
		return m, err
	}
	if err := toml.Unmarshal(f, &m); err != nil {
		return m, fmt.Errorf("parsing %s: %w", ManifestName, err)
	}
	return m, nil
}

func editorFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == ManifestName {
			continue
		}
		if _, err := FormatOf(entry.Name()); err == nil {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Path returns the file an editor was loaded from.
func (p *Project) Path(e *ruletree.Editor) string {
	return p.paths[e]
}

// Save writes the given editors back to the files they were loaded from.
func (p *Project) Save(editors ...*ruletree.Editor) error {
	for _, e := range editors {
		path, ok := p.paths[e]
		if !ok {
			return fmt.Errorf("editor '%s' wasn't loaded from this project", e.Name)
		}
		if err := SaveEditor(path, e); err != nil {
			return err
		}
	}
	return nil
}

// Files returns the paths of every editor file, in load order.
func (p *Project) Files() []string {
	var files []string
	for _, e := range p.Tree.Editors() {
		files = append(files, p.paths[e])
	}
	return files
}
