package tui

import (
	"context"
	"io"
	"log/slog"

	"github.com/amonks/rulefind/finder"
	"github.com/amonks/rulefind/printer"
	"github.com/amonks/rulefind/projectfile"
	"github.com/amonks/rulefind/undo"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

type Model struct {
	ctx     context.Context
	project *projectfile.Project
	ctrl    *finder.Controller
	journal *undo.Journal
	logger  *slog.Logger
	zones   *zone.Manager

	// options mirrors the controller's, for drawing.
	options finder.Options

	focus   focusArea
	find    textinput.Model
	replace textinput.Model
	results viewport.Model
	help    viewport.Model
	spinner spinner.Model

	current  *finder.Match
	rows     []row
	selected int

	// focusedRow is the result row current came from, or -1 if current
	// was presented by an interactive search.
	focusedRow int

	// busy is set while an operation runs in a tea.Cmd; bulk is set if
	// that operation is FindAll or ReplaceAll.
	busy, bulk bool

	pos, total    int
	status        string
	statusIsError bool
	width, height int
	quitKey       string
	lastKey       string
	gotSize       bool
}

// A row is one line of the results list.
type row struct {
	match    finder.Match
	replaced *finder.Replacement
}

type focusArea int

const (
	focusFind focusArea = iota
	focusReplace
	focusResults
	focusHelp
)

func newModel(ctx context.Context, cfg Config, dispatch func(func())) *Model {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := &Model{
		ctx:     ctx,
		project: cfg.Project,
		journal: undo.NewJournal(),
		logger:  logger,
		zones:   zone.New(),
		options: cfg.Options,
		results: viewport.New(0, 0),
		help:    viewport.New(0, 0),

		focusedRow: -1,
	}

	m.find = newInput("find › ", "search text", cfg.Options.Text)
	m.replace = newInput("repl › ", "replacement", cfg.Options.Replacement)
	m.find.Focus()

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	m.ctrl = finder.New(cfg.Project.Tree, finder.Config{
		Presenter: m,
		Undo:      m.journal,
		Dispatch:  dispatch,
		Logger:    logger,
	})
	m.ctrl.SetOptions(cfg.Options)
	return m
}

func newInput(prompt, placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.SetValue(value)
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

func (m *Model) Init() tea.Cmd {
	return nil
}

var _ finder.Presenter = &Model{}

// Present runs on the program's goroutine, through the dispatcher, as do
// the other Presenter methods.
func (m *Model) Present(match finder.Match) {
	m.current, m.focusedRow = &match, -1
	m.setStatus("", false)
}

func (m *Model) Replaced(r finder.Replacement) {
	if i := m.focusedRow; !m.bulk && i >= 0 && i < len(m.rows) && m.rows[i].match.Leaf == r.Leaf {
		m.rows[i].replaced = &r
	} else {
		m.rows = append(m.rows, row{match: r.Match, replaced: &r})
	}
	if !m.bulk {
		match := r.Match
		match.Selection = r.Inserted()
		m.current = &match
	}
}

func (m *Model) Progress(pos, total int) {
	m.pos, m.total = pos, total
}

func (m *Model) Finished(sum finder.Summary) {
	if sum.Mode == finder.ModeFindAll {
		m.rows = nil
		for _, g := range sum.Results.Groups() {
			for _, match := range g.Matches {
				m.rows = append(m.rows, row{match: match})
			}
		}
		m.selected, m.focusedRow = 0, -1
	}
	if sum.Mode == finder.ModeFind && !sum.Canceled {
		m.current = nil
	}
	m.setStatus(printer.Describe(sum), sum.Err != nil)
}

func (m *Model) Report(err error) {
	m.setStatus(err.Error(), true)
}

func (m *Model) setStatus(status string, isError bool) {
	m.status, m.statusIsError = status, isError
}
