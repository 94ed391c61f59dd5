package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/amonks/rulefind/finder"
	"github.com/amonks/rulefind/internal/help"
	"github.com/amonks/rulefind/scope"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.syncResults()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {

	case msgDispatch:
		msg.fn()
		close(msg.done)
		return nil

	case msgDone:
		m.busy, m.bulk = false, false
		switch {
		case errors.Is(msg.err, finder.ErrBusy):
			m.setStatus(msg.err.Error(), true)
		case msg.err != nil && m.status == "" && !errors.Is(msg.err, context.Canceled):
			m.setStatus(fmt.Sprintf("%s: %s", msg.op, msg.err), true)
		}
		return nil

	case msgUndo:
		changes := m.journal.Undo()
		if len(changes) == 0 {
			m.setStatus("nothing to undo", false)
			return nil
		}
		m.current, m.focusedRow = nil, -1
		m.setStatus(fmt.Sprintf("undid %d %s", len(changes), pluralize(len(changes), "replacement", "replacements")), false)
		return nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.gotSize = true
		m.resize()
		return nil

	case spinner.TickMsg:
		if !m.busy {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.focus == focusHelp {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return cmd
	}
	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
		for i := range m.rows {
			if m.zones.Get(rowZone(i)).InBounds(msg) {
				m.focus = focusResults
				m.selected = i
				m.gotoRow(i)
				return m.focusInputs()
			}
		}
		return nil
	}
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if !m.gotSize {
		return nil
	}

	key := msg.String()
	lastKey := m.lastKey
	m.lastKey = key

	if key == "ctrl+c" {
		return m.handleQuitAttempt(key)
	}
	if m.quitKey != "" && m.quitKey != key {
		m.quitKey = ""
	}

	if m.focus == focusHelp {
		switch key {
		case "?", "esc", "q", "f1":
			m.focus = focusResults
			return nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return cmd
	}

	// Keys that work from any pane.
	switch key {
	case "f1":
		m.focus = focusHelp
		return m.focusInputs()
	case "tab":
		m.focus = (m.focus + 1) % focusHelp
		return m.focusInputs()
	case "shift+tab":
		m.focus = (m.focus + focusHelp - 1) % focusHelp
		return m.focusInputs()
	case "ctrl+n":
		return m.run("find next", m.ctrl.FindNext)
	case "ctrl+r":
		return m.replaceCurrent()
	case "ctrl+f":
		return m.runBulk("find all", m.ctrl.FindAll)
	case "ctrl+a":
		return m.runBulk("replace all", m.ctrl.ReplaceAll)
	case "ctrl+z":
		ctrl := m.ctrl
		return func() tea.Msg {
			ctrl.Cancel()
			return msgUndo{}
		}
	case "ctrl+s":
		m.save()
		return nil
	case "alt+c":
		m.options.MatchCase = !m.options.MatchCase
		return m.setOptions()
	case "alt+r":
		m.options.Regex = !m.options.Regex
		return m.setOptions()
	case "alt+s":
		m.options.Scope = nextScope(m.options.Scope)
		return m.setOptions()
	}

	switch m.focus {
	case focusFind, focusReplace:
		return m.handleInputKey(msg)
	case focusResults:
		return m.handleResultsKey(key, lastKey)
	}
	return nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		if m.focus == focusReplace {
			return m.replaceCurrent()
		}
		return m.run("find next", m.ctrl.FindNext)
	case "esc":
		return m.cancel()
	}

	var cmd tea.Cmd
	if m.focus == focusFind {
		m.find, cmd = m.find.Update(msg)
		if m.find.Value() == m.options.Text {
			return cmd
		}
		m.options.Text = m.find.Value()
	} else {
		m.replace, cmd = m.replace.Update(msg)
		if m.replace.Value() == m.options.Replacement {
			return cmd
		}
		m.options.Replacement = m.replace.Value()
	}
	return tea.Batch(cmd, m.setOptions())
}

func (m *Model) handleResultsKey(key, lastKey string) tea.Cmd {
	switch key {
	case "?":
		m.focus = focusHelp
		return nil
	case "esc", "q":
		return m.handleQuitAttempt(key)
	case "enter", "l":
		if m.selected < len(m.rows) {
			m.gotoRow(m.selected)
		}
		return nil
	case "k", "up":
		m.moveSelection(-1)
	case "j", "down":
		m.moveSelection(1)
	case "g":
		if lastKey == "g" {
			m.moveSelection(-len(m.rows))
		}
	case "G":
		m.moveSelection(len(m.rows))
	case "pgup":
		m.moveSelection(-max(1, m.results.Height-1))
	case "pgdown":
		m.moveSelection(max(1, m.results.Height-1))
	}
	return nil
}

func (m *Model) handleQuitAttempt(key string) tea.Cmd {
	if m.quitKey == key {
		return tea.Quit
	}
	m.quitKey = key
	return nil
}

// run starts a controller operation in a tea.Cmd.
func (m *Model) run(op string, fn func(context.Context) error) tea.Cmd {
	if m.busy {
		m.setStatus(finder.ErrBusy.Error(), true)
		return nil
	}
	m.busy = true
	m.setStatus("", false)
	ctx := m.ctx
	return tea.Batch(
		func() tea.Msg { return msgDone{op: op, err: fn(ctx)} },
		m.spinner.Tick,
	)
}

// runBulk is run for operations that fill the results list.
func (m *Model) runBulk(op string, fn func(context.Context) error) tea.Cmd {
	cmd := m.run(op, fn)
	if cmd != nil {
		m.rows, m.current, m.selected = nil, nil, 0
		m.focusedRow = -1
		m.bulk = true
	}
	return cmd
}

func (m *Model) cancel() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.Cancel()
		return nil
	}
}

func (m *Model) setOptions() tea.Cmd {
	ctrl, o := m.ctrl, m.options
	m.setStatus("", false)
	return func() tea.Msg {
		return msgDone{op: "options", err: ctrl.SetOptions(o)}
	}
}

func (m *Model) focusInputs() tea.Cmd {
	m.find.Blur()
	m.replace.Blur()
	switch m.focus {
	case focusFind:
		return m.find.Focus()
	case focusReplace:
		return m.replace.Focus()
	}
	return nil
}

func (m *Model) moveSelection(by int) {
	if len(m.rows) == 0 {
		return
	}
	m.selected = max(0, min(len(m.rows)-1, m.selected+by))
	if m.selected < m.results.YOffset {
		m.results.SetYOffset(m.selected)
	} else if m.selected >= m.results.YOffset+m.results.Height {
		m.results.SetYOffset(m.selected - m.results.Height + 1)
	}
}

// gotoRow focuses a result's editor and selects its text.
func (m *Model) gotoRow(i int) {
	r := m.rows[i]
	match := r.match
	if r.replaced != nil {
		match.Selection = r.replaced.Inserted()
	}
	match.Leaf.Select(match.Selection)
	m.project.Tree.SetCurrent(match.Editor)
	m.current, m.focusedRow = &match, i
}

// replaceCurrent replaces the match on screen: the one an interactive
// search presented, or the focused result row's.
func (m *Model) replaceCurrent() tea.Cmd {
	if m.focusedRow < 0 || m.current == nil {
		return m.run("replace", m.ctrl.Replace)
	}
	match, ctrl := *m.current, m.ctrl
	return m.run("replace", func(ctx context.Context) error {
		return ctrl.ReplaceMatch(ctx, match)
	})
}

func (m *Model) save() {
	editors := m.project.Tree.Editors()
	if err := m.project.Save(editors...); err != nil {
		m.logger.Error("saving project", "error", err)
		m.setStatus("saving: "+err.Error(), true)
		return
	}
	m.logger.Info("saved project", "editors", len(editors))
	m.setStatus(fmt.Sprintf("saved %d %s", len(editors), pluralize(len(editors), "editor", "editors")), false)
}

func (m *Model) resize() {
	l := m.layout()
	m.find.Width = max(0, m.width-len(m.find.Prompt)-2)
	m.replace.Width = m.find.Width
	m.results.Width, m.results.Height = l.width, l.resultsHeight
	m.help.Width, m.help.Height = m.width, m.height
	m.help.SetContent(helpMenu.Render(help.Colored))
}

func nextScope(k scope.Kind) scope.Kind {
	switch k {
	case scope.KindCurrent:
		return scope.KindOpen
	case scope.KindOpen:
		return scope.KindProject
	}
	return scope.KindCurrent
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
