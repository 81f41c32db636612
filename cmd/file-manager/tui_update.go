package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mainbong/file_manager/internal/terminal"
)

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.pending != nil {
			return m.handlePromptKey(msg)
		}
		if handled, cmd := m.handleViewportKey(msg); handled {
			return m, cmd
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "enter":
			item, ok := m.menu.SelectedItem().(menuItem)
			if !ok {
				return m, nil
			}
			return m.start(item.cmd)
		}
	}

	var cmd tea.Cmd
	if m.pending != nil {
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

// start runs c directly or begins collecting its arguments.
func (m tuiModel) start(c command) (tuiModel, tea.Cmd) {
	if c.exit {
		return m, tea.Quit
	}
	if len(c.prompts) == 0 {
		m.run(c, nil)
		return m, nil
	}

	m.pending = &c
	m.args = make([]string, 0, len(c.prompts))
	m.input.Placeholder = c.prompts[0]
	m.input.SetValue("")
	return m, m.input.Focus()
}

func (m tuiModel) handlePromptKey(msg tea.KeyMsg) (tuiModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.cancelPrompt()
		return m, nil
	case tea.KeyEnter:
		m.args = append(m.args, m.input.Value())
		m.input.SetValue("")
		if len(m.args) < len(m.pending.prompts) {
			m.input.Placeholder = m.pending.prompts[len(m.args)]
			return m, nil
		}
		c, args := *m.pending, m.args
		m.cancelPrompt()
		m.run(c, args)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) cancelPrompt() {
	m.pending = nil
	m.args = nil
	m.input.SetValue("")
	m.input.Placeholder = ""
	m.input.Blur()
}

func (m *tuiModel) run(c command, args []string) {
	outcome, entries := m.app.execute(c, args)
	dir := m.app.session.Dir()
	m.followOutput = true
	m.appendOutput(func(r *terminal.Renderer) {
		if c.listing && outcome.OK() {
			r.Listing(dir, entries)
			return
		}
		r.Outcome(outcome)
	})
}
