package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := titleStyle.Render("File Manager") + "  " + dirStyle.Render(m.app.session.Dir())
	if m.app.session.Stale() {
		header += "  " + staleStyle.Render("(folder no longer exists, use 12 to go up)")
	}

	right := m.output.View()
	if m.pending != nil {
		label := m.pending.prompts[len(m.args)]
		right = lipgloss.JoinVertical(lipgloss.Left, right, entryStyle.Render(strings.TrimSpace(label)), m.input.View())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.menu.View(),
		paneStyle.Width(max(10, m.width-menuWidth-4)).Render(right),
	)

	hintText := "↑/↓ select | Enter run | PgUp/PgDn scroll | q quit"
	if m.pending != nil {
		hintText = "Enter confirm | Esc cancel | Ctrl+C quit"
	}
	hint := lipgloss.PlaceHorizontal(m.width, lipgloss.Left, hintStyle.Render(hintText))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, hint)
}

var _ tea.Model = tuiModel{}
