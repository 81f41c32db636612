package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mainbong/file_manager/internal/terminal"
)

const menuWidth = 30

// menuItem adapts a command to the bubbles list.
type menuItem struct {
	cmd command
}

func (i menuItem) Title() string       { return i.cmd.key + ". " + i.cmd.label }
func (i menuItem) Description() string { return strings.TrimSpace(strings.Join(i.cmd.prompts, " / ")) }
func (i menuItem) FilterValue() string { return i.cmd.label }

type tuiModel struct {
	app *app

	menu    list.Model
	input   textinput.Model
	output  viewport.Model
	entries []string

	// pending is the command whose arguments are being collected.
	pending      *command
	args         []string
	followOutput bool

	width  int
	height int
}

func runTUI(a *app) error {
	program := tea.NewProgram(newTUIModel(a), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func newTUIModel(a *app) tuiModel {
	items := make([]list.Item, 0, len(commands))
	for _, c := range commands {
		items = append(items, menuItem{cmd: c})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	menu := list.New(items, delegate, menuWidth, 20)
	menu.Title = "Commands"
	menu.Styles.Title = titleStyle
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	menu.SetShowHelp(false)
	menu.KeyMap.Quit.SetEnabled(false)

	input := textinput.New()
	input.Prompt = "> "
	input.PromptStyle = promptStyle
	input.TextStyle = inputTextStyle
	input.PlaceholderStyle = placeholderStyle
	input.CharLimit = 0

	return tuiModel{
		app:          a,
		menu:         menu,
		input:        input,
		output:       viewport.New(0, 0),
		followOutput: true,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) resize() {
	bodyHeight := max(3, m.height-4)
	m.menu.SetSize(menuWidth, bodyHeight)
	m.input.Width = max(10, m.width-menuWidth-8)
	m.output.Width = max(10, m.width-menuWidth-4)
	m.output.Height = max(1, bodyHeight-2)
	m.refreshOutput()
}

// appendOutput adds a rendered block to the output pane.
func (m *tuiModel) appendOutput(render func(r *terminal.Renderer)) {
	var b strings.Builder
	render(terminal.NewRenderer(&b))
	m.entries = append(m.entries, strings.TrimRight(b.String(), "\n"))
	m.refreshOutput()
}

func (m *tuiModel) refreshOutput() {
	m.output.SetContent(strings.Join(m.entries, "\n\n"))
	if m.followOutput {
		m.output.GotoBottom()
	}
}

func (m *tuiModel) handleViewportKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		m.followOutput = m.output.AtBottom()
		return true, cmd
	case "home":
		m.output.GotoTop()
		m.followOutput = false
		return true, nil
	case "end":
		m.output.GotoBottom()
		m.followOutput = true
		return true, nil
	default:
		return false, nil
	}
}
