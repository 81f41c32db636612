package main

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dirStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	staleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	hintStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	promptStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	inputTextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	paneStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238"))
	entryStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)
