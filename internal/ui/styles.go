package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title       lipgloss.Style
	Clock       lipgloss.Style
	ActiveLine  lipgloss.Style
	ContextLine lipgloss.Style
	Help        lipgloss.Style
	ErrorText   lipgloss.Style
}

func DefaultStyles() Styles {
	s := Styles{}
	s.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	s.Clock = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	s.ActiveLine = lipgloss.NewStyle().Bold(true)
	s.ContextLine = lipgloss.NewStyle().Faint(true)
	s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	s.ErrorText = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF476F"))
	return s
}
