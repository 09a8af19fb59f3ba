package ui

import "github.com/charmbracelet/lipgloss"

// palette is the TUI stylesheet.
type palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	dim   lipgloss.Style
	badge lipgloss.Style
}

var styles = palette{
	title: lipgloss.NewStyle().Foreground(lipgloss.Color("#E45858")).Bold(true).MarginBottom(1),
	ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
	err:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true),
	dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
	badge: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#E45858")).Padding(0, 1),
}
