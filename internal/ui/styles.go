package ui

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles used for tables.
type Styles struct {
	Header lipgloss.Style
	Cell   lipgloss.Style
	Accent lipgloss.Style
	Good   lipgloss.Style
	Bad    lipgloss.Style
	Dim    lipgloss.Style
	Border lipgloss.Style
}

// CurrentStyles returns the styles matching the active theme. With colours
// disabled every style renders plain text.
func CurrentStyles() Styles {
	cell := lipgloss.NewStyle().Padding(0, 1)
	if !ColorsEnabled() {
		return Styles{Header: cell, Cell: cell, Accent: cell, Good: cell, Bad: cell, Dim: cell, Border: lipgloss.NewStyle()}
	}
	return Styles{
		Header: cell.Bold(true).Foreground(lipgloss.Color("39")),
		Cell:   cell,
		Accent: cell.Foreground(lipgloss.Color("213")),
		Good:   cell.Foreground(lipgloss.Color("82")),
		Bad:    cell.Foreground(lipgloss.Color("196")),
		Dim:    cell.Foreground(lipgloss.Color("245")),
		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}
