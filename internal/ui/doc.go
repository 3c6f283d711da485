// Package ui provides the colour themes and lipgloss styles shared by the
// CLI presenters. Colours are disabled by -no-color or NO_COLOR.
package ui
