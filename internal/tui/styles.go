package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/octronic/dreamtool/internal/alerts"
)

var (
	crumbStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	crumbActiveStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	groupStyle       = lipgloss.NewStyle().Bold(true)
	modifiedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2)

	alertStyles = map[alerts.Kind]lipgloss.Style{
		alerts.Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		alerts.Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		alerts.Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		alerts.Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)
