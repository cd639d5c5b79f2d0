package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/robco-termlink/wastelandhub/internal/theme"
)

type styles struct {
	title   lipgloss.Style
	text    lipgloss.Style
	dim     lipgloss.Style
	button  lipgloss.Style
	focused lipgloss.Style
	alert   lipgloss.Style
	pane    lipgloss.Style
}

func newStyles(th theme.Theme) styles {
	fg := lipgloss.Color(th.Foreground)
	button := lipgloss.NewStyle().Foreground(fg).Padding(0, 1)
	return styles{
		title:   lipgloss.NewStyle().Foreground(lipgloss.Color(th.Accent)).Bold(true),
		text:    lipgloss.NewStyle().Foreground(fg),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(th.Dim)),
		button:  button,
		focused: button.Background(lipgloss.Color(th.Background)).Foreground(lipgloss.Color(th.Accent)).Bold(true),
		alert:   button.Foreground(lipgloss.Color(th.Alert)),
		pane: lipgloss.NewStyle().
			Foreground(fg).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(th.Dim)).
			Padding(0, 1),
	}
}

func (s styles) helpStyles() help.Styles {
	h := help.New().Styles
	h.ShortKey = s.text
	h.ShortDesc = s.dim
	h.ShortSeparator = s.dim
	return h
}
