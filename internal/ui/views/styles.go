package views

import (
	"github.com/Cyclone1070/codecollab/internal/config"
	"github.com/Cyclone1070/codecollab/internal/editor"
	"github.com/charmbracelet/lipgloss"
)

// Styles holds every style the views use. Build it with NewStyles whenever
// the theme changes.
type Styles struct {
	Primary lipgloss.Color
	Error   lipgloss.Color
	Success lipgloss.Color
	Muted   lipgloss.Color

	Text        lipgloss.Style
	Faint       lipgloss.Style
	Title       lipgloss.Style
	Selected    lipgloss.Style
	ErrorText   lipgloss.Style
	SuccessText lipgloss.Style
	Warning     lipgloss.Style

	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	ActivityOn  lipgloss.Style
	ActivityOff lipgloss.Style

	Pane        lipgloss.Style
	FocusedPane lipgloss.Style
	StatusBar   lipgloss.Style
	Popup       lipgloss.Style
}

// NewStyles derives styles from the configured colours and theme.
func NewStyles(ui config.UIConfig, theme editor.Theme) Styles {
	fg, bg, border := lipgloss.Color("252"), lipgloss.Color("235"), lipgloss.Color("238")
	if theme == editor.ThemeLight {
		fg, bg, border = lipgloss.Color("235"), lipgloss.Color("255"), lipgloss.Color("250")
	}
	s := Styles{
		Primary: lipgloss.Color(ui.ColorPrimary),
		Error:   lipgloss.Color(ui.ColorError),
		Success: lipgloss.Color(ui.ColorSuccess),
		Muted:   lipgloss.Color(ui.ColorMuted),
	}

	s.Text = lipgloss.NewStyle().Foreground(fg)
	s.Faint = lipgloss.NewStyle().Foreground(s.Muted)
	s.Title = lipgloss.NewStyle().Bold(true).Foreground(fg)
	s.Selected = lipgloss.NewStyle().Bold(true).Foreground(s.Primary)
	s.ErrorText = lipgloss.NewStyle().Foreground(s.Error)
	s.SuccessText = lipgloss.NewStyle().Foreground(s.Success)
	s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	s.ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(fg).Background(bg).Padding(0, 1).
		Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(s.Primary)
	s.InactiveTab = lipgloss.NewStyle().Foreground(s.Muted).Padding(0, 1).
		Border(lipgloss.HiddenBorder(), false, false, true, false)
	s.ActivityOn = lipgloss.NewStyle().Bold(true).Foreground(s.Primary)
	s.ActivityOff = lipgloss.NewStyle().Foreground(s.Muted)

	s.Pane = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(border)
	s.FocusedPane = s.Pane.BorderForeground(s.Primary)
	s.StatusBar = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(s.Primary).Padding(0, 1)
	s.Popup = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(s.Primary).Padding(0, 1)
	return s
}

// pane frames body in a bordered box of the given outer size.
func (s Styles) pane(body string, width, height int, focused bool) string {
	st := s.Pane
	if focused {
		st = s.FocusedPane
	}
	w := max(width-st.GetHorizontalFrameSize(), 1)
	h := max(height-st.GetVerticalFrameSize(), 1)
	return st.Width(w).Height(h).MaxHeight(height).Render(clip(body, w, h))
}

// clip truncates body to at most h lines of at most w cells.
func clip(body string, w, h int) string {
	lines := splitLines(body)
	if len(lines) > h {
		lines = lines[:h]
	}
	cut := lipgloss.NewStyle().MaxWidth(w)
	for i, l := range lines {
		if lipgloss.Width(l) > w {
			lines[i] = cut.Render(l)
		}
	}
	return joinLines(lines)
}
