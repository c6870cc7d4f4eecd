package views

import (
	"github.com/Cyclone1070/codecollab/internal/editor"
	"github.com/charmbracelet/lipgloss"
)

// RenderTabs draws the tab bar. Dirty tabs carry a dot.
func RenderTabs(tabs []editor.EditorTab, activeID string, width int, s Styles) string {
	if len(tabs) == 0 {
		return s.Faint.Render(" No open files")
	}
	var parts []string
	for _, t := range tabs {
		label := t.FileName
		if t.IsDirty {
			label += " ●"
		}
		if t.ID == activeID {
			parts = append(parts, s.ActiveTab.Render(label))
		} else {
			parts = append(parts, s.InactiveTab.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Bottom, parts...)
	return lipgloss.NewStyle().MaxWidth(width).Render(bar)
}
