package views

import (
	"strings"

	"github.com/Cyclone1070/codecollab/internal/command"
	"github.com/charmbracelet/lipgloss"
)

// Palette is the data the command palette renders.
type Palette struct {
	Input    string // rendered text input
	Commands []command.Command
	Cursor   int
}

// RenderPalette draws the palette popup.
func RenderPalette(p Palette, width, height int, s Styles) string {
	inner := max(width-s.Popup.GetHorizontalFrameSize(), 10)
	lines := []string{p.Input, ""}
	if len(p.Commands) == 0 {
		lines = append(lines, s.Faint.Render("No matching commands"))
	}
	start, end := window(len(p.Commands), p.Cursor, max(height-6, 1))
	for i := start; i < end; i++ {
		c := p.Commands[i]
		label := c.Label()
		if i == p.Cursor {
			label = s.Selected.Render("› " + label)
		} else {
			label = s.Text.Render("  " + label)
		}
		shortcut := s.Faint.Render(c.Shortcut)
		gap := max(inner-lipgloss.Width(label)-lipgloss.Width(shortcut), 1)
		lines = append(lines, label+strings.Repeat(" ", gap)+shortcut)
	}
	lines = append(lines, "", s.Faint.Render("↑/↓ navigate  enter run  esc close"))
	return s.Popup.Width(inner).Render(clip(joinLines(lines), inner, max(height-2, 3)))
}

// Prompt is a single-line input popup.
type Prompt struct {
	Label string
	Input string
}

// RenderPrompt draws a prompt popup.
func RenderPrompt(p Prompt, width int, s Styles) string {
	inner := max(width-s.Popup.GetHorizontalFrameSize(), 10)
	body := joinLines([]string{
		s.Title.Render(p.Label),
		p.Input,
		"",
		s.Faint.Render("enter confirm  esc cancel"),
	})
	return s.Popup.Width(inner).Render(body)
}
