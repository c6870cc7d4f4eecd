package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status is the data the status bar renders.
type Status struct {
	Branch    string
	Language  string
	Line      int
	Column    int
	Dirty     int
	Executing bool
	Debugging bool
	Spinner   string
	Message   string
	Theme     string
}

// RenderStatus draws the single-line status bar.
func RenderStatus(st Status, width int, s Styles) string {
	left := []string{" " + st.Branch}
	if st.Dirty > 0 {
		left = append(left, fmt.Sprintf("%d unsaved", st.Dirty))
	}
	switch {
	case st.Executing:
		left = append(left, strings.TrimSpace(st.Spinner+" Running"))
	case st.Debugging:
		left = append(left, "Debugging")
	}
	if st.Message != "" {
		left = append(left, st.Message)
	}

	var right []string
	if st.Language != "" {
		right = append(right, fmt.Sprintf("Ln %d, Col %d", st.Line, st.Column), st.Language)
	}
	right = append(right, st.Theme)

	l := strings.Join(left, "  ")
	r := strings.Join(right, "  ")
	inner := max(width-s.StatusBar.GetHorizontalFrameSize(), 0)
	gap := inner - lipgloss.Width(l) - lipgloss.Width(r)
	line := l + " " + r
	if gap > 0 {
		line = l + strings.Repeat(" ", gap) + r
	}
	return s.StatusBar.Width(width).MaxWidth(width).Render(line)
}
