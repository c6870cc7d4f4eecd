package views

import (
	"fmt"

	"github.com/Cyclone1070/codecollab/internal/execution"
	"github.com/Cyclone1070/codecollab/internal/python"
)

// Terminal is the data the terminal panel renders.
type Terminal struct {
	Lines    []execution.Line
	Spinner  string
	Problems []python.Diagnostic
}

// RenderTerminal draws the run transcript followed by any lint problems.
// Only the last height lines are kept.
func RenderTerminal(t Terminal, height int, s Styles) string {
	lines := []string{s.Title.Render("TERMINAL")}
	for _, l := range t.Lines {
		lines = append(lines, renderLine(l, t.Spinner, s))
	}
	if len(t.Problems) > 0 {
		lines = append(lines, "", s.Title.Render(fmt.Sprintf("PROBLEMS (%d)", len(t.Problems))))
		for _, d := range t.Problems {
			st := s.Faint
			switch d.Severity {
			case python.SeverityError:
				st = s.ErrorText
			case python.SeverityWarning:
				st = s.Warning
			}
			lines = append(lines, st.Render(d.String()))
		}
	}
	if height > 0 && len(lines) > height {
		lines = append(lines[:1], lines[len(lines)-height+1:]...)
	}
	return joinLines(lines)
}

func renderLine(l execution.Line, spinner string, s Styles) string {
	switch l.Kind {
	case execution.LineSuccess:
		return s.SuccessText.Bold(true).Render("✓ " + l.Text)
	case execution.LineFailure:
		return s.ErrorText.Bold(true).Render("✗ " + l.Text)
	case execution.LineLabel:
		return s.Title.Render(l.Text)
	case execution.LineError:
		return s.ErrorText.Render(l.Text)
	case execution.LineMuted:
		return s.Faint.Render(l.Text)
	case execution.LineRunning:
		if spinner != "" {
			return s.Selected.Render(spinner + " " + l.Text)
		}
		return s.Selected.Render(l.Text)
	default:
		return s.Text.Render(l.Text)
	}
}
