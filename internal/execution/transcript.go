package execution

import (
	"fmt"
	"strings"
)

// LineKind tags a transcript line so renderers can style it.
type LineKind int

const (
	LineSuccess LineKind = iota // stage header, exit code 0
	LineFailure                 // stage header, non-zero exit or signal
	LineLabel                   // STDOUT: / STDERR: / OUTPUT:
	LineOutput
	LineError
	LineMuted
	LineRunning
)

// Line is one line of the terminal panel.
type Line struct {
	Kind LineKind
	Text string
}

// Transcript lays out the terminal panel for a run. A nil result with
// running=false yields the idle hint.
func Transcript(result *Result, running bool) []Line {
	if running {
		return []Line{{Kind: LineRunning, Text: "Executing code..."}}
	}
	if result == nil {
		return []Line{{Kind: LineMuted, Text: `Press ctrl+r to execute your program`}}
	}

	var lines []Line
	if c := result.Compile; c != nil {
		lines = append(lines, header(*c, "Compilation "+outcome(*c)))
		lines = appendBlock(lines, LineOutput, c.Stdout)
		lines = appendBlock(lines, LineError, c.Stderr)
	}

	run := result.Run
	status := fmt.Sprintf("Exit code: %d", run.Code)
	if run.Signal != nil {
		status = "Signal: " + *run.Signal
	}
	lines = append(lines, header(run, fmt.Sprintf("Execution %s (%s)", outcome(run), status)))
	switch {
	case run.Stdout == "" && run.Stderr == "" && run.Output == "":
		lines = append(lines, Line{Kind: LineMuted, Text: "No output produced"})
	case run.Stdout == "" && run.Stderr == "":
		lines = append(lines, Line{Kind: LineLabel, Text: "OUTPUT:"})
		lines = appendBlock(lines, LineOutput, run.Output)
	default:
		if run.Stdout != "" {
			lines = append(lines, Line{Kind: LineLabel, Text: "STDOUT:"})
			lines = appendBlock(lines, LineOutput, run.Stdout)
		}
		if run.Stderr != "" {
			lines = append(lines, Line{Kind: LineLabel, Text: "STDERR:"})
			lines = appendBlock(lines, LineError, run.Stderr)
		}
	}

	footer := strings.TrimSpace(fmt.Sprintf("Language: %s %s", result.Language, result.Version))
	return append(lines, Line{Kind: LineMuted, Text: footer})
}

// PlainTranscript renders Transcript without styling.
func PlainTranscript(result *Result, running bool) string {
	var b strings.Builder
	for _, l := range Transcript(result, running) {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

func outcome(s Stage) string {
	if s.Failed() {
		return "Failed"
	}
	return "Success"
}

func header(s Stage, text string) Line {
	if s.Failed() {
		return Line{Kind: LineFailure, Text: text}
	}
	return Line{Kind: LineSuccess, Text: text}
}

func appendBlock(lines []Line, kind LineKind, text string) []Line {
	if text == "" {
		return lines
	}
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		lines = append(lines, Line{Kind: kind, Text: l})
	}
	return lines
}
