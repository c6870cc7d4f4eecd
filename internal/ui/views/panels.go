package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/codecollab/internal/extensions"
	"github.com/Cyclone1070/codecollab/internal/python"
	"github.com/Cyclone1070/codecollab/internal/scm"
	"github.com/Cyclone1070/codecollab/internal/search"
)

// Search is the data the search panel renders.
type Search struct {
	Query         string // rendered text input
	Replace       string // rendered text input
	CaseSensitive bool
	WholeWord     bool
	Regex         bool
	Result        *search.Response
	Err           string
	Cursor        int
}

func flag(on bool, label string, s Styles) string {
	if on {
		return s.Selected.Render("[" + label + "]")
	}
	return s.Faint.Render("[" + label + "]")
}

// RenderSearch draws the search panel.
func RenderSearch(v Search, height int, s Styles) string {
	lines := []string{
		s.Title.Render("SEARCH"),
		v.Query,
		v.Replace,
		flag(v.CaseSensitive, "Aa", s) + " " + flag(v.WholeWord, "ab", s) + " " + flag(v.Regex, ".*", s),
	}
	switch {
	case v.Err != "":
		lines = append(lines, s.ErrorText.Render(v.Err))
	case v.Result == nil:
		lines = append(lines, s.Faint.Render("enter search  alt+c/w/r toggle  ctrl+a replace all"))
	case v.Result.TotalCount == 0:
		lines = append(lines, s.Faint.Render("No results"))
	default:
		summary := fmt.Sprintf("%d results in %d files", v.Result.TotalCount, v.Result.Files)
		if v.Result.Truncated {
			summary += " (showing first " + fmt.Sprint(len(v.Result.Matches)) + ")"
		}
		lines = append(lines, s.Faint.Render(summary))
		start, end := window(len(v.Result.Matches), v.Cursor, height-len(lines))
		for i := start; i < end; i++ {
			m := v.Result.Matches[i]
			text := fmt.Sprintf("%s:%d  %s", m.Path, m.Line, m.Context)
			if i == v.Cursor {
				lines = append(lines, s.Selected.Render("› "+text))
			} else {
				lines = append(lines, s.Text.Render("  "+text))
			}
		}
	}
	return joinLines(lines)
}

// SCM is the data the source control panel renders.
type SCM struct {
	Branch  string
	Message string // rendered text input
	Changes []scm.Change
	Log     []scm.Commit
	Cursor  int
	Err     string
}

var statusLetter = map[scm.ChangeStatus]string{
	scm.StatusModified: "M",
	scm.StatusAdded:    "A",
	scm.StatusDeleted:  "D",
	scm.StatusRenamed:  "R",
}

// RenderSCM draws the source control panel.
func RenderSCM(v SCM, height int, s Styles) string {
	lines := []string{s.Title.Render("SOURCE CONTROL") + s.Faint.Render("  "+v.Branch), v.Message}
	if v.Err != "" {
		lines = append(lines, s.ErrorText.Render(v.Err))
	}
	var staged, unstaged []string
	for i, c := range v.Changes {
		text := statusLetter[c.Status] + " " + c.Path
		if i == v.Cursor {
			text = s.Selected.Render("› " + text)
		} else {
			text = "  " + text
		}
		if c.Staged {
			staged = append(staged, text)
		} else {
			unstaged = append(unstaged, text)
		}
	}
	if len(v.Changes) == 0 {
		lines = append(lines, s.Faint.Render("No changes"))
	}
	if len(staged) > 0 {
		lines = append(lines, s.SuccessText.Render(fmt.Sprintf("Staged Changes (%d)", len(staged))))
		lines = append(lines, staged...)
	}
	if len(unstaged) > 0 {
		lines = append(lines, s.Warning.Render(fmt.Sprintf("Changes (%d)", len(unstaged))))
		lines = append(lines, unstaged...)
	}
	if len(v.Log) > 0 {
		lines = append(lines, "", s.Title.Render("HISTORY"))
		for _, c := range v.Log {
			lines = append(lines, s.Faint.Render(c.ShortHash()+" ")+c.Message)
		}
	}
	lines = append(lines, "", s.Faint.Render("s stage  a stage all  c commit  R refresh"))
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return joinLines(lines)
}

// Extensions is the data the extensions panel renders.
type Extensions struct {
	Filter  string // rendered text input
	Entries []extensions.Entry
	Cursor  int
	Err     string
}

// RenderExtensions draws the extensions panel.
func RenderExtensions(v Extensions, height int, s Styles) string {
	lines := []string{s.Title.Render("EXTENSIONS"), v.Filter}
	if v.Err != "" {
		lines = append(lines, s.ErrorText.Render(v.Err))
	}
	for i, e := range v.Entries {
		state := s.Faint.Render("install")
		if e.Installed {
			state = s.SuccessText.Render("installed")
		}
		name := e.DisplayName
		if i == v.Cursor {
			name = s.Selected.Render("› " + name)
		} else {
			name = s.Text.Render("  " + name)
		}
		lines = append(lines,
			name+"  "+state,
			s.Faint.Render(fmt.Sprintf("    %s  v%s  %s  %s", e.Publisher, e.Version, e.Downloads, stars(e.Rating))),
			s.Faint.Render("    "+e.Description),
		)
	}
	if len(v.Entries) == 0 {
		lines = append(lines, s.Faint.Render("No extensions found"))
	}
	lines = append(lines, "", s.Faint.Render("/ filter  i install/uninstall"))
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return joinLines(lines)
}

func stars(rating float64) string {
	n := int(rating + 0.5)
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// Debug is the data the run and debug panel renders.
type Debug struct {
	State python.DebugState
	Watch string // result of the last evaluation
}

// RenderDebug draws the run and debug panel.
func RenderDebug(v Debug, height int, s Styles) string {
	st := v.State
	state := s.Faint.Render("stopped")
	switch {
	case st.IsRunning:
		state = s.SuccessText.Render("running")
	case st.CurrentLine > 0:
		state = s.Warning.Render(fmt.Sprintf("paused on line %d", st.CurrentLine))
	}
	lines := []string{s.Title.Render("RUN AND DEBUG") + "  " + state, "", s.Title.Render("VARIABLES")}
	if len(st.Variables) == 0 {
		lines = append(lines, s.Faint.Render("  not available"))
	}
	for _, v := range st.Variables {
		lines = append(lines, fmt.Sprintf("  %s: %s", v.Name, v.Value)+s.Faint.Render(" "+v.Type))
	}
	lines = append(lines, "", s.Title.Render("CALL STACK"))
	if len(st.StackFrames) == 0 {
		lines = append(lines, s.Faint.Render("  not available"))
	}
	for _, f := range st.StackFrames {
		lines = append(lines, fmt.Sprintf("  %s  %s:%d", f.Name, f.Filename, f.Line))
	}
	lines = append(lines, "", s.Title.Render("BREAKPOINTS"))
	if len(st.Breakpoints) == 0 {
		lines = append(lines, s.Faint.Render("  none"))
	}
	for _, b := range st.Breakpoints {
		mark := s.ErrorText.Render("●")
		if !b.Enabled {
			mark = s.Faint.Render("○")
		}
		lines = append(lines, fmt.Sprintf("  %s line %d", mark, b.Line))
	}
	if v.Watch != "" {
		lines = append(lines, "", s.Title.Render("WATCH"), "  "+v.Watch)
	}
	lines = append(lines, "", s.Faint.Render("f5 start  f9 breakpoint  f10 step  c continue  x stop  e evaluate"))
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return joinLines(lines)
}
