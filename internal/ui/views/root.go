package views

import (
	"github.com/Cyclone1070/codecollab/internal/editor"
	"github.com/charmbracelet/lipgloss"
)

const (
	activityWidth = 3
	sidebarWidth  = 34
	statusHeight  = 1
	tabsHeight    = 2
)

// Sizes is the outer size of every region for a window size.
type Sizes struct {
	SidebarWidth   int
	MainWidth      int
	EditorWidth    int
	PreviewWidth   int
	MainHeight     int
	EditorHeight   int
	TerminalHeight int
}

// EditorInner returns the editor widget size inside its pane border.
func (z Sizes) EditorInner() (int, int) {
	return max(z.EditorWidth-2, 1), max(z.EditorHeight-2, 1)
}

// Layout splits the window into regions.
func Layout(width, height int, sidebar, terminal, preview bool) Sizes {
	z := Sizes{}
	if sidebar {
		z.SidebarWidth = min(sidebarWidth, max(width/3, 12))
	}
	z.MainWidth = max(width-activityWidth-z.SidebarWidth, 10)
	z.EditorWidth = z.MainWidth
	if preview {
		z.PreviewWidth = z.MainWidth / 2
		z.EditorWidth = z.MainWidth - z.PreviewWidth
	}
	z.MainHeight = max(height-statusHeight, 4)
	if terminal {
		z.TerminalHeight = max(z.MainHeight*3/10, 6)
	}
	z.EditorHeight = max(z.MainHeight-tabsHeight-z.TerminalHeight, 3)
	return z
}

var panelIcons = map[editor.Panel]string{
	editor.PanelExplorer:   "⎘",
	editor.PanelSearch:     "⌕",
	editor.PanelSCM:        "⑂",
	editor.PanelExtensions: "⊞",
	editor.PanelDebug:      "▶",
}

// RenderActivityBar draws the vertical panel switcher.
func RenderActivityBar(active editor.Panel, sidebarOpen bool, height int, s Styles) string {
	var lines []string
	for _, p := range editor.Panels {
		icon := panelIcons[p]
		if p == active && sidebarOpen {
			lines = append(lines, s.ActivityOn.Render("▌"+icon))
		} else {
			lines = append(lines, s.ActivityOff.Render(" "+icon))
		}
		lines = append(lines, "")
	}
	return lipgloss.NewStyle().Width(activityWidth).Height(height).Render(joinLines(lines))
}

// Frame holds every rendered region of the screen.
type Frame struct {
	Width, Height int
	Sizes         Sizes
	Styles        Styles

	ActivityBar    string
	Sidebar        string
	SidebarFocused bool
	Tabs           string
	Editor         string
	EditorFocused  bool
	Preview        string
	Terminal       string
	Status         string
	Overlay        string // palette or prompt, drawn over everything
}

// RenderRoot composes the whole screen.
func RenderRoot(f Frame) string {
	if f.Overlay != "" {
		return lipgloss.Place(f.Width, f.Height, lipgloss.Center, lipgloss.Top, f.Overlay,
			lipgloss.WithWhitespaceChars(" "))
	}
	z, s := f.Sizes, f.Styles

	editorRow := s.pane(f.Editor, z.EditorWidth, z.EditorHeight, f.EditorFocused)
	if z.PreviewWidth > 0 {
		editorRow = lipgloss.JoinHorizontal(lipgloss.Top, editorRow,
			s.pane(f.Preview, z.PreviewWidth, z.EditorHeight, false))
	}
	main := []string{f.Tabs, editorRow}
	if z.TerminalHeight > 0 {
		main = append(main, s.pane(f.Terminal, z.MainWidth, z.TerminalHeight, false))
	}

	cols := []string{f.ActivityBar}
	if z.SidebarWidth > 0 {
		cols = append(cols, s.pane(f.Sidebar, z.SidebarWidth, z.MainHeight, f.SidebarFocused))
	}
	cols = append(cols, lipgloss.JoinVertical(lipgloss.Left, main...))

	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	return lipgloss.JoinVertical(lipgloss.Left, body, f.Status)
}
