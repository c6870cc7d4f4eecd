package views

import (
	"strings"

	"github.com/Cyclone1070/codecollab/internal/workspace"
)

// Row is one visible line of the explorer.
type Row struct {
	Node  *workspace.FileNode
	Depth int
	Path  string
}

// Flatten lists the nodes visible in the explorer: roots plus the children of
// expanded folders, depth first.
func Flatten(files []*workspace.FileNode) []Row {
	var rows []Row
	var walk func(nodes []*workspace.FileNode, depth int, prefix string)
	walk = func(nodes []*workspace.FileNode, depth int, prefix string) {
		for _, n := range nodes {
			p := n.Name
			if prefix != "" {
				p = prefix + "/" + n.Name
			}
			rows = append(rows, Row{Node: n, Depth: depth, Path: p})
			if n.IsFolder() && n.Expanded() {
				walk(n.Children, depth+1, p)
			}
		}
	}
	walk(files, 0, "")
	return rows
}

// Explorer is the data the explorer panel renders.
type Explorer struct {
	Rows     []Row
	Cursor   int
	ActiveID string
	Dirty    map[string]bool
}

// RenderExplorer draws the file tree.
func RenderExplorer(e Explorer, height int, s Styles) string {
	lines := []string{s.Title.Render("EXPLORER")}
	if len(e.Rows) == 0 {
		lines = append(lines, s.Faint.Render("No files"))
		return joinLines(lines)
	}
	start, end := window(len(e.Rows), e.Cursor, height-1)
	for i := start; i < end; i++ {
		r := e.Rows[i]
		icon := "  "
		if r.Node.IsFolder() {
			icon = "▸ "
			if r.Node.Expanded() {
				icon = "▾ "
			}
		}
		name := r.Node.Name
		if e.Dirty[r.Node.ID] {
			name += " ●"
		}
		line := strings.Repeat("  ", r.Depth) + icon + name
		switch {
		case i == e.Cursor:
			line = s.Selected.Render("› " + line)
		case r.Node.ID == e.ActiveID:
			line = s.Text.Render("  " + line)
		default:
			line = s.Faint.Render("  " + line)
		}
		lines = append(lines, line)
	}
	return joinLines(lines)
}
