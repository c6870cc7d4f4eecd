package editor

import (
	"github.com/Cyclone1070/codecollab/internal/execution"
	"github.com/Cyclone1070/codecollab/internal/workspace"
)

// Theme is the editor colour scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Panel is the side panel selected in the activity bar.
type Panel string

const (
	PanelExplorer   Panel = "explorer"
	PanelSearch     Panel = "search"
	PanelSCM        Panel = "scm"
	PanelExtensions Panel = "extensions"
	PanelDebug      Panel = "debug"
)

// Panels lists the activity bar in display order.
var Panels = []Panel{PanelExplorer, PanelSearch, PanelSCM, PanelExtensions, PanelDebug}

// EditorTab is an open, possibly unsaved, view of one file. ID always
// equals FileID.
type EditorTab struct {
	ID       string
	FileID   string
	FileName string
	Content  string
	Language string
	IsDirty  bool
}

// State is a snapshot of the editor. Files and ExecutionResult are shared
// between snapshots and must be treated as read-only.
type State struct {
	CurrentFileID *string
	OpenTabs      []EditorTab
	Files         []*workspace.FileNode

	IsSidebarOpen  bool
	Theme          Theme
	IsTerminalOpen bool
	IsPreviewOpen  bool
	ActivePanel    Panel

	ExecutionResult *execution.Result
	ExecutionError  string
	IsExecuting     bool
	RunGeneration   uint64
}

// ActiveTab returns the tab matching CurrentFileID.
func (s State) ActiveTab() (EditorTab, bool) {
	if s.CurrentFileID == nil {
		return EditorTab{}, false
	}
	return s.Tab(*s.CurrentFileID)
}

// Tab returns the open tab with the given file id.
func (s State) Tab(id string) (EditorTab, bool) {
	for _, t := range s.OpenTabs {
		if t.ID == id {
			return t, true
		}
	}
	return EditorTab{}, false
}

// DirtyCount returns the number of tabs with unsaved changes.
func (s State) DirtyCount() int {
	n := 0
	for _, t := range s.OpenTabs {
		if t.IsDirty {
			n++
		}
	}
	return n
}

func (s State) clone() State {
	c := s
	c.OpenTabs = append([]EditorTab(nil), s.OpenTabs...)
	if s.CurrentFileID != nil {
		id := *s.CurrentFileID
		c.CurrentFileID = &id
	}
	return c
}
