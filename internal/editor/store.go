// Package editor is the tab manager: it tracks open tabs, their unsaved
// buffers and the active tab, mirrors the file tree, and holds the
// execution state the terminal panel renders. Views subscribe to
// snapshots instead of reading shared mutable state.
package editor

import (
	"sync"

	"github.com/Cyclone1070/codecollab/internal/config"
	"github.com/Cyclone1070/codecollab/internal/execution"
	"github.com/Cyclone1070/codecollab/internal/workspace"
	"go.uber.org/zap"
)

// fileStore is the subset of the file tree store the editor uses.
type fileStore interface {
	List() []*workspace.FileNode
	GetByID(id string) (*workspace.FileNode, bool)
	UpdateFileContent(id, content string)
	CreateFile(name string, parentID *string) *workspace.FileNode
	CreateFolder(name string, parentID *string) *workspace.FileNode
	RenameFile(id, newName string)
	DeleteFile(id string)
	ToggleFolder(id string)
	Reset() []*workspace.FileNode
}

// Store is the editor state container.
type Store struct {
	mu     sync.Mutex
	state  State
	files  fileStore
	logger *zap.Logger

	nextListener int
	listeners    map[int]func(State)
}

// NewStore creates a Store with UI flags taken from cfg. The file mirror is
// empty until LoadFiles.
func NewStore(files fileStore, cfg *config.Config, logger *zap.Logger) *Store {
	if files == nil {
		panic("files is required")
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	theme := ThemeDark
	if cfg.Editor.Theme == string(ThemeLight) {
		theme = ThemeLight
	}
	return &Store{
		files:  files,
		logger: logger,
		state: State{
			OpenTabs:       []EditorTab{},
			IsSidebarOpen:  cfg.Editor.SidebarOpen,
			Theme:          theme,
			IsTerminalOpen: cfg.Editor.TerminalOpen,
			ActivePanel:    PanelExplorer,
		},
		listeners: make(map[int]func(State)),
	}
}

// State returns a snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to receive a snapshot after every change. Listeners
// run on the goroutine that made the change, outside the store lock.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// update applies fn under the lock and notifies listeners when fn reports
// a change.
func (s *Store) update(fn func(st *State) bool) {
	s.mu.Lock()
	if !fn(&s.state) {
		s.mu.Unlock()
		return
	}
	snap := s.state.clone()
	listeners := make([]func(State), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

// --- File tree mirror ---

// LoadFiles refreshes the mirror from the file tree store.
func (s *Store) LoadFiles() {
	files := s.files.List()
	s.SetFiles(files)
}

// SetFiles replaces the explorer snapshot of the file tree.
func (s *Store) SetFiles(files []*workspace.FileNode) {
	s.update(func(st *State) bool {
		st.Files = files
		return true
	})
}

// SetCurrentFile marks fileID as the active tab. nil clears it.
func (s *Store) SetCurrentFile(fileID *string) {
	s.update(func(st *State) bool {
		st.CurrentFileID = copyID(fileID)
		return true
	})
}

// --- Tabs ---

// OpenFile focuses the file's tab, opening one if needed. Missing ids and
// folders are ignored. An existing tab is not reloaded.
func (s *Store) OpenFile(fileID string) {
	s.mu.Lock()
	_, open := s.state.Tab(fileID)
	s.mu.Unlock()

	var node *workspace.FileNode
	if !open {
		var ok bool
		node, ok = s.files.GetByID(fileID)
		if !ok || node.IsFolder() {
			return
		}
	}

	s.update(func(st *State) bool {
		if _, exists := st.Tab(fileID); !exists {
			if node == nil {
				return false
			}
			st.OpenTabs = append(st.OpenTabs, EditorTab{
				ID:       fileID,
				FileID:   fileID,
				FileName: node.Name,
				Content:  node.ContentString(),
				Language: node.LanguageString(),
			})
		}
		st.CurrentFileID = &fileID
		return true
	})
}

// CloseTab removes a tab. Closing the active tab activates the last
// remaining tab in order, or none.
func (s *Store) CloseTab(tabID string) {
	s.update(func(st *State) bool {
		tabs := make([]EditorTab, 0, len(st.OpenTabs))
		for _, t := range st.OpenTabs {
			if t.ID != tabID {
				tabs = append(tabs, t)
			}
		}
		st.OpenTabs = tabs
		if st.CurrentFileID != nil && *st.CurrentFileID == tabID {
			st.CurrentFileID = nil
			if len(tabs) > 0 {
				last := tabs[len(tabs)-1].ID
				st.CurrentFileID = &last
			}
		}
		return true
	})
}

// UpdateTabContent replaces a tab's buffer and marks it dirty, even when the
// content is unchanged.
func (s *Store) UpdateTabContent(tabID, content string) {
	s.update(func(st *State) bool {
		for i := range st.OpenTabs {
			if st.OpenTabs[i].ID == tabID {
				st.OpenTabs[i].Content = content
				st.OpenTabs[i].IsDirty = true
				return true
			}
		}
		return false
	})
}

// SaveFile writes the tab's buffer back to the file tree and clears its
// dirty flag. No-op when no tab has this id.
func (s *Store) SaveFile(fileID string) {
	s.mu.Lock()
	tab, ok := s.state.Tab(fileID)
	s.mu.Unlock()
	if !ok {
		return
	}

	s.files.UpdateFileContent(fileID, tab.Content)
	s.logger.Debug("file saved", zap.String("id", fileID), zap.String("name", tab.FileName))

	s.update(func(st *State) bool {
		for i := range st.OpenTabs {
			if st.OpenTabs[i].ID != fileID {
				continue
			}
			// Only clear dirty if no edit landed while writing.
			if st.OpenTabs[i].Content == tab.Content {
				st.OpenTabs[i].IsDirty = false
			}
			return true
		}
		return false
	})
}

// SaveAll saves every dirty tab and returns how many were written.
func (s *Store) SaveAll() int {
	var dirty []string
	for _, t := range s.State().OpenTabs {
		if t.IsDirty {
			dirty = append(dirty, t.ID)
		}
	}
	for _, id := range dirty {
		s.SaveFile(id)
	}
	return len(dirty)
}

// --- UI flags ---

func (s *Store) ToggleSidebar() {
	s.update(func(st *State) bool {
		st.IsSidebarOpen = !st.IsSidebarOpen
		return true
	})
}

// ToggleTheme flips between dark and light.
func (s *Store) ToggleTheme() {
	s.update(func(st *State) bool {
		if st.Theme == ThemeDark {
			st.Theme = ThemeLight
		} else {
			st.Theme = ThemeDark
		}
		return true
	})
}

func (s *Store) ToggleTerminal() {
	s.update(func(st *State) bool {
		st.IsTerminalOpen = !st.IsTerminalOpen
		return true
	})
}

func (s *Store) TogglePreview() {
	s.update(func(st *State) bool {
		st.IsPreviewOpen = !st.IsPreviewOpen
		return true
	})
}

// SetActivePanel selects a side panel and opens the sidebar.
func (s *Store) SetActivePanel(p Panel) {
	s.update(func(st *State) bool {
		st.ActivePanel = p
		st.IsSidebarOpen = true
		return true
	})
}

// --- Execution ---

// BeginRun starts a new run, discarding the previous result, and returns
// its generation.
func (s *Store) BeginRun() uint64 {
	var gen uint64
	s.update(func(st *State) bool {
		st.RunGeneration++
		gen = st.RunGeneration
		st.IsExecuting = true
		st.IsTerminalOpen = true
		st.ExecutionResult = nil
		st.ExecutionError = ""
		return true
	})
	return gen
}

// FinishRun records the outcome of run gen. Outcomes of superseded runs are
// dropped and FinishRun returns false.
func (s *Store) FinishRun(gen uint64, result *execution.Result, err error) bool {
	applied := false
	s.update(func(st *State) bool {
		if gen != st.RunGeneration {
			return false
		}
		applied = true
		st.IsExecuting = false
		st.ExecutionResult = result
		st.ExecutionError = ""
		if err != nil {
			st.ExecutionError = err.Error()
		}
		return true
	})
	if !applied {
		s.logger.Debug("discarding stale run result", zap.Uint64("generation", gen))
	}
	return applied
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
