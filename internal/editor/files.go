package editor

import (
	"github.com/Cyclone1070/codecollab/internal/workspace"
	"go.uber.org/zap"
)

// CreateFile creates a file through the file tree store and refreshes the
// mirror.
func (s *Store) CreateFile(name string, parentID *string) *workspace.FileNode {
	node := s.files.CreateFile(name, parentID)
	s.LoadFiles()
	return node
}

func (s *Store) CreateFolder(name string, parentID *string) *workspace.FileNode {
	node := s.files.CreateFolder(name, parentID)
	s.LoadFiles()
	return node
}

// RenameFile renames a node and updates the cached name and language of its
// open tab.
func (s *Store) RenameFile(id, newName string) {
	s.files.RenameFile(id, newName)
	files := s.files.List()

	s.update(func(st *State) bool {
		st.Files = files
		for i := range st.OpenTabs {
			if st.OpenTabs[i].ID == id {
				st.OpenTabs[i].FileName = newName
				st.OpenTabs[i].Language = workspace.LanguageFromFilename(newName)
			}
		}
		return true
	})
}

// DeleteFile deletes a node and closes the tabs of every file under it.
func (s *Store) DeleteFile(id string) {
	var doomed []string
	if node, ok := s.files.GetByID(id); ok {
		doomed = workspace.SubtreeIDs(node)
	}
	s.files.DeleteFile(id)
	s.LoadFiles()
	for _, tabID := range doomed {
		s.CloseTab(tabID)
	}
}

func (s *Store) ToggleFolder(id string) {
	s.files.ToggleFolder(id)
	s.LoadFiles()
}

// ResetWorkspace restores the default tree and closes every tab.
func (s *Store) ResetWorkspace() {
	files := s.files.Reset()
	s.logger.Info("workspace reset", zap.Int("roots", len(files)))
	s.update(func(st *State) bool {
		st.Files = files
		st.OpenTabs = []EditorTab{}
		st.CurrentFileID = nil
		return true
	})
}
