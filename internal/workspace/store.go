// Package workspace holds the file tree: a forest of folders and files
// persisted as one JSON blob under a fixed key.
package workspace

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/Cyclone1070/codecollab/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the file tree store. The forest is loaded lazily on first access
// and every mutation re-persists the whole forest. Persistence failures are
// logged and otherwise ignored. All returned nodes are deep copies.
type Store struct {
	mu     sync.Mutex
	blobs  storage.BlobStore
	key    string
	logger *zap.Logger
	newID  func() string

	loaded bool
	files  []*FileNode
}

// NewStore creates a Store persisting under key in blobs.
func NewStore(blobs storage.BlobStore, key string, logger *zap.Logger) *Store {
	if blobs == nil {
		panic("blobs is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		blobs:  blobs,
		key:    key,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// load must be called with mu held.
func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := s.blobs.Get(s.key)
	switch {
	case errors.Is(err, storage.ErrNotFound) || (err == nil && len(data) == 0):
		s.seed()
		return
	case err != nil:
		s.logger.Error("failed to load files", zap.String("key", s.key), zap.Error(err))
		s.seed()
		return
	}

	var files []*FileNode
	if err := json.Unmarshal(data, &files); err != nil {
		s.logger.Error("failed to decode files, restoring defaults", zap.String("key", s.key), zap.Error(err))
		s.seed()
		return
	}
	Walk(files, func(_ string, n *FileNode) bool {
		if n.IsFolder() && n.Children == nil {
			n.Children = []*FileNode{}
		}
		return true
	})
	s.files = files
}

func (s *Store) seed() {
	s.files = defaultForest(s.newID)
	s.save()
}

// save must be called with mu held.
func (s *Store) save() {
	data, err := json.Marshal(s.files)
	if err != nil {
		s.logger.Error("failed to encode files", zap.Error(err))
		return
	}
	if err := s.blobs.Put(s.key, data); err != nil {
		s.logger.Error("failed to save files", zap.String("key", s.key), zap.Error(err))
	}
}

// List returns the whole forest.
func (s *Store) List() []*FileNode {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	return CloneForest(s.files)
}

// GetByID finds a node anywhere in the forest.
func (s *Store) GetByID(id string) (*FileNode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	n, ok := FindByID(s.files, id)
	if !ok {
		return nil, false
	}
	return n.Clone(), true
}

// FindByPath resolves a slash-separated path such as "src/App.tsx".
func (s *Store) FindByPath(path string) (*FileNode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	n, ok := FindByPath(s.files, path)
	if !ok {
		return nil, false
	}
	return n.Clone(), true
}

// Walk visits a snapshot of the forest depth-first.
func (s *Store) Walk(fn func(path string, node *FileNode) bool) {
	Walk(s.List(), fn)
}

// CreateFile adds an empty file under parentID, or at the root when
// parentID is nil. The new node is returned even when parentID does not
// name a folder, in which case nothing is inserted.
func (s *Store) CreateFile(name string, parentID *string) *FileNode {
	node := &FileNode{
		ID:       s.newID(),
		Name:     name,
		Type:     TypeFile,
		ParentID: clonePtr(parentID),
		Language: ptr(LanguageFromFilename(name)),
		Content:  ptr(""),
	}
	return s.insert(node)
}

// CreateFolder adds a collapsed, empty folder. Placement follows CreateFile.
func (s *Store) CreateFolder(name string, parentID *string) *FileNode {
	node := &FileNode{
		ID:         s.newID(),
		Name:       name,
		Type:       TypeFolder,
		ParentID:   clonePtr(parentID),
		Children:   []*FileNode{},
		IsExpanded: ptr(false),
	}
	return s.insert(node)
}

func (s *Store) insert(node *FileNode) *FileNode {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	if node.ParentID == nil {
		s.files = append(s.files, node)
	} else if parent, ok := FindByID(s.files, *node.ParentID); ok && parent.IsFolder() {
		if parent.Children == nil {
			parent.Children = []*FileNode{}
		}
		parent.Children = append(parent.Children, node)
	} else {
		s.logger.Debug("parent is not a folder, node not inserted",
			zap.String("parent_id", *node.ParentID),
			zap.String("name", node.Name))
	}
	s.save()
	return node.Clone()
}

// UpdateFileContent replaces a file's content.
func (s *Store) UpdateFileContent(id, content string) {
	s.mutate(id, func(n *FileNode) {
		n.Content = ptr(content)
	})
}

// RenameFile renames a node; files get their language recomputed.
func (s *Store) RenameFile(id, newName string) {
	s.mutate(id, func(n *FileNode) {
		n.Name = newName
		if !n.IsFolder() {
			n.Language = ptr(LanguageFromFilename(newName))
		}
	})
}

// ToggleFolder flips a folder's expanded flag. Files are left untouched.
func (s *Store) ToggleFolder(id string) {
	s.mutate(id, func(n *FileNode) {
		if n.IsFolder() {
			n.IsExpanded = ptr(!n.Expanded())
		}
	})
}

func (s *Store) mutate(id string, fn func(*FileNode)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	if n, ok := FindByID(s.files, id); ok {
		fn(n)
	}
	s.save()
}

// DeleteFile removes the node with id, and its subtree, at any depth.
func (s *Store) DeleteFile(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	s.files = removeNode(s.files, id)
	s.save()
}

func removeNode(nodes []*FileNode, id string) []*FileNode {
	out := make([]*FileNode, 0, len(nodes))
	for _, n := range nodes {
		if n.ID == id {
			continue
		}
		if n.Children != nil {
			n.Children = removeNode(n.Children, id)
		}
		out = append(out, n)
	}
	return out
}

// Reset replaces the forest with the default tree.
func (s *Store) Reset() []*FileNode {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.seed()
	return CloneForest(s.files)
}
