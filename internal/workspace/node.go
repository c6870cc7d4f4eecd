package workspace

import (
	"encoding/json"
	"strings"
)

// NodeType distinguishes files from folders.
type NodeType string

const (
	TypeFile   NodeType = "file"
	TypeFolder NodeType = "folder"
)

// FileNode is one entry of the persisted forest. Content and Language are
// set only on files; Children and IsExpanded only on folders.
type FileNode struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Type       NodeType    `json:"type"`
	Content    *string     `json:"content,omitempty"`
	Language   *string     `json:"language,omitempty"`
	ParentID   *string     `json:"parentId"`
	Children   []*FileNode `json:"children,omitempty"`
	IsExpanded *bool       `json:"isExpanded,omitempty"`
}

func (n *FileNode) IsFolder() bool { return n.Type == TypeFolder }

// MarshalJSON always writes a folder's children, as [] when it has none,
// and never writes them for a file.
func (n FileNode) MarshalJSON() ([]byte, error) {
	type plain FileNode
	if n.Type != TypeFolder {
		p := plain(n)
		p.Children = nil
		return json.Marshal(p)
	}
	children := n.Children
	if children == nil {
		children = []*FileNode{}
	}
	return json.Marshal(struct {
		plain
		Children []*FileNode `json:"children"`
	}{plain(n), children})
}

// ContentString returns the file content, or "" when unset.
func (n *FileNode) ContentString() string {
	if n.Content == nil {
		return ""
	}
	return *n.Content
}

// LanguageString returns the language tag, or "plaintext" when unset.
func (n *FileNode) LanguageString() string {
	if n.Language == nil {
		return "plaintext"
	}
	return *n.Language
}

// Expanded reports whether a folder is expanded in the explorer.
func (n *FileNode) Expanded() bool {
	return n.IsExpanded != nil && *n.IsExpanded
}

// Clone returns a deep copy of the node and its subtree.
func (n *FileNode) Clone() *FileNode {
	if n == nil {
		return nil
	}
	c := &FileNode{ID: n.ID, Name: n.Name, Type: n.Type}
	c.Content = clonePtr(n.Content)
	c.Language = clonePtr(n.Language)
	c.ParentID = clonePtr(n.ParentID)
	c.IsExpanded = clonePtr(n.IsExpanded)
	if n.Children != nil {
		c.Children = CloneForest(n.Children)
	}
	return c
}

// CloneForest deep-copies a slice of nodes.
func CloneForest(nodes []*FileNode) []*FileNode {
	out := make([]*FileNode, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptr[T any](v T) *T { return &v }

// Walk visits every node depth-first in forest order, passing its
// slash-separated path. Returning false from fn stops the walk.
func Walk(nodes []*FileNode, fn func(path string, node *FileNode) bool) {
	walk(nodes, "", fn)
}

func walk(nodes []*FileNode, prefix string, fn func(string, *FileNode) bool) bool {
	for _, n := range nodes {
		p := n.Name
		if prefix != "" {
			p = prefix + "/" + n.Name
		}
		if !fn(p, n) {
			return false
		}
		if n.Children != nil && !walk(n.Children, p, fn) {
			return false
		}
	}
	return true
}

// FindByID searches the forest depth-first for id.
func FindByID(nodes []*FileNode, id string) (*FileNode, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
		if n.Children != nil {
			if found, ok := FindByID(n.Children, id); ok {
				return found, true
			}
		}
	}
	return nil, false
}

// FindByPath resolves a slash-separated path. The first match wins when
// siblings share a name.
func FindByPath(nodes []*FileNode, path string) (*FileNode, bool) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, false
	}
	var found *FileNode
	Walk(nodes, func(p string, n *FileNode) bool {
		if p == path {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// PathOf returns the slash-separated path of the node with id.
func PathOf(nodes []*FileNode, id string) (string, bool) {
	var path string
	Walk(nodes, func(p string, n *FileNode) bool {
		if n.ID == id {
			path = p
			return false
		}
		return true
	})
	return path, path != ""
}

// SubtreeIDs returns the id of node and every descendant.
func SubtreeIDs(node *FileNode) []string {
	ids := []string{node.ID}
	Walk(node.Children, func(_ string, n *FileNode) bool {
		ids = append(ids, n.ID)
		return true
	})
	return ids
}
