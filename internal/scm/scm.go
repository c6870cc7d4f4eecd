// Package scm tracks workspace changes in an in-memory git repository.
package scm

import (
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Cyclone1070/codecollab/internal/workspace"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/storage/memory"
	"go.uber.org/zap"
)

// DefaultBranch is the branch HEAD points at after Open.
const DefaultBranch = "main"

// ChangeStatus names the kind of change recorded for a path.
type ChangeStatus string

const (
	StatusModified ChangeStatus = "modified"
	StatusAdded    ChangeStatus = "added"
	StatusDeleted  ChangeStatus = "deleted"
	StatusRenamed  ChangeStatus = "renamed"
)

// Change is one line of the Source Control panel. A path with both staged
// and unstaged edits produces two changes.
type Change struct {
	Path   string       `json:"path"`
	Status ChangeStatus `json:"status"`
	Staged bool         `json:"staged"`
}

// Author identifies who made a commit.
type Author struct {
	Name  string
	Email string
}

// Commit summarizes a commit in history.
type Commit struct {
	Hash    string
	Message string
	Author  Author
	When    time.Time
}

// ShortHash returns the abbreviated hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// Repository is a git repository whose worktree mirrors the workspace forest.
type Repository struct {
	mu     sync.Mutex
	repo   *git.Repository
	tree   *git.Worktree
	synced map[string]struct{}
	now    func() time.Time
	logger *zap.Logger
}

// Open initialises an empty repository with HEAD on DefaultBranch.
func Open(logger *zap.Logger) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	repo, err := git.Init(memory.NewStorage(), memfs.New())
	if err != nil {
		return nil, &RepositoryError{Op: "init", Cause: err}
	}
	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(DefaultBranch))
	if err := repo.Storer.SetReference(head); err != nil {
		return nil, &RepositoryError{Op: "init", Cause: err}
	}
	tree, err := repo.Worktree()
	if err != nil {
		return nil, &RepositoryError{Op: "worktree", Cause: err}
	}
	return &Repository{
		repo:   repo,
		tree:   tree,
		synced: make(map[string]struct{}),
		now:    time.Now,
		logger: logger,
	}, nil
}

// Sync writes every file of the forest into the worktree and removes files
// that were synced before but no longer exist.
func (r *Repository) Sync(files []*workspace.FileNode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fs := r.tree.Filesystem
	seen := make(map[string]struct{})
	var firstErr error
	workspace.Walk(files, func(path string, n *workspace.FileNode) bool {
		if n.IsFolder() {
			return true
		}
		seen[path] = struct{}{}
		if err := util.WriteFile(fs, path, []byte(n.ContentString()), 0o644); err != nil && firstErr == nil {
			firstErr = &RepositoryError{Op: "write", Path: path, Cause: err}
		}
		return true
	})
	for path := range r.synced {
		if _, ok := seen[path]; ok {
			continue
		}
		if err := fs.Remove(path); err != nil && firstErr == nil {
			firstErr = &RepositoryError{Op: "remove", Path: path, Cause: err}
		}
	}
	r.synced = seen
	if firstErr != nil {
		r.logger.Warn("worktree sync incomplete", zap.Error(firstErr))
	}
	return firstErr
}

// Status lists changes sorted by path, staged entries first.
func (r *Repository) Status() ([]Change, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status()
}

func (r *Repository) status() ([]Change, error) {
	st, err := r.tree.Status()
	if err != nil {
		return nil, &RepositoryError{Op: "status", Cause: err}
	}
	var changes []Change
	for path, fs := range st {
		if s, ok := stagedStatus(fs.Staging); ok {
			changes = append(changes, Change{Path: path, Status: s, Staged: true})
		}
		if s, ok := worktreeStatus(fs.Worktree); ok {
			changes = append(changes, Change{Path: path, Status: s})
		}
	}
	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Path != changes[j].Path {
			return changes[i].Path < changes[j].Path
		}
		return changes[i].Staged && !changes[j].Staged
	})
	return changes, nil
}

func stagedStatus(c git.StatusCode) (ChangeStatus, bool) {
	switch c {
	case git.Added, git.Copied:
		return StatusAdded, true
	case git.Modified, git.UpdatedButUnmerged:
		return StatusModified, true
	case git.Deleted:
		return StatusDeleted, true
	case git.Renamed:
		return StatusRenamed, true
	}
	return "", false
}

func worktreeStatus(c git.StatusCode) (ChangeStatus, bool) {
	switch c {
	case git.Untracked:
		return StatusAdded, true
	case git.Modified, git.UpdatedButUnmerged:
		return StatusModified, true
	case git.Deleted:
		return StatusDeleted, true
	case git.Renamed:
		return StatusRenamed, true
	}
	return "", false
}

// Stage adds the current worktree state of path to the index.
func (r *Repository) Stage(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stage(path)
}

func (r *Repository) stage(path string) error {
	st, err := r.tree.Status()
	if err != nil {
		return &RepositoryError{Op: "status", Cause: err}
	}
	if fs, ok := st[path]; ok && fs.Worktree == git.Deleted {
		_, err = r.tree.Remove(path)
	} else {
		_, err = r.tree.Add(path)
	}
	if err != nil {
		return &RepositoryError{Op: "stage", Path: path, Cause: err}
	}
	return nil
}

// StageAll stages every unstaged change and returns how many paths were staged.
func (r *Repository) StageAll() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changes, err := r.status()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, c := range changes {
		if c.Staged {
			continue
		}
		if err := r.stage(c.Path); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Commit records the staged changes.
func (r *Repository) Commit(message string, author Author) (Commit, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Commit{}, ErrEmptyMessage
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	changes, err := r.status()
	if err != nil {
		return Commit{}, err
	}
	staged := false
	for _, c := range changes {
		if c.Staged {
			staged = true
			break
		}
	}
	if !staged {
		return Commit{}, ErrNothingToCommit
	}

	sig := &object.Signature{Name: author.Name, Email: author.Email, When: r.now()}
	hash, err := r.tree.Commit(message, &git.CommitOptions{Author: sig})
	if err != nil {
		return Commit{}, &RepositoryError{Op: "commit", Cause: err}
	}
	r.logger.Info("committed", zap.String("hash", hash.String()), zap.Int("changes", len(changes)))
	return Commit{Hash: hash.String(), Message: message, Author: author, When: sig.When}, nil
}

// Log returns up to n commits, newest first. n <= 0 means no limit.
func (r *Repository) Log(n int) ([]Commit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.repo.Head(); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, &RepositoryError{Op: "log", Cause: err}
	}
	iter, err := r.repo.Log(&git.LogOptions{})
	if err != nil {
		return nil, &RepositoryError{Op: "log", Cause: err}
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if n > 0 && len(commits) >= n {
			return storer.ErrStop
		}
		commits = append(commits, Commit{
			Hash:    c.Hash.String(),
			Message: strings.TrimSpace(c.Message),
			Author:  Author{Name: c.Author.Name, Email: c.Author.Email},
			When:    c.Author.When,
		})
		return nil
	})
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &RepositoryError{Op: "log", Cause: err}
	}
	return commits, nil
}

// Branch returns the short name of the branch HEAD points at.
func (r *Repository) Branch() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ref, err := r.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return DefaultBranch
	}
	if ref.Type() == plumbing.SymbolicReference {
		return ref.Target().Short()
	}
	return ref.Name().Short()
}
