package search

import (
	"strings"

	"github.com/Cyclone1070/codecollab/internal/workspace"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// GitignoreName is the file at the workspace root whose patterns hide
// paths from search.
const GitignoreName = ".gitignore"

// matcher decides whether a workspace path is hidden from search.
type matcher interface {
	ShouldIgnore(path string, isDir bool) bool
}

// IgnoreMatcher applies gitignore patterns to workspace paths.
type IgnoreMatcher struct {
	matcher gitignore.Matcher
}

// NewIgnoreMatcher parses gitignore content. Comments and blank lines are skipped.
func NewIgnoreMatcher(content string) *IgnoreMatcher {
	var patterns []gitignore.Pattern
	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return &IgnoreMatcher{matcher: gitignore.NewMatcher(patterns)}
}

// MatcherFor builds a matcher from the root-level .gitignore file node.
// A workspace without one gets a NoOpMatcher.
func MatcherFor(files []*workspace.FileNode) matcher {
	for _, n := range files {
		if n.ParentID == nil && !n.IsFolder() && n.Name == GitignoreName {
			return NewIgnoreMatcher(n.ContentString())
		}
	}
	return NoOpMatcher{}
}

// ShouldIgnore reports whether path matches the loaded patterns.
func (m *IgnoreMatcher) ShouldIgnore(path string, isDir bool) bool {
	return m.matcher.Match(splitPath(path), isDir)
}

// splitPath splits a slash-separated path into segments, dropping empty and "." parts.
func splitPath(path string) []string {
	var segments []string
	for _, part := range strings.Split(path, "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}

// NoOpMatcher never ignores anything.
type NoOpMatcher struct{}

func (NoOpMatcher) ShouldIgnore(string, bool) bool { return false }
