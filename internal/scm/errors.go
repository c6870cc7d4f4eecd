package scm

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMessage is returned when a commit message is blank.
	ErrEmptyMessage = errors.New("commit message is required")
	// ErrNothingToCommit is returned when no changes are staged.
	ErrNothingToCommit = errors.New("nothing to commit")
)

// RepositoryError wraps failures from the underlying git repository.
type RepositoryError struct {
	Op    string
	Path  string
	Cause error
}

func (e *RepositoryError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("scm %s %s: %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("scm %s: %v", e.Op, e.Cause)
}

func (e *RepositoryError) Unwrap() error { return e.Cause }
func (e *RepositoryError) IOError() bool { return true }
