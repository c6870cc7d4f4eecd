package search

import (
	"errors"
	"fmt"
)

// ErrQueryRequired is returned when a request has an empty query.
var ErrQueryRequired = errors.New("query is required")

// PatternError is returned when the query does not compile as a regular expression.
type PatternError struct {
	Pattern string
	Cause   error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid search pattern %q: %v", e.Pattern, e.Cause)
}

func (e *PatternError) Unwrap() error      { return e.Cause }
func (e *PatternError) InvalidInput() bool { return true }

// NegativeOffsetError is returned when offset is negative.
type NegativeOffsetError struct {
	Value int
}

func (e *NegativeOffsetError) Error() string {
	return fmt.Sprintf("offset cannot be negative: %d", e.Value)
}

func (e *NegativeOffsetError) InvalidInput() bool { return true }

// NegativeLimitError is returned when limit is negative.
type NegativeLimitError struct {
	Value int
}

func (e *NegativeLimitError) Error() string {
	return fmt.Sprintf("limit cannot be negative: %d", e.Value)
}

func (e *NegativeLimitError) InvalidInput() bool { return true }
