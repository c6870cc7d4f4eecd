// Package command holds the command palette's command table and dispatch.
package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
)

var (
	// ErrUnknownCommand is returned by Execute for unregistered ids.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrDuplicateCommand is returned by Register when the id is taken.
	ErrDuplicateCommand = errors.New("command already registered")
)

// Command is the palette metadata of an action.
type Command struct {
	ID       string
	Title    string
	Category string
	Shortcut string
}

// Label is the text shown in the palette.
func (c Command) Label() string {
	if c.Category == "" {
		return c.Title
	}
	return c.Category + ": " + c.Title
}

// Handler runs a command with loosely typed arguments.
type Handler func(ctx context.Context, args map[string]any) error

// Validator is implemented by argument types that check themselves.
type Validator interface {
	Validate() error
}

// Bind adapts a typed function into a Handler. args are decoded into Req
// with mapstructure; Req is validated when it (or *Req) implements Validator.
func Bind[Req any](fn func(context.Context, Req) error) Handler {
	return func(ctx context.Context, args map[string]any) error {
		var req Req
		if err := mapstructure.Decode(args, &req); err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		if v, ok := any(&req).(Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
		} else if v, ok := any(req).(Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
		}
		return fn(ctx, req)
	}
}

type entry struct {
	cmd     Command
	handler Handler
}

// Registry maps command ids to handlers, keeping registration order.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds cmd. A nil handler is rejected.
func (r *Registry) Register(cmd Command, h Handler) error {
	if h == nil {
		panic("handler is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[cmd.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, cmd.ID)
	}
	r.entries[cmd.ID] = entry{cmd: cmd, handler: h}
	r.order = append(r.order, cmd.ID)
	return nil
}

// Commands returns every registered command in registration order.
func (r *Registry) Commands() []Command {
	return r.Filter("")
}

// Filter returns commands whose title or category contains query,
// ignoring case. Registration order is preserved.
func (r *Registry) Filter(query string) []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	out := make([]Command, 0, len(r.order))
	for _, id := range r.order {
		c := r.entries[id].cmd
		if q == "" ||
			strings.Contains(strings.ToLower(c.Title), q) ||
			strings.Contains(strings.ToLower(c.Category), q) {
			out = append(out, c)
		}
	}
	return out
}

// Lookup returns the command registered under id.
func (r *Registry) Lookup(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e.cmd, ok
}

// Execute runs the handler registered under id.
func (r *Registry) Execute(ctx context.Context, id string, args map[string]any) error {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, id)
	}
	if err := e.handler(ctx, args); err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}
	return nil
}
