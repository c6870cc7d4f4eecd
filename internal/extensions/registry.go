// Package extensions keeps the extension catalogue and the persisted set of
// installed extensions.
package extensions

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Cyclone1070/codecollab/internal/storage"
	"go.uber.org/zap"
)

// ErrUnknownExtension is returned for ids missing from the catalogue.
var ErrUnknownExtension = errors.New("unknown extension")

// PersistError is returned when the installed set cannot be saved.
type PersistError struct {
	Key   string
	Cause error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist extensions under %s: %v", e.Key, e.Cause)
}

func (e *PersistError) Unwrap() error { return e.Cause }
func (e *PersistError) IOError() bool { return true }

// Entry pairs a catalogue extension with its install state.
type Entry struct {
	Extension
	Installed bool `json:"installed"`
}

// Registry tracks which catalogue extensions are installed.
type Registry struct {
	mu        sync.Mutex
	blobs     storage.BlobStore
	key       string
	logger    *zap.Logger
	installed map[string]bool
}

// NewRegistry loads the installed set from blobs. A missing or unreadable
// value falls back to the default set.
func NewRegistry(blobs storage.BlobStore, key string, logger *zap.Logger) *Registry {
	if blobs == nil {
		panic("blobs is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{blobs: blobs, key: key, logger: logger}
	r.installed = r.load()
	return r
}

func (r *Registry) load() map[string]bool {
	set := make(map[string]bool)
	ids := defaultInstalled
	data, err := r.blobs.Get(r.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		r.logger.Error("failed to load extensions", zap.String("key", r.key), zap.Error(err))
	default:
		var stored []string
		if err := json.Unmarshal(data, &stored); err != nil {
			r.logger.Error("failed to decode extensions, using defaults", zap.String("key", r.key), zap.Error(err))
		} else {
			ids = stored
		}
	}
	for _, id := range ids {
		if _, ok := lookup(id); ok {
			set[id] = true
		}
	}
	return set
}

func (r *Registry) save() error {
	ids := make([]string, 0, len(r.installed))
	for id := range r.installed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	data, err := json.Marshal(ids)
	if err != nil {
		return &PersistError{Key: r.key, Cause: err}
	}
	if err := r.blobs.Put(r.key, data); err != nil {
		r.logger.Error("failed to save extensions", zap.String("key", r.key), zap.Error(err))
		return &PersistError{Key: r.key, Cause: err}
	}
	return nil
}

// List returns catalogue entries whose name, display name, publisher or
// description contains query, case-insensitively. An empty query lists all.
func (r *Registry) List(query string) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	var out []Entry
	for _, e := range catalog {
		if q != "" && !matches(e, q) {
			continue
		}
		out = append(out, Entry{Extension: e, Installed: r.installed[e.ID]})
	}
	return out
}

// Installed returns the installed entries in catalogue order.
func (r *Registry) Installed() []Entry {
	var out []Entry
	for _, e := range r.List("") {
		if e.Installed {
			out = append(out, e)
		}
	}
	return out
}

func matches(e Extension, q string) bool {
	for _, field := range []string{e.Name, e.DisplayName, e.Publisher, e.Description} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Install marks id installed. Installing twice is a no-op.
func (r *Registry) Install(id string) error {
	return r.set(id, true)
}

// Uninstall marks id not installed.
func (r *Registry) Uninstall(id string) error {
	return r.set(id, false)
}

func (r *Registry) set(id string, installed bool) error {
	if _, ok := lookup(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownExtension, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.installed[id] == installed {
		return nil
	}
	prev := r.installed[id]
	if installed {
		r.installed[id] = true
	} else {
		delete(r.installed, id)
	}
	if err := r.save(); err != nil {
		if prev {
			r.installed[id] = true
		} else {
			delete(r.installed, id)
		}
		return err
	}
	r.logger.Info("extension state changed", zap.String("id", id), zap.Bool("installed", installed))
	return nil
}

// IsInstalled reports whether id is installed.
func (r *Registry) IsInstalled(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.installed[id]
}
