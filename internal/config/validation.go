package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Storage
	if c.Storage.DBFile == "" {
		errs = append(errs, "storage.db_file must not be empty")
	}
	if c.Storage.Bucket == "" {
		errs = append(errs, "storage.bucket must not be empty")
	}
	if c.Storage.FilesKey == "" {
		errs = append(errs, "storage.files_key must not be empty")
	}
	if c.Storage.ExtensionsKey == "" {
		errs = append(errs, "storage.extensions_key must not be empty")
	}
	if c.Storage.FilesKey == c.Storage.ExtensionsKey {
		errs = append(errs, "storage.files_key and storage.extensions_key must differ")
	}
	if c.Storage.OpenTimeoutMs < 1 {
		errs = append(errs, "storage.open_timeout_ms must be >= 1")
	}

	// Editor
	if c.Editor.AutoSaveDelayMs < 1 {
		errs = append(errs, "editor.auto_save_delay_ms must be >= 1")
	}
	if c.Editor.TabSize < 1 {
		errs = append(errs, "editor.tab_size must be >= 1")
	}
	if c.Editor.Theme != "dark" && c.Editor.Theme != "light" {
		errs = append(errs, "editor.theme must be \"dark\" or \"light\"")
	}

	// Execution
	if c.Execution.BaseURL == "" {
		errs = append(errs, "execution.base_url must not be empty")
	}
	if c.Execution.RequestTimeoutMs < 1 {
		errs = append(errs, "execution.request_timeout_ms must be >= 1")
	}
	if c.Execution.CompileTimeoutMs < 1 {
		errs = append(errs, "execution.compile_timeout_ms must be >= 1")
	}
	if c.Execution.RunTimeoutMs < 1 {
		errs = append(errs, "execution.run_timeout_ms must be >= 1")
	}
	if !validMemoryLimit(c.Execution.CompileMemoryLimit) {
		errs = append(errs, "execution.compile_memory_limit must be -1 or >= 1")
	}
	if !validMemoryLimit(c.Execution.RunMemoryLimit) {
		errs = append(errs, "execution.run_memory_limit must be -1 or >= 1")
	}

	// Python
	if c.Python.CompileTimeoutMs < 1 {
		errs = append(errs, "python.compile_timeout_ms must be >= 1")
	}
	if c.Python.RunTimeoutMs < 1 {
		errs = append(errs, "python.run_timeout_ms must be >= 1")
	}
	if !validMemoryLimit(c.Python.CompileMemoryLimit) {
		errs = append(errs, "python.compile_memory_limit must be -1 or >= 1")
	}
	if !validMemoryLimit(c.Python.RunMemoryLimit) {
		errs = append(errs, "python.run_memory_limit must be -1 or >= 1")
	}

	// Search
	if c.Search.DefaultLimit < 1 {
		errs = append(errs, "search.default_limit must be >= 1")
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		errs = append(errs, "search.max_limit must be >= search.default_limit")
	}
	if c.Search.MaxLineLength < 1 {
		errs = append(errs, "search.max_line_length must be >= 1")
	}

	if c.SCM.AuthorName == "" {
		errs = append(errs, "scm.author_name is required")
	}

	// Debug & UI
	if c.Debug.StepDelayMs < 1 {
		errs = append(errs, "debug.step_delay_ms must be >= 1")
	}
	if c.UI.PreviewDebounceMs < 1 {
		errs = append(errs, "ui.preview_debounce_ms must be >= 1")
	}

	// Log
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level %q is not a valid level", c.Log.Level))
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, "log.format must be \"console\" or \"json\"")
	}
	if c.Log.File == "" {
		errs = append(errs, "log.file must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}

func validMemoryLimit(v int64) bool {
	return v == -1 || v >= 1
}
