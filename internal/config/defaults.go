package config

import "path/filepath"

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Storage   StorageConfig   `json:"storage"`
	Editor    EditorConfig    `json:"editor"`
	Execution ExecutionConfig `json:"execution"`
	Python    PythonConfig    `json:"python"`
	Debug     DebugConfig     `json:"debug"`
	Search    SearchConfig    `json:"search"`
	SCM       SCMConfig       `json:"scm"`
	UI        UIConfig        `json:"ui"`
	Log       LogConfig       `json:"log"`

	// Source is the file the values were read from, empty for pure defaults.
	Source string `json:"-"`
}

type StorageConfig struct {
	DataDir       string `json:"data_dir"`       // Default: ~/.local/share/codecollab (resolved by Loader)
	DBFile        string `json:"db_file"`        // Default: workspace.db
	Bucket        string `json:"bucket"`         // Default: codecollab
	FilesKey      string `json:"files_key"`      // Default: codecollab_files
	ExtensionsKey string `json:"extensions_key"` // Default: codecollab_extensions
	OpenTimeoutMs int    `json:"open_timeout_ms"`
}

type EditorConfig struct {
	AutoSaveDelayMs int    `json:"auto_save_delay_ms"` // Default: 3000
	TabSize         int    `json:"tab_size"`           // Default: 2
	Theme           string `json:"theme"`              // "dark" or "light"
	SidebarOpen     bool   `json:"sidebar_open"`
	TerminalOpen    bool   `json:"terminal_open"`
	WordWrap        bool   `json:"word_wrap"`
}

type ExecutionConfig struct {
	BaseURL            string `json:"base_url"`
	RequestTimeoutMs   int    `json:"request_timeout_ms"` // Default: 30000
	CompileTimeoutMs   int    `json:"compile_timeout_ms"` // Default: 10000
	RunTimeoutMs       int    `json:"run_timeout_ms"`     // Default: 3000
	CompileMemoryLimit int64  `json:"compile_memory_limit"`
	RunMemoryLimit     int64  `json:"run_memory_limit"` // -1 means unrestricted
}

type PythonConfig struct {
	CompileTimeoutMs   int      `json:"compile_timeout_ms"` // Default: 15000
	RunTimeoutMs       int      `json:"run_timeout_ms"`     // Default: 10000
	CompileMemoryLimit int64    `json:"compile_memory_limit"`
	RunMemoryLimit     int64    `json:"run_memory_limit"`
	AllowedPackages    []string `json:"allowed_packages"`
}

type DebugConfig struct {
	StepDelayMs int `json:"step_delay_ms"` // Default: 500
}

type SearchConfig struct {
	DefaultLimit  int `json:"default_limit"`   // Default: 100
	MaxLimit      int `json:"max_limit"`       // Default: 1000
	MaxLineLength int `json:"max_line_length"` // Longer context lines are truncated
}

type SCMConfig struct {
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
}

type UIConfig struct {
	PreviewDebounceMs int    `json:"preview_debounce_ms"`
	ColorPrimary      string `json:"color_primary"`
	ColorError        string `json:"color_error"`
	ColorSuccess      string `json:"color_success"`
	ColorMuted        string `json:"color_muted"`
}

type LogConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	File   string `json:"file"`   // relative paths are placed under storage.data_dir
	Format string `json:"format"` // console or json
}

// DefaultDataDirName is used when no home directory is available.
const DefaultDataDirName = ".codecollab"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DBFile:        "workspace.db",
			Bucket:        "codecollab",
			FilesKey:      "codecollab_files",
			ExtensionsKey: "codecollab_extensions",
			OpenTimeoutMs: 1000,
		},
		Editor: EditorConfig{
			AutoSaveDelayMs: 3000,
			TabSize:         2,
			Theme:           "dark",
			SidebarOpen:     true,
			TerminalOpen:    true,
			WordWrap:        true,
		},
		Execution: ExecutionConfig{
			BaseURL:            "https://emkc.org/api/v2/piston",
			RequestTimeoutMs:   30000,
			CompileTimeoutMs:   10000,
			RunTimeoutMs:       3000,
			CompileMemoryLimit: -1,
			RunMemoryLimit:     -1,
		},
		Python: PythonConfig{
			CompileTimeoutMs:   15000,
			RunTimeoutMs:       10000,
			CompileMemoryLimit: 256 * 1024 * 1024,
			RunMemoryLimit:     256 * 1024 * 1024,
			AllowedPackages: []string{
				"numpy", "pandas", "matplotlib", "scipy", "requests", "math",
				"random", "json", "datetime", "collections", "itertools", "re",
			},
		},
		Debug: DebugConfig{
			StepDelayMs: 500,
		},
		Search: SearchConfig{
			DefaultLimit:  100,
			MaxLimit:      1000,
			MaxLineLength: 200,
		},
		SCM: SCMConfig{
			AuthorName:  "codecollab",
			AuthorEmail: "codecollab@localhost",
		},
		UI: UIConfig{
			PreviewDebounceMs: 500,
			ColorPrimary:      "33",
			ColorError:        "196",
			ColorSuccess:      "42",
			ColorMuted:        "241",
		},
		Log: LogConfig{
			Level:  "info",
			File:   "codecollab.log",
			Format: "console",
		},
	}
}

// DataDir returns the configured data directory, falling back to
// DefaultDataDirName in the working directory.
func (c *Config) DataDir() string {
	if c.Storage.DataDir == "" {
		return DefaultDataDirName
	}
	return c.Storage.DataDir
}

// DBPath returns the full path of the workspace database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir(), c.Storage.DBFile)
}

// LogPath returns the full path of the log file.
func (c *Config) LogPath() string {
	if filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.DataDir(), c.Log.File)
}
