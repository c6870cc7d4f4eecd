package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements Env for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Vars        map[string]string
	Files       map[string][]byte
	ReadFileErr error
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) Getenv(key string) string {
	return m.Vars[key]
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

const testConfigPath = "/home/user/.config/codecollab/config.json"

// --- HAPPY PATH TESTS ---

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{},
	}
	loader := NewLoaderWith(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Editor.AutoSaveDelayMs)
	assert.Equal(t, "codecollab_files", cfg.Storage.FilesKey)
	assert.Equal(t, "https://emkc.org/api/v2/piston", cfg.Execution.BaseURL)
	assert.Equal(t, "/home/user/.local/share/codecollab", cfg.Storage.DataDir)
	assert.Equal(t, "/home/user/.local/share/codecollab/workspace.db", cfg.DBPath())
}

func TestLoad_FullOverride_AllValuesReplaced(t *testing.T) {
	configJSON := `{
		"storage": {"data_dir": "/data", "db_file": "ws.db"},
		"editor": {"auto_save_delay_ms": 1000, "theme": "light", "tab_size": 4},
		"execution": {"base_url": "http://localhost:2000/api/v2", "run_timeout_ms": 5000},
		"python": {"allowed_packages": ["numpy"]},
		"debug": {"step_delay_ms": 10},
		"log": {"level": "debug", "format": "json", "file": "/var/log/cc.log"}
	}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			testConfigPath: []byte(configJSON),
		},
	}
	loader := NewLoaderWith(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "/data/ws.db", cfg.DBPath())
	assert.Equal(t, 1000, cfg.Editor.AutoSaveDelayMs)
	assert.Equal(t, "light", cfg.Editor.Theme)
	assert.Equal(t, 4, cfg.Editor.TabSize)
	assert.Equal(t, "http://localhost:2000/api/v2", cfg.Execution.BaseURL)
	assert.Equal(t, 5000, cfg.Execution.RunTimeoutMs)
	assert.Equal(t, []string{"numpy"}, cfg.Python.AllowedPackages)
	assert.Equal(t, 10, cfg.Debug.StepDelayMs)
	assert.Equal(t, "/var/log/cc.log", cfg.LogPath())
}

func TestLoad_PartialOverride_KeepsOtherDefaults(t *testing.T) {
	configJSON := `{"editor": {"theme": "light"}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{testConfigPath: []byte(configJSON)},
	}

	cfg, err := NewLoaderWith(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Editor.Theme)
	assert.Equal(t, 3000, cfg.Editor.AutoSaveDelayMs)
	assert.True(t, cfg.Editor.SidebarOpen)
	assert.Equal(t, 500, cfg.Debug.StepDelayMs)
}

func TestLoad_ExplicitFalse_OverridesDefault(t *testing.T) {
	configJSON := `{"editor": {"sidebar_open": false, "terminal_open": false}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{testConfigPath: []byte(configJSON)},
	}

	cfg, err := NewLoaderWith(fs).Load()

	require.NoError(t, err)
	assert.False(t, cfg.Editor.SidebarOpen)
	assert.False(t, cfg.Editor.TerminalOpen)
}

func TestLoad_NoHomeDir_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{HomeDirErr: errors.New("no home")}

	cfg, err := NewLoaderWith(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, "", cfg.Storage.DataDir)
	assert.Equal(t, DefaultDataDirName, cfg.DataDir())
	assert.Equal(t, ".codecollab/codecollab.log", cfg.LogPath())
}

func TestLoad_RecordsSource(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{testConfigPath: []byte(`{}`)},
	}

	cfg, err := NewLoaderWith(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, testConfigPath, cfg.Source)
}

func TestLoad_XDGDirectories(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Vars: map[string]string{
			"XDG_CONFIG_HOME": "/xdg/config",
			"XDG_DATA_HOME":   "/xdg/data",
		},
		Files: map[string][]byte{
			"/xdg/config/codecollab/config.json": []byte(`{"editor": {"tab_size": 8}}`),
		},
	}

	cfg, err := NewLoaderWith(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Editor.TabSize)
	assert.Equal(t, "/xdg/data/codecollab", cfg.Storage.DataDir)
	assert.Equal(t, "/xdg/config/codecollab/config.json", cfg.Source)
}

func TestLoad_ExplicitPathWithoutHome(t *testing.T) {
	fs := &MockFileSystem{
		HomeDirErr: errors.New("no home"),
		Vars:       map[string]string{EnvConfigPath: "/etc/cc.json"},
		Files:      map[string][]byte{"/etc/cc.json": []byte(`{"editor": {"theme": "light"}}`)},
	}

	cfg, err := NewLoaderWith(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Editor.Theme)
	assert.Equal(t, DefaultDataDirName, cfg.DataDir())
}

func TestNewLoaderWith_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewLoaderWith(nil) })
}

// --- ERROR PATH TESTS ---

func TestLoad_MalformedJSON_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{testConfigPath: []byte(`{"editor": `)},
	}

	cfg, err := NewLoaderWith(fs).Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_PermissionDenied_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir:     "/home/user",
		ReadFileErr: os.ErrPermission,
	}

	cfg, err := NewLoaderWith(fs).Load()

	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Nil(t, cfg)
}

func TestLoad_NegativeValues_Rejected(t *testing.T) {
	configJSON := `{"editor": {"auto_save_delay_ms": -5}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{testConfigPath: []byte(configJSON)},
	}

	cfg, err := NewLoaderWith(fs).Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "auto_save_delay_ms")
	assert.Nil(t, cfg)
}

func TestDefaultConfig_AllFieldsInitialized(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.Storage.DBFile)
	assert.NotEmpty(t, cfg.Storage.Bucket)
	assert.NotEmpty(t, cfg.Execution.BaseURL)
	assert.Equal(t, int64(-1), cfg.Execution.RunMemoryLimit)
	assert.Equal(t, int64(256*1024*1024), cfg.Python.RunMemoryLimit)
	assert.Len(t, cfg.Python.AllowedPackages, 12)
	assert.Equal(t, "info", cfg.Log.Level)
}
