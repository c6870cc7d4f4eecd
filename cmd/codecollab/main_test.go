package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Cyclone1070/codecollab/internal/config"
	"github.com/Cyclone1070/codecollab/internal/execution"
	"github.com/Cyclone1070/codecollab/internal/storage"
	"github.com/Cyclone1070/codecollab/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type harness struct {
	env      env
	blobs    *storage.MemoryStore
	requests []execution.Request
	result   execution.Result
	opened   int
	closed   int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		blobs:  storage.NewMemoryStore(),
		result: execution.Result{Language: "python", Version: "3.10.0", Run: execution.Stage{Stdout: "hi\n"}},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/execute":
			var req execution.Request
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			h.requests = append(h.requests, req)
			_ = json.NewEncoder(w).Encode(h.result)
		case "/runtimes":
			_ = json.NewEncoder(w).Encode([]execution.Runtime{
				{Language: "python", Version: "3.10.0", Aliases: []string{"py"}},
				{Language: "go", Version: "1.16.2"},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	h.env = env{
		loadConfig: func() (*config.Config, error) { return config.DefaultConfig(), nil },
		open: func(cfg *config.Config) (*app, error) {
			h.opened++
			cfg.Execution.BaseURL = srv.URL
			return &app{
				cfg:    cfg,
				logger: zap.NewNop(),
				blobs:  h.blobs,
				files:  workspace.NewStore(h.blobs, cfg.Storage.FilesKey, nil),
				exec:   execution.NewClient(cfg, srv.Client(), nil),
				close:  func() error { h.closed++; return nil },
			}, nil
		},
	}
	return h
}

func (h *harness) run(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	err := execute(h.env, args, &out, &errOut)
	return out.String(), err
}

func (h *harness) addFile(t *testing.T, name, content string) {
	t.Helper()
	files := workspace.NewStore(h.blobs, config.DefaultConfig().Storage.FilesKey, nil)
	n := files.CreateFile(name, nil)
	files.UpdateFileContent(n.ID, content)
}

// --- HAPPY PATH TESTS ---

func TestList_PrintsSeedForest(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("ls")

	require.NoError(t, err)
	assert.Equal(t, "src/\nsrc/App.tsx\nsrc/index.css\nREADME.md\n", out)
	assert.Equal(t, 1, h.opened)
	assert.Equal(t, 1, h.closed)
}

func TestCat(t *testing.T) {
	h := newHarness(t)
	h.addFile(t, "main.py", "print('hi')")

	out, err := h.run("cat", "main.py")

	require.NoError(t, err)
	assert.Equal(t, "print('hi')\n", out)
}

func TestRun_PrintsTranscript(t *testing.T) {
	h := newHarness(t)
	h.addFile(t, "main.py", "print(input())")

	out, err := h.run("run", "main.py", "--stdin", `a\nb`)

	require.NoError(t, err)
	assert.Contains(t, out, "Execution Success (Exit code: 0)")
	assert.Contains(t, out, "hi")
	require.Len(t, h.requests, 1)
	assert.Equal(t, "a\nb\n", h.requests[0].Stdin)
	assert.Equal(t, "print(input())", h.requests[0].Files[0].Content)
}

func TestRun_WithPackagesPrependsImports(t *testing.T) {
	h := newHarness(t)
	h.addFile(t, "main.py", "print(1)")

	_, err := h.run("run", "main.py", "--package", "numpy")

	require.NoError(t, err)
	require.Len(t, h.requests, 1)
	assert.Contains(t, h.requests[0].Files[0].Content, "import numpy")
}

func TestRuntimes(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("runtimes")

	require.NoError(t, err)
	assert.Equal(t, "python 3.10.0 (py)\ngo 1.16.2\n", out)
}

func TestLint_Clean(t *testing.T) {
	h := newHarness(t)
	h.addFile(t, "ok.py", "x = 1\n")

	out, err := h.run("lint", "ok.py")

	require.NoError(t, err)
	assert.Equal(t, "No problems\n", out)
}

func TestReset(t *testing.T) {
	h := newHarness(t)
	h.addFile(t, "main.py", "")

	out, err := h.run("reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Workspace reset")

	out, err = h.run("ls")
	require.NoError(t, err)
	assert.NotContains(t, out, "main.py")
}

func TestVersion(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("version")

	require.NoError(t, err)
	assert.Equal(t, "codecollab version dev\n", out)
	assert.Zero(t, h.opened)
}

func TestDataDirFlag(t *testing.T) {
	h := newHarness(t)
	var got string
	open := h.env.open
	h.env.open = func(cfg *config.Config) (*app, error) {
		got = cfg.Storage.DataDir
		return open(cfg)
	}

	_, err := h.run("ls", "--data-dir", "/tmp/cc")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/cc", got)
}

// --- ERROR PATH TESTS ---

func TestRun_FailedRunReturnsExitError(t *testing.T) {
	h := newHarness(t)
	h.result.Run = execution.Stage{Stderr: "boom", Code: 2}
	h.addFile(t, "main.py", "raise SystemExit(2)")

	out, err := h.run("run", "main.py")

	var exit *ExitError
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 2, exit.Code)
	assert.Contains(t, out, "boom")
}

func TestRun_KilledRunReturnsExitError(t *testing.T) {
	h := newHarness(t)
	sig := "SIGKILL"
	h.result.Run = execution.Stage{Signal: &sig}
	h.addFile(t, "main.py", "while True: pass")

	out, err := h.run("run", "main.py")

	var exit *ExitError
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 1, exit.Code)
	assert.Contains(t, out, "Execution Failed (Signal: SIGKILL)")
}

func TestRun_UnsupportedLanguage(t *testing.T) {
	h := newHarness(t)
	h.addFile(t, "notes.txt", "hello")

	_, err := h.run("run", "notes.txt")

	var unsupported *execution.UnsupportedLanguageError
	assert.True(t, errors.As(err, &unsupported))
	assert.Empty(t, h.requests)
}

func TestCat_MissingAndFolder(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("cat", "nope.py")
	assert.EqualError(t, err, "no such file: nope.py")

	_, err = h.run("cat", "src")
	assert.EqualError(t, err, "src is a folder")
}

func TestLint_Errors(t *testing.T) {
	h := newHarness(t)
	h.addFile(t, "bad.py", "a = 1; b = 2;\n")

	out, err := h.run("lint", "bad.py")

	var exit *ExitError
	require.True(t, errors.As(err, &exit))
	assert.Contains(t, out, "bad.py:")
}

func TestLint_NotPython(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("lint", "README.md")

	assert.EqualError(t, err, "README.md is not a Python file")
}

func TestReset_RequiresConfirmation(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("reset")

	assert.Error(t, err)
	assert.Zero(t, h.opened)
}

func TestConfigLoadFailure_FallsBackToDefaults(t *testing.T) {
	h := newHarness(t)
	h.env.loadConfig = func() (*config.Config, error) { return nil, errors.New("bad json") }

	var out, errOut bytes.Buffer
	err := execute(h.env, []string{"ls"}, &out, &errOut)

	require.NoError(t, err)
	assert.Contains(t, errOut.String(), "failed to load config")
	assert.Contains(t, out.String(), "README.md")
}
