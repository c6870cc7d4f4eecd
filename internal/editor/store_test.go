package editor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Cyclone1070/codecollab/internal/config"
	"github.com/Cyclone1070/codecollab/internal/execution"
	"github.com/Cyclone1070/codecollab/internal/storage"
	"github.com/Cyclone1070/codecollab/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *workspace.Store) {
	t.Helper()
	blobs := storage.NewMemoryStore()
	require.NoError(t, blobs.Put("files", []byte("[]")))
	files := workspace.NewStore(blobs, "files", nil)
	s := NewStore(files, config.DefaultConfig(), nil)
	s.LoadFiles()
	return s, files
}

func currentID(st State) string {
	if st.CurrentFileID == nil {
		return ""
	}
	return *st.CurrentFileID
}

func tabIDs(st State) []string {
	ids := make([]string, len(st.OpenTabs))
	for i, tab := range st.OpenTabs {
		ids[i] = tab.ID
	}
	return ids
}

// --- TABS ---

func TestOpenFile_CreatesCleanTab(t *testing.T) {
	s, files := newTestStore(t)
	f := files.CreateFile("main.py", nil)
	files.UpdateFileContent(f.ID, "print(1)")

	s.OpenFile(f.ID)

	st := s.State()
	require.Len(t, st.OpenTabs, 1)
	tab := st.OpenTabs[0]
	assert.Equal(t, EditorTab{
		ID: f.ID, FileID: f.ID, FileName: "main.py",
		Content: "print(1)", Language: "python",
	}, tab)
	assert.Equal(t, f.ID, currentID(st))
}

func TestOpenFile_TwiceFocusesExistingTab(t *testing.T) {
	s, files := newTestStore(t)
	a := files.CreateFile("a.py", nil)
	b := files.CreateFile("b.py", nil)

	s.OpenFile(a.ID)
	s.OpenFile(b.ID)
	s.OpenFile(a.ID)

	st := s.State()
	assert.Equal(t, []string{a.ID, b.ID}, tabIDs(st))
	assert.Equal(t, a.ID, currentID(st))
}

func TestOpenFile_ExistingTabNotReloaded(t *testing.T) {
	s, files := newTestStore(t)
	f := files.CreateFile("a.py", nil)
	s.OpenFile(f.ID)
	s.UpdateTabContent(f.ID, "buffer")
	files.UpdateFileContent(f.ID, "external")

	s.OpenFile(f.ID)

	tab, _ := s.State().Tab(f.ID)
	assert.Equal(t, "buffer", tab.Content)
	assert.True(t, tab.IsDirty)
}

func TestOpenFile_MissingOrFolder_NoOp(t *testing.T) {
	s, files := newTestStore(t)
	folder := files.CreateFolder("lib", nil)

	s.OpenFile("missing")
	s.OpenFile(folder.ID)

	st := s.State()
	assert.Empty(t, st.OpenTabs)
	assert.Nil(t, st.CurrentFileID)
}

func TestCloseTab(t *testing.T) {
	tests := []struct {
		name        string
		open        int
		focus       int
		close       int
		wantCurrent int // -1 means none
	}{
		{"active middle falls back to last", 3, 1, 1, 2},
		{"active last falls back to new last", 3, 2, 2, 1},
		{"inactive keeps current", 3, 0, 2, 0},
		{"only tab leaves none", 1, 0, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, files := newTestStore(t)
			ids := make([]string, tt.open)
			for i := range ids {
				ids[i] = files.CreateFile("f.py", nil).ID
				s.OpenFile(ids[i])
			}
			s.OpenFile(ids[tt.focus])

			s.CloseTab(ids[tt.close])

			st := s.State()
			assert.Len(t, st.OpenTabs, tt.open-1)
			if tt.wantCurrent < 0 {
				assert.Nil(t, st.CurrentFileID)
			} else {
				assert.Equal(t, ids[tt.wantCurrent], currentID(st))
			}
		})
	}
}

func TestUpdateTabContent_AlwaysDirty(t *testing.T) {
	s, files := newTestStore(t)
	f := files.CreateFile("a.py", nil)
	s.OpenFile(f.ID)

	s.UpdateTabContent(f.ID, "")

	tab, _ := s.State().Tab(f.ID)
	assert.True(t, tab.IsDirty, "dirty even though content equals the persisted value")
}

func TestSaveFile_WritesBufferAndClearsDirty(t *testing.T) {
	s, files := newTestStore(t)
	f := s.CreateFile("main.py", nil)
	s.OpenFile(f.ID)

	s.UpdateTabContent(f.ID, `print("hi")`)
	tab, _ := s.State().Tab(f.ID)
	require.True(t, tab.IsDirty)

	s.SaveFile(f.ID)

	tab, _ = s.State().Tab(f.ID)
	assert.False(t, tab.IsDirty)
	node, ok := files.GetByID(f.ID)
	require.True(t, ok)
	assert.Equal(t, `print("hi")`, node.ContentString())
}

func TestSaveFile_NoTab_NoOp(t *testing.T) {
	s, files := newTestStore(t)
	f := files.CreateFile("a.py", nil)
	files.UpdateFileContent(f.ID, "persisted")

	s.SaveFile(f.ID)

	node, _ := files.GetByID(f.ID)
	assert.Equal(t, "persisted", node.ContentString())
}

func TestSaveAll(t *testing.T) {
	s, files := newTestStore(t)
	a := files.CreateFile("a.py", nil)
	b := files.CreateFile("b.py", nil)
	c := files.CreateFile("c.py", nil)
	for _, id := range []string{a.ID, b.ID, c.ID} {
		s.OpenFile(id)
	}
	s.UpdateTabContent(a.ID, "A")
	s.UpdateTabContent(c.ID, "C")

	n := s.SaveAll()

	assert.Equal(t, 2, n)
	assert.Zero(t, s.State().DirtyCount())
	node, _ := files.GetByID(c.ID)
	assert.Equal(t, "C", node.ContentString())
}

// --- SUBSCRIPTION ---

func TestSubscribe_ReceivesSnapshots(t *testing.T) {
	s, _ := newTestStore(t)
	var got []bool
	unsubscribe := s.Subscribe(func(st State) {
		got = append(got, st.IsSidebarOpen)
	})

	s.ToggleSidebar()
	s.ToggleSidebar()
	unsubscribe()
	s.ToggleSidebar()

	assert.Equal(t, []bool{false, true}, got)
}

func TestSubscribe_ListenerMayCallStore(t *testing.T) {
	s, _ := newTestStore(t)
	var seen State
	s.Subscribe(func(State) { seen = s.State() })

	s.ToggleTheme()

	assert.Equal(t, ThemeLight, seen.Theme)
}

func TestSnapshot_IsIsolated(t *testing.T) {
	s, files := newTestStore(t)
	f := files.CreateFile("a.py", nil)
	s.OpenFile(f.ID)

	st := s.State()
	st.OpenTabs[0].Content = "mutated"
	*st.CurrentFileID = "other"

	fresh := s.State()
	assert.Equal(t, "", fresh.OpenTabs[0].Content)
	assert.Equal(t, f.ID, currentID(fresh))
}

// --- UI FLAGS ---

func TestFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Editor.Theme = "light"
	cfg.Editor.TerminalOpen = false
	s := NewStore(workspace.NewStore(storage.NewMemoryStore(), "k", nil), cfg, nil)

	st := s.State()
	assert.Equal(t, ThemeLight, st.Theme)
	assert.False(t, st.IsTerminalOpen)
	assert.Equal(t, PanelExplorer, st.ActivePanel)

	s.ToggleTheme()
	s.ToggleTerminal()
	s.TogglePreview()
	s.ToggleSidebar()
	s.SetActivePanel(PanelSearch)

	st = s.State()
	assert.Equal(t, ThemeDark, st.Theme)
	assert.True(t, st.IsTerminalOpen)
	assert.True(t, st.IsPreviewOpen)
	assert.True(t, st.IsSidebarOpen, "selecting a panel reopens the sidebar")
	assert.Equal(t, PanelSearch, st.ActivePanel)
}

// --- FILE ACTIONS ---

func TestRenameFile_UpdatesTab(t *testing.T) {
	s, _ := newTestStore(t)
	f := s.CreateFile("script.js", nil)
	s.OpenFile(f.ID)

	s.RenameFile(f.ID, "script.rb")

	tab, _ := s.State().Tab(f.ID)
	assert.Equal(t, "script.rb", tab.FileName)
	assert.Equal(t, "ruby", tab.Language)
	node, _ := workspace.FindByID(s.State().Files, f.ID)
	assert.Equal(t, "script.rb", node.Name)
}

func TestDeleteFile_ClosesSubtreeTabs(t *testing.T) {
	s, _ := newTestStore(t)
	dir := s.CreateFolder("pkg", nil)
	inner := s.CreateFile("inner.go", &dir.ID)
	outer := s.CreateFile("outer.go", nil)
	s.OpenFile(outer.ID)
	s.OpenFile(inner.ID)

	s.DeleteFile(dir.ID)

	st := s.State()
	assert.Equal(t, []string{outer.ID}, tabIDs(st))
	assert.Equal(t, outer.ID, currentID(st))
	_, ok := workspace.FindByID(st.Files, inner.ID)
	assert.False(t, ok)
}

func TestToggleFolder_RefreshesMirror(t *testing.T) {
	s, _ := newTestStore(t)
	dir := s.CreateFolder("pkg", nil)

	s.ToggleFolder(dir.ID)

	node, _ := workspace.FindByID(s.State().Files, dir.ID)
	assert.True(t, node.Expanded())
}

func TestResetWorkspace(t *testing.T) {
	s, _ := newTestStore(t)
	f := s.CreateFile("a.py", nil)
	s.OpenFile(f.ID)

	s.ResetWorkspace()

	st := s.State()
	assert.Empty(t, st.OpenTabs)
	assert.Nil(t, st.CurrentFileID)
	assert.Len(t, st.Files, 2)
}

// --- EXECUTION ---

type mockExecutor struct {
	mu       sync.Mutex
	calls    []string
	packages []string
	result   *execution.Result
	err      error
	block    chan struct{}
}

func (m *mockExecutor) Execute(ctx context.Context, code, language, stdin string) (*execution.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, "execute:"+language+":"+code)
	block := m.block
	m.mu.Unlock()
	if block != nil {
		<-block
	}
	return m.result, m.err
}

func (m *mockExecutor) ExecutePython(ctx context.Context, code string, packages []string, stdin string) (*execution.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "python:"+code)
	m.packages = packages
	return m.result, m.err
}

func TestRunGeneration_StaleResultDiscarded(t *testing.T) {
	s, _ := newTestStore(t)
	first := s.BeginRun()
	second := s.BeginRun()
	newer := &execution.Result{Language: "python", Run: execution.Stage{Stdout: "new"}}
	older := &execution.Result{Language: "python", Run: execution.Stage{Stdout: "old"}}

	assert.True(t, s.FinishRun(second, newer, nil))
	assert.False(t, s.FinishRun(first, older, nil))

	st := s.State()
	assert.Same(t, newer, st.ExecutionResult)
	assert.False(t, st.IsExecuting)
}

func TestBeginRun_ClearsPreviousResult(t *testing.T) {
	s, _ := newTestStore(t)
	gen := s.BeginRun()
	s.FinishRun(gen, &execution.Result{}, errors.New("boom"))

	s.BeginRun()

	st := s.State()
	assert.Nil(t, st.ExecutionResult)
	assert.Empty(t, st.ExecutionError)
	assert.True(t, st.IsExecuting)
	assert.True(t, st.IsTerminalOpen)
}

func TestRunActive(t *testing.T) {
	s, _ := newTestStore(t)
	f := s.CreateFile("main.go", nil)
	s.OpenFile(f.ID)
	s.UpdateTabContent(f.ID, "package main")
	want := &execution.Result{Language: "go", Version: "1.16.2"}
	exec := &mockExecutor{result: want}

	ok := s.RunActive(context.Background(), exec, RunOptions{})

	assert.True(t, ok)
	assert.Equal(t, []string{"execute:go:package main"}, exec.calls)
	assert.Same(t, want, s.State().ExecutionResult)
}

func TestRunActive_PythonWithPackages(t *testing.T) {
	s, _ := newTestStore(t)
	f := s.CreateFile("main.py", nil)
	s.OpenFile(f.ID)
	exec := &mockExecutor{result: &execution.Result{}}

	s.RunActive(context.Background(), exec, RunOptions{Packages: []string{"numpy"}})

	assert.Equal(t, []string{"python:"}, exec.calls)
	assert.Equal(t, []string{"numpy"}, exec.packages)
}

func TestRunActive_ErrorBecomesFailedRun(t *testing.T) {
	s, _ := newTestStore(t)
	f := s.CreateFile("notes.md", nil)
	s.OpenFile(f.ID)
	exec := &mockExecutor{err: &execution.UnsupportedLanguageError{Language: "markdown"}}

	s.RunActive(context.Background(), exec, RunOptions{})

	st := s.State()
	require.NotNil(t, st.ExecutionResult)
	assert.Equal(t, 1, st.ExecutionResult.Run.Code)
	assert.Contains(t, st.ExecutionResult.Run.Stderr, "markdown")
	assert.Contains(t, st.ExecutionError, "not supported")
}

func TestRunActive_NoActiveTab(t *testing.T) {
	s, _ := newTestStore(t)
	exec := &mockExecutor{}

	assert.False(t, s.RunActive(context.Background(), exec, RunOptions{}))
	assert.Empty(t, exec.calls)
	assert.Zero(t, s.State().RunGeneration)
}

func TestRunActive_OverlappingRuns_LatestWins(t *testing.T) {
	s, _ := newTestStore(t)
	f := s.CreateFile("main.py", nil)
	s.OpenFile(f.ID)

	slow := &mockExecutor{
		result: &execution.Result{Run: execution.Stage{Stdout: "slow"}},
		block:  make(chan struct{}),
	}
	fast := &mockExecutor{result: &execution.Result{Run: execution.Stage{Stdout: "fast"}}}

	done := make(chan bool)
	go func() { done <- s.RunActive(context.Background(), slow, RunOptions{}) }()
	require.Eventually(t, func() bool { return s.State().RunGeneration == 1 }, time.Second, time.Millisecond)

	assert.True(t, s.RunActive(context.Background(), fast, RunOptions{}))
	close(slow.block)
	assert.False(t, <-done)

	assert.Equal(t, "fast", s.State().ExecutionResult.Run.Stdout)
}
