package ui

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Cyclone1070/codecollab/internal/config"
	"github.com/Cyclone1070/codecollab/internal/editor"
	"github.com/Cyclone1070/codecollab/internal/execution"
	"github.com/Cyclone1070/codecollab/internal/extensions"
	"github.com/Cyclone1070/codecollab/internal/python"
	"github.com/Cyclone1070/codecollab/internal/scm"
	"github.com/Cyclone1070/codecollab/internal/search"
	"github.com/Cyclone1070/codecollab/internal/storage"
	"github.com/Cyclone1070/codecollab/internal/workspace"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	calls atomic.Int32
}

func (f *fakeExecutor) Execute(_ context.Context, code, language, stdin string) (*execution.Result, error) {
	f.calls.Add(1)
	return &execution.Result{Language: language, Run: execution.Stage{Stdout: "hello\n", Output: "hello\n"}}, nil
}

func (f *fakeExecutor) ExecutePython(ctx context.Context, code string, _ []string, stdin string) (*execution.Result, error) {
	return f.Execute(ctx, code, "python", stdin)
}

type fakePreviewer struct{}

func (fakePreviewer) Render(tab editor.EditorTab, width int) (string, error) {
	return "rendered " + tab.FileName, nil
}

type fixture struct {
	m     *Model
	files *workspace.Store
	exts  *extensions.Registry
	exec  *fakeExecutor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.DefaultConfig()
	blobs := storage.NewMemoryStore()
	files := workspace.NewStore(blobs, cfg.Storage.FilesKey, nil)
	repo, err := scm.Open(nil)
	require.NoError(t, err)
	exts := extensions.NewRegistry(blobs, cfg.Storage.ExtensionsKey, nil)
	exec := &fakeExecutor{}

	m := newModel(Dependencies{
		Config:     cfg,
		Store:      editor.NewStore(files, cfg, nil),
		Executor:   exec,
		Searcher:   search.NewSearcher(cfg),
		SCM:        repo,
		Extensions: exts,
		Debugger:   python.NewDebugger(time.Millisecond, nil),
		Previewer:  fakePreviewer{},
	})
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return &fixture{m: m, files: files, exts: exts, exec: exec}
}

func (f *fixture) press(keys ...tea.KeyMsg) tea.Cmd {
	var last tea.Cmd
	for _, k := range keys {
		_, last = f.m.Update(k)
	}
	return last
}

func (f *fixture) typeText(s string) {
	f.press(runes(s))
}

func (f *fixture) activeTab(t *testing.T) editor.EditorTab {
	t.Helper()
	tab, ok := f.m.store.State().ActiveTab()
	require.True(t, ok, "no active tab")
	return tab
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func alt(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true} }

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

// --- HAPPY PATH TESTS ---

func TestView_ShowsExplorerAndSeedFiles(t *testing.T) {
	f := newFixture(t)

	out := f.m.View()

	assert.Contains(t, out, "EXPLORER")
	assert.Contains(t, out, "README.md")
	assert.Contains(t, out, "App.tsx")
}

func TestExplorer_EnterOpensFile(t *testing.T) {
	f := newFixture(t)

	f.press(key(tea.KeyEsc))
	require.Equal(t, focusSidebar, f.m.focus)

	// Rows: src, src/App.tsx, src/index.css, README.md.
	f.press(key(tea.KeyDown), key(tea.KeyEnter))

	assert.Equal(t, "App.tsx", f.activeTab(t).FileName)
	assert.Equal(t, focusEditor, f.m.focus)
}

func TestExplorer_EnterOnFolderCollapses(t *testing.T) {
	f := newFixture(t)
	f.press(key(tea.KeyEsc), key(tea.KeyEnter))

	rows := 0
	for _, n := range f.m.state.Files {
		if n.Name == "src" {
			assert.False(t, n.Expanded())
		}
		rows++
	}
	assert.Equal(t, 2, rows)
}

func TestTyping_MarksDirtyAndSaveWritesFile(t *testing.T) {
	f := newFixture(t)
	f.m.openPath("README.md")
	before := f.activeTab(t).Content

	f.typeText("x")

	tab := f.activeTab(t)
	assert.True(t, tab.IsDirty)
	assert.Equal(t, before+"x", tab.Content)

	f.press(key(tea.KeyCtrlS))

	assert.False(t, f.activeTab(t).IsDirty)
	n, ok := f.files.FindByPath("README.md")
	require.True(t, ok)
	assert.Equal(t, before+"x", n.ContentString())
	assert.Contains(t, f.m.status, "Saved README.md")
}

func TestRun_RecordsResult(t *testing.T) {
	f := newFixture(t)
	f.m.openPath("src/App.tsx")

	cmd := f.press(key(tea.KeyCtrlR))
	require.NotNil(t, cmd)
	f.m.Update(cmd())

	st := f.m.store.State()
	require.NotNil(t, st.ExecutionResult)
	assert.Equal(t, "hello\n", st.ExecutionResult.Run.Stdout)
	assert.False(t, st.IsExecuting)
	assert.Equal(t, "Run finished", f.m.status)
	assert.Equal(t, int32(1), f.exec.calls.Load())
}

func TestRun_NoActiveTab(t *testing.T) {
	f := newFixture(t)

	cmd := f.press(key(tea.KeyCtrlR))

	assert.Nil(t, cmd)
	assert.Equal(t, "No file to run", f.m.status)
}

func TestPalette_ToggleTheme(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, editor.ThemeDark, f.m.state.Theme)

	f.press(key(tea.KeyCtrlP))
	require.Equal(t, focusPalette, f.m.focus)
	assert.Contains(t, f.m.View(), "Run Code")

	f.typeText("color theme")
	require.Len(t, f.m.paletteCommands(), 1)
	f.press(key(tea.KeyEnter))

	assert.Equal(t, editor.ThemeLight, f.m.state.Theme)
	assert.Equal(t, focusEditor, f.m.focus)
}

func TestPalette_EscCloses(t *testing.T) {
	f := newFixture(t)
	f.press(key(tea.KeyCtrlP), key(tea.KeyEsc))

	assert.Equal(t, focusEditor, f.m.focus)
}

func TestNewFilePrompt_CreatesAndOpens(t *testing.T) {
	f := newFixture(t)

	f.press(key(tea.KeyCtrlN))
	require.Equal(t, focusPrompt, f.m.focus)
	f.typeText("main.py")
	f.press(key(tea.KeyEnter))

	tab := f.activeTab(t)
	assert.Equal(t, "main.py", tab.FileName)
	assert.Equal(t, "python", tab.Language)
	_, ok := f.files.FindByPath("main.py")
	assert.True(t, ok)
}

func TestSearch_RunAndOpenMatch(t *testing.T) {
	f := newFixture(t)

	f.press(alt('f'))
	require.Equal(t, editor.PanelSearch, f.m.state.ActivePanel)
	f.typeText("className")
	f.press(key(tea.KeyEnter))

	require.NotNil(t, f.m.searchResult)
	require.NotEmpty(t, f.m.searchResult.Matches)
	first := f.m.searchResult.Matches[0]
	assert.Equal(t, "src/App.tsx", first.Path)
	assert.Contains(t, f.m.View(), "SEARCH")

	f.press(key(tea.KeyEnter))

	assert.Equal(t, first.FileID, f.activeTab(t).ID)
	line, _ := f.m.cursor()
	assert.Equal(t, first.Line, line)
}

func TestSearch_InvalidRegexShowsError(t *testing.T) {
	f := newFixture(t)

	f.press(alt('f'), alt('r'))
	f.typeText("(")
	f.press(key(tea.KeyEnter))

	assert.Nil(t, f.m.searchResult)
	assert.NotEmpty(t, f.m.searchErr)
}

func TestSearch_ReplaceAllEditsTabs(t *testing.T) {
	f := newFixture(t)

	f.press(alt('f'))
	f.typeText("className")
	f.press(key(tea.KeyTab))
	f.typeText("class")
	f.press(key(tea.KeyCtrlA))

	st := f.m.store.State()
	app, ok := workspace.FindByPath(st.Files, "src/App.tsx")
	require.True(t, ok)
	tab, ok := st.Tab(app.ID)
	require.True(t, ok)
	assert.True(t, tab.IsDirty)
	assert.Contains(t, tab.Content, `<div class="App">`)
	assert.NotContains(t, tab.Content, "className")
	assert.Contains(t, f.m.status, "Replaced")
}

func TestSCM_StageAllAndCommit(t *testing.T) {
	f := newFixture(t)

	f.press(alt('g'))
	require.Equal(t, editor.PanelSCM, f.m.state.ActivePanel)
	require.NotEmpty(t, f.m.changes)
	for _, c := range f.m.changes {
		assert.False(t, c.Staged)
	}

	f.press(runes("a"))
	for _, c := range f.m.changes {
		assert.True(t, c.Staged)
	}

	f.press(runes("c"))
	f.typeText("initial")
	f.press(key(tea.KeyEnter))

	assert.Empty(t, f.m.scmErr)
	assert.Empty(t, f.m.changes)
	require.Len(t, f.m.history, 1)
	assert.Equal(t, "initial", strings.TrimSpace(f.m.history[0].Message))
	assert.Contains(t, f.m.status, "Committed")
}

func TestSCM_EmptyCommitMessage(t *testing.T) {
	f := newFixture(t)
	f.press(alt('g'), runes("a"), runes("c"), key(tea.KeyEnter))

	assert.NotEmpty(t, f.m.scmErr)
	assert.Empty(t, f.m.history)
}

func TestExtensions_ToggleInstall(t *testing.T) {
	f := newFixture(t)

	f.press(alt('x'))
	require.NotEmpty(t, f.m.extEntries)
	first := f.m.extEntries[0]
	require.Equal(t, "python", first.ID)
	require.True(t, first.Installed)

	f.press(runes("i"))

	assert.False(t, f.exts.IsInstalled("python"))
	assert.False(t, f.m.extEntries[0].Installed)
}

func TestExtensions_Filter(t *testing.T) {
	f := newFixture(t)

	f.press(alt('x'), runes("/"))
	f.typeText("gitlens")
	f.press(key(tea.KeyEnter))

	require.Len(t, f.m.extEntries, 1)
	assert.Equal(t, "gitlens", f.m.extEntries[0].ID)
	assert.False(t, f.m.extFiltering)
}

func TestCompletion_AcceptReplacesWord(t *testing.T) {
	f := newFixture(t)
	f.press(key(tea.KeyCtrlN))
	f.typeText("main.py")
	f.press(key(tea.KeyEnter))

	f.typeText("pri")
	f.press(alt('/'))
	require.Equal(t, focusCompletion, f.m.focus)
	item := f.m.completions[0]

	f.press(key(tea.KeyEnter))

	assert.Equal(t, focusEditor, f.m.focus)
	assert.Equal(t, item.Expand(f.m.cfg.Editor.TabSize), f.activeTab(t).Content)
}

func TestPreview_RendersMarkdown(t *testing.T) {
	f := newFixture(t)
	f.m.openPath("README.md")

	f.press(alt('p'))

	assert.True(t, f.m.state.IsPreviewOpen)
	assert.Equal(t, "rendered README.md", f.m.previewText)
}

func TestPreview_HiddenForUnsupportedLanguage(t *testing.T) {
	f := newFixture(t)
	f.m.openPath("src/App.tsx")

	f.press(alt('p'))

	assert.False(t, f.m.previewVisible())
	assert.Empty(t, f.m.previewText)
}

func TestDebug_ToggleBreakpointAtCursor(t *testing.T) {
	f := newFixture(t)
	f.m.openPath("README.md")
	f.m.moveToLine(1)

	f.press(key(tea.KeyF9))

	require.Len(t, f.m.debugState.Breakpoints, 1)
	assert.Equal(t, 1, f.m.debugState.Breakpoints[0].Line)
}

func TestFormat_OnlyForPython(t *testing.T) {
	f := newFixture(t)
	f.m.openPath("README.md")

	f.press(alt('F'))

	assert.Equal(t, "Only available for Python files", f.m.status)
}

func TestCloseTab(t *testing.T) {
	f := newFixture(t)
	f.m.openPath("README.md")

	f.press(key(tea.KeyCtrlW))

	assert.Empty(t, f.m.store.State().OpenTabs)
	assert.Empty(t, f.m.editor.Value())
}

func TestToggles(t *testing.T) {
	f := newFixture(t)

	f.press(key(tea.KeyCtrlB))
	assert.False(t, f.m.state.IsSidebarOpen)
	assert.NotContains(t, f.m.View(), "EXPLORER")

	f.press(key(tea.KeyCtrlT))
	assert.False(t, f.m.state.IsTerminalOpen)
}

func TestCtrlC_Quits(t *testing.T) {
	f := newFixture(t)

	cmd := f.press(key(tea.KeyCtrlC))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

// --- ERROR PATH TESTS ---

func TestNewModel_PanicsWithoutDependencies(t *testing.T) {
	assert.Panics(t, func() { newModel(Dependencies{}) })
}

func TestOpenPath_Missing(t *testing.T) {
	f := newFixture(t)

	f.m.openPath("nope.txt")

	assert.Equal(t, "No such file: nope.txt", f.m.status)
	_, ok := f.m.store.State().ActiveTab()
	assert.False(t, ok)
}
