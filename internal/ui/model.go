package ui

import (
	"context"
	"strings"
	"time"

	"github.com/Cyclone1070/codecollab/internal/command"
	"github.com/Cyclone1070/codecollab/internal/config"
	"github.com/Cyclone1070/codecollab/internal/debounce"
	"github.com/Cyclone1070/codecollab/internal/editor"
	"github.com/Cyclone1070/codecollab/internal/execution"
	"github.com/Cyclone1070/codecollab/internal/extensions"
	"github.com/Cyclone1070/codecollab/internal/preview"
	"github.com/Cyclone1070/codecollab/internal/python"
	"github.com/Cyclone1070/codecollab/internal/scm"
	"github.com/Cyclone1070/codecollab/internal/search"
	"github.com/Cyclone1070/codecollab/internal/ui/views"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type focus int

const (
	focusEditor focus = iota
	focusSidebar
	focusPalette
	focusPrompt
	focusCompletion
)

// Internal messages
type (
	stateChangedMsg struct{}
	debugChangedMsg struct{}
	runDoneMsg      struct{ applied bool }
	debugDoneMsg    struct{}
	previewMsg      struct {
		tabID   string
		content string
		text    string
		err     error
	}
)

// prompt is a pending single-line question.
type prompt struct {
	label  string
	input  textinput.Model
	submit func(value string) tea.Cmd
}

// Model implements tea.Model.
type Model struct {
	cfg      *config.Config
	store    *editor.Store
	exec     executor
	searcher *search.Searcher
	scm      sourceControl
	exts     extensionRegistry
	dbg      debugger
	preview  previewer
	logger   *zap.Logger
	commands *command.Registry
	send     func(tea.Msg)

	ctx    context.Context
	cancel context.CancelFunc

	state  editor.State
	styles views.Styles
	theme  editor.Theme
	width  int
	height int
	focus  focus
	status string

	editor    textarea.Model
	editingID string
	spinner   spinner.Model
	runOpts   editor.RunOptions
	pending   tea.Cmd // set by palette handlers

	explorerCursor int

	paletteInput  textinput.Model
	paletteCursor int
	prompt        *prompt
	returnFocus   focus

	searchQuery   textinput.Model
	searchReplace textinput.Model
	searchField   int
	searchReq     search.Request
	searchLast    string
	searchResult  *search.Response
	searchErr     string
	searchCursor  int

	commitInput   textinput.Model
	commitEditing bool
	changes       []scm.Change
	history       []scm.Commit
	scmCursor     int
	scmErr        string

	extFilter    textinput.Model
	extFiltering bool
	extEntries   []extensions.Entry
	extCursor    int
	extErr       string

	debugState python.DebugState
	watch      string

	problems []python.Diagnostic

	completions      []python.CompletionItem
	completionCursor int
	completionWord   string

	previewText string
	debouncer   *debounce.Debouncer
}

func newModel(deps Dependencies) *Model {
	switch {
	case deps.Store == nil:
		panic("store is required")
	case deps.Executor == nil:
		panic("executor is required")
	case deps.Searcher == nil:
		panic("searcher is required")
	case deps.SCM == nil:
		panic("scm is required")
	case deps.Extensions == nil:
		panic("extensions is required")
	case deps.Debugger == nil:
		panic("debugger is required")
	case deps.Previewer == nil:
		panic("previewer is required")
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	if deps.Spinner != nil {
		sp = deps.Spinner()
	}

	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.Placeholder = "Select a file to start editing"
	ta.Focus()

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		cfg:           cfg,
		store:         deps.Store,
		exec:          deps.Executor,
		searcher:      deps.Searcher,
		scm:           deps.SCM,
		exts:          deps.Extensions,
		dbg:           deps.Debugger,
		preview:       deps.Previewer,
		logger:        logger,
		commands:      command.NewRegistry(),
		ctx:           ctx,
		cancel:        cancel,
		editor:        ta,
		spinner:       sp,
		paletteInput:  newInput("Type a command"),
		searchQuery:   newInput("Search"),
		searchReplace: newInput("Replace"),
		commitInput:   newInput("Message (enter to commit)"),
		extFilter:     newInput("Search extensions"),
		debouncer:     debounce.New(time.Duration(cfg.UI.PreviewDebounceMs) * time.Millisecond),
	}
	m.registerCommands()
	m.store.LoadFiles()
	m.state = m.store.State()
	m.styles = views.NewStyles(cfg.UI, m.state.Theme)
	m.theme = m.state.Theme
	m.debugState = m.dbg.State()
	m.extEntries = m.exts.List("")
	m.syncEditor()
	return m
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = "› "
	return in
}

func (m *Model) shutdown() {
	m.cancel()
	m.debouncer.Stop()
}

// Init starts the cursor blink and spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// refresh pulls the latest snapshot from the store.
func (m *Model) refresh() {
	m.state = m.store.State()
	if m.state.Theme != m.theme {
		m.theme = m.state.Theme
		m.styles = views.NewStyles(m.cfg.UI, m.theme)
	}
	if !m.state.IsSidebarOpen && m.focus == focusSidebar {
		m.setFocus(focusEditor)
	}
	rows := views.Flatten(m.state.Files)
	m.explorerCursor = max(0, min(m.explorerCursor, len(rows)-1))
	m.syncEditor()
	m.resize()
	m.schedulePreview()
}

// syncEditor loads the active tab into the editor widget when it differs
// from what the widget shows.
func (m *Model) syncEditor() {
	tab, ok := m.state.ActiveTab()
	if !ok {
		if m.editingID != "" || m.editor.Value() != "" {
			m.editor.Reset()
			m.editingID = ""
		}
		return
	}
	if tab.ID != m.editingID || tab.Content != m.editor.Value() {
		m.editor.SetValue(tab.Content)
		m.editingID = tab.ID
	}
}

func (m *Model) resize() {
	if m.width == 0 {
		return
	}
	z := m.sizes()
	w, h := z.EditorInner()
	m.editor.SetWidth(w)
	m.editor.SetHeight(h)
	in := max(z.SidebarWidth-6, 8)
	for _, ti := range []*textinput.Model{&m.searchQuery, &m.searchReplace, &m.commitInput, &m.extFilter} {
		ti.Width = in
	}
	m.paletteInput.Width = max(m.paletteWidth()-8, 10)
}

func (m *Model) sizes() views.Sizes {
	return views.Layout(m.width, m.height, m.state.IsSidebarOpen, m.state.IsTerminalOpen, m.previewVisible())
}

func (m *Model) paletteWidth() int {
	return max(min(m.width-4, 70), 20)
}

func (m *Model) previewVisible() bool {
	if !m.state.IsPreviewOpen {
		return false
	}
	tab, ok := m.state.ActiveTab()
	return ok && preview.Supports(tab.Language)
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusEditor {
		m.editor.Focus()
	} else {
		m.editor.Blur()
	}
}

func (m *Model) setStatus(msg string) {
	m.status = msg
}

// schedulePreview re-renders the preview after the debounce delay. Without a
// running program the preview is rendered immediately.
func (m *Model) schedulePreview() {
	if !m.previewVisible() {
		m.previewText = ""
		return
	}
	tab, _ := m.state.ActiveTab()
	width := max(m.sizes().PreviewWidth-2, 10)
	render := func() tea.Msg {
		text, err := m.preview.Render(tab, width)
		return previewMsg{tabID: tab.ID, content: tab.Content, text: text, err: err}
	}
	if m.send == nil {
		m.applyPreview(render().(previewMsg))
		return
	}
	send := m.send
	m.debouncer.Trigger(func() { send(render()) })
}

func (m *Model) applyPreview(msg previewMsg) {
	tab, ok := m.state.ActiveTab()
	if !ok || tab.ID != msg.tabID {
		return
	}
	if msg.err != nil {
		m.previewText = m.styles.ErrorText.Render(msg.err.Error())
		return
	}
	m.previewText = msg.text
}

// View renders the UI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	z := m.sizes()
	s := m.styles
	tab, hasTab := m.state.ActiveTab()

	f := views.Frame{
		Width:          m.width,
		Height:         m.height,
		Sizes:          z,
		Styles:         s,
		ActivityBar:    views.RenderActivityBar(m.state.ActivePanel, m.state.IsSidebarOpen, z.MainHeight, s),
		SidebarFocused: m.focus == focusSidebar,
		Tabs:           views.RenderTabs(m.state.OpenTabs, tab.ID, z.MainWidth, s),
		EditorFocused:  m.focus == focusEditor,
		Preview:        m.previewText,
	}
	if z.SidebarWidth > 0 {
		f.Sidebar = m.renderSidebar(z.MainHeight - 2)
	}
	if hasTab {
		f.Editor = m.editor.View()
	} else {
		f.Editor = s.Faint.Render("Open a file from the explorer, or press ctrl+p for commands.")
	}
	if z.TerminalHeight > 0 {
		f.Terminal = views.RenderTerminal(views.Terminal{
			Lines:    execution.Transcript(m.state.ExecutionResult, m.state.IsExecuting),
			Spinner:  m.spinner.View(),
			Problems: m.problems,
		}, z.TerminalHeight-2, s)
	}

	st := views.Status{
		Branch:    m.scm.Branch(),
		Dirty:     m.state.DirtyCount(),
		Executing: m.state.IsExecuting,
		Debugging: m.debugState.IsRunning || m.debugState.CurrentLine > 0,
		Spinner:   m.spinner.View(),
		Message:   m.status,
		Theme:     string(m.state.Theme),
	}
	if hasTab {
		st.Language = tab.Language
		st.Line, st.Column = m.cursor()
	}
	f.Status = views.RenderStatus(st, m.width, s)

	switch m.focus {
	case focusPalette:
		f.Overlay = views.RenderPalette(views.Palette{
			Input:    m.paletteInput.View(),
			Commands: m.paletteCommands(),
			Cursor:   m.paletteCursor,
		}, m.paletteWidth(), m.height-2, s)
	case focusPrompt:
		if m.prompt != nil {
			f.Overlay = views.RenderPrompt(views.Prompt{Label: m.prompt.label, Input: m.prompt.input.View()}, m.paletteWidth(), s)
		}
	case focusCompletion:
		f.Overlay = m.renderCompletions()
	}
	return views.RenderRoot(f)
}

func (m *Model) renderSidebar(height int) string {
	s := m.styles
	switch m.state.ActivePanel {
	case editor.PanelSearch:
		return views.RenderSearch(views.Search{
			Query:         m.searchQuery.View(),
			Replace:       m.searchReplace.View(),
			CaseSensitive: m.searchReq.CaseSensitive,
			WholeWord:     m.searchReq.WholeWord,
			Regex:         m.searchReq.Regex,
			Result:        m.searchResult,
			Err:           m.searchErr,
			Cursor:        m.searchCursor,
		}, height, s)
	case editor.PanelSCM:
		return views.RenderSCM(views.SCM{
			Branch:  m.scm.Branch(),
			Message: m.commitInput.View(),
			Changes: m.changes,
			Log:     m.history,
			Cursor:  m.scmCursor,
			Err:     m.scmErr,
		}, height, s)
	case editor.PanelExtensions:
		return views.RenderExtensions(views.Extensions{
			Filter:  m.extFilter.View(),
			Entries: m.extEntries,
			Cursor:  m.extCursor,
			Err:     m.extErr,
		}, height, s)
	case editor.PanelDebug:
		return views.RenderDebug(views.Debug{State: m.debugState, Watch: m.watch}, height, s)
	default:
		dirty := make(map[string]bool)
		for _, t := range m.state.OpenTabs {
			if t.IsDirty {
				dirty[t.ID] = true
			}
		}
		active := ""
		if m.state.CurrentFileID != nil {
			active = *m.state.CurrentFileID
		}
		return views.RenderExplorer(views.Explorer{
			Rows:     views.Flatten(m.state.Files),
			Cursor:   m.explorerCursor,
			ActiveID: active,
			Dirty:    dirty,
		}, height, s)
	}
}

func (m *Model) renderCompletions() string {
	var lines []string
	lines = append(lines, m.styles.Title.Render("Suggestions"))
	for i, c := range m.completions {
		if i >= 10 {
			break
		}
		label := c.Label + m.styles.Faint.Render("  "+string(c.Kind))
		if i == m.completionCursor {
			lines = append(lines, m.styles.Selected.Render("› ")+label)
		} else {
			lines = append(lines, "  "+label)
		}
	}
	if c := m.completions[m.completionCursor]; c.Documentation != "" {
		lines = append(lines, "", m.styles.Faint.Render(c.Documentation))
	}
	return views.RenderPrompt(views.Prompt{Label: strings.Join(lines, "\n")}, m.paletteWidth(), m.styles)
}
