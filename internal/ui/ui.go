// Package ui is the terminal front end: a Bubble Tea program that renders
// editor snapshots and turns key presses into store actions.
package ui

import (
	"context"
	"time"

	"github.com/Cyclone1070/codecollab/internal/config"
	"github.com/Cyclone1070/codecollab/internal/editor"
	"github.com/Cyclone1070/codecollab/internal/execution"
	"github.com/Cyclone1070/codecollab/internal/extensions"
	"github.com/Cyclone1070/codecollab/internal/python"
	"github.com/Cyclone1070/codecollab/internal/scm"
	"github.com/Cyclone1070/codecollab/internal/search"
	"github.com/Cyclone1070/codecollab/internal/workspace"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type executor interface {
	Execute(ctx context.Context, code, language, stdin string) (*execution.Result, error)
	ExecutePython(ctx context.Context, code string, packages []string, stdin string) (*execution.Result, error)
}

type sourceControl interface {
	Sync(files []*workspace.FileNode) error
	Status() ([]scm.Change, error)
	Stage(path string) error
	StageAll() (int, error)
	Commit(message string, author scm.Author) (scm.Commit, error)
	Log(n int) ([]scm.Commit, error)
	Branch() string
}

type extensionRegistry interface {
	List(query string) []extensions.Entry
	Install(id string) error
	Uninstall(id string) error
}

type debugger interface {
	State() python.DebugState
	Subscribe(fn func(python.DebugState)) (unsubscribe func())
	ToggleBreakpoint(line int)
	Start(ctx context.Context, code string)
	Stop()
	StepOver()
	StepInto()
	StepOut()
	Continue()
	Evaluate(expr string) string
}

type previewer interface {
	Render(tab editor.EditorTab, width int) (string, error)
}

// SpinnerFactory creates the spinner shown while code runs.
type SpinnerFactory func() spinner.Model

// Dependencies are the services the UI drives.
type Dependencies struct {
	Config     *config.Config
	Store      *editor.Store
	Executor   executor
	Searcher   *search.Searcher
	SCM        sourceControl
	Extensions extensionRegistry
	Debugger   debugger
	Previewer  previewer
	Spinner    SpinnerFactory
	Logger     *zap.Logger
}

// UI owns the Bubble Tea program.
type UI struct {
	model   *Model
	program *tea.Program
	deps    Dependencies
}

// New builds the UI. Store, Executor, Searcher, SCM, Extensions, Debugger
// and Previewer are required.
func New(deps Dependencies) *UI {
	m := newModel(deps)
	p := tea.NewProgram(m, tea.WithAltScreen())
	// Store listeners run inside Update; sending must not block the loop.
	m.send = func(msg tea.Msg) { go p.Send(msg) }
	return &UI{model: m, program: p, deps: deps}
}

// Start runs the program until the user quits. Store and debugger changes
// from background goroutines reach the program through Send.
func (u *UI) Start() error {
	store := u.deps.Store
	unsubState := store.Subscribe(func(editor.State) { u.model.send(stateChangedMsg{}) })
	defer unsubState()
	unsubDebug := u.deps.Debugger.Subscribe(func(python.DebugState) { u.model.send(debugChangedMsg{}) })
	defer unsubDebug()

	delay := time.Duration(u.model.cfg.Editor.AutoSaveDelayMs) * time.Millisecond
	_, detach := editor.Attach(store, delay, u.model.logger)
	defer detach()

	_, err := u.program.Run()
	u.model.shutdown()
	return err
}
