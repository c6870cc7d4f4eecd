package ui

import (
	"context"

	"github.com/Cyclone1070/codecollab/internal/command"
	"github.com/Cyclone1070/codecollab/internal/editor"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// openArgs are the arguments of file.open. Without a path the user is asked.
type openArgs struct {
	Path string `mapstructure:"path"`
}

// action adapts a model method into a palette handler. Any command it returns
// runs after the palette closes.
func (m *Model) action(fn func() tea.Cmd) command.Handler {
	return func(context.Context, map[string]any) error {
		m.pending = fn()
		return nil
	}
}

func (m *Model) do(fn func()) command.Handler {
	return m.action(func() tea.Cmd {
		fn()
		return nil
	})
}

func (m *Model) registerCommands() {
	handlers := map[string]command.Handler{
		command.FileNew: m.do(func() { m.promptNewNode(false) }),
		command.FileOpen: command.Bind(func(_ context.Context, a openArgs) error {
			if a.Path == "" {
				m.promptOpenFile()
			} else {
				m.openPath(a.Path)
			}
			return nil
		}),
		command.FileSave:       m.do(m.saveActive),
		command.FileSaveAll:    m.do(m.saveAll),
		command.ViewTerminal:   m.do(func() { m.store.ToggleTerminal(); m.refresh() }),
		command.ViewExplorer:   m.do(func() { m.showPanel(editor.PanelExplorer) }),
		command.ViewSearch:     m.do(func() { m.showPanel(editor.PanelSearch) }),
		command.ViewSCM:        m.do(func() { m.showPanel(editor.PanelSCM) }),
		command.ViewExtensions: m.do(func() { m.showPanel(editor.PanelExtensions) }),
		command.ViewDebug:      m.do(func() { m.showPanel(editor.PanelDebug) }),
		command.ViewSidebar:    m.do(func() { m.store.ToggleSidebar(); m.refresh() }),
		command.ViewPreview:    m.do(func() { m.store.TogglePreview(); m.refresh() }),
		command.PreferencesSettings: m.do(func() {
			if m.cfg.Source == "" {
				m.setStatus("Using default settings")
				return
			}
			m.setStatus("Settings are read from " + m.cfg.Source)
		}),
		command.PreferencesTheme:  m.do(func() { m.store.ToggleTheme(); m.refresh() }),
		command.EditorFormat:      m.do(m.formatActive),
		command.EditorFindReplace: m.do(m.findReplace),
		command.EditorLint:        m.do(m.lintActive),
		command.EditorSymbols:     m.do(m.promptSymbol),
		command.RunCode:           m.action(func() tea.Cmd { return m.run(editor.RunOptions{}) }),
		command.RunWithInput:      m.do(m.promptRunWithInput),
		command.RunWithPackages:   m.do(m.promptRunWithPackages),
		command.DebugStart:        m.action(m.startDebug),
		command.DebugStop:         m.do(func() { m.dbg.Stop(); m.debugState = m.dbg.State() }),
		command.DebugBreakpoint:   m.do(m.toggleBreakpoint),
		command.WorkspaceReset:    m.do(m.resetWorkspace),
	}
	for _, c := range command.Defaults {
		h, ok := handlers[c.ID]
		if !ok {
			continue
		}
		if err := m.commands.Register(c, h); err != nil {
			m.logger.Warn("command not registered", zap.String("command", c.ID), zap.Error(err))
		}
	}
}

func (m *Model) paletteCommands() []command.Command {
	return m.commands.Filter(m.paletteInput.Value())
}
