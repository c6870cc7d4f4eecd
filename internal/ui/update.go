package ui

import (
	"github.com/Cyclone1070/codecollab/internal/editor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.schedulePreview()
		return m, nil

	case stateChangedMsg:
		m.refresh()
		return m, nil

	case debugChangedMsg, debugDoneMsg:
		m.debugState = m.dbg.State()
		return m, nil

	case runDoneMsg:
		m.refresh()
		if msg.applied && m.state.ExecutionResult != nil {
			if m.state.ExecutionResult.Succeeded() {
				m.setStatus("Run finished")
			} else {
				m.setStatus("Run failed")
			}
		}
		return m, nil

	case previewMsg:
		m.applyPreview(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	if m.focus == focusEditor {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes a key press: overlays first, then global bindings, then
// the focused region.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.shutdown()
		return tea.Quit
	}
	switch m.focus {
	case focusPalette:
		return m.handlePaletteKey(msg)
	case focusPrompt:
		return m.handlePromptKey(msg)
	case focusCompletion:
		return m.handleCompletionKey(msg)
	}
	if cmd, ok := m.handleGlobalKey(msg); ok {
		return cmd
	}
	if m.focus == focusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleEditorKey(msg)
}

// capturesText reports whether the focused sidebar panel consumes tab and esc.
func (m *Model) capturesText() bool {
	if m.focus != focusSidebar {
		return false
	}
	return m.state.ActivePanel == editor.PanelSearch || m.commitEditing || m.extFiltering
}

func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+p":
		m.openPalette()
	case "ctrl+s":
		m.saveActive()
	case "alt+s":
		m.saveAll()
	case "ctrl+r":
		return m.run(editor.RunOptions{}), true
	case "ctrl+b":
		m.store.ToggleSidebar()
		m.refresh()
	case "ctrl+@", "ctrl+t":
		m.store.ToggleTerminal()
		m.refresh()
	case "ctrl+w":
		m.closeActiveTab()
	case "ctrl+n":
		m.promptNewNode(false)
	case "ctrl+o":
		m.promptOpenFile()
	case "ctrl+h":
		m.findReplace()
	case "alt+F":
		m.formatActive()
	case "alt+l":
		m.lintActive()
	case "alt+p":
		m.store.TogglePreview()
		m.refresh()
	case "alt+e":
		m.showPanel(editor.PanelExplorer)
	case "alt+f":
		m.showPanel(editor.PanelSearch)
	case "alt+g":
		m.showPanel(editor.PanelSCM)
	case "alt+x":
		m.showPanel(editor.PanelExtensions)
	case "alt+d":
		m.showPanel(editor.PanelDebug)
	case "f5":
		return m.startDebug(), true
	case "shift+f5", "f17":
		m.dbg.Stop()
		m.debugState = m.dbg.State()
	case "f9":
		m.toggleBreakpoint()
	case "f10":
		m.dbg.StepOver()
		m.debugState = m.dbg.State()
	case "f11":
		m.dbg.StepInto()
		m.debugState = m.dbg.State()
	case "shift+f11", "f23":
		m.dbg.StepOut()
		m.debugState = m.dbg.State()
	case "tab", "shift+tab":
		if m.capturesText() {
			return nil, false
		}
		if msg.String() == "tab" {
			m.cycleTab(1)
		} else {
			m.cycleTab(-1)
		}
	case "esc":
		if m.capturesText() {
			return nil, false
		}
		if m.focus == focusEditor && m.state.IsSidebarOpen {
			m.setFocus(focusSidebar)
		} else {
			m.setFocus(focusEditor)
		}
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "alt+/":
		m.openCompletions()
		return nil
	case "alt+h":
		m.hover()
		return nil
	case "f12":
		m.gotoDefinition(m.wordAtCursor())
		return nil
	}
	if m.editingID == "" {
		return nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.afterEdit()
	return cmd
}

// --- Palette ---

func (m *Model) openPalette() {
	m.returnFocus = m.focus
	m.paletteInput.Reset()
	m.paletteInput.Focus()
	m.paletteCursor = 0
	m.setFocus(focusPalette)
}

func (m *Model) closeOverlay() {
	m.paletteInput.Blur()
	m.setFocus(m.returnFocus)
}

func (m *Model) handlePaletteKey(msg tea.KeyMsg) tea.Cmd {
	cmds := m.paletteCommands()
	switch msg.String() {
	case "esc":
		m.closeOverlay()
		return nil
	case "up", "ctrl+k":
		if m.paletteCursor > 0 {
			m.paletteCursor--
		}
		return nil
	case "down", "ctrl+j":
		if m.paletteCursor < len(cmds)-1 {
			m.paletteCursor++
		}
		return nil
	case "enter":
		if len(cmds) == 0 {
			return nil
		}
		id := cmds[m.paletteCursor].ID
		m.closeOverlay()
		return m.execute(id, nil)
	}
	var cmd tea.Cmd
	m.paletteInput, cmd = m.paletteInput.Update(msg)
	m.paletteCursor = 0
	return cmd
}

// execute runs a registered command and returns whatever follow-up its
// handler scheduled.
func (m *Model) execute(id string, args map[string]any) tea.Cmd {
	m.pending = nil
	if err := m.commands.Execute(m.ctx, id, args); err != nil {
		m.logger.Warn("command failed", zap.String("command", id), zap.Error(err))
		m.setStatus(err.Error())
	}
	cmd := m.pending
	m.pending = nil
	return cmd
}

// --- Prompt ---

func (m *Model) ask(label, initial string, submit func(string) tea.Cmd) {
	in := newInput("")
	in.SetValue(initial)
	in.Focus()
	m.prompt = &prompt{label: label, input: in, submit: submit}
	m.returnFocus = m.focus
	m.setFocus(focusPrompt)
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.prompt = nil
		m.setFocus(m.returnFocus)
		return nil
	case "enter":
		p := m.prompt
		m.prompt = nil
		m.setFocus(m.returnFocus)
		return p.submit(p.input.Value())
	}
	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return cmd
}

// --- Completion ---

func (m *Model) handleCompletionKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "ctrl+k":
		if m.completionCursor > 0 {
			m.completionCursor--
		}
		return nil
	case "down", "ctrl+j":
		if m.completionCursor < len(m.completions)-1 {
			m.completionCursor++
		}
		return nil
	case "enter", "tab":
		m.acceptCompletion()
		return nil
	case "esc":
		m.completions = nil
		m.setFocus(focusEditor)
		return nil
	}
	m.completions = nil
	m.setFocus(focusEditor)
	return m.handleEditorKey(msg)
}
