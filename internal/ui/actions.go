package ui

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/codecollab/internal/editor"
	"github.com/Cyclone1070/codecollab/internal/python"
	"github.com/Cyclone1070/codecollab/internal/ui/views"
	"github.com/Cyclone1070/codecollab/internal/workspace"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Files and tabs ---

func (m *Model) saveActive() {
	tab, ok := m.state.ActiveTab()
	if !ok {
		return
	}
	m.store.SaveFile(tab.ID)
	m.refresh()
	m.setStatus("Saved " + tab.FileName)
}

func (m *Model) saveAll() {
	n := m.store.SaveAll()
	m.refresh()
	m.setStatus(fmt.Sprintf("Saved %d files", n))
}

func (m *Model) closeActiveTab() {
	tab, ok := m.state.ActiveTab()
	if !ok {
		return
	}
	m.store.CloseTab(tab.ID)
	m.refresh()
}

func (m *Model) cycleTab(delta int) {
	tabs := m.state.OpenTabs
	if len(tabs) == 0 {
		return
	}
	idx := 0
	if tab, ok := m.state.ActiveTab(); ok {
		for i, t := range tabs {
			if t.ID == tab.ID {
				idx = (i + delta + len(tabs)) % len(tabs)
				break
			}
		}
	}
	m.store.OpenFile(tabs[idx].ID)
	m.refresh()
}

func (m *Model) openFile(id string) {
	m.store.OpenFile(id)
	m.refresh()
	m.setFocus(focusEditor)
}

func (m *Model) openPath(path string) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	n, ok := workspace.FindByPath(m.state.Files, path)
	switch {
	case !ok:
		m.setStatus("No such file: " + path)
	case n.IsFolder():
		m.setStatus(path + " is a folder")
	default:
		m.openFile(n.ID)
	}
}

func (m *Model) promptOpenFile() {
	m.ask("Open file (path)", "", func(v string) tea.Cmd {
		m.openPath(v)
		return nil
	})
}

// selectedRow returns the explorer row under the cursor.
func (m *Model) selectedRow() (views.Row, bool) {
	rows := views.Flatten(m.state.Files)
	if m.explorerCursor < 0 || m.explorerCursor >= len(rows) {
		return views.Row{}, false
	}
	return rows[m.explorerCursor], true
}

// targetFolder is where new nodes go: the selected folder, or the parent of
// the selected file.
func (m *Model) targetFolder() *string {
	if m.focus != focusSidebar || m.state.ActivePanel != editor.PanelExplorer {
		return nil
	}
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	if row.Node.IsFolder() {
		id := row.Node.ID
		return &id
	}
	return row.Node.ParentID
}

func (m *Model) promptNewNode(folder bool) {
	parent := m.targetFolder()
	label := "New file name"
	if folder {
		label = "New folder name"
	}
	m.ask(label, "", func(v string) tea.Cmd {
		name := strings.TrimSpace(v)
		if name == "" {
			return nil
		}
		if folder {
			m.store.CreateFolder(name, parent)
			m.refresh()
			return nil
		}
		n := m.store.CreateFile(name, parent)
		m.openFile(n.ID)
		return nil
	})
}

func (m *Model) promptRename() {
	row, ok := m.selectedRow()
	if !ok {
		return
	}
	id := row.Node.ID
	m.ask("Rename "+row.Path, row.Node.Name, func(v string) tea.Cmd {
		if name := strings.TrimSpace(v); name != "" {
			m.store.RenameFile(id, name)
			m.refresh()
		}
		return nil
	})
}

func (m *Model) deleteSelected() {
	row, ok := m.selectedRow()
	if !ok {
		return
	}
	id, path := row.Node.ID, row.Path
	m.ask("Delete "+path+"? (y/N)", "", func(v string) tea.Cmd {
		if strings.EqualFold(strings.TrimSpace(v), "y") {
			m.store.DeleteFile(id)
			m.refresh()
			m.setStatus("Deleted " + path)
		}
		return nil
	})
}

func (m *Model) resetWorkspace() {
	m.ask("Reset workspace to the default files? (y/N)", "", func(v string) tea.Cmd {
		if strings.EqualFold(strings.TrimSpace(v), "y") {
			m.store.ResetWorkspace()
			m.explorerCursor = 0
			m.refresh()
			m.setStatus("Workspace reset")
		}
		return nil
	})
}

func (m *Model) showPanel(p editor.Panel) {
	m.store.SetActivePanel(p)
	m.refresh()
	m.setFocus(focusSidebar)
	switch p {
	case editor.PanelSearch:
		m.focusSearchField(m.searchField)
	case editor.PanelSCM:
		m.refreshSCM()
	case editor.PanelExtensions:
		m.refreshExtensions()
	case editor.PanelDebug:
		m.debugState = m.dbg.State()
	}
}

// --- Run ---

// run executes the active tab in the background. The store records the
// outcome; runDoneMsg only triggers a refresh.
func (m *Model) run(opts editor.RunOptions) tea.Cmd {
	if _, ok := m.state.ActiveTab(); !ok {
		m.setStatus("No file to run")
		return nil
	}
	store, exec, ctx := m.store, m.exec, m.ctx
	m.setStatus("")
	return func() tea.Msg {
		return runDoneMsg{applied: store.RunActive(ctx, exec, opts)}
	}
}

func (m *Model) promptRunWithInput() {
	m.ask("Program input (\\n for new lines)", "", func(v string) tea.Cmd {
		return m.run(editor.RunOptions{Stdin: strings.ReplaceAll(v, `\n`, "\n")})
	})
}

func (m *Model) promptRunWithPackages() {
	tab, ok := m.state.ActiveTab()
	if !ok || !strings.EqualFold(tab.Language, "python") {
		m.setStatus("Packages are only available for Python files")
		return
	}
	m.ask("Packages (comma separated)", "", func(v string) tea.Cmd {
		var pkgs []string
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				pkgs = append(pkgs, p)
			}
		}
		return m.run(editor.RunOptions{Packages: pkgs})
	})
}

// --- Python tooling ---

func (m *Model) activePython() (editor.EditorTab, bool) {
	tab, ok := m.state.ActiveTab()
	if !ok || !strings.EqualFold(tab.Language, "python") {
		m.setStatus("Only available for Python files")
		return editor.EditorTab{}, false
	}
	return tab, true
}

func (m *Model) formatActive() {
	tab, ok := m.activePython()
	if !ok {
		return
	}
	formatted := python.Format(tab.Content)
	if formatted == tab.Content {
		m.setStatus("Already formatted")
		return
	}
	m.store.UpdateTabContent(tab.ID, formatted)
	m.refresh()
	m.setStatus("Formatted " + tab.FileName)
}

func (m *Model) lintActive() {
	tab, ok := m.activePython()
	if !ok {
		return
	}
	m.problems = python.Lint(tab.Content)
	if !m.state.IsTerminalOpen {
		m.store.ToggleTerminal()
		m.refresh()
	}
	m.setStatus(fmt.Sprintf("%d problems", len(m.problems)))
}

func (m *Model) promptSymbol() {
	tab, ok := m.activePython()
	if !ok {
		return
	}
	syms := python.DocumentSymbols(tab.Content)
	if len(syms) == 0 {
		m.setStatus("No symbols")
		return
	}
	names := make([]string, len(syms))
	for i, s := range syms {
		names[i] = fmt.Sprintf("%s (%d)", s.Name, s.Line)
	}
	m.ask("Go to symbol: "+strings.Join(names, ", "), syms[0].Name, func(v string) tea.Cmd {
		m.gotoDefinition(strings.TrimSpace(v))
		return nil
	})
}

func (m *Model) hover() {
	word := m.wordAtCursor()
	if word == "" {
		return
	}
	if doc, ok := python.Hover(word); ok {
		m.setStatus(doc)
		return
	}
	m.setStatus("No information for " + word)
}

func (m *Model) gotoDefinition(word string) {
	tab, ok := m.activePython()
	if !ok || word == "" {
		return
	}
	lines := python.Definition(tab.Content, word)
	if len(lines) == 0 {
		m.setStatus("No definition found for " + word)
		return
	}
	m.setFocus(focusEditor)
	m.moveToLine(lines[0])
}

func (m *Model) openCompletions() {
	if _, ok := m.activePython(); !ok {
		return
	}
	prefix := m.linePrefix()
	items := python.Complete(prefix)
	if len(items) == 0 {
		m.setStatus("No suggestions")
		return
	}
	if len(items) > 10 {
		items = items[:10]
	}
	m.completions = items
	m.completionCursor = 0
	m.completionWord = trailingWord(prefix)
	m.setFocus(focusCompletion)
}

func (m *Model) acceptCompletion() {
	item := m.completions[m.completionCursor]
	m.completions = nil
	m.setFocus(focusEditor)
	for range []rune(m.completionWord) {
		m.editor, _ = m.editor.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m.editor.InsertString(item.Expand(m.cfg.Editor.TabSize))
	m.afterEdit()
}

// --- Debug ---

func (m *Model) startDebug() tea.Cmd {
	tab, ok := m.activePython()
	if !ok {
		return nil
	}
	m.showPanel(editor.PanelDebug)
	d, ctx, code := m.dbg, m.ctx, tab.Content
	return func() tea.Msg {
		d.Start(ctx, code)
		return debugDoneMsg{}
	}
}

func (m *Model) toggleBreakpoint() {
	if _, ok := m.state.ActiveTab(); !ok {
		return
	}
	line, _ := m.cursor()
	m.dbg.ToggleBreakpoint(line)
	m.debugState = m.dbg.State()
}

func (m *Model) promptEvaluate() {
	m.ask("Evaluate expression", "", func(v string) tea.Cmd {
		if expr := strings.TrimSpace(v); expr != "" {
			m.watch = expr + " = " + m.dbg.Evaluate(expr)
		}
		return nil
	})
}
