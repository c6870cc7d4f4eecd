package ui

import (
	"fmt"

	"github.com/Cyclone1070/codecollab/internal/editor"
	"github.com/Cyclone1070/codecollab/internal/scm"
	"github.com/Cyclone1070/codecollab/internal/search"
	"github.com/Cyclone1070/codecollab/internal/ui/views"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleSidebarKey(msg tea.KeyMsg) tea.Cmd {
	switch m.state.ActivePanel {
	case editor.PanelSearch:
		return m.handleSearchKey(msg)
	case editor.PanelSCM:
		return m.handleSCMKey(msg)
	case editor.PanelExtensions:
		return m.handleExtensionsKey(msg)
	case editor.PanelDebug:
		return m.handleDebugKey(msg)
	default:
		return m.handleExplorerKey(msg)
	}
}

// --- Explorer ---

func (m *Model) handleExplorerKey(msg tea.KeyMsg) tea.Cmd {
	rows := views.Flatten(m.state.Files)
	switch msg.String() {
	case "up", "k":
		if m.explorerCursor > 0 {
			m.explorerCursor--
		}
	case "down", "j":
		if m.explorerCursor < len(rows)-1 {
			m.explorerCursor++
		}
	case "enter", "l", "right", " ":
		row, ok := m.selectedRow()
		if !ok {
			return nil
		}
		if row.Node.IsFolder() {
			m.store.ToggleFolder(row.Node.ID)
			m.refresh()
		} else {
			m.openFile(row.Node.ID)
		}
	case "h", "left":
		if row, ok := m.selectedRow(); ok && row.Node.IsFolder() && row.Node.Expanded() {
			m.store.ToggleFolder(row.Node.ID)
			m.refresh()
		}
	case "n":
		m.promptNewNode(false)
	case "N":
		m.promptNewNode(true)
	case "r":
		m.promptRename()
	case "d", "delete":
		m.deleteSelected()
	}
	return nil
}

// --- Search ---

func (m *Model) focusSearchField(field int) {
	m.searchField = field
	if field == 0 {
		m.searchQuery.Focus()
		m.searchReplace.Blur()
	} else {
		m.searchReplace.Focus()
		m.searchQuery.Blur()
	}
}

func (m *Model) findReplace() {
	m.showPanel(editor.PanelSearch)
	if tab, ok := m.state.ActiveTab(); ok && m.searchQuery.Value() == "" {
		m.searchQuery.SetValue(m.wordAtCursorIn(tab))
	}
	m.focusSearchField(1)
}

// wordAtCursorIn returns the word at the cursor when the editor shows tab.
func (m *Model) wordAtCursorIn(tab editor.EditorTab) string {
	if tab.ID != m.editingID {
		return ""
	}
	return m.wordAtCursor()
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.searchQuery.Blur()
		m.searchReplace.Blur()
		m.setFocus(focusEditor)
		return nil
	case "tab", "shift+tab":
		m.focusSearchField(1 - m.searchField)
		return nil
	case "up":
		if m.searchCursor > 0 {
			m.searchCursor--
		}
		return nil
	case "down":
		if m.searchResult != nil && m.searchCursor < len(m.searchResult.Matches)-1 {
			m.searchCursor++
		}
		return nil
	case "alt+c":
		m.searchReq.CaseSensitive = !m.searchReq.CaseSensitive
		m.rerunSearch()
		return nil
	case "alt+w":
		m.searchReq.WholeWord = !m.searchReq.WholeWord
		m.rerunSearch()
		return nil
	case "alt+r":
		m.searchReq.Regex = !m.searchReq.Regex
		m.rerunSearch()
		return nil
	case "ctrl+a":
		m.replaceAll()
		return nil
	case "enter":
		if m.searchResult == nil || m.searchQuery.Value() != m.searchLast {
			m.runSearch()
		} else {
			m.openMatch()
		}
		return nil
	}
	var cmd tea.Cmd
	if m.searchField == 0 {
		m.searchQuery, cmd = m.searchQuery.Update(msg)
	} else {
		m.searchReplace, cmd = m.searchReplace.Update(msg)
	}
	return cmd
}

func (m *Model) rerunSearch() {
	if m.searchQuery.Value() != "" {
		m.runSearch()
	}
}

func (m *Model) runSearch() {
	req := m.searchReq
	req.Query = m.searchQuery.Value()
	m.searchLast = req.Query
	m.searchCursor = 0
	resp, err := m.searcher.Search(m.state.Files, &req)
	if err != nil {
		m.searchResult, m.searchErr = nil, err.Error()
		return
	}
	m.searchResult, m.searchErr = resp, ""
}

func (m *Model) openMatch() {
	if m.searchResult == nil || m.searchCursor >= len(m.searchResult.Matches) {
		return
	}
	match := m.searchResult.Matches[m.searchCursor]
	m.openFile(match.FileID)
	m.moveToLine(match.Line)
}

// replaceAll rewrites every matching file's tab buffer. Tabs are opened as
// needed and left dirty; the previously active tab is restored.
func (m *Model) replaceAll() {
	req := m.searchReq
	req.Query = m.searchQuery.Value()
	req.Limit = m.cfg.Search.MaxLimit
	resp, err := m.searcher.Search(m.state.Files, &req)
	if err != nil {
		m.searchErr = err.Error()
		return
	}
	prev := m.state.CurrentFileID
	replacement := m.searchReplace.Value()
	seen := make(map[string]bool)
	total, files := 0, 0
	for _, match := range resp.Matches {
		if seen[match.FileID] {
			continue
		}
		seen[match.FileID] = true
		m.store.OpenFile(match.FileID)
		tab, ok := m.store.State().Tab(match.FileID)
		if !ok {
			continue
		}
		out, n, err := search.Replace(tab.Content, &req, replacement)
		if err != nil {
			m.searchErr = err.Error()
			break
		}
		if n > 0 {
			m.store.UpdateTabContent(tab.ID, out)
			total += n
			files++
		}
	}
	if prev != nil {
		m.store.OpenFile(*prev)
	}
	m.refresh()
	m.searchResult = nil
	m.setStatus(fmt.Sprintf("Replaced %d occurrences in %d files", total, files))
}

// --- Source control ---

func (m *Model) refreshSCM() {
	m.scmErr = ""
	if err := m.scm.Sync(m.state.Files); err != nil {
		m.scmErr = err.Error()
	}
	changes, err := m.scm.Status()
	if err != nil {
		m.scmErr = err.Error()
	}
	m.changes = changes
	m.history, _ = m.scm.Log(10)
	m.scmCursor = max(0, min(m.scmCursor, len(m.changes)-1))
}

func (m *Model) handleSCMKey(msg tea.KeyMsg) tea.Cmd {
	if m.commitEditing {
		switch msg.String() {
		case "esc":
			m.commitEditing = false
			m.commitInput.Blur()
			return nil
		case "enter":
			m.commit()
			return nil
		}
		var cmd tea.Cmd
		m.commitInput, cmd = m.commitInput.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.scmCursor > 0 {
			m.scmCursor--
		}
	case "down", "j":
		if m.scmCursor < len(m.changes)-1 {
			m.scmCursor++
		}
	case "s", "enter":
		if m.scmCursor < len(m.changes) && !m.changes[m.scmCursor].Staged {
			if err := m.scm.Stage(m.changes[m.scmCursor].Path); err != nil {
				m.scmErr = err.Error()
				return nil
			}
			m.refreshSCM()
		}
	case "a":
		if _, err := m.scm.StageAll(); err != nil {
			m.scmErr = err.Error()
			return nil
		}
		m.refreshSCM()
	case "c":
		m.commitEditing = true
		m.commitInput.Focus()
	case "r", "R":
		m.refreshSCM()
	}
	return nil
}

func (m *Model) commit() {
	author := scm.Author{Name: m.cfg.SCM.AuthorName, Email: m.cfg.SCM.AuthorEmail}
	c, err := m.scm.Commit(m.commitInput.Value(), author)
	if err != nil {
		m.scmErr = err.Error()
		return
	}
	m.commitInput.Reset()
	m.commitEditing = false
	m.commitInput.Blur()
	m.refreshSCM()
	m.setStatus("Committed " + c.ShortHash())
}

// --- Extensions ---

func (m *Model) refreshExtensions() {
	m.extEntries = m.exts.List(m.extFilter.Value())
	m.extCursor = max(0, min(m.extCursor, len(m.extEntries)-1))
}

func (m *Model) handleExtensionsKey(msg tea.KeyMsg) tea.Cmd {
	if m.extFiltering {
		switch msg.String() {
		case "esc", "enter":
			m.extFiltering = false
			m.extFilter.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.extFilter, cmd = m.extFilter.Update(msg)
		m.refreshExtensions()
		return cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.extCursor > 0 {
			m.extCursor--
		}
	case "down", "j":
		if m.extCursor < len(m.extEntries)-1 {
			m.extCursor++
		}
	case "/":
		m.extFiltering = true
		m.extFilter.Focus()
	case "i", "enter":
		if m.extCursor >= len(m.extEntries) {
			return nil
		}
		e := m.extEntries[m.extCursor]
		var err error
		if e.Installed {
			err = m.exts.Uninstall(e.ID)
		} else {
			err = m.exts.Install(e.ID)
		}
		m.extErr = ""
		if err != nil {
			m.extErr = err.Error()
		}
		m.refreshExtensions()
	}
	return nil
}

// --- Debug ---

func (m *Model) handleDebugKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "c":
		m.dbg.Continue()
	case "x":
		m.dbg.Stop()
	case "b":
		m.toggleBreakpoint()
	case "e":
		m.promptEvaluate()
	}
	m.debugState = m.dbg.State()
	return nil
}
