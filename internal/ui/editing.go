package ui

import (
	"strings"
	"unicode"
)

// afterEdit pushes the widget's buffer into the active tab when it changed.
func (m *Model) afterEdit() {
	tab, ok := m.state.ActiveTab()
	if !ok || tab.ID != m.editingID {
		return
	}
	if v := m.editor.Value(); v != tab.Content {
		m.store.UpdateTabContent(tab.ID, v)
		m.refresh()
	}
}

// cursor returns the 1-based line and column of the editor cursor.
func (m *Model) cursor() (int, int) {
	li := m.editor.LineInfo()
	return m.editor.Line() + 1, li.StartColumn + li.ColumnOffset + 1
}

func (m *Model) currentLine() []rune {
	lines := strings.Split(m.editor.Value(), "\n")
	row := m.editor.Line()
	if row < 0 || row >= len(lines) {
		return nil
	}
	return []rune(lines[row])
}

// linePrefix returns the text of the current line before the cursor.
func (m *Model) linePrefix() string {
	line := m.currentLine()
	_, col := m.cursor()
	col = min(max(col-1, 0), len(line))
	return string(line[:col])
}

// wordAtCursor returns the identifier touching the cursor.
func (m *Model) wordAtCursor() string {
	line := m.currentLine()
	_, col := m.cursor()
	col = min(max(col-1, 0), len(line))
	start, end := col, col
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	for end < len(line) && isWordRune(line[end]) {
		end++
	}
	return string(line[start:end])
}

func trailingWord(s string) string {
	r := []rune(s)
	i := len(r)
	for i > 0 && isWordRune(r[i-1]) {
		i--
	}
	return string(r[i:])
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// moveToLine puts the cursor at the start of 1-based line n.
func (m *Model) moveToLine(n int) {
	target := n - 1
	// Soft-wrapped lines take several cursor moves, so bound by rows rather than lines.
	limit := strings.Count(m.editor.Value(), "\n")*4 + 16
	for i := 0; i < limit && m.editor.Line() > target; i++ {
		m.editor.CursorUp()
	}
	for i := 0; i < limit && m.editor.Line() < target; i++ {
		m.editor.CursorDown()
	}
	m.editor.CursorStart()
}
