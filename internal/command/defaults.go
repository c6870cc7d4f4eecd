package command

// Palette command ids.
const (
	FileNew             = "file.new"
	FileOpen            = "file.open"
	FileSave            = "file.save"
	FileSaveAll         = "file.saveAll"
	ViewTerminal        = "view.terminal"
	ViewExplorer        = "view.explorer"
	ViewSearch          = "view.search"
	ViewSCM             = "view.scm"
	ViewExtensions      = "view.extensions"
	ViewDebug           = "view.debug"
	ViewSidebar         = "view.sidebar"
	ViewPreview         = "view.preview"
	PreferencesSettings = "preferences.settings"
	PreferencesTheme    = "preferences.theme"
	EditorFormat        = "editor.format"
	EditorFindReplace   = "editor.findReplace"
	EditorLint          = "editor.lint"
	EditorSymbols       = "editor.symbols"
	RunCode             = "run.code"
	RunWithInput        = "run.withInput"
	RunWithPackages     = "run.withPackages"
	DebugStart          = "debug.start"
	DebugStop           = "debug.stop"
	DebugBreakpoint     = "debug.toggleBreakpoint"
	WorkspaceReset      = "workspace.reset"
)

// Defaults is the palette's command table.
var Defaults = []Command{
	{ID: FileNew, Title: "New File", Category: "File", Shortcut: "Ctrl+N"},
	{ID: FileOpen, Title: "Open File...", Category: "File", Shortcut: "Ctrl+O"},
	{ID: FileSave, Title: "Save", Category: "File", Shortcut: "Ctrl+S"},
	{ID: FileSaveAll, Title: "Save All", Category: "File", Shortcut: "Alt+S"},
	{ID: ViewTerminal, Title: "Toggle Terminal", Category: "View", Shortcut: "Ctrl+`"},
	{ID: ViewExplorer, Title: "Show Explorer", Category: "View", Shortcut: "Ctrl+Shift+E"},
	{ID: ViewSearch, Title: "Show Search", Category: "View", Shortcut: "Ctrl+Shift+F"},
	{ID: ViewSCM, Title: "Show Source Control", Category: "View", Shortcut: "Ctrl+Shift+G"},
	{ID: ViewExtensions, Title: "Show Extensions", Category: "View", Shortcut: "Ctrl+Shift+X"},
	{ID: ViewDebug, Title: "Show Run and Debug", Category: "View", Shortcut: "Ctrl+Shift+D"},
	{ID: ViewSidebar, Title: "Toggle Sidebar", Category: "View", Shortcut: "Ctrl+B"},
	{ID: ViewPreview, Title: "Toggle Preview", Category: "View", Shortcut: "Alt+P"},
	{ID: PreferencesSettings, Title: "Preferences: Open Settings", Shortcut: "Ctrl+,"},
	{ID: PreferencesTheme, Title: "Preferences: Color Theme"},
	{ID: EditorFormat, Title: "Format Document", Category: "Editor", Shortcut: "Shift+Alt+F"},
	{ID: EditorFindReplace, Title: "Find and Replace", Category: "Editor", Shortcut: "Ctrl+H"},
	{ID: EditorLint, Title: "Lint Document", Category: "Editor", Shortcut: "Alt+L"},
	{ID: EditorSymbols, Title: "Go to Symbol...", Category: "Editor"},
	{ID: RunCode, Title: "Run Code", Category: "Run", Shortcut: "Ctrl+R"},
	{ID: RunWithInput, Title: "Run with Input...", Category: "Run"},
	{ID: RunWithPackages, Title: "Run Python with Packages...", Category: "Run"},
	{ID: DebugStart, Title: "Start Debugging", Category: "Debug", Shortcut: "F5"},
	{ID: DebugStop, Title: "Stop Debugging", Category: "Debug", Shortcut: "Shift+F5"},
	{ID: DebugBreakpoint, Title: "Toggle Breakpoint", Category: "Debug", Shortcut: "F9"},
	{ID: WorkspaceReset, Title: "Reset Workspace", Category: "Workspace"},
}
