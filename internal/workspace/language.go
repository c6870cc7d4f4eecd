package workspace

import (
	"path/filepath"
	"strings"
)

var extensionLanguages = map[string]string{
	"js":   "javascript",
	"jsx":  "javascript",
	"ts":   "typescript",
	"tsx":  "typescript",
	"py":   "python",
	"html": "html",
	"htm":  "html",
	"css":  "css",
	"scss": "scss",
	"json": "json",
	"md":   "markdown",
	"java": "java",
	"cpp":  "cpp",
	"cc":   "cpp",
	"cxx":  "cpp",
	"hpp":  "cpp",
	"c":    "c",
	"h":    "c",
	"go":   "go",
	"rs":   "rust",
	"php":  "php",
	"rb":   "ruby",
	"sql":  "sql",
	"sh":   "shell",
	"bash": "shell",
	"yml":  "yaml",
	"yaml": "yaml",
	"xml":  "xml",
	"txt":  "plaintext",
}

// LanguageFromFilename maps a file name's extension to a language tag.
// Unknown or missing extensions map to "plaintext".
func LanguageFromFilename(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return "plaintext"
}
