package execution

import (
	"sort"
	"strings"
)

// LanguageSpec pins a language tag to a remote runtime.
type LanguageSpec struct {
	Runtime   string
	Version   string
	Extension string
}

var languageTable = map[string]LanguageSpec{
	"javascript": {Runtime: "javascript", Version: "18.15.0", Extension: "js"},
	"typescript": {Runtime: "typescript", Version: "5.0.3", Extension: "ts"},
	"python":     {Runtime: "python", Version: "3.10.0", Extension: "py"},
	"java":       {Runtime: "java", Version: "15.0.2", Extension: "java"},
	"cpp":        {Runtime: "c++", Version: "10.2.0", Extension: "cpp"},
	"c":          {Runtime: "c", Version: "10.2.0", Extension: "c"},
	"go":         {Runtime: "go", Version: "1.16.2", Extension: "go"},
	"rust":       {Runtime: "rust", Version: "1.68.2", Extension: "rs"},
	"php":        {Runtime: "php", Version: "8.2.3", Extension: "php"},
	"ruby":       {Runtime: "ruby", Version: "3.0.1", Extension: "rb"},
	"shell":      {Runtime: "bash", Version: "5.2.0", Extension: "sh"},
	"sql":        {Runtime: "sqlite", Version: "3.36.0", Extension: "sql"},
}

// LanguageInfo returns the runtime pinned to language, case-insensitively.
func LanguageInfo(language string) (LanguageSpec, bool) {
	spec, ok := languageTable[strings.ToLower(language)]
	return spec, ok
}

func IsSupported(language string) bool {
	_, ok := LanguageInfo(language)
	return ok
}

// SupportedLanguages returns the language tags in sorted order.
func SupportedLanguages() []string {
	langs := make([]string, 0, len(languageTable))
	for l := range languageTable {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}
