package python

import (
	"regexp"
	"sort"
	"strings"
)

type CompletionKind string

const (
	KindKeyword  CompletionKind = "keyword"
	KindFunction CompletionKind = "function"
	KindModule   CompletionKind = "module"
	KindSnippet  CompletionKind = "snippet"
	KindMethod   CompletionKind = "method"
)

// CompletionItem is one suggestion. Snippet InsertText uses ${n:default}
// placeholders; Expand resolves them.
type CompletionItem struct {
	Label         string
	Kind          CompletionKind
	InsertText    string
	Documentation string
}

var placeholder = regexp.MustCompile(`\$\{\d+:([^}]*)\}`)

// Expand returns the insert text with placeholders replaced by their
// defaults and tabs indented to tabSize spaces.
func (c CompletionItem) Expand(tabSize int) string {
	text := placeholder.ReplaceAllString(c.InsertText, "${1}")
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabSize))
}

var Keywords = []string{
	"and", "as", "assert", "break", "class", "continue", "def", "del", "elif", "else",
	"except", "exec", "finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "not", "or", "pass", "print", "raise", "return", "try", "while", "with",
	"yield", "None", "True", "False", "async", "await", "nonlocal",
}

var Builtins = []string{
	"abs", "all", "any", "bin", "bool", "bytearray", "bytes", "callable", "chr", "classmethod",
	"compile", "complex", "delattr", "dict", "dir", "divmod", "enumerate", "eval", "exec",
	"filter", "float", "format", "frozenset", "getattr", "globals", "hasattr", "hash",
	"help", "hex", "id", "input", "int", "isinstance", "issubclass", "iter", "len", "list",
	"locals", "map", "max", "memoryview", "min", "next", "object", "oct", "open", "ord",
	"pow", "print", "property", "range", "repr", "reversed", "round", "set", "setattr",
	"slice", "sorted", "staticmethod", "str", "sum", "super", "tuple", "type", "vars",
	"zip", "__import__",
}

var StandardLibrary = []string{
	"os", "sys", "math", "random", "datetime", "json", "re", "collections",
	"itertools", "functools", "operator", "pathlib", "urllib", "http", "csv",
	"sqlite3", "pickle", "xml", "html", "base64", "hashlib", "hmac", "secrets",
	"threading", "multiprocessing", "subprocess", "socket", "select", "asyncio",
	"unittest", "doctest", "logging", "argparse", "configparser", "gettext",
	"locale", "calendar", "time", "zoneinfo", "statistics", "decimal", "fractions",
	"bisect", "array", "queue", "heapq", "weakref", "types", "copy",
	"pprint", "reprlib", "enum", "dataclasses", "typing", "contextlib", "abc",
	"traceback", "linecache", "gc", "inspect", "site", "importlib",
}

var Snippets = []CompletionItem{
	{Label: "def", InsertText: "def ${1:function_name}(${2:parameters}):\n\t${3:pass}", Documentation: "Function definition"},
	{Label: "class", InsertText: "class ${1:ClassName}:\n\tdef __init__(self${2:parameters}):\n\t\t${3:pass}", Documentation: "Class definition"},
	{Label: "classi", InsertText: "class ${1:ClassName}(${2:ParentClass}):\n\tdef __init__(self${3:parameters}):\n\t\t${4:super().__init__()}\n\t\t${5:pass}", Documentation: "Class definition with inheritance"},
	{Label: "if", InsertText: "if ${1:condition}:\n\t${2:pass}", Documentation: "If statement"},
	{Label: "ifel", InsertText: "if ${1:condition}:\n\t${2:pass}\nelse:\n\t${3:pass}", Documentation: "If-else statement"},
	{Label: "elif", InsertText: "elif ${1:condition}:\n\t${2:pass}", Documentation: "Elif statement"},
	{Label: "for", InsertText: "for ${1:item} in ${2:items}:\n\t${3:pass}", Documentation: "For loop"},
	{Label: "forr", InsertText: "for ${1:i} in range(${2:n}):\n\t${3:pass}", Documentation: "For loop with range"},
	{Label: "while", InsertText: "while ${1:condition}:\n\t${2:pass}", Documentation: "While loop"},
	{Label: "try", InsertText: "try:\n\t${1:pass}\nexcept ${2:Exception} as ${3:e}:\n\t${4:pass}", Documentation: "Try/except block"},
	{Label: "tryf", InsertText: "try:\n\t${1:pass}\nexcept ${2:Exception} as ${3:e}:\n\t${4:pass}\nfinally:\n\t${5:pass}", Documentation: "Try/except/finally block"},
	{Label: "with", InsertText: "with ${1:expression} as ${2:variable}:\n\t${3:pass}", Documentation: "With statement"},
	{Label: "list_comp", InsertText: "[${1:expression} for ${2:item} in ${3:items}]", Documentation: "List comprehension"},
	{Label: "dict_comp", InsertText: "{${1:key}: ${2:value} for ${3:item} in ${4:items}}", Documentation: "Dictionary comprehension"},
	{Label: "lambda", InsertText: "lambda ${1:parameter}: ${2:expression}", Documentation: "Lambda function"},
	{Label: "import", InsertText: "import ${1:module}", Documentation: "Import statement"},
	{Label: "from", InsertText: "from ${1:module} import ${2:object}", Documentation: "From-import statement"},
	{Label: "main", InsertText: "if __name__ == \"__main__\":\n\t${1:main()}", Documentation: "Main function guard"},
	{Label: "property", InsertText: "@property\ndef ${1:name}(self):\n\treturn self._${1:name}\n\n@${1:name}.setter\ndef ${1:name}(self, value):\n\tself._${1:name} = value", Documentation: "Property with getter and setter"},
	{Label: "decorator", InsertText: "def ${1:decorator_name}(func):\n\tdef wrapper(*args, **kwargs):\n\t\t${2:# Do something before}\n\t\tresult = func(*args, **kwargs)\n\t\t${3:# Do something after}\n\t\treturn result\n\treturn wrapper", Documentation: "Function decorator"},
}

var listMethods = []string{"append", "extend", "insert", "remove", "pop", "clear", "index", "count", "sort", "reverse", "copy"}

var statementKeywords = []string{"if", "for", "while", "def", "class", "try", "with", "import", "from", "return", "yield", "raise", "assert", "pass", "break", "continue"}

var trailingWord = regexp.MustCompile(`\w*$`)

// Complete suggests items for the text left of the cursor. After a dot it
// offers list methods, on a blank line statement keywords, and otherwise
// keywords, builtins, modules and snippets starting with the word being
// typed.
func Complete(linePrefix string) []CompletionItem {
	word := trailingWord.FindString(linePrefix)
	head := strings.TrimSuffix(linePrefix, word)

	switch {
	case strings.HasSuffix(head, "."):
		return filterItems(simpleItems(listMethods, KindMethod), word)
	case strings.TrimSpace(linePrefix) == "":
		return simpleItems(statementKeywords, KindKeyword)
	}

	var items []CompletionItem
	items = append(items, simpleItems(Keywords, KindKeyword)...)
	items = append(items, simpleItems(Builtins, KindFunction)...)
	items = append(items, simpleItems(StandardLibrary, KindModule)...)
	for _, s := range Snippets {
		s.Kind = KindSnippet
		items = append(items, s)
	}
	items = filterItems(items, word)
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Label) < strings.ToLower(items[j].Label)
	})
	return items
}

func simpleItems(labels []string, kind CompletionKind) []CompletionItem {
	out := make([]CompletionItem, len(labels))
	for i, l := range labels {
		out[i] = CompletionItem{Label: l, Kind: kind, InsertText: l}
	}
	return out
}

func filterItems(items []CompletionItem, word string) []CompletionItem {
	if word == "" {
		return items
	}
	lw := strings.ToLower(word)
	out := items[:0]
	for _, it := range items {
		if strings.HasPrefix(strings.ToLower(it.Label), lw) {
			out = append(out, it)
		}
	}
	return out
}

// Hover describes a builtin or standard library module.
func Hover(word string) (string, bool) {
	for _, b := range Builtins {
		if b == word {
			return "**" + word + "**\n\nPython built-in function", true
		}
	}
	for _, m := range StandardLibrary {
		if m == word {
			return "**" + word + "**\n\nPython standard library module", true
		}
	}
	return "", false
}
