package python

import "regexp"

type SymbolKind string

const (
	SymbolClass    SymbolKind = "class"
	SymbolFunction SymbolKind = "function"
)

// Symbol is a top-level class or function definition. Column is the 1-based
// start of the name.
type Symbol struct {
	Name   string
	Kind   SymbolKind
	Line   int
	Column int
}

var (
	classDef = regexp.MustCompile(`^class\s+(\w+)`)
	funcDef  = regexp.MustCompile(`^def\s+(\w+)`)
)

// DocumentSymbols lists unindented class and def statements in order.
func DocumentSymbols(code string) []Symbol {
	var out []Symbol
	for i, line := range splitLines(code) {
		if m := classDef.FindStringSubmatchIndex(line); m != nil {
			out = append(out, Symbol{Name: line[m[2]:m[3]], Kind: SymbolClass, Line: i + 1, Column: m[2] + 1})
		}
		if m := funcDef.FindStringSubmatchIndex(line); m != nil {
			out = append(out, Symbol{Name: line[m[2]:m[3]], Kind: SymbolFunction, Line: i + 1, Column: m[2] + 1})
		}
	}
	return out
}

// Definition returns the lines defining word as a top-level class or
// function.
func Definition(code, word string) []int {
	var lines []int
	for _, s := range DocumentSymbols(code) {
		if s.Name == word {
			lines = append(lines, s.Line)
		}
	}
	return lines
}
