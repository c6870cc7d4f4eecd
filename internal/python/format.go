package python

import (
	"regexp"
	"strings"
)

// FormatRule is one step of Format.
type FormatRule struct {
	Name        string
	Description string
	Apply       func(code string) string
}

var (
	doubleQuoted   = regexp.MustCompile(`"([^"'\n]*)"`)
	tightOperators = regexp.MustCompile(`(\w)(==|!=|<=|>=|\+=|-=|\*=|/=|[+\-*/=<>])(\w)`)
)

var formatRules = []FormatRule{
	{
		Name:        "removeTrailingWhitespace",
		Description: "Remove trailing whitespace from lines",
		Apply: func(code string) string {
			lines := strings.Split(code, "\n")
			for i, l := range lines {
				lines[i] = strings.TrimRight(l, " \t\r")
			}
			return strings.Join(lines, "\n")
		},
	},
	{
		Name:        "ensureNewlineAtEnd",
		Description: "Ensure file ends with a newline",
		Apply: func(code string) string {
			if strings.HasSuffix(code, "\n") {
				return code
			}
			return code + "\n"
		},
	},
	{
		Name:        "normalizeQuotes",
		Description: "Normalize string quotes to single quotes",
		Apply: func(code string) string {
			return doubleQuoted.ReplaceAllString(code, "'${1}'")
		},
	},
	{
		Name:        "addMissingWhitespace",
		Description: "Add missing whitespace around operators",
		Apply: func(code string) string {
			// Two passes so chains like a+b+c are fully spaced.
			for i := 0; i < 2; i++ {
				code = tightOperators.ReplaceAllString(code, "${1} ${2} ${3}")
			}
			return code
		},
	},
}

// FormatRules returns a copy of the formatting pipeline.
func FormatRules() []FormatRule {
	return append([]FormatRule(nil), formatRules...)
}

// Format applies every formatting rule in order.
func Format(code string) string {
	for _, r := range formatRules {
		code = r.Apply(code)
	}
	return code
}
