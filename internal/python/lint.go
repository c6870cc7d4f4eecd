// Package python provides lightweight, pattern-based tooling for Python
// buffers: lint, format, completion, symbols and a simulated debugger.
// None of it parses Python.
package python

import (
	"fmt"
	"regexp"
	"strings"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// MaxLineLength is the PEP 8 line limit checked by E501.
const MaxLineLength = 79

// Rule is one lint rule. Rules with neither Pattern nor check need
// whole-file analysis and are listed but never reported.
type Rule struct {
	Code     string
	Message  string
	Severity Severity
	Pattern  *regexp.Regexp

	check func(line string) bool
}

// Checked reports whether Lint evaluates the rule.
func (r Rule) Checked() bool {
	return r.Pattern != nil || r.check != nil
}

// Diagnostic is a lint finding. Lines and columns are 1-based; EndColumn is
// exclusive.
type Diagnostic struct {
	Code        string
	Message     string
	Severity    Severity
	Line        int
	StartColumn int
	EndColumn   int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d %s %s %s", d.Line, d.StartColumn, d.Severity, d.Code, d.Message)
}

const keywordAlt = `if|for|while|def|class|import|from|try|except|finally|with|as|elif|else|return|yield|raise|assert|del|pass|continue|break|global|nonlocal|lambda|and|or|not|in|is`

func rule(code, message string, sev Severity, pattern string) Rule {
	r := Rule{Code: code, Message: message, Severity: sev}
	if pattern != "" {
		r.Pattern = regexp.MustCompile(pattern)
	}
	return r
}

var lintRules = []Rule{
	rule("E101", "Indentation contains mixed spaces and tabs", SeverityWarning, `^.*[\t]+.*[ ]+.*$`),
	{Code: "E111", Message: "Indentation is not a multiple of 4", Severity: SeverityWarning, check: badIndentWidth},
	rule("E112", "Expected an indented block", SeverityError, ""),
	rule("E113", "Unexpected indentation", SeverityError, ""),
	rule("E121", "Continuation line under-indented for hanging indent", SeverityWarning, ""),
	rule("E122", "Continuation line missing indentation or outdented", SeverityError, ""),
	rule("E201", `Whitespace after "("`, SeverityWarning, `\(\s+`),
	rule("E202", `Whitespace before ")"`, SeverityWarning, `\s+\)`),
	rule("E203", `Whitespace before ":"`, SeverityWarning, `\s+:`),
	rule("E211", `Whitespace before "("`, SeverityWarning, `\w\s+\(`),
	rule("E221", "Multiple spaces before operator", SeverityWarning, `\w\s{2,}[+\-*/=<>]`),
	rule("E222", "Multiple spaces after operator", SeverityWarning, `[+\-*/=<>]\s{2,}\w`),
	rule("E225", "Missing whitespace around operator", SeverityWarning, `\w[+\-*/=<>]\w`),
	rule("E231", `Missing whitespace after ",", ";", or ":"`, SeverityWarning, `[,;:]\w`),
	rule("E251", "Unexpected spaces around keyword / parameter equals", SeverityWarning, `=\s+\w+\s*=`),
	rule("E261", "At least two spaces before inline comment", SeverityWarning, `\w\s+#`),
	rule("E262", `Inline comment should start with "# "`, SeverityWarning, `#\w`),
	rule("E265", `Block comment should start with "# "`, SeverityWarning, `^#\w`),
	rule("E266", `Too many leading "#" for block comment`, SeverityWarning, `^#{2,}`),
	rule("E271", "Multiple spaces after keyword", SeverityWarning, `\b(`+keywordAlt+`)\s{2,}`),
	rule("E272", "Multiple spaces before keyword", SeverityWarning, `\s{2,}\b(`+keywordAlt+`)\b`),
	rule("E301", "Expected 1 blank line, found 0", SeverityWarning, ""),
	rule("E302", "Expected 2 blank lines, found 0", SeverityWarning, ""),
	rule("E303", "Too many blank lines", SeverityWarning, ""),
	rule("E305", "Expected 2 blank lines after end of function or class", SeverityWarning, ""),
	rule("E401", "Multiple imports on one line", SeverityWarning, `import\s+\w+,\s*\w+`),
	rule("E402", "Module level import not at top of file", SeverityWarning, ""),
	{Code: "E501", Message: "Line too long", Severity: SeverityWarning, check: tooLong},
	rule("E502", "The backslash is redundant between brackets", SeverityWarning, ""),
	rule("E701", "Multiple statements on one line (colon)", SeverityError, `.*:.*;`),
	rule("E702", "Multiple statements on one line (semicolon)", SeverityError, `.*;.*;`),
	rule("E703", "Statement ends with a semicolon", SeverityWarning, `.*;$`),
	rule("E711", `Comparison to None should be "if cond is None:"`, SeverityWarning, `==\s*None`),
	rule("E712", `Comparison to True should be "if cond is True:" or "if cond:"`, SeverityWarning, `==\s*True`),
	rule("E713", `Test for membership should be "not in"`, SeverityWarning, `not\s+\w+\s+in\s+\w+`),
	rule("E714", `Test for object identity should be "is not"`, SeverityWarning, `not\s+\w+\s+is\s+\w+`),
	rule("E721", `Do not compare types, use "isinstance()"`, SeverityWarning, `type\([^)]*\)\s*==`),
	rule("E722", "Do not use bare except, specify exception instead", SeverityWarning, `except\s*:`),
	rule("E731", "Do not assign a lambda expression, use a def", SeverityWarning, `\w+\s*=\s*lambda\s+`),
	rule("E741", `Do not use variables named "l", "O", or "I"`, SeverityWarning, `\b(l|O|I)\b\s*=`),
	rule("E742", `Do not define classes named "l", "O", or "I"`, SeverityWarning, `class\s+(l|O|I)\b`),
	rule("E743", `Do not define functions named "l", "O", or "I"`, SeverityWarning, `def\s+(l|O|I)\b`),
	rule("E901", "SyntaxError or IndentationError", SeverityError, ""),
	rule("E902", "IOError", SeverityError, ""),
	rule("W191", "Indentation contains tabs", SeverityWarning, `^\t+`),
	rule("W291", "Trailing whitespace", SeverityWarning, `\s+$`),
	rule("W292", "No newline at end of file", SeverityWarning, ""),
	rule("W293", "Blank line contains whitespace", SeverityWarning, `^\s+$`),
	rule("W391", "Blank line at end of file", SeverityWarning, ""),
	rule("W503", "Line break occurred before a binary operator", SeverityWarning, ""),
	rule("W504", "Line break occurred after a binary operator", SeverityWarning, ""),
	rule("W601", `.has_key() is deprecated, use "in"`, SeverityWarning, `\.has_key\(`),
	rule("W602", "Deprecated form of raising exception", SeverityWarning, `raise\s+\w+,\s*`),
	rule("W603", `"<>" is deprecated, use "!="`, SeverityWarning, `<>`),
	rule("W604", `Backticks are deprecated, use "repr()"`, SeverityWarning, "`.*`"),
	rule("W605", "Invalid escape sequence", SeverityWarning, ""),
	rule("W606", `"async" and "await" are reserved keywords starting with Python 3.7`, SeverityWarning, ""),
}

// badIndentWidth flags space-only indentation that is not a multiple of 4.
func badIndentWidth(line string) bool {
	n := len(line) - len(strings.TrimLeft(line, " "))
	if n == 0 || n == len(line) {
		return false
	}
	return n%4 != 0
}

func tooLong(line string) bool {
	return len(line) > MaxLineLength
}

// Rules returns a copy of the rule table.
func Rules() []Rule {
	return append([]Rule(nil), lintRules...)
}

// Lint checks every line against the rules that have a line-level check.
func Lint(code string) []Diagnostic {
	var out []Diagnostic
	for i, line := range splitLines(code) {
		for _, r := range lintRules {
			if !r.matches(line) {
				continue
			}
			d := Diagnostic{
				Code:        r.Code,
				Message:     r.Message,
				Severity:    r.Severity,
				Line:        i + 1,
				StartColumn: 1,
				EndColumn:   len(line) + 1,
			}
			if r.Code == "E501" {
				d.Message = fmt.Sprintf("Line too long (%d > %d characters)", len(line), MaxLineLength)
				d.StartColumn = MaxLineLength + 1
			}
			out = append(out, d)
		}
	}
	return out
}

func (r Rule) matches(line string) bool {
	if r.check != nil && r.check(line) {
		return true
	}
	return r.Pattern != nil && r.Pattern.MatchString(line)
}

func splitLines(code string) []string {
	return strings.Split(strings.ReplaceAll(code, "\r\n", "\n"), "\n")
}
