// Package search implements find and replace across the workspace file tree.
package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Cyclone1070/codecollab/internal/config"
	"github.com/Cyclone1070/codecollab/internal/workspace"
)

// Request describes a search over the workspace.
type Request struct {
	Query          string `json:"query" mapstructure:"query"`
	CaseSensitive  bool   `json:"case_sensitive,omitempty" mapstructure:"case_sensitive"`
	WholeWord      bool   `json:"whole_word,omitempty" mapstructure:"whole_word"`
	Regex          bool   `json:"regex,omitempty" mapstructure:"regex"`
	IncludeIgnored bool   `json:"include_ignored,omitempty" mapstructure:"include_ignored"`
	Offset         int    `json:"offset,omitempty" mapstructure:"offset"`
	Limit          int    `json:"limit,omitempty" mapstructure:"limit"`
}

// Validate checks the request and clamps Limit into the configured range.
// A zero Limit selects the configured default.
func (r *Request) Validate(cfg *config.Config) error {
	if r.Query == "" {
		return ErrQueryRequired
	}
	if r.Offset < 0 {
		return &NegativeOffsetError{Value: r.Offset}
	}
	if r.Limit < 0 {
		return &NegativeLimitError{Value: r.Limit}
	}
	if r.Limit == 0 {
		r.Limit = cfg.Search.DefaultLimit
	}
	if r.Limit > cfg.Search.MaxLimit {
		r.Limit = cfg.Search.MaxLimit
	}
	_, err := r.Pattern()
	return err
}

// Pattern compiles the query according to the request flags.
func (r *Request) Pattern() (*regexp.Regexp, error) {
	if r.Query == "" {
		return nil, ErrQueryRequired
	}
	expr := r.Query
	if !r.Regex {
		expr = regexp.QuoteMeta(expr)
	}
	if r.WholeWord {
		expr = `\b(?:` + expr + `)\b`
	}
	if !r.CaseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &PatternError{Pattern: r.Query, Cause: err}
	}
	return re, nil
}

// Match is a single hit. Line and Column are 1-based; Column counts runes.
type Match struct {
	FileID  string `json:"file_id"`
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Match   string `json:"match"`
	Context string `json:"context"`
}

// Response contains one page of matches.
type Response struct {
	Matches    []Match `json:"matches"`
	Offset     int     `json:"offset"`
	Limit      int     `json:"limit"`
	TotalCount int     `json:"total_count"`
	Truncated  bool    `json:"truncated"`
	Files      int     `json:"files"` // distinct files with at least one match
}

// Searcher runs searches with configured limits.
type Searcher struct {
	config *config.Config
}

// NewSearcher creates a Searcher.
func NewSearcher(cfg *config.Config) *Searcher {
	if cfg == nil {
		panic("config is required")
	}
	return &Searcher{config: cfg}
}

// Search walks the forest and returns matches sorted by path, then line and column.
// Files hidden by the root .gitignore are skipped unless IncludeIgnored is set.
func (s *Searcher) Search(files []*workspace.FileNode, req *Request) (*Response, error) {
	if err := req.Validate(s.config); err != nil {
		return nil, err
	}
	re, err := req.Pattern()
	if err != nil {
		return nil, err
	}

	var ignore matcher = NoOpMatcher{}
	if !req.IncludeIgnored {
		ignore = MatcherFor(files)
	}

	var matches []Match
	hit := make(map[string]struct{})
	visit(files, "", ignore, func(path string, n *workspace.FileNode) {
		for i, line := range strings.Split(n.ContentString(), "\n") {
			line = strings.TrimSuffix(line, "\r")
			for _, loc := range re.FindAllStringIndex(line, -1) {
				if loc[0] == loc[1] {
					continue
				}
				matches = append(matches, Match{
					FileID:  n.ID,
					Path:    path,
					Line:    i + 1,
					Column:  len([]rune(line[:loc[0]])) + 1,
					Match:   line[loc[0]:loc[1]],
					Context: s.context(line),
				})
				hit[n.ID] = struct{}{}
			}
		}
	})

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Path != matches[j].Path {
			return matches[i].Path < matches[j].Path
		}
		if matches[i].Line != matches[j].Line {
			return matches[i].Line < matches[j].Line
		}
		return matches[i].Column < matches[j].Column
	})

	paged, p := paginate(matches, req.Offset, req.Limit)
	return &Response{
		Matches:    paged,
		Offset:     req.Offset,
		Limit:      req.Limit,
		TotalCount: p.TotalCount,
		Truncated:  p.Truncated,
		Files:      len(hit),
	}, nil
}

func (s *Searcher) context(line string) string {
	line = strings.TrimSpace(line)
	if limit := s.config.Search.MaxLineLength; len(line) > limit {
		cut := limit
		for cut > 0 && !utf8RuneStart(line[cut]) {
			cut--
		}
		line = line[:cut] + "...[truncated]"
	}
	return line
}

func utf8RuneStart(b byte) bool { return b&0xC0 != 0x80 }

// visit calls fn for every file not hidden by ignore. Ignored folders are
// pruned together with their subtree.
func visit(nodes []*workspace.FileNode, prefix string, ignore matcher, fn func(string, *workspace.FileNode)) {
	for _, n := range nodes {
		path := n.Name
		if prefix != "" {
			path = prefix + "/" + n.Name
		}
		if ignore.ShouldIgnore(path, n.IsFolder()) {
			continue
		}
		if n.IsFolder() {
			visit(n.Children, path, ignore, fn)
			continue
		}
		fn(path, n)
	}
}
