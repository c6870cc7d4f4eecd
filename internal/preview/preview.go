// Package preview renders markdown and HTML tabs for the preview pane.
package preview

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/Cyclone1070/codecollab/internal/editor"
	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
)

// ErrUnsupported is returned for languages without a preview.
var ErrUnsupported = errors.New("preview not available for this language")

// MarkdownRenderer turns markdown into terminal output wrapped at width.
type MarkdownRenderer interface {
	Render(markdown string, width int) (string, error)
}

// GlamourRenderer renders markdown with glamour. Renderers are cached per width.
type GlamourRenderer struct {
	mu        sync.Mutex
	style     string
	renderers map[int]*glamour.TermRenderer
}

// NewGlamourRenderer creates a renderer for the "dark" or "light" theme.
func NewGlamourRenderer(theme editor.Theme) *GlamourRenderer {
	style := "dark"
	if theme == editor.ThemeLight {
		style = "light"
	}
	return &GlamourRenderer{style: style, renderers: make(map[int]*glamour.TermRenderer)}
}

func (g *GlamourRenderer) Render(markdown string, width int) (string, error) {
	g.mu.Lock()
	r, ok := g.renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(g.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			g.mu.Unlock()
			return "", fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		g.renderers[width] = r
	}
	g.mu.Unlock()

	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// Previewer renders tabs by language.
type Previewer struct {
	markdown MarkdownRenderer
	policy   *bluemonday.Policy
}

// NewPreviewer creates a Previewer using md for markdown tabs.
func NewPreviewer(md MarkdownRenderer) *Previewer {
	if md == nil {
		panic("markdown renderer is required")
	}
	return &Previewer{markdown: md, policy: bluemonday.StrictPolicy()}
}

// Supports reports whether a tab of the given language can be previewed.
func Supports(language string) bool {
	return language == "markdown" || language == "html"
}

// Render returns the preview of tab wrapped at width.
func (p *Previewer) Render(tab editor.EditorTab, width int) (string, error) {
	if width < 1 {
		width = 80
	}
	switch tab.Language {
	case "markdown":
		return p.markdown.Render(tab.Content, width)
	case "html":
		return p.htmlText(tab.Content), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, tab.Language)
	}
}

var (
	blockTag   = regexp.MustCompile(`(?i)<\s*(br|/p|/div|/h[1-6]|/li|/tr|/title)\s*/?>`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// htmlText strips markup and returns the visible text, one block per line.
func (p *Previewer) htmlText(src string) string {
	src = blockTag.ReplaceAllString(src, "$0\n")
	text := html.UnescapeString(p.policy.Sanitize(src))

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.Join(strings.Fields(l), " ")
	}
	text = blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text)
}
