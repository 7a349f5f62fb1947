// Package render converts Markdown documents to sanitized HTML with the
// GitHub-flavored extensions: tables, strikethrough, task lists and
// autolinks.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/adrg/frontmatter"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer renders Markdown to HTML. The most recent result is kept so
// re-deriving an unchanged document is free. Safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy

	mu         sync.Mutex
	lastSource string
	lastHTML   string
	cached     bool
}

// New returns a Renderer.
func New() *Renderer {
	return &Renderer{
		md:     newMarkdown(),
		policy: newPolicy(),
	}
}

// Render converts source to HTML. Front matter is not part of the output.
func (r *Renderer) Render(source string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached && source == r.lastSource {
		return r.lastHTML, nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(StripFrontMatter(source)), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	out := r.policy.Sanitize(buf.String())

	r.lastSource = source
	r.lastHTML = out
	r.cached = true
	return out, nil
}

// StripFrontMatter removes a leading YAML, TOML or JSON front matter
// block. Text without a well-formed block is returned unchanged.
func StripFrontMatter(source string) string {
	var meta map[string]any
	rest, err := frontmatter.Parse(strings.NewReader(source), &meta)
	if err != nil {
		return source
	}
	return string(rest)
}

// HighlightCSS returns the stylesheet for highlighted code blocks in the
// named chroma style. Unknown names fall back to chroma's default style.
func HighlightCSS(style string) (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", fmt.Errorf("writing highlight css: %w", err)
	}
	return buf.String(), nil
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

var checkboxType = regexp.MustCompile(`^checkbox$`)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("align").OnElements("th", "td")
	p.AllowStyles("text-align").OnElements("th", "td")
	p.AllowElements("input")
	p.AllowAttrs("type").Matching(checkboxType).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")
	return p
}
