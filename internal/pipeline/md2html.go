package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates Markdown to HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultHighlightStyle is the chroma style used when highlighting is enabled
// without an explicit style.
const DefaultHighlightStyle = "github"

// MarkdownOptions configures the Markdown renderer.
type MarkdownOptions struct {
	RawHTML        bool   // pass inline HTML through instead of escaping it
	Highlight      bool   // syntax-highlight fenced code blocks
	HighlightStyle string // chroma style name (default "github")
	Sanitize       bool   // run the fragment through a UGC sanitizing policy
	Mark           bool   // render ==text== as <mark>text</mark>
}

// MarkdownRenderer converts Markdown body text to an HTML fragment.
type MarkdownRenderer interface {
	ToFragment(ctx context.Context, content string) (string, error)
}

// GoldmarkRenderer renders Markdown with goldmark (pure Go).
// Headings are rendered without generated id attributes.
type GoldmarkRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	mark   bool
}

// NewGoldmarkRenderer creates a GoldmarkRenderer with GFM extensions.
func NewGoldmarkRenderer(opts MarkdownOptions) *GoldmarkRenderer {
	extensions := []goldmark.Extender{
		extension.GFM, // Tables, strikethrough, autolinks, task lists
	}
	if opts.Highlight {
		style := opts.HighlightStyle
		if style == "" {
			style = DefaultHighlightStyle
		}
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(style),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(false), // inline styles: pages ship without a chroma stylesheet
			),
		))
	}

	var rendererOpts []goldmark.Option
	if opts.RawHTML {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	r := &GoldmarkRenderer{
		md:   goldmark.New(append(rendererOpts, goldmark.WithExtensions(extensions...))...),
		mark: opts.Mark,
	}
	if opts.Sanitize {
		r.policy = bluemonday.UGCPolicy()
	}
	return r
}

// ToFragment converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (r *GoldmarkRenderer) ToFragment(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		if r.mark {
			content = markHighlights(content)
		}
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		out := buf.String()
		if r.policy != nil {
			out = r.policy.Sanitize(out)
		}
		if r.mark {
			out = expandMarks(out)
		}
		done <- result{html: out}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}
