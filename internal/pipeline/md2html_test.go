package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGoldmarkRenderer_ToFragment - Markdown to HTML fragment
// ---------------------------------------------------------------------------

func TestGoldmarkRenderer_ToFragment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		opts         MarkdownOptions
		input        string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "heading without id",
			opts:         MarkdownOptions{},
			input:        "# Hi",
			wantContains: []string{"<h1>Hi</h1>"},
			wantExcludes: []string{"id="},
		},
		{
			name:         "nested headings without ids",
			input:        "## Second\n\n### Third",
			wantContains: []string{"<h2>Second</h2>", "<h3>Third</h3>"},
			wantExcludes: []string{"id="},
		},
		{
			name:         "GFM table",
			input:        "| a | b |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "GFM strikethrough",
			input:        "~~gone~~",
			wantContains: []string{"<del>gone</del>"},
		},
		{
			name:         "raw HTML passed through when enabled",
			opts:         MarkdownOptions{RawHTML: true},
			input:        "<span class=\"x\">raw</span>",
			wantContains: []string{`<span class="x">raw</span>`},
		},
		{
			name:         "raw HTML omitted when disabled",
			opts:         MarkdownOptions{RawHTML: false},
			input:        "<span class=\"x\">raw</span>",
			wantContains: []string{"<!-- raw HTML omitted -->"},
		},
		{
			name:         "sanitize strips scripts",
			opts:         MarkdownOptions{RawHTML: true, Sanitize: true},
			input:        "<script>alert(1)</script>\n\ntext",
			wantContains: []string{"<p>text</p>"},
			wantExcludes: []string{"<script>"},
		},
		{
			name:         "highlighting uses inline styles",
			opts:         MarkdownOptions{Highlight: true},
			input:        "```go\npackage main\n```",
			wantContains: []string{"<pre", "style="},
		},
		{
			name:         "mark highlights when enabled",
			opts:         MarkdownOptions{Mark: true},
			input:        "a ==key== term",
			wantContains: []string{"<p>a <mark>key</mark> term</p>"},
			wantExcludes: []string{"=="},
		},
		{
			name:         "mark survives sanitizing",
			opts:         MarkdownOptions{Mark: true, Sanitize: true},
			input:        "==kept==",
			wantContains: []string{"<mark>kept</mark>"},
		},
		{
			name:         "mark left literal when disabled",
			input:        "a ==key== term",
			wantContains: []string{"==key=="},
			wantExcludes: []string{"<mark>"},
		},
		{
			name:         "code block plain without highlighting",
			input:        "```go\npackage main\n```",
			wantContains: []string{`<code class="language-go">package main`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewGoldmarkRenderer(tt.opts).ToFragment(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToFragment() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\ngot: %s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("output should not contain %q\ngot: %s", exclude, got)
				}
			}
			if strings.Contains(got, "<html") || strings.Contains(got, "<body") {
				t.Errorf("fragment must not be wrapped in a document\ngot: %s", got)
			}
		})
	}
}

func TestGoldmarkRenderer_ToFragment_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkRenderer(MarkdownOptions{}).ToFragment(ctx, "# Hi")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestGoldmarkRenderer_Concurrent(t *testing.T) {
	t.Parallel()

	r := NewGoldmarkRenderer(MarkdownOptions{RawHTML: true})
	errs := make(chan error, 16)
	for range 16 {
		go func() {
			out, err := r.ToFragment(context.Background(), "# Title\n\nbody")
			if err == nil && !strings.Contains(out, "<h1>Title</h1>") {
				err = errors.New("unexpected output: " + out)
			}
			errs <- err
		}()
	}
	for range 16 {
		if err := <-errs; err != nil {
			t.Error(err)
		}
	}
}
