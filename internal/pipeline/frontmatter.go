package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedFrontMatter marks a front matter line that is not "key: value".
var ErrMalformedFrontMatter = errors.New("malformed front matter line")

// frontMatterPattern matches a leading block delimited by "---" lines.
// The closing delimiter must be followed by a line break.
var frontMatterPattern = regexp.MustCompile(`(?s)\A---[\r\n]+(.*?)[\r\n]+---[\r\n]`)

// Field is a single front matter entry.
type Field struct {
	Key   string
	Value string
}

// Metadata is an ordered set of front matter fields. Iteration order is
// declaration order; setting an existing key replaces its value in place.
type Metadata []Field

// DefaultMetadata returns the metadata used for pages without front matter.
func DefaultMetadata() Metadata {
	return Metadata{
		{Key: "charset", Value: "utf-8"},
		{Key: "title", Value: "Untitled"},
		{Key: "description", Value: "No description"},
		{Key: "viewport", Value: "width=device-width, initial-scale=1"},
		{Key: "author", Value: "Anonymous"},
		{Key: "filename", Value: "untitled.md"},
	}
}

// Get returns the value for key and whether it was present.
func (m Metadata) Get(key string) (string, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Set adds key or overwrites its value, keeping the original position.
func (m *Metadata) Set(key, value string) {
	for i := range *m {
		if (*m)[i].Key == key {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, Field{Key: key, Value: value})
}

// Keys returns the keys in declaration order.
func (m Metadata) Keys() []string {
	keys := make([]string, len(m))
	for i, f := range m {
		keys[i] = f.Key
	}
	return keys
}

// ParseError describes a front matter line that was skipped.
type ParseError struct {
	Line int    // 1-based line number within the front matter block
	Text string // offending line, trimmed
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: line %d: %q", ErrMalformedFrontMatter, e.Line, e.Text)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedFrontMatter
}

// FrontMatter is the result of splitting a Markdown document.
type FrontMatter struct {
	Meta    Metadata
	Body    string
	Found   bool          // false when the document had no front matter block
	Skipped []*ParseError // malformed lines ignored while parsing
}

// ExtractFrontMatter splits raw Markdown into metadata and body.
//
// Without a leading "---" block, Meta is DefaultMetadata and Body is the whole
// input. With one, each non-blank line is split on its first colon, key and
// value are trimmed and one layer of surrounding double quotes is removed from
// the value. Lines without a colon or with an empty key are skipped and
// reported in Skipped.
func ExtractFrontMatter(text string) FrontMatter {
	loc := frontMatterPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return FrontMatter{Meta: DefaultMetadata(), Body: text}
	}

	block := text[loc[2]:loc[3]]
	fm := FrontMatter{
		Meta:  Metadata{},
		Body:  text[:loc[0]] + text[loc[1]:],
		Found: true,
	}

	for i, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			fm.Skipped = append(fm.Skipped, &ParseError{Line: i + 1, Text: line})
			continue
		}
		fm.Meta.Set(key, unquote(strings.TrimSpace(value)))
	}

	return fm
}

// unquote strips one layer of surrounding double quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
