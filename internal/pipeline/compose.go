package pipeline

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Slot ids recognised in a template shell. A slot is any element whose id
// attribute equals one of these values.
const (
	SlotMeta    = "mdMeta"
	SlotStyle   = "mdCss"
	SlotHeader  = "header"
	SlotContent = "content"
	SlotFooter  = "footer"
)

// RequiredSlots lists the slots every shell must contain exactly once.
var RequiredSlots = []string{SlotMeta, SlotStyle, SlotHeader, SlotContent, SlotFooter}

// ButtonMarker is the inert element historically left where the download
// button goes.
const ButtonMarker = "<downloadButton></downloadButton>"

// Sentinel errors for shell parsing.
var (
	ErrShellParse    = errors.New("failed to parse template shell")
	ErrSlotMissing   = errors.New("template slot missing")
	ErrSlotDuplicate = errors.New("template slot appears more than once")
	ErrSlotUnclosed  = errors.New("template slot element is not closed")
)

// voidElements never have an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// segment is either literal shell text (slot == "") or a slot occurrence.
type segment struct {
	text  string
	slot  string
	open  string // raw start tag of the slot element
	close string // raw end tag, empty for void elements
}

// Shell is a parsed HTML template with named slots. It is immutable and safe
// for concurrent use.
type Shell struct {
	segments []segment
}

// ParseShell tokenizes src and locates every required slot. Text outside the
// slots is kept byte-for-byte. Each slot must appear exactly once.
func ParseShell(src string) (*Shell, error) {
	z := html.NewTokenizer(strings.NewReader(src))
	s := &Shell{}
	seen := make(map[string]bool, len(RequiredSlots))
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			s.segments = append(s.segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: %v", ErrShellParse, err)
			}
			break
		}

		raw := string(z.Raw())
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			lit.WriteString(raw)
			continue
		}

		tok := z.Token()
		id := slotID(tok)
		if id == "" {
			lit.WriteString(raw)
			continue
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %q", ErrSlotDuplicate, id)
		}
		seen[id] = true
		flush()

		seg := segment{slot: id, open: raw}
		switch {
		case tt == html.StartTagToken && !voidElements[tok.Data]:
			end, err := skipElement(z, tok.Data)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrSlotUnclosed, id)
			}
			seg.close = end
		case !voidElements[tok.Data]:
			// <header id="header"/> is normalised to an explicit pair.
			seg.open = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(raw, ">"), "/")) + ">"
			seg.close = "</" + tok.Data + ">"
		}
		s.segments = append(s.segments, seg)
	}
	flush()

	for _, id := range RequiredSlots {
		if !seen[id] {
			return nil, fmt.Errorf("%w: %q", ErrSlotMissing, id)
		}
	}
	return s, nil
}

// slotID returns the slot id of a start tag, or "" when it is not a slot.
func slotID(tok html.Token) string {
	for _, a := range tok.Attr {
		if a.Key != "id" {
			continue
		}
		for _, id := range RequiredSlots {
			if a.Val == id {
				return id
			}
		}
	}
	return ""
}

// skipElement consumes tokens up to the end tag matching an already opened
// element named name and returns that end tag's raw text.
func skipElement(z *html.Tokenizer, name string) (string, error) {
	depth := 1
	for {
		switch z.Next() {
		case html.ErrorToken:
			return "", z.Err()
		case html.StartTagToken:
			if tag, _ := z.TagName(); string(tag) == name {
				depth++
			}
		case html.EndTagToken:
			raw := string(z.Raw())
			if tag, _ := z.TagName(); string(tag) == name {
				depth--
				if depth == 0 {
					return raw, nil
				}
			}
		}
	}
}

// Parts are the values substituted into a shell.
type Parts struct {
	Meta      Metadata
	SharedCSS string
	PageCSS   string
	Fragment  string // rendered Markdown
	Header    string // raw HTML for the header slot
	Footer    string // raw HTML for the footer slot
}

// Page is a composed document whose download button is not yet decided.
type Page struct {
	head string
	tail string
}

// Compose fills every slot of the shell. The result still has an open
// download-button position right after the content wrapper.
func (s *Shell) Compose(p Parts) *Page {
	var b strings.Builder
	var head string

	for _, seg := range s.segments {
		switch seg.slot {
		case "":
			b.WriteString(seg.text)
		case SlotMeta:
			b.WriteString(MetaTags(p.Meta))
		case SlotStyle:
			b.WriteString("<style>")
			b.WriteString(p.SharedCSS)
			b.WriteString(p.PageCSS)
			b.WriteString("</style>")
		case SlotHeader:
			b.WriteString(seg.open + p.Header + seg.close)
		case SlotFooter:
			b.WriteString(seg.open + p.Footer + seg.close)
		case SlotContent:
			b.WriteString("<div id=\"content\">\n")
			b.WriteString(p.Fragment)
			b.WriteString("</div>\n")
			head = b.String()
			b.Reset()
		}
	}

	return &Page{head: head, tail: b.String()}
}

// Render returns the full document with button placed after the content.
// Pass "" to omit the button.
func (p *Page) Render(button string) string {
	return p.head + button + p.tail
}

// MetaTags renders metadata as head elements: the "title" key becomes a
// <title> element, every other key a <meta name content> element, in order.
func MetaTags(m Metadata) string {
	var b strings.Builder
	for i, f := range m {
		if i > 0 {
			b.WriteByte('\n')
		}
		if f.Key == "title" {
			fmt.Fprintf(&b, "<title>%s</title>", html.EscapeString(f.Value))
			continue
		}
		fmt.Fprintf(&b, `<meta name="%s" content="%s">`, html.EscapeString(f.Key), html.EscapeString(f.Value))
	}
	return b.String()
}

// DownloadButton builds the anchor block linking a page to its PDF.
func DownloadButton(href, label, class string) string {
	return fmt.Sprintf("<div>\n  <a class=\"%s\" href=\"%s\">%s</a>\n</div>\n",
		html.EscapeString(class), html.EscapeString(href), html.EscapeString(label))
}
