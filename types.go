package mdsite

import (
	"fmt"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin = 0.0
	MaxMargin = 2.0
)

// defaultTimeout bounds a single page render.
const defaultTimeout = 30 * time.Second

// paperDimensions in inches, portrait.
var paperDimensions = map[string][2]float64{
	PageSizeA4:     {8.27, 11.69},
	PageSizeLetter: {8.5, 11},
	PageSizeLegal:  {8.5, 14},
}

// PageSettings configures PDF page layout.
type PageSettings struct {
	Size            string  // "a4", "letter", "legal"
	Orientation     string  // "portrait", "landscape"
	Margin          float64 // inches, all four sides
	PrintBackground bool
}

// DefaultPageSettings returns A4 portrait with no margin.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      0,
	}
}

// Validate checks that the settings describe a printable page.
// Empty size and orientation are accepted and mean the defaults.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if p.Size != "" {
		if _, ok := paperDimensions[strings.ToLower(p.Size)]; !ok {
			return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
		}
	}
	switch strings.ToLower(p.Orientation) {
	case "", OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.1f and %.1f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// Dimensions returns paper width and height in inches, orientation applied.
func (p *PageSettings) Dimensions() (width, height float64) {
	size := PageSizeA4
	if p != nil && p.Size != "" {
		size = strings.ToLower(p.Size)
	}
	d, ok := paperDimensions[size]
	if !ok {
		d = paperDimensions[PageSizeA4]
	}
	if p != nil && strings.EqualFold(p.Orientation, OrientationLandscape) {
		return d[1], d[0]
	}
	return d[0], d[1]
}

// ButtonMode selects what the PDF variant of a page shows where the HTML
// variant has its download button.
type ButtonMode string

const (
	ButtonOmit   ButtonMode = "omit"   // nothing
	ButtonButton ButtonMode = "button" // the same button as the HTML page
	ButtonMarker ButtonMode = "marker" // the inert <downloadButton> element
)

// Validate rejects unknown modes. The empty mode means ButtonOmit.
func (m ButtonMode) Validate() error {
	switch m {
	case "", ButtonOmit, ButtonButton, ButtonMarker:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidButtonMode, string(m))
}

// Download configures the button linking a page to its PDF.
type Download struct {
	Label string
	Class string
}

// Layout names the source tree and template used by a build.
type Layout struct {
	Source      string // source root
	Output      string // output root, wiped on every build
	StaticDir   string // relative to Source
	PagesDir    string // relative to Source
	TemplateDir string // relative to Source
	Style       string // shared stylesheet name
	Shell       string // HTML shell name
	Header      string // raw HTML for the header slot
	Footer      string // raw HTML for the footer slot
}

// DefaultLayout returns src/{static,pages,template} built into public.
func DefaultLayout() Layout {
	return Layout{
		Source:      "src",
		Output:      "public",
		StaticDir:   "static",
		PagesDir:    "pages",
		TemplateDir: "template",
		Style:       "markdown",
		Shell:       "markdown",
	}
}

// PageSource is a Markdown page discovered in the pages directory.
type PageSource struct {
	Name    string // file name, e.g. "about.md"
	Path    string
	CSSPath string // same-named .css sibling, empty when absent
}

// BaseName returns the page name without its extension.
func (p PageSource) BaseName() string {
	return strings.TrimSuffix(p.Name, ".md")
}
