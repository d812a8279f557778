package mdsite

import (
	"errors"
	"fmt"
	"time"
)

// PageResult records what a build produced for one page.
type PageResult struct {
	Source   PageSource
	HTMLPath string // empty when the HTML was not written
	PDFPath  string // empty when the PDF was not written or PDFs are disabled
	HTMLErr  error  // read, render or write failure; no PDF is attempted
	PDFErr   error
	Duration time.Duration
}

// Err returns the page's errors joined, or nil.
func (r PageResult) Err() error {
	return errors.Join(r.HTMLErr, r.PDFErr)
}

// Report summarizes a build.
type Report struct {
	Pages       []PageResult // in page name order
	StaticFiles int
	Duration    time.Duration
}

// HTMLCount returns the number of HTML files written.
func (r *Report) HTMLCount() int {
	n := 0
	for _, p := range r.Pages {
		if p.HTMLPath != "" {
			n++
		}
	}
	return n
}

// PDFCount returns the number of PDF files written.
func (r *Report) PDFCount() int {
	n := 0
	for _, p := range r.Pages {
		if p.PDFPath != "" {
			n++
		}
	}
	return n
}

// Failed returns the pages that recorded an error.
func (r *Report) Failed() []PageResult {
	var failed []PageResult
	for _, p := range r.Pages {
		if p.Err() != nil {
			failed = append(failed, p)
		}
	}
	return failed
}

// Err returns nil when every page succeeded. Otherwise it wraps
// ErrPagesFailed together with each page's error, so errors.Is matches both.
func (r *Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(failed))
	for _, p := range failed {
		errs = append(errs, fmt.Errorf("%s: %w", p.Source.Name, p.Err()))
	}
	return fmt.Errorf("%w: %d of %d: %w", ErrPagesFailed, len(failed), len(r.Pages), errors.Join(errs...))
}
