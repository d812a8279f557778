package mdsite

import "errors"

// Sentinel errors for build operations.
var (
	// Browser errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrPoolClosed     = errors.New("renderer pool closed")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
	ErrInvalidButtonMode  = errors.New("invalid download button mode")

	// Build stage errors. Any of these aborts the build.
	ErrPrepareOutput = errors.New("failed to prepare output directory")
	ErrCopyStatic    = errors.New("failed to copy static files")
	ErrLoadTemplate  = errors.New("failed to load template")
	ErrListPages     = errors.New("failed to list pages")

	// Page errors. These are recorded per page and never abort the build.
	ErrReadPage   = errors.New("failed to read page")
	ErrRenderPage = errors.New("failed to render page")
	ErrWriteHTML  = errors.New("failed to write HTML")
	ErrWritePDF   = errors.New("failed to write PDF")

	// ErrPagesFailed is returned by Report.Err when at least one page failed.
	ErrPagesFailed = errors.New("some pages failed")
)
