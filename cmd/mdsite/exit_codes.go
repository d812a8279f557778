package main

import (
	"errors"
	"os"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// Exit codes for the mdsite CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every page built
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or template
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
	ExitPartial = 5 // Build ran but some pages failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4), including a failed page whose cause is Chrome
	if errors.Is(err, mdsite.ErrBrowserConnect) ||
		errors.Is(err, mdsite.ErrPageCreate) ||
		errors.Is(err, mdsite.ErrPageLoad) ||
		errors.Is(err, mdsite.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Some pages failed, the rest of the site was written (exit 5)
	if errors.Is(err, mdsite.ErrPagesFailed) {
		return ExitPartial
	}

	// Usage/config/validation errors (exit 2). A bad template or output dir
	// is a config mistake even when it wraps an fs error.
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, fileutil.ErrUnsafeDir) ||
		errors.Is(err, mdsite.ErrLoadTemplate) ||
		errors.Is(err, mdsite.ErrInvalidPageSize) ||
		errors.Is(err, mdsite.ErrInvalidOrientation) ||
		errors.Is(err, mdsite.ErrInvalidMargin) ||
		errors.Is(err, mdsite.ErrInvalidButtonMode) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, pipeline.ErrSlotMissing) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, mdsite.ErrPrepareOutput) ||
		errors.Is(err, mdsite.ErrCopyStatic) ||
		errors.Is(err, mdsite.ErrListPages) {
		return ExitIO
	}

	return ExitGeneral
}
