package main

// Notes:
// - exitCodeFor: we test sentinel errors from mdsite, config, assets and
//   fileutil, plus wrapped and joined errors to verify errors.Is() chains.
// - Ordering matters: browser causes win over partial failure, and config
//   mistakes wrapping fs errors stay usage errors.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", mdsite.ErrBrowserConnect, ExitBrowser},
		{"page create", mdsite.ErrPageCreate, ExitBrowser},
		{"page load", mdsite.ErrPageLoad, ExitBrowser},
		{"pdf generation", mdsite.ErrPDFGeneration, ExitBrowser},
		{"pages failed on browser", fmt.Errorf("%w: 1 of 2: %w", mdsite.ErrPagesFailed, mdsite.ErrBrowserConnect), ExitBrowser},

		// Partial (exit 5)
		{"pages failed", mdsite.ErrPagesFailed, ExitPartial},
		{"pages failed on read", fmt.Errorf("%w: 1 of 3: %w", mdsite.ErrPagesFailed, fmt.Errorf("%w: %w", mdsite.ErrReadPage, os.ErrNotExist)), ExitPartial},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config invalid", config.ErrConfigInvalid, ExitUsage},
		{"unsafe output", fmt.Errorf("%w: %w", mdsite.ErrPrepareOutput, fileutil.ErrUnsafeDir), ExitUsage},
		{"template missing", fmt.Errorf("%w: %w", mdsite.ErrLoadTemplate, os.ErrNotExist), ExitUsage},
		{"invalid page size", mdsite.ErrInvalidPageSize, ExitUsage},
		{"invalid orientation", mdsite.ErrInvalidOrientation, ExitUsage},
		{"invalid margin", mdsite.ErrInvalidMargin, ExitUsage},
		{"invalid button mode", mdsite.ErrInvalidButtonMode, ExitUsage},
		{"invalid asset name", assets.ErrInvalidAssetName, ExitUsage},
		{"slot missing", pipeline.ErrSlotMissing, ExitUsage},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"prepare output", mdsite.ErrPrepareOutput, ExitIO},
		{"copy static", mdsite.ErrCopyStatic, ExitIO},
		{"list pages", fmt.Errorf("%w: %w", mdsite.ErrListPages, os.ErrNotExist), ExitIO},

		// General errors (exit 1)
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := exitCodeFor(tt.err)
			if got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}

	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitBrowser, ExitPartial}
	seen := map[int]bool{}
	for _, c := range codes {
		if c >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", c)
		}
		if seen[c] {
			t.Errorf("exit code %d used twice", c)
		}
		seen[c] = true
	}
}
