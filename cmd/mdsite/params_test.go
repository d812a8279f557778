package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdsite/internal/config"
)

// writeConfig writes a YAML config into dir and returns its path.
func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "mdsite.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestResolveConfig - flags > env > file > defaults
// ---------------------------------------------------------------------------

func TestResolveConfig(t *testing.T) {
	t.Parallel()

	t.Run("precedence", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "source: from-file\noutput: from-file\npdf:\n  workers: 1\n")
		flags, err := parseFlags([]string{"--config", path, "--output", "from-flag"}, io.Discard)
		if err != nil {
			t.Fatalf("parseFlags: %v", err)
		}
		env := &envConfig{Output: "from-env", Source: "from-env", Workers: 4}

		cfg, err := resolveConfig(flags, env)
		if err != nil {
			t.Fatalf("resolveConfig: %v", err)
		}

		if cfg.Source != "from-env" {
			t.Errorf("Source = %q, want from-env", cfg.Source)
		}
		if cfg.Output != "from-flag" {
			t.Errorf("Output = %q, want from-flag", cfg.Output)
		}
		if cfg.PDF.Workers != 4 {
			t.Errorf("PDF.Workers = %d, want 4", cfg.PDF.Workers)
		}
	})

	t.Run("config path from env", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "source: site\n")
		flags, _ := parseFlags(nil, io.Discard)

		cfg, err := resolveConfig(flags, &envConfig{ConfigPath: path})
		if err != nil {
			t.Fatalf("resolveConfig: %v", err)
		}
		if cfg.Source != "site" {
			t.Errorf("Source = %q, want site", cfg.Source)
		}
	})

	t.Run("flag override is validated", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "")
		flags, _ := parseFlags([]string{"--config", path, "--timeout", "soon"}, io.Discard)

		_, err := resolveConfig(flags, &envConfig{})
		if !errors.Is(err, config.ErrConfigInvalid) {
			t.Errorf("error = %v, want ErrConfigInvalid", err)
		}
	})

	t.Run("explicit missing config", func(t *testing.T) {
		t.Parallel()

		flags, _ := parseFlags([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, io.Discard)

		_, err := resolveConfig(flags, &envConfig{})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuilderOptions - Config to Builder mapping
// ---------------------------------------------------------------------------

func TestBuilderOptions(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Source = t.TempDir()
	cfg.Output = filepath.Join(t.TempDir(), "out")
	cfg.PDF.Enabled = false
	cfg.PDF.Workers = 3

	if err := os.MkdirAll(filepath.Join(cfg.Source, "pages"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.Source, "pages", "index.md"), []byte("# Hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := newTestBuilder(cfg)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	defer b.Close()

	if b.Workers() != 3 {
		t.Errorf("Workers() = %d, want 3", b.Workers())
	}

	report, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if report.HTMLCount() != 1 || report.PDFCount() != 0 {
		t.Errorf("html/pdf = %d/%d, want 1/0", report.HTMLCount(), report.PDFCount())
	}
	if _, err := os.Stat(filepath.Join(cfg.Output, "index.html")); err != nil {
		t.Errorf("index.html not written: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestNewLogger - Level selection
// ---------------------------------------------------------------------------

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		verbose   bool
		quiet     bool
		wantDebug bool
		wantInfo  bool
	}{
		{"default", false, false, false, true},
		{"verbose", true, false, true, true},
		{"quiet", false, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := newLogger(&buf, tt.verbose, tt.quiet)
			logger.Debug("dbg")
			logger.Info("inf")
			logger.Warn("wrn")

			out := buf.String()
			if got := strings.Contains(out, "msg=dbg"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "msg=inf"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if !strings.Contains(out, "msg=wrn") {
				t.Error("warn not logged")
			}
		})
	}
}
