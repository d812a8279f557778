package main

import (
	"errors"
	"io"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseFlags - Command line parsing
// ---------------------------------------------------------------------------

func TestParseFlags(t *testing.T) {
	t.Parallel()

	t.Run("no arguments", func(t *testing.T) {
		t.Parallel()

		f, err := parseFlags(nil, io.Discard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.set) != 0 {
			t.Errorf("set = %v, want empty", f.set)
		}
	})

	t.Run("all flags", func(t *testing.T) {
		t.Parallel()

		f, err := parseFlags([]string{
			"-c", "site.yaml", "-s", "content", "-o", "dist", "-w", "3", "-t", "1m",
			"--no-pdf", "--watch", "--serve", ":8080", "-v",
		}, io.Discard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if f.config != "site.yaml" || f.source != "content" || f.output != "dist" {
			t.Errorf("paths = %q %q %q", f.config, f.source, f.output)
		}
		if f.workers != 3 || f.timeout != "1m" {
			t.Errorf("workers/timeout = %d/%q, want 3/1m", f.workers, f.timeout)
		}
		if !f.noPDF || !f.watch || f.serve != ":8080" || !f.verbose {
			t.Errorf("booleans not set: %+v", f)
		}
		for _, name := range []string{"config", "source", "output", "workers", "timeout"} {
			if !f.changed(name) {
				t.Errorf("changed(%q) = false, want true", name)
			}
		}
		if f.changed("quiet") {
			t.Error("changed(quiet) = true, want false")
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		_, err := parseFlags([]string{"--help"}, io.Discard)
		if !errors.Is(err, flag.ErrHelp) {
			t.Errorf("error = %v, want flag.ErrHelp", err)
		}
	})

	errTests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--nope"}},
		{"positional argument", []string{"page.md"}},
		{"verbose and quiet", []string{"-v", "-q"}},
		{"negative workers", []string{"--workers", "-2"}},
		{"workers not a number", []string{"--workers", "x"}},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parseFlags(tt.args, io.Discard)
			if !errors.Is(err, ErrUsage) {
				t.Errorf("error = %v, want ErrUsage", err)
			}
		})
	}
}
