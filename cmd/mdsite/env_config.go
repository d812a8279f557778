package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-mdsite/internal/config"
)

// envPrefix marks the variables mdsite reads.
const envPrefix = "MDSITE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MDSITE_CONFIG: config file name or path
	Source     string // MDSITE_SOURCE: source root
	Output     string // MDSITE_OUTPUT: output root
	Timeout    string // MDSITE_TIMEOUT: per-page PDF timeout
	Workers    int    // MDSITE_WORKERS: parallel page tasks
	NoPDF      bool   // MDSITE_NO_PDF: build HTML only
}

// knownEnvVars lists valid MDSITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDSITE_CONFIG":  true,
	"MDSITE_SOURCE":  true,
	"MDSITE_OUTPUT":  true,
	"MDSITE_TIMEOUT": true,
	"MDSITE_WORKERS": true,
	"MDSITE_NO_PDF":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and booleans are reported rather than ignored.
func loadEnvConfig(getenv func(string) string) (*envConfig, error) {
	cfg := &envConfig{
		ConfigPath: getenv("MDSITE_CONFIG"),
		Source:     getenv("MDSITE_SOURCE"),
		Output:     getenv("MDSITE_OUTPUT"),
		Timeout:    getenv("MDSITE_TIMEOUT"),
	}

	if workers := getenv("MDSITE_WORKERS"); workers != "" {
		w, err := strconv.Atoi(workers)
		if err != nil || w < 0 {
			return nil, fmt.Errorf("%w: MDSITE_WORKERS must be a non-negative integer, got %q", ErrUsage, workers)
		}
		cfg.Workers = w
	}

	if noPDF := getenv("MDSITE_NO_PDF"); noPDF != "" {
		b, err := strconv.ParseBool(noPDF)
		if err != nil {
			return nil, fmt.Errorf("%w: MDSITE_NO_PDF must be a boolean, got %q", ErrUsage, noPDF)
		}
		cfg.NoPDF = b
	}

	return cfg, nil
}

// warnUnknownEnvVars writes a warning for every unrecognized MDSITE_* variable.
// Helps catch typos like MDSITE_WORKER instead of MDSITE_WORKERS.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name := strings.SplitN(env, "=", 2)[0]
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment values over the loaded config.
// CLI flags are applied afterwards, giving: flags > env > file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Source != "" {
		cfg.Source = env.Source
	}
	if env.Output != "" {
		cfg.Output = env.Output
	}
	if env.Timeout != "" {
		cfg.PDF.Timeout = env.Timeout
	}
	if env.Workers > 0 {
		cfg.PDF.Workers = env.Workers
	}
	if env.NoPDF {
		cfg.PDF.Enabled = false
	}
}
