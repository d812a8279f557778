package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrConfigInvalid  = errors.New("invalid config")
)

func init() {
	// Report field errors under their YAML keys.
	validation.ErrorTag = "yaml"
}

// DefaultName is the config file base name searched in standard locations.
const DefaultName = "mdsite"

// Download button placement in the PDF variant of a page.
const (
	ButtonOmit   = "omit"
	ButtonButton = "button"
	ButtonMarker = "marker"
)

// Field length limits.
const (
	MaxPathLength   = 4096
	MaxNameLength   = 64
	MaxLabelLength  = 100
	MaxClassLength  = 100
	MaxSnippetBytes = 64 * 1024 // header/footer HTML
	MaxWorkers      = 64
	MaxMarginInches = 2.0
)

// Config holds all configuration for a site build.
type Config struct {
	Source   string         `yaml:"source"` // source root
	Output   string         `yaml:"output"` // output root, wiped on every build
	Dirs     DirsConfig     `yaml:"dirs"`
	Template TemplateConfig `yaml:"template"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Download DownloadConfig `yaml:"download"`
	PDF      PDFConfig      `yaml:"pdf"`
}

// DirsConfig names the subdirectories of the source root.
type DirsConfig struct {
	Static   string `yaml:"static"`
	Pages    string `yaml:"pages"`
	Template string `yaml:"template"`
}

// TemplateConfig selects the shared stylesheet and HTML shell.
type TemplateConfig struct {
	Style  string `yaml:"style"`  // {template}/{style}.css, embedded fallback
	Shell  string `yaml:"shell"`  // {template}/{shell}.html, embedded fallback
	Header string `yaml:"header"` // raw HTML for the header slot
	Footer string `yaml:"footer"` // raw HTML for the footer slot
}

// MarkdownConfig defines Markdown rendering options.
type MarkdownConfig struct {
	RawHTML        bool   `yaml:"rawHTML"`
	Highlight      bool   `yaml:"highlight"`
	HighlightStyle string `yaml:"highlightStyle"`
	Sanitize       bool   `yaml:"sanitize"`
	Mark           bool   `yaml:"mark"` // ==text== as <mark>
}

// DownloadConfig defines the download button.
type DownloadConfig struct {
	Label string `yaml:"label"`
	Class string `yaml:"class"`
}

// PDFConfig defines PDF export settings.
type PDFConfig struct {
	Enabled         bool    `yaml:"enabled"`
	PageSize        string  `yaml:"pageSize"`    // "a4", "letter", "legal"
	Orientation     string  `yaml:"orientation"` // "portrait", "landscape"
	Margin          float64 `yaml:"margin"`      // inches
	PrintBackground bool    `yaml:"printBackground"`
	Timeout         string  `yaml:"timeout"` // Go duration, per page
	Workers         int     `yaml:"workers"` // 0 = auto
	DownloadButton  string  `yaml:"downloadButton"`
	ResolveAssets   bool    `yaml:"resolveAssets"`
}

// TimeoutDuration returns the parsed per-page timeout. Validate guarantees it
// parses; an empty value yields zero (caller default).
func (c *PDFConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Source: "src",
		Output: "public",
		Dirs: DirsConfig{
			Static:   "static",
			Pages:    "pages",
			Template: "template",
		},
		Template: TemplateConfig{
			Style: "markdown",
			Shell: "markdown",
		},
		Markdown: MarkdownConfig{
			RawHTML:        true,
			HighlightStyle: "github",
		},
		Download: DownloadConfig{
			Label: "Download",
			Class: "button",
		},
		PDF: PDFConfig{
			Enabled:        true,
			PageSize:       "a4",
			Orientation:    "portrait",
			Timeout:        "30s",
			DownloadButton: ButtonOmit,
		},
	}
}

// Validate checks the configuration.
// Called automatically by LoadConfig, but available for callers that build
// a Config by hand or override fields from flags.
func (c *Config) Validate() error {
	err := validation.Errors{
		"source":   validation.Validate(c.Source, validation.Required, validation.Length(1, MaxPathLength)),
		"output":   validation.Validate(c.Output, validation.Required, validation.Length(1, MaxPathLength)),
		"dirs":     c.Dirs.Validate(),
		"template": c.Template.Validate(),
		"markdown": c.Markdown.Validate(),
		"download": c.Download.Validate(),
		"pdf":      c.PDF.Validate(),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	return nil
}

// Validate validates the directory names.
func (c *DirsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Static, validation.Required, validation.Length(1, MaxPathLength)),
		validation.Field(&c.Pages, validation.Required, validation.Length(1, MaxPathLength)),
		validation.Field(&c.Template, validation.Required, validation.Length(1, MaxPathLength)),
	)
}

// Validate validates the template selection.
func (c *TemplateConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Style, validation.Required, validation.Length(1, MaxNameLength)),
		validation.Field(&c.Shell, validation.Required, validation.Length(1, MaxNameLength)),
		validation.Field(&c.Header, validation.Length(0, MaxSnippetBytes)),
		validation.Field(&c.Footer, validation.Length(0, MaxSnippetBytes)),
	)
}

// Validate validates the Markdown options.
func (c *MarkdownConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.HighlightStyle, validation.Length(0, MaxNameLength)),
	)
}

// Validate validates the download button.
func (c *DownloadConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Label, validation.Required, validation.Length(1, MaxLabelLength)),
		validation.Field(&c.Class, validation.Length(0, MaxClassLength)),
	)
}

// Validate validates the PDF settings.
func (c *PDFConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.PageSize, validation.In("a4", "letter", "legal")),
		validation.Field(&c.Orientation, validation.In("portrait", "landscape")),
		validation.Field(&c.Margin, validation.Min(0.0), validation.Max(MaxMarginInches)),
		validation.Field(&c.Timeout, validation.By(validDuration)),
		validation.Field(&c.Workers, validation.Min(0), validation.Max(MaxWorkers)),
		validation.Field(&c.DownloadButton, validation.In(ButtonOmit, ButtonButton, ButtonMarker)),
	)
}

// validDuration accepts an empty string or a positive Go duration.
func validDuration(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return errors.New("must be a duration such as 30s or 2m")
	}
	if d <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
//
// If nameOrPath is empty, the default name is searched in standard locations
// and a missing file yields DefaultConfig. If nameOrPath contains a path
// separator it is treated as a file path, otherwise as a config name. An
// explicitly requested file that does not exist is an error.
//
// Values present in the file override defaults; absent keys keep them.
func LoadConfig(nameOrPath string) (*Config, error) {
	explicit := nameOrPath != ""
	if !explicit {
		nameOrPath = DefaultName
	}

	var configPath string
	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		p, err := resolveConfigPath(nameOrPath)
		if err != nil {
			if explicit {
				return nil, err
			}
			return DefaultConfig(), nil
		}
		configPath = p
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeFileStrict(configPath, cfg); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		case errors.Is(err, yamlutil.ErrNilData):
			// empty file: defaults
		default:
			return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return fileutil.IsFilePath(s) || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// CandidatePaths lists where a config called name is looked for, in order:
// name.yaml and name.yml in the current directory, then in the user config
// directory under mdsite/.
func CandidatePaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "mdsite", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing candidate path for name.
func resolveConfigPath(name string) (string, error) {
	tried := CandidatePaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
