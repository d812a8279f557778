package main

import (
	"io"
	"log/slog"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// resolveConfig loads the config file and layers env and flag overrides on
// top. The config path comes from --config, then MDSITE_CONFIG, then the
// default lookup.
func resolveConfig(flags *cliFlags, env *envConfig) (*config.Config, error) {
	path := env.ConfigPath
	if flags.config != "" {
		path = flags.config
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvConfig(env, cfg)
	applyFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags applies explicitly given flags over cfg.
func applyFlags(flags *cliFlags, cfg *config.Config) {
	if flags.changed("source") {
		cfg.Source = flags.source
	}
	if flags.changed("output") {
		cfg.Output = flags.output
	}
	if flags.changed("workers") {
		cfg.PDF.Workers = flags.workers
	}
	if flags.changed("timeout") {
		cfg.PDF.Timeout = flags.timeout
	}
	if flags.noPDF {
		cfg.PDF.Enabled = false
	}
}

// builderOptions maps a validated config onto Builder options.
func builderOptions(cfg *config.Config, logger *slog.Logger, factory mdsite.RendererFactory) []mdsite.Option {
	opts := []mdsite.Option{
		mdsite.WithLayout(mdsite.Layout{
			Source:      cfg.Source,
			Output:      cfg.Output,
			StaticDir:   cfg.Dirs.Static,
			PagesDir:    cfg.Dirs.Pages,
			TemplateDir: cfg.Dirs.Template,
			Style:       cfg.Template.Style,
			Shell:       cfg.Template.Shell,
			Header:      cfg.Template.Header,
			Footer:      cfg.Template.Footer,
		}),
		mdsite.WithMarkdown(pipeline.MarkdownOptions{
			RawHTML:        cfg.Markdown.RawHTML,
			Highlight:      cfg.Markdown.Highlight,
			HighlightStyle: cfg.Markdown.HighlightStyle,
			Sanitize:       cfg.Markdown.Sanitize,
			Mark:           cfg.Markdown.Mark,
		}),
		mdsite.WithDownload(mdsite.Download{
			Label: cfg.Download.Label,
			Class: cfg.Download.Class,
		}),
		mdsite.WithButtonMode(mdsite.ButtonMode(cfg.PDF.DownloadButton)),
		mdsite.WithPDF(cfg.PDF.Enabled),
		mdsite.WithResolveAssets(cfg.PDF.ResolveAssets),
		mdsite.WithWorkers(cfg.PDF.Workers),
		mdsite.WithPageSettings(&mdsite.PageSettings{
			Size:            cfg.PDF.PageSize,
			Orientation:     cfg.PDF.Orientation,
			Margin:          cfg.PDF.Margin,
			PrintBackground: cfg.PDF.PrintBackground,
		}),
		mdsite.WithTimeout(cfg.PDF.TimeoutDuration()),
		mdsite.WithLogger(logger),
	}
	if factory != nil {
		opts = append(opts, mdsite.WithRendererFactory(factory))
	}
	return opts
}

// newLogger returns a text logger on w at the level the flags ask for.
func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
