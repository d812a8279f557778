package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/hints"
)

// run executes the CLI and returns the process exit code.
// args includes the program name.
func run(ctx context.Context, args []string, env *Environment) int {
	flags, err := parseFlags(args[1:], env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	if flags.version {
		fmt.Fprintf(env.Stdout, "mdsite %s\n", Version)
		return ExitSuccess
	}

	logger := newLogger(env.Stderr, flags.verbose, flags.quiet)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	envCfg, err := loadEnvConfig(env.Getenv)
	if err != nil {
		return fail(env, err, nil)
	}
	cfg, err := resolveConfig(flags, envCfg)
	if err != nil {
		return fail(env, err, nil)
	}

	builder, err := mdsite.NewBuilder(builderOptions(cfg, logger, env.RendererFactory)...)
	if err != nil {
		return fail(env, err, cfg)
	}
	defer func() {
		if cerr := builder.Close(); cerr != nil {
			logger.Warn("closing browsers", "error", cerr)
		}
	}()

	ctx, stop := notifyContext(ctx)
	defer stop()

	code := buildOnce(ctx, builder, env, cfg, flags.quiet)
	if !flags.watch && flags.serve == "" {
		return code
	}
	// A build that could not run at all is not worth serving or watching.
	if code != ExitSuccess && code != ExitPartial {
		return code
	}

	g, gctx := errgroup.WithContext(ctx)
	if flags.serve != "" {
		g.Go(func() error {
			return serve(gctx, flags.serve, newRouter(cfg.Output), logger)
		})
	}
	if flags.watch {
		g.Go(func() error {
			return watch(gctx, cfg.Source, cfg.Output, rebuildDebounce, logger, func(ctx context.Context) {
				if ctx.Err() != nil {
					return
				}
				buildOnce(ctx, builder, env, cfg, flags.quiet)
			})
		})
	}
	if err := g.Wait(); err != nil {
		return fail(env, err, cfg)
	}
	return ExitSuccess
}

// buildOnce runs a build, prints a summary and returns its exit code.
func buildOnce(ctx context.Context, b *mdsite.Builder, env *Environment, cfg *config.Config, quiet bool) int {
	report, err := b.Build(ctx)
	if err != nil {
		return fail(env, err, cfg)
	}

	if !quiet {
		fmt.Fprintf(env.Stdout, "Built %d page(s): %d HTML, %d PDF, %d static file(s) in %s\n",
			len(report.Pages), report.HTMLCount(), report.PDFCount(), report.StaticFiles,
			report.Duration.Round(time.Millisecond))
	}

	if err := report.Err(); err != nil {
		return fail(env, err, cfg)
	}
	return ExitSuccess
}

// fail prints err with any matching hint and returns its exit code.
func fail(env *Environment, err error, cfg *config.Config) int {
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, cfg))
	return exitCodeFor(err)
}

// hintFor returns an actionable hint for err, or "".
// cfg may be nil when the configuration itself failed to load.
func hintFor(err error, cfg *config.Config) string {
	switch {
	case errors.Is(err, mdsite.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.CandidatePaths(config.DefaultName))
	case errors.Is(err, fileutil.ErrUnsafeDir):
		return hints.ForUnsafeOutput()
	case errors.Is(err, mdsite.ErrLoadTemplate):
		return hints.ForTemplate()
	case errors.Is(err, mdsite.ErrListPages) && cfg != nil:
		return hints.ForMissingPages(cfg.Source, cfg.Dirs.Pages)
	}
	return ""
}
