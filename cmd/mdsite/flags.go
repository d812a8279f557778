package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage reports invalid command line usage.
var ErrUsage = errors.New("invalid usage")

// cliFlags holds the command line flags.
type cliFlags struct {
	config  string
	source  string
	output  string
	workers int
	timeout string
	noPDF   bool
	watch   bool
	serve   string
	verbose bool
	quiet   bool
	version bool

	set map[string]bool // flags given explicitly
}

// changed reports whether the named flag was given on the command line.
func (f *cliFlags) changed(name string) bool {
	return f.set[name]
}

// parseFlags parses args (without the program name). Positional arguments
// are rejected: a build is fully described by flags, env and config.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	fs := flag.NewFlagSet("mdsite", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }
	f := &cliFlags{set: map[string]bool{}}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.source, "source", "s", "", "source root")
	fs.StringVarP(&f.output, "output", "o", "", "output root, wiped on every build")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel page tasks and browsers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-page PDF timeout")
	fs.BoolVar(&f.noPDF, "no-pdf", false, "build HTML only")
	fs.BoolVar(&f.watch, "watch", false, "rebuild when the source tree changes")
	fs.StringVar(&f.serve, "serve", "", "serve the output directory on this address")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show warnings and errors")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	if f.verbose && f.quiet {
		return nil, fmt.Errorf("%w: --verbose and --quiet are mutually exclusive", ErrUsage)
	}
	if f.workers < 0 {
		return nil, fmt.Errorf("%w: --workers must be >= 0, got %d", ErrUsage, f.workers)
	}

	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}
