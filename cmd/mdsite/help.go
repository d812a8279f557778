package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build a static site from a source tree: copy static files, render")
	fmt.Fprintln(w, "Markdown pages into the HTML shell and export each page to PDF.")
	fmt.Fprintln(w, "With no flags, builds src/ into public/.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build:")
	fmt.Fprintln(w, "  -c, --config <name>   Config file name or path (default mdsite.yaml)")
	fmt.Fprintln(w, "  -s, --source <dir>    Source root (default src)")
	fmt.Fprintln(w, "  -o, --output <dir>    Output root, wiped on every build (default public)")
	fmt.Fprintln(w, "  -w, --workers <n>     Parallel page tasks and browsers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>     Per-page PDF timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --no-pdf          Build HTML only")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Preview:")
	fmt.Fprintln(w, "      --watch           Rebuild when the source tree changes")
	fmt.Fprintln(w, "      --serve <addr>    Serve the output directory (e.g., :8080)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -v, --verbose         Show debug logs")
	fmt.Fprintln(w, "  -q, --quiet           Only show warnings and errors")
	fmt.Fprintln(w, "      --version         Print version and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDSITE_CONFIG, MDSITE_SOURCE, MDSITE_OUTPUT, MDSITE_WORKERS,")
	fmt.Fprintln(w, "  MDSITE_TIMEOUT, MDSITE_NO_PDF   override the config file")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN                 use an installed Chrome")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX=1                disable the Chrome sandbox (Docker/CI)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 general, 2 usage/config, 3 I/O, 4 browser, 5 some pages failed")
}
