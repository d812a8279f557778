// Package hints turns common build failures into short, actionable suggestions.
// Every hint is rendered as "\n  hint: <text>" so the CLI can append it to an
// error message as is.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mdsite/internal/fileutil"
)

// IsInContainer reports whether the process runs inside a container.
// Overridable in tests.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// inCI reports whether a well-known CI variable is set.
func inCI() bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect returns hints for a Chrome launch or connect failure.
func ForBrowserConnect() string {
	var hints []string

	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "or build HTML only with --no-pdf")

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the per-page PDF timeout.
func ForTimeout() string {
	return format("for large pages, raise --timeout (e.g. --timeout 2m)")
}

// ForConfigNotFound suggests how to point at or create a config file.
// The first searched user-level path, if any, is offered as a location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/mdsite.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(strings.ReplaceAll(p, `\`, "/"), "/mdsite/") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForMissingPages returns a hint when the pages directory cannot be read.
func ForMissingPages(source, pages string) string {
	return format("expected Markdown pages under " + source + "/" + pages + "; use --source or set dirs.pages")
}

// ForTemplate returns a hint for a shell that is missing, unreadable or
// lacks a slot.
func ForTemplate() string {
	return format(`a shell needs elements with ids mdMeta, mdCss, header, content and footer; delete the site template to use the built-in one`)
}

// ForUnsafeOutput returns a hint when the output directory would wipe sources.
func ForUnsafeOutput() string {
	return format("choose an output directory outside the source tree")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
