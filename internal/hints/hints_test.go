package hints

// ForBrowserConnect tests do not run in parallel: they use t.Setenv and
// replace the package-level IsInContainer.

import (
	"strings"
	"testing"
)

func stubContainer(t *testing.T, inContainer bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return inContainer }
}

func clearCI(t *testing.T) {
	t.Helper()
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Setenv(v, "")
	}
}

// ---------------------------------------------------------------------------
// TestForBrowserConnect - Environment-dependent suggestions
// ---------------------------------------------------------------------------

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		ci          string
		container   bool
		noSandbox   string
		browserBin  string
		wantSandbox bool
		wantBin     bool
	}{
		{name: "ci", ci: "true", wantSandbox: true, wantBin: true},
		{name: "docker", container: true, wantSandbox: true, wantBin: true},
		{name: "sandbox already disabled", container: true, noSandbox: "1", wantBin: true},
		{name: "browser configured", browserBin: "/usr/bin/chromium"},
		{name: "desktop", wantBin: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubContainer(t, tt.container)
			clearCI(t)
			t.Setenv("CI", tt.ci)
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			hint := ForBrowserConnect()

			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint = %q, want hint prefix", hint)
			}
			if got := strings.Contains(hint, "ROD_NO_SANDBOX"); got != tt.wantSandbox {
				t.Errorf("mentions ROD_NO_SANDBOX = %v, want %v", got, tt.wantSandbox)
			}
			if got := strings.Contains(hint, "ROD_BROWSER_BIN"); got != tt.wantBin {
				t.Errorf("mentions ROD_BROWSER_BIN = %v, want %v", got, tt.wantBin)
			}
			if !strings.Contains(hint, "--no-pdf") {
				t.Error("expected --no-pdf suggestion")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestStaticHints - Fixed hint texts
// ---------------------------------------------------------------------------

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "timeout", got: ForTimeout(), want: "--timeout"},
		{name: "missing pages", got: ForMissingPages("src", "pages"), want: "src/pages"},
		{name: "template", got: ForTemplate(), want: "mdMeta"},
		{name: "unsafe output", got: ForUnsafeOutput(), want: "outside the source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.got, "\n  hint: ") {
				t.Errorf("hint = %q, want hint prefix", tt.got)
			}
			if !strings.Contains(tt.got, tt.want) {
				t.Errorf("hint = %q, want it to contain %q", tt.got, tt.want)
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	t.Run("suggests user config path", func(t *testing.T) {
		t.Parallel()

		hint := ForConfigNotFound([]string{"mdsite.yaml", "/home/u/.config/mdsite/mdsite.yaml"})
		if !strings.Contains(hint, "create /home/u/.config/mdsite/mdsite.yaml") {
			t.Errorf("hint = %q", hint)
		}
	})

	t.Run("no user path", func(t *testing.T) {
		t.Parallel()

		hint := ForConfigNotFound(nil)
		if !strings.Contains(hint, "--config") || strings.Contains(hint, "create") {
			t.Errorf("hint = %q", hint)
		}
	})
}

func TestFormatHints_Empty(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}
