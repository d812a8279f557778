package assets

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver("")
		if err != nil {
			t.Fatal(err)
		}
		tpl, err := LoadTemplate(r, DefaultName, DefaultName)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if !strings.Contains(tpl.Shell, `id="content"`) {
			t.Error("embedded shell missing content slot")
		}
	})

	t.Run("site overrides style, shell falls back", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeAsset(t, dir, "markdown.css", "body{font-size:20px}")

		r, err := NewAssetResolver(dir)
		if err != nil {
			t.Fatal(err)
		}
		tpl, err := LoadTemplate(r, DefaultName, DefaultName)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if tpl.Style != "body{font-size:20px}" {
			t.Errorf("Style = %q, want site stylesheet", tpl.Style)
		}
		if !strings.Contains(tpl.Shell, `id="mdMeta"`) {
			t.Error("shell should fall back to embedded default")
		}
	})

	t.Run("validation errors do not fall back", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if _, err := r.LoadShell("../x"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadShell() error = %v, want ErrInvalidAssetName", err)
		}
	})

	t.Run("unknown name everywhere", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if _, err := LoadTemplate(r, "print", DefaultName); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadTemplate() error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("invalid base path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Fatalf("error = %v, want ErrInvalidBasePath", err)
		}
	})
}
