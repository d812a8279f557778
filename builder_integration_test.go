//go:build integration

package mdsite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuild_Integration(t *testing.T) {
	t.Parallel()

	s := newSite(t)
	s.write(t, "static/img/dot.svg", `<svg xmlns="http://www.w3.org/2000/svg" width="4" height="4"><rect width="4" height="4"/></svg>`)
	for i := range 6 {
		s.write(t, fmt.Sprintf("pages/p%d.md", i), fmt.Sprintf("---\ntitle: Page %d\n---\n# Page %d\n\n![dot](img/dot.svg)\n", i, i))
	}

	b, err := NewBuilder(
		WithLayout(s.layout()),
		WithWorkers(2),
		WithTimeout(testTimeout),
		WithResolveAssets(true),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	report, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := report.Err(); err != nil {
		t.Fatalf("report.Err() = %v", err)
	}
	if report.PDFCount() != 6 {
		t.Fatalf("PDFCount() = %d, want 6", report.PDFCount())
	}

	for i := range 6 {
		data, err := os.ReadFile(filepath.Join(s.output, fmt.Sprintf("p%d.pdf", i)))
		if err != nil {
			t.Fatal(err)
		}
		assertValidPDF(t, data)
	}

	entries, err := os.ReadDir(s.output)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			t.Errorf("print file %s left in output", e.Name())
		}
	}
}
