package mdsite

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewRodRenderer_Defaults(t *testing.T) {
	t.Parallel()

	r := NewRodRenderer(nil, 0, nil)
	if r.timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", r.timeout, defaultTimeout)
	}
	if r.page.Size != PageSizeA4 {
		t.Errorf("page size = %q, want a4", r.page.Size)
	}
	if r.logger == nil {
		t.Error("logger is nil")
	}
}

func TestRodRenderer_PrintOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page       *PageSettings
		wantW      float64
		wantH      float64
		wantMargin float64
		wantBg     bool
	}{
		{name: "a4 default", page: DefaultPageSettings(), wantW: 8.27, wantH: 11.69},
		{
			name:       "letter landscape with margin and background",
			page:       &PageSettings{Size: PageSizeLetter, Orientation: OrientationLandscape, Margin: 0.5, PrintBackground: true},
			wantW:      11,
			wantH:      8.5,
			wantMargin: 0.5,
			wantBg:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := NewRodRenderer(tt.page, time.Second, nil).printOptions()
			if *opts.PaperWidth != tt.wantW || *opts.PaperHeight != tt.wantH {
				t.Errorf("paper = %v x %v, want %v x %v", *opts.PaperWidth, *opts.PaperHeight, tt.wantW, tt.wantH)
			}
			for name, m := range map[string]*float64{
				"top": opts.MarginTop, "bottom": opts.MarginBottom,
				"left": opts.MarginLeft, "right": opts.MarginRight,
			} {
				if *m != tt.wantMargin {
					t.Errorf("margin %s = %v, want %v", name, *m, tt.wantMargin)
				}
			}
			if opts.PrintBackground != tt.wantBg {
				t.Errorf("PrintBackground = %v, want %v", opts.PrintBackground, tt.wantBg)
			}
		})
	}
}

func TestRodRenderer_CanceledBeforeLaunch(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRodRenderer(nil, time.Second, nil)
	if _, err := r.RenderPDF(ctx, "<p>x</p>"); !errors.Is(err, context.Canceled) {
		t.Fatalf("RenderPDF() error = %v, want context.Canceled", err)
	}
	if _, err := r.RenderFile(ctx, "page.html"); !errors.Is(err, context.Canceled) {
		t.Fatalf("RenderFile() error = %v, want context.Canceled", err)
	}
	if r.browser != nil {
		t.Error("browser launched for a canceled context")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() without browser = %v", err)
	}
}
