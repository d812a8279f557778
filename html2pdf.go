package mdsite

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdsite/internal/pipeline"
	"github.com/alnah/go-mdsite/internal/process"
)

// PDFRenderer turns a complete HTML document into PDF bytes.
// Implementations are used by one goroutine at a time; RendererPool hands
// them out.
type PDFRenderer interface {
	// RenderPDF prints an HTML document given as a string.
	RenderPDF(ctx context.Context, html string) ([]byte, error)
	// RenderFile prints the HTML file at path, resolving its relative
	// references against the file's directory.
	RenderFile(ctx context.Context, path string) ([]byte, error)
	Close() error
}

// RendererFactory creates a PDFRenderer. Called lazily by RendererPool.
type RendererFactory func() PDFRenderer

// Compile-time interface check.
var _ PDFRenderer = (*RodRenderer)(nil)

// RodRenderer renders PDFs with headless Chrome through go-rod.
// The browser is launched on first use and reused for every later page.
// Rod downloads Chromium on first run if no browser is found.
type RodRenderer struct {
	page     *PageSettings
	timeout  time.Duration
	logger   *slog.Logger
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewRodRenderer creates a RodRenderer. A nil page means DefaultPageSettings,
// a non-positive timeout means 30s.
func NewRodRenderer(page *PageSettings, timeout time.Duration, logger *slog.Logger) *RodRenderer {
	if page == nil {
		page = DefaultPageSettings()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RodRenderer{page: page, timeout: timeout, logger: logger}
}

// RodFactory returns a RendererFactory producing RodRenderers.
func RodFactory(page *PageSettings, timeout time.Duration, logger *slog.Logger) RendererFactory {
	return func() PDFRenderer {
		return NewRodRenderer(page, timeout, logger)
	}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *RodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	r.logger.Debug("browser started", "pid", l.PID())
	return nil
}

// RenderPDF loads html into a fresh tab and prints it.
// The tab has no base URL, so relative references in html do not resolve;
// use RenderFile for documents that load assets from disk.
func (r *RodRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	var pdf []byte
	err := r.withPage(ctx, "about:blank", func(p *rod.Page) error {
		if err := p.SetDocumentContent(html); err != nil {
			return fmt.Errorf("%w: %v", ErrPageLoad, err)
		}
		if err := p.WaitLoad(); err != nil {
			return fmt.Errorf("%w: %v", ErrPageLoad, err)
		}
		var err error
		pdf, err = r.print(p)
		return err
	})
	return pdf, err
}

// RenderFile opens the HTML file at path as a file:// page and prints it.
// Relative and file:// references to local assets load like in a browser.
func (r *RodRenderer) RenderFile(ctx context.Context, path string) ([]byte, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	var pdf []byte
	err = r.withPage(ctx, pipeline.FileURL(absPath), func(p *rod.Page) error {
		if err := p.WaitLoad(); err != nil {
			return fmt.Errorf("%w: %v", ErrPageLoad, err)
		}
		var err error
		pdf, err = r.print(p)
		return err
	})
	return pdf, err
}

// withPage opens a tab at url and calls fn with it, bound to ctx and the
// renderer timeout. The tab is closed when fn returns.
func (r *RodRenderer) withPage(ctx context.Context, url string, fn func(p *rod.Page) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.ensureBrowser(); err != nil {
		return err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	p := page.Context(ctx).Timeout(r.timeout)
	defer p.CancelTimeout()

	return fn(p)
}

// print prints a loaded page and reads the whole PDF stream.
func (r *RodRenderer) print(p *rod.Page) ([]byte, error) {
	reader, err := p.PDF(r.printOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// printOptions builds the Chrome print request from the page settings.
func (r *RodRenderer) printOptions() *proto.PagePrintToPDF {
	width, height := r.page.Dimensions()
	m := r.page.Margin
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(m),
		MarginBottom:    floatPtr(m),
		MarginLeft:      floatPtr(m),
		MarginRight:     floatPtr(m),
		PrintBackground: r.page.PrintBackground,
	}
}

// Close shuts the browser down. When the graceful close fails, the Chrome
// process group is killed so no helper processes are left behind.
func (r *RodRenderer) Close() error {
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	if err != nil && r.launcher != nil {
		if kerr := process.KillProcessGroup(r.launcher.PID()); kerr != nil {
			r.logger.Debug("kill browser process group", "pid", r.launcher.PID(), "error", kerr)
		}
		r.launcher.Kill()
	}
	if r.launcher != nil {
		r.launcher.Cleanup()
	}
	r.browser = nil
	r.launcher = nil
	return err
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
