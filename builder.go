package mdsite

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// pageExt is the extension of source pages.
const pageExt = ".md"

// Builder builds a site from a source tree. It is safe to call Build
// repeatedly; browsers are kept between builds until Close.
type Builder struct {
	layout        Layout
	markdownOpts  pipeline.MarkdownOptions
	download      Download
	buttonMode    ButtonMode
	pdfEnabled    bool
	resolveAssets bool
	workers       int
	page          *PageSettings
	timeout       time.Duration
	factory       RendererFactory
	logger        *slog.Logger

	md   pipeline.MarkdownRenderer
	pool *RendererPool
	mu   sync.Mutex // serializes Build
}

// Option configures a Builder.
type Option func(*Builder)

// WithLayout sets the source tree layout.
func WithLayout(l Layout) Option {
	return func(b *Builder) { b.layout = l }
}

// WithMarkdown sets the Markdown rendering options.
func WithMarkdown(opts pipeline.MarkdownOptions) Option {
	return func(b *Builder) { b.markdownOpts = opts }
}

// WithDownload sets the download button label and CSS class.
func WithDownload(d Download) Option {
	return func(b *Builder) { b.download = d }
}

// WithButtonMode sets what the PDF variant shows in place of the button.
func WithButtonMode(m ButtonMode) Option {
	return func(b *Builder) { b.buttonMode = m }
}

// WithPDF enables or disables PDF export.
func WithPDF(enabled bool) Option {
	return func(b *Builder) { b.pdfEnabled = enabled }
}

// WithResolveAssets prints pages from a file in the output directory, with
// relative asset URLs rewritten to file URLs, so images and stylesheets
// copied from the static directory appear in the PDFs.
func WithResolveAssets(enabled bool) Option {
	return func(b *Builder) { b.resolveAssets = enabled }
}

// WithWorkers sets the number of concurrent page tasks and browsers.
// Zero or less means ResolvePoolSize(0).
func WithWorkers(n int) Option {
	return func(b *Builder) { b.workers = n }
}

// WithPageSettings sets the PDF page layout.
func WithPageSettings(p *PageSettings) Option {
	return func(b *Builder) { b.page = p }
}

// WithTimeout sets the per-page PDF render timeout.
func WithTimeout(d time.Duration) Option {
	return func(b *Builder) { b.timeout = d }
}

// WithRendererFactory replaces the headless Chrome renderer.
func WithRendererFactory(f RendererFactory) Option {
	return func(b *Builder) { b.factory = f }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a Builder with defaults: DefaultLayout, raw HTML
// passthrough, a "Download" button, PDFs enabled without a button.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		layout:       DefaultLayout(),
		markdownOpts: pipeline.MarkdownOptions{RawHTML: true},
		download:     Download{Label: "Download", Class: "button"},
		buttonMode:   ButtonOmit,
		pdfEnabled:   true,
		page:         DefaultPageSettings(),
		timeout:      defaultTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.page.Validate(); err != nil {
		return nil, err
	}
	if err := b.buttonMode.Validate(); err != nil {
		return nil, err
	}
	if b.logger == nil {
		b.logger = slog.New(slog.DiscardHandler)
	}

	b.workers = ResolvePoolSize(b.workers)
	b.md = pipeline.NewGoldmarkRenderer(b.markdownOpts)

	if b.pdfEnabled {
		if b.factory == nil {
			b.factory = RodFactory(b.page, b.timeout, b.logger)
		}
		b.pool = NewRendererPool(b.workers, b.factory)
	}
	return b, nil
}

// Close releases browser resources.
func (b *Builder) Close() error {
	if b.pool == nil {
		return nil
	}
	return b.pool.Close()
}

// Workers returns the resolved number of concurrent page tasks.
func (b *Builder) Workers() int {
	return b.workers
}

// Build wipes the output directory, copies static files, then renders every
// page to HTML and PDF. It returns once every page task has finished.
//
// The returned error is non-nil only when the build could not run at all
// (output preparation, static copy, template or page listing failed) or ctx
// was canceled. Per-page failures are recorded in the Report; see Report.Err.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	l := b.layout
	report := &Report{}

	staticDir := filepath.Join(l.Source, l.StaticDir)
	if err := checkOutsideStatic(l.Output, staticDir); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrepareOutput, err)
	}
	if err := fileutil.ResetDir(l.Output, l.Source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrepareOutput, err)
	}

	if fileutil.DirExists(staticDir) {
		n, err := fileutil.CopyTree(staticDir, l.Output)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCopyStatic, err)
		}
		report.StaticFiles = n
		b.logger.Info("static files copied", "from", staticDir, "to", l.Output, "files", n)
	} else {
		b.logger.Info("no static directory, skipped", "path", staticDir)
	}

	shell, style, err := b.loadTemplate()
	if err != nil {
		return nil, err
	}

	pages, err := listPages(filepath.Join(l.Source, l.PagesDir))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListPages, err)
	}

	report.Pages = make([]PageResult, len(pages))

	var g errgroup.Group
	g.SetLimit(b.workers)
	for i, p := range pages {
		if ctx.Err() != nil {
			report.Pages[i] = PageResult{Source: p, HTMLErr: ctx.Err()}
			continue
		}
		g.Go(func() error {
			report.Pages[i] = b.buildPage(ctx, shell, style, p)
			return nil
		})
	}
	_ = g.Wait() // tasks record their errors in the report

	report.Duration = time.Since(start)
	b.logger.Info("build finished",
		"pages", len(pages),
		"html", report.HTMLCount(),
		"pdf", report.PDFCount(),
		"failed", len(report.Failed()),
		"duration", report.Duration.Round(time.Millisecond))

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// checkOutsideStatic rejects an output directory equal to or inside the
// static directory: copying static files into it would copy the output too.
func checkOutsideStatic(output, staticDir string) error {
	absOut, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", output, err)
	}
	absStatic, err := filepath.Abs(staticDir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", staticDir, err)
	}
	if fileutil.IsPathUnderDir(absOut, absStatic) {
		return fmt.Errorf("%w: output %s is inside static directory %s", fileutil.ErrUnsafeDir, absOut, absStatic)
	}
	return nil
}

// loadTemplate loads the shared stylesheet and parses the shell, preferring
// the site's template directory over the embedded defaults.
func (b *Builder) loadTemplate() (*pipeline.Shell, string, error) {
	l := b.layout
	templateDir := filepath.Join(l.Source, l.TemplateDir)
	if !fileutil.DirExists(templateDir) {
		b.logger.Info("no template directory, using built-in template", "path", templateDir)
		templateDir = ""
	}

	resolver, err := assets.NewAssetResolver(templateDir)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrLoadTemplate, err)
	}
	tpl, err := assets.LoadTemplate(resolver, l.Style, l.Shell)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrLoadTemplate, err)
	}
	shell, err := pipeline.ParseShell(tpl.Shell)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrLoadTemplate, err)
	}
	return shell, tpl.Style, nil
}

// buildPage runs one page through the pipeline. It never returns an error:
// failures are recorded in the result so other pages keep going.
func (b *Builder) buildPage(ctx context.Context, shell *pipeline.Shell, sharedCSS string, p PageSource) (res PageResult) {
	start := time.Now()
	res.Source = p
	log := b.logger.With("page", p.Name)
	defer func() { res.Duration = time.Since(start) }()

	doc, err := b.composePage(ctx, shell, sharedCSS, p, log)
	if err != nil {
		res.HTMLErr = err
		log.Error("page failed", "error", err)
		return res
	}

	base := p.BaseName()
	htmlPath := filepath.Join(b.layout.Output, base+".html")
	button := pipeline.DownloadButton(url.PathEscape(base)+".pdf", b.download.Label, b.download.Class)
	if err := fileutil.WriteFileAtomic(htmlPath, []byte(doc.Render(button))); err != nil {
		res.HTMLErr = fmt.Errorf("%w: %v", ErrWriteHTML, err)
		log.Error("page failed", "error", res.HTMLErr)
		return res
	}
	res.HTMLPath = htmlPath
	log.Info("html created", "path", htmlPath)

	if !b.pdfEnabled {
		return res
	}

	pdfPath := filepath.Join(b.layout.Output, base+".pdf")
	if err := b.writePDF(ctx, doc.Render(b.pdfButton(button)), pdfPath); err != nil {
		res.PDFErr = err
		log.Error("pdf failed", "error", err)
		return res
	}
	res.PDFPath = pdfPath
	log.Info("pdf created", "path", pdfPath)
	return res
}

// composePage reads, parses and renders a page into the shell.
func (b *Builder) composePage(ctx context.Context, shell *pipeline.Shell, sharedCSS string, p PageSource, log *slog.Logger) (*pipeline.Page, error) {
	raw, err := os.ReadFile(p.Path) // #nosec G304 -- path comes from listing the pages dir
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadPage, err)
	}

	var pageCSS []byte
	if p.CSSPath != "" {
		pageCSS, err = os.ReadFile(p.CSSPath) // #nosec G304 -- sibling of a listed page
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadPage, err)
		}
	}

	fm := pipeline.ExtractFrontMatter(string(raw))
	if !fm.Found {
		log.Info("no front matter found, using defaults")
	}
	for _, perr := range fm.Skipped {
		log.Warn("front matter line skipped", "line", perr.Line, "text", perr.Text)
	}

	fragment, err := b.md.ToFragment(ctx, fm.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderPage, err)
	}

	return shell.Compose(pipeline.Parts{
		Meta:      fm.Meta,
		SharedCSS: sharedCSS,
		PageCSS:   string(pageCSS),
		Fragment:  fragment,
		Header:    b.layout.Header,
		Footer:    b.layout.Footer,
	}), nil
}

// pdfButton returns what the PDF variant shows in place of button.
func (b *Builder) pdfButton(button string) string {
	switch b.buttonMode {
	case ButtonButton:
		return button
	case ButtonMarker:
		return pipeline.ButtonMarker
	default:
		return ""
	}
}

// writePDF renders doc with a pooled renderer and writes it to path.
func (b *Builder) writePDF(ctx context.Context, doc, path string) error {
	var printPath string
	if b.resolveAssets {
		var err error
		printPath, err = b.writePrintFile(doc, path)
		if err != nil {
			return err
		}
		defer func() { _ = os.Remove(printPath) }()
	}

	r, err := b.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	var pdf []byte
	if printPath != "" {
		pdf, err = r.RenderFile(ctx, printPath)
	} else {
		pdf, err = r.RenderPDF(ctx, doc)
	}
	b.pool.Release(r)
	if err != nil {
		return err
	}

	if err := fileutil.WriteFileAtomic(path, pdf); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return nil
}

// writePrintFile writes doc, with relative asset paths resolved against the
// output directory, to a hidden file next to pdfPath. A page opened from
// there has a file:// origin and may load local assets. The caller removes
// the file.
func (b *Builder) writePrintFile(doc, pdfPath string) (string, error) {
	rewritten, err := pipeline.RewriteRelativePaths(doc, b.layout.Output)
	if err != nil {
		return "", fmt.Errorf("%w: resolving assets: %v", ErrRenderPage, err)
	}

	f, err := os.CreateTemp(filepath.Dir(pdfPath), "."+filepath.Base(pdfPath)+".*.html")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	if _, err := f.WriteString(rewritten); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return f.Name(), nil
}

// listPages returns the Markdown files directly under dir, sorted by name.
func listPages(dir string) ([]PageSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var pages []PageSource
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != pageExt || strings.HasPrefix(name, ".") {
			continue
		}
		p := PageSource{Name: name, Path: filepath.Join(dir, name)}
		if css := fileutil.ReplaceExt(p.Path, "css"); fileutil.FileExists(css) {
			p.CSSPath = css
		}
		pages = append(pages, p)
	}
	return pages, nil
}
