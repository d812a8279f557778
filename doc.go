// Package mdsite builds a static site from a tree of Markdown pages.
//
// # Quick Start
//
//	b, err := mdsite.NewBuilder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	report, err := b.Build(ctx)
//	if err != nil {
//	    log.Fatal(err) // the build could not run
//	}
//	if err := report.Err(); err != nil {
//	    log.Print(err) // some pages failed
//	}
//
// # Source Layout
//
// By default the builder reads src/ and writes public/:
//
//	src/static/     copied verbatim into the output root
//	src/pages/      *.md pages, each with an optional same-named .css
//	src/template/   markdown.css (shared) and markdown.html (shell)
//
// Missing template files fall back to built-in defaults. The output root is
// deleted and recreated on every build.
//
// # Build Pipeline
//
//  1. Reset the output directory and copy static files.
//  2. Load the shared stylesheet and parse the shell once.
//  3. For each page, concurrently: extract front matter, render Markdown
//     with goldmark, fill the shell slots, write <name>.html with a download
//     button linking <name>.pdf.
//  4. Print each page to <name>.pdf with headless Chrome (go-rod).
//
// Build returns once every page has finished. A page that fails is recorded
// in the Report and does not stop the others.
//
// # Shell Slots
//
// A shell is any HTML document containing exactly one element for each of
// these ids: mdMeta (metadata tags), mdCss (styles), header, content and
// footer. Everything outside the slots is kept byte for byte.
//
// # Parallel Rendering
//
// PDFs are printed by a RendererPool of reused browsers. Its size, and the
// number of concurrent page tasks, default to ResolvePoolSize(0): half of
// GOMAXPROCS, between 1 and 8.
//
//	b, err := mdsite.NewBuilder(
//	    mdsite.WithWorkers(4),
//	    mdsite.WithTimeout(time.Minute),
//	    mdsite.WithPageSettings(&mdsite.PageSettings{Size: "letter"}),
//	)
package mdsite
