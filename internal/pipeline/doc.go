// Package pipeline implements the per-page stages of a site build.
//
// The stages run in this order for every Markdown page:
//   - front matter extraction into ordered Metadata (ExtractFrontMatter)
//   - Markdown to HTML fragment conversion via goldmark (GoldmarkRenderer)
//   - slot substitution into the site's HTML shell (Shell.Compose)
//   - download button placement (Page.Render)
//
// A Shell is tokenized once with golang.org/x/net/html. Slots are elements
// identified by their id attribute, so the shell author may format them
// freely; everything outside a slot is copied byte-for-byte.
//
// PDF rendering lives in the root mdsite package, which drives headless
// Chrome (go-rod). RewriteRelativePaths prepares documents for it.
package pipeline
