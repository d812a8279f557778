// Package assets provides the HTML shell and shared stylesheet used to
// compose pages.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in shell and stylesheet (go:embed)
//	    ├── FilesystemLoader  - a site's template directory on disk
//	    └── AssetResolver     - combines both with site-first fallback
//
// A site overrides the defaults by placing files in its template directory:
//
//	{templateDir}/
//	├── markdown.css     # shared stylesheet, prepended to every page's CSS
//	└── markdown.html    # shell with mdMeta, mdCss, header, content, footer slots
//
// Either file may be omitted; the embedded default is used in its place.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
