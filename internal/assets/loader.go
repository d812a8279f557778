package assets

// AssetLoader defines the contract for loading page templates.
type AssetLoader interface {
	// LoadStyle loads a stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadShell loads an HTML shell by name (without .html extension).
	// Returns ErrShellNotFound if the shell doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadShell(name string) (string, error)
}

// DefaultName is the base name of the built-in shell and stylesheet.
const DefaultName = "markdown"

// Template is the pair of assets every page is composed with.
type Template struct {
	Style string // shared CSS
	Shell string // HTML shell source
}

// LoadTemplate loads the named stylesheet and shell from loader.
func LoadTemplate(loader AssetLoader, styleName, shellName string) (*Template, error) {
	style, err := loader.LoadStyle(styleName)
	if err != nil {
		return nil, err
	}
	shell, err := loader.LoadShell(shellName)
	if err != nil {
		return nil, err
	}
	return &Template{Style: style, Shell: shell}, nil
}
