package assets

import (
	"fmt"
	"strings"
)

// maxAssetNameLength bounds names read from configuration.
const maxAssetNameLength = 64

// ValidateAssetName checks that an asset name is safe for use as a base
// filename. Names may not be empty, overly long, or contain path separators,
// dots (extension manipulation, traversal) or NUL bytes.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAssetName, maxAssetNameLength)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
