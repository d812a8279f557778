// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	DirPermissions  = 0o755 // rwxr-xr-x: output is meant to be served
	FilePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for file utility operations.
var (
	ErrUnsafeDir    = errors.New("refusing to reset directory")
	ErrNotDirectory = errors.New("not a directory")
)

// ReplaceExt swaps the extension of name for ext (given without the dot).
// A name without an extension gets ext appended.
//
// Examples:
//   - ("about.md", "html") -> "about.html"
//   - ("notes", "pdf") -> "notes.pdf"
//   - ("v1.2.md", "css") -> "v1.2.css"
func ReplaceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + "." + ext
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// ResetDir makes dir an empty directory: it is created when absent, or removed
// recursively and recreated when present. protect lists directories that must
// survive: dir may not equal or contain any of them.
func ResetDir(dir string, protect ...string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}
	if isFilesystemRoot(absDir) {
		return fmt.Errorf("%w: %s is a filesystem root", ErrUnsafeDir, absDir)
	}
	for _, p := range protect {
		absP, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		if IsPathUnderDir(absP, absDir) {
			return fmt.Errorf("%w: %s contains %s", ErrUnsafeDir, absDir, absP)
		}
	}

	if err := os.RemoveAll(absDir); err != nil {
		return fmt.Errorf("removing %s: %w", absDir, err)
	}
	if err := os.MkdirAll(absDir, DirPermissions); err != nil {
		return fmt.Errorf("creating %s: %w", absDir, err)
	}
	return nil
}

// CopyTree recursively copies every file and directory under src into dst,
// preserving relative structure. Symlinks are followed for files and skipped
// for directories. When dst lies inside src, dst itself is not copied.
// Returns the number of files copied.
func CopyTree(src, dst string) (int, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%w: %s", ErrNotDirectory, src)
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return 0, fmt.Errorf("resolving %s: %w", dst, err)
	}

	copied := 0
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			if abs, err := filepath.Abs(path); err == nil && abs == absDst {
				return filepath.SkipDir
			}
			return os.MkdirAll(target, DirPermissions)
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if fi, statErr := os.Stat(path); statErr != nil || fi.IsDir() {
				return nil
			}
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return copied, nil
}

// copyFile copies a single regular file, overwriting target.
func copyFile(src, target string) error {
	in, err := os.Open(src) // #nosec G304 -- walked path under the static root
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, FilePermissions) // #nosec G304
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// WriteFileAtomic writes data to a temp file next to path and renames it into
// place, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, FilePermissions); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}

// IsPathUnderDir checks if absPath equals dir or lies beneath it.
func IsPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

func isFilesystemRoot(absDir string) bool {
	return filepath.Dir(absDir) == absDir
}
