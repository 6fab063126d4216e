// Package filex holds small filesystem helpers used by the CLI client.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrEmptyName is returned when no usable file name can be derived.
var ErrEmptyName = errors.New("empty file name")

// EnsureDir creates dir (and parents) if it does not exist yet and returns
// its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// DownloadPath resolves where a downloaded file is written.
//
//   - dest empty: <dir>/<name>
//   - dest an existing directory: <dest>/<name>
//   - otherwise dest itself
//
// Only the base of name is used, so a stored name can never point outside
// the target directory.
func DownloadPath(dir, dest, name string) (string, error) {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." {
		base = ""
	}

	if dest != "" {
		fi, err := os.Stat(dest)
		if err != nil || !fi.IsDir() {
			return dest, nil
		}
		dir = dest
	}

	if base == "" {
		return "", ErrEmptyName
	}

	abs, err := EnsureDir(dir)
	if err != nil {
		return "", err
	}

	return filepath.Join(abs, base), nil
}
