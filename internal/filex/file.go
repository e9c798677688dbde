// Package filex holds small filesystem helpers for the CLI.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", path, err)
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// Opened is a set of open regular files.
type Opened []*os.File

// Close closes every file and joins the errors.
func (o Opened) Close() error {
	var errs []error
	for _, f := range o {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenAll opens every path for reading. Directories are rejected. On error
// the files opened so far are closed.
func OpenAll(paths []string) (Opened, error) {
	out := make(Opened, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			_ = out.Close()
			return nil, fmt.Errorf("open %s: %w", p, err)
		}
		fi, err := f.Stat()
		if err == nil && fi.IsDir() {
			err = fmt.Errorf("%s is a directory", p)
		}
		if err != nil {
			_ = f.Close()
			_ = out.Close()
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
