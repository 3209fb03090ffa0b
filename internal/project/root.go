// Package project locates the Go module a test run belongs to, so package
// import paths in test events can be mapped back to source directories.
package project

import (
	"errors"
	"os"
	"path/filepath"
)

// ModFileName is the name of the Go module file.
const ModFileName = "go.mod"

// ErrNoModuleRoot is returned when no directory up to the file system root
// contains a go.mod file.
var ErrNoModuleRoot = errors.New("go.mod not found in any parent directory")

// FindModuleRootFrom returns the nearest directory at or above dir that
// contains go.mod. A directory named go.mod does not count.
func FindModuleRootFrom(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, ModFileName)); err == nil && info.Mode().IsRegular() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoModuleRoot
		}
		dir = parent
	}
}
