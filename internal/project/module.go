package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// Module is a Go module on disk.
type Module struct {
	// Root is the absolute directory containing go.mod.
	Root string
	// Path is the module path declared in go.mod.
	Path string
}

// LoadModule reads the module path from root/go.mod.
func LoadModule(root string) (*Module, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	modPath := filepath.Join(absRoot, ModFileName)
	data, err := os.ReadFile(modPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", modPath, err)
	}

	path := modfile.ModulePath(data)
	if path == "" {
		return nil, fmt.Errorf("%s: no module directive", modPath)
	}

	return &Module{Root: absRoot, Path: path}, nil
}

// FindModule locates and loads the module enclosing dir.
func FindModule(dir string) (*Module, error) {
	root, err := FindModuleRootFrom(dir)
	if err != nil {
		return nil, err
	}
	return LoadModule(root)
}

// PackageDir returns the directory of the package with the given import
// path. It reports false for packages outside the module.
func (m *Module) PackageDir(importPath string) (string, bool) {
	if importPath == m.Path {
		return m.Root, true
	}
	rel, ok := strings.CutPrefix(importPath, m.Path+"/")
	if !ok || rel == "" {
		return "", false
	}
	return filepath.Join(m.Root, filepath.FromSlash(rel)), true
}
