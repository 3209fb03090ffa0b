package project

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"sort"
)

// TestFuncs maps the top-level functions declared in the _test.go files of
// dir to the absolute path of the declaring file. Files that fail to parse
// are skipped; the error of the first one is returned alongside the
// functions found elsewhere.
func TestFuncs(dir string) (map[string]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*_test.go"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	funcs := make(map[string]string)
	fset := token.NewFileSet()
	var firstErr error
	for _, path := range files {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		file, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv != nil {
				continue
			}
			if _, seen := funcs[fn.Name.Name]; !seen {
				funcs[fn.Name.Name] = abs
			}
		}
	}
	return funcs, firstErr
}
