package parser

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"sort"

	"golang.org/x/tools/go/packages"
)

// Package is the loaded form of one target package: everything Collect and
// the framework detector need.
type Package struct {
	Name    string
	Dir     string
	Fset    *token.FileSet
	Syntax  []*ast.File
	Info    *types.Info
	Imports []string
}

// LoadPackage loads the single package rooted at dir with syntax and type
// information. Type errors are tolerated (the package may reference
// generated identifiers that do not exist yet on a first run); syntax and
// list errors are not.
func LoadPackage(dir string) (*Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedImports | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedSyntax,
		Dir:   dir,
		Tests: false,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package in %s: %w", dir, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go package found in %s", dir)
	}
	pkg := pkgs[0]
	for _, e := range pkg.Errors {
		if e.Kind == packages.ListError || e.Kind == packages.ParseError {
			return nil, fmt.Errorf("failed to parse package in %s: %s", dir, e.Msg)
		}
	}

	imports := make([]string, 0, len(pkg.Imports))
	for path := range pkg.Imports {
		imports = append(imports, path)
	}
	sort.Strings(imports)

	return &Package{
		Name:    pkg.Name,
		Dir:     dir,
		Fset:    pkg.Fset,
		Syntax:  pkg.Syntax,
		Info:    pkg.TypesInfo,
		Imports: imports,
	}, nil
}

// Enums loads and collects in one step.
func (p *Package) Enums() ([]Enum, error) {
	return Collect(p.Fset, p.Syntax, p.Info)
}
