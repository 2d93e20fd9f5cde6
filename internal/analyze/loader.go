package analyze

import (
	"errors"
	"fmt"
	"go/token"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"codec-generator/internal/decl"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Loader loads Go packages and extracts their value types.
type Loader struct {
	opts Options
	// Dir is the working directory for pattern resolution; empty means
	// the current directory.
	Dir string
}

// NewLoader creates a new Loader.
func NewLoader(opts Options) *Loader {
	return &Loader{opts: opts}
}

// Load loads the specified packages and returns the snapshot of every value
// type declared in them.
// Patterns are standard Go package patterns (e.g., "./...", "codec-generator/examples/shapes").
func (l *Loader) Load(patterns ...string) (*decl.Snapshot, error) {
	fset := token.NewFileSet()
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  l.Dir,
		Fset: fset,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	in := NewIntrospector(fset, l.opts)
	snap := &decl.Snapshot{Table: in.Table()}

	for _, pkg := range pkgs {
		types, problems := in.Package(pkg.Types, pkg.Syntax, pkg.TypesInfo, packageDir(pkg))
		if len(problems) > 0 {
			perrs := make([]error, 0, len(problems))
			for _, p := range problems {
				perrs = append(perrs, errors.New(in.Format(p)))
			}

			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, errors.Join(perrs...))
		}

		snap.Types = append(snap.Types, types...)
	}

	return snap, nil
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) == 0 {
		return ""
	}

	return filepath.Dir(pkg.GoFiles[0])
}
