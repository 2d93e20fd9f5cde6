package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"sort"
	"strings"

	"codec-generator/internal/common"
	"codec-generator/internal/decl"
	"codec-generator/internal/suggest"
)

// Options configures directive recognition.
type Options struct {
	// DirectivePrefix is the word between "//" and ":" in directives.
	DirectivePrefix string
	// BuildMethod is the terminal builder method.
	BuildMethod string
}

// DefaultOptions returns the default introspector options.
func DefaultOptions() Options {
	return Options{
		DirectivePrefix: "codec",
		BuildMethod:     "Build",
	}
}

// Problem is a malformed declaration found while introspecting.
type Problem struct {
	Pos     token.Pos
	Message string
}

// Introspector converts type-checked Go syntax into declaration snapshots.
// Every declaration it records gets a handle in its Table.
type Introspector struct {
	opts      Options
	fset      *token.FileSet
	table     *decl.Table
	positions map[decl.Ref]token.Pos
}

// NewIntrospector creates an Introspector over files positioned in fset.
func NewIntrospector(fset *token.FileSet, opts Options) *Introspector {
	return &Introspector{
		opts:      opts,
		fset:      fset,
		table:     decl.NewTable(),
		positions: make(map[decl.Ref]token.Pos),
	}
}

// Table returns the declaration table.
func (in *Introspector) Table() *decl.Table {
	return in.table
}

// Options returns the options the Introspector was created with.
func (in *Introspector) Options() Options {
	return in.opts
}

// Pos returns the source position recorded for ref.
func (in *Introspector) Pos(ref decl.Ref) token.Pos {
	return in.positions[ref]
}

// Format renders a problem with its file position.
func (in *Introspector) Format(p Problem) string {
	return fmt.Sprintf("%s: %s", in.fset.Position(p.Pos), p.Message)
}

func (in *Introspector) add(kind decl.DeclKind, owner, name string, pos token.Pos) decl.Ref {
	ref := in.table.Add(decl.Entry{
		Kind:  kind,
		Owner: owner,
		Name:  name,
		Pos:   in.fset.Position(pos).String(),
	})
	in.positions[ref] = pos

	return ref
}

// typeSite is a named struct type declared in the package.
type typeSite struct {
	name      *ast.Ident
	named     *types.Named
	dirs      []directive
	generated bool

	constructor *funcSite
	builder     *funcSite
	builderType *types.Named
	buildSite   *funcSite
}

// funcSite is a function or method declaration with its type object.
type funcSite struct {
	decl *ast.FuncDecl
	fn   *types.Func
	dirs []directive
}

func (f *funcSite) signature() *types.Signature {
	return f.fn.Type().(*types.Signature)
}

// pkgScan is the per-package index built before value types are resolved.
type pkgScan struct {
	pkg     *types.Package
	sites   map[string]*typeSite
	order   []string
	methods map[string][]*funcSite

	constructors []*funcSite
	builders     []*funcSite
}

// Package extracts the value types of one type-checked package. dir is
// recorded on every type as its output directory.
func (in *Introspector) Package(pkg *types.Package, files []*ast.File, info *types.Info, dir string) ([]*decl.Type, []Problem) {
	scan := &pkgScan{
		pkg:     pkg,
		sites:   make(map[string]*typeSite),
		methods: make(map[string][]*funcSite),
	}

	for _, file := range files {
		in.scanFile(scan, file, info)
	}

	problems := in.bindFactories(scan)

	var out []*decl.Type

	for _, name := range scan.order {
		site := scan.sites[name]
		if !hasVerb(site.dirs, verbValue) && site.constructor == nil && site.builder == nil {
			continue
		}

		if _, ok := site.named.Underlying().(*types.Struct); !ok {
			problems = append(problems, Problem{Pos: site.name.Pos(), Message: name + " is not a struct type"})
			continue
		}

		if site.named.TypeParams().Len() > 0 {
			problems = append(problems, Problem{Pos: site.name.Pos(), Message: name + " is generic"})
			continue
		}

		t, typeProblems := in.buildType(scan, site, dir)
		problems = append(problems, typeProblems...)
		out = append(out, t)
	}

	return out, problems
}

func (in *Introspector) scanFile(scan *pkgScan, file *ast.File, info *types.Info) {
	generated := ast.IsGenerated(file)

	for _, d := range file.Decls {
		switch d := d.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}

			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				obj, ok := info.Defs[ts.Name].(*types.TypeName)
				if !ok || obj.IsAlias() {
					continue
				}

				named, ok := obj.Type().(*types.Named)
				if !ok {
					continue
				}

				doc := ts.Doc
				if doc == nil && len(d.Specs) == 1 {
					doc = d.Doc
				}

				scan.sites[ts.Name.Name] = &typeSite{
					name:      ts.Name,
					named:     named,
					dirs:      in.directives(doc),
					generated: generated,
				}
				scan.order = append(scan.order, ts.Name.Name)
			}

		case *ast.FuncDecl:
			fn, ok := info.Defs[d.Name].(*types.Func)
			if !ok {
				continue
			}

			site := &funcSite{decl: d, fn: fn, dirs: in.directives(d.Doc)}

			if recv := site.signature().Recv(); recv != nil {
				if isCodecMethod(d.Name.Name) {
					continue
				}

				if named := namedOf(recv.Type()); named != nil {
					name := named.Obj().Name()
					scan.methods[name] = append(scan.methods[name], site)
				}

				continue
			}

			switch {
			case hasVerb(site.dirs, verbConstructor):
				scan.constructors = append(scan.constructors, site)
			case hasVerb(site.dirs, verbBuilder):
				scan.builders = append(scan.builders, site)
			}
		}
	}
}

// bindFactories attaches constructors and builders to the types they produce.
func (in *Introspector) bindFactories(scan *pkgScan) []Problem {
	var problems []Problem

	for _, c := range scan.constructors {
		site := scan.localSite(singleResult(c.signature()))
		if site == nil {
			problems = append(problems, Problem{
				Pos:     c.fn.Pos(),
				Message: "constructor " + c.fn.Name() + " must return a single local struct type or pointer to one",
			})

			continue
		}

		switch {
		case site.constructor != nil:
			problems = append(problems, Problem{
				Pos:     c.fn.Pos(),
				Message: fmt.Sprintf("%s already has constructor %s", site.name.Name, site.constructor.fn.Name()),
			})
		case site.builder != nil:
			problems = append(problems, Problem{
				Pos:     c.fn.Pos(),
				Message: fmt.Sprintf("%s: %s", site.name.Name, decl.ErrAmbiguousCreator),
			})
		default:
			site.constructor = c
		}
	}

	for _, b := range scan.builders {
		builderSite := scan.localSite(singleResult(b.signature()))
		if builderSite == nil {
			problems = append(problems, Problem{
				Pos:     b.fn.Pos(),
				Message: "builder " + b.fn.Name() + " must return a single local builder type or pointer to one",
			})

			continue
		}

		build := scan.method(builderSite.name.Name, in.opts.BuildMethod)
		if build == nil {
			problems = append(problems, Problem{
				Pos:     b.fn.Pos(),
				Message: fmt.Sprintf("builder type %s has no %s method", builderSite.name.Name, in.opts.BuildMethod),
			})

			continue
		}

		site := scan.localSite(singleResult(build.signature()))
		if site == nil {
			problems = append(problems, Problem{
				Pos:     build.fn.Pos(),
				Message: fmt.Sprintf("%s.%s must return a single local struct type", builderSite.name.Name, in.opts.BuildMethod),
			})

			continue
		}

		if site.constructor != nil || site.builder != nil {
			problems = append(problems, Problem{
				Pos:     b.fn.Pos(),
				Message: fmt.Sprintf("%s: %s", site.name.Name, decl.ErrAmbiguousCreator),
			})

			continue
		}

		site.builder = b
		site.builderType = builderSite.named
		site.buildSite = build
	}

	return problems
}

func (in *Introspector) buildType(scan *pkgScan, site *typeSite, dir string) (*decl.Type, []Problem) {
	name := site.name.Name
	imports := make(map[string]decl.Import)
	q := qualifier(scan.pkg, imports)

	t := &decl.Type{
		ID:                 decl.TypeID{PkgPath: scan.pkg.Path(), Name: name},
		Ref:                in.add(decl.DeclType, "", name, site.name.Pos()),
		PkgName:            scan.pkg.Name(),
		Dir:                dir,
		SyntheticAccessors: site.generated,
	}

	st := site.named.Underlying().(*types.Struct)
	for i := range st.NumFields() {
		f := st.Field(i)
		if f.Embedded() {
			continue
		}

		field := decl.Field{
			Ref:        in.add(decl.DeclField, name, f.Name(), f.Pos()),
			Name:       f.Name(),
			Type:       types.TypeString(f.Type(), q),
			Visibility: visibility(f.Exported()),
		}
		applyJSONTag(&field, reflect.StructTag(st.Tag(i)))
		t.Fields = append(t.Fields, field)
	}

	var problems []Problem

	for _, m := range scan.sortedMethods(name) {
		method, ps := in.method(name, m, q)
		problems = append(problems, ps...)
		t.Methods = append(t.Methods, method)
	}

	if c := site.constructor; c != nil {
		factory, ps := in.factory(decl.DeclConstructor, c, q)
		problems = append(problems, ps...)
		t.Constructor = &factory
	}

	if b := site.builder; b != nil {
		factory, ps := in.factory(decl.DeclBuilder, b, q)
		problems = append(problems, ps...)

		builderName := site.builderType.Obj().Name()
		builder := &decl.Builder{
			Ref:          factory.Ref,
			Type:         types.TypeString(singleResult(b.signature()), q),
			Factory:      factory,
			Build:        site.buildSite.fn.Name(),
			BuildPointer: isPointer(singleResult(site.buildSite.signature())),
		}

		for _, m := range scan.sortedMethods(builderName) {
			method, ps := in.method(builderName, m, q)
			problems = append(problems, ps...)
			builder.Methods = append(builder.Methods, method)
		}

		t.Builder = builder
	}

	t.Imports = sortedImports(imports)

	return t, problems
}

func (in *Introspector) method(owner string, m *funcSite, q types.Qualifier) (decl.Method, []Problem) {
	sig := m.signature()
	meta, problems := memberDirectives(m.dirs)

	method := decl.Method{
		Ref:           in.add(decl.DeclMethod, owner, m.fn.Name(), m.fn.Pos()),
		Name:          m.fn.Name(),
		Visibility:    visibility(m.fn.Exported()),
		Params:        in.params(owner+"."+m.fn.Name(), sig.Params(), nil, q),
		SerializeName: meta.serializeName,
		Markers:       meta.markers,
	}

	// A getter yields exactly one value; anything else has no single result.
	if sig.Results().Len() == 1 {
		method.Result = types.TypeString(sig.Results().At(0).Type(), q)
	}

	return method, problems
}

func (in *Introspector) factory(kind decl.DeclKind, f *funcSite, q types.Qualifier) (decl.Factory, []Problem) {
	sig := f.signature()
	meta, problems := paramDirectives(f.dirs)

	for p := range meta {
		if !hasParam(sig.Params(), p) {
			problems = append(problems, Problem{Pos: f.fn.Pos(), Message: f.fn.Name() + " has no parameter " + p +
				suggest.Hint(p, paramNames(sig.Params()))})
		}
	}

	return decl.Factory{
		Ref:     in.add(kind, "", f.fn.Name(), f.fn.Pos()),
		Name:    f.fn.Name(),
		Params:  in.params(f.fn.Name(), sig.Params(), meta, q),
		Pointer: isPointer(singleResult(sig)),
	}, problems
}

func (in *Introspector) params(owner string, tuple *types.Tuple, meta map[string]memberMeta, q types.Qualifier) []decl.Param {
	var out []decl.Param

	for i := range tuple.Len() {
		v := tuple.At(i)
		m := meta[v.Name()]
		out = append(out, decl.Param{
			Ref:           in.add(decl.DeclParam, owner, v.Name(), v.Pos()),
			Name:          v.Name(),
			Type:          types.TypeString(v.Type(), q),
			SerializeName: m.serializeName,
			Markers:       m.markers,
		})
	}

	return out
}

// localSite returns the site of t (or *t) when it is a type of this package.
func (s *pkgScan) localSite(t types.Type) *typeSite {
	named := namedOf(t)
	if named == nil || named.Obj().Pkg() != s.pkg {
		return nil
	}

	return s.sites[named.Obj().Name()]
}

func (s *pkgScan) method(typeName, name string) *funcSite {
	for _, m := range s.methods[typeName] {
		if m.fn.Name() == name {
			return m
		}
	}

	return nil
}

// sortedMethods returns the methods of typeName in source order.
func (s *pkgScan) sortedMethods(typeName string) []*funcSite {
	methods := s.methods[typeName]
	sort.SliceStable(methods, func(i, j int) bool {
		return methods[i].fn.Pos() < methods[j].fn.Pos()
	})

	return methods
}

// applyJSONTag reads the serialize name, tokens and transient flag from
// the json struct tag.
func applyJSONTag(f *decl.Field, tag reflect.StructTag) {
	value, ok := tag.Lookup("json")
	if !ok {
		return
	}

	if value == "-" {
		f.Transient = true
		return
	}

	parts := strings.Split(value, ",")
	f.SerializeName = parts[0]

	for _, opt := range parts[1:] {
		if opt != "" {
			f.Markers = append(f.Markers, decl.ParseMarker(opt))
		}
	}
}

func qualifier(pkg *types.Package, imports map[string]decl.Import) types.Qualifier {
	return func(other *types.Package) string {
		if other.Path() == pkg.Path() {
			return ""
		}

		imp := decl.Import{Path: other.Path()}
		if common.PkgAlias(other.Path()) != other.Name() {
			imp.Name = other.Name()
		}

		imports[other.Path()] = imp

		return other.Name()
	}
}

func sortedImports(imports map[string]decl.Import) []decl.Import {
	out := make([]decl.Import, 0, len(imports))
	for _, imp := range imports {
		out = append(out, imp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })

	return out
}

func visibility(exported bool) decl.Visibility {
	if exported {
		return decl.VisibilityPublic
	}

	// Unexported Go identifiers are package scoped.
	return decl.VisibilityPackage
}

func singleResult(sig *types.Signature) types.Type {
	if sig.Results().Len() != 1 {
		return nil
	}

	return sig.Results().At(0).Type()
}

func namedOf(t types.Type) *types.Named {
	if t == nil {
		return nil
	}

	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}

	named, _ := t.(*types.Named)

	return named
}

func isPointer(t types.Type) bool {
	_, ok := t.(*types.Pointer)
	return ok
}

// isCodecMethod reports the methods a codec provides. They are output, not
// declarations, so regenerating a package sees the same snapshot.
func isCodecMethod(name string) bool {
	return name == "MarshalJSON" || name == "UnmarshalJSON"
}

func paramNames(tuple *types.Tuple) []string {
	out := make([]string, 0, tuple.Len())
	for i := range tuple.Len() {
		out = append(out, tuple.At(i).Name())
	}

	return out
}

func hasParam(tuple *types.Tuple, name string) bool {
	for i := range tuple.Len() {
		if tuple.At(i).Name() == name {
			return true
		}
	}

	return false
}
