package manifest

import (
	"errors"
	"fmt"

	"codec-generator/internal/decl"
)

// Snapshot converts the manifest into declarations. Every declaration gets a
// table entry positioned at source:line. All invalid entries are reported
// together.
func (f *File) Snapshot(source string) (*decl.Snapshot, error) {
	b := &snapshotBuilder{source: source, table: decl.NewTable()}
	snap := &decl.Snapshot{Table: b.table}

	for i := range f.Types {
		t := b.typ(f, &f.Types[i])
		if t == nil {
			continue
		}

		if err := t.Validate(); err != nil {
			b.errs = append(b.errs, fmt.Errorf("%s: %w", b.pos(f.Types[i].Line), err))

			continue
		}

		snap.Types = append(snap.Types, t)
	}

	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	return snap, nil
}

type snapshotBuilder struct {
	source string
	table  *decl.Table
	errs   []error
}

func (b *snapshotBuilder) pos(line int) string {
	if line == 0 {
		return b.source
	}

	return fmt.Sprintf("%s:%d", b.source, line)
}

func (b *snapshotBuilder) add(kind decl.DeclKind, owner, name string, line int) decl.Ref {
	return b.table.Add(decl.Entry{Kind: kind, Owner: owner, Name: name, Pos: b.pos(line)})
}

func (b *snapshotBuilder) visibility(s string, line int) decl.Visibility {
	v, err := decl.ParseVisibility(s)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s: %w", b.pos(line), err))
	}

	return v
}

func (b *snapshotBuilder) typ(f *File, spec *TypeSpec) *decl.Type {
	if spec.Name == "" {
		b.errs = append(b.errs, fmt.Errorf("%s: type has no name", b.pos(spec.Line)))

		return nil
	}

	t := &decl.Type{
		ID:                 decl.TypeID{PkgPath: f.Package, Name: spec.Name},
		Ref:                b.add(decl.DeclType, "", spec.Name, spec.Line),
		PkgName:            f.Name,
		Dir:                f.Dir,
		SyntheticAccessors: spec.SyntheticAccessors,
	}

	for _, fs := range spec.Fields {
		t.Fields = append(t.Fields, decl.Field{
			Ref:           b.add(decl.DeclField, spec.Name, fs.Name, fs.Line),
			Name:          fs.Name,
			Type:          fs.Type,
			Visibility:    b.visibility(fs.Visibility, fs.Line),
			Static:        fs.Static,
			Transient:     fs.Transient,
			SerializeName: fs.JSON,
			Markers:       markers(fs.Tokens),
		})
	}

	t.Methods = b.methods(spec.Name, spec.Methods)

	if spec.Constructor != nil {
		ctor := b.factory(decl.DeclConstructor, spec.Constructor)
		t.Constructor = &ctor
	}

	if bs := spec.Builder; bs != nil {
		owner := trimPointer(bs.Type)
		t.Builder = &decl.Builder{
			Ref:          b.add(decl.DeclBuilder, "", owner, bs.Factory.Line),
			Type:         bs.Type,
			Factory:      b.factory(decl.DeclConstructor, &bs.Factory),
			Methods:      b.methods(owner, bs.Methods),
			Build:        bs.Build,
			BuildPointer: bs.BuildPointer,
		}
	}

	for _, imp := range spec.Imports {
		t.Imports = append(t.Imports, decl.Import{Name: imp.Name, Path: imp.Path})
	}

	return t
}

func (b *snapshotBuilder) methods(owner string, specs []MethodSpec) []decl.Method {
	var out []decl.Method

	for _, ms := range specs {
		out = append(out, decl.Method{
			Ref:           b.add(decl.DeclMethod, owner, ms.Name, ms.Line),
			Name:          ms.Name,
			Visibility:    b.visibility(ms.Visibility, ms.Line),
			Static:        ms.Static,
			Params:        b.params(ms.Name, ms.Params),
			Result:        ms.Result,
			SerializeName: ms.JSON,
			Markers:       markers(ms.Tokens),
		})
	}

	return out
}

func (b *snapshotBuilder) factory(kind decl.DeclKind, spec *FactorySpec) decl.Factory {
	return decl.Factory{
		Ref:     b.add(kind, "", spec.Name, spec.Line),
		Name:    spec.Name,
		Params:  b.params(spec.Name, spec.Params),
		Pointer: spec.Pointer,
	}
}

func (b *snapshotBuilder) params(owner string, specs []ParamSpec) []decl.Param {
	var out []decl.Param

	for _, ps := range specs {
		out = append(out, decl.Param{
			Ref:           b.add(decl.DeclParam, owner, ps.Name, ps.Line),
			Name:          ps.Name,
			Type:          ps.Type,
			SerializeName: ps.JSON,
			Markers:       markers(ps.Tokens),
		})
	}

	return out
}

func markers(tokens TokenList) []decl.Marker {
	if len(tokens) == 0 {
		return nil
	}

	out := make([]decl.Marker, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, decl.ParseMarker(tok))
	}

	return out
}

func trimPointer(s string) string {
	if len(s) > 0 && s[0] == '*' {
		return s[1:]
	}

	return s
}

// FromTypes builds a manifest describing types. Types are expected to share
// one package; the first type's package is recorded.
func FromTypes(types []*decl.Type) *File {
	f := &File{Version: "1"}

	if len(types) > 0 {
		f.Package = types[0].ID.PkgPath
		f.Name = types[0].PkgName
		f.Dir = types[0].Dir
	}

	for _, t := range types {
		spec := TypeSpec{
			Name:               t.ID.Name,
			SyntheticAccessors: t.SyntheticAccessors,
			Methods:            methodSpecs(t.Methods),
		}

		for _, fd := range t.Fields {
			spec.Fields = append(spec.Fields, FieldSpec{
				Name:       fd.Name,
				Type:       fd.Type,
				Visibility: visibilityString(fd.Visibility),
				Static:     fd.Static,
				Transient:  fd.Transient,
				JSON:       fd.SerializeName,
				Tokens:     tokens(fd.Markers),
			})
		}

		if t.Constructor != nil {
			fs := factorySpec(*t.Constructor)
			spec.Constructor = &fs
		}

		if t.Builder != nil {
			spec.Builder = &BuilderSpec{
				Type:         t.Builder.Type,
				Factory:      factorySpec(t.Builder.Factory),
				Methods:      methodSpecs(t.Builder.Methods),
				Build:        t.Builder.Build,
				BuildPointer: t.Builder.BuildPointer,
			}
		}

		for _, imp := range t.Imports {
			spec.Imports = append(spec.Imports, ImportSpec{Name: imp.Name, Path: imp.Path})
		}

		f.Types = append(f.Types, spec)
	}

	return f
}

func methodSpecs(methods []decl.Method) []MethodSpec {
	var out []MethodSpec

	for _, m := range methods {
		out = append(out, MethodSpec{
			Name:       m.Name,
			Result:     m.Result,
			Visibility: visibilityString(m.Visibility),
			Static:     m.Static,
			Params:     paramSpecs(m.Params),
			JSON:       m.SerializeName,
			Tokens:     tokens(m.Markers),
		})
	}

	return out
}

func factorySpec(f decl.Factory) FactorySpec {
	return FactorySpec{Name: f.Name, Pointer: f.Pointer, Params: paramSpecs(f.Params)}
}

func paramSpecs(params []decl.Param) []ParamSpec {
	var out []ParamSpec

	for _, p := range params {
		out = append(out, ParamSpec{
			Name:   p.Name,
			Type:   p.Type,
			JSON:   p.SerializeName,
			Tokens: tokens(p.Markers),
		})
	}

	return out
}

func tokens(markers []decl.Marker) TokenList {
	if len(markers) == 0 {
		return nil
	}

	out := make(TokenList, 0, len(markers))
	for _, m := range markers {
		out = append(out, m.String())
	}

	return out
}

// visibilityString leaves the default visibility implicit.
func visibilityString(v decl.Visibility) string {
	if v == decl.VisibilityPublic {
		return ""
	}

	return v.String()
}
