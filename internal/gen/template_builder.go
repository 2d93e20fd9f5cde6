package gen

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"codec-generator/internal/decl"
	"codec-generator/internal/names"
)

// runtimeImports are the packages the codec template refers to. Unused ones
// are dropped when the output is processed.
var runtimeImports = []string{"bytes", "encoding/json", "fmt", "reflect"}

// templateData holds all data needed for the codec template.
type templateData struct {
	PackageName      string
	Filename         string
	TypeName         string
	Imports          []importSpec
	GenerateComments bool

	Reads   []readData
	Args    []argData
	Create  string
	Builder *builderData
	Assigns []assignData
}

// importSpec is one line of the import block.
type importSpec struct {
	Alias string
	Path  string
}

// readData is one property written by MarshalJSON.
type readData struct {
	Expr      string
	NameLit   string
	KeyLit    string
	OmitEmpty bool
}

// argData is a decoded local passed to the constructor, builder factory or a setter.
type argData struct {
	Var     string
	Type    string
	NameLit string
}

// builderData describes the builder chain in UnmarshalJSON.
type builderData struct {
	Init    string
	Setters []setterData
	Build   string
}

type setterData struct {
	argData

	Method string
}

// assignData is an exported field decoded in place after creation.
type assignData struct {
	Field   string
	NameLit string
}

// buildTemplateData constructs the template data for one value type.
func (g *Generator) buildTemplateData(t *decl.Type, props []names.Property) (*templateData, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	data := &templateData{
		PackageName:      t.PkgName,
		Filename:         g.filename(t),
		TypeName:         t.ID.Name,
		Imports:          collectImports(t),
		GenerateComments: g.config.GenerateComments,
	}

	byKey := make(map[string]names.Property, len(props))
	for _, p := range props {
		byKey[p.Key()] = p
	}

	for _, p := range props {
		if r, ok := readFor(p); ok {
			data.Reads = append(data.Reads, r)
		}
	}

	switch {
	case t.Constructor != nil:
		args := data.addArgs(t.Constructor.Params, byKey)
		data.Create = deref(t.Constructor.Pointer) + call(t.Constructor.Name, args)
	case t.Builder != nil:
		b, err := data.builder(t.Builder, props, byKey)
		if err != nil {
			return nil, err
		}

		data.Builder = b
	}

	for _, p := range props {
		if p.Field == nil || p.ConstructorParam != nil || p.BuilderParam != nil {
			continue
		}

		data.Assigns = append(data.Assigns, assignData{
			Field:   p.Field.Raw,
			NameLit: strconv.Quote(p.JSONName()),
		})
	}

	return data, nil
}

// readFor returns the read path for p: its getter if one remains, else its
// exported field. Properties with neither are write-only.
func readFor(p names.Property) (readData, bool) {
	var expr string

	switch {
	case p.Getter != nil:
		expr = "v." + p.Getter.Raw + "()"
	case p.Field != nil:
		expr = "v." + p.Field.Raw
	default:
		return readData{}, false
	}

	return readData{
		Expr:      expr,
		NameLit:   strconv.Quote(p.JSONName()),
		KeyLit:    strconv.Quote(jsonKey(p.JSONName())),
		OmitEmpty: p.HasToken("omitempty"),
	}, true
}

func (d *templateData) builder(b *decl.Builder, props []names.Property, byKey map[string]names.Property) (*builderData, error) {
	pointerType := strings.HasPrefix(b.Type, "*")
	if b.Factory.Pointer != pointerType {
		return nil, fmt.Errorf("builder factory %s must return %s", b.Factory.Name, b.Type)
	}

	args := d.addArgs(b.Factory.Params, byKey)
	out := &builderData{
		Init:  call(b.Factory.Name, args),
		Build: deref(b.BuildPointer) + "b." + b.Build + "()",
	}

	for _, p := range props {
		if p.BuilderParam == nil {
			continue
		}

		arg := d.addArg(p.BuilderParam.Type, p.JSONName())
		out.Setters = append(out.Setters, setterData{argData: arg, Method: p.BuilderParam.Raw})
	}

	return out, nil
}

// addArgs declares one local per parameter, in parameter order.
func (d *templateData) addArgs(params []decl.Param, byKey map[string]names.Property) []string {
	vars := make([]string, 0, len(params))

	for _, param := range params {
		jsonName := param.Name
		if p, ok := byKey[param.Name]; ok {
			jsonName = p.JSONName()
		}

		vars = append(vars, d.addArg(param.Type, jsonName).Var)
	}

	return vars
}

func (d *templateData) addArg(typ, jsonName string) argData {
	arg := argData{
		Var:     "arg" + strconv.Itoa(len(d.Args)),
		Type:    typ,
		NameLit: strconv.Quote(jsonName),
	}
	d.Args = append(d.Args, arg)

	return arg
}

func collectImports(t *decl.Type) []importSpec {
	seen := make(map[string]bool)

	var specs []importSpec

	add := func(alias, path string) {
		if seen[path] {
			return
		}

		seen[path] = true
		specs = append(specs, importSpec{Alias: alias, Path: path})
	}

	for _, path := range runtimeImports {
		add("", path)
	}

	for _, imp := range t.Imports {
		add(imp.Name, imp.Path)
	}

	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Path < specs[j].Path
	})

	return specs
}

// jsonKey renders the object key prefix `"name":` as JSON.
func jsonKey(name string) string {
	b, _ := json.Marshal(name)

	return string(b) + ":"
}

func call(fn string, args []string) string {
	return fn + "(" + strings.Join(args, ", ") + ")"
}

func deref(pointer bool) string {
	if pointer {
		return "*"
	}

	return ""
}
