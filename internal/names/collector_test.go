package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codec-generator/internal/decl"
)

func getter(name, result string) decl.Method {
	return decl.Method{Name: name, Result: result}
}

func field(name, typ string) decl.Field {
	return decl.Field{Name: name, Type: typ}
}

func param(name, typ string) decl.Param {
	return decl.Param{Name: name, Type: typ}
}

func rawNames(list []*Name) []string {
	out := make([]string, 0, len(list))
	for _, n := range list {
		out = append(out, n.Raw)
	}

	return out
}

func keys(list []*Name) []string {
	out := make([]string, 0, len(list))
	for _, n := range list {
		out = append(out, n.Key)
	}

	return out
}

func TestCollector_AddGetter_Filters(t *testing.T) {
	owner := &decl.Type{ID: decl.TypeID{Name: "Test"}}

	c := NewCollector(DefaultOptions())
	c.AddGetter(owner, getter("arg", "int"))
	c.AddGetter(owner, decl.Method{Name: "hidden", Result: "int", Visibility: decl.VisibilityPrivate})
	c.AddGetter(owner, decl.Method{Name: "pkgLocal", Result: "int", Visibility: decl.VisibilityPackage})
	c.AddGetter(owner, decl.Method{Name: "Static", Result: "int", Static: true})
	c.AddGetter(owner, getter("Reset", ""))
	c.AddGetter(owner, decl.Method{Name: "With", Result: "int", Params: []decl.Param{param("x", "int")}})
	c.AddGetter(owner, getter("String", "string"))
	c.AddGetter(owner, getter("Clone", "Test"))
	c.AddGetter(owner, getter("Component1", "int"))

	assert.Equal(t, []string{"arg", "pkgLocal", "Component1"}, rawNames(c.Getters()))
}

func TestCollector_AddGetter_SyntheticAccessors(t *testing.T) {
	owner := &decl.Type{ID: decl.TypeID{Name: "Pair"}, SyntheticAccessors: true}

	c := NewCollector(DefaultOptions())
	c.AddGetter(owner, getter("component1", "int"))
	c.AddGetter(owner, getter("Component2", "int"))
	c.AddGetter(owner, getter("ComponentX", "int"))
	c.AddGetter(owner, getter("first", "int"))

	assert.Equal(t, []string{"ComponentX", "first"}, rawNames(c.Getters()))
}

func TestCollector_AddField_SkipsStatic(t *testing.T) {
	c := NewCollector(DefaultOptions())
	c.AddField(field("A", "int"))
	c.AddField(decl.Field{Name: "Shared", Type: "int", Static: true})
	c.AddField(decl.Field{Name: "b", Type: "int", Visibility: decl.VisibilityPackage, Transient: true})

	require.Len(t, c.Fields(), 2)
	assert.Equal(t, "A", c.Fields()[0].Raw)
	assert.True(t, c.Fields()[1].Transient)
	assert.Equal(t, decl.VisibilityPackage, c.Fields()[1].Visibility)
}

func TestCollector_AddBuilderParam_OnlyFluentSetters(t *testing.T) {
	c := NewCollector(DefaultOptions())
	c.AddBuilderParam("*Builder", decl.Method{Name: "Arg", Result: "*Builder", Params: []decl.Param{param("arg", "int")}})
	c.AddBuilderParam("*Builder", decl.Method{Name: "Build", Result: "*Test"})
	c.AddBuilderParam("*Builder", decl.Method{Name: "Value", Result: "Builder", Params: []decl.Param{param("v", "int")}})
	c.AddBuilderParam("*Builder", decl.Method{
		Name: "Pair", Result: "*Builder",
		Params: []decl.Param{param("a", "int"), param("b", "int")},
	})
	c.AddBuilderParam("*Builder", decl.Method{Name: "Reset", Result: "*Builder"})

	require.Len(t, c.BuilderParams(), 1)

	b := c.BuilderParams()[0]
	assert.Equal(t, KindBuilderParam, b.Kind)
	assert.Equal(t, "Arg", b.Key)
	assert.Equal(t, "int", b.Type)
	assert.Equal(t, []*Name{b}, c.Params())
}

func TestCollector_BuilderParamKeyIsSetterName(t *testing.T) {
	c := finish(t, &decl.Type{
		ID: decl.TypeID{Name: "Circle"},
		Fields: []decl.Field{
			{Name: "radius", Type: "float64", Visibility: decl.VisibilityPackage},
			field("Color", "string"),
		},
		Builder: &decl.Builder{
			Type:    "*CircleBuilder",
			Factory: decl.Factory{Name: "NewCircleBuilder", Params: []decl.Param{param("radius", "float64")}},
			Methods: []decl.Method{
				{Name: "Radius", Result: "*CircleBuilder", Params: []decl.Param{param("r", "float64")}},
				{Name: "Color", Result: "*CircleBuilder", Params: []decl.Param{param("c", "string")}},
			},
			Build: "Build",
		},
	})

	// An exported setter keeps its case: it pairs with the exported field
	// Color but not with the required argument radius.
	assert.Equal(t, []string{"radius", "Radius", "Color"}, keys(c.Names()))
	assert.Equal(t, KindBuilderParam, c.Names()[2].Kind)
}

func TestCollector_AddConstructorParam_AddsToParams(t *testing.T) {
	c := NewCollector(DefaultOptions())
	c.AddConstructorParam(param("a", "int"))
	c.AddBuilderParam("*B", decl.Method{Name: "b", Result: "*B", Params: []decl.Param{param("b", "string")}})
	c.AddConstructorParam(param("c", "bool"))

	assert.Equal(t, []string{"a", "c"}, rawNames(c.ConstructorParams()))
	assert.Equal(t, []string{"a", "b", "c"}, rawNames(c.Params()))
}

func TestCollector_DedupesMarkersOnAdmission(t *testing.T) {
	c := NewCollector(DefaultOptions())
	c.AddField(decl.Field{
		Name: "A", Type: "int",
		Markers: []decl.Marker{{Name: "omitempty"}, {Name: "omitempty"}, {Name: "since", Value: "2"}},
	})

	assert.Equal(t, []decl.Marker{{Name: "omitempty"}, {Name: "since", Value: "2"}}, c.Fields()[0].Tokens)
}

func TestCollector_CollectType_DeclarationOrder(t *testing.T) {
	typ := &decl.Type{
		ID:      decl.TypeID{Name: "Test"},
		Fields:  []decl.Field{field("Z", "int"), field("A", "int")},
		Methods: []decl.Method{getter("second", "int"), getter("first", "int")},
		Builder: &decl.Builder{
			Type:    "*Builder",
			Factory: decl.Factory{Name: "NewBuilder", Params: []decl.Param{param("req", "int")}},
			Methods: []decl.Method{
				{Name: "opt", Result: "*Builder", Params: []decl.Param{param("opt", "int")}},
				{Name: "Build", Result: "Test"},
			},
			Build: "Build",
		},
	}

	c := NewCollector(DefaultOptions())
	c.CollectType(typ)

	assert.Equal(t, []string{"Z", "A"}, rawNames(c.Fields()))
	assert.Equal(t, []string{"second", "first"}, rawNames(c.Getters()))
	assert.Equal(t, []string{"req"}, rawNames(c.ConstructorParams()))
	assert.Equal(t, []string{"opt"}, rawNames(c.BuilderParams()))
	assert.Equal(t, []string{"req", "opt"}, rawNames(c.Params()))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "field", KindField.String())
	assert.Equal(t, "getter", KindGetter.String())
	assert.Equal(t, "constructor-param", KindConstructorParam.String())
	assert.Equal(t, "builder-param", KindBuilderParam.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
