package analyze

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codec-generator/internal/decl"
)

// introspectSource type-checks a single-file package without imports.
func introspectSource(t *testing.T, src string) ([]*decl.Type, []string, *Introspector) {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "src.go", src, parser.ParseComments)
	require.NoError(t, err)

	info := &types.Info{
		Defs: make(map[*ast.Ident]types.Object),
		Uses: make(map[*ast.Ident]types.Object),
	}

	pkg, err := (&types.Config{}).Check("example.com/p", fset, []*ast.File{file}, info)
	require.NoError(t, err)

	in := NewIntrospector(fset, DefaultOptions())
	typs, problems := in.Package(pkg, []*ast.File{file}, info, "/tmp/p")

	var msgs []string
	for _, p := range problems {
		msgs = append(msgs, in.Format(p))
	}

	return typs, msgs, in
}

func TestIntrospector_ParamDirectives(t *testing.T) {
	typs, problems, _ := introspectSource(t, `package p

type T struct{ A int }

// NewT builds a T.
//
//codec:constructor
//codec:param a name alpha
//codec:param a token omitempty since=2
func NewT(a int) *T { return &T{A: a} }
`)
	require.Empty(t, problems)
	require.Len(t, typs, 1)

	p := typs[0].Constructor.Params[0]
	assert.Equal(t, "alpha", p.SerializeName)
	assert.Equal(t, []decl.Marker{{Name: "omitempty"}, {Name: "since", Value: "2"}}, p.Markers)
	assert.Equal(t, "/tmp/p", typs[0].Dir)
}

func TestIntrospector_MethodDirectives(t *testing.T) {
	typs, problems, in := introspectSource(t, `package p

//codec:value
type T struct{ n int }

//codec:name count
//codec:token omitempty
func (t T) GetN() int { return t.n }

func (t *T) Pair() (int, error) { return t.n, nil }

func (t T) hidden() int { return t.n }
`)
	require.Empty(t, problems)
	require.Len(t, typs, 1)

	methods := typs[0].Methods
	require.Len(t, methods, 3)
	assert.Equal(t, "count", methods[0].SerializeName)
	assert.Equal(t, []decl.Marker{{Name: "omitempty"}}, methods[0].Markers)
	assert.Empty(t, methods[1].Result, "multi-result methods have no single value")
	assert.Equal(t, decl.VisibilityPackage, methods[2].Visibility)

	assert.Equal(t, 8, in.fset.Position(in.Pos(methods[0].Ref)).Line)
}

func TestIntrospector_Problems(t *testing.T) {
	typs, problems, _ := introspectSource(t, `package p

//codec:value
type NotStruct int

type T struct{ A int }

//codec:constructor
//codec:param missing name x
func NewT(a int) *T { return &T{A: a} }

//codec:constructor
func OtherT() T { return T{} }

//codec:constructor
func Number() int { return 0 }

//codec:builder
func NewB() *B { return &B{} }

type B struct{}

//codec:value
type G[X any] struct{ v X }
`)
	require.Len(t, typs, 1)
	assert.Equal(t, "T", typs[0].ID.Name)

	require.Len(t, problems, 6)
	assert.Contains(t, problems[0], "T already has constructor NewT")
	assert.Contains(t, problems[1], "constructor Number must return a single local struct type")
	assert.Contains(t, problems[2], "builder type B has no Build method")
	assert.Contains(t, problems[3], "NotStruct is not a struct type")
	assert.Contains(t, problems[4], "NewT has no parameter missing")
	assert.Contains(t, problems[5], "G is generic")
}

func TestIntrospector_ConstructorAndBuilderConflict(t *testing.T) {
	_, problems, _ := introspectSource(t, `package p

type T struct{ A int }

//codec:constructor
func NewT(a int) T { return T{A: a} }

type TB struct{ a int }

//codec:builder
func NewTB() *TB { return &TB{} }

func (b *TB) Build() T { return T{A: b.a} }
`)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "T: both constructor and builder declared")
	assert.Contains(t, problems[0], "src.go:11")
}

func TestApplyJSONTag(t *testing.T) {
	tests := []struct {
		tag       string
		name      string
		transient bool
		markers   []decl.Marker
	}{
		{``, "", false, nil},
		{`json:"-"`, "", true, nil},
		{`json:"-,"`, "-", false, nil},
		{`json:"id"`, "id", false, nil},
		{`json:",omitempty"`, "", false, []decl.Marker{{Name: "omitempty"}}},
		{`json:"n,omitempty,string"`, "n", false, []decl.Marker{{Name: "omitempty"}, {Name: "string"}}},
		{`yaml:"y"`, "", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			var f decl.Field
			applyJSONTag(&f, reflect.StructTag(tt.tag))

			assert.Equal(t, tt.name, f.SerializeName)
			assert.Equal(t, tt.transient, f.Transient)
			assert.Equal(t, tt.markers, f.Markers)
		})
	}
}

func TestIntrospector_ParamHints(t *testing.T) {
	_, problems, _ := introspectSource(t, `package p

type T struct{ A int }

//codec:constructor
//codec:param alph name a
//codec:param alpha nmae b
func NewT(alpha int) T { return T{A: alpha} }
`)
	require.Len(t, problems, 2)

	all := strings.Join(problems, "\n")
	assert.Contains(t, all, "unknown param directive verb nmae")
	assert.NotContains(t, all, "verb nmae;")
	assert.Contains(t, all, "NewT has no parameter alph; did you mean alpha?")
}

func TestIntrospector_SkipsCodecMethods(t *testing.T) {
	typs, problems, _ := introspectSource(t, `package p

//codec:value
type T struct{ n int }

func (t T) GetN() int { return t.n }

func (t T) MarshalJSON() ([]byte, error) { return nil, nil }

func (t *T) UnmarshalJSON(data []byte) error { return nil }
`)
	require.Empty(t, problems)
	require.Len(t, typs, 1)
	require.Len(t, typs[0].Methods, 1)
	assert.Equal(t, "GetN", typs[0].Methods[0].Name)
}
