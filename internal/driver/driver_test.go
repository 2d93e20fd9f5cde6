package driver

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codec-generator/internal/decl"
	"codec-generator/internal/gen"
	"codec-generator/internal/names"
)

// snapshot builds n field-only types named T0..Tn-1 and registers every
// declaration in a table. Types at the indices in bad carry a serialize-name
// conflict.
func snapshot(n int, bad ...int) *decl.Snapshot {
	table := decl.NewTable()
	snap := &decl.Snapshot{Table: table}

	isBad := make(map[int]bool, len(bad))
	for _, i := range bad {
		isBad[i] = true
	}

	for i := range n {
		name := fmt.Sprintf("T%d", i)
		t := &decl.Type{
			ID:      decl.TypeID{PkgPath: "example.com/p", Name: name},
			PkgName: "p",
			Fields: []decl.Field{{
				Ref:           table.Add(decl.Entry{Kind: decl.DeclField, Owner: name, Name: "id", Pos: "p.go:1"}),
				Name:          "id",
				Type:          "int",
				Visibility:    decl.VisibilityPackage,
				SerializeName: "ident",
			}},
			Methods: []decl.Method{{
				Ref:    table.Add(decl.Entry{Kind: decl.DeclMethod, Owner: name, Name: "GetId", Pos: "p.go:2"}),
				Name:   "GetId",
				Result: "int",
			}},
		}

		if isBad[i] {
			t.Methods[0].SerializeName = "id"
		}

		snap.Types = append(snap.Types, t)
	}

	return snap
}

func TestDriver_Reconcile_KeepsOrder(t *testing.T) {
	snap := snapshot(50)
	d := New(Options{Jobs: 8, Names: names.DefaultOptions()})

	results, diags, err := d.Reconcile(context.Background(), snap)
	require.NoError(t, err)
	require.Len(t, results, 50)
	assert.Equal(t, 0, diags.Len())

	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("T%d", i), r.Type.ID.Name)
		require.NoError(t, r.Err)
		require.Len(t, r.Properties, 1)
		assert.Equal(t, "ident", r.Properties[0].JSONName())
	}
}

func TestDriver_Reconcile_KeepsGoingPastFailure(t *testing.T) {
	snap := snapshot(6, 1, 4)
	d := New(Options{Jobs: 3, Names: names.DefaultOptions()})

	results, diags, err := d.Reconcile(context.Background(), snap)
	require.NoError(t, err)
	require.Len(t, results, 6)

	for i, r := range results {
		if i == 1 || i == 4 {
			require.ErrorIs(t, r.Err, names.ErrDuplicateOverride)
			assert.Nil(t, r.Properties)

			continue
		}

		require.NoError(t, r.Err)
	}

	require.Len(t, diags.Errors, 2)

	first := diags.Errors[0]
	assert.Equal(t, names.CodeDuplicateOverride, first.Code)
	assert.Equal(t, "example.com/p.T1", first.TypeName)
	assert.Equal(t, "id", first.Property)
	assert.Equal(t, []string{"method T1.GetId (p.go:2)", "field T1.id (p.go:1)"}, first.Locations)
	assert.Equal(t, "example.com/p.T4", diags.Errors[1].TypeName)
}

func TestDriver_Reconcile_WriteOnlyWarning(t *testing.T) {
	snap := &decl.Snapshot{Types: []*decl.Type{{
		ID: decl.TypeID{Name: "W"},
		Constructor: &decl.Factory{
			Name:   "NewW",
			Params: []decl.Param{{Name: "secret", Type: "string"}},
		},
	}}}

	_, diags, err := New(Options{}).Reconcile(context.Background(), snap)
	require.NoError(t, err)
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, CodeWriteOnly, diags.Warnings[0].Code)
	assert.Equal(t, "secret", diags.Warnings[0].Property)
}

func TestDriver_Reconcile_NoPropertiesInfo(t *testing.T) {
	snap := &decl.Snapshot{Types: []*decl.Type{{
		ID:      decl.TypeID{Name: "Marker"},
		Methods: []decl.Method{{Name: "String", Result: "string"}},
	}}}

	results, diags, err := New(Options{Names: names.DefaultOptions()}).Reconcile(context.Background(), snap)
	require.NoError(t, err)
	require.NoError(t, results[0].Err)
	assert.False(t, diags.HasErrors())
	require.Len(t, diags.Infos, 1)
	assert.Equal(t, CodeNoProperties, diags.Infos[0].Code)
	assert.Equal(t, "Marker", diags.Infos[0].TypeName)
}

func TestDriver_Reconcile_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := New(Options{Jobs: 2}).Reconcile(ctx, snapshot(4))
	require.ErrorIs(t, err, context.Canceled)
}

func TestDriver_Reconcile_Empty(t *testing.T) {
	results, diags, err := New(Options{}).Reconcile(context.Background(), &decl.Snapshot{})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, diags.Len())
}

func TestDriver_Logs(t *testing.T) {
	var buf bytes.Buffer

	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	_, _, err := New(Options{Jobs: 1, Names: names.DefaultOptions(), Logger: logger}).
		Reconcile(context.Background(), snapshot(2, 1))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "reconciled")
	assert.Contains(t, out, "reconciliation failed")
}

func TestDriver_Generate(t *testing.T) {
	dir := t.TempDir()
	snap := snapshot(3, 1)

	for _, typ := range snap.Types {
		typ.Dir = dir
	}

	d := New(Options{Jobs: 2, Names: names.DefaultOptions()})

	results, _, err := d.Reconcile(context.Background(), snap)
	require.NoError(t, err)

	files, diags, err := d.Generate(context.Background(), gen.NewGenerator(gen.DefaultGeneratorConfig()), results)
	require.NoError(t, err)
	assert.Equal(t, 0, diags.Len())

	require.Len(t, files, 2)
	assert.Equal(t, "t0_codec.go", files[0].Filename)
	assert.Equal(t, "t2_codec.go", files[1].Filename)
	assert.Contains(t, string(files[0].Content), "func (v *T0) MarshalJSON() ([]byte, error) {")
}

func TestDriver_Generate_ReportsFailures(t *testing.T) {
	results := []Result{{
		Type: &decl.Type{
			ID:          decl.TypeID{Name: "Both"},
			PkgName:     "p",
			Dir:         t.TempDir(),
			Constructor: &decl.Factory{Name: "NewBoth"},
			Builder:     &decl.Builder{Type: "*BothBuilder", Factory: decl.Factory{Name: "NewBothBuilder", Pointer: true}},
		},
	}}

	files, diags, err := New(Options{}).Generate(context.Background(), gen.NewGenerator(gen.DefaultGeneratorConfig()), results)
	require.NoError(t, err)
	assert.Empty(t, files)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, CodeGenerate, diags.Errors[0].Code)
	assert.Contains(t, diags.Errors[0].Message, "both constructor and builder declared")
}
