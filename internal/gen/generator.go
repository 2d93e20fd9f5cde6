package gen

import (
	"bytes"
	"fmt"
	"text/template"

	"golang.org/x/tools/imports"

	"codec-generator/internal/common"
	"codec-generator/internal/decl"
	"codec-generator/internal/names"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// FileSuffix is appended to the snake_case type name to form the filename.
	FileSuffix string
	// OutputDir overrides the type's package directory when non-empty.
	OutputDir string
	// GenerateComments enables doc comments on generated methods.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		FileSuffix:       "_codec.go",
		GenerateComments: true,
	}
}

// Generator emits codec files for reconciled value types.
// It holds no per-run state and is safe for concurrent use.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.FileSuffix == "" {
		config.FileSuffix = DefaultGeneratorConfig().FileSuffix
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory the file belongs in.
	Dir string
	// Filename is the name of the file (e.g., "point_codec.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Unit is one value type together with its reconciled properties.
type Unit struct {
	Type       *decl.Type
	Properties []names.Property
}

// Generate generates one file per unit, in unit order.
func (g *Generator) Generate(units []Unit) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(units))

	for _, u := range units {
		file, err := g.GenerateType(u.Type, u.Properties)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", u.Type.ID, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// GenerateType emits the codec file for t.
func (g *Generator) GenerateType(t *decl.Type, props []names.Property) (*GeneratedFile, error) {
	data, err := g.buildTemplateData(t, props)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := codecTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	file := &GeneratedFile{Dir: g.outputDir(t), Filename: data.Filename}

	formatted, err := imports.Process(file.Path(), buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		if file.Dir != "" {
			_ = writeDebugUnformatted(file.Dir, file.Filename, buf.Bytes())
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	file.Content = formatted

	return file, nil
}

func (g *Generator) outputDir(t *decl.Type) string {
	if g.config.OutputDir != "" {
		return g.config.OutputDir
	}

	return t.Dir
}

func (g *Generator) filename(t *decl.Type) string {
	return common.SnakeCase(t.ID.Name) + g.config.FileSuffix
}

// Template for the codec file

var codecTemplate = template.Must(template.New("codec").Parse(`// Code generated by codec-generator. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{if .GenerateComments}}
// MarshalJSON encodes {{.TypeName}} as a JSON object.
{{end}}func (v {{.TypeName}}) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')
{{range .Reads}}
{{if .OmitEmpty}}	if val := {{.Expr}}; !reflect.ValueOf(&val).Elem().IsZero() {
{{else}}	{
		val := {{.Expr}}
{{end}}		b, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", {{.NameLit}}, err)
		}

		if buf.Len() > 1 {
			buf.WriteByte(',')
		}

		buf.WriteString({{.KeyLit}})
		buf.Write(b)
	}
{{end}}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}
{{if .GenerateComments}}
// UnmarshalJSON decodes a JSON object into {{.TypeName}}. Unknown names are ignored.
{{end}}func (v *{{.TypeName}}) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
{{if .Args}}
	var (
{{range .Args}}		{{.Var}} {{.Type}}
{{end}}	)
{{range .Args}}
	if msg, ok := raw[{{.NameLit}}]; ok {
		if err := json.Unmarshal(msg, &{{.Var}}); err != nil {
			return fmt.Errorf("unmarshal %s: %w", {{.NameLit}}, err)
		}
	}
{{end}}{{end}}
{{if .Builder}}	b := {{.Builder.Init}}
{{range .Builder.Setters}}
	if _, ok := raw[{{.NameLit}}]; ok {
		b = b.{{.Method}}({{.Var}})
	}
{{end}}
	out := {{.Builder.Build}}
{{else if .Create}}	out := {{.Create}}
{{else}}	var out {{.TypeName}}
{{end}}{{range .Assigns}}
	if msg, ok := raw[{{.NameLit}}]; ok {
		if err := json.Unmarshal(msg, &out.{{.Field}}); err != nil {
			return fmt.Errorf("unmarshal %s: %w", {{.NameLit}}, err)
		}
	}
{{end}}
	*v = out

	return nil
}
`))
