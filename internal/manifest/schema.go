package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is the root of a declarations manifest.
type File struct {
	// Version of the manifest schema (for future compatibility).
	Version string `yaml:"version,omitempty"`
	// Package is the import path recorded on every type.
	Package string `yaml:"package,omitempty"`
	// Name is the package name; defaults to the last element of Package.
	Name string `yaml:"name,omitempty"`
	// Dir is the package directory generated code is written to.
	Dir   string     `yaml:"dir,omitempty"`
	Types []TypeSpec `yaml:"types"`
}

// TypeSpec declares one value type.
type TypeSpec struct {
	Name               string       `yaml:"name"`
	SyntheticAccessors bool         `yaml:"synthetic_accessors,omitempty"`
	Fields             []FieldSpec  `yaml:"fields,omitempty"`
	Methods            []MethodSpec `yaml:"methods,omitempty"`
	Constructor        *FactorySpec `yaml:"constructor,omitempty"`
	Builder            *BuilderSpec `yaml:"builder,omitempty"`
	Imports            []ImportSpec `yaml:"imports,omitempty"`

	Line int `yaml:"-"`
}

// FieldSpec declares a struct field.
type FieldSpec struct {
	Name       string    `yaml:"name"`
	Type       string    `yaml:"type,omitempty"`
	Visibility string    `yaml:"visibility,omitempty"`
	Static     bool      `yaml:"static,omitempty"`
	Transient  bool      `yaml:"transient,omitempty"`
	JSON       string    `yaml:"json,omitempty"`
	Tokens     TokenList `yaml:"tokens,omitempty"`

	Line int `yaml:"-"`
}

// MethodSpec declares a method. Result is empty for methods that produce
// no single value.
type MethodSpec struct {
	Name       string      `yaml:"name"`
	Result     string      `yaml:"result,omitempty"`
	Visibility string      `yaml:"visibility,omitempty"`
	Static     bool        `yaml:"static,omitempty"`
	Params     []ParamSpec `yaml:"params,omitempty"`
	JSON       string      `yaml:"json,omitempty"`
	Tokens     TokenList   `yaml:"tokens,omitempty"`

	Line int `yaml:"-"`
}

// ParamSpec declares a parameter.
type ParamSpec struct {
	Name   string    `yaml:"name"`
	Type   string    `yaml:"type,omitempty"`
	JSON   string    `yaml:"json,omitempty"`
	Tokens TokenList `yaml:"tokens,omitempty"`

	Line int `yaml:"-"`
}

// FactorySpec declares a constructor or a builder factory.
type FactorySpec struct {
	Name    string      `yaml:"name"`
	Pointer bool        `yaml:"pointer,omitempty"`
	Params  []ParamSpec `yaml:"params,omitempty"`

	Line int `yaml:"-"`
}

// BuilderSpec declares a builder.
type BuilderSpec struct {
	Type         string       `yaml:"type"`
	Factory      FactorySpec  `yaml:"factory"`
	Methods      []MethodSpec `yaml:"methods,omitempty"`
	Build        string       `yaml:"build,omitempty"`
	BuildPointer bool         `yaml:"build_pointer,omitempty"`
}

// ImportSpec is a package referenced from declared types.
type ImportSpec struct {
	Name string `yaml:"name,omitempty"`
	Path string `yaml:"path"`
}

// TokenList is a list of metadata tokens ("name" or "name=value") that can
// be written as a single string or a list.
type TokenList []string

// UnmarshalYAML implements custom YAML unmarshaling for TokenList.
func (s *TokenList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*s = TokenList{str}
		} else {
			*s = TokenList{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected token or list of tokens", node.Line)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise a list.
func (s TokenList) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// The declaration entries remember the line they were read from so that
// reconciliation errors can point into the manifest.

func (t *TypeSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain TypeSpec
	if err := node.Decode((*plain)(t)); err != nil {
		return err
	}

	t.Line = node.Line

	return nil
}

func (f *FieldSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain FieldSpec
	if err := node.Decode((*plain)(f)); err != nil {
		return err
	}

	f.Line = node.Line

	return nil
}

func (m *MethodSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain MethodSpec
	if err := node.Decode((*plain)(m)); err != nil {
		return err
	}

	m.Line = node.Line

	return nil
}

func (p *ParamSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain ParamSpec
	if err := node.Decode((*plain)(p)); err != nil {
		return err
	}

	p.Line = node.Line

	return nil
}

func (f *FactorySpec) UnmarshalYAML(node *yaml.Node) error {
	type plain FactorySpec
	if err := node.Decode((*plain)(f)); err != nil {
		return err
	}

	f.Line = node.Line

	return nil
}
