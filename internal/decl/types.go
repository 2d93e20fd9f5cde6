package decl

import (
	"errors"
	"fmt"
	"strings"

	"codec-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "codec-generator/examples/shapes"
	Name    string // e.g., "Point"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Visibility is the access level of a declaration.
type Visibility int

const (
	VisibilityPublic  Visibility = iota // exported
	VisibilityPackage                   // visible inside the declaring package only
	VisibilityPrivate                   // visible inside the declaring type only
)

// String returns a human-readable representation of the Visibility.
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityPackage:
		return "package"
	case VisibilityPrivate:
		return "private"
	default:
		return common.UnknownStr
	}
}

// ParseVisibility parses the textual form produced by Visibility.String.
// An empty string means public.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "public":
		return VisibilityPublic, nil
	case "package":
		return VisibilityPackage, nil
	case "private":
		return VisibilityPrivate, nil
	default:
		return VisibilityPublic, fmt.Errorf("unknown visibility %q", s)
	}
}

// Marker is an opaque metadata token attached to a declaration.
// Two markers are the same marker when both Name and Value are equal.
type Marker struct {
	Name  string
	Value string
}

// ParseMarker parses "name" or "name=value".
func ParseMarker(s string) Marker {
	name, value, _ := strings.Cut(strings.TrimSpace(s), "=")

	return Marker{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)}
}

// String returns "name" or "name=value".
func (m Marker) String() string {
	if m.Value == "" {
		return m.Name
	}

	return m.Name + "=" + m.Value
}

// Field is a struct field declaration.
type Field struct {
	Ref           Ref
	Name          string
	Type          string
	Visibility    Visibility
	Static        bool
	Transient     bool // excluded from serialization
	SerializeName string
	Markers       []Marker
}

// Param is a function or method parameter declaration.
type Param struct {
	Ref           Ref
	Name          string
	Type          string
	SerializeName string
	Markers       []Marker
}

// Method is a method declaration. Result is empty when the method
// produces no single value.
type Method struct {
	Ref           Ref
	Name          string
	Visibility    Visibility
	Static        bool
	Params        []Param
	Result        string
	SerializeName string
	Markers       []Marker
}

// Factory is a function producing a value: a constructor for the value
// type, or the factory returning a builder.
type Factory struct {
	Ref    Ref
	Name   string
	Params []Param
	// Pointer is true when the factory returns a pointer.
	Pointer bool
}

// Builder describes a builder-style factory for a value type.
type Builder struct {
	Ref Ref
	// Type is the builder's own type as written in method results (e.g. "*PointBuilder").
	Type    string
	Factory Factory
	Methods []Method
	// Build is the name of the terminal method producing the value.
	Build string
	// BuildPointer is true when Build returns a pointer to the value type.
	BuildPointer bool
}

// Import is a package referenced by declaration types.
type Import struct {
	Name string
	Path string
}

// Type is the snapshot of one value type's declarations.
type Type struct {
	ID      TypeID
	Ref     Ref
	PkgName string
	// Dir is the source directory of the declaring package, if known.
	Dir         string
	Fields      []Field
	Methods     []Method
	Constructor *Factory
	Builder     *Builder
	// SyntheticAccessors marks types whose positional accessors were
	// produced by a tool rather than written by hand.
	SyntheticAccessors bool
	Imports            []Import
}

// ErrAmbiguousCreator is returned by Validate when a type declares both a
// constructor and a builder.
var ErrAmbiguousCreator = errors.New("both constructor and builder declared")

// Validate checks structural consistency of the snapshot.
func (t *Type) Validate() error {
	if t.ID.Name == "" {
		return errors.New("type has no name")
	}

	if t.Constructor != nil && t.Builder != nil {
		return fmt.Errorf("%s: %w", t.ID, ErrAmbiguousCreator)
	}

	if t.Builder != nil && t.Builder.Type == "" {
		return fmt.Errorf("%s: builder has no type", t.ID)
	}

	return nil
}

// Snapshot is the introspector output for one load: the value types found
// and the table their declaration handles point into.
type Snapshot struct {
	Types []*Type
	Table *Table
}
