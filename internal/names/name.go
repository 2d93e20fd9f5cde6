package names

import (
	"slices"

	"codec-generator/internal/decl"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind is the declaration variant a Name was collected from.
type Kind int

const (
	KindField            Kind = iota // field
	KindGetter                       // getter
	KindConstructorParam             // constructor-param
	KindBuilderParam                 // builder-param
)

// Name is one declaration of a candidate property.
type Name struct {
	Kind Kind
	// Raw is the identifier as declared.
	Raw string
	// Key associates Names across variants. It equals Raw except for
	// stripped getters.
	Key string
	// SerializeName overrides the external property name when non-empty.
	SerializeName string
	// Tokens are unique by marker identity.
	Tokens []decl.Marker
	// Origin points back at the declaration, for diagnostics only.
	Origin decl.Ref

	// Type is the declared value type: field type, getter result,
	// parameter type, or the setter's argument type.
	Type string
	// Visibility and Transient are meaningful for fields only.
	Visibility decl.Visibility
	Transient  bool
}

func newName(kind Kind, raw, typ, serializeName string, markers []decl.Marker, origin decl.Ref) *Name {
	return &Name{
		Kind:          kind,
		Raw:           raw,
		Key:           raw,
		SerializeName: serializeName,
		Tokens:        uniqueMarkers(markers),
		Origin:        origin,
		Type:          typ,
	}
}

// ExternalName returns SerializeName, falling back to Key.
func (n *Name) ExternalName() string {
	if n.SerializeName != "" {
		return n.SerializeName
	}

	return n.Key
}

// HasToken reports whether the Name carries a marker with the given name.
func (n *Name) HasToken(name string) bool {
	return slices.ContainsFunc(n.Tokens, func(m decl.Marker) bool { return m.Name == name })
}

func (n *Name) String() string {
	return n.Kind.String() + " " + n.Raw
}

// uniqueMarkers copies markers dropping repeats, keeping first occurrence.
func uniqueMarkers(markers []decl.Marker) []decl.Marker {
	if len(markers) == 0 {
		return nil
	}

	out := make([]decl.Marker, 0, len(markers))
	for _, m := range markers {
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}

	return out
}

// findName returns the first Name in list with the given key.
func findName(list []*Name, key string) *Name {
	for _, n := range list {
		if n.Key == key {
			return n
		}
	}

	return nil
}

func containsKey(list []*Name, key string) bool {
	return findName(list, key) != nil
}
