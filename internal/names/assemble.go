package names

import (
	"codec-generator/internal/decl"
)

// assemble builds the final list: params, then fields, then getters, each
// key appearing at most once after the params group.
func (c *Collector) assemble() {
	seen := make(map[string]bool, len(c.params)+len(c.fields)+len(c.getters))
	out := make([]*Name, 0, len(c.params)+len(c.fields)+len(c.getters))

	for _, p := range c.params {
		out = append(out, p)
		seen[p.Key] = true
	}

	for _, group := range [][]*Name{c.fields, c.getters} {
		for _, n := range group {
			if seen[n.Key] {
				continue
			}

			out = append(out, n)
			seen[n.Key] = true
		}
	}

	c.names = out
}

// Names returns the final ordered list. It is nil until Finish succeeds.
func (c *Collector) Names() []*Name {
	return c.names
}

// Property is the emitter view of one final property: the Name it was
// listed under plus every surviving declaration sharing its key.
type Property struct {
	Name *Name

	Getter           *Name
	Field            *Name
	ConstructorParam *Name
	BuilderParam     *Name
}

// Key returns the property key.
func (p Property) Key() string { return p.Name.Key }

// JSONName returns the external property name.
func (p Property) JSONName() string { return p.Name.ExternalName() }

// Tokens returns the merged metadata tokens.
func (p Property) Tokens() []decl.Marker { return p.Name.Tokens }

// HasToken reports whether the property carries the named marker.
func (p Property) HasToken(name string) bool { return p.Name.HasToken(name) }

// Readable reports whether a value can be read from an instance.
func (p Property) Readable() bool { return p.Getter != nil || p.Field != nil }

// Writable reports whether a decoded value has a path into a new instance.
func (p Property) Writable() bool {
	return p.ConstructorParam != nil || p.BuilderParam != nil || p.Field != nil
}

// Sources lists the kinds of declarations backing the property.
func (p Property) Sources() []Kind {
	var kinds []Kind

	for _, n := range []*Name{p.ConstructorParam, p.BuilderParam, p.Field, p.Getter} {
		if n != nil {
			kinds = append(kinds, n.Kind)
		}
	}

	return kinds
}

// Properties returns one Property per distinct key of the final list, in
// list order. It is nil until Finish succeeds.
func (c *Collector) Properties() []Property {
	if c.names == nil {
		return nil
	}

	props := make([]Property, 0, len(c.names))
	seen := make(map[string]bool, len(c.names))

	for _, n := range c.names {
		if seen[n.Key] {
			continue
		}

		seen[n.Key] = true
		props = append(props, Property{
			Name:             n,
			Getter:           findName(c.getters, n.Key),
			Field:            findName(c.fields, n.Key),
			ConstructorParam: findName(c.constructorParams, n.Key),
			BuilderParam:     findName(c.builderParams, n.Key),
		})
	}

	return props
}

// Reconcile collects t, runs the reconciliation passes and returns the
// property list.
func Reconcile(t *decl.Type, opts Options) ([]Property, error) {
	c := NewCollector(opts)
	c.CollectType(t)

	if err := c.Finish(); err != nil {
		return nil, err
	}

	return c.Properties(), nil
}
