package names

import (
	"regexp"
	"slices"

	"codec-generator/internal/decl"
)

// Options tunes the admission filters and bean stripping.
type Options struct {
	// GetterPrefixes are the accessor prefixes removed by bean stripping.
	GetterPrefixes []string
	// SkipMethods are never treated as getters.
	SkipMethods []string
}

// DefaultOptions returns the default collector options.
func DefaultOptions() Options {
	return Options{
		GetterPrefixes: []string{"Get", "get", "Is", "is"},
		SkipMethods:    []string{"String", "GoString", "Hash", "HashCode", "Clone", "Error"},
	}
}

var syntheticAccessor = regexp.MustCompile(`^[cC]omponent[0-9]+$`)

// Collector accumulates the candidate properties of one type and
// reconciles them into the final property list.
//
// A Collector serves exactly one type and is not safe for concurrent use.
type Collector struct {
	opts Options

	fields            []*Name
	getters           []*Name
	constructorParams []*Name
	builderParams     []*Name
	// params is constructorParams and builderParams in admission order.
	params []*Name

	names    []*Name
	finished bool
}

// NewCollector creates an empty Collector.
func NewCollector(opts Options) *Collector {
	return &Collector{opts: opts}
}

// AddGetter admits m as a getter unless it cannot be a property read
// accessor of owner.
func (c *Collector) AddGetter(owner *decl.Type, m decl.Method) {
	if m.Visibility == decl.VisibilityPrivate ||
		m.Static ||
		m.Result == "" ||
		len(m.Params) > 0 ||
		c.isMethodToSkip(owner, m.Name) {
		return
	}

	c.getters = append(c.getters, newName(KindGetter, m.Name, m.Result, m.SerializeName, m.Markers, m.Ref))
}

// AddField admits f unless it is static.
func (c *Collector) AddField(f decl.Field) {
	if f.Static {
		return
	}

	n := newName(KindField, f.Name, f.Type, f.SerializeName, f.Markers, f.Ref)
	n.Visibility = f.Visibility
	n.Transient = f.Transient
	c.fields = append(c.fields, n)
}

// AddConstructorParam admits p.
func (c *Collector) AddConstructorParam(p decl.Param) {
	n := newName(KindConstructorParam, p.Name, p.Type, p.SerializeName, p.Markers, p.Ref)
	c.constructorParams = append(c.constructorParams, n)
	c.params = append(c.params, n)
}

// AddBuilderParam admits m when it is a fluent single-argument setter of
// builderType.
func (c *Collector) AddBuilderParam(builderType string, m decl.Method) {
	if m.Result != builderType || len(m.Params) != 1 {
		return
	}

	n := newName(KindBuilderParam, m.Name, m.Params[0].Type, m.SerializeName, m.Markers, m.Ref)
	c.builderParams = append(c.builderParams, n)
	c.params = append(c.params, n)
}

// CollectType feeds every declaration of t through the admission filters
// in declaration order.
func (c *Collector) CollectType(t *decl.Type) {
	for _, f := range t.Fields {
		c.AddField(f)
	}

	for _, m := range t.Methods {
		c.AddGetter(t, m)
	}

	if t.Constructor != nil {
		for _, p := range t.Constructor.Params {
			c.AddConstructorParam(p)
		}
	}

	if b := t.Builder; b != nil {
		for _, p := range b.Factory.Params {
			c.AddConstructorParam(p)
		}

		for _, m := range b.Methods {
			c.AddBuilderParam(b.Type, m)
		}
	}
}

func (c *Collector) isMethodToSkip(owner *decl.Type, name string) bool {
	if slices.Contains(c.opts.SkipMethods, name) {
		return true
	}

	return owner != nil && owner.SyntheticAccessors && syntheticAccessor.MatchString(name)
}

// Fields returns the admitted fields.
func (c *Collector) Fields() []*Name { return c.fields }

// Getters returns the admitted getters.
func (c *Collector) Getters() []*Name { return c.getters }

// ConstructorParams returns the admitted constructor parameters.
func (c *Collector) ConstructorParams() []*Name { return c.constructorParams }

// BuilderParams returns the admitted builder setters.
func (c *Collector) BuilderParams() []*Name { return c.builderParams }

// Params returns constructor parameters and builder setters in admission order.
func (c *Collector) Params() []*Name { return c.params }
