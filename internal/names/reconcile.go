package names

import (
	"errors"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"codec-generator/internal/common"
	"codec-generator/internal/decl"
)

// ErrFinished is returned when Finish is called twice.
var ErrFinished = errors.New("collector already finished")

// Finish reconciles the collected declarations and assembles the final
// property list. The passes run in a fixed order; each sees the lists left
// by the previous one. On error no property list is produced.
func (c *Collector) Finish() error {
	if c.finished {
		return ErrFinished
	}

	c.finished = true

	c.stripBeans()
	c.removeExtraBuilders()
	c.removeGettersForTransientFields()

	if err := c.mergeMetadata(); err != nil {
		return err
	}

	c.removeExtraFields()
	c.assemble()

	return nil
}

// stripBeans rewrites getter keys only when every getter follows the
// accessor-prefix convention.
func (c *Collector) stripBeans() {
	keys := make([]string, len(c.getters))

	for i, g := range c.getters {
		key, ok := c.beanKey(g.Raw)
		if !ok {
			return
		}

		keys[i] = key
	}

	for i, g := range c.getters {
		g.Key = keys[i]
	}
}

// beanKey strips an accessor prefix followed by an upper-case letter and
// lower-cases the first letter of the remainder.
func (c *Collector) beanKey(raw string) (string, bool) {
	for _, prefix := range c.opts.GetterPrefixes {
		rest, ok := strings.CutPrefix(raw, prefix)
		if !ok || rest == "" {
			continue
		}

		if r, _ := utf8.DecodeRuneInString(rest); unicode.IsUpper(r) {
			return common.LowerFirst(rest), true
		}
	}

	return "", false
}

// removeExtraBuilders drops builder setters already supplied through the
// constructor path.
func (c *Collector) removeExtraBuilders() {
	redundant := func(n *Name) bool {
		return n.Kind == KindBuilderParam && containsKey(c.constructorParams, n.Key)
	}

	c.builderParams = slices.DeleteFunc(c.builderParams, redundant)
	c.params = slices.DeleteFunc(c.params, redundant)
}

func (c *Collector) removeGettersForTransientFields() {
	c.getters = slices.DeleteFunc(c.getters, func(g *Name) bool {
		f := findName(c.fields, g.Key)

		return f != nil && f.Transient
	})
}

// mergeGroup is every declaration sharing one key, in merge order:
// params first, then the field, then the getter.
type mergeGroup struct {
	members       []*Name
	serializeName string
	tokens        []decl.Marker
}

// mergeMetadata unifies serialize names and tokens for each key present in
// params, and for each key shared by a field and a getter. All groups are
// checked before any Name is modified.
func (c *Collector) mergeMetadata() error {
	fields := indexByKey(c.fields)
	getters := indexByKey(c.getters)

	var (
		groups []*mergeGroup
		byKey  = make(map[string]*mergeGroup)
	)

	for _, p := range c.params {
		if g, ok := byKey[p.Key]; ok {
			g.members = append(g.members, p)
			continue
		}

		g := &mergeGroup{members: []*Name{p}}
		byKey[p.Key] = g
		groups = append(groups, g)
	}

	for _, g := range groups {
		key := g.members[0].Key

		if f, ok := fields[key]; ok {
			g.members = append(g.members, f)
		}

		if gt, ok := getters[key]; ok {
			g.members = append(g.members, gt)
		}
	}

	// Keys with no param still merge a field into its getter.
	for _, f := range c.fields {
		gt, ok := getters[f.Key]
		if _, grouped := byKey[f.Key]; grouped || !ok {
			continue
		}

		g := &mergeGroup{members: []*Name{f, gt}}
		byKey[f.Key] = g
		groups = append(groups, g)
	}

	for _, g := range groups {
		if err := g.resolve(); err != nil {
			return err
		}
	}

	for _, g := range groups {
		g.apply()
	}

	return nil
}

func (g *mergeGroup) resolve() error {
	var named *Name

	owners := make(map[decl.Marker]*Name)

	for _, n := range g.members {
		if n.SerializeName != "" {
			if named != nil {
				return duplicateOverride(n, named)
			}

			named = n
			g.serializeName = n.SerializeName
		}

		for _, m := range n.Tokens {
			if prev, ok := owners[m]; ok {
				return duplicateToken(n, m, prev)
			}

			owners[m] = n
			g.tokens = append(g.tokens, m)
		}
	}

	return nil
}

func (g *mergeGroup) apply() {
	for _, n := range g.members {
		if g.serializeName != "" {
			n.SerializeName = g.serializeName
		}

		if len(g.tokens) > 0 {
			n.Tokens = slices.Clone(g.tokens)
		}
	}
}

// removeExtraFields drops fields that are not public, are transient, or
// are read through a getter.
func (c *Collector) removeExtraFields() {
	c.fields = slices.DeleteFunc(c.fields, func(f *Name) bool {
		return f.Visibility != decl.VisibilityPublic ||
			f.Transient ||
			containsKey(c.getters, f.Key)
	})
}

// indexByKey maps each key to the first Name declaring it.
func indexByKey(list []*Name) map[string]*Name {
	idx := make(map[string]*Name, len(list))
	for _, n := range list {
		if _, ok := idx[n.Key]; !ok {
			idx[n.Key] = n
		}
	}

	return idx
}
