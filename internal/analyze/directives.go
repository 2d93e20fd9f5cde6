package analyze

import (
	"go/ast"
	"go/token"
	"slices"
	"strings"

	"codec-generator/internal/decl"
	"codec-generator/internal/suggest"
)

// Directive verbs.
const (
	verbValue       = "value"
	verbConstructor = "constructor"
	verbBuilder     = "builder"
	verbName        = "name"
	verbToken       = "token"
	verbParam       = "param"
)

// directive is one "//prefix:verb args..." comment line.
type directive struct {
	verb string
	args []string
	pos  token.Pos
}

// directives extracts the directives of doc in order.
func (in *Introspector) directives(doc *ast.CommentGroup) []directive {
	if doc == nil {
		return nil
	}

	marker := "//" + in.opts.DirectivePrefix + ":"

	var out []directive

	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, marker)
		if !ok {
			continue
		}

		parts := strings.Fields(rest)
		if len(parts) == 0 {
			continue
		}

		out = append(out, directive{verb: parts[0], args: parts[1:], pos: c.Slash})
	}

	return out
}

// DirectiveUse is a directive line found in a doc comment.
type DirectiveUse struct {
	Verb string
	Pos  token.Pos
}

// Directives lists the directive lines of doc in order.
func (in *Introspector) Directives(doc *ast.CommentGroup) []DirectiveUse {
	dirs := in.directives(doc)
	out := make([]DirectiveUse, 0, len(dirs))

	for _, d := range dirs {
		out = append(out, DirectiveUse{Verb: d.verb, Pos: d.pos})
	}

	return out
}

// KnownVerbs lists the recognized directive verbs.
func KnownVerbs() []string {
	return []string{verbValue, verbConstructor, verbBuilder, verbName, verbToken, verbParam}
}

// IsKnownVerb reports whether verb is a recognized directive verb.
func IsKnownVerb(verb string) bool {
	return slices.Contains(KnownVerbs(), verb)
}

// IsFactoryVerb reports whether verb marks a package-level factory function.
func IsFactoryVerb(verb string) bool {
	return verb == verbConstructor || verb == verbBuilder
}

func hasVerb(dirs []directive, verb string) bool {
	for _, d := range dirs {
		if d.verb == verb {
			return true
		}
	}

	return false
}

// memberMeta is the override metadata directives attach to one declaration.
type memberMeta struct {
	serializeName string
	markers       []decl.Marker
}

// memberDirectives reads name and token directives.
func memberDirectives(dirs []directive) (memberMeta, []Problem) {
	var (
		meta     memberMeta
		problems []Problem
	)

	for _, d := range dirs {
		switch d.verb {
		case verbName:
			if len(d.args) != 1 {
				problems = append(problems, Problem{Pos: d.pos, Message: "name directive takes exactly one argument"})
				continue
			}

			meta.serializeName = d.args[0]
		case verbToken:
			for _, a := range d.args {
				meta.markers = append(meta.markers, decl.ParseMarker(a))
			}
		}
	}

	return meta, problems
}

// paramDirectives reads "param <p> name <n>" and "param <p> token <t>..."
// directives keyed by parameter name.
func paramDirectives(dirs []directive) (map[string]memberMeta, []Problem) {
	var problems []Problem

	out := make(map[string]memberMeta)

	for _, d := range dirs {
		if d.verb != verbParam {
			continue
		}

		if len(d.args) < 3 {
			problems = append(problems, Problem{Pos: d.pos, Message: "param directive needs a parameter, a verb and a value"})
			continue
		}

		name, verb, values := d.args[0], d.args[1], d.args[2:]
		meta := out[name]

		switch verb {
		case verbName:
			meta.serializeName = values[0]
		case verbToken:
			for _, v := range values {
				meta.markers = append(meta.markers, decl.ParseMarker(v))
			}
		default:
			problems = append(problems, Problem{Pos: d.pos, Message: "unknown param directive verb " + verb +
				suggest.Hint(verb, []string{verbName, verbToken})})
			continue
		}

		out[name] = meta
	}

	return out, problems
}
