// Package lint implements a go/analysis analyzer that reconciles every value
// type in a package and reports conflicts at the declaration where they were
// detected, so editors and go vet can show them before generation runs.
//
// It also reports directive misuse that the generator would silently
// ignore: unknown verbs, factory directives on methods, and directives on
// struct fields.
package lint

import (
	"errors"
	"fmt"
	"go/ast"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"codec-generator/internal/analyze"
	"codec-generator/internal/decl"
	"codec-generator/internal/names"
	"codec-generator/internal/suggest"
)

// Diagnostic category constants. Reconciliation conflicts use the
// reconciliation error code as their category.
const (
	CategoryDeclaration = "declaration"
	CategoryDirective   = "directive"
)

// Flag binding variables, read once per run via newRunConfig.
var (
	directivePrefix string
	getterPrefixes  string
	skipMethods     string
)

// Analyzer is the codec-lint analysis pass. Use it with singlechecker
// or multichecker, or via go vet -vettool.
var Analyzer = &analysis.Analyzer{
	Name:     "codeclint",
	Doc:      "reports codec property conflicts and misplaced codec directives",
	Run:      run,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

func init() {
	Analyzer.Flags.StringVar(&directivePrefix, "directive-prefix", analyze.DefaultOptions().DirectivePrefix,
		"comment prefix of codec directives")
	Analyzer.Flags.StringVar(&getterPrefixes, "getter-prefixes", strings.Join(names.DefaultOptions().GetterPrefixes, ","),
		"comma-separated getter prefixes stripped from accessor names")
	Analyzer.Flags.StringVar(&skipMethods, "skip-methods", strings.Join(names.DefaultOptions().SkipMethods, ","),
		"comma-separated method names never treated as getters")
}

// runConfig holds the resolved flag values for a single run() invocation.
type runConfig struct {
	analyze analyze.Options
	names   names.Options
}

func newRunConfig() runConfig {
	aopts := analyze.DefaultOptions()
	aopts.DirectivePrefix = directivePrefix

	return runConfig{
		analyze: aopts,
		names: names.Options{
			GetterPrefixes: splitList(getterPrefixes),
			SkipMethods:    splitList(skipMethods),
		},
	}
}

func run(pass *analysis.Pass) (any, error) {
	rc := newRunConfig()
	in := analyze.NewIntrospector(pass.Fset, rc.analyze)

	typs, problems := in.Package(pass.Pkg, pass.Files, pass.TypesInfo, "")
	for _, p := range problems {
		pass.Report(analysis.Diagnostic{Pos: p.Pos, Category: CategoryDeclaration, Message: p.Message})
	}

	for _, t := range typs {
		reportConflicts(pass, in, t, rc.names)
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	checkDirectives(pass, in, insp)

	return nil, nil
}

func reportConflicts(pass *analysis.Pass, in *analyze.Introspector, t *decl.Type, opts names.Options) {
	_, err := names.Reconcile(t, opts)
	if err == nil {
		return
	}

	var ee *names.ElementError
	if !errors.As(err, &ee) {
		pass.Report(analysis.Diagnostic{Pos: in.Pos(t.Ref), Category: CategoryDeclaration, Message: t.ID.Name + ": " + err.Error()})
		return
	}

	d := analysis.Diagnostic{
		Pos:      in.Pos(ee.Conflict),
		Category: ee.Code,
		Message:  fmt.Sprintf("%s: %s", t.ID.Name, ee.Message),
	}

	if prev := in.Pos(ee.Previous); prev.IsValid() {
		d.Related = []analysis.RelatedInformation{{Pos: prev, Message: "previously declared here"}}
	}

	pass.Report(d)
}

// checkDirectives reports directives the generator ignores.
func checkDirectives(pass *analysis.Pass, in *analyze.Introspector, insp *inspector.Inspector) {
	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
		(*ast.GenDecl)(nil),
		(*ast.TypeSpec)(nil),
		(*ast.Field)(nil),
	}

	insp.Preorder(nodeFilter, func(n ast.Node) {
		var (
			doc  *ast.CommentGroup
			what string
		)

		switch n := n.(type) {
		case *ast.FuncDecl:
			doc = n.Doc
			if n.Recv != nil {
				what = "methods"
			}
		case *ast.GenDecl:
			doc = n.Doc
		case *ast.TypeSpec:
			doc = n.Doc
		case *ast.Field:
			doc = n.Doc
			what = "struct fields"
		}

		prefix := in.Options().DirectivePrefix

		for _, d := range in.Directives(doc) {
			var msg string

			switch {
			case !analyze.IsKnownVerb(d.Verb):
				msg = fmt.Sprintf("unknown directive %s:%s%s", prefix, d.Verb, suggest.Hint(d.Verb, analyze.KnownVerbs()))
			case what == "methods" && analyze.IsFactoryVerb(d.Verb):
				msg = fmt.Sprintf("directive %s:%s has no effect on methods", prefix, d.Verb)
			case what == "struct fields":
				msg = fmt.Sprintf("directive %s:%s has no effect on struct fields; use a json tag", prefix, d.Verb)
			default:
				continue
			}

			pass.Report(analysis.Diagnostic{Pos: d.Pos, Category: CategoryDirective, Message: msg})
		}
	})
}

func splitList(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
