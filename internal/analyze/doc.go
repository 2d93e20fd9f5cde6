// Package analyze provides package loading and declaration extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types
// to build a decl.Snapshot of every value type in the loaded packages.
//
// Directives (default prefix "codec"):
//   - //codec:value on a struct type opts it in
//   - //codec:constructor on a function returning T or *T
//   - //codec:builder on a function returning a builder with a Build method
//   - //codec:name <n> and //codec:token <t>[=<v>] on methods
//   - //codec:param <p> name <n> and //codec:param <p> token <t> on factories
//
// Fields take their serialize name and tokens from the json struct tag;
// json:"-" marks a field transient. Types declared in generated files are
// flagged as having synthetic accessors.
package analyze
