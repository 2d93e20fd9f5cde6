// Package gen emits JSON codec methods for reconciled value types.
//
// Generation uses text/template, then golang.org/x/tools/imports to format
// the result and drop unused imports. One file is produced per type, in the
// type's own package, so generated code may read unexported members.
//
// Emitted methods:
//   - MarshalJSON reads each readable property through its getter or
//     exported field, in property order
//   - UnmarshalJSON decodes constructor and builder arguments into locals,
//     creates the value, then assigns the remaining exported fields
package gen
