// Package diagnostic provides structured warnings and errors for the
// codec generator.
//
// Key capabilities:
//   - Reconciliation conflicts (duplicate overrides, duplicate tokens)
//   - Introspection problems in malformed declarations
//   - Per-type generation notes
//   - Colored rendering for terminals
package diagnostic
