// Package names reconciles the declarations that may describe one logical
// property of a value type into a single ordered property list.
//
// A property can be declared up to four times:
//   - a struct field
//   - a getter method
//   - a constructor (or builder factory) parameter
//   - a fluent builder setter
//
// The Collector admits candidates through per-variant filters, then Finish
// runs the reconciliation passes in order:
//  1. bean-name stripping (all getters or none)
//  2. builder setters duplicated by constructor parameters are dropped
//  3. getters of transient fields are dropped
//  4. serialize names and metadata tokens are merged per key
//  5. fields that are non-public, transient, or shadowed by a getter are dropped
//
// The final list is params, then remaining fields, then remaining getters.
package names
