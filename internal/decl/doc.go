// Package decl defines the declaration snapshot handed from an
// introspector to the property reconciler.
//
// A Snapshot holds one Type per value type and a Table that resolves the
// Ref handles carried by every declaration into printable descriptions.
// Handles are used for diagnostics only.
package decl
