// Package driver runs reconciliation and code generation over a snapshot of
// value types, one type per task, with bounded parallelism.
//
// Each type is independent: its own collector, its own failure. Results and
// diagnostics are reported in snapshot order regardless of scheduling.
package driver
