package decl

import (
	"fmt"
	"sync"
)

// Ref is an opaque handle to a declaration recorded in a Table.
// The zero Ref refers to nothing.
type Ref int

// NoRef is the zero handle.
const NoRef Ref = 0

// DeclKind names what a table entry describes.
type DeclKind string

const (
	DeclType        DeclKind = "type"
	DeclField       DeclKind = "field"
	DeclMethod      DeclKind = "method"
	DeclParam       DeclKind = "param"
	DeclConstructor DeclKind = "constructor"
	DeclBuilder     DeclKind = "builder"
)

// Entry describes one declaration for diagnostics.
type Entry struct {
	Kind  DeclKind
	Owner string // enclosing type or function
	Name  string
	Pos   string // "file:line:col" or another locator
}

// String returns e.g. "method Point.GetX (point.go:12:1)".
func (e Entry) String() string {
	s := string(e.Kind) + " "
	if e.Owner != "" {
		s += e.Owner + "."
	}

	s += e.Name
	if e.Pos != "" {
		s += " (" + e.Pos + ")"
	}

	return s
}

// Table maps declaration handles to their descriptions. It is safe for
// concurrent use.
type Table struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{}
}

// Add records an entry and returns its handle.
func (t *Table) Add(e Entry) Ref {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = append(t.entries, e)

	return Ref(len(t.entries))
}

// Lookup returns the entry for ref.
func (t *Table) Lookup(ref Ref) (Entry, bool) {
	if t == nil || ref == NoRef {
		return Entry{}, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	i := int(ref) - 1
	if i < 0 || i >= len(t.entries) {
		return Entry{}, false
	}

	return t.entries[i], true
}

// Describe returns a human-readable description of ref.
func (t *Table) Describe(ref Ref) string {
	if e, ok := t.Lookup(ref); ok {
		return e.String()
	}

	return fmt.Sprintf("declaration #%d", ref)
}

// Len returns the number of recorded entries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.entries)
}
