package names

import (
	"errors"
	"fmt"

	"codec-generator/internal/decl"
)

// Diagnostic codes for reconciliation failures.
const (
	CodeDuplicateOverride      = "DuplicateOverride"
	CodeDuplicateMetadataToken = "DuplicateMetadataToken"
)

// Sentinel errors matched by ElementError.Is.
var (
	ErrDuplicateOverride      = errors.New("duplicate serialize name override")
	ErrDuplicateMetadataToken = errors.New("duplicate metadata token")
)

// ElementError is a reconciliation conflict between two declarations of
// the same property.
type ElementError struct {
	Code    string
	Message string
	// Key is the property key both declarations share.
	Key string
	// Conflict is the declaration on which the conflict was detected.
	Conflict decl.Ref
	// Previous is the declaration that already supplied the value.
	Previous decl.Ref
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is matches the sentinel for the error's code.
func (e *ElementError) Is(target error) bool {
	switch e.Code {
	case CodeDuplicateOverride:
		return target == ErrDuplicateOverride
	case CodeDuplicateMetadataToken:
		return target == ErrDuplicateMetadataToken
	default:
		return false
	}
}

// Describe renders the error with both declarations resolved through table.
func (e *ElementError) Describe(table *decl.Table) string {
	return fmt.Sprintf("%s: %s conflicts with %s", e.Message, table.Describe(e.Conflict), table.Describe(e.Previous))
}

func duplicateOverride(n, prev *Name) *ElementError {
	return &ElementError{
		Code:     CodeDuplicateOverride,
		Message:  fmt.Sprintf("duplicate serialize name %q found on %s (already named %q)", n.SerializeName, n, prev.SerializeName),
		Key:      n.Key,
		Conflict: n.Origin,
		Previous: prev.Origin,
	}
}

func duplicateToken(n *Name, m decl.Marker, prev *Name) *ElementError {
	return &ElementError{
		Code:     CodeDuplicateMetadataToken,
		Message:  fmt.Sprintf("duplicate metadata token %q found on %s", m.String(), n),
		Key:      n.Key,
		Conflict: n.Origin,
		Previous: prev.Origin,
	}
}
