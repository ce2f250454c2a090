package core

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrMissingQueryRoot is returned when an introspection document names
	// no query root type. A schema without a query root cannot be modeled.
	ErrMissingQueryRoot = errors.New("introspection document has no query root type")

	// ErrInsufficientSnapshots is returned when evolution tracking is
	// requested with fewer than two schema snapshots.
	ErrInsufficientSnapshots = errors.New("evolution tracking requires at least two snapshots")
)

// MalformedTypeRefError reports a type-reference node missing required
// parts: a wrapper with no inner type, or a named leaf with no name.
type MalformedTypeRefError struct {
	// Kind is the introspection kind of the offending node.
	Kind string
	// Context locates the reference in the document, e.g. "type User, field posts".
	Context string
	// Reason explains what is missing.
	Reason string
}

func (e *MalformedTypeRefError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("malformed type reference (%s) at %s: %s", e.Kind, e.Context, e.Reason)
	}
	return fmt.Sprintf("malformed type reference (%s): %s", e.Kind, e.Reason)
}

// UnknownTypeKindError reports a type entry whose kind is outside the known
// set. The builder fails rather than dropping the type, since a silent drop
// would corrupt later diff results.
type UnknownTypeKindError struct {
	TypeName string
	Kind     string
}

func (e *UnknownTypeKindError) Error() string {
	return fmt.Sprintf("type %q has unknown kind %q", e.TypeName, e.Kind)
}
