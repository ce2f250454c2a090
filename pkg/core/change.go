package core

import "strings"

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the impact level of a schema change.
// Severities are ordered: Minor < Major < Critical.
type Severity int

// Severity levels for schema changes.
const (
	// SeverityMinor indicates an additive change that is safe for consumers.
	SeverityMinor Severity = iota
	// SeverityMajor indicates a change that likely affects some consumers.
	SeverityMajor
	// SeverityCritical indicates a change that breaks existing consumers.
	SeverityCritical
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityMinor:
		return "minor"
	case SeverityMajor:
		return "major"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the severity as its string form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// MarshalYAML renders the severity as its string form.
func (s Severity) MarshalYAML() (any, error) {
	return s.String(), nil
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityMinor and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "minor":
		return SeverityMinor, true
	case "major":
		return SeverityMajor, true
	case "critical":
		return SeverityCritical, true
	default:
		return SeverityMinor, false
	}
}

// =============================================================================
// Changes
// =============================================================================

// ChangeKind identifies the structural kind of a schema change.
type ChangeKind string

// Change kind constants.
const (
	ChangeTypeAdded        ChangeKind = "type_added"
	ChangeTypeRemoved      ChangeKind = "type_removed"
	ChangeFieldAdded       ChangeKind = "field_added"
	ChangeFieldRemoved     ChangeKind = "field_removed"
	ChangeFieldTypeChanged ChangeKind = "field_type_changed"
	ChangeEnumValueAdded   ChangeKind = "enum_value_added"
	ChangeEnumValueRemoved ChangeKind = "enum_value_removed"
)

// SchemaChange is a single classified difference between two schema models.
// Changes are read-only artifacts of one diff invocation.
type SchemaChange struct {
	// Kind is the structural kind of the change.
	Kind ChangeKind `json:"kind" yaml:"kind"`
	// Severity is the impact level.
	Severity Severity `json:"severity" yaml:"severity"`
	// Breaking is true when the change can break existing consumers.
	Breaking bool `json:"breaking" yaml:"breaking"`
	// TypeName locates the affected type.
	TypeName string `json:"type" yaml:"type"`
	// FieldName locates the affected field or enum value, empty for
	// type-level changes.
	FieldName string `json:"field,omitempty" yaml:"field,omitempty"`
	// Description is a human-readable summary of the change.
	Description string `json:"description" yaml:"description"`
	// Impact optionally notes the consumer-facing consequence.
	Impact string `json:"impact,omitempty" yaml:"impact,omitempty"`
	// Recommendation optionally suggests how to roll the change out safely.
	Recommendation string `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
}
