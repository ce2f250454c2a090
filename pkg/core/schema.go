package core

import "fmt"

// =============================================================================
// Type kinds
// =============================================================================

// TypeKind is the closed set of schema type kinds.
type TypeKind int

// Type kind constants.
const (
	KindObject TypeKind = iota
	KindInputObject
	KindInterface
	KindEnum
	KindUnion
	KindScalar
)

// String returns the SDL keyword for the type kind.
func (k TypeKind) String() string {
	switch k {
	case KindObject:
		return "type"
	case KindInputObject:
		return "input"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindUnion:
		return "union"
	case KindScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// ParseTypeKind converts an introspection kind string to a TypeKind.
// Returns the kind and true if valid, or KindObject and false if not.
func ParseTypeKind(s string) (TypeKind, bool) {
	switch s {
	case "OBJECT":
		return KindObject, true
	case "INPUT_OBJECT":
		return KindInputObject, true
	case "INTERFACE":
		return KindInterface, true
	case "ENUM":
		return KindEnum, true
	case "UNION":
		return KindUnion, true
	case "SCALAR":
		return KindScalar, true
	default:
		return KindObject, false
	}
}

// =============================================================================
// Definitions
// =============================================================================

// ArgumentDefinition describes a field argument or an input object field.
type ArgumentDefinition struct {
	// Name is the argument name, unique within the owning field.
	Name string
	// Type is the argument's type reference.
	Type TypeRef
	// DefaultValue is the original default literal text, nil when absent.
	// It is carried opaquely and never reformatted.
	DefaultValue *string
	// Description is the optional documentation string.
	Description string
}

// FieldDefinition describes an output field on an object or interface type.
type FieldDefinition struct {
	// Name is the field name, unique within the owning type.
	Name string
	// Description is the optional documentation string.
	Description string
	// Type is the field's return type reference.
	Type TypeRef
	// Args are the field's arguments in declaration order.
	Args []ArgumentDefinition
	// IsDeprecated marks the field as deprecated.
	IsDeprecated bool
	// DeprecationReason is the optional reason, set only when deprecated.
	DeprecationReason string
}

// EnumValueDefinition describes a single enum value.
type EnumValueDefinition struct {
	Name              string
	Description       string
	IsDeprecated      bool
	DeprecationReason string
}

// TypeDefinition is a single named type in a schema model.
// The payload slices are kind-dependent: Fields for Object/Interface,
// InputFields for InputObject, EnumValues for Enum, PossibleTypes for
// Union, Interfaces for Object. Unused payloads stay nil.
type TypeDefinition struct {
	// Name is the type name, unique across the whole model.
	Name string
	// Kind is the type's kind.
	Kind TypeKind
	// Description is the optional documentation string.
	Description string
	// Fields are the output fields (Object, Interface).
	Fields []FieldDefinition
	// InputFields are the input fields (InputObject).
	InputFields []ArgumentDefinition
	// EnumValues are the enum values (Enum).
	EnumValues []EnumValueDefinition
	// PossibleTypes are the member type names (Union).
	PossibleTypes []string
	// Interfaces are the implemented interface names (Object).
	Interfaces []string
}

// Field returns the field with the given name, or nil if absent.
func (d *TypeDefinition) Field(name string) *FieldDefinition {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}
	return nil
}

// =============================================================================
// Schema model
// =============================================================================

// SchemaModel is a normalized, name-indexed snapshot of a schema.
// It is built once per introspection document and never mutated afterwards.
// Insertion order is preserved so rendering and diffing stay deterministic
// across repeated runs on identical input.
type SchemaModel struct {
	types map[string]*TypeDefinition
	order []string

	// QueryTypeName is the query root type name (always present).
	QueryTypeName string
	// MutationTypeName is the mutation root type name, empty when absent.
	MutationTypeName string
	// SubscriptionTypeName is the subscription root type name, empty when absent.
	SubscriptionTypeName string
}

// NewSchemaModel returns an empty schema model.
func NewSchemaModel() *SchemaModel {
	return &SchemaModel{types: make(map[string]*TypeDefinition)}
}

// AddType inserts a type definition, preserving insertion order.
// Re-adding an existing name replaces the definition in place without
// changing its position.
func (m *SchemaModel) AddType(def *TypeDefinition) {
	if _, exists := m.types[def.Name]; !exists {
		m.order = append(m.order, def.Name)
	}
	m.types[def.Name] = def
}

// Type returns the definition for name, or nil if absent.
func (m *SchemaModel) Type(name string) *TypeDefinition {
	return m.types[name]
}

// HasType reports whether name is defined.
func (m *SchemaModel) HasType(name string) bool {
	_, ok := m.types[name]
	return ok
}

// TypeNames returns all type names in insertion order.
func (m *SchemaModel) TypeNames() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of types in the model.
func (m *SchemaModel) Len() int {
	return len(m.order)
}

// Validate checks the root-type invariant: every root type name that is
// set must resolve to an Object type in the model.
func (m *SchemaModel) Validate() error {
	roots := []struct {
		role string
		name string
	}{
		{"query", m.QueryTypeName},
		{"mutation", m.MutationTypeName},
		{"subscription", m.SubscriptionTypeName},
	}
	for _, root := range roots {
		if root.name == "" {
			continue
		}
		def := m.Type(root.name)
		if def == nil {
			return fmt.Errorf("%s root type %q is not defined in the model", root.role, root.name)
		}
		if def.Kind != KindObject {
			return fmt.Errorf("%s root type %q must be an object type, got %s", root.role, root.name, def.Kind)
		}
	}
	return nil
}
