package core

// =============================================================================
// Reference kinds
// =============================================================================

// RefKind discriminates the three shapes a type reference can take.
type RefKind int

// Reference kind constants.
const (
	// RefNamed is a bare reference to a named type, e.g. "String".
	RefNamed RefKind = iota
	// RefList wraps an inner reference in list brackets, e.g. "[String]".
	RefList
	// RefNonNull marks an inner reference as non-nullable, e.g. "String!".
	RefNonNull
)

// String returns the string representation of the reference kind.
func (k RefKind) String() string {
	switch k {
	case RefNamed:
		return "named"
	case RefList:
		return "list"
	case RefNonNull:
		return "non-null"
	default:
		return "unknown"
	}
}

// =============================================================================
// TypeRef
// =============================================================================

// TypeRef is a reference to a schema type with its wrapper chain.
// It is a tagged union: Name is set only for RefNamed, OfType only for
// RefList and RefNonNull. Wrapping depth is unbounded.
//
// Invariant: a RefNonNull never directly wraps another RefNonNull.
// Well-formed references are guaranteed by the introspection builder;
// constructing one by hand bypasses that check.
type TypeRef struct {
	Kind   RefKind
	Name   string
	OfType *TypeRef
}

// NamedRef returns a bare reference to the named type.
func NamedRef(name string) TypeRef {
	return TypeRef{Kind: RefNamed, Name: name}
}

// ListOf wraps inner in a list.
func ListOf(inner TypeRef) TypeRef {
	return TypeRef{Kind: RefList, OfType: &inner}
}

// NonNullOf marks inner as non-nullable.
func NonNullOf(inner TypeRef) TypeRef {
	return TypeRef{Kind: RefNonNull, OfType: &inner}
}

// BaseName strips all wrappers and returns the innermost named type.
func (r TypeRef) BaseName() string {
	cur := &r
	for cur.OfType != nil {
		cur = cur.OfType
	}
	return cur.Name
}

// String renders the reference in canonical form: a named type renders as
// its name, a list as "[inner]", a non-null as "inner!".
func (r TypeRef) String() string {
	switch r.Kind {
	case RefList:
		if r.OfType == nil {
			return "[]"
		}
		return "[" + r.OfType.String() + "]"
	case RefNonNull:
		if r.OfType == nil {
			return "!"
		}
		return r.OfType.String() + "!"
	default:
		return r.Name
	}
}

// Equal reports whether two references have identical wrapper chains
// and base names.
func (r TypeRef) Equal(other TypeRef) bool {
	if r.Kind != other.Kind || r.Name != other.Name {
		return false
	}
	if (r.OfType == nil) != (other.OfType == nil) {
		return false
	}
	if r.OfType == nil {
		return true
	}
	return r.OfType.Equal(*other.OfType)
}

// =============================================================================
// Scalar sets
// =============================================================================

// BuiltinScalars are the scalar type names every schema provides.
var BuiltinScalars = []string{"String", "Int", "Float", "Boolean", "ID"}

// ScalarSet is a membership set of scalar type names. It always contains
// the built-in scalars and may carry additional custom scalars (DateTime,
// JSON, etc.) supplied by configuration.
type ScalarSet struct {
	names map[string]bool
}

// NewScalarSet returns a set of the built-in scalars plus any custom names.
func NewScalarSet(custom ...string) ScalarSet {
	names := make(map[string]bool, len(BuiltinScalars)+len(custom))
	for _, n := range BuiltinScalars {
		names[n] = true
	}
	for _, n := range custom {
		names[n] = true
	}
	return ScalarSet{names: names}
}

// Contains reports whether name is a known scalar. Callers use this to
// decide whether to recurse into a type's own fields.
func (s ScalarSet) Contains(name string) bool {
	return s.names[name]
}

// IsBuiltinScalar reports whether name is one of the five built-in scalars.
func IsBuiltinScalar(name string) bool {
	switch name {
	case "String", "Int", "Float", "Boolean", "ID":
		return true
	default:
		return false
	}
}
