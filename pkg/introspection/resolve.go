package introspection

import (
	"github.com/leapstack-labs/leapgraph/pkg/core"
)

// ResolveTypeRef unwraps a raw kind/name/ofType chain of arbitrary depth
// into a core.TypeRef. It returns a *core.MalformedTypeRefError when a
// wrapper node has no inner type, a named leaf has no name, or a NON_NULL
// directly wraps another NON_NULL.
//
// context locates the reference for error messages, e.g. "type User, field posts".
func ResolveTypeRef(raw *TypeRef, context string) (core.TypeRef, error) {
	return resolveTypeRef(raw, context, false)
}

func resolveTypeRef(raw *TypeRef, context string, parentNonNull bool) (core.TypeRef, error) {
	if raw == nil {
		return core.TypeRef{}, &core.MalformedTypeRefError{
			Kind:    "",
			Context: context,
			Reason:  "type reference is missing",
		}
	}

	switch raw.Kind {
	case kindNonNull:
		if parentNonNull {
			return core.TypeRef{}, &core.MalformedTypeRefError{
				Kind:    raw.Kind,
				Context: context,
				Reason:  "non-null wrapper directly wraps another non-null",
			}
		}
		if raw.OfType == nil {
			return core.TypeRef{}, &core.MalformedTypeRefError{
				Kind:    raw.Kind,
				Context: context,
				Reason:  "non-null wrapper has no inner type",
			}
		}
		inner, err := resolveTypeRef(raw.OfType, context, true)
		if err != nil {
			return core.TypeRef{}, err
		}
		return core.NonNullOf(inner), nil

	case kindList:
		if raw.OfType == nil {
			return core.TypeRef{}, &core.MalformedTypeRefError{
				Kind:    raw.Kind,
				Context: context,
				Reason:  "list wrapper has no inner type",
			}
		}
		inner, err := resolveTypeRef(raw.OfType, context, false)
		if err != nil {
			return core.TypeRef{}, err
		}
		return core.ListOf(inner), nil

	default:
		// Named leaf. Leaf kinds (SCALAR, OBJECT, ...) all resolve the
		// same way; only the name matters for the model.
		if raw.Name == nil || *raw.Name == "" {
			return core.TypeRef{}, &core.MalformedTypeRefError{
				Kind:    raw.Kind,
				Context: context,
				Reason:  "named type reference has no name",
			}
		}
		return core.NamedRef(*raw.Name), nil
	}
}
