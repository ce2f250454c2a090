package introspection

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapgraph/pkg/core"
)

// Build constructs a schema model from a parsed introspection document.
//
// The type list is walked exactly once, in document order; types, fields,
// arguments and enum values keep their positions so that rendering and
// diffing stay stable across runs. Reserved introspection types (names
// starting with "__") are skipped. Any structural problem fails the whole
// build; no partial model is ever returned.
func Build(doc *Document) (*core.SchemaModel, error) {
	if doc == nil || doc.Data.Schema == nil {
		return nil, fmt.Errorf("introspection document has no schema payload")
	}
	schema := doc.Data.Schema

	if schema.QueryType == nil || schema.QueryType.Name == "" {
		return nil, core.ErrMissingQueryRoot
	}

	model := core.NewSchemaModel()
	model.QueryTypeName = schema.QueryType.Name
	if schema.MutationType != nil {
		model.MutationTypeName = schema.MutationType.Name
	}
	if schema.SubscriptionType != nil {
		model.SubscriptionTypeName = schema.SubscriptionType.Name
	}

	for i := range schema.Types {
		raw := &schema.Types[i]
		if strings.HasPrefix(raw.Name, reservedPrefix) {
			continue
		}

		def, err := buildType(raw)
		if err != nil {
			return nil, err
		}
		model.AddType(def)
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema model: %w", err)
	}

	return model, nil
}

// buildType constructs one TypeDefinition with its kind-specific payload.
func buildType(raw *Type) (*core.TypeDefinition, error) {
	kind, ok := core.ParseTypeKind(raw.Kind)
	if !ok {
		return nil, &core.UnknownTypeKindError{TypeName: raw.Name, Kind: raw.Kind}
	}

	def := &core.TypeDefinition{
		Name:        raw.Name,
		Kind:        kind,
		Description: deref(raw.Description),
	}

	switch kind {
	case core.KindObject:
		fields, err := buildFields(raw)
		if err != nil {
			return nil, err
		}
		def.Fields = fields
		def.Interfaces = refNames(raw.Interfaces)

	case core.KindInterface:
		fields, err := buildFields(raw)
		if err != nil {
			return nil, err
		}
		def.Fields = fields

	case core.KindInputObject:
		inputs, err := buildArguments(raw.InputFields, fmt.Sprintf("input %s", raw.Name))
		if err != nil {
			return nil, err
		}
		def.InputFields = inputs

	case core.KindEnum:
		def.EnumValues = buildEnumValues(raw.EnumValues)

	case core.KindUnion:
		def.PossibleTypes = refNames(raw.PossibleTypes)

	case core.KindScalar:
		// No payload.
	}

	return def, nil
}

// buildFields converts the raw output fields of an object or interface type.
func buildFields(raw *Type) ([]core.FieldDefinition, error) {
	if len(raw.Fields) == 0 {
		return nil, nil
	}

	fields := make([]core.FieldDefinition, 0, len(raw.Fields))
	for i := range raw.Fields {
		rf := &raw.Fields[i]
		context := fmt.Sprintf("type %s, field %s", raw.Name, rf.Name)

		ref, err := ResolveTypeRef(rf.Type, context)
		if err != nil {
			return nil, err
		}

		args, err := buildArguments(rf.Args, context)
		if err != nil {
			return nil, err
		}

		fields = append(fields, core.FieldDefinition{
			Name:              rf.Name,
			Description:       deref(rf.Description),
			Type:              ref,
			Args:              args,
			IsDeprecated:      rf.IsDeprecated,
			DeprecationReason: deref(rf.DeprecationReason),
		})
	}
	return fields, nil
}

// buildArguments converts raw input values (field arguments or input
// object fields). Default value literals are carried through verbatim.
func buildArguments(raw []InputValue, context string) ([]core.ArgumentDefinition, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	args := make([]core.ArgumentDefinition, 0, len(raw))
	for i := range raw {
		rv := &raw[i]
		ref, err := ResolveTypeRef(rv.Type, fmt.Sprintf("%s, argument %s", context, rv.Name))
		if err != nil {
			return nil, err
		}

		args = append(args, core.ArgumentDefinition{
			Name:         rv.Name,
			Type:         ref,
			DefaultValue: rv.DefaultValue,
			Description:  deref(rv.Description),
		})
	}
	return args, nil
}

// buildEnumValues converts raw enum values.
func buildEnumValues(raw []EnumValue) []core.EnumValueDefinition {
	if len(raw) == 0 {
		return nil
	}

	values := make([]core.EnumValueDefinition, 0, len(raw))
	for _, rv := range raw {
		values = append(values, core.EnumValueDefinition{
			Name:              rv.Name,
			Description:       deref(rv.Description),
			IsDeprecated:      rv.IsDeprecated,
			DeprecationReason: deref(rv.DeprecationReason),
		})
	}
	return values
}

// refNames extracts the named leaves of a list of references, preserving order.
func refNames(refs []TypeRef) []string {
	if len(refs) == 0 {
		return nil
	}

	names := make([]string, 0, len(refs))
	for _, r := range refs {
		cur := &r
		for cur.OfType != nil {
			cur = cur.OfType
		}
		if cur.Name != nil {
			names = append(names, *cur.Name)
		}
	}
	return names
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
