// Package diff compares two schema model snapshots and classifies every
// structural difference as a severity-rated, breaking or non-breaking
// change.
//
// Diffing is a pure function over immutable models: it never mutates its
// inputs and never fails on well-formed models, since all validation
// happens at build time.
package diff

import (
	"fmt"

	"github.com/leapstack-labs/leapgraph/pkg/core"
)

// Diff compares old and new models and returns the ordered change list.
//
// Output order is deterministic and fixed in three passes: type removals
// in old-model order, payload changes for common types in old-model order,
// then type additions in new-model order. A type whose kind changed is
// reported as a removal plus an addition instead of a dedicated kind; this
// keeps the classifier small at the cost of a coarser report.
func Diff(oldModel, newModel *core.SchemaModel) []core.SchemaChange {
	return DiffWithScalars(oldModel, newModel, core.NewScalarSet())
}

// DiffWithScalars is Diff with an explicit scalar set, so custom scalars
// (DateTime, JSON, ...) participate in the compatibility table the same
// way built-ins do.
func DiffWithScalars(oldModel, newModel *core.SchemaModel, scalars core.ScalarSet) []core.SchemaChange {
	var changes []core.SchemaChange

	// Pass 1: removed types.
	for _, name := range oldModel.TypeNames() {
		if !newModel.HasType(name) {
			changes = append(changes, typeRemoved(oldModel.Type(name)))
		}
	}

	// Pass 2: common types.
	for _, name := range oldModel.TypeNames() {
		oldDef := oldModel.Type(name)
		newDef := newModel.Type(name)
		if newDef == nil {
			continue
		}

		if oldDef.Kind != newDef.Kind {
			changes = append(changes, typeRemoved(oldDef), typeAdded(newDef))
			continue
		}

		changes = append(changes, diffPayload(oldDef, newDef, scalars)...)
	}

	// Pass 3: added types.
	for _, name := range newModel.TypeNames() {
		if !oldModel.HasType(name) {
			changes = append(changes, typeAdded(newModel.Type(name)))
		}
	}

	return changes
}

// FilterBySeverity returns the subset of changes at or above min.
// Filtering never reclassifies; it only narrows the returned slice.
func FilterBySeverity(changes []core.SchemaChange, min core.Severity) []core.SchemaChange {
	if min == core.SeverityMinor {
		return changes
	}
	var out []core.SchemaChange
	for _, c := range changes {
		if c.Severity >= min {
			out = append(out, c)
		}
	}
	return out
}

// diffPayload compares the kind-specific payloads of two same-kind types.
func diffPayload(oldDef, newDef *core.TypeDefinition, scalars core.ScalarSet) []core.SchemaChange {
	switch oldDef.Kind {
	case core.KindObject, core.KindInterface:
		return diffFields(oldDef, newDef, scalars)
	case core.KindInputObject:
		return diffInputFields(oldDef, newDef, scalars)
	case core.KindEnum:
		return diffEnumValues(oldDef, newDef)
	default:
		// Scalars have no payload. Union membership changes are not
		// classified; see the change-kind set in core.
		return nil
	}
}

// diffFields compares output fields by name: removals first (old order),
// then type changes (old order), then additions (new order).
func diffFields(oldDef, newDef *core.TypeDefinition, scalars core.ScalarSet) []core.SchemaChange {
	var changes []core.SchemaChange

	newFields := make(map[string]*core.FieldDefinition, len(newDef.Fields))
	for i := range newDef.Fields {
		newFields[newDef.Fields[i].Name] = &newDef.Fields[i]
	}

	oldFields := make(map[string]bool, len(oldDef.Fields))
	for i := range oldDef.Fields {
		oldField := &oldDef.Fields[i]
		oldFields[oldField.Name] = true

		newField, ok := newFields[oldField.Name]
		if !ok {
			changes = append(changes, fieldRemoved(oldDef.Name, oldField.Name))
			continue
		}

		oldText := oldField.Type.String()
		newText := newField.Type.String()
		if oldText != newText {
			changes = append(changes, fieldTypeChanged(oldDef.Name, oldField.Name, oldField.Type, newField.Type, scalars))
		}
	}

	for i := range newDef.Fields {
		if !oldFields[newDef.Fields[i].Name] {
			changes = append(changes, fieldAdded(newDef.Name, newDef.Fields[i].Name))
		}
	}

	return changes
}

// diffInputFields applies the field rules to an input object's fields.
func diffInputFields(oldDef, newDef *core.TypeDefinition, scalars core.ScalarSet) []core.SchemaChange {
	var changes []core.SchemaChange

	newFields := make(map[string]*core.ArgumentDefinition, len(newDef.InputFields))
	for i := range newDef.InputFields {
		newFields[newDef.InputFields[i].Name] = &newDef.InputFields[i]
	}

	oldFields := make(map[string]bool, len(oldDef.InputFields))
	for i := range oldDef.InputFields {
		oldField := &oldDef.InputFields[i]
		oldFields[oldField.Name] = true

		newField, ok := newFields[oldField.Name]
		if !ok {
			changes = append(changes, fieldRemoved(oldDef.Name, oldField.Name))
			continue
		}

		if oldField.Type.String() != newField.Type.String() {
			changes = append(changes, fieldTypeChanged(oldDef.Name, oldField.Name, oldField.Type, newField.Type, scalars))
		}
	}

	for i := range newDef.InputFields {
		if !oldFields[newDef.InputFields[i].Name] {
			changes = append(changes, fieldAdded(newDef.Name, newDef.InputFields[i].Name))
		}
	}

	return changes
}

// diffEnumValues compares enum values by name, same shape as field diffs.
func diffEnumValues(oldDef, newDef *core.TypeDefinition) []core.SchemaChange {
	var changes []core.SchemaChange

	newValues := make(map[string]bool, len(newDef.EnumValues))
	for _, v := range newDef.EnumValues {
		newValues[v.Name] = true
	}

	oldValues := make(map[string]bool, len(oldDef.EnumValues))
	for _, v := range oldDef.EnumValues {
		oldValues[v.Name] = true
		if !newValues[v.Name] {
			changes = append(changes, core.SchemaChange{
				Kind:           core.ChangeEnumValueRemoved,
				Severity:       core.SeverityCritical,
				Breaking:       true,
				TypeName:       oldDef.Name,
				FieldName:      v.Name,
				Description:    fmt.Sprintf("enum value %q was removed from %q", v.Name, oldDef.Name),
				Impact:         "Clients sending or matching on this value will fail",
				Recommendation: "Deprecate enum values and remove them only after clients have migrated",
			})
		}
	}

	for _, v := range newDef.EnumValues {
		if !oldValues[v.Name] {
			changes = append(changes, core.SchemaChange{
				Kind:        core.ChangeEnumValueAdded,
				Severity:    core.SeverityMinor,
				Breaking:    false,
				TypeName:    newDef.Name,
				FieldName:   v.Name,
				Description: fmt.Sprintf("enum value %q was added to %q", v.Name, newDef.Name),
			})
		}
	}

	return changes
}

func typeRemoved(def *core.TypeDefinition) core.SchemaChange {
	return core.SchemaChange{
		Kind:           core.ChangeTypeRemoved,
		Severity:       core.SeverityCritical,
		Breaking:       true,
		TypeName:       def.Name,
		Description:    fmt.Sprintf("type %q was removed", def.Name),
		Impact:         "Existing queries selecting this type will fail",
		Recommendation: "Restore the type or migrate clients before removing it",
	}
}

func typeAdded(def *core.TypeDefinition) core.SchemaChange {
	return core.SchemaChange{
		Kind:        core.ChangeTypeAdded,
		Severity:    core.SeverityMinor,
		Breaking:    false,
		TypeName:    def.Name,
		Description: fmt.Sprintf("type %q was added", def.Name),
	}
}

func fieldRemoved(typeName, fieldName string) core.SchemaChange {
	return core.SchemaChange{
		Kind:           core.ChangeFieldRemoved,
		Severity:       core.SeverityCritical,
		Breaking:       true,
		TypeName:       typeName,
		FieldName:      fieldName,
		Description:    fmt.Sprintf("field %q was removed from type %q", fieldName, typeName),
		Impact:         "Queries selecting this field will fail",
		Recommendation: "Deprecate fields before removing them",
	}
}

func fieldAdded(typeName, fieldName string) core.SchemaChange {
	return core.SchemaChange{
		Kind:        core.ChangeFieldAdded,
		Severity:    core.SeverityMinor,
		Breaking:    false,
		TypeName:    typeName,
		FieldName:   fieldName,
		Description: fmt.Sprintf("field %q was added to type %q", fieldName, typeName),
	}
}

func fieldTypeChanged(typeName, fieldName string, oldRef, newRef core.TypeRef, scalars core.ScalarSet) core.SchemaChange {
	breaking := !compatibleChange(oldRef, newRef, scalars)

	change := core.SchemaChange{
		Kind:        core.ChangeFieldTypeChanged,
		Breaking:    breaking,
		TypeName:    typeName,
		FieldName:   fieldName,
		Description: fmt.Sprintf("field %q on type %q changed type from %s to %s", fieldName, typeName, oldRef, newRef),
	}

	if breaking {
		change.Severity = core.SeverityMajor
		change.Impact = "Clients relying on the old type will misparse responses"
		change.Recommendation = "Add a new field instead of changing the type of an existing one"
	} else {
		change.Severity = core.SeverityMinor
		change.Impact = "Wrapper-only change within the same scalar"
	}

	return change
}
