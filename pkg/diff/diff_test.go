package diff

import (
	"testing"

	"github.com/leapstack-labs/leapgraph/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// modelWith builds a model with a Query root plus the given types.
func modelWith(defs ...*core.TypeDefinition) *core.SchemaModel {
	m := core.NewSchemaModel()
	m.QueryTypeName = "Query"
	m.AddType(&core.TypeDefinition{
		Name: "Query",
		Kind: core.KindObject,
		Fields: []core.FieldDefinition{
			{Name: "ping", Type: core.NamedRef("String")},
		},
	})
	for _, d := range defs {
		m.AddType(d)
	}
	return m
}

func userType(fields ...core.FieldDefinition) *core.TypeDefinition {
	return &core.TypeDefinition{Name: "User", Kind: core.KindObject, Fields: fields}
}

func TestDiffOfSelfIsEmpty(t *testing.T) {
	m := modelWith(
		userType(
			core.FieldDefinition{Name: "id", Type: core.NonNullOf(core.NamedRef("ID"))},
			core.FieldDefinition{Name: "name", Type: core.NamedRef("String")},
		),
		&core.TypeDefinition{Name: "Role", Kind: core.KindEnum, EnumValues: []core.EnumValueDefinition{{Name: "ADMIN"}}},
	)

	assert.Empty(t, Diff(m, m))
}

func TestDiffFieldRemoved(t *testing.T) {
	oldModel := modelWith(userType(
		core.FieldDefinition{Name: "id", Type: core.NonNullOf(core.NamedRef("ID"))},
		core.FieldDefinition{Name: "name", Type: core.NamedRef("String")},
	))
	newModel := modelWith(userType(
		core.FieldDefinition{Name: "id", Type: core.NonNullOf(core.NamedRef("ID"))},
	))

	changes := Diff(oldModel, newModel)
	require.Len(t, changes, 1)

	c := changes[0]
	assert.Equal(t, core.ChangeFieldRemoved, c.Kind)
	assert.Equal(t, core.SeverityCritical, c.Severity)
	assert.True(t, c.Breaking)
	assert.Equal(t, "User", c.TypeName)
	assert.Equal(t, "name", c.FieldName)
}

func TestDiffTypeAdded(t *testing.T) {
	oldModel := modelWith()
	newModel := modelWith(&core.TypeDefinition{
		Name: "Order",
		Kind: core.KindObject,
		Fields: []core.FieldDefinition{
			{Name: "id", Type: core.NonNullOf(core.NamedRef("ID"))},
		},
	})

	changes := Diff(oldModel, newModel)
	require.Len(t, changes, 1)

	c := changes[0]
	assert.Equal(t, core.ChangeTypeAdded, c.Kind)
	assert.Equal(t, core.SeverityMinor, c.Severity)
	assert.False(t, c.Breaking)
	assert.Equal(t, "Order", c.TypeName)
}

func TestDiffFieldTypeChangedCrossScalar(t *testing.T) {
	oldModel := modelWith(userType(core.FieldDefinition{Name: "age", Type: core.NamedRef("Int")}))
	newModel := modelWith(userType(core.FieldDefinition{Name: "age", Type: core.NamedRef("String")}))

	changes := Diff(oldModel, newModel)
	require.Len(t, changes, 1)

	c := changes[0]
	assert.Equal(t, core.ChangeFieldTypeChanged, c.Kind)
	assert.True(t, c.Breaking)
	assert.Equal(t, core.SeverityMajor, c.Severity)
	assert.Contains(t, c.Description, "from Int to String")
}

// Same base scalar with a wrapper-only change is classified non-breaking
// by the fixed compatibility table. That table judges base names only,
// so this is a classification convention, not a real-world safety claim.
func TestDiffFieldTypeChangedSameScalarWrapper(t *testing.T) {
	oldModel := modelWith(userType(core.FieldDefinition{Name: "age", Type: core.NamedRef("Int")}))
	newModel := modelWith(userType(core.FieldDefinition{Name: "age", Type: core.NonNullOf(core.NamedRef("Int"))}))

	changes := Diff(oldModel, newModel)
	require.Len(t, changes, 1)

	c := changes[0]
	assert.Equal(t, core.ChangeFieldTypeChanged, c.Kind)
	assert.False(t, c.Breaking)
	assert.Equal(t, core.SeverityMinor, c.Severity)
}

// A wrapper change around a non-scalar base is breaking: only built-in
// scalars get a compatibility class.
func TestDiffFieldTypeChangedObjectWrapper(t *testing.T) {
	oldModel := modelWith(
		userType(core.FieldDefinition{Name: "posts", Type: core.NamedRef("Post")}),
		&core.TypeDefinition{Name: "Post", Kind: core.KindObject, Fields: []core.FieldDefinition{{Name: "id", Type: core.NamedRef("ID")}}},
	)
	newModel := modelWith(
		userType(core.FieldDefinition{Name: "posts", Type: core.ListOf(core.NamedRef("Post"))}),
		&core.TypeDefinition{Name: "Post", Kind: core.KindObject, Fields: []core.FieldDefinition{{Name: "id", Type: core.NamedRef("ID")}}},
	)

	changes := Diff(oldModel, newModel)
	require.Len(t, changes, 1)
	assert.True(t, changes[0].Breaking)
}

func TestDiffTypeRemoved(t *testing.T) {
	oldModel := modelWith(userType(core.FieldDefinition{Name: "id", Type: core.NamedRef("ID")}))
	newModel := modelWith()

	changes := Diff(oldModel, newModel)
	require.Len(t, changes, 1)

	c := changes[0]
	assert.Equal(t, core.ChangeTypeRemoved, c.Kind)
	assert.Equal(t, core.SeverityCritical, c.Severity)
	assert.True(t, c.Breaking)
	assert.NotEmpty(t, c.Impact)
	assert.NotEmpty(t, c.Recommendation)
}

// A kind change reports as a removal plus an addition.
func TestDiffKindChange(t *testing.T) {
	oldModel := modelWith(&core.TypeDefinition{
		Name: "Entity",
		Kind: core.KindObject,
		Fields: []core.FieldDefinition{
			{Name: "id", Type: core.NamedRef("ID")},
		},
	})
	newModel := modelWith(&core.TypeDefinition{
		Name: "Entity",
		Kind: core.KindInterface,
		Fields: []core.FieldDefinition{
			{Name: "id", Type: core.NamedRef("ID")},
		},
	})

	changes := Diff(oldModel, newModel)
	require.Len(t, changes, 2)
	assert.Equal(t, core.ChangeTypeRemoved, changes[0].Kind)
	assert.Equal(t, core.ChangeTypeAdded, changes[1].Kind)
	assert.Equal(t, "Entity", changes[0].TypeName)
	assert.Equal(t, "Entity", changes[1].TypeName)
}

func TestDiffEnumValues(t *testing.T) {
	oldModel := modelWith(&core.TypeDefinition{
		Name: "Role",
		Kind: core.KindEnum,
		EnumValues: []core.EnumValueDefinition{
			{Name: "ADMIN"},
			{Name: "GUEST"},
		},
	})
	newModel := modelWith(&core.TypeDefinition{
		Name: "Role",
		Kind: core.KindEnum,
		EnumValues: []core.EnumValueDefinition{
			{Name: "ADMIN"},
			{Name: "MEMBER"},
		},
	})

	changes := Diff(oldModel, newModel)
	require.Len(t, changes, 2)

	assert.Equal(t, core.ChangeEnumValueRemoved, changes[0].Kind)
	assert.Equal(t, "GUEST", changes[0].FieldName)
	assert.True(t, changes[0].Breaking)
	assert.Equal(t, core.SeverityCritical, changes[0].Severity)

	assert.Equal(t, core.ChangeEnumValueAdded, changes[1].Kind)
	assert.Equal(t, "MEMBER", changes[1].FieldName)
	assert.False(t, changes[1].Breaking)
}

func TestDiffInputFields(t *testing.T) {
	oldModel := modelWith(&core.TypeDefinition{
		Name: "CreateUserInput",
		Kind: core.KindInputObject,
		InputFields: []core.ArgumentDefinition{
			{Name: "name", Type: core.NonNullOf(core.NamedRef("String"))},
			{Name: "age", Type: core.NamedRef("Int")},
		},
	})
	newModel := modelWith(&core.TypeDefinition{
		Name: "CreateUserInput",
		Kind: core.KindInputObject,
		InputFields: []core.ArgumentDefinition{
			{Name: "name", Type: core.NamedRef("String")},
			{Name: "email", Type: core.NamedRef("String")},
		},
	})

	changes := Diff(oldModel, newModel)
	require.Len(t, changes, 3)

	// name: String! -> String, same scalar base: non-breaking.
	assert.Equal(t, core.ChangeFieldTypeChanged, changes[0].Kind)
	assert.False(t, changes[0].Breaking)

	// age removed.
	assert.Equal(t, core.ChangeFieldRemoved, changes[1].Kind)
	assert.True(t, changes[1].Breaking)

	// email added.
	assert.Equal(t, core.ChangeFieldAdded, changes[2].Kind)
	assert.False(t, changes[2].Breaking)
}

// Additions and removals swap when the diff direction is reversed, and
// severity/breaking flags swap with them.
func TestDiffSymmetry(t *testing.T) {
	a := modelWith(
		userType(
			core.FieldDefinition{Name: "id", Type: core.NonNullOf(core.NamedRef("ID"))},
			core.FieldDefinition{Name: "name", Type: core.NamedRef("String")},
		),
		&core.TypeDefinition{Name: "Legacy", Kind: core.KindScalar},
	)
	b := modelWith(
		userType(
			core.FieldDefinition{Name: "id", Type: core.NonNullOf(core.NamedRef("ID"))},
			core.FieldDefinition{Name: "email", Type: core.NamedRef("String")},
		),
		&core.TypeDefinition{Name: "Modern", Kind: core.KindScalar},
	)

	forward := Diff(a, b)
	backward := Diff(b, a)
	require.Equal(t, len(forward), len(backward))

	count := func(changes []core.SchemaChange, kind core.ChangeKind) int {
		n := 0
		for _, c := range changes {
			if c.Kind == kind {
				n++
			}
		}
		return n
	}

	assert.Equal(t, count(forward, core.ChangeTypeRemoved), count(backward, core.ChangeTypeAdded))
	assert.Equal(t, count(forward, core.ChangeTypeAdded), count(backward, core.ChangeTypeRemoved))
	assert.Equal(t, count(forward, core.ChangeFieldRemoved), count(backward, core.ChangeFieldAdded))
	assert.Equal(t, count(forward, core.ChangeFieldAdded), count(backward, core.ChangeFieldRemoved))

	for _, c := range append(forward, backward...) {
		switch c.Kind {
		case core.ChangeTypeAdded, core.ChangeFieldAdded:
			assert.False(t, c.Breaking)
			assert.Equal(t, core.SeverityMinor, c.Severity)
		case core.ChangeTypeRemoved, core.ChangeFieldRemoved:
			assert.True(t, c.Breaking)
			assert.Equal(t, core.SeverityCritical, c.Severity)
		}
	}
}

func TestDiffDeterministicOrder(t *testing.T) {
	oldModel := modelWith(
		&core.TypeDefinition{Name: "A", Kind: core.KindScalar},
		userType(core.FieldDefinition{Name: "id", Type: core.NamedRef("ID")}),
	)
	newModel := modelWith(
		userType(
			core.FieldDefinition{Name: "id", Type: core.NamedRef("ID")},
			core.FieldDefinition{Name: "name", Type: core.NamedRef("String")},
		),
		&core.TypeDefinition{Name: "Z", Kind: core.KindScalar},
	)

	first := Diff(oldModel, newModel)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Diff(oldModel, newModel))
	}

	// Removals come before payload changes, additions last.
	require.Len(t, first, 3)
	assert.Equal(t, core.ChangeTypeRemoved, first[0].Kind)
	assert.Equal(t, core.ChangeFieldAdded, first[1].Kind)
	assert.Equal(t, core.ChangeTypeAdded, first[2].Kind)
}

func TestFilterBySeverity(t *testing.T) {
	changes := []core.SchemaChange{
		{Kind: core.ChangeTypeAdded, Severity: core.SeverityMinor},
		{Kind: core.ChangeFieldTypeChanged, Severity: core.SeverityMajor},
		{Kind: core.ChangeTypeRemoved, Severity: core.SeverityCritical},
	}

	assert.Len(t, FilterBySeverity(changes, core.SeverityMinor), 3)
	assert.Len(t, FilterBySeverity(changes, core.SeverityMajor), 2)
	assert.Len(t, FilterBySeverity(changes, core.SeverityCritical), 1)

	// Filtering keeps classification intact.
	filtered := FilterBySeverity(changes, core.SeverityCritical)
	assert.Equal(t, core.ChangeTypeRemoved, filtered[0].Kind)
}

// Custom scalars registered in the scalar set get the same singleton
// compatibility class as built-ins.
func TestDiffWithScalarsCustomScalar(t *testing.T) {
	oldModel := modelWith(userType(core.FieldDefinition{Name: "createdAt", Type: core.NamedRef("DateTime")}))
	newModel := modelWith(userType(core.FieldDefinition{Name: "createdAt", Type: core.NonNullOf(core.NamedRef("DateTime"))}))

	// Unknown base name: breaking.
	changes := Diff(oldModel, newModel)
	require.Len(t, changes, 1)
	assert.True(t, changes[0].Breaking)

	// Registered custom scalar: wrapper-only change, non-breaking.
	changes = DiffWithScalars(oldModel, newModel, core.NewScalarSet("DateTime"))
	require.Len(t, changes, 1)
	assert.False(t, changes[0].Breaking)
	assert.Equal(t, core.SeverityMinor, changes[0].Severity)
}
