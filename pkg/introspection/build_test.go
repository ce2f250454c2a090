package introspection

import (
	"testing"

	"github.com/leapstack-labs/leapgraph/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleDocument is a small but complete introspection response covering
// every type kind.
const sampleDocument = `{
  "data": {
    "__schema": {
      "queryType": {"name": "Query"},
      "mutationType": {"name": "Mutation"},
      "subscriptionType": null,
      "types": [
        {
          "kind": "OBJECT",
          "name": "Query",
          "description": "Root query type",
          "fields": [
            {
              "name": "user",
              "description": null,
              "args": [
                {
                  "name": "id",
                  "description": null,
                  "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "ID", "ofType": null}},
                  "defaultValue": null
                }
              ],
              "type": {"kind": "OBJECT", "name": "User", "ofType": null},
              "isDeprecated": false,
              "deprecationReason": null
            },
            {
              "name": "users",
              "description": null,
              "args": [
                {
                  "name": "limit",
                  "description": null,
                  "type": {"kind": "SCALAR", "name": "Int", "ofType": null},
                  "defaultValue": "10"
                }
              ],
              "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "LIST", "name": null, "ofType": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "OBJECT", "name": "User", "ofType": null}}}},
              "isDeprecated": false,
              "deprecationReason": null
            }
          ],
          "interfaces": []
        },
        {
          "kind": "OBJECT",
          "name": "Mutation",
          "fields": [
            {
              "name": "createUser",
              "args": [
                {
                  "name": "input",
                  "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "INPUT_OBJECT", "name": "CreateUserInput", "ofType": null}},
                  "defaultValue": null
                }
              ],
              "type": {"kind": "OBJECT", "name": "User", "ofType": null},
              "isDeprecated": false
            }
          ],
          "interfaces": []
        },
        {
          "kind": "OBJECT",
          "name": "User",
          "description": "A registered user",
          "fields": [
            {"name": "id", "args": [], "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "ID", "ofType": null}}, "isDeprecated": false},
            {"name": "name", "args": [], "type": {"kind": "SCALAR", "name": "String", "ofType": null}, "isDeprecated": false},
            {"name": "role", "args": [], "type": {"kind": "ENUM", "name": "Role", "ofType": null}, "isDeprecated": false},
            {"name": "nickname", "args": [], "type": {"kind": "SCALAR", "name": "String", "ofType": null}, "isDeprecated": true, "deprecationReason": "Use name instead"}
          ],
          "interfaces": [{"kind": "INTERFACE", "name": "Node", "ofType": null}]
        },
        {
          "kind": "INTERFACE",
          "name": "Node",
          "fields": [
            {"name": "id", "args": [], "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "ID", "ofType": null}}, "isDeprecated": false}
          ]
        },
        {
          "kind": "INPUT_OBJECT",
          "name": "CreateUserInput",
          "inputFields": [
            {"name": "name", "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "String", "ofType": null}}, "defaultValue": null},
            {"name": "role", "type": {"kind": "ENUM", "name": "Role", "ofType": null}, "defaultValue": "MEMBER"}
          ]
        },
        {
          "kind": "ENUM",
          "name": "Role",
          "enumValues": [
            {"name": "ADMIN", "isDeprecated": false},
            {"name": "MEMBER", "isDeprecated": false}
          ]
        },
        {
          "kind": "UNION",
          "name": "SearchResult",
          "possibleTypes": [
            {"kind": "OBJECT", "name": "User", "ofType": null}
          ]
        },
        {
          "kind": "SCALAR",
          "name": "DateTime"
        },
        {
          "kind": "OBJECT",
          "name": "__Schema",
          "fields": []
        }
      ]
    }
  }
}`

func buildSample(t *testing.T) *core.SchemaModel {
	t.Helper()
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)
	model, err := Build(doc)
	require.NoError(t, err)
	return model
}

func TestBuildRoots(t *testing.T) {
	model := buildSample(t)

	assert.Equal(t, "Query", model.QueryTypeName)
	assert.Equal(t, "Mutation", model.MutationTypeName)
	assert.Empty(t, model.SubscriptionTypeName)
}

func TestBuildSkipsReservedTypes(t *testing.T) {
	model := buildSample(t)

	assert.False(t, model.HasType("__Schema"))
	assert.Equal(t, []string{
		"Query", "Mutation", "User", "Node", "CreateUserInput", "Role", "SearchResult", "DateTime",
	}, model.TypeNames())
}

func TestBuildObjectType(t *testing.T) {
	model := buildSample(t)

	user := model.Type("User")
	require.NotNil(t, user)
	assert.Equal(t, core.KindObject, user.Kind)
	assert.Equal(t, "A registered user", user.Description)
	assert.Equal(t, []string{"Node"}, user.Interfaces)
	require.Len(t, user.Fields, 4)

	assert.Equal(t, "ID!", user.Fields[0].Type.String())
	assert.Equal(t, "String", user.Fields[1].Type.String())
	assert.Equal(t, "Role", user.Fields[2].Type.String())

	nickname := user.Field("nickname")
	require.NotNil(t, nickname)
	assert.True(t, nickname.IsDeprecated)
	assert.Equal(t, "Use name instead", nickname.DeprecationReason)
}

func TestBuildFieldArguments(t *testing.T) {
	model := buildSample(t)

	query := model.Type("Query")
	require.NotNil(t, query)

	users := query.Field("users")
	require.NotNil(t, users)
	assert.Equal(t, "[User!]!", users.Type.String())
	require.Len(t, users.Args, 1)
	assert.Equal(t, "limit", users.Args[0].Name)
	assert.Equal(t, "Int", users.Args[0].Type.String())
	require.NotNil(t, users.Args[0].DefaultValue)
	assert.Equal(t, "10", *users.Args[0].DefaultValue)
}

func TestBuildInputObject(t *testing.T) {
	model := buildSample(t)

	input := model.Type("CreateUserInput")
	require.NotNil(t, input)
	assert.Equal(t, core.KindInputObject, input.Kind)
	assert.Nil(t, input.Fields)
	require.Len(t, input.InputFields, 2)
	assert.Equal(t, "String!", input.InputFields[0].Type.String())
	require.NotNil(t, input.InputFields[1].DefaultValue)
	assert.Equal(t, "MEMBER", *input.InputFields[1].DefaultValue)
}

func TestBuildEnumUnionScalar(t *testing.T) {
	model := buildSample(t)

	role := model.Type("Role")
	require.NotNil(t, role)
	assert.Equal(t, core.KindEnum, role.Kind)
	require.Len(t, role.EnumValues, 2)
	assert.Equal(t, "ADMIN", role.EnumValues[0].Name)

	search := model.Type("SearchResult")
	require.NotNil(t, search)
	assert.Equal(t, core.KindUnion, search.Kind)
	assert.Equal(t, []string{"User"}, search.PossibleTypes)

	dt := model.Type("DateTime")
	require.NotNil(t, dt)
	assert.Equal(t, core.KindScalar, dt.Kind)
	assert.Nil(t, dt.Fields)
	assert.Nil(t, dt.EnumValues)
}

func TestBuildMissingQueryRoot(t *testing.T) {
	doc, err := Parse([]byte(`{"data": {"__schema": {"queryType": null, "types": []}}}`))
	require.NoError(t, err)

	_, err = Build(doc)
	require.ErrorIs(t, err, core.ErrMissingQueryRoot)
}

func TestBuildUnknownTypeKind(t *testing.T) {
	doc, err := Parse([]byte(`{
		"data": {"__schema": {
			"queryType": {"name": "Query"},
			"types": [
				{"kind": "OBJECT", "name": "Query", "fields": []},
				{"kind": "DIRECTIVE", "name": "Weird"}
			]
		}}
	}`))
	require.NoError(t, err)

	_, err = Build(doc)
	require.Error(t, err)

	var unknown *core.UnknownTypeKindError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Weird", unknown.TypeName)
	assert.Equal(t, "DIRECTIVE", unknown.Kind)
}

func TestBuildMalformedFieldType(t *testing.T) {
	doc, err := Parse([]byte(`{
		"data": {"__schema": {
			"queryType": {"name": "Query"},
			"types": [
				{"kind": "OBJECT", "name": "Query", "fields": [
					{"name": "broken", "args": [], "type": {"kind": "NON_NULL", "name": null, "ofType": null}, "isDeprecated": false}
				]}
			]
		}}
	}`))
	require.NoError(t, err)

	_, err = Build(doc)
	require.Error(t, err)

	var malformed *core.MalformedTypeRefError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), "type Query, field broken")
}

func TestBuildRootNotObject(t *testing.T) {
	doc, err := Parse([]byte(`{
		"data": {"__schema": {
			"queryType": {"name": "Query"},
			"types": [
				{"kind": "ENUM", "name": "Query", "enumValues": [{"name": "A", "isDeprecated": false}]}
			]
		}}
	}`))
	require.NoError(t, err)

	_, err = Build(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "object")
}

func TestParseRejectsMissingSchema(t *testing.T) {
	_, err := Parse([]byte(`{"data": {}}`))
	require.Error(t, err)

	_, err = Parse([]byte(`not json`))
	require.Error(t, err)
}
