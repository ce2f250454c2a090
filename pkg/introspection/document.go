package introspection

import (
	"encoding/json"
	"fmt"
)

// Introspection kind strings as they appear on the wire.
const (
	kindScalar      = "SCALAR"
	kindObject      = "OBJECT"
	kindInterface   = "INTERFACE"
	kindUnion       = "UNION"
	kindEnum        = "ENUM"
	kindInputObject = "INPUT_OBJECT"
	kindList        = "LIST"
	kindNonNull     = "NON_NULL"
)

// reservedPrefix marks introspection-internal types (__Schema, __Type, ...).
const reservedPrefix = "__"

// Document is the top-level shape of an introspection response.
type Document struct {
	Data struct {
		Schema *Schema `json:"__schema"`
	} `json:"data"`
}

// Schema is the __schema introspection payload.
type Schema struct {
	QueryType        *RootType `json:"queryType"`
	MutationType     *RootType `json:"mutationType"`
	SubscriptionType *RootType `json:"subscriptionType"`
	Types            []Type    `json:"types"`
}

// RootType names a root operation type.
type RootType struct {
	Name string `json:"name"`
}

// Type is a raw type entry in the document's type list.
type Type struct {
	Kind          string       `json:"kind"`
	Name          string       `json:"name"`
	Description   *string      `json:"description"`
	Fields        []Field      `json:"fields"`
	InputFields   []InputValue `json:"inputFields"`
	Interfaces    []TypeRef    `json:"interfaces"`
	EnumValues    []EnumValue  `json:"enumValues"`
	PossibleTypes []TypeRef    `json:"possibleTypes"`
}

// Field is a raw output field definition.
type Field struct {
	Name              string       `json:"name"`
	Description       *string      `json:"description"`
	Args              []InputValue `json:"args"`
	Type              *TypeRef     `json:"type"`
	IsDeprecated      bool         `json:"isDeprecated"`
	DeprecationReason *string      `json:"deprecationReason"`
}

// InputValue is a raw argument or input field definition.
type InputValue struct {
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	Type         *TypeRef `json:"type"`
	DefaultValue *string  `json:"defaultValue"`
}

// EnumValue is a raw enum value definition.
type EnumValue struct {
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	IsDeprecated      bool    `json:"isDeprecated"`
	DeprecationReason *string `json:"deprecationReason"`
}

// TypeRef is a raw recursively nested kind/name/ofType reference.
// Depth is unbounded; nothing here assumes the nesting limit of whatever
// query produced the document.
type TypeRef struct {
	Kind   string   `json:"kind"`
	Name   *string  `json:"name"`
	OfType *TypeRef `json:"ofType"`
}

// Parse decodes an introspection response from raw JSON.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode introspection document: %w", err)
	}
	if doc.Data.Schema == nil {
		return nil, fmt.Errorf("introspection document has no data.__schema payload")
	}
	return &doc, nil
}
