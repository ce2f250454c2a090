// Package core defines the shared language of the LeapGraph system.
//
// This package contains:
//   - Type reference algebra (TypeRef and its wrapper kinds)
//   - Schema entities (TypeDefinition, FieldDefinition, SchemaModel)
//   - Change records (SchemaChange, Severity)
//   - Typed errors shared across packages
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
