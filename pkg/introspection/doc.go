// Package introspection parses schema-introspection documents and builds
// normalized core.SchemaModel snapshots from them.
//
// The package accepts only introspection-shaped JSON input; SDL text is not
// parsed. All validation happens here at build time, so downstream diffing
// and rendering can assume well-formed models.
package introspection
