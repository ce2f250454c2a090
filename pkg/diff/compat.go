package diff

import "github.com/leapstack-labs/leapgraph/pkg/core"

// compatibleChange reports whether a field type change is safe for
// existing consumers under the fixed compatibility table: each scalar in
// the set forms its own singleton class, so a change is compatible only
// when both sides resolve to the same scalar base name.
//
// This is intentionally conservative and judged by base name alone.
// Nullability relaxation (Int -> Int!) therefore counts as compatible,
// and list-depth changes on the same scalar do too, even though real
// schema evolution rules treat some of those as breaking. Modeling
// nullability and list depth as first-class dimensions is the known
// follow-up here.
func compatibleChange(oldRef, newRef core.TypeRef, scalars core.ScalarSet) bool {
	oldBase := oldRef.BaseName()
	newBase := newRef.BaseName()
	return oldBase == newBase && scalars.Contains(oldBase)
}
