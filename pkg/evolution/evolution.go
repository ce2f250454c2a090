// Package evolution aggregates change lists into compatibility scores and
// tracks them across a sequence of schema snapshots.
package evolution

import (
	"strings"

	"github.com/leapstack-labs/leapgraph/pkg/core"
	"github.com/leapstack-labs/leapgraph/pkg/diff"
)

// =============================================================================
// Scoring
// =============================================================================

// Score reduces a change list to a compatibility score in [0,1]:
// 1.0 for an empty list, otherwise 1 - breaking/total.
func Score(changes []core.SchemaChange) float64 {
	if len(changes) == 0 {
		return 1.0
	}

	breaking := 0
	for _, c := range changes {
		if c.Breaking {
			breaking++
		}
	}
	return 1.0 - float64(breaking)/float64(len(changes))
}

// Rating is the qualitative reading of a compatibility score.
type Rating string

// Rating levels.
const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingModerate  Rating = "moderate"
	RatingPoor      Rating = "poor"
)

// Rate maps a score to its rating via fixed thresholds:
// >=0.9 excellent, >=0.7 good, >=0.5 moderate, else poor.
func Rate(score float64) Rating {
	switch {
	case score >= 0.9:
		return RatingExcellent
	case score >= 0.7:
		return RatingGood
	case score >= 0.5:
		return RatingModerate
	default:
		return RatingPoor
	}
}

// ParseRating converts a string to a Rating value.
// Returns the rating and true if valid, or RatingPoor and false if invalid.
func ParseRating(s string) (Rating, bool) {
	switch Rating(strings.ToLower(s)) {
	case RatingExcellent:
		return RatingExcellent, true
	case RatingGood:
		return RatingGood, true
	case RatingModerate:
		return RatingModerate, true
	case RatingPoor:
		return RatingPoor, true
	default:
		return RatingPoor, false
	}
}

// =============================================================================
// Evolution tracking
// =============================================================================

// VersionMetrics summarizes one transition between adjacent snapshots.
type VersionMetrics struct {
	// Index is the 1-based position of the transition's target snapshot.
	Index int `json:"index" yaml:"index"`
	// BreakingCount is the number of breaking changes in the transition.
	BreakingCount int `json:"breaking" yaml:"breaking"`
	// NonBreakingCount is the number of non-breaking changes.
	NonBreakingCount int `json:"non_breaking" yaml:"non_breaking"`
	// Score is the transition's compatibility score.
	Score float64 `json:"score" yaml:"score"`
}

// Track diffs each adjacent snapshot pair in sequence order and returns one
// VersionMetrics per transition. Diffing is deliberately sequential so the
// emission order matches the snapshot order.
//
// Returns core.ErrInsufficientSnapshots for fewer than two snapshots.
func Track(snapshots []*core.SchemaModel) ([]VersionMetrics, error) {
	return TrackWithScalars(snapshots, core.NewScalarSet())
}

// TrackWithScalars is Track with an explicit scalar set for the
// field-type compatibility check.
func TrackWithScalars(snapshots []*core.SchemaModel, scalars core.ScalarSet) ([]VersionMetrics, error) {
	if len(snapshots) < 2 {
		return nil, core.ErrInsufficientSnapshots
	}

	metrics := make([]VersionMetrics, 0, len(snapshots)-1)
	for i := 1; i < len(snapshots); i++ {
		changes := diff.DiffWithScalars(snapshots[i-1], snapshots[i], scalars)

		breaking := 0
		for _, c := range changes {
			if c.Breaking {
				breaking++
			}
		}

		metrics = append(metrics, VersionMetrics{
			Index:            i,
			BreakingCount:    breaking,
			NonBreakingCount: len(changes) - breaking,
			Score:            Score(changes),
		})
	}

	return metrics, nil
}
