package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapgraph/pkg/core"
	"github.com/leapstack-labs/leapgraph/pkg/diff"
	"github.com/leapstack-labs/leapgraph/pkg/evolution"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Old       string  // Old schema source
	New       string  // New schema source
	MinScore  float64 // Fail below this compatibility score
	MinRating string  // Fail below this rating
}

// checkReport is the structured-output shape of a check run.
type checkReport struct {
	Passed   bool             `json:"passed" yaml:"passed"`
	Breaking int              `json:"breaking" yaml:"breaking"`
	Total    int              `json:"total" yaml:"total"`
	Score    float64          `json:"score" yaml:"score"`
	Rating   evolution.Rating `json:"rating" yaml:"rating"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Pass/fail compatibility gate for CI",
		Long: `Compare two schema versions and exit non-zero when the change
fails the gate. The default gate fails on any breaking change; a score
or rating threshold loosens it.

Each source is an introspection JSON file, a snapshot ID, or
endpoint@label.`,
		Example: `  # Fail on any breaking change
  leapgraph check --old api@v1.0.0 --new schema.json

  # Allow some breakage but require a good score
  leapgraph check --old old.json --new new.json --min-score 0.8

  # Gate on rating instead
  leapgraph check --old old.json --new new.json --min-rating good`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Old, "old", "", "Old schema source (required)")
	cmd.Flags().StringVar(&opts.New, "new", "", "New schema source (required)")
	cmd.Flags().Float64Var(&opts.MinScore, "min-score", 0, "Pass when the score is at least this value")
	cmd.Flags().StringVar(&opts.MinRating, "min-rating", "", "Pass when the rating is at least this level")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	oldModel, err := cmdCtx.loadModelFromSource(opts.Old)
	if err != nil {
		return err
	}
	newModel, err := cmdCtx.loadModelFromSource(opts.New)
	if err != nil {
		return err
	}

	scalars := core.NewScalarSet(cmdCtx.Cfg.CustomScalars...)
	changes := diff.DiffWithScalars(oldModel, newModel, scalars)

	breaking := 0
	for _, c := range changes {
		if c.Breaking {
			breaking++
		}
	}
	score := evolution.Score(changes)
	rating := evolution.Rate(score)

	passed, err := gatePassed(opts, breaking, score, rating)
	if err != nil {
		return err
	}

	if cmdCtx.Renderer.Structured() {
		report := checkReport{
			Passed:   passed,
			Breaking: breaking,
			Total:    len(changes),
			Score:    score,
			Rating:   rating,
		}
		if err := cmdCtx.Renderer.Emit(report); err != nil {
			return err
		}
	} else {
		verdict := "PASS"
		if !passed {
			verdict = "FAIL"
		}
		cmdCtx.Renderer.Printf("%s: %d breaking of %d changes, score %.2f (%s)\n",
			verdict, breaking, len(changes), score, rating)
	}

	if !passed {
		return fmt.Errorf("compatibility check failed")
	}
	return nil
}

// gatePassed applies the configured gate. Score and rating thresholds
// replace the default any-breaking-change rule; when both are given the
// check must clear both.
func gatePassed(opts *CheckOptions, breaking int, score float64, rating evolution.Rating) (bool, error) {
	if opts.MinScore == 0 && opts.MinRating == "" {
		return breaking == 0, nil
	}

	if opts.MinScore > 0 && score < opts.MinScore {
		return false, nil
	}
	if opts.MinRating != "" {
		minRating, ok := evolution.ParseRating(opts.MinRating)
		if !ok {
			return false, fmt.Errorf("unknown rating %q", opts.MinRating)
		}
		if ratingRank(rating) < ratingRank(minRating) {
			return false, nil
		}
	}
	return true, nil
}

// ratingRank orders ratings from poor (0) to excellent (3).
func ratingRank(r evolution.Rating) int {
	switch r {
	case evolution.RatingExcellent:
		return 3
	case evolution.RatingGood:
		return 2
	case evolution.RatingModerate:
		return 1
	default:
		return 0
	}
}
