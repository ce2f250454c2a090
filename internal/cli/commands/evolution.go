package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapgraph/internal/state"
	"github.com/leapstack-labs/leapgraph/pkg/core"
	"github.com/leapstack-labs/leapgraph/pkg/evolution"
	"github.com/leapstack-labs/leapgraph/pkg/introspection"
	"github.com/spf13/cobra"
)

// EvolutionOptions holds options for the evolution command.
type EvolutionOptions struct {
	Endpoint string // Endpoint name or URL whose history is tracked
}

// transitionRow is the structured-output shape of one snapshot transition.
type transitionRow struct {
	Index       int              `json:"index" yaml:"index"`
	From        string           `json:"from" yaml:"from"`
	To          string           `json:"to" yaml:"to"`
	Breaking    int              `json:"breaking" yaml:"breaking"`
	NonBreaking int              `json:"non_breaking" yaml:"non_breaking"`
	Score       float64          `json:"score" yaml:"score"`
	Rating      evolution.Rating `json:"rating" yaml:"rating"`
}

// NewEvolutionCommand creates the evolution command.
func NewEvolutionCommand() *cobra.Command {
	opts := &EvolutionOptions{}
	cmd := &cobra.Command{
		Use:   "evolution <endpoint>",
		Short: "Track compatibility across an endpoint's snapshot history",
		Long: `Track how an endpoint's schema evolved across its stored
snapshots. Each adjacent snapshot pair is diffed in order and reported
as one transition with its breaking and non-breaking change counts,
compatibility score and rating.

Requires at least two stored snapshots for the endpoint.`,
		Example: `  # Track a configured endpoint
  leapgraph evolution api

  # Track by URL
  leapgraph evolution https://api.example.com/graphql`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Endpoint = args[0]
			return runEvolution(cmd, opts)
		},
	}

	return cmd
}

func runEvolution(cmd *cobra.Command, opts *EvolutionOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ep, err := cmdCtx.Cfg.Endpoint(opts.Endpoint)
	if err != nil {
		return err
	}

	snaps, err := cmdCtx.Store.ListSnapshots(ep.URL)
	if err != nil {
		return err
	}

	models, err := buildSnapshotModels(snaps)
	if err != nil {
		return err
	}

	scalars := core.NewScalarSet(cmdCtx.Cfg.CustomScalars...)
	metrics, err := evolution.TrackWithScalars(models, scalars)
	if err != nil {
		return fmt.Errorf("track %s: %w", ep.URL, err)
	}

	if cmdCtx.Renderer.Structured() {
		rows := make([]transitionRow, 0, len(metrics))
		for _, m := range metrics {
			rows = append(rows, transitionRow{
				Index:       m.Index,
				From:        snapshotRef(snaps[m.Index-1]),
				To:          snapshotRef(snaps[m.Index]),
				Breaking:    m.BreakingCount,
				NonBreaking: m.NonBreakingCount,
				Score:       m.Score,
				Rating:      evolution.Rate(m.Score),
			})
		}
		return cmdCtx.Renderer.Emit(rows)
	}

	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{
			fmt.Sprintf("%d", m.Index),
			snapshotRef(snaps[m.Index-1]),
			snapshotRef(snaps[m.Index]),
			fmt.Sprintf("%d", m.BreakingCount),
			fmt.Sprintf("%d", m.NonBreakingCount),
			fmt.Sprintf("%.2f", m.Score),
			string(evolution.Rate(m.Score)),
		})
	}
	cmdCtx.Renderer.Table([]string{"#", "From", "To", "Breaking", "Non-breaking", "Score", "Rating"}, rows)

	return nil
}

// buildSnapshotModels builds a schema model per stored snapshot, in the
// order the snapshots were stored.
func buildSnapshotModels(snaps []*state.Snapshot) ([]*core.SchemaModel, error) {
	models := make([]*core.SchemaModel, 0, len(snaps))
	for _, s := range snaps {
		doc, err := introspection.Parse(s.Document)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", s.ID, err)
		}
		model, err := introspection.Build(doc)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", s.ID, err)
		}
		models = append(models, model)
	}
	return models, nil
}

// snapshotRef is a short human reference for a snapshot: its label when
// it has one, otherwise a truncated ID.
func snapshotRef(s *state.Snapshot) string {
	if s.Label != "" {
		return s.Label
	}
	if len(s.ID) > 8 {
		return s.ID[:8]
	}
	return s.ID
}
