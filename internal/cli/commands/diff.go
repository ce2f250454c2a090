package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapgraph/pkg/core"
	"github.com/leapstack-labs/leapgraph/pkg/diff"
	"github.com/leapstack-labs/leapgraph/pkg/evolution"
	"github.com/spf13/cobra"
)

// DiffOptions holds options for the diff command.
type DiffOptions struct {
	Old            string // Old schema source
	New            string // New schema source
	FailOnBreaking bool   // Exit non-zero when breaking changes are found
}

// diffReport is the structured-output shape of a diff run.
type diffReport struct {
	Changes []core.SchemaChange `json:"changes" yaml:"changes"`
	Score   float64             `json:"score" yaml:"score"`
	Rating  evolution.Rating    `json:"rating" yaml:"rating"`
}

// NewDiffCommand creates the diff command.
func NewDiffCommand() *cobra.Command {
	opts := &DiffOptions{}
	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Compare two schemas and classify the changes",
		Long: `Compare two schema versions and report every structural change
with its severity and whether it breaks existing clients.

Each source is an introspection JSON file, a snapshot ID, or
endpoint@label. The report ends with a compatibility score
(1 - breaking/total) and its rating.

Changes below the configured minimum severity are dropped from the
report; the score is always computed over the full change list.`,
		Example: `  # Compare two introspection files
  leapgraph diff old.json new.json

  # Compare two labeled snapshots
  leapgraph diff api@v1.0.0 api@v2.0.0

  # Only report major and critical changes
  leapgraph diff old.json new.json --severity major

  # Gate a CI pipeline
  leapgraph diff old.json new.json --fail-on-breaking`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Old = args[0]
			opts.New = args[1]
			return runDiff(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.FailOnBreaking, "fail-on-breaking", false, "Exit with an error when breaking changes are found")

	return cmd
}

func runDiff(cmd *cobra.Command, opts *DiffOptions) error {
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

	score := evolution.Score(changes)
	rating := evolution.Rate(score)

	minSeverity, ok := core.ParseSeverity(cmdCtx.Cfg.Severity)
	if !ok {
		return fmt.Errorf("unknown severity %q", cmdCtx.Cfg.Severity)
	}
	reported := diff.FilterBySeverity(changes, minSeverity)

	if cmdCtx.Renderer.Structured() {
		if err := cmdCtx.Renderer.Emit(diffReport{Changes: reported, Score: score, Rating: rating}); err != nil {
			return err
		}
	} else {
		renderChanges(cmdCtx, reported)
		cmdCtx.Renderer.Printf("\nCompatibility score: %.2f (%s)\n", score, rating)
	}

	if opts.FailOnBreaking && hasBreaking(changes) {
		return fmt.Errorf("breaking changes found")
	}
	return nil
}

// renderChanges prints a change table, or a short note when the filtered
// list is empty.
func renderChanges(cmdCtx *CommandContext, changes []core.SchemaChange) {
	if len(changes) == 0 {
		cmdCtx.Renderer.Printf("No changes at or above the configured severity\n")
		return
	}

	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		breaking := ""
		if c.Breaking {
			breaking = "yes"
		}
		rows = append(rows, []string{
			string(c.Kind),
			c.Severity.String(),
			breaking,
			c.Description,
		})
	}
	cmdCtx.Renderer.Table([]string{"Change", "Severity", "Breaking", "Description"}, rows)
}

func hasBreaking(changes []core.SchemaChange) bool {
	for _, c := range changes {
		if c.Breaking {
			return true
		}
	}
	return false
}
