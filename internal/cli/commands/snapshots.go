package commands

import (
	"time"

	"github.com/spf13/cobra"
)

// SnapshotsOptions holds options for the snapshots command.
type SnapshotsOptions struct {
	Endpoint string // Filter by endpoint URL; empty lists everything
	Delete   string // Snapshot ID to delete
}

// snapshotRow is the structured-output shape of one snapshot.
type snapshotRow struct {
	ID        string    `json:"id" yaml:"id"`
	Endpoint  string    `json:"endpoint" yaml:"endpoint"`
	Label     string    `json:"label,omitempty" yaml:"label,omitempty"`
	Checksum  string    `json:"checksum" yaml:"checksum"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewSnapshotsCommand creates the snapshots command.
func NewSnapshotsCommand() *cobra.Command {
	opts := &SnapshotsOptions{}
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List or delete stored schema snapshots",
		Long: `List the schema snapshots in the local history, oldest first.

Snapshots are stored by the fetch command and referenced by ID or by
endpoint@label in the render, diff and check commands.`,
		Example: `  # List all snapshots
  leapgraph snapshots

  # List snapshots for one endpoint
  leapgraph snapshots --endpoint https://api.example.com/graphql

  # Delete a snapshot by ID
  leapgraph snapshots --delete 4f7c2b1a-...`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshots(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "Only list snapshots for this endpoint URL")
	cmd.Flags().StringVar(&opts.Delete, "delete", "", "Delete the snapshot with this ID")

	return cmd
}

func runSnapshots(cmd *cobra.Command, opts *SnapshotsOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if opts.Delete != "" {
		if err := cmdCtx.Store.DeleteSnapshot(opts.Delete); err != nil {
			return err
		}
		cmdCtx.Renderer.Printf("Deleted snapshot %s\n", opts.Delete)
		return nil
	}

	snaps, err := cmdCtx.Store.ListSnapshots(opts.Endpoint)
	if err != nil {
		return err
	}

	if cmdCtx.Renderer.Structured() {
		rows := make([]snapshotRow, 0, len(snaps))
		for _, s := range snaps {
			rows = append(rows, snapshotRow{
				ID:        s.ID,
				Endpoint:  s.Endpoint,
				Label:     s.Label,
				Checksum:  s.Checksum,
				CreatedAt: s.CreatedAt,
			})
		}
		return cmdCtx.Renderer.Emit(rows)
	}

	if len(snaps) == 0 {
		cmdCtx.Renderer.Printf("No snapshots stored\n")
		return nil
	}

	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		label := s.Label
		if label == "" {
			label = "-"
		}
		rows = append(rows, []string{
			s.ID,
			s.Endpoint,
			label,
			s.Checksum[:12],
			s.CreatedAt.Format(time.RFC3339),
		})
	}
	cmdCtx.Renderer.Table([]string{"ID", "Endpoint", "Label", "Checksum", "Created"}, rows)

	return nil
}
