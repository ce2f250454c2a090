package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapgraph/pkg/sdl"
	"github.com/spf13/cobra"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Source string // Introspection JSON file, snapshot ID or endpoint@label
	Type   string // Render only this type
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}
	cmd := &cobra.Command{
		Use:   "render <source>",
		Short: "Render a schema as SDL",
		Long: `Render a schema in GraphQL Schema Definition Language.

The source is an introspection JSON file, a snapshot ID, or
endpoint@label for the most recent snapshot carrying that label.
Types are rendered in the order the source document declares them.`,
		Example: `  # Render an introspection result from a file
  leapgraph render schema.json

  # Render a stored snapshot
  leapgraph render 4f7c2b1a-...

  # Render a labeled snapshot
  leapgraph render https://api.example.com/graphql@v2.3.0

  # Render a single type
  leapgraph render schema.json --type User`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", "", "Render only the named type")

	return cmd
}

func runRender(cmd *cobra.Command, opts *RenderOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	model, err := cmdCtx.loadModelFromSource(opts.Source)
	if err != nil {
		return err
	}

	if opts.Type != "" {
		def := model.Type(opts.Type)
		if def == nil {
			return fmt.Errorf("type %q not found in schema", opts.Type)
		}
		cmdCtx.Renderer.Printf("%s\n", sdl.RenderType(def))
		return nil
	}

	cmdCtx.Renderer.Printf("%s\n", sdl.RenderSchema(model))
	return nil
}
