package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leapgraph/internal/cli/output"
	"github.com/leapstack-labs/leapgraph/internal/config"
	"github.com/leapstack-labs/leapgraph/internal/state"
	"github.com/leapstack-labs/leapgraph/pkg/core"
	"github.com/leapstack-labs/leapgraph/pkg/introspection"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Store    *state.SnapshotStore
}

// NewCommandContext creates a CommandContext with an open snapshot store.
// Returns the context and a cleanup function that must be called
// (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cmdCtx := NewCommandContextWithoutStore(cmd)

	store := state.NewSnapshotStore()
	path := cmdCtx.Cfg.StatePath
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create state directory: %w", err)
		}
	}
	if err := store.Open(path); err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, nil, err
	}

	cmdCtx.Store = store
	cleanup := func() {
		_ = store.Close()
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext for commands that
// never touch the snapshot database.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := config.Current()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Format))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// loadModelFromSource resolves a schema source to a built model.
// A source is tried as a file path first, then as a snapshot ID, then as
// "endpoint@label" against the snapshot store.
func (c *CommandContext) loadModelFromSource(source string) (*core.SchemaModel, error) {
	document, err := c.loadDocumentFromSource(source)
	if err != nil {
		return nil, err
	}

	doc, err := introspection.Parse(document)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	model, err := introspection.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("build schema model from %s: %w", source, err)
	}
	return model, nil
}

// loadDocumentFromSource resolves a source to raw introspection JSON.
func (c *CommandContext) loadDocumentFromSource(source string) ([]byte, error) {
	if _, err := os.Stat(source); err == nil {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", source, err)
		}
		return data, nil
	}

	if c.Store == nil {
		return nil, fmt.Errorf("schema source %q is not a readable file", source)
	}

	if snap, err := c.Store.GetSnapshot(source); err == nil {
		return snap.Document, nil
	}

	if endpoint, label, ok := splitSourceLabel(source); ok {
		snap, err := c.Store.GetByLabel(endpoint, label)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", source, err)
		}
		return snap.Document, nil
	}

	return nil, fmt.Errorf("schema source %q is neither a file, a snapshot ID, nor endpoint@label", source)
}

// splitSourceLabel splits an "endpoint@label" source string.
func splitSourceLabel(source string) (endpoint, label string, ok bool) {
	for i := len(source) - 1; i >= 0; i-- {
		if source[i] == '@' {
			return source[:i], source[i+1:], i > 0 && i < len(source)-1
		}
	}
	return "", "", false
}
