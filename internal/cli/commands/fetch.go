package commands

import (
	"fmt"
	"sync"
	"time"

	"github.com/leapstack-labs/leapgraph/internal/fetch"
	"github.com/leapstack-labs/leapgraph/pkg/introspection"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// FetchOptions holds options for the fetch command.
type FetchOptions struct {
	Endpoints []string      // Endpoint names or URLs; empty means all configured
	Label     string        // Snapshot label, e.g. "v2.3.0"
	Timeout   time.Duration // Per-request timeout
}

// fetchResult pairs an endpoint URL with its introspection document.
type fetchResult struct {
	URL      string
	Document []byte
}

// NewFetchCommand creates the fetch command.
func NewFetchCommand() *cobra.Command {
	opts := &FetchOptions{}
	cmd := &cobra.Command{
		Use:   "fetch [endpoint...]",
		Short: "Fetch schemas via introspection and store snapshots",
		Long: `Fetch one or more GraphQL schemas via introspection and store
them as snapshots in the local history.

Endpoints are named in leapgraph.yaml, or given directly as URLs.
With no arguments, every configured endpoint is fetched. Each fetched
document is validated (parsed and built into a schema model) before it
is stored, so the history never contains a document the other commands
cannot read.`,
		Example: `  # Fetch every configured endpoint
  leapgraph fetch

  # Fetch one endpoint by name, labeled with a release version
  leapgraph fetch api --label v2.3.0

  # Fetch a raw URL without a config file
  leapgraph fetch https://api.example.com/graphql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Endpoints = args
			return runFetch(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Label, "label", "", "Label for the stored snapshots")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", fetch.DefaultTimeout, "Per-request timeout")

	return cmd
}

func runFetch(cmd *cobra.Command, opts *FetchOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	urls, err := resolveEndpoints(cmdCtx, opts.Endpoints)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no endpoints given and none configured")
	}

	// Fetch concurrently, one request per endpoint.
	g, ctx := errgroup.WithContext(cmd.Context())
	var mu sync.Mutex
	results := make([]fetchResult, 0, len(urls))

	for _, url := range urls {
		g.Go(func() error {
			client := fetch.NewClient(url)
			client.SetTimeout(opts.Timeout)

			cmdCtx.Logger.Debug("fetching schema", "endpoint", url)
			document, err := client.Fetch(ctx)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", url, err)
			}

			// Reject documents the model builder cannot read.
			doc, err := introspection.Parse(document)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", url, err)
			}
			if _, err := introspection.Build(doc); err != nil {
				return fmt.Errorf("fetch %s: %w", url, err)
			}

			mu.Lock()
			results = append(results, fetchResult{URL: url, Document: document})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Store sequentially so snapshot rowids follow a stable order.
	for _, res := range results {
		snap, err := cmdCtx.Store.SaveSnapshot(res.URL, opts.Label, res.Document)
		if err != nil {
			return fmt.Errorf("store snapshot for %s: %w", res.URL, err)
		}
		cmdCtx.Renderer.Printf("Stored snapshot %s for %s\n", snap.ID, res.URL)
	}

	return nil
}

// resolveEndpoints turns endpoint names into URLs, falling back to every
// configured endpoint when no names are given.
func resolveEndpoints(cmdCtx *CommandContext, names []string) ([]string, error) {
	if len(names) == 0 {
		urls := make([]string, 0, len(cmdCtx.Cfg.Endpoints))
		for _, ep := range cmdCtx.Cfg.Endpoints {
			urls = append(urls, ep.URL)
		}
		return urls, nil
	}

	urls := make([]string, 0, len(names))
	for _, name := range names {
		ep, err := cmdCtx.Cfg.Endpoint(name)
		if err != nil {
			return nil, err
		}
		urls = append(urls, ep.URL)
	}
	return urls, nil
}
