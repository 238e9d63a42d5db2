package commands

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/petal-labs/loupe/core"
)

func (a *App) newSearchCommand() *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   "search <index> [query]",
		Short: "Search an index",
		Long: `Run a search against an index. An empty query matches every document.

Examples:
  loupe search movies "shazam"
  loupe search movies "btm" --filter 'genres = comedy' --limit 5
  loupe search movies --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.resolveClient()
			if err != nil {
				return err
			}

			q := core.NewSearchQuery()
			if len(args) == 2 {
				q = q.WithQuery(args[1])
			}
			if a.searchLimit > 0 {
				q = q.WithLimit(a.searchLimit)
			}
			if a.searchOffset > 0 {
				q = q.WithOffset(a.searchOffset)
			}
			if a.searchFilter != "" {
				q = q.WithFilter(a.searchFilter)
			}

			results, err := core.Search[map[string]any](cmd.Context(), client.Index(args[0]), q)
			if err != nil {
				return a.handleServiceError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(results)
			}

			fmt.Fprintf(a.stdout, "%d hits (%d ms)\n", results.EstimatedTotalHits, results.ProcessingTimeMs)
			for _, hit := range results.Hits {
				line, err := json.Marshal(hit)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "  %s\n", line)
			}
			return nil
		},
	}

	searchCmd.Flags().Int64Var(&a.searchLimit, "limit", 0, "maximum number of hits (0 = service default)")
	searchCmd.Flags().Int64Var(&a.searchOffset, "offset", 0, "number of hits to skip")
	searchCmd.Flags().StringVar(&a.searchFilter, "filter", "", "filter expression over filterable attributes")

	return searchCmd
}
