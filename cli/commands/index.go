package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *App) newIndexCommand() *cobra.Command {
	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "Manage indexes",
		Long:  `Create, inspect, and delete indexes on the search service.`,
	}

	createCmd := &cobra.Command{
		Use:   "create <uid>",
		Short: "Create an index",
		Long: `Create an index with the given unique identifier.

Creation is asynchronous: the command prints the enqueued task. Follow it
with 'loupe task <uid> --wait'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.resolveClient()
			if err != nil {
				return err
			}

			info, err := client.CreateIndex(cmd.Context(), args[0], a.indexPrimaryKey)
			if err != nil {
				return a.handleServiceError(err)
			}
			return a.printTask(info)
		},
	}
	createCmd.Flags().StringVar(&a.indexPrimaryKey, "primary-key", "", "primary key field (inferred from documents when empty)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.resolveClient()
			if err != nil {
				return err
			}

			results, err := client.ListIndexes(cmd.Context(), nil)
			if err != nil {
				return a.handleServiceError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(results)
			}

			if len(results.Results) == 0 {
				fmt.Fprintln(a.stdout, "No indexes.")
				return nil
			}

			w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "UID\tPRIMARY KEY\tCREATED")
			for _, idx := range results.Results {
				pk := "-"
				if idx.PrimaryKey != nil {
					pk = *idx.PrimaryKey
				}
				created := "-"
				if idx.CreatedAt != nil {
					created = idx.CreatedAt.Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", idx.UID, pk, created)
			}
			return w.Flush()
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <uid>",
		Short: "Show one index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.resolveClient()
			if err != nil {
				return err
			}

			idx, err := client.GetIndex(cmd.Context(), args[0])
			if err != nil {
				return a.handleServiceError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(idx)
			}

			pk := "-"
			if idx.PrimaryKey != nil {
				pk = *idx.PrimaryKey
			}
			fmt.Fprintf(a.stdout, "uid:         %s\n", idx.UID)
			fmt.Fprintf(a.stdout, "primary key: %s\n", pk)
			if idx.CreatedAt != nil {
				fmt.Fprintf(a.stdout, "created:     %s\n", idx.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <uid>",
		Short: "Delete an index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.resolveClient()
			if err != nil {
				return err
			}

			info, err := client.Index(args[0]).Delete(cmd.Context())
			if err != nil {
				return a.handleServiceError(err)
			}
			return a.printTask(info)
		},
	}

	indexCmd.AddCommand(createCmd)
	indexCmd.AddCommand(listCmd)
	indexCmd.AddCommand(getCmd)
	indexCmd.AddCommand(deleteCmd)

	return indexCmd
}
