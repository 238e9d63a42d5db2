package commands

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/petal-labs/loupe/core"
)

func (a *App) newDocumentsCommand() *cobra.Command {
	docsCmd := &cobra.Command{
		Use:   "documents",
		Short: "Manage documents",
		Long:  `Add, fetch, and delete documents in an index.`,
	}

	addCmd := &cobra.Command{
		Use:   "add <index>",
		Short: "Add or replace documents",
		Long: `Add documents to an index from a JSON array, read from --file or stdin.
Documents sharing an identifier with an existing one replace it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.resolveClient()
			if err != nil {
				return err
			}

			var input io.Reader = a.stdin
			if a.docsFile != "" {
				f, err := os.Open(a.docsFile)
				if err != nil {
					return exitWithCode(ExitValidation, err)
				}
				defer f.Close()
				input = f
			}

			var documents []map[string]any
			if err := json.NewDecoder(input).Decode(&documents); err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("documents must be a JSON array: %w", err))
			}

			info, err := client.Index(args[0]).AddDocuments(cmd.Context(), documents, a.docsPrimaryKey)
			if err != nil {
				return a.handleServiceError(err)
			}
			return a.printTask(info)
		},
	}
	addCmd.Flags().StringVar(&a.docsFile, "file", "", "JSON file to read documents from (default stdin)")
	addCmd.Flags().StringVar(&a.docsPrimaryKey, "primary-key", "", "primary key field for first-time addition")

	getCmd := &cobra.Command{
		Use:   "get <index> <id>",
		Short: "Fetch one document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.resolveClient()
			if err != nil {
				return err
			}

			idx := client.Index(args[0])
			var doc map[string]any
			var getErr error
			if len(a.docsFields) > 0 {
				q := core.NewDocumentQuery().WithFields(a.docsFields...)
				doc, getErr = core.GetDocumentWith[map[string]any](cmd.Context(), idx, args[1], q)
			} else {
				doc, getErr = core.GetDocument[map[string]any](cmd.Context(), idx, args[1])
			}
			if getErr != nil {
				return a.handleServiceError(getErr)
			}
			return a.outputJSON(doc)
		},
	}
	getCmd.Flags().StringSliceVar(&a.docsFields, "fields", nil, "restrict returned fields")

	deleteCmd := &cobra.Command{
		Use:   "delete <index> [id...]",
		Short: "Delete documents",
		Long: `Delete documents by identifier, by filter, or all of them.

Examples:
  loupe documents delete movies 17 23
  loupe documents delete movies --filter 'genres = horror'
  loupe documents delete movies --all`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.resolveClient()
			if err != nil {
				return err
			}

			idx := client.Index(args[0])
			ids := args[1:]

			var info *core.TaskInfo
			switch {
			case a.docsAll:
				info, err = idx.DeleteAllDocuments(cmd.Context())
			case a.docsFilter != "":
				q := core.NewDocumentDeletionQuery().WithFilter(a.docsFilter)
				info, err = idx.DeleteDocumentsWith(cmd.Context(), q)
			case len(ids) == 1:
				info, err = idx.DeleteDocument(cmd.Context(), ids[0])
			case len(ids) > 1:
				info, err = idx.DeleteDocuments(cmd.Context(), ids)
			default:
				return exitWithCode(ExitValidation, fmt.Errorf("nothing to delete: pass document ids, --filter, or --all"))
			}
			if err != nil {
				return a.handleServiceError(err)
			}
			return a.printTask(info)
		},
	}
	deleteCmd.Flags().StringVar(&a.docsFilter, "filter", "", "delete documents matching this filter expression")
	deleteCmd.Flags().BoolVar(&a.docsAll, "all", false, "delete every document in the index")

	docsCmd.AddCommand(addCmd)
	docsCmd.AddCommand(getCmd)
	docsCmd.AddCommand(deleteCmd)

	return docsCmd
}
