package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		Long:  `Check whether the search service answers its health endpoint.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.resolveClient()
			if err != nil {
				return err
			}

			status, err := client.Health(cmd.Context())
			if err != nil {
				return a.handleServiceError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(status)
			}
			fmt.Fprintf(a.stdout, "%s: %s\n", client.Host(), status.Status)
			return nil
		},
	}
}
