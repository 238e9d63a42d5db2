package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/petal-labs/loupe/core"
)

func (a *App) newTaskCommand() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task <uid>",
		Short: "Show an asynchronous task",
		Long: `Show the state of one asynchronous task.

With --wait the command polls until the task reaches a terminal state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("task uid must be a number: %q", args[0]))
			}

			client, err := a.resolveClient()
			if err != nil {
				return err
			}

			var task *core.Task
			if a.taskWait {
				opts, err := a.waitOptions()
				if err != nil {
					return err
				}
				task, err = client.WaitForTask(cmd.Context(), uid, opts...)
				if err != nil {
					return a.handleServiceError(err)
				}
			} else {
				task, err = client.GetTask(cmd.Context(), uid)
				if err != nil {
					return a.handleServiceError(err)
				}
			}

			if a.jsonOutput {
				return a.outputJSON(task)
			}

			fmt.Fprintf(a.stdout, "task %d: %s (%s)\n", task.UID, task.Status, task.Type)
			if task.IndexUID != "" {
				fmt.Fprintf(a.stdout, "  index: %s\n", task.IndexUID)
			}
			if task.Error != nil {
				fmt.Fprintf(a.stdout, "  error: %s (%s)\n", task.Error.Message, task.Error.Code)
			}
			return nil
		},
	}

	taskCmd.Flags().BoolVar(&a.taskWait, "wait", false, "poll until the task reaches a terminal state")
	taskCmd.Flags().StringVar(&a.taskInterval, "interval", "", "poll interval, e.g. 100ms (default 50ms)")
	taskCmd.Flags().StringVar(&a.taskTimeout, "timeout", "", "overall wait timeout, e.g. 30s (default 5s)")

	return taskCmd
}

func (a *App) waitOptions() ([]core.WaitOption, error) {
	var opts []core.WaitOption
	if a.taskInterval != "" {
		d, err := time.ParseDuration(a.taskInterval)
		if err != nil {
			return nil, exitWithCode(ExitValidation, fmt.Errorf("invalid --interval: %w", err))
		}
		opts = append(opts, core.WithPollInterval(d))
	}
	if a.taskTimeout != "" {
		d, err := time.ParseDuration(a.taskTimeout)
		if err != nil {
			return nil, exitWithCode(ExitValidation, fmt.Errorf("invalid --timeout: %w", err))
		}
		opts = append(opts, core.WithPollTimeout(d))
	}
	return opts, nil
}
