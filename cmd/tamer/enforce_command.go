package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tamer/internal/ipc"
	"tamer/internal/scheduler"
)

func newEnforceCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "enforce",
		Short: "Run one enforcement pass immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Cycle()
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				if resp.Scheduler.State != string(scheduler.StateReady) {
					fmt.Fprintln(stdout, "No valid rule set loaded; nothing to enforce")
					if resp.Scheduler.LastError != "" {
						fmt.Fprintf(stdout, "Last error: %s\n", resp.Scheduler.LastError)
					}
					return nil
				}
				fmt.Fprintf(stdout, "Pass: matched %d, applied %d, already ok %d, skipped %d\n",
					resp.Scheduler.Matched, resp.Scheduler.Applied, resp.Scheduler.AlreadyOK, resp.Scheduler.Skipped)
				return nil
			})
		},
	}
}
