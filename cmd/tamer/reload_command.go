package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tamer/internal/ipc"
	"tamer/internal/scheduler"
)

func newReloadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Re-read the rule file and run an enforcement pass now",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Reload()
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				if resp.Scheduler.LastError != "" {
					fmt.Fprintf(stdout, "Reload failed: %s\n", resp.Scheduler.LastError)
					if resp.Scheduler.State == string(scheduler.StateReady) {
						fmt.Fprintf(stdout, "Previous rule set retained (%d rule(s))\n", resp.Scheduler.RuleCount)
					}
					return nil
				}
				fmt.Fprintf(stdout, "Rules active: %d (digest %08x)\n", resp.Scheduler.RuleCount, resp.Scheduler.Digest)
				fmt.Fprintf(stdout, "Pass: matched %d, applied %d, already ok %d, skipped %d\n",
					resp.Scheduler.Matched, resp.Scheduler.Applied, resp.Scheduler.AlreadyOK, resp.Scheduler.Skipped)
				return nil
			})
		},
	}
}
