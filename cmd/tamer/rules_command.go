package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tamer/internal/ipc"
)

func newRulesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Show the active rule set",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Rules()
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				if !resp.Loaded {
					fmt.Fprintf(stdout, "No valid rule set loaded from %s\n", resp.RulesPath)
					return nil
				}

				fmt.Fprintf(stdout, "%s (%s)\n", resp.DisplayName, resp.Description)
				fmt.Fprintf(stdout, "Rule file: %s (digest %08x)\n", resp.RulesPath, resp.Digest)
				fmt.Fprintf(stdout, "Interval:  %s\n", (time.Duration(resp.IntervalMillis) * time.Millisecond).String())

				rows := make([][2]string, 0, len(resp.Rules))
				for _, rule := range resp.Rules {
					rows = append(rows, [2]string{rule.ProcessName, strconv.Itoa(rule.Nice)})
				}
				fmt.Fprintln(stdout, renderPairs("Process", "Nice", rows, true))
				return nil
			})
		},
	}
}
