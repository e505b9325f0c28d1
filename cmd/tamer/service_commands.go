package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tamer/internal/daemonctl"
	"tamer/internal/ipc"
	"tamer/internal/rules"
)

func newServiceCommand(ctx *commandContext) *cobra.Command {
	serviceCmd := &cobra.Command{
		Use:   "service",
		Short: "Manage the systemd service for the daemon",
	}

	serviceCmd.AddCommand(newServiceInstallCommand(ctx))
	serviceCmd.AddCommand(newServiceUninstallCommand(ctx))

	return serviceCmd
}

func newServiceInstallCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install a systemd unit that runs the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()

			opts := daemonctl.UnitOptions{
				Description: serviceDescription(ctx),
				System:      cfg != nil && cfg.Daemon.SystemMode,
			}
			if ctx.configFlag != nil {
				opts.ConfigPath = strings.TrimSpace(*ctx.configFlag)
			}

			result, err := daemonctl.InstallService(opts, force)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Service installed: %s\n", result.UnitPath)
			for _, warning := range result.Warnings {
				fmt.Fprintf(out, "Warning: %s\n", warning)
			}
			if result.Enabled {
				fmt.Fprintln(out, "Service enabled for automatic start")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing unit file")
	return cmd
}

func newServiceUninstallCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Stop, disable, and remove the systemd unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			system := cfg != nil && cfg.Daemon.SystemMode

			unitPath, err := daemonctl.UninstallService(system)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Service removed: %s\n", unitPath)
			return nil
		},
	}
}

// serviceDescription prefers the display name from the active rule set so
// the unit carries the operator's configured service identity.
func serviceDescription(ctx *commandContext) string {
	description := rules.DefaultDescription
	_ = ctx.withClient(func(client *ipc.Client) error {
		resp, err := client.Rules()
		if err == nil && resp.Loaded && strings.TrimSpace(resp.Description) != "" {
			description = resp.Description
		}
		return nil
	})
	return description
}
