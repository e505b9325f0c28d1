package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tamer/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool
	var withRules bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)

			if withRules {
				cfg, _, _, err := config.Load(target)
				if err != nil {
					return fmt.Errorf("load new config: %w", err)
				}
				rulesPath, err := cfg.RulesPath()
				if err != nil {
					return fmt.Errorf("resolve rules path: %w", err)
				}
				if _, err := os.Stat(rulesPath); err == nil && !overwrite {
					fmt.Fprintf(out, "Rule file already exists at %s, leaving it in place\n", rulesPath)
					return nil
				}
				if err := config.CreateSampleRules(rulesPath); err != nil {
					return fmt.Errorf("create sample rules: %w", err)
				}
				fmt.Fprintf(out, "Wrote sample rule file to %s\n", rulesPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	cmd.Flags().BoolVar(&withRules, "with-rules", false, "Also create a sample rule file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rulesPath, err := cfg.RulesPath()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := [][2]string{
				{"log_dir", cfg.Paths.LogDir},
				{"rules_file", rulesPath},
				{"system_mode", yesNo(cfg.Daemon.SystemMode)},
				{"metrics_bind", orNone(cfg.Daemon.MetricsBind)},
				{"log_format", cfg.Logging.Format},
				{"log_level", cfg.Logging.Level},
				{"socket", cfg.SocketPath()},
			}
			fmt.Fprintln(out, renderPairs("Setting", "Value", rows, false))
			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the configuration file location",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, exists, err := config.Load("")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, path)
			if !exists {
				fmt.Fprintln(out, "(file does not exist yet; defaults apply)")
			}
			return nil
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func orNone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "(disabled)"
	}
	return value
}
