package cli

import (
	"fmt"

	"github.com/Dayto852/okx-pro-bot/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration files",
		Long: `Manage okxbot configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  okxbot config init -o okxbot.yaml
  okxbot config validate -f okxbot.yaml`,
	}

	cmd.AddCommand(newConfigInitCmd(), newConfigValidateCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if err := cfg.SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Created default configuration: %s\n", output)
			fmt.Fprintln(out, "\nPut OKX credentials in .env (OKX_API_KEY, OKX_SECRET_KEY, OKX_PASSPHRASE) and run:")
			fmt.Fprintf(out, "  okxbot --config %s candles\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "okxbot.yaml", "output config file path")
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Configuration valid: %s\n", path)
			fmt.Fprintf(out, "  Market: %s %s every %s\n", cfg.Market.Symbol, cfg.Market.Timeframe, cfg.Market.Interval())
			fmt.Fprintf(out, "  Mode: %s (demo=%t)\n", cfg.OKX.Mode, cfg.OKX.Demo())
			fmt.Fprintf(out, "  Journal: %s %s\n", cfg.Journal.Type, cfg.Journal.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "path to config file (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
