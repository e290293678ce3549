package cli

import (
	"fmt"
	"os"

	"github.com/Dayto852/okx-pro-bot/config"
	"github.com/Dayto852/okx-pro-bot/internal/logger"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// rootOptions carries the persistent flags to subcommands.
type rootOptions struct {
	ConfigPath string
	EnvFile    string
	LogLevel   string
	LogPretty  bool

	cfg *config.Config
}

// config loads the configuration on first use so commands that do not need
// it (version, config init) work with a broken environment.
func (ro *rootOptions) config() (*config.Config, error) {
	if ro.cfg != nil {
		return ro.cfg, nil
	}
	cfg, err := config.Load(ro.ConfigPath, ro.EnvFile)
	if err != nil {
		return nil, err
	}
	ro.cfg = cfg
	return cfg, nil
}

func NewRootCmd() *cobra.Command {
	ro := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "okxbot",
		Short: "OKX bot: trade journal and market data tooling",
		Long: `okxbot keeps an append-only trade journal and shows OKX market data.

It provides tools for:
  - Logging trades to a CSV (or SQLite) journal and reading them back
  - Balance and win-rate summaries of the journal
  - Fetching and polling OHLCV candles from OKX
  - Managing the bot configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&ro.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&ro.EnvFile, "env-file", ".env", "dotenv file with OKX_* and market settings")
	cmd.PersistentFlags().StringVar(&ro.LogLevel, "log-level", "", "Log level: debug|info|warn|error (default $LOG_LEVEL or info)")
	cmd.PersistentFlags().BoolVar(&ro.LogPretty, "log-pretty", false, "Human-readable log output")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger.Init(ro.LogLevel, ro.LogPretty)
		return nil
	}

	cmd.AddCommand(
		newTradesCmd(ro),
		newCandlesCmd(ro),
		newCoinsCmd(ro),
		newStrategyCmd(ro),
		newConfigCmd(),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "okxbot version %s\n", version)
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
