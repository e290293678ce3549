package cli

import (
	"encoding/csv"
	"fmt"

	"github.com/Dayto852/okx-pro-bot/journal"
	"github.com/spf13/cobra"
)

type tradesOptions struct {
	path string
}

func newTradesCmd(ro *rootOptions) *cobra.Command {
	to := &tradesOptions{}

	cmd := &cobra.Command{
		Use:   "trades",
		Short: "Log and review trades",
		Long: `Manage the append-only trade journal.

Subcommands:
  init     - Create the journal with its header if missing
  log      - Append one trade
  list     - Show every logged trade
  export   - Print trades as Org-mode blocks
  summary  - Balance, win rate and profit factor

Examples:
  okxbot trades log --symbol BTC/USDT:USDT --side buy --entry 64000 --exit 64500 --qty 0.01 --pnl 5
  okxbot trades list --symbol BTC/USDT:USDT
  okxbot trades summary`,
	}

	cmd.PersistentFlags().StringVar(&to.path, "trades", "", "journal path (overrides config)")

	cmd.AddCommand(
		newTradesInitCmd(ro, to),
		newTradesLogCmd(ro, to),
		newTradesListCmd(ro, to),
		newTradesExportCmd(ro, to),
		newTradesSummaryCmd(ro, to),
	)
	return cmd
}

func openJournal(ro *rootOptions, to *tradesOptions) (journal.TradeLog, error) {
	cfg, err := ro.config()
	if err != nil {
		return nil, err
	}
	path := cfg.Journal.Path()
	if to.path != "" {
		path = to.path
	}
	tl, err := journal.Open(cfg.Journal.Type, path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return tl, nil
}

func newTradesInitCmd(ro *rootOptions, to *tradesOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the journal if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, err := openJournal(ro, to)
			if err != nil {
				return err
			}
			defer tl.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Journal ready")
			return nil
		},
	}
}

func newTradesLogCmd(ro *rootOptions, to *tradesOptions) *cobra.Command {
	var (
		ts, symbol, side      string
		entry, exit, qty, pnl float64
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Append one trade to the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ts == "" {
				ts = journal.Now()
			}
			fields := map[string]any{"time": ts}
			if symbol != "" {
				fields["symbol"] = symbol
			}
			if side != "" {
				fields["side"] = side
			}

			// numbers that were not given stay empty rather than zero
			nums := map[string]float64{"entry": entry, "exit": exit, "qty": qty, "pnl": pnl}
			for name, v := range nums {
				if cmd.Flags().Changed(name) {
					fields[name] = v
				}
			}

			tl, err := openJournal(ro, to)
			if err != nil {
				return err
			}
			defer tl.Close()

			if err := tl.AppendFields(fields); err != nil {
				return fmt.Errorf("log trade: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged %s %s at %s\n", side, symbol, ts)
			return nil
		},
	}

	cmd.Flags().StringVar(&ts, "time", "", "trade time (default now, RFC3339)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "instrument, e.g. BTC/USDT:USDT")
	cmd.Flags().StringVar(&side, "side", "", "buy or sell")
	cmd.Flags().Float64Var(&entry, "entry", 0, "entry price")
	cmd.Flags().Float64Var(&exit, "exit", 0, "exit price")
	cmd.Flags().Float64Var(&qty, "qty", 0, "position size")
	cmd.Flags().Float64Var(&pnl, "pnl", 0, "realized profit/loss")
	return cmd
}

func newTradesListCmd(ro *rootOptions, to *tradesOptions) *cobra.Command {
	var (
		asCSV        bool
		symbol, side string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every logged trade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, err := openJournal(ro, to)
			if err != nil {
				return err
			}
			defer tl.Close()

			tbl := tl.ReadAll().Filter(symbol, side)
			out := cmd.OutOrStdout()
			if asCSV {
				w := csv.NewWriter(out)
				if err := w.Write(tbl.Columns); err != nil {
					return err
				}
				for _, r := range tbl.Records {
					if err := w.Write(r.Row()); err != nil {
						return err
					}
				}
				w.Flush()
				return w.Error()
			}

			renderTrades(out, tbl)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asCSV, "csv", false, "print raw CSV instead of a table")
	cmd.Flags().StringVar(&symbol, "symbol", "", "only trades for this symbol")
	cmd.Flags().StringVar(&side, "side", "", "only trades on this side")
	return cmd
}

func newTradesExportCmd(ro *rootOptions, to *tradesOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print trades as Org-mode blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, err := openJournal(ro, to)
			if err != nil {
				return err
			}
			defer tl.Close()

			fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(tl.ReadAll().Records))
			return nil
		},
	}
}

func newTradesSummaryCmd(ro *rootOptions, to *tradesOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Balance, win rate and profit factor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ro.config()
			if err != nil {
				return err
			}
			tl, err := openJournal(ro, to)
			if err != nil {
				return err
			}
			defer tl.Close()

			renderSummary(cmd.OutOrStdout(), journal.Summarize(tl.ReadAll(), cfg.Account.StartBalance))
			return nil
		},
	}
}
