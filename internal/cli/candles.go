package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dayto852/okx-pro-bot/config"
	"github.com/Dayto852/okx-pro-bot/market"
	"github.com/Dayto852/okx-pro-bot/okx"
	"github.com/spf13/cobra"
)

type candlesOptions struct {
	symbol    string
	timeframe string
	limit     int
	show      int
}

// resolve fills unset flags from the config.
func (co candlesOptions) resolve(cfg *config.Config) okx.CandlesOptions {
	opts := okx.CandlesOptions{
		Symbol:    cfg.Market.Symbol,
		Timeframe: cfg.Market.Timeframe,
		Limit:     cfg.Market.Limit,
	}
	if co.symbol != "" {
		opts.Symbol = co.symbol
	}
	if co.timeframe != "" {
		opts.Timeframe = co.timeframe
	}
	if co.limit > 0 {
		opts.Limit = co.limit
	}
	return opts
}

func newCandlesCmd(ro *rootOptions) *cobra.Command {
	co := &candlesOptions{}

	cmd := &cobra.Command{
		Use:   "candles",
		Short: "Fetch OHLCV candles from OKX",
		Long: `Fetch the most recent candles for a symbol and print them.

Examples:
  okxbot candles
  okxbot candles --symbol ETH/USDT:USDT --timeframe 5m --show 20
  okxbot candles watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ro.config()
			if err != nil {
				return err
			}
			opts := co.resolve(cfg)

			candles, err := newOKXClient(cfg).Candles(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("fetch candles: %w", err)
			}
			renderCandles(cmd.OutOrStdout(), opts.Symbol, tail(candles, co.show))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&co.symbol, "symbol", "", "symbol (default from config)")
	cmd.PersistentFlags().StringVar(&co.timeframe, "timeframe", "", "timeframe, e.g. 1m, 1h (default from config)")
	cmd.PersistentFlags().IntVar(&co.limit, "limit", 0, "candles to request, max 300 (default from config)")
	cmd.Flags().IntVar(&co.show, "show", 10, "how many of the latest candles to print (0 = all)")

	cmd.AddCommand(newCandlesWatchCmd(ro, co))
	return cmd
}

func newCandlesWatchCmd(ro *rootOptions, co *candlesOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Poll candles every update_interval until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ro.config()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p := &okx.Poller{
				Client:   newOKXClient(cfg),
				Options:  co.resolve(cfg),
				Interval: cfg.Market.Interval(),
			}

			out := cmd.OutOrStdout()
			err = p.Run(ctx, func(candles []market.Candle, err error) {
				if err != nil {
					fmt.Fprintf(out, "! candle fetch failed: %v\n", err)
					return
				}
				if len(candles) == 0 {
					return
				}
				fmt.Fprintln(out, formatCandleLine(p.Options.Symbol, candles[len(candles)-1]))
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func newOKXClient(cfg *config.Config) *okx.Client {
	return okx.NewClient(cfg.OKX.BaseURL, cfg.OKX.Demo())
}

func tail(c []market.Candle, n int) []market.Candle {
	if n <= 0 || n >= len(c) {
		return c
	}
	return c[len(c)-n:]
}
