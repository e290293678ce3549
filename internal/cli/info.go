package cli

import (
	"fmt"

	"github.com/Dayto852/okx-pro-bot/market"
	"github.com/spf13/cobra"
)

func newCoinsCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "coins",
		Short: "List the coins the bot trades",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ro.config()
			if err != nil {
				return err
			}
			coins := cfg.Market.Coins
			if len(coins) == 0 {
				coins = market.DefaultCoins
			}

			out := cmd.OutOrStdout()
			for _, c := range coins {
				id, err := market.InstID(c)
				if err != nil {
					id = "?"
				}
				fmt.Fprintf(out, "%-16s %s\n", c, id)
			}
			return nil
		},
	}
}

func newStrategyCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "strategy",
		Short: "Show the current strategy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ro.config()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Current strategy: %s\n", cfg.Strategy.Name)
			return nil
		},
	}
}
