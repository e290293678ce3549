package okx

import (
	"context"
	"errors"
	"time"

	"github.com/Dayto852/okx-pro-bot/internal/logger"
	"github.com/Dayto852/okx-pro-bot/market"
)

// Poller refetches candles on a fixed interval.
type Poller struct {
	Client   *Client
	Options  CandlesOptions
	Interval time.Duration
}

// Run fetches once immediately and then on every tick until ctx is done.
// Fetch errors are handed to fn with nil candles and polling continues.
// Run returns ctx.Err().
func (p *Poller) Run(ctx context.Context, fn func([]market.Candle, error)) error {
	if p.Client == nil {
		return errors.New("poller: nil client")
	}
	if p.Interval <= 0 {
		return errors.New("poller: interval must be positive")
	}

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		candles, err := p.Client.Candles(ctx, p.Options)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.L().Warn().Err(err).Str("symbol", p.Options.Symbol).Msg("candle fetch failed")
			fn(nil, err)
		} else {
			fn(candles, nil)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
