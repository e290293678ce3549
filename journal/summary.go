package journal

// DefaultStartBalance is the paper balance the summary starts from when no
// account config says otherwise.
const DefaultStartBalance = 1000.0

// Summary aggregates realized P/L over a trade table.
type Summary struct {
	Trades       int
	Wins         int
	Losses       int
	GrossProfit  float64
	GrossLoss    float64 // absolute value
	NetPnL       float64
	StartBalance float64
	Balance      float64
	WinRate      float64 // wins / trades with a pnl
	ProfitFactor float64 // 0 when there are no losses
}

// Summarize computes the summary for t. Records without a pnl count as trades
// but not toward wins, losses or the win rate.
func Summarize(t Table, startBalance float64) Summary {
	s := Summary{
		Trades:       len(t.Records),
		StartBalance: startBalance,
	}

	closed := 0
	for _, r := range t.Records {
		if r.PnL == nil {
			continue
		}
		closed++
		pl := *r.PnL
		s.NetPnL += pl
		switch {
		case pl > 0:
			s.Wins++
			s.GrossProfit += pl
		case pl < 0:
			s.Losses++
			s.GrossLoss -= pl
		}
	}

	s.Balance = startBalance + s.NetPnL
	if closed > 0 {
		s.WinRate = float64(s.Wins) / float64(closed)
	}
	if s.GrossLoss > 0 {
		s.ProfitFactor = s.GrossProfit / s.GrossLoss
	}
	return s
}
