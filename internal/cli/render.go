package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Dayto852/okx-pro-bot/journal"
	"github.com/Dayto852/okx-pro-bot/market"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	return tw
}

func renderTrades(w io.Writer, t journal.Table) {
	if t.Fallback {
		fmt.Fprintln(w, "(trade journal unreadable, showing nothing)")
	}

	tw := newTable(w)
	header := make(table.Row, 0, len(t.Columns))
	for _, c := range t.Columns {
		header = append(header, c)
	}
	tw.AppendHeader(header)
	for _, r := range t.Records {
		row := make(table.Row, 0, len(t.Columns))
		for _, cell := range r.Row() {
			row = append(row, cell)
		}
		tw.AppendRow(row)
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	tw.AppendFooter(table.Row{"", "", "", "", "", "trades", t.Len()})
	tw.Render()
}

func renderSummary(w io.Writer, s journal.Summary) {
	tw := newTable(w)
	tw.AppendRows([]table.Row{
		{"Start balance", money(s.StartBalance)},
		{"Balance", money(s.Balance)},
		{"Net P/L", money(s.NetPnL)},
		{"Trades", s.Trades},
		{"Wins / Losses", fmt.Sprintf("%d / %d", s.Wins, s.Losses)},
		{"Win rate", fmt.Sprintf("%.1f%%", s.WinRate*100)},
		{"Gross profit", money(s.GrossProfit)},
		{"Gross loss", money(s.GrossLoss)},
		{"Profit factor", fmt.Sprintf("%.2f", s.ProfitFactor)},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	tw.Render()
}

func renderCandles(w io.Writer, symbol string, candles []market.Candle) {
	tw := newTable(w)
	tw.SetTitle("%s (%d candles)", symbol, len(candles))
	tw.AppendHeader(table.Row{"time", "open", "high", "low", "close", "volume", ""})
	for _, c := range candles {
		state := ""
		if !c.Confirmed {
			state = "live"
		}
		tw.AppendRow(table.Row{
			c.Time.Format("2006-01-02 15:04"),
			price(c.Open), price(c.High), price(c.Low), price(c.Close),
			price(c.Volume), state,
		})
	}
	tw.Render()
}

func formatCandleLine(symbol string, c market.Candle) string {
	dir := "▲"
	if !c.Up() {
		dir = "▼"
	}
	return fmt.Sprintf("%s %s %s O=%s H=%s L=%s C=%s V=%s",
		c.Time.Format("2006-01-02 15:04"), symbol, dir,
		price(c.Open), price(c.High), price(c.Low), price(c.Close), price(c.Volume))
}

func price(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func money(v float64) string { return fmt.Sprintf("%.2f", v) }
