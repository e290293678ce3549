package journal

import (
	"fmt"
	"strings"
)

// FormatTradeOrg renders a TradeRecord as an Org-mode block for a personal
// trading journal. Structured fields go in a PROPERTIES drawer; the narrative
// headings are left empty to fill in by hand.
func FormatTradeOrg(t TradeRecord) string {
	symbol := t.Symbol
	if symbol == "" {
		symbol = "?"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "** Trade: %s %s", symbol, strings.ToUpper(t.Side))
	if t.Time != "" {
		fmt.Fprintf(&b, " [%s]", t.Time)
	}
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":TIME: %s\n", t.Time)
	fmt.Fprintf(&b, ":SYMBOL: %s\n", t.Symbol)
	fmt.Fprintf(&b, ":SIDE: %s\n", t.Side)
	fmt.Fprintf(&b, ":ENTRY: %s\n", orgNum(t.Entry, 5))
	fmt.Fprintf(&b, ":EXIT: %s\n", orgNum(t.Exit, 5))
	fmt.Fprintf(&b, ":QTY: %s\n", orgNum(t.Qty, 4))
	fmt.Fprintf(&b, ":PNL: %s\n", orgNum(t.PnL, 2))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []TradeRecord) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func orgNum(p *float64, prec int) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%.*f", prec, *p)
}
