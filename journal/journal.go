// journal/journal.go
package journal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Columns is the fixed column set of the trade log, in on-disk order.
var Columns = []string{"time", "symbol", "side", "entry", "exit", "qty", "pnl"}

var (
	ErrUnknownJournalType = errors.New("unknown journal type")
	errBadHeader          = errors.New("trade log header does not match columns")
)

// TradeRecord is one logged trade event. Nil numbers are empty cells.
type TradeRecord struct {
	Time   string
	Symbol string
	Side   string
	Entry  *float64
	Exit   *float64
	Qty    *float64
	PnL    *float64
}

// Table is the full trade history as returned by ReadAll.
//
// Fallback is set when the backing store could not be read and the table was
// replaced by an empty one. Callers that only display trades can ignore it.
type Table struct {
	Columns  []string
	Records  []TradeRecord
	Fallback bool
}

// TradeLog is an append-only trade history.
type TradeLog interface {
	Init() error
	Append(TradeRecord) error
	AppendFields(map[string]any) error
	ReadAll() Table
	Close() error
}

// EmptyTable returns a table with the fixed columns and no rows.
func EmptyTable() Table {
	return Table{Columns: append([]string(nil), Columns...)}
}

func fallbackTable() Table {
	t := EmptyTable()
	t.Fallback = true
	return t
}

// Len returns the number of records.
func (t Table) Len() int { return len(t.Records) }

// Filter returns the records matching symbol and side. Empty arguments match
// everything; comparison is case-insensitive.
func (t Table) Filter(symbol, side string) Table {
	out := Table{Columns: t.Columns, Fallback: t.Fallback}
	for _, r := range t.Records {
		if symbol != "" && !strings.EqualFold(r.Symbol, symbol) {
			continue
		}
		if side != "" && !strings.EqualFold(r.Side, side) {
			continue
		}
		out.Records = append(out.Records, r)
	}
	return out
}

// Float returns a pointer to v, for building records by hand.
func Float(v float64) *float64 { return &v }

// Now formats the current time the way the CLI stamps new records.
func Now() string { return time.Now().UTC().Format(time.RFC3339) }

// Row renders the record as cells in Columns order.
func (r TradeRecord) Row() []string {
	return []string{
		r.Time,
		r.Symbol,
		r.Side,
		formatNum(r.Entry),
		formatNum(r.Exit),
		formatNum(r.Qty),
		formatNum(r.PnL),
	}
}

// recordFromRow is the inverse of Row. Numeric cells that do not parse are
// kept as nil.
func recordFromRow(row []string) (TradeRecord, error) {
	if len(row) != len(Columns) {
		return TradeRecord{}, fmt.Errorf("row has %d fields, want %d", len(row), len(Columns))
	}
	return TradeRecord{
		Time:   row[0],
		Symbol: row[1],
		Side:   row[2],
		Entry:  parseNum(row[3]),
		Exit:   parseNum(row[4]),
		Qty:    parseNum(row[5]),
		PnL:    parseNum(row[6]),
	}, nil
}

func checkHeader(h []string) error {
	if len(h) != len(Columns) {
		return errBadHeader
	}
	for i, c := range Columns {
		// tolerate a UTF-8 BOM on the first cell
		if strings.TrimPrefix(strings.TrimSpace(h[i]), "\ufeff") != c {
			return errBadHeader
		}
	}
	return nil
}

func formatNum(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func parseNum(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
