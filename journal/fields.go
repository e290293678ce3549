package journal

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RecordFromFields builds a TradeRecord from a loosely typed mapping, the way
// a UI or script hands trades over. Keys outside Columns are ignored and
// missing keys stay empty. Values are not validated: a numeric column whose
// value cannot be read as a number is left empty and its key is returned in
// dropped.
func RecordFromFields(fields map[string]any) (rec TradeRecord, dropped []string) {
	rec.Time = text(fields["time"])
	rec.Symbol = text(fields["symbol"])
	rec.Side = text(fields["side"])

	nums := []struct {
		key string
		dst **float64
	}{
		{"entry", &rec.Entry},
		{"exit", &rec.Exit},
		{"qty", &rec.Qty},
		{"pnl", &rec.PnL},
	}
	for _, n := range nums {
		v, ok := fields[n.key]
		if p, isPtr := v.(*float64); !ok || v == nil || (isPtr && p == nil) {
			continue
		}
		f, ok := number(v)
		if !ok {
			dropped = append(dropped, n.key)
			continue
		}
		*n.dst = &f
	}
	return rec, dropped
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case *float64:
		if x == nil {
			return 0, false
		}
		return *x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
