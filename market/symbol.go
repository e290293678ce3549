package market

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownTimeframe = errors.New("unknown timeframe")

// DefaultCoins is the watch list shown when none is configured.
var DefaultCoins = []string{"BTC/USDT:USDT", "ETH/USDT:USDT", "SOL/USDT:USDT"}

// InstID converts a unified symbol to an OKX instrument ID.
//
//	BTC/USDT      -> BTC-USDT       (spot)
//	BTC/USDT:USDT -> BTC-USDT-SWAP  (perpetual swap)
//
// IDs that are already in OKX form pass through upper-cased.
func InstID(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return "", errors.New("empty symbol")
	}
	if !strings.Contains(s, "/") {
		return s, nil
	}

	pair, settle, swap := strings.Cut(s, ":")
	base, quote, ok := strings.Cut(pair, "/")
	if !ok || base == "" || quote == "" {
		return "", fmt.Errorf("malformed symbol %q", symbol)
	}
	if !swap {
		return base + "-" + quote, nil
	}
	if settle == "" {
		return "", fmt.Errorf("malformed symbol %q", symbol)
	}
	return base + "-" + quote + "-SWAP", nil
}

var bars = map[string]string{
	"1m":  "1m",
	"3m":  "3m",
	"5m":  "5m",
	"15m": "15m",
	"30m": "30m",
	"1h":  "1H",
	"2h":  "2H",
	"4h":  "4H",
	"6h":  "6H",
	"12h": "12H",
	"1d":  "1D",
	"1w":  "1W",
	"1M":  "1M",
}

// Bar maps a timeframe such as "1m" or "4h" to the OKX bar parameter.
// "1M" is one month; every other unit is case-insensitive.
func Bar(timeframe string) (string, error) {
	tf := strings.TrimSpace(timeframe)
	if b, ok := bars[tf]; ok {
		return b, nil
	}
	if b, ok := bars[strings.ToLower(tf)]; ok {
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTimeframe, timeframe)
}
