package market

import "time"

// Candle is one OHLCV bar. Time is the bar open in UTC.
type Candle struct {
	Time      time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Confirmed bool // false while the bar is still forming
}

// Up reports whether the bar closed at or above its open.
func (c Candle) Up() bool { return c.Close >= c.Open }
