package okx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Dayto852/okx-pro-bot/market"
)

const (
	// BaseURL serves both live and demo trading; demo is selected by header.
	BaseURL = "https://www.okx.com"

	DefaultLimit = 150
	MaxLimit     = 300
)

// APIError is an exchange-level failure reported inside a 200 response.
type APIError struct {
	Code string
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("okx api error %s: %s", e.Code, e.Msg)
}

// Client is a minimal OKX REST client for public market data.
type Client struct {
	baseURL    string
	demo       bool
	httpClient *http.Client
}

// NewClient returns a client for baseURL. An empty baseURL uses BaseURL.
// demo adds the simulated-trading header to every request.
func NewClient(baseURL string, demo bool) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		demo:    demo,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CandlesOptions selects what Candles fetches.
type CandlesOptions struct {
	Symbol    string // unified (BTC/USDT:USDT) or OKX (BTC-USDT-SWAP) form
	Timeframe string // 1m, 5m, 1h, ...
	Limit     int    // default 150, max 300
}

type candlesResponse struct {
	Code string     `json:"code"`
	Msg  string     `json:"msg"`
	Data [][]string `json:"data"`
}

// Candles fetches the most recent candles, oldest first.
func (c *Client) Candles(ctx context.Context, opts CandlesOptions) ([]market.Candle, error) {
	instID, err := market.InstID(opts.Symbol)
	if err != nil {
		return nil, fmt.Errorf("okx: %w", err)
	}
	bar, err := market.Bar(opts.Timeframe)
	if err != nil {
		return nil, fmt.Errorf("okx: %w", err)
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	params := url.Values{}
	params.Set("instId", instID)
	params.Set("bar", bar)
	params.Set("limit", strconv.Itoa(limit))

	apiURL := fmt.Sprintf("%s/api/v5/market/candles?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.demo {
		req.Header.Set("x-simulated-trading", "1")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return nil, fmt.Errorf("okx candles http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var apiResp candlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Code != "0" {
		return nil, &APIError{Code: apiResp.Code, Msg: apiResp.Msg}
	}

	candles := make([]market.Candle, 0, len(apiResp.Data))
	for i, row := range apiResp.Data {
		cd, err := parseCandle(row)
		if err != nil {
			return nil, fmt.Errorf("candle %d: %w", i, err)
		}
		candles = append(candles, cd)
	}

	// OKX returns newest first
	sort.Slice(candles, func(i, j int) bool { return candles[i].Time.Before(candles[j].Time) })
	return candles, nil
}

// parseCandle reads [ts, o, h, l, c, vol, volCcy, volCcyQuote, confirm].
func parseCandle(row []string) (market.Candle, error) {
	if len(row) < 6 {
		return market.Candle{}, fmt.Errorf("short row: %d fields", len(row))
	}

	ms, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return market.Candle{}, fmt.Errorf("parse ts: %w", err)
	}

	var vals [5]float64
	names := [5]string{"open", "high", "low", "close", "volume"}
	for k := range vals {
		v, err := strconv.ParseFloat(row[k+1], 64)
		if err != nil {
			return market.Candle{}, fmt.Errorf("parse %s: %w", names[k], err)
		}
		vals[k] = v
	}

	confirmed := true
	if len(row) >= 9 {
		confirmed = row[8] == "1"
	}

	return market.Candle{
		Time:      time.UnixMilli(ms).UTC(),
		Open:      vals[0],
		High:      vals[1],
		Low:       vals[2],
		Close:     vals[3],
		Volume:    vals[4],
		Confirmed: confirmed,
	}, nil
}
