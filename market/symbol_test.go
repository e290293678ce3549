package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"BTC/USDT", "BTC-USDT", false},
		{"btc/usdt:usdt", "BTC-USDT-SWAP", false},
		{" ETH/USDT:USDT ", "ETH-USDT-SWAP", false},
		{"SOL-USDT-SWAP", "SOL-USDT-SWAP", false},
		{"", "", true},
		{"BTC/", "", true},
		{"BTC/USDT:", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := InstID(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"1m", "1m"},
		{"15m", "15m"},
		{"1h", "1H"},
		{"4H", "4H"},
		{"1d", "1D"},
		{"1M", "1M"},
	}
	for _, tt := range tests {
		got, err := Bar(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := Bar("7m")
	assert.ErrorIs(t, err, ErrUnknownTimeframe)
}

func TestCandleHelpers(t *testing.T) {
	t.Parallel()

	c := Candle{Open: 10, High: 12, Low: 9, Close: 11}
	assert.True(t, c.Up())

	c.Close = 9.5
	assert.False(t, c.Up())
}
