package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dayto852/okx-pro-bot/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes a fresh root command with logging off and no dotenv file.
// It returns everything written to stdout and stderr.
func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	full := []string{"--env-file", "", "--log-level", "off"}
	if cfgPath != "" {
		full = append(full, "--config", cfgPath)
	}
	cmd.SetArgs(append(full, args...))

	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, dir, extra string) string {
	t.Helper()

	path := filepath.Join(dir, "okxbot.yaml")
	body := "journal:\n  type: csv\n  trades_file: " + filepath.Join(dir, "logs", "trades.csv") + "\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestTradesLogListSummary(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "account:\n  start_balance: 500\n")

	out, err := run(t, cfg, "trades", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Journal ready")

	_, err = run(t, cfg, "trades", "log", "--time", "t1", "--symbol", "BTC/USDT", "--side", "buy",
		"--entry", "100", "--exit", "110", "--qty", "1", "--pnl", "10")
	require.NoError(t, err)
	_, err = run(t, cfg, "trades", "log", "--time", "t2", "--symbol", "ETH/USDT", "--side", "sell", "--entry", "50")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "logs", "trades.csv"))
	require.NoError(t, err)
	assert.Equal(t,
		"time,symbol,side,entry,exit,qty,pnl\n"+
			"t1,BTC/USDT,buy,100,110,1,10\n"+
			"t2,ETH/USDT,sell,50,,,\n",
		string(data))

	out, err = run(t, cfg, "trades", "list", "--csv", "--symbol", "eth/usdt")
	require.NoError(t, err)
	assert.Equal(t, "time,symbol,side,entry,exit,qty,pnl\nt2,ETH/USDT,sell,50,,,\n", out)

	out, err = run(t, cfg, "trades", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "BTC/USDT")
	assert.Contains(t, out, "ETH/USDT")

	out, err = run(t, cfg, "trades", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "510.00")
	assert.Contains(t, out, "1 / 0")

	out, err = run(t, cfg, "trades", "export")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "** Trade:"))
}

func TestTradesLogDefaultsTime(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "")

	_, err := run(t, cfg, "trades", "log", "--symbol", "SOL/USDT")
	require.NoError(t, err)

	tbl := journal.NewCSV(filepath.Join(dir, "logs", "trades.csv")).ReadAll()
	require.Equal(t, 1, tbl.Len())
	assert.NotEmpty(t, tbl.Records[0].Time)
	assert.Nil(t, tbl.Records[0].PnL)
}

func TestTradesOverridePathAndSQLite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "okxbot.yaml")
	db := filepath.Join(dir, "trades.sqlite")
	require.NoError(t, os.WriteFile(path, []byte("journal:\n  type: sqlite\n  db_path: "+db+"\n"), 0o644))

	_, err := run(t, path, "trades", "log", "--time", "t1", "--symbol", "BTC/USDT", "--pnl", "-2")
	require.NoError(t, err)

	out, err := run(t, path, "trades", "list", "--csv")
	require.NoError(t, err)
	assert.Equal(t, "time,symbol,side,entry,exit,qty,pnl\nt1,BTC/USDT,,,,,-2\n", out)
}

func TestTradesListCorruptJournal(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "trades.csv"), []byte("garbage\n\"unterminated"), 0o644))

	out, err := run(t, cfg, "trades", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "unreadable")
}

func TestCandlesCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ETH-USDT-SWAP", r.URL.Query().Get("instId"))
		assert.Equal(t, "5m", r.URL.Query().Get("bar"))
		_, _ = w.Write([]byte(`{"code":"0","msg":"","data":[
["1704103500000","2301","2305","2299","2304","10","0","0","1"],
["1704103200000","2300","2302","2298","2301","8","0","0","1"]]}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	cfg := writeConfig(t, dir, "okx:\n  mode: okx_demo\n  base_url: "+server.URL+"\n")

	out, err := run(t, cfg, "candles", "--symbol", "ETH/USDT:USDT", "--timeframe", "5m", "--show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "ETH/USDT:USDT (1 candles)")
	assert.Contains(t, out, "2304")
	assert.NotContains(t, out, "2298")
}

func TestCoinsAndStrategy(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "market:\n  coins: [\"BTC/USDT:USDT\", \"ETH/USDT\"]\nstrategy:\n  name: Grid v2\n")

	out, err := run(t, cfg, "coins")
	require.NoError(t, err)
	assert.Contains(t, out, "BTC-USDT-SWAP")
	assert.Contains(t, out, "ETH-USDT")
	assert.NotContains(t, out, "SOL")

	out, err = run(t, cfg, "strategy")
	require.NoError(t, err)
	assert.Equal(t, "Current strategy: Grid v2\n", out)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.yaml")

	out, err := run(t, "", "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = run(t, "", "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "demo=true")

	_, err = run(t, "", "config", "validate")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}
