package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadAppliesDefaults(t *testing.T) {
	p := writeConfig(t, "mode: DRY_RUN\n")

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "BITHUMB", cfg.Exchange)
	assert.Equal(t, "KRW-BTC", cfg.Pair)
	assert.Equal(t, "BTC", cfg.BaseCurrency)
	assert.Equal(t, "KRW", cfg.QuoteCurrency)
	assert.Equal(t, 600, cfg.PollSeconds)
	assert.Equal(t, 60, cfg.ErrorBackoffSeconds)
	assert.Equal(t, 30, cfg.Candles.Daily)
	assert.Equal(t, 24, cfg.Candles.Hourly)
	assert.Equal(t, 0.0005, cfg.Order.FeeMargin)
	assert.Equal(t, 5000.0, cfg.Order.MinNotional)
	assert.Equal(t, "NOOP", cfg.LLM.Provider)
	assert.Equal(t, 14, cfg.Indicators.RSIPeriod)
	assert.Equal(t, 20, cfg.Indicators.BBWindow)
	assert.Equal(t, 2.0, cfg.Indicators.BBStdDev)
}

func TestLoadExplicitValues(t *testing.T) {
	p := writeConfig(t, `
mode: LIVE
exchange: BINANCE
pair: BTC-USDT
base_currency: BTC
quote_currency: USDT
poll_seconds: 10
order:
  fee_margin: 0.003
  min_notional: 10
llm:
  provider: GEMINI
  model: gemini-2.0-flash
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "LIVE", cfg.Mode)
	assert.Equal(t, "BINANCE", cfg.Exchange)
	assert.Equal(t, 10, cfg.PollSeconds)
	assert.Equal(t, 0.003, cfg.Order.FeeMargin)
	assert.Equal(t, 10.0, cfg.Order.MinNotional)
	assert.Equal(t, "GEMINI", cfg.LLM.Provider)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad mode", "mode: PAPER\n"},
		{"bad exchange", "mode: DRY_RUN\nexchange: KRAKEN\n"},
		{"fee margin too large", "mode: DRY_RUN\norder:\n  fee_margin: 0.5\n"},
		{"negative min notional", "mode: DRY_RUN\norder:\n  min_notional: -1\n"},
		{"daily candles below bb window", "mode: DRY_RUN\ncandles:\n  daily: 5\n"},
		{"hourly candles below rsi period", "mode: DRY_RUN\ncandles:\n  hourly: 10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeConfig(t, tt.yaml)
			_, err := Load(p)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
