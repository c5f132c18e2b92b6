package summary

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bithumb-ai-trader/internal/tradelog"
)

func TestSummarizeDay(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRADER_LOG_DIR", dir)

	require.NoError(t, tradelog.AppendOrder(tradelog.OrderEntry{
		Pair: "KRW-BTC", Side: "BUY", Amount: 100000, Notional: 100000, Price: 50000000,
		OrderID: "o1", Status: "wait", Reason: "dip",
	}))
	require.NoError(t, tradelog.AppendOrder(tradelog.OrderEntry{
		Pair: "KRW-BTC", Side: "SELL", Amount: 0.001, Notional: 52000, Price: 52000000,
		OrderID: "o2", Status: "wait", Reason: "profit",
	}))

	path, err := NewSummarizer().SummarizeDay(time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header, one pair row, one total row")

	assert.Equal(t, "pair", rows[0][0])
	assert.Equal(t, "KRW-BTC", rows[1][0])
	assert.Equal(t, "1", rows[1][1], "one buy")
	assert.Equal(t, "100000.00", rows[1][2], "quote spent")
	assert.Equal(t, "1", rows[1][4], "one sell")
	assert.Equal(t, "0.00100000", rows[1][5], "base sold")
	assert.Equal(t, "52000.00", rows[1][6], "quote received")
	assert.Equal(t, "TOTAL", rows[2][0])
	assert.Equal(t, "-48000.00", rows[2][7], "net quote flow")
}

func TestSummarizeDayNoOrders(t *testing.T) {
	t.Setenv("TRADER_LOG_DIR", t.TempDir())

	path, err := NewSummarizer().SummarizeDay(time.Now())
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestSummarizeDaySkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRADER_LOG_DIR", dir)

	day := time.Now()
	p := tradeFile(day)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	content := "not json at all\n" +
		`{"Pair":"KRW-BTC","Side":"BUY","Amount":10000,"Price":50000000}` + "\n"
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	path, err := NewSummarizer().SummarizeDay(day)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "10000.00", rows[1][2])
}
