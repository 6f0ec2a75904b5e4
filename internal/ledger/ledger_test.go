package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfold/straddlego/internal/straddle"
)

const headerLine = "Symbol,Date,Current Price,Expiration Date,DTE,ATM Strike," +
	"Call Price,Call IV,Call Delta,Call Theta,Put Price,Put IV,Put Delta,Put Theta," +
	"HV,Straddle Price,Implied Move %,Range Low,Range High,Earnings Date"

func sampleReport() *straddle.RunReport {
	return &straddle.RunReport{
		Symbol:       "AAPL",
		Spot:         150.00,
		HV:           0.22228,
		EarningsDate: "2026-10-29",
		Results: []straddle.Result{
			{
				Symbol:         "AAPL",
				Expiration:     time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
				DTE:            28,
				Strike:         150,
				CallMid:        4.10,
				CallIV:         0.281234,
				PutMid:         3.90,
				PutIV:          0.301299,
				StraddlePrice:  8.00,
				ImpliedMovePct: 8.0 / 150.0 * 100,
				RangeLow:       142.00,
				RangeHigh:      158.00,
			},
		},
	}
}

func TestFromReportRounding(t *testing.T) {
	at := time.Date(2026, 8, 21, 10, 30, 0, 0, time.UTC)
	rows := FromReport(sampleReport(), at)

	require.Len(t, rows, 1)
	row := rows[0]

	assert.Equal(t, "AAPL", row.Symbol)
	assert.Equal(t, "2026-08-21 10:30:00", row.Date)
	assert.Equal(t, "2026-09-18", row.ExpirationDate)
	assert.InDelta(t, 150.00, row.CurrentPrice, 1e-9)
	assert.InDelta(t, 4.10, row.CallPrice, 1e-9)
	assert.InDelta(t, 0.2812, row.CallIV, 1e-9)
	assert.InDelta(t, 0.3013, row.PutIV, 1e-9)
	assert.InDelta(t, 0.2223, row.HV, 1e-9)
	assert.InDelta(t, 8.00, row.StraddlePrice, 1e-9)
	assert.InDelta(t, 5.33, row.ImpliedMovePct, 1e-9)
	assert.InDelta(t, 142.00, row.RangeLow, 1e-9)
	assert.InDelta(t, 158.00, row.RangeHigh, 1e-9)
	assert.Equal(t, "2026-10-29", row.EarningsDate)
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "straddle_results.csv")
	book := New(path)

	at := time.Date(2026, 8, 21, 10, 30, 0, 0, time.UTC)
	rows := FromReport(sampleReport(), at)

	require.NoError(t, book.Append(rows))
	require.NoError(t, book.Append(rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, headerLine, lines[0])
	assert.Equal(t, 1, strings.Count(content, "Symbol,Date"))
}

func TestAppendNoRowsWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "straddle_results.csv")
	book := New(path)

	require.NoError(t, book.Append(nil))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAppendToExistingFileKeepsForeignRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "straddle_results.csv")
	seed := headerLine + "\nMSFT,2026-08-20 09:00:00,430.1,2026-09-18,29,430,8.2,0.24,0,0,7.8,0.25,0,0,0.19,16,3.72,414.1,446.1,N/A\n"
	require.NoError(t, os.WriteFile(path, []byte(seed), 0644))

	book := New(path)
	at := time.Date(2026, 8, 21, 10, 30, 0, 0, time.UTC)
	require.NoError(t, book.Append(FromReport(sampleReport(), at)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, 1, strings.Count(content, "Symbol,Date"))
	assert.Contains(t, lines[1], "MSFT")
	assert.Contains(t, lines[2], "AAPL")
}
