package straddle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfold/straddlego/internal/dataflows"
)

func quote(strike, bid, ask, iv float64) dataflows.OptionQuote {
	return dataflows.OptionQuote{Strike: strike, Bid: bid, Ask: ask, ImpliedVolatility: iv}
}

func TestATMStrikePicksClosest(t *testing.T) {
	calls := []dataflows.OptionQuote{
		quote(140, 0, 0, 0),
		quote(145, 0, 0, 0),
		quote(150, 0, 0, 0),
		quote(155, 0, 0, 0),
	}

	strike, ok := ATMStrike(calls, 151.2)
	require.True(t, ok)
	assert.Equal(t, 150.0, strike)
}

func TestATMStrikeTieKeepsFirst(t *testing.T) {
	// 147.5 is equidistant from 145 and 150; the first minimum wins.
	calls := []dataflows.OptionQuote{
		quote(145, 0, 0, 0),
		quote(150, 0, 0, 0),
	}

	strike, ok := ATMStrike(calls, 147.5)
	require.True(t, ok)
	assert.Equal(t, 145.0, strike)
}

func TestATMStrikeEmptyCalls(t *testing.T) {
	_, ok := ATMStrike(nil, 100)
	assert.False(t, ok)
}

func TestComputeWorkedExample(t *testing.T) {
	today := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	expiration := time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC)

	chain := &dataflows.OptionChain{
		Symbol:     "AAPL",
		Expiration: expiration,
		Calls:      []dataflows.OptionQuote{quote(150, 4.00, 4.20, 0.28)},
		Puts:       []dataflows.OptionQuote{quote(150, 3.80, 4.00, 0.30)},
	}

	res, ok := Compute(chain, 150.00, today)
	require.True(t, ok)

	assert.Equal(t, 150.0, res.Strike)
	assert.InDelta(t, 4.10, res.CallMid, 1e-9)
	assert.InDelta(t, 3.90, res.PutMid, 1e-9)
	assert.InDelta(t, 8.00, res.StraddlePrice, 1e-9)
	assert.InDelta(t, 5.3333, res.ImpliedMovePct, 1e-4)
	assert.InDelta(t, 142.00, res.RangeLow, 1e-9)
	assert.InDelta(t, 158.00, res.RangeHigh, 1e-9)
	assert.Equal(t, 28, res.DTE)

	// the expected range is always symmetric around spot
	assert.InDelta(t, 2*150.00, res.RangeLow+res.RangeHigh, 1e-9)
}

func TestComputeStraddleIsSumOfMids(t *testing.T) {
	chain := &dataflows.OptionChain{
		Symbol:     "TSLA",
		Expiration: time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		Calls:      []dataflows.OptionQuote{quote(240, 10.10, 10.50, 0.62)},
		Puts:       []dataflows.OptionQuote{quote(240, 9.70, 10.10, 0.65)},
	}

	res, ok := Compute(chain, 241.35, time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.InDelta(t, res.CallMid+res.PutMid, res.StraddlePrice, 1e-9)
	assert.InDelta(t, res.StraddlePrice/241.35*100, res.ImpliedMovePct, 1e-9)
}

func TestComputeMissingPutSide(t *testing.T) {
	chain := &dataflows.OptionChain{
		Symbol:     "AAPL",
		Expiration: time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		Calls:      []dataflows.OptionQuote{quote(150, 4.00, 4.20, 0.28)},
		Puts:       []dataflows.OptionQuote{quote(155, 6.80, 7.00, 0.31)},
	}

	res, ok := Compute(chain, 150.00, time.Now())
	assert.False(t, ok)
	// the partial result still names the strike for the skip message
	assert.Equal(t, 150.0, res.Strike)
}

func TestComputeGreeksDefaultToZero(t *testing.T) {
	chain := &dataflows.OptionChain{
		Symbol:     "MSFT",
		Expiration: time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		Calls:      []dataflows.OptionQuote{quote(430, 8.00, 8.40, 0.24)},
		Puts:       []dataflows.OptionQuote{quote(430, 7.60, 8.00, 0.25)},
	}

	res, ok := Compute(chain, 430.10, time.Now())
	require.True(t, ok)
	assert.Zero(t, res.CallDelta)
	assert.Zero(t, res.CallTheta)
	assert.Zero(t, res.PutDelta)
	assert.Zero(t, res.PutTheta)
}

func TestDaysUntilCanGoNegative(t *testing.T) {
	today := time.Date(2026, 8, 21, 15, 30, 0, 0, time.UTC)
	expired := time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, -2, daysUntil(expired, today))
	assert.Equal(t, 0, daysUntil(today, today))
}
