package straddle

import (
	"math"
	"time"

	"github.com/quantfold/straddlego/internal/dataflows"
)

// Result holds the derived straddle metrics for one expiration.
type Result struct {
	Symbol     string
	Expiration time.Time
	DTE        int
	Strike     float64

	CallMid   float64
	CallIV    float64
	CallDelta float64
	CallTheta float64

	PutMid   float64
	PutIV    float64
	PutDelta float64
	PutTheta float64

	StraddlePrice  float64
	ImpliedMovePct float64
	RangeLow       float64
	RangeHigh      float64
}

// ATMStrike returns the strike among the calls closest to the spot
// price. Ties keep the first strike encountered.
func ATMStrike(calls []dataflows.OptionQuote, spot float64) (float64, bool) {
	if len(calls) == 0 {
		return 0, false
	}

	best := calls[0].Strike
	bestDist := math.Abs(best - spot)
	for _, c := range calls[1:] {
		if d := math.Abs(c.Strike - spot); d < bestDist {
			best, bestDist = c.Strike, d
		}
	}
	return best, true
}

// findStrike returns the first quote at exactly the given strike.
func findStrike(quotes []dataflows.OptionQuote, strike float64) (dataflows.OptionQuote, bool) {
	for _, q := range quotes {
		if q.Strike == strike {
			return q, true
		}
	}
	return dataflows.OptionQuote{}, false
}

// mid is the bid/ask midpoint. Zero or crossed markets are not
// validated; the result may be zero or negative.
func mid(q dataflows.OptionQuote) float64 {
	return (q.Bid + q.Ask) / 2
}

// Compute derives the straddle metrics for one expiration chain. The
// second return is false when the ATM strike is missing on either
// side; the partial Result still carries the strike for reporting.
func Compute(chain *dataflows.OptionChain, spot float64, today time.Time) (Result, bool) {
	strike, ok := ATMStrike(chain.Calls, spot)
	if !ok {
		return Result{}, false
	}

	call, callOK := findStrike(chain.Calls, strike)
	put, putOK := findStrike(chain.Puts, strike)
	if !callOK || !putOK {
		return Result{Strike: strike}, false
	}

	res := Result{
		Symbol:     chain.Symbol,
		Expiration: chain.Expiration,
		DTE:        daysUntil(chain.Expiration, today),
		Strike:     strike,
		CallMid:    mid(call),
		CallIV:     call.ImpliedVolatility,
		CallDelta:  call.Delta,
		CallTheta:  call.Theta,
		PutMid:     mid(put),
		PutIV:      put.ImpliedVolatility,
		PutDelta:   put.Delta,
		PutTheta:   put.Theta,
	}

	res.StraddlePrice = res.CallMid + res.PutMid
	res.ImpliedMovePct = res.StraddlePrice / spot * 100
	res.RangeLow = spot - res.StraddlePrice
	res.RangeHigh = spot + res.StraddlePrice

	return res, true
}

// daysUntil is the calendar-day difference between two dates, ignoring
// time of day. It can be zero or negative when clocks disagree with
// the provider.
func daysUntil(expiration, today time.Time) int {
	e := time.Date(expiration.Year(), expiration.Month(), expiration.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(t).Hours() / 24)
}
