package straddle

import (
	"errors"
	"fmt"
	"time"

	"github.com/quantfold/straddlego/internal/dataflows"
)

// Fatal scan conditions. Either one stops a run before any row is
// produced.
var (
	ErrNoHistory     = errors.New("no historical data available")
	ErrNoExpirations = errors.New("no option data available")
)

// EarningsNA is the sentinel recorded when the earnings lookup fails.
const EarningsNA = "N/A"

// Options control a scan.
type Options struct {
	// MaxExpirations caps how many expirations are priced. Zero means 4.
	MaxExpirations int

	// HVWindowDays is the trailing window for historical volatility,
	// in calendar days. Zero means 30.
	HVWindowDays int

	// Now anchors days-to-expiration. Zero means the wall clock.
	Now time.Time
}

func (o Options) withDefaults() Options {
	if o.MaxExpirations <= 0 {
		o.MaxExpirations = 4
	}
	if o.HVWindowDays <= 0 {
		o.HVWindowDays = 30
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// Skip records an expiration that produced no row.
type Skip struct {
	Expiration time.Time
	Strike     float64
	Reason     string
}

// RunReport is the complete outcome of one scan. HV and the earnings
// date are computed once and shared by every result.
type RunReport struct {
	Symbol       string
	Spot         float64
	HV           float64
	EarningsDate string
	Results      []Result
	Skips        []Skip
}

// Scan runs the straddle pipeline for one symbol against a provider.
//
// Missing price history or an empty expiration list is fatal and
// returns ErrNoHistory or ErrNoExpirations. Per-expiration failures
// (chain fetch errors, missing ATM sides) become Skips and the
// remaining expirations are still processed. An earnings lookup
// failure is swallowed and recorded as "N/A".
func Scan(provider dataflows.MarketProvider, symbol string, opts Options) (*RunReport, error) {
	opts = opts.withDefaults()
	symbol = dataflows.NormalizeSymbol(symbol)

	spot, err := provider.LatestClose(symbol)
	if err != nil {
		return nil, fmt.Errorf("%w for %s", ErrNoHistory, symbol)
	}

	expirations, err := provider.Expirations(symbol)
	if err != nil || len(expirations) == 0 {
		return nil, ErrNoExpirations
	}
	if len(expirations) > opts.MaxExpirations {
		expirations = expirations[:opts.MaxExpirations]
	}

	report := &RunReport{
		Symbol:       symbol,
		Spot:         spot,
		EarningsDate: EarningsNA,
	}

	if bars, err := provider.DailyHistory(symbol, opts.HVWindowDays); err == nil {
		closes := make([]float64, 0, len(bars))
		for _, bar := range bars {
			closes = append(closes, bar.Close.InexactFloat64())
		}
		if hv, err := HistoricalVolatility(closes); err == nil {
			report.HV = hv
		}
	}

	if earnings, err := provider.NextEarningsDate(symbol); err == nil {
		report.EarningsDate = earnings.Format("2006-01-02")
	}

	for _, expiration := range expirations {
		chain, err := provider.StraddleChain(symbol, expiration)
		if err != nil {
			report.Skips = append(report.Skips, Skip{
				Expiration: expiration,
				Reason:     fmt.Sprintf("error retrieving option chain: %v", err),
			})
			continue
		}

		res, ok := Compute(chain, spot, opts.Now)
		if !ok {
			report.Skips = append(report.Skips, Skip{
				Expiration: expiration,
				Strike:     res.Strike,
				Reason:     fmt.Sprintf("no ATM options found at strike %g", res.Strike),
			})
			continue
		}

		report.Results = append(report.Results, res)
	}

	return report, nil
}
