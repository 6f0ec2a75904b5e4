package straddle

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// tradingDaysPerYear is the annualization convention for daily returns.
const tradingDaysPerYear = 252

// DailyReturns computes simple percentage returns between consecutive
// closes. The leading undefined return is dropped.
func DailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}
	return returns
}

// HistoricalVolatility annualizes the population standard deviation of
// the daily returns over the supplied closes.
func HistoricalVolatility(closes []float64) (float64, error) {
	returns := DailyReturns(closes)
	if len(returns) == 0 {
		return 0, fmt.Errorf("need at least two closes to compute returns, got %d", len(closes))
	}

	sd, err := stats.StandardDeviation(stats.Float64Data(returns))
	if err != nil {
		return 0, fmt.Errorf("failed to calculate the standard deviation: %v", err)
	}

	return sd * math.Sqrt(tradingDaysPerYear), nil
}
