package dataflows

import "time"

// MarketProvider is the data-source surface the straddle pipeline
// depends on. The earnings lookup may fail without aborting a run;
// every other error is for the caller to classify.
type MarketProvider interface {
	// LatestClose returns the most recent daily closing price.
	LatestClose(symbol string) (float64, error)

	// DailyHistory returns the trailing daily bars, oldest first.
	DailyHistory(symbol string, days int) ([]*MarketData, error)

	// Expirations lists the option expiration dates in provider order.
	Expirations(symbol string) ([]time.Time, error)

	// StraddleChain fetches the option chain for one expiration.
	StraddleChain(symbol string, expiration time.Time) (*OptionChain, error)

	// NextEarningsDate returns the next scheduled earnings report.
	NextEarningsDate(symbol string) (time.Time, error)
}

// DataFlow bundles the concrete market-data clients behind the
// MarketProvider interface.
type DataFlow struct {
	yahoo   *YahooClient
	finnhub *FinnhubClient
}

// NewDataFlow creates a data flow backed by Yahoo Finance for prices
// and options and Finnhub for the earnings calendar.
func NewDataFlow(config *Config) *DataFlow {
	return &DataFlow{
		yahoo:   NewYahooClient(config),
		finnhub: NewFinnhubClient(config),
	}
}

func (df *DataFlow) LatestClose(symbol string) (float64, error) {
	return df.yahoo.LatestClose(symbol)
}

func (df *DataFlow) DailyHistory(symbol string, days int) ([]*MarketData, error) {
	return df.yahoo.DailyHistory(symbol, days)
}

func (df *DataFlow) Expirations(symbol string) ([]time.Time, error) {
	return df.yahoo.Expirations(symbol)
}

func (df *DataFlow) StraddleChain(symbol string, expiration time.Time) (*OptionChain, error) {
	return df.yahoo.StraddleChain(symbol, expiration)
}

func (df *DataFlow) NextEarningsDate(symbol string) (time.Time, error) {
	return df.finnhub.NextEarningsDate(symbol)
}

var _ MarketProvider = (*DataFlow)(nil)
