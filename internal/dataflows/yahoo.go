package dataflows

import (
	"fmt"
	"path/filepath"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/options"
)

// spotLookbackDays is how far back LatestClose looks for the most
// recent session. A few days covers weekends and exchange holidays.
const spotLookbackDays = 5

// YahooClient handles Yahoo Finance data operations
type YahooClient struct {
	cache *CacheManager
}

// NewYahooClient creates a new Yahoo Finance client. Daily history is
// cached for an hour; spot prices and option chains are always live.
func NewYahooClient(config *Config) *YahooClient {
	cacheDir := filepath.Join(config.DataCacheDir, "yahoo_finance")
	cache := NewCacheManager(cacheDir, 1*time.Hour, config.CacheEnabled)

	return &YahooClient{
		cache: cache,
	}
}

// LatestClose returns the close of the most recent daily bar.
func (yc *YahooClient) LatestClose(symbol string) (float64, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return 0, err
	}
	symbol = NormalizeSymbol(symbol)

	bars, err := yc.fetchHistory(symbol, spotLookbackDays)
	if err != nil {
		return 0, err
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("no historical data available for %s", symbol)
	}

	return bars[len(bars)-1].Close.InexactFloat64(), nil
}

// DailyHistory gets daily bars for the trailing window, oldest first.
func (yc *YahooClient) DailyHistory(symbol string, days int) ([]*MarketData, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = NormalizeSymbol(symbol)

	cacheKey := map[string]interface{}{
		"symbol": symbol,
		"days":   days,
		"asof":   time.Now().Format("2006-01-02"),
	}

	var cached []*MarketData
	if yc.cache.Get("yahoo", "daily_history", cacheKey, &cached) {
		return cached, nil
	}

	bars, err := yc.fetchHistory(symbol, days)
	if err != nil {
		return nil, err
	}

	yc.cache.Set("yahoo", "daily_history", cacheKey, bars)

	return bars, nil
}

func (yc *YahooClient) fetchHistory(symbol string, days int) ([]*MarketData, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)

	bars := make([]*MarketData, 0)
	for iter.Next() {
		bar := iter.Bar()

		bars = append(bars, &MarketData{
			Symbol:    symbol,
			Date:      time.Unix(int64(bar.Timestamp), 0),
			Open:      bar.Open,
			High:      bar.High,
			Low:       bar.Low,
			Close:     bar.Close,
			AdjClose:  bar.AdjClose,
			Volume:    int64(bar.Volume),
			Timestamp: time.Now(),
		})
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get historical data for %s: %w", symbol, err)
	}

	return bars, nil
}

// Expirations lists the option expiration dates Yahoo publishes for a
// symbol, nearest first, in the order the provider returns them.
func (yc *YahooClient) Expirations(symbol string) ([]time.Time, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = NormalizeSymbol(symbol)

	p := &options.Params{
		UnderlyingSymbol: symbol,
	}
	iter := options.GetStraddleP(p)

	// Advance once so the meta block is populated before reading it.
	iter.Next()
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get option metadata for %s: %w", symbol, err)
	}

	meta := iter.Meta()
	if meta == nil {
		return nil, nil
	}

	dates := make([]time.Time, 0, len(meta.AllExpirationDates))
	for _, ts := range meta.AllExpirationDates {
		dates = append(dates, time.Unix(int64(ts), 0).UTC())
	}

	return dates, nil
}

// StraddleChain fetches the call/put chain for one expiration.
func (yc *YahooClient) StraddleChain(symbol string, expiration time.Time) (*OptionChain, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = NormalizeSymbol(symbol)

	exp := expiration.UTC()
	p := &options.Params{
		UnderlyingSymbol: symbol,
		Expiration:       datetime.New(&exp),
	}
	iter := options.GetStraddleP(p)

	chain := &OptionChain{
		Symbol:     symbol,
		Expiration: exp,
	}
	for iter.Next() {
		straddle := iter.Straddle()

		if straddle.Call != nil {
			chain.Calls = append(chain.Calls, contractQuote(straddle.Call))
		}
		if straddle.Put != nil {
			chain.Puts = append(chain.Puts, contractQuote(straddle.Put))
		}
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get option chain for %s %s: %w",
			symbol, exp.Format("2006-01-02"), err)
	}

	return chain, nil
}

// contractQuote converts a Yahoo contract. Yahoo does not publish
// Greeks, so delta and theta keep their zero defaults.
func contractQuote(c *finance.Contract) OptionQuote {
	return OptionQuote{
		Strike:            c.Strike,
		Bid:               c.Bid,
		Ask:               c.Ask,
		ImpliedVolatility: c.ImpliedVolatility,
	}
}
