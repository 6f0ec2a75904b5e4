package dataflows

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
)

// earningsLookahead bounds the calendar query. Half a year is enough
// to catch the next scheduled report for any quarterly filer.
const earningsLookahead = 180 * 24 * time.Hour

// FinnhubClient handles Finnhub API operations
type FinnhubClient struct {
	client *resty.Client
	cache  *CacheManager
	apiKey string
}

// NewFinnhubClient creates a new Finnhub client
func NewFinnhubClient(config *Config) *FinnhubClient {
	cacheDir := filepath.Join(config.DataCacheDir, "finnhub")
	cache := NewCacheManager(cacheDir, 6*time.Hour, config.CacheEnabled)

	client := resty.New()
	client.SetBaseURL("https://finnhub.io/api/v1")
	client.SetTimeout(30 * time.Second)

	return &FinnhubClient{
		client: client,
		cache:  cache,
		apiKey: config.FinnhubAPIKey,
	}
}

// FinnhubEarnings represents one entry of the Finnhub earnings calendar.
type FinnhubEarnings struct {
	Date            string   `json:"date"`
	EPSEstimate     *float64 `json:"epsEstimate"`
	Hour            string   `json:"hour"`
	Quarter         int      `json:"quarter"`
	RevenueEstimate *float64 `json:"revenueEstimate"`
	Symbol          string   `json:"symbol"`
	Year            int      `json:"year"`
}

// NextEarningsDate returns the next scheduled earnings date for a
// company. Callers treat any error here as non-fatal.
func (fc *FinnhubClient) NextEarningsDate(symbol string) (time.Time, error) {
	if fc.apiKey == "" {
		return time.Time{}, fmt.Errorf("Finnhub API key not configured")
	}

	if err := ValidateSymbol(symbol); err != nil {
		return time.Time{}, err
	}
	symbol = NormalizeSymbol(symbol)

	from := time.Now()
	to := from.Add(earningsLookahead)

	cacheKey := map[string]interface{}{
		"symbol": symbol,
		"from":   from.Format("2006-01-02"),
	}

	var cached time.Time
	if fc.cache.Get("finnhub", "next_earnings", cacheKey, &cached) {
		return cached, nil
	}

	resp, err := fc.client.R().
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"from":   from.Format("2006-01-02"),
			"to":     to.Format("2006-01-02"),
			"token":  fc.apiKey,
		}).
		Get("/calendar/earnings")

	if err != nil {
		return time.Time{}, fmt.Errorf("failed to fetch earnings calendar for %s: %w", symbol, err)
	}

	if resp.StatusCode() != 200 {
		return time.Time{}, fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
	}

	var apiResponse struct {
		EarningsCalendar []FinnhubEarnings `json:"earningsCalendar"`
	}

	if err := json.Unmarshal(resp.Body(), &apiResponse); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse earnings calendar response: %w", err)
	}

	// Finnhub returns entries newest first; keep the earliest upcoming one.
	var next time.Time
	for _, entry := range apiResponse.EarningsCalendar {
		date, err := ParseDateString(entry.Date)
		if err != nil {
			continue
		}
		if next.IsZero() || date.Before(next) {
			next = date
		}
	}

	if next.IsZero() {
		return time.Time{}, fmt.Errorf("no upcoming earnings date for %s", symbol)
	}

	fc.cache.Set("finnhub", "next_earnings", cacheKey, next)

	return next, nil
}
