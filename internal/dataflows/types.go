package dataflows

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfold/straddlego/internal/config"
)

// Config is an alias for the main application config
type Config = config.Config

// MarketData represents one daily price bar.
type MarketData struct {
	Symbol    string          `json:"symbol"`
	Date      time.Time       `json:"date"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	AdjClose  decimal.Decimal `json:"adj_close"`
	Volume    int64           `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`
}

// OptionQuote is one side of an option chain row. Delta and theta are
// optional in provider data and stay zero when the provider does not
// publish them.
type OptionQuote struct {
	Strike            float64 `json:"strike"`
	Bid               float64 `json:"bid"`
	Ask               float64 `json:"ask"`
	ImpliedVolatility float64 `json:"implied_volatility"`
	Delta             float64 `json:"delta,omitempty"`
	Theta             float64 `json:"theta,omitempty"`
}

// OptionChain holds the call and put quotes for a single expiration.
type OptionChain struct {
	Symbol     string        `json:"symbol"`
	Expiration time.Time     `json:"expiration"`
	Calls      []OptionQuote `json:"calls"`
	Puts       []OptionQuote `json:"puts"`
}
