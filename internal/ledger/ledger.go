package ledger

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/quantfold/straddlego/internal/straddle"
)

// Row is one persisted straddle snapshot. The csv tags are the ledger
// schema; existing files depend on the exact column names.
type Row struct {
	Symbol         string  `csv:"Symbol"`
	Date           string  `csv:"Date"`
	CurrentPrice   float64 `csv:"Current Price"`
	ExpirationDate string  `csv:"Expiration Date"`
	DTE            int     `csv:"DTE"`
	ATMStrike      float64 `csv:"ATM Strike"`
	CallPrice      float64 `csv:"Call Price"`
	CallIV         float64 `csv:"Call IV"`
	CallDelta      float64 `csv:"Call Delta"`
	CallTheta      float64 `csv:"Call Theta"`
	PutPrice       float64 `csv:"Put Price"`
	PutIV          float64 `csv:"Put IV"`
	PutDelta       float64 `csv:"Put Delta"`
	PutTheta       float64 `csv:"Put Theta"`
	HV             float64 `csv:"HV"`
	StraddlePrice  float64 `csv:"Straddle Price"`
	ImpliedMovePct float64 `csv:"Implied Move %"`
	RangeLow       float64 `csv:"Range Low"`
	RangeHigh      float64 `csv:"Range High"`
	EarningsDate   string  `csv:"Earnings Date"`
}

func round(v float64, places int) float64 {
	f := math.Pow(10, float64(places))
	return math.Round(v*f) / f
}

// FromReport flattens a scan report into ledger rows, one per result,
// stamped with the run time. Prices round to 2 decimals, IV and
// Greeks to 4.
func FromReport(report *straddle.RunReport, at time.Time) []*Row {
	rows := make([]*Row, 0, len(report.Results))
	for _, res := range report.Results {
		rows = append(rows, &Row{
			Symbol:         report.Symbol,
			Date:           at.Format("2006-01-02 15:04:05"),
			CurrentPrice:   round(report.Spot, 2),
			ExpirationDate: res.Expiration.Format("2006-01-02"),
			DTE:            res.DTE,
			ATMStrike:      res.Strike,
			CallPrice:      round(res.CallMid, 2),
			CallIV:         round(res.CallIV, 4),
			CallDelta:      round(res.CallDelta, 4),
			CallTheta:      round(res.CallTheta, 4),
			PutPrice:       round(res.PutMid, 2),
			PutIV:          round(res.PutIV, 4),
			PutDelta:       round(res.PutDelta, 4),
			PutTheta:       round(res.PutTheta, 4),
			HV:             round(report.HV, 4),
			StraddlePrice:  round(res.StraddlePrice, 2),
			ImpliedMovePct: round(res.ImpliedMovePct, 2),
			RangeLow:       round(res.RangeLow, 2),
			RangeHigh:      round(res.RangeHigh, 2),
			EarningsDate:   report.EarningsDate,
		})
	}
	return rows
}

// Ledger appends rows to a flat CSV file. Rows are never updated or
// deleted; the header is written only when this run creates the file.
type Ledger struct {
	path string
}

// New creates a ledger over the given file path.
func New(path string) *Ledger {
	return &Ledger{path: path}
}

// Path returns the ledger file path.
func (l *Ledger) Path() string {
	return l.path
}

// Append writes the rows in order. Concurrent runs against the same
// file are not coordinated; append ordering is whatever the
// filesystem serializes.
func (l *Ledger) Append(rows []*Row) error {
	if len(rows) == 0 {
		return nil
	}

	_, statErr := os.Stat(l.path)
	exists := statErr == nil

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening CSV file: %v", err)
	}
	defer file.Close()

	if exists {
		if err := gocsv.MarshalWithoutHeaders(&rows, file); err != nil {
			return fmt.Errorf("error marshalling rows: %v", err)
		}
		return nil
	}

	if err := gocsv.Marshal(&rows, file); err != nil {
		return fmt.Errorf("error marshalling rows: %v", err)
	}
	return nil
}
