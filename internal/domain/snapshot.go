package domain

import (
	"time"
)

// RateSnapshot is one day's recorded exchange rate for one currency,
// stored in whole CUP. At most one row exists per (date, currency).
type RateSnapshot struct {
	ID         int64
	Date       time.Time
	Value      int64
	CurrencyID int64
	Code       string
}

// RateRow is a normalized rate pending insertion by the batched writer.
// JSON tags match the json_to_recordset column list in the insert query.
type RateRow struct {
	Date       time.Time `json:"date"`
	Value      int64     `json:"value"`
	CurrencyID int64     `json:"currency_id"`
}

// DensifiedPoint is one day of a chart-ready series. Synthesized points
// (interpolated or extrapolated) carry IsReal=false and never reach storage.
type DensifiedPoint struct {
	Date   time.Time
	Value  float64
	IsReal bool
}

// Day truncates t to midnight UTC so calendar days compare cleanly.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
