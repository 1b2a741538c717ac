package adapters

import (
	"context"
	"time"

	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/domain"
)

// RateSource fetches one day's multi-currency snapshot from the upstream
// provider. Nil map values mean the upstream reported no rate for that code.
type RateSource interface {
	GetDayRates(ctx context.Context, date time.Time) (map[string]*float64, error)
}

type CurrencyRepository interface {
	GetAll(ctx context.Context) ([]domain.Currency, error)
}

type SnapshotRepository interface {
	// LatestDate returns the most recent stored snapshot date, or ok=false
	// when the store is empty.
	LatestDate(ctx context.Context) (date time.Time, ok bool, err error)
	// InsertBatch performs a single multi-row insert; duplicate
	// (date, currency) pairs are silently ignored.
	InsertBatch(ctx context.Context, rows []domain.RateRow) error
	// GetHistory returns all snapshots ordered by date desc, code asc.
	// An empty code means no currency filter.
	GetHistory(ctx context.Context, code string) ([]domain.RateSnapshot, error)
	GetByDate(ctx context.Context, date time.Time) ([]domain.RateSnapshot, error)
}

type HistoryCache interface {
	Get(key string) ([]domain.RateSnapshot, bool)
	Set(key string, snapshots []domain.RateSnapshot)
	Purge()
}
