package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SnapshotRepository struct {
	pool *pgxpool.Pool
}

func (r *SnapshotRepository) LatestDate(ctx context.Context) (time.Time, bool, error) {
	const q = `select max(date) from exchange_rate;`

	var latest *time.Time
	if err := r.pool.QueryRow(ctx, q).Scan(&latest); err != nil {
		return time.Time{}, false, fmt.Errorf("failed to select latest snapshot date: %w", err)
	}
	if latest == nil {
		return time.Time{}, false, nil
	}
	return domain.Day(*latest), true, nil
}

func (r *SnapshotRepository) InsertBatch(ctx context.Context, batch []domain.RateRow) error {
	if len(batch) == 0 {
		return nil
	}

	payloadJSON, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal rate rows: %w", err)
	}

	// Single multi-row insert; re-running sync over an already covered
	// range is a no-op thanks to the conflict clause.
	const q = `
		insert into exchange_rate(date, value, currency_id)
		select r."date", r.value, r.currency_id
		from json_to_recordset($1::json) as r("date" date, value bigint, currency_id bigint)
		on conflict (date, currency_id) do nothing;
	`

	if _, err = r.pool.Exec(ctx, q, json.RawMessage(payloadJSON)); err != nil {
		return fmt.Errorf("failed to insert snapshot batch of %d rows: %w", len(batch), err)
	}
	return nil
}

func (r *SnapshotRepository) GetHistory(ctx context.Context, code string) ([]domain.RateSnapshot, error) {
	q := `
		select er.id, er.date, er.value, er.currency_id, c.code
		from exchange_rate er join currency c on c.id = er.currency_id`
	args := make([]any, 0, 1)
	if code != "" {
		q += ` where c.code = $1`
		args = append(args, code)
	}
	q += ` order by er.date desc, c.code asc;`

	return r.querySnapshots(ctx, q, args...)
}

func (r *SnapshotRepository) GetByDate(ctx context.Context, date time.Time) ([]domain.RateSnapshot, error) {
	const q = `
		select er.id, er.date, er.value, er.currency_id, c.code
		from exchange_rate er join currency c on c.id = er.currency_id
		where er.date = $1
		order by c.code asc;
	`
	return r.querySnapshots(ctx, q, domain.Day(date))
}

func (r *SnapshotRepository) querySnapshots(ctx context.Context, q string, args ...any) ([]domain.RateSnapshot, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]domain.RateSnapshot, 0, 64)
	for rows.Next() {
		var s domain.RateSnapshot
		if err = rows.Scan(&s.ID, &s.Date, &s.Value, &s.CurrencyID, &s.Code); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		s.Date = domain.Day(s.Date)
		snapshots = append(snapshots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}
	return snapshots, nil
}

func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}
