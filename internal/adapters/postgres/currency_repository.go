package postgres

import (
	"context"
	"fmt"

	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CurrencyRepository struct {
	pool *pgxpool.Pool
}

func (r *CurrencyRepository) GetAll(ctx context.Context) ([]domain.Currency, error) {
	const q = `select id, code, name, icon from currency order by code;`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	currencies := make([]domain.Currency, 0, 8)
	for rows.Next() {
		var c domain.Currency
		if err = rows.Scan(&c.ID, &c.Code, &c.Name, &c.Icon); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		currencies = append(currencies, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currencies: %w", err)
	}
	return currencies, nil
}

func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{pool: pool}
}
