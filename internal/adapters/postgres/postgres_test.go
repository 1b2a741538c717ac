package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/adapters/postgres"
	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	tcpg "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const migrationsDir = "../../platform/db/migrations"

var (
	pgSetupOnce sync.Once

	pgContainer *tcpg.PostgresContainer
	pgConnStr   string
)

func TestMain(m *testing.M) {
	code := m.Run()
	if pgContainer != nil {
		_ = pgContainer.Terminate(context.Background())
	}
	os.Exit(code)
}

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pgSetupOnce.Do(func() {
		startPostgres(t)
	})

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, pgConnStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	require.NoError(t, resetDatabase(ctx, pool))

	return pool
}

func startPostgres(t *testing.T) {
	ctx := context.Background()
	pg, err := tcpg.Run(ctx,
		"postgres:16-alpine",
		tcpg.WithDatabase("postgres"),
		tcpg.WithUsername("postgres"),
		tcpg.WithPassword("postgres"),
	)
	require.NoError(t, err)

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := goose.OpenDBWithDriver("pgx", dsn)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.Eventually(t, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return db.PingContext(pingCtx) == nil
	}, 15*time.Second, 500*time.Millisecond)

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.UpContext(ctx, db, migrationsDir))

	pgContainer = pg
	pgConnStr = dsn
}

// Snapshots are cleared between tests; the seeded currency directory stays.
func resetDatabase(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `truncate table exchange_rate restart identity`); err != nil {
		return err
	}
	return nil
}

func currencyID(t *testing.T, pool *pgxpool.Pool, code string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(), `select id from currency where code = $1`, code).Scan(&id)
	require.NoError(t, err)
	return id
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ---------- CurrencyRepository tests ----------

func TestCurrencyRepository_GetAll_ReturnsSeededDirectory(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewCurrencyRepository(pool)

	currencies, err := repo.GetAll(context.Background())
	require.NoError(t, err)

	codes := make([]string, 0, len(currencies))
	for _, c := range currencies {
		require.NotZero(t, c.ID)
		require.NotEmpty(t, c.Name)
		codes = append(codes, c.Code)
	}
	require.Equal(t, []string{"BTC", "ECU", "MLC", "TRX", "USD", "USDT_TRC20"}, codes)
}

func TestCurrencyRepository_GetAll_DBError(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewCurrencyRepository(pool)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.GetAll(ctx)
	require.Error(t, err)
}

// ---------- SnapshotRepository tests ----------

func TestSnapshotRepository_LatestDate_EmptyTable(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewSnapshotRepository(pool)

	_, ok, err := repo.LatestDate(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSnapshotRepository_LatestDate_ReturnsMaxDay(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewSnapshotRepository(pool)
	ctx := context.Background()

	usd := currencyID(t, pool, "USD")
	err := repo.InsertBatch(ctx, []domain.RateRow{
		{Date: utcDate(2021, 3, 1), Value: 24, CurrencyID: usd},
		{Date: utcDate(2021, 3, 5), Value: 25, CurrencyID: usd},
		{Date: utcDate(2021, 3, 3), Value: 26, CurrencyID: usd},
	})
	require.NoError(t, err)

	latest, ok, err := repo.LatestDate(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, utcDate(2021, 3, 5), latest)
}

func TestSnapshotRepository_LatestDate_DBError(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewSnapshotRepository(pool)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := repo.LatestDate(ctx)
	require.Error(t, err)
}

func TestSnapshotRepository_InsertBatch_EmptyNoop(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewSnapshotRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.InsertBatch(ctx, nil))
	require.NoError(t, repo.InsertBatch(ctx, make([]domain.RateRow, 0)))
}

func TestSnapshotRepository_InsertBatch_ConflictKeepsFirstValue(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewSnapshotRepository(pool)
	ctx := context.Background()

	usd := currencyID(t, pool, "USD")
	day := utcDate(2021, 2, 10)

	require.NoError(t, repo.InsertBatch(ctx, []domain.RateRow{{Date: day, Value: 24, CurrencyID: usd}}))

	// Re-sync of a covered day must not duplicate or overwrite.
	require.NoError(t, repo.InsertBatch(ctx, []domain.RateRow{{Date: day, Value: 999, CurrencyID: usd}}))

	var count int
	require.NoError(t, pool.QueryRow(ctx, `select count(*) from exchange_rate`).Scan(&count))
	require.Equal(t, 1, count)

	var value int64
	require.NoError(t, pool.QueryRow(ctx, `select value from exchange_rate where currency_id = $1`, usd).Scan(&value))
	require.Equal(t, int64(24), value)
}

func TestSnapshotRepository_InsertBatch_MixedNewAndExisting(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewSnapshotRepository(pool)
	ctx := context.Background()

	usd := currencyID(t, pool, "USD")
	ecu := currencyID(t, pool, "ECU")
	day := utcDate(2021, 2, 10)

	require.NoError(t, repo.InsertBatch(ctx, []domain.RateRow{{Date: day, Value: 24, CurrencyID: usd}}))
	require.NoError(t, repo.InsertBatch(ctx, []domain.RateRow{
		{Date: day, Value: 999, CurrencyID: usd},
		{Date: day, Value: 30, CurrencyID: ecu},
	}))

	var count int
	require.NoError(t, pool.QueryRow(ctx, `select count(*) from exchange_rate`).Scan(&count))
	require.Equal(t, 2, count)
}

func TestSnapshotRepository_InsertBatch_UnknownCurrencyFails(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewSnapshotRepository(pool)
	ctx := context.Background()

	err := repo.InsertBatch(ctx, []domain.RateRow{{Date: utcDate(2021, 2, 10), Value: 24, CurrencyID: 424242}})
	require.Error(t, err)
}

func TestSnapshotRepository_GetHistory_OrderingAndFilter(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewSnapshotRepository(pool)
	ctx := context.Background()

	usd := currencyID(t, pool, "USD")
	ecu := currencyID(t, pool, "ECU")
	require.NoError(t, repo.InsertBatch(ctx, []domain.RateRow{
		{Date: utcDate(2021, 1, 1), Value: 24, CurrencyID: usd},
		{Date: utcDate(2021, 1, 2), Value: 25, CurrencyID: usd},
		{Date: utcDate(2021, 1, 2), Value: 30, CurrencyID: ecu},
	}))

	all, err := repo.GetHistory(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest day first, codes ascending within a day.
	require.Equal(t, utcDate(2021, 1, 2), all[0].Date)
	require.Equal(t, "ECU", all[0].Code)
	require.Equal(t, "USD", all[1].Code)
	require.Equal(t, utcDate(2021, 1, 1), all[2].Date)

	usdOnly, err := repo.GetHistory(ctx, "USD")
	require.NoError(t, err)
	require.Len(t, usdOnly, 2)
	require.Equal(t, int64(25), usdOnly[0].Value)
	require.Equal(t, int64(24), usdOnly[1].Value)
	for _, s := range usdOnly {
		require.Equal(t, "USD", s.Code)
		require.Equal(t, usd, s.CurrencyID)
	}
}

func TestSnapshotRepository_GetHistory_Empty(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewSnapshotRepository(pool)

	history, err := repo.GetHistory(context.Background(), "BTC")
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestSnapshotRepository_GetHistory_DBError(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewSnapshotRepository(pool)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.GetHistory(ctx, "")
	require.Error(t, err)
}

func TestSnapshotRepository_GetByDate(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewSnapshotRepository(pool)
	ctx := context.Background()

	usd := currencyID(t, pool, "USD")
	ecu := currencyID(t, pool, "ECU")
	require.NoError(t, repo.InsertBatch(ctx, []domain.RateRow{
		{Date: utcDate(2021, 1, 1), Value: 24, CurrencyID: usd},
		{Date: utcDate(2021, 1, 1), Value: 30, CurrencyID: ecu},
		{Date: utcDate(2021, 1, 2), Value: 25, CurrencyID: usd},
	}))

	// Non-midnight input still matches the calendar day.
	set, err := repo.GetByDate(ctx, time.Date(2021, 1, 1, 15, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, set, 2)
	require.Equal(t, "ECU", set[0].Code)
	require.Equal(t, "USD", set[1].Code)
	for _, s := range set {
		require.Equal(t, utcDate(2021, 1, 1), s.Date)
	}

	empty, err := repo.GetByDate(ctx, utcDate(2020, 12, 31))
	require.NoError(t, err)
	require.Empty(t, empty)
}
