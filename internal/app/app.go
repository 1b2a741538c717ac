package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/adapters/cache"
	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/adapters/httpclient"
	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/adapters/postgres"
	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/api"
	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/config"
	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/history"
	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/platform/db"
	httpserver "github.com/EduardoProfe666/tasas-cuba-sub000/internal/platform/http"
	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/rate"
	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/rate/handler"
	ratesync "github.com/EduardoProfe666/tasas-cuba-sub000/internal/sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations, initial reads)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	// Schema + currency seed, idempotent on every start
	if err = db.Migrate(startupCtx, appCfg.DbServer.GetConnectionStr()); err != nil {
		logrus.WithError(err).Error("Failed to apply migrations")
		return err
	}
	logrus.Info("✅ Migrations applied")

	// Load supported currencies codes
	supportedCodes, err := loadSupportedCodes(startupCtx, pool)
	if err != nil || len(supportedCodes) == 0 {
		if err == nil {
			err = errors.New("no supported currencies available")
		}
		logrus.WithError(err).Error("Failed to load supported currencies")
		return err
	}
	logrus.Info("✅ Supported currencies loaded")

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// Upstream rates client
	if appCfg.TrmiAPI.APIToken == "" {
		return fmt.Errorf("trmi api token is required")
	}
	rateSource := httpclient.NewTrmiClient(
		baseHTTPClient,
		strings.TrimSuffix(appCfg.TrmiAPI.BaseURL, "/")+"/v1/trmi",
		appCfg.TrmiAPI.APIToken,
	)

	// Repositories and cache
	currencyRepo := postgres.NewCurrencyRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)

	historyCache, err := cache.NewHistoryCache(appCfg.Cache.MaxItems)
	if err != nil {
		logrus.WithError(err).Error("Failed to create history cache")
		return err
	}
	defer historyCache.Close()

	// Sync service
	epoch, err := time.ParseInLocation("2006-01-02", appCfg.Sync.Epoch, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid sync epoch %q: %w", appCfg.Sync.Epoch, err)
	}
	retrier := ratesync.NewRetrier(appCfg.Sync.RetryAttempts, time.Duration(appCfg.Sync.RetryDelayMs)*time.Millisecond)
	syncService := ratesync.NewService(rateSource, currencyRepo, snapshotRepo, historyCache, retrier, epoch, appCfg.Sync.BatchSize)

	scheduler := ratesync.NewScheduler(syncService, time.Duration(appCfg.Sync.IntervalMinutes)*time.Minute)
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	// Start scheduler tied to root context
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Read side
	densifier := history.NewDensifier(time.Now().UnixNano())
	historyService := history.NewService(snapshotRepo, historyCache, densifier)

	// Handlers and router
	rateValidator := rate.NewValidator(supportedCodes)
	rateHandler := handler.NewRateHandler(rateValidator, syncService, historyService)
	router := api.NewRouter(rateHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// loadSupportedCodes loads supported currencies codes from DB
func loadSupportedCodes(ctx context.Context, pool *pgxpool.Pool) (map[string]struct{}, error) {
	rows, err := pool.Query(ctx, `select code from currency`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := make(map[string]struct{})
	for rows.Next() {
		var c string
		if err = rows.Scan(&c); err != nil {
			return nil, err
		}
		m[c] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return m, nil
}
