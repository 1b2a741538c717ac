package sync

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/adapters"
	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const msgAlreadyRunning = "sync already in progress"

// Service is the sync orchestrator: it advances day by day from the last
// stored snapshot date to today, fetching each day's rates and persisting
// them through the batched writer. Runs are single-flight within the
// process; a second invocation while one is active is reported back, not
// queued. The guard is in-memory only, so two replicas can still fetch the
// same days, but writes stay safe through the conflict-free insert.
type Service struct {
	source     adapters.RateSource
	currencies adapters.CurrencyRepository
	snapshots  adapters.SnapshotRepository
	cache      adapters.HistoryCache
	retrier    *Retrier
	epoch      time.Time
	batchSize  int

	running atomic.Bool
	now     func() time.Time
}

func NewService(
	source adapters.RateSource,
	currencies adapters.CurrencyRepository,
	snapshots adapters.SnapshotRepository,
	cache adapters.HistoryCache,
	retrier *Retrier,
	epoch time.Time,
	batchSize int,
) *Service {
	return &Service{
		source:     source,
		currencies: currencies,
		snapshots:  snapshots,
		cache:      cache,
		retrier:    retrier,
		epoch:      domain.Day(epoch),
		batchSize:  batchSize,
		now:        time.Now,
	}
}

// Run executes one sync pass and reports the outcome. It never returns an
// error: every failure mode degrades to skipped work and a message.
func (s *Service) Run(ctx context.Context) domain.SyncResult {
	if !s.running.CompareAndSwap(false, true) {
		return domain.SyncResult{Success: false, Message: msgAlreadyRunning}
	}
	defer s.running.Store(false)

	execID := uuid.NewString()
	logrus.Infof("Sync run %s started", execID)

	cursor, err := s.cursor(ctx)
	if err != nil {
		logrus.WithError(err).Errorf("Sync run %s failed to compute cursor", execID)
		return domain.SyncResult{Success: false, Message: "failed to compute sync cursor"}
	}

	directory := s.loadDirectory(ctx, execID)

	today := domain.Day(s.now())
	batcher := NewBatcher(s.snapshots, s.batchSize)

	var skipped int
	for day := cursor; !day.After(today); day = day.AddDate(0, 0, 1) {
		rates, ok := s.retrier.FetchDay(ctx, s.source, day)
		if !ok {
			// the cursor moves past this day next run, the gap is permanent
			skipped++
			logrus.Warnf("Skipping %s, upstream unavailable; execID: %s", day.Format(dayLayout), execID)
			continue
		}

		for code, value := range rates {
			if value == nil {
				continue
			}
			currencyID, found := directory[code]
			if !found {
				logrus.Warnf("Skipping unknown currency code %q for %s; execID: %s", code, day.Format(dayLayout), execID)
				continue
			}
			batcher.Add(ctx, domain.RateRow{
				Date:       day,
				Value:      int64(math.Floor(*value)),
				CurrencyID: currencyID,
			})
		}
	}
	batcher.Flush(ctx)

	if batcher.Written() > 0 {
		s.cache.Purge()
	}

	logrus.Infof("Sync run %s finished: %d days skipped, %d rows written", execID, skipped, batcher.Written())

	if len(directory) == 0 {
		return domain.SyncResult{Success: true, Message: "sync finished, but no currencies could be resolved"}
	}
	return domain.SyncResult{Success: true, Message: fmt.Sprintf("sync finished: %d rows written", batcher.Written())}
}

// cursor computes the next date to fetch: one day past the latest stored
// snapshot, or the epoch when the store is empty or stopped at the epoch.
func (s *Service) cursor(ctx context.Context) (time.Time, error) {
	latest, ok, err := s.snapshots.LatestDate(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if !ok || !latest.After(s.epoch) {
		return s.epoch, nil
	}
	return latest.AddDate(0, 0, 1), nil
}

// loadDirectory maps currency codes to ids, once per run. On failure the
// run degrades to a no-op instead of aborting.
func (s *Service) loadDirectory(ctx context.Context, execID string) map[string]int64 {
	currencies, err := s.currencies.GetAll(ctx)
	if err != nil {
		logrus.WithError(err).Errorf("Failed to load currency directory, run will write nothing; execID: %s", execID)
		return map[string]int64{}
	}
	directory := make(map[string]int64, len(currencies))
	for _, c := range currencies {
		directory[c.Code] = c.ID
	}
	return directory
}
