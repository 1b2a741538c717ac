package history

import (
	"context"
	"time"

	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/adapters"
	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/domain"

	"golang.org/x/sync/errgroup"
)

// Service serves the read side: raw history, two-date comparison and the
// densified chart series. History reads go through the cache, which the
// sync run purges after writing new snapshots.
type Service struct {
	snapshots adapters.SnapshotRepository
	cache     adapters.HistoryCache
	densifier *Densifier
}

func NewService(snapshots adapters.SnapshotRepository, cache adapters.HistoryCache, densifier *Densifier) *Service {
	return &Service{snapshots: snapshots, cache: cache, densifier: densifier}
}

// History returns stored snapshots ordered by date desc, code asc. An empty
// code means all currencies.
func (s *Service) History(ctx context.Context, code string) ([]domain.RateSnapshot, error) {
	key := "history:" + code
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	snapshots, err := s.snapshots.GetHistory(ctx, code)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, snapshots)
	return snapshots, nil
}

// Compare fetches the full snapshot sets for two dates. The reads are
// independent queries with no shared state, so they run concurrently.
func (s *Service) Compare(ctx context.Context, first, second time.Time) ([]domain.RateSnapshot, []domain.RateSnapshot, error) {
	var firstSet, secondSet []domain.RateSnapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		firstSet, err = s.snapshots.GetByDate(gctx, first)
		return err
	})
	g.Go(func() error {
		var err error
		secondSet, err = s.snapshots.GetByDate(gctx, second)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return firstSet, secondSet, nil
}

// Trend returns one point per day in [start, end] for a currency, real
// values passed through and gaps filled by the densifier.
func (s *Service) Trend(ctx context.Context, code string, start, end time.Time) ([]domain.DensifiedPoint, error) {
	snapshots, err := s.History(ctx, code)
	if err != nil {
		return nil, err
	}

	// History is newest-first for the API; the densifier walks oldest-first.
	asc := make([]domain.RateSnapshot, len(snapshots))
	for i, snap := range snapshots {
		asc[len(snapshots)-1-i] = snap
	}
	return s.densifier.Densify(start, end, asc)
}
