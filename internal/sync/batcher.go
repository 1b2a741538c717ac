package sync

import (
	"context"

	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/adapters"
	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/domain"

	"github.com/sirupsen/logrus"
)

// Batcher accumulates normalized rate rows and flushes them to the store in
// fixed-size batches. A failed flush is logged and its rows dropped; the run
// keeps going and a later run re-derives the same range.
type Batcher struct {
	repo      adapters.SnapshotRepository
	threshold int
	pending   []domain.RateRow
	written   int
}

func NewBatcher(repo adapters.SnapshotRepository, threshold int) *Batcher {
	if threshold < 1 {
		threshold = 1
	}
	return &Batcher{
		repo:      repo,
		threshold: threshold,
		pending:   make([]domain.RateRow, 0, threshold),
	}
}

// Add appends a row and flushes once the pending count hits the threshold.
func (b *Batcher) Add(ctx context.Context, row domain.RateRow) {
	b.pending = append(b.pending, row)
	if len(b.pending) >= b.threshold {
		b.Flush(ctx)
	}
}

// Flush writes all pending rows in one insert. The batch is discarded
// whether or not the insert succeeded.
func (b *Batcher) Flush(ctx context.Context) {
	if len(b.pending) == 0 {
		return
	}
	if err := b.repo.InsertBatch(ctx, b.pending); err != nil {
		logrus.WithError(err).Errorf("Failed to flush batch of %d rows, dropping it", len(b.pending))
	} else {
		b.written += len(b.pending)
	}
	b.pending = make([]domain.RateRow, 0, b.threshold)
}

// Written reports how many rows were handed to the store in successful
// flushes. Duplicates the conflict clause discarded are still counted, so
// a re-run over an already covered range can report writes that changed
// no stored data.
func (b *Batcher) Written() int { return b.written }

// Pending reports how many rows await the next flush.
func (b *Batcher) Pending() int { return len(b.pending) }
