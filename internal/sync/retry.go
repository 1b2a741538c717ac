package sync

import (
	"context"
	"time"

	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/adapters"

	"github.com/sirupsen/logrus"
)

const dayLayout = "2006-01-02"

// Retrier wraps a rate source call with a bounded number of flat-delay
// retries. It never surfaces an error: after the attempt cap the day is
// reported unavailable and the orchestrator decides whether that is fatal.
// Flat delay instead of backoff is enough at one request per calendar day.
type Retrier struct {
	attempts int
	delay    time.Duration
	sleep    func(time.Duration)
}

func NewRetrier(attempts int, delay time.Duration) *Retrier {
	if attempts < 1 {
		attempts = 1
	}
	return &Retrier{attempts: attempts, delay: delay, sleep: time.Sleep}
}

// FetchDay fetches one day's snapshot, retrying on any failure.
func (r *Retrier) FetchDay(ctx context.Context, source adapters.RateSource, date time.Time) (map[string]*float64, bool) {
	day := date.Format(dayLayout)
	for attempt := 1; attempt <= r.attempts; attempt++ {
		rates, err := source.GetDayRates(ctx, date)
		if err == nil {
			return rates, true
		}
		logrus.Warnf("Fetch attempt %d/%d for %s failed: %v", attempt, r.attempts, day, err)
		if attempt < r.attempts {
			r.sleep(r.delay)
		}
	}
	logrus.Errorf("Giving up on %s after %d attempts", day, r.attempts)
	return nil, false
}
