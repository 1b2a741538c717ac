package history

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/domain"
)

const (
	minVolatility = 0.005
	maxDailyTrend = 0.05
	floorRatio    = 0.7
	iqrMinSamples = 8
)

// Densifier fills a sparse snapshot history into one value per calendar
// day. Days without data are interpolated between surrounding real points,
// or extrapolated with a bounded random walk past the newest one. Nothing
// it synthesizes is ever persisted; consumers must honor IsReal.
//
// Only the seed is shared between calls; each Densify derives its own
// generator, so one Densifier is safe for concurrent requests.
type Densifier struct {
	seed int64
}

func NewDensifier(seed int64) *Densifier {
	return &Densifier{seed: seed}
}

// Densify emits one point per day in [start, end]. history must belong to a
// single currency and be sorted ascending by date.
func (d *Densifier) Densify(start, end time.Time, history []domain.RateSnapshot) ([]domain.DensifiedPoint, error) {
	if len(history) == 0 {
		return nil, domain.ErrNoHistory
	}
	start, end = domain.Day(start), domain.Day(end)
	if end.Before(start) {
		return []domain.DensifiedPoint{}, nil
	}

	rng := rand.New(rand.NewSource(d.seed))
	volatility := estimateVolatility(history)
	trend := estimateTrend(history)
	// the extrapolation floor is anchored on the newest real value
	floor := floorRatio * float64(history[len(history)-1].Value)

	totalDays := int(end.Sub(start).Hours()/24) + 1
	points := make([]domain.DensifiedPoint, 0, totalDays)

	var (
		next     int // index of the first history point not yet behind the current day
		lastVal  float64
		lastDate time.Time
		haveLast bool
		prev     float64
		havePrev bool
	)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		for next < len(history) && domain.Day(history[next].Date).Before(day) {
			lastVal = float64(history[next].Value)
			lastDate = domain.Day(history[next].Date)
			haveLast = true
			next++
		}

		// real snapshot for this exact day: pass it through untouched
		if next < len(history) && domain.Day(history[next].Date).Equal(day) {
			v := float64(history[next].Value)
			points = append(points, domain.DensifiedPoint{Date: day, Value: v, IsReal: true})
			lastVal, lastDate, haveLast = v, day, true
			prev, havePrev = v, true
			next++
			continue
		}

		// a later real point inside the range means we can interpolate
		if next < len(history) && !domain.Day(history[next].Date).After(end) {
			nextVal := float64(history[next].Value)
			nextDate := domain.Day(history[next].Date)

			var v float64
			if !haveLast {
				// leading gap before the first snapshot: backfill flat
				v = nextVal
			} else {
				total := nextDate.Sub(lastDate).Hours() / 24
				passed := day.Sub(lastDate).Hours() / 24
				v = lastVal + (nextVal-lastVal)*(passed/total)
			}
			v = math.Round(v)
			points = append(points, domain.DensifiedPoint{Date: day, Value: v, IsReal: false})
			prev, havePrev = v, true
			continue
		}

		// past the newest data: bounded random walk off the previous value
		base := lastVal
		if havePrev {
			base = prev
		}
		perturbation := (rng.Float64()*2 - 1) * volatility
		v := math.Round(base * (1 + trend + perturbation))
		if v < floor {
			// ceil keeps the clamped value whole without dipping below
			v = math.Ceil(floor)
		}
		points = append(points, domain.DensifiedPoint{Date: day, Value: v, IsReal: false})
		prev, havePrev = v, true
	}

	return points, nil
}

// estimateVolatility is the standard deviation of day-over-day returns,
// IQR-trimmed when there are enough samples, floored at minVolatility.
func estimateVolatility(history []domain.RateSnapshot) float64 {
	returns := make([]float64, 0, len(history))
	for i := 1; i < len(history); i++ {
		prev := float64(history[i-1].Value)
		if prev == 0 {
			continue
		}
		returns = append(returns, (float64(history[i].Value)-prev)/prev)
	}
	if len(returns) == 0 {
		return minVolatility
	}
	if len(returns) >= iqrMinSamples {
		returns = trimOutliers(returns)
	}

	sd := stddev(returns)
	if sd < minVolatility {
		sd = minVolatility
	}
	return sd
}

// estimateTrend is the total percent change over the series divided by
// elapsed days, clamped to ±maxDailyTrend per day.
func estimateTrend(history []domain.RateSnapshot) float64 {
	first := history[0]
	last := history[len(history)-1]

	days := domain.Day(last.Date).Sub(domain.Day(first.Date)).Hours() / 24
	if days <= 0 || first.Value == 0 {
		return 0
	}

	trend := (float64(last.Value) - float64(first.Value)) / float64(first.Value) / days
	if trend > maxDailyTrend {
		return maxDailyTrend
	}
	if trend < -maxDailyTrend {
		return -maxDailyTrend
	}
	return trend
}

// trimOutliers drops returns outside [q1-1.5*iqr, q3+1.5*iqr].
func trimOutliers(returns []float64) []float64 {
	sorted := append([]float64(nil), returns...)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	lo, hi := q1-1.5*iqr, q3+1.5*iqr

	kept := make([]float64, 0, len(returns))
	for _, r := range returns {
		if r >= lo && r <= hi {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return returns
	}
	return kept
}

func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

func stddev(values []float64) float64 {
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
