package history

import (
	"sync"
	"testing"
	"time"

	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/domain"

	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2021, 1, d, 0, 0, 0, 0, time.UTC)
}

func snap(d int, value int64) domain.RateSnapshot {
	return domain.RateSnapshot{Date: day(d), Value: value, CurrencyID: 1, Code: "USD"}
}

func TestDensify_EmptyHistory(t *testing.T) {
	d := NewDensifier(1)
	_, err := d.Densify(day(1), day(5), nil)
	require.ErrorIs(t, err, domain.ErrNoHistory)
}

func TestDensify_EndBeforeStart(t *testing.T) {
	d := NewDensifier(1)
	points, err := d.Densify(day(5), day(1), []domain.RateSnapshot{snap(1, 100)})
	require.NoError(t, err)
	require.Empty(t, points)
}

func TestDensify_AllDaysReal_PassthroughExactly(t *testing.T) {
	history := []domain.RateSnapshot{
		snap(1, 100), snap(2, 103), snap(3, 101), snap(4, 110), snap(5, 108),
	}

	d := NewDensifier(1)
	points, err := d.Densify(day(1), day(5), history)
	require.NoError(t, err)
	require.Len(t, points, 5)

	for i, p := range points {
		require.True(t, p.IsReal, "day %d", i+1)
		require.Equal(t, float64(history[i].Value), p.Value)
		require.Equal(t, day(i+1), p.Date)
	}
}

func TestDensify_LinearInterpolationBetweenRealPoints(t *testing.T) {
	history := []domain.RateSnapshot{snap(1, 100), snap(5, 140)}

	d := NewDensifier(1)
	points, err := d.Densify(day(1), day(5), history)
	require.NoError(t, err)
	require.Len(t, points, 5)

	require.True(t, points[0].IsReal)
	require.Equal(t, 100.0, points[0].Value)

	require.False(t, points[1].IsReal)
	require.Equal(t, 110.0, points[1].Value)
	require.False(t, points[2].IsReal)
	require.Equal(t, 120.0, points[2].Value) // midpoint
	require.False(t, points[3].IsReal)
	require.Equal(t, 130.0, points[3].Value)

	require.True(t, points[4].IsReal)
	require.Equal(t, 140.0, points[4].Value)
}

func TestDensify_InterpolationUsesRealPointBeforeRangeStart(t *testing.T) {
	// real data on days 1 and 5, requested range starts inside the gap
	history := []domain.RateSnapshot{snap(1, 100), snap(5, 140)}

	d := NewDensifier(1)
	points, err := d.Densify(day(3), day(5), history)
	require.NoError(t, err)
	require.Len(t, points, 3)

	require.False(t, points[0].IsReal)
	require.Equal(t, 120.0, points[0].Value)
	require.False(t, points[1].IsReal)
	require.Equal(t, 130.0, points[1].Value)
	require.True(t, points[2].IsReal)
	require.Equal(t, 140.0, points[2].Value)
}

func TestDensify_LeadingGapBackfillsFlat(t *testing.T) {
	history := []domain.RateSnapshot{snap(3, 100)}

	d := NewDensifier(1)
	points, err := d.Densify(day(1), day(3), history)
	require.NoError(t, err)
	require.Len(t, points, 3)

	require.False(t, points[0].IsReal)
	require.Equal(t, 100.0, points[0].Value)
	require.False(t, points[1].IsReal)
	require.Equal(t, 100.0, points[1].Value)
	require.True(t, points[2].IsReal)
}

func TestDensify_ExtrapolationNeverBelowFloor(t *testing.T) {
	// steeply declining series pushes the walk downward; the floor must hold
	history := []domain.RateSnapshot{
		snap(1, 400), snap(2, 320), snap(3, 250), snap(4, 180), snap(5, 100),
	}
	floor := 0.7 * 100.0

	for seed := int64(0); seed < 50; seed++ {
		d := NewDensifier(seed)
		points, err := d.Densify(day(6), day(90), history)
		require.NoError(t, err)
		require.Len(t, points, 85)

		for _, p := range points {
			require.False(t, p.IsReal)
			require.GreaterOrEqual(t, p.Value, floor, "seed %d, date %s", seed, p.Date)
		}
	}
}

func TestDensify_ExtrapolationDeterministicPerSeed(t *testing.T) {
	history := []domain.RateSnapshot{snap(1, 100), snap(2, 102), snap(3, 105)}

	a, err := NewDensifier(7).Densify(day(1), day(20), history)
	require.NoError(t, err)
	b, err := NewDensifier(7).Densify(day(1), day(20), history)
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestDensify_SynthesizedValuesAreWholeUnits(t *testing.T) {
	history := []domain.RateSnapshot{snap(1, 100), snap(2, 110), snap(3, 120)}

	d := NewDensifier(3)
	points, err := d.Densify(day(4), day(30), history)
	require.NoError(t, err)

	for _, p := range points {
		require.False(t, p.IsReal)
		require.Equal(t, p.Value, float64(int64(p.Value)), "date %s", p.Date)
	}
}

func TestDensify_FloorClampStaysWhole(t *testing.T) {
	// 0.7 × 101 = 70.7: a fractional floor must not leak into the series
	history := []domain.RateSnapshot{
		snap(1, 400), snap(2, 300), snap(3, 200), snap(4, 101),
	}
	floor := 0.7 * 101.0

	for seed := int64(0); seed < 20; seed++ {
		points, err := NewDensifier(seed).Densify(day(5), day(60), history)
		require.NoError(t, err)

		for _, p := range points {
			require.GreaterOrEqual(t, p.Value, floor, "seed %d, date %s", seed, p.Date)
			require.Equal(t, p.Value, float64(int64(p.Value)), "seed %d, date %s", seed, p.Date)
		}
	}
}

func TestDensify_ConcurrentCallsShareOneDensifier(t *testing.T) {
	// net/http serves trend requests concurrently against a single densifier
	history := []domain.RateSnapshot{snap(1, 100), snap(2, 102), snap(3, 105)}
	d := NewDensifier(7)

	want, err := d.Densify(day(1), day(60), history)
	require.NoError(t, err)

	const workers = 8
	results := make([][]domain.DensifiedPoint, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = d.Densify(day(1), day(60), history)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, want, results[i])
	}
}

func TestEstimateTrend_ClampedToFivePercentPerDay(t *testing.T) {
	up := []domain.RateSnapshot{snap(1, 100), snap(2, 300)}
	require.Equal(t, maxDailyTrend, estimateTrend(up))

	down := []domain.RateSnapshot{snap(1, 300), snap(2, 100)}
	require.Equal(t, -maxDailyTrend, estimateTrend(down))

	flat := []domain.RateSnapshot{snap(1, 100), snap(11, 101)}
	require.InDelta(t, 0.001, estimateTrend(flat), 1e-9)
}

func TestEstimateTrend_SinglePointIsZero(t *testing.T) {
	require.Equal(t, 0.0, estimateTrend([]domain.RateSnapshot{snap(1, 100)}))
}

func TestEstimateVolatility_FlooredForQuietSeries(t *testing.T) {
	quiet := []domain.RateSnapshot{snap(1, 1000), snap(2, 1000), snap(3, 1000)}
	require.Equal(t, minVolatility, estimateVolatility(quiet))
}

func TestEstimateVolatility_IQRTrimsOutlierSpike(t *testing.T) {
	// nine steady one-percent moves plus one 10x spike
	steady := make([]domain.RateSnapshot, 0, 11)
	value := int64(1000)
	for i := 1; i <= 10; i++ {
		steady = append(steady, snap(i, value))
		value += 10
	}
	withSpike := append(append([]domain.RateSnapshot{}, steady...), snap(11, value*10))

	vol := estimateVolatility(withSpike)
	// the spike return (~9.0) is trimmed, so volatility stays near the floor
	require.Less(t, vol, 0.05)
}
