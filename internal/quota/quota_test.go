package quota

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestReserve_UnderLimits(t *testing.T) {
	tr := NewTracker(50, 20000)
	assert.NoError(t, tr.Reserve(1000))
}

func TestReserve_RequestCeiling(t *testing.T) {
	tr := NewTracker(2, 20000)
	require.NoError(t, tr.Reserve(10))
	require.NoError(t, tr.Reserve(10))

	// Request count is exhausted regardless of token need.
	assert.ErrorIs(t, tr.Reserve(0), ErrLimitExceeded)
	assert.ErrorIs(t, tr.Reserve(1), ErrLimitExceeded)
}

func TestReserve_TokenCeiling(t *testing.T) {
	tr := NewTracker(50, 1000)
	require.NoError(t, tr.Reserve(900))

	assert.NoError(t, tr.Reserve(100))
	assert.ErrorIs(t, tr.Reserve(1), ErrLimitExceeded)
}

func TestReserve_FailureCountsNothing(t *testing.T) {
	tr := NewTracker(50, 1000)
	for i := 0; i < 100; i++ {
		assert.ErrorIs(t, tr.Reserve(2000), ErrLimitExceeded)
	}
	requests, tokens := tr.Usage()
	assert.Equal(t, 0, requests)
	assert.Equal(t, 0, tokens)
}

func TestReserve_CountsImmediately(t *testing.T) {
	tr := NewTracker(50, 20000)
	require.NoError(t, tr.Reserve(1200))
	require.NoError(t, tr.Reserve(800))

	requests, tokens := tr.Usage()
	assert.Equal(t, 2, requests)
	assert.Equal(t, 2000, tokens)
}

func TestRelease_ReturnsReservation(t *testing.T) {
	tr := NewTracker(2, 1000)
	require.NoError(t, tr.Reserve(600))
	tr.Release(600)

	requests, tokens := tr.Usage()
	assert.Equal(t, 0, requests)
	assert.Equal(t, 0, tokens)

	// A released slot is claimable again.
	assert.NoError(t, tr.Reserve(1000))
}

func TestCommit_SettlesToActualCost(t *testing.T) {
	tr := NewTracker(50, 20000)
	require.NoError(t, tr.Reserve(1100))
	tr.Commit(1100, 250)

	requests, tokens := tr.Usage()
	assert.Equal(t, 1, requests)
	assert.Equal(t, 250, tokens)
}

func TestCommit_ActualAboveEstimate(t *testing.T) {
	tr := NewTracker(50, 20000)
	require.NoError(t, tr.Reserve(100))
	tr.Commit(100, 400)

	_, tokens := tr.Usage()
	assert.Equal(t, 400, tokens)
}

func TestDayRollover_ResetsCounters(t *testing.T) {
	day1 := time.Date(2025, 6, 1, 23, 50, 0, 0, time.UTC)
	now := day1
	tr := NewTracker(5, 1000).WithClock(func() time.Time { return now })

	for i := 0; i < 5; i++ {
		require.NoError(t, tr.Reserve(200))
	}
	assert.ErrorIs(t, tr.Reserve(0), ErrLimitExceeded)

	// Cross midnight: the next reservation observes zeroed counters.
	now = day1.Add(20 * time.Minute)
	assert.NoError(t, tr.Reserve(1000))

	requests, tokens := tr.Usage()
	assert.Equal(t, 1, requests)
	assert.Equal(t, 1000, tokens)
}

func TestResetIfNewDay_IdempotentSameDay(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(50, 20000).WithClock(fixedClock(now))

	require.NoError(t, tr.Reserve(500))
	tr.ResetIfNewDay()
	tr.ResetIfNewDay()

	requests, tokens := tr.Usage()
	assert.Equal(t, 1, requests)
	assert.Equal(t, 500, tokens)
}

func TestRelease_AfterRolloverStaysAtZero(t *testing.T) {
	day1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := day1
	tr := NewTracker(50, 20000).WithClock(func() time.Time { return now })

	require.NoError(t, tr.Reserve(500))
	now = day1.Add(24 * time.Hour)
	tr.Release(500)

	requests, tokens := tr.Usage()
	assert.Equal(t, 0, requests)
	assert.Equal(t, 0, tokens)
}

func TestReserve_ConcurrentNeverExceedsCeiling(t *testing.T) {
	tr := NewTracker(100, 1_000_000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if tr.Reserve(10) == nil {
					tr.Commit(10, 10)
				}
			}
		}()
	}
	wg.Wait()

	requests, tokens := tr.Usage()
	assert.Equal(t, 100, requests)
	assert.Equal(t, 1000, tokens)
}

func TestReserve_ConcurrentLastSlot(t *testing.T) {
	tr := NewTracker(1, 20000)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = tr.Reserve(100)
		}(i)
	}
	wg.Wait()

	granted := 0
	for _, err := range errs {
		if err == nil {
			granted++
		}
	}
	assert.Equal(t, 1, granted)

	requests, _ := tr.Usage()
	assert.Equal(t, 1, requests)
}

func TestNewTracker_Defaults(t *testing.T) {
	tr := NewTracker(0, -1)
	assert.Equal(t, DefaultMaxRequestsPerDay, tr.maxRequests)
	assert.Equal(t, DefaultMaxTokensPerDay, tr.maxTokens)
}
