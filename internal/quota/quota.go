package quota

import (
	"errors"
	"sync"
	"time"
)

// Default daily ceilings for the generation client. These bound cost, not
// correctness; the tracker is per process, not per user.
const (
	DefaultMaxRequestsPerDay = 50
	DefaultMaxTokensPerDay   = 20000
)

// ErrLimitExceeded is returned by Reserve when today's ceilings leave no
// room for the request.
var ErrLimitExceeded = errors.New("daily usage limit exceeded")

// Tracker counts requests and tokens spent against the external
// text-generation service within the current calendar day. Counters reset
// on day rollover. All methods are safe for concurrent use.
//
// Callers claim capacity with Reserve before touching the network, then
// settle the claim with Commit (actual cost) or Release (call failed).
// The claim is counted the moment Reserve succeeds, so two concurrent
// callers can never share the last request slot.
type Tracker struct {
	mu sync.Mutex

	maxRequests int
	maxTokens   int

	requestsToday int
	tokensToday   int
	lastReset     time.Time // start of day

	now func() time.Time
}

// NewTracker creates a tracker with the given daily ceilings. Non-positive
// values fall back to the defaults.
func NewTracker(maxRequests, maxTokens int) *Tracker {
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequestsPerDay
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokensPerDay
	}
	t := &Tracker{
		maxRequests: maxRequests,
		maxTokens:   maxTokens,
		now:         time.Now,
	}
	t.lastReset = startOfDay(t.now())
	return t
}

// WithClock overrides the time source. Test hook.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
	t.lastReset = startOfDay(now())
	return t
}

// Reserve claims one request slot and tokensNeeded tokens against today's
// ceilings. Check and count happen under one lock acquisition; on
// ErrLimitExceeded nothing is counted.
func (t *Tracker) Reserve(tokensNeeded int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetIfNewDayLocked()
	if t.requestsToday+1 > t.maxRequests ||
		t.tokensToday+tokensNeeded > t.maxTokens {
		return ErrLimitExceeded
	}
	t.requestsToday++
	t.tokensToday += tokensNeeded
	return nil
}

// Release returns a reservation whose request never completed. The
// counters never go below zero, so a release after a day rollover is a
// no-op.
func (t *Tracker) Release(tokensReserved int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetIfNewDayLocked()
	t.requestsToday--
	if t.requestsToday < 0 {
		t.requestsToday = 0
	}
	t.tokensToday -= tokensReserved
	if t.tokensToday < 0 {
		t.tokensToday = 0
	}
}

// Commit settles a reservation against the token cost the service
// actually reported. The request slot stays claimed.
func (t *Tracker) Commit(tokensReserved, tokensUsed int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetIfNewDayLocked()
	t.tokensToday += tokensUsed - tokensReserved
	if t.tokensToday < 0 {
		t.tokensToday = 0
	}
}

// ResetIfNewDay zeroes the counters when the calendar date has advanced
// past the last reset. Idempotent within the same day.
func (t *Tracker) ResetIfNewDay() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetIfNewDayLocked()
}

// Usage returns today's counters after applying any pending rollover.
func (t *Tracker) Usage() (requests, tokens int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetIfNewDayLocked()
	return t.requestsToday, t.tokensToday
}

func (t *Tracker) resetIfNewDayLocked() {
	today := startOfDay(t.now())
	if today.After(t.lastReset) {
		t.requestsToday = 0
		t.tokensToday = 0
		t.lastReset = today
	}
}

func startOfDay(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}
