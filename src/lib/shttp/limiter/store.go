package limiter

import (
	"context"
	"sync"
	"time"

	"github.com/stormkit-io/fnmanagement/src/lib/utils"
	"golang.org/x/time/rate"
)

var stores = []*Store{}
var storesMux sync.Mutex

// Visit represents a visitor.
type Visit struct {
	Limiter  *rate.Limiter
	Count    int64
	LastSeen time.Time
}

// Store is an in-memory store for handling rate limits.
type Store struct {
	// Visits maps rate-limiting keys to visits. Stale entries are
	// removed by Cleanup.
	Visits map[string]*Visit

	Limit    int64
	Burst    int
	Duration time.Duration
	Hash     []string

	mtx sync.Mutex
}

// NewStore creates a new store instance. Missing options default to
// 10 events per minute with a burst of 10, keyed by ip and path.
func NewStore(opts *Options) *Store {
	if opts == nil {
		opts = &Options{}
	}

	store := &Store{
		Visits:   make(map[string]*Visit),
		Limit:    opts.Limit,
		Burst:    utils.GetInt(opts.Burst, 10),
		Duration: opts.Duration,
		Hash:     opts.Hash,
	}

	if store.Limit == 0 {
		store.Limit = 10
	}

	if store.Duration == 0 {
		store.Duration = time.Minute
	}

	if len(store.Hash) == 0 {
		store.Hash = []string{"ip", "path"}
	}

	storesMux.Lock()
	stores = append(stores, store)
	storesMux.Unlock()

	return store
}

// Get returns the visit for the given key, creating it when needed, and
// the time at which the visit window resets. The reset time is computed
// under the store lock, callers must not read LastSeen directly.
func (s *Store) Get(key string) (*Visit, time.Time) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	visit, exists := s.Visits[key]

	if !exists {
		eventsPerSecond := float64(s.Limit) / s.Duration.Seconds()

		visit = &Visit{
			Limiter: rate.NewLimiter(rate.Limit(eventsPerSecond), s.Burst),
		}

		s.Visits[key] = visit
	}

	visit.LastSeen = time.Now()
	visit.Count = visit.Count + 1
	return visit, visit.LastSeen.Add(s.Duration)
}

// Prune removes the visits that have not been seen for longer than the store duration.
func (s *Store) Prune() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for key, v := range s.Visits {
		if time.Since(v.LastSeen) > s.Duration {
			delete(s.Visits, key)
		}
	}
}

// Cleanup prunes every store once a minute until the context is canceled.
func Cleanup(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			storesMux.Lock()
			current := append([]*Store{}, stores...)
			storesMux.Unlock()

			for _, s := range current {
				s.Prune()
			}
		}
	}
}
