package stats

import (
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"carelog/internal/cache"
	"carelog/internal/core"
	"carelog/internal/journal"
)

// Service computes summaries over the journal and caches them per store
// revision. The reductions themselves are in core; results here are identical
// to calling those directly, just deduplicated and cached.
type Service struct {
	store    *journal.Store
	cache    cache.Cache[core.Summary]
	inFlight singleflight.Group
}

func New(store *journal.Store) *Service {
	s := &Service{
		store: store,
		cache: cache.NewLRUCache[core.Summary](8, 5*time.Minute),
	}
	return s
}

// Summary returns the aggregate view of the current collection. Concurrent
// callers landing on the same revision share one computation.
func (s *Service) Summary() core.Summary {
	key := strconv.FormatUint(s.store.Revision(), 10)

	if cached, ok := s.cache.Get(key); ok {
		return cached
	}

	result, _, _ := s.inFlight.Do(key, func() (any, error) {
		summary := core.Summarize(s.store.All())
		s.cache.Set(key, summary)
		return summary, nil
	})
	return result.(core.Summary)
}

// TotalHours is a convenience passthrough to the cached summary.
func (s *Service) TotalHours() float64 {
	return s.Summary().TotalHours
}

// InvisibleHours is a convenience passthrough to the cached summary.
func (s *Service) InvisibleHours() float64 {
	return s.Summary().InvisibleHours
}

// TotalEmotionalWeight is a convenience passthrough to the cached summary.
func (s *Service) TotalEmotionalWeight() int {
	return s.Summary().TotalWeight
}

// CountByTaskType is a convenience passthrough to the cached summary.
func (s *Service) CountByTaskType() map[core.TaskType]int {
	return s.Summary().ByTaskType
}
