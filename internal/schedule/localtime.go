package schedule

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LocalTimeResolver maps IANA timezone names to locations. It is an
// interface so tests and embedders can supply their own resolution
// strategy; the engines never call time.LoadLocation directly.
type LocalTimeResolver interface {
	Location(name string) (*time.Location, error)
}

// locationCacheSize bounds the resolver cache. There are ~450 canonical
// IANA zone names; a roster rarely touches more than a handful.
const locationCacheSize = 128

// CachingResolver resolves IANA names via the system tzdata and caches
// loaded locations in an LRU. Safe for concurrent use.
type CachingResolver struct {
	cache *lru.Cache[string, *time.Location]
}

var _ LocalTimeResolver = (*CachingResolver)(nil)

// NewCachingResolver returns a resolver backed by an LRU location cache.
func NewCachingResolver() *CachingResolver {
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, *time.Location](locationCacheSize)
	return &CachingResolver{cache: cache}
}

// Location implements LocalTimeResolver.
func (r *CachingResolver) Location(name string) (*time.Location, error) {
	if loc, ok := r.cache.Get(name); ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	r.cache.Add(name, loc)
	return loc, nil
}
