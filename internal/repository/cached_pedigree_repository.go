package repository

import (
	"context"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/hironyan25/jra-keiba-analysis/internal/models"
)

// CachedPedigreeRepository wraps a PedigreeRepository with an in-memory cache.
// Pedigree data is static reference data, so entries stay cached for the
// configured TTL and only the ids missing from the cache hit the database.
type CachedPedigreeRepository struct {
	inner PedigreeRepository
	cache *cache.Cache
	ttl   time.Duration
}

// NewCachedPedigreeRepository creates a caching wrapper around inner
func NewCachedPedigreeRepository(inner PedigreeRepository, ttl time.Duration) *CachedPedigreeRepository {
	return &CachedPedigreeRepository{
		inner: inner,
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// GetByHorseIDs returns pedigree records for the given horse ids, serving
// cached records where possible and fetching only the remainder
func (r *CachedPedigreeRepository) GetByHorseIDs(ctx context.Context, horseIDs []string) (map[string]models.PedigreeRecord, error) {
	records := make(map[string]models.PedigreeRecord, len(horseIDs))
	var missing []string

	for _, id := range horseIDs {
		if cached, found := r.cache.Get(id); found {
			if rec, ok := cached.(models.PedigreeRecord); ok {
				records[id] = rec
				continue
			}
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return records, nil
	}

	fetched, err := r.inner.GetByHorseIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, rec := range fetched {
		records[id] = rec
		r.cache.Set(id, rec, r.ttl)
	}

	return records, nil
}

// ItemCount returns the number of cached pedigree records
func (r *CachedPedigreeRepository) ItemCount() int {
	return r.cache.ItemCount()
}

// Clear flushes the pedigree cache
func (r *CachedPedigreeRepository) Clear() {
	r.cache.Flush()
}
