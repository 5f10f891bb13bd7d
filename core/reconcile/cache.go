package reconcile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"beammp-manager/core/storage"

	"golang.org/x/sync/singleflight"
)

// Index holds the tag sets loaded from every source.
type Index struct {
	// History is the set of tags with a recorded successful operation.
	History map[string]struct{}

	// Archive maps archived tags to their stored object.
	Archive map[string]storage.ArchivedRelease

	// Installed is the installed tag, empty when unknown.
	Installed string

	HistoryAvailable bool
	ArchiveAvailable bool

	// Built is the timestamp when this index was built.
	Built time.Time

	// TTL is the time-to-live for this index.
	TTL time.Duration
}

// IsExpired returns true if the index is older than its TTL.
func (i *Index) IsExpired() bool {
	if i.TTL == 0 {
		return true
	}
	return time.Since(i.Built) > i.TTL
}

type cacheStore struct {
	mu      sync.RWMutex
	indices map[string]*Index
	sf      singleflight.Group
}

var globalCacheStore = &cacheStore{
	indices: make(map[string]*Index),
}

// BuildIndex loads all sources. It does NOT store the result; use
// GetOrBuildIndex for that.
func BuildIndex(ctx context.Context, spec *Spec) (*Index, error) {
	var (
		historyTags []string
		archived    []storage.ArchivedRelease
		historyErr  error
		archiveErr  error
		wg          sync.WaitGroup
	)

	if spec.History != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			historyTags, historyErr = spec.History.Versions(ctx, spec.ServerID)
		}()
	}

	if spec.Archive != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			archived, archiveErr = spec.Archive.List(ctx, spec.ServerID)
		}()
	}

	idx := &Index{
		History:          make(map[string]struct{}),
		Archive:          make(map[string]storage.ArchivedRelease),
		HistoryAvailable: spec.History != nil,
		ArchiveAvailable: spec.Archive != nil,
		TTL:              spec.CacheTTL,
	}
	if spec.Local != nil {
		if v, ok := spec.Local.ReadLocal(); ok {
			idx.Installed = v
		}
	}

	wg.Wait()

	if historyErr != nil {
		return nil, fmt.Errorf("failed to load history tags: %w", historyErr)
	}
	if archiveErr != nil {
		return nil, fmt.Errorf("failed to load archived releases: %w", archiveErr)
	}

	for _, tag := range historyTags {
		idx.History[tag] = struct{}{}
	}
	for _, r := range archived {
		idx.Archive[r.Tag] = r
	}
	idx.Built = time.Now()
	return idx, nil
}

// GetOrBuildIndex returns the cached index for spec, building a new one when
// it is missing or expired. Concurrent builds for the same key are collapsed.
func GetOrBuildIndex(ctx context.Context, spec *Spec) (*Index, error) {
	key := spec.CacheKey()

	globalCacheStore.mu.RLock()
	idx, exists := globalCacheStore.indices[key]
	globalCacheStore.mu.RUnlock()

	if exists && !idx.IsExpired() {
		return idx, nil
	}

	result, err, _ := globalCacheStore.sf.Do(key, func() (interface{}, error) {
		globalCacheStore.mu.RLock()
		idx, exists := globalCacheStore.indices[key]
		globalCacheStore.mu.RUnlock()

		if exists && !idx.IsExpired() {
			return idx, nil
		}

		built, err := BuildIndex(ctx, spec)
		if err != nil {
			return nil, err
		}

		globalCacheStore.mu.Lock()
		globalCacheStore.indices[key] = built
		globalCacheStore.mu.Unlock()

		return built, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Index), nil
}

// InvalidateCache removes the cached index for spec.
func InvalidateCache(spec *Spec) {
	globalCacheStore.mu.Lock()
	delete(globalCacheStore.indices, spec.CacheKey())
	globalCacheStore.mu.Unlock()
}
