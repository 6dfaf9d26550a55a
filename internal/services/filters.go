package services

import (
	"context"
	"sort"

	"github.com/yungbote/image-qc-backend/internal/clients/redis"
	"github.com/yungbote/image-qc-backend/internal/logger"
	"github.com/yungbote/image-qc-backend/internal/repos"
	"github.com/yungbote/image-qc-backend/internal/types"
)

const filterCacheKey = "qc:filter_options"

// FilterService lists the distinct values offered by the filter UI. It never
// errors: on any failure it falls back to the "All"-only option set.
type FilterService interface {
	ListOptions(ctx context.Context) types.FilterOptions
}

type filterService struct {
	catalog repos.CatalogRepo
	cache   redis.FilterCache
	log     *logger.Logger
}

// NewFilterService accepts a nil cache; every lookup then goes straight to
// the catalog.
func NewFilterService(catalog repos.CatalogRepo, cache redis.FilterCache, baseLog *logger.Logger) FilterService {
	return &filterService{
		catalog: catalog,
		cache:   cache,
		log:     baseLog.With("service", "FilterService"),
	}
}

func (fs *filterService) ListOptions(ctx context.Context) types.FilterOptions {
	if fs.cache != nil {
		var cached types.FilterOptions
		hit, err := fs.cache.Get(ctx, filterCacheKey, &cached)
		if err != nil {
			fs.log.Warn("Filter cache read failed", "error", err)
		} else if hit {
			return cached
		}
	}

	categories, brands, buckets, err := fs.catalog.DistinctFilterValues(ctx)
	if err != nil {
		fs.log.Error("Error fetching filters", "error", err)
		return types.FilterOptions{
			Categories:         []string{"All"},
			Brands:             []string{"All"},
			CreatedDateBuckets: []string{"All"},
		}
	}

	sort.Strings(categories)
	sort.Strings(brands)

	opts := types.FilterOptions{
		Categories:         append([]string{"All"}, categories...),
		Brands:             append([]string{"All"}, brands...),
		CreatedDateBuckets: canonicalBuckets(buckets),
	}

	if fs.cache != nil {
		if err := fs.cache.Set(ctx, filterCacheKey, opts); err != nil {
			fs.log.Warn("Filter cache write failed", "error", err)
		}
	}
	return opts
}

// canonicalBuckets keeps only buckets present in the catalog, in the fixed
// canonical order, with "All" prepended.
func canonicalBuckets(present []string) []string {
	seen := make(map[string]bool, len(present))
	for _, b := range present {
		seen[b] = true
	}
	out := []string{"All"}
	for _, b := range types.BucketOrder {
		if seen[b] {
			out = append(out, b)
		}
	}
	return out
}
