package service

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/vinixspb/vnxChooseApple-bot/internal/pkg/logger"
	"github.com/vinixspb/vnxChooseApple-bot/pkg/catalog"
)

// CatalogSource is the remote collaborator that yields raw records for a
// logical source (a worksheet name). Implemented by pkg/sheets.
type CatalogSource interface {
	Fetch(ctx context.Context, source string) ([]catalog.Record, error)
}

type ICatalogService interface {
	// Load returns the cached catalog for source, fetching it on first
	// access. Concurrent first loads collapse into a single fetch.
	Load(ctx context.Context, source string) ([]catalog.Record, error)

	// Get returns the cached catalog or an empty slice when the source
	// was never loaded. It never triggers a fetch.
	Get(source string) []catalog.Record

	// Refresh forces a re-fetch, replacing the cache on success only.
	Refresh(ctx context.Context, source string) ([]catalog.Record, error)

	Sources() []string
}

type catalogService struct {
	source  CatalogSource
	sources []string
	cache   *cache.Cache
	flight  singleflight.Group
	logger  logger.ILogger
}

func NewCatalogService(source CatalogSource, sources []string, log logger.ILogger) ICatalogService {
	// Loaded catalogs never expire on their own; Refresh is the only way
	// to replace one.
	c := cache.New(cache.NoExpiration, 0)
	return &catalogService{
		source:  source,
		sources: sources,
		cache:   c,
		logger:  log,
	}
}

func (s *catalogService) Load(ctx context.Context, source string) ([]catalog.Record, error) {
	if !s.knownSource(source) {
		return nil, fmt.Errorf("unknown catalog source %q", source)
	}

	if x, found := s.cache.Get(source); found {
		return x.([]catalog.Record), nil
	}

	// singleflight guarantees at-most-one in-flight fetch per source;
	// every concurrent caller gets the same result or the same error.
	v, err, _ := s.flight.Do(source, func() (interface{}, error) {
		return s.fetchAndCache(ctx, source)
	})
	if err != nil {
		return nil, err
	}
	return v.([]catalog.Record), nil
}

func (s *catalogService) Get(source string) []catalog.Record {
	if x, found := s.cache.Get(source); found {
		return x.([]catalog.Record)
	}
	return []catalog.Record{}
}

func (s *catalogService) Refresh(ctx context.Context, source string) ([]catalog.Record, error) {
	if !s.knownSource(source) {
		return nil, fmt.Errorf("unknown catalog source %q", source)
	}

	v, err, _ := s.flight.Do("refresh:"+source, func() (interface{}, error) {
		return s.fetchAndCache(ctx, source)
	})
	if err != nil {
		return nil, err
	}
	return v.([]catalog.Record), nil
}

func (s *catalogService) Sources() []string {
	return s.sources
}

func (s *catalogService) fetchAndCache(ctx context.Context, source string) ([]catalog.Record, error) {
	records, err := s.source.Fetch(ctx, source)
	if err != nil {
		// Failed fetches are not cached so the next access retries.
		s.logger.Error("CatalogService", "Catalog fetch failed", map[string]interface{}{
			"source": source,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("loading catalog %q: %w", source, err)
	}

	// An empty worksheet is a legitimate (cacheable) state, distinct from
	// a fetch failure.
	if len(records) == 0 {
		s.logger.Warn("CatalogService", "Catalog source returned zero records", map[string]interface{}{
			"source": source,
		})
	} else {
		s.logger.Info("CatalogService", "Catalog loaded", map[string]interface{}{
			"source": source,
			"count":  len(records),
		})
	}

	s.cache.Set(source, records, cache.NoExpiration)
	return records, nil
}

func (s *catalogService) knownSource(source string) bool {
	for _, known := range s.sources {
		if known == source {
			return true
		}
	}
	return false
}
