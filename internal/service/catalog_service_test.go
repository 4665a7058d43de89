package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinixspb/vnxChooseApple-bot/pkg/catalog"
)

// nopLogger keeps service tests quiet.
type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeSource struct {
	mu      sync.Mutex
	records map[string][]catalog.Record
	err     error
	calls   int32
}

func (f *fakeSource) Fetch(_ context.Context, source string) ([]catalog.Record, error) {
	atomic.AddInt32(&f.calls, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.records[source], nil
}

func TestCatalogServiceLoadCaches(t *testing.T) {
	src := &fakeSource{records: map[string][]catalog.Record{
		"iPhone": {{"Model": "15 Pro"}},
	}}
	svc := NewCatalogService(src, []string{"iPhone"}, nopLogger{})

	first, err := svc.Load(context.Background(), "iPhone")
	require.NoError(t, err)
	assert.Len(t, first, 1)

	_, err = svc.Load(context.Background(), "iPhone")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls), "second Load must hit the cache")
}

func TestCatalogServiceConcurrentFirstLoad(t *testing.T) {
	src := &fakeSource{records: map[string][]catalog.Record{
		"iPhone": {{"Model": "15 Pro"}},
	}}
	svc := NewCatalogService(src, []string{"iPhone"}, nopLogger{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			records, err := svc.Load(context.Background(), "iPhone")
			assert.NoError(t, err)
			assert.Len(t, records, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls), "concurrent first loads must collapse into one fetch")
}

func TestCatalogServiceFailureNotCached(t *testing.T) {
	src := &fakeSource{err: catalog.ErrSourceUnavailable}
	svc := NewCatalogService(src, []string{"iPhone"}, nopLogger{})

	_, err := svc.Load(context.Background(), "iPhone")
	assert.ErrorIs(t, err, catalog.ErrSourceUnavailable)

	// Next access retries instead of serving the failure.
	src.mu.Lock()
	src.err = nil
	src.records = map[string][]catalog.Record{"iPhone": {{"Model": "15"}}}
	src.mu.Unlock()

	records, err := svc.Load(context.Background(), "iPhone")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCatalogServiceEmptyResultIsCached(t *testing.T) {
	src := &fakeSource{records: map[string][]catalog.Record{}}
	svc := NewCatalogService(src, []string{"iPhone"}, nopLogger{})

	records, err := svc.Load(context.Background(), "iPhone")
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = svc.Load(context.Background(), "iPhone")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls), "a legitimately empty catalog should not trigger retry loops")
}

func TestCatalogServiceGetWithoutLoad(t *testing.T) {
	src := &fakeSource{}
	svc := NewCatalogService(src, []string{"iPhone"}, nopLogger{})

	assert.Empty(t, svc.Get("iPhone"))
	assert.Equal(t, int32(0), atomic.LoadInt32(&src.calls), "Get must never fetch")
}

func TestCatalogServiceRefresh(t *testing.T) {
	src := &fakeSource{records: map[string][]catalog.Record{
		"iPhone": {{"Model": "15 Pro"}},
	}}
	svc := NewCatalogService(src, []string{"iPhone"}, nopLogger{})

	_, err := svc.Load(context.Background(), "iPhone")
	require.NoError(t, err)

	src.mu.Lock()
	src.records["iPhone"] = append(src.records["iPhone"], catalog.Record{"Model": "16"})
	src.mu.Unlock()

	refreshed, err := svc.Refresh(context.Background(), "iPhone")
	require.NoError(t, err)
	assert.Len(t, refreshed, 2)
	assert.Len(t, svc.Get("iPhone"), 2)
}

func TestCatalogServiceUnknownSource(t *testing.T) {
	svc := NewCatalogService(&fakeSource{}, []string{"iPhone"}, nopLogger{})

	_, err := svc.Load(context.Background(), "Fridges")
	assert.Error(t, err)

	_, err = svc.Refresh(context.Background(), "Fridges")
	assert.Error(t, err)
}

func TestCatalogServiceErrorsWrapped(t *testing.T) {
	src := &fakeSource{err: errors.New("dial tcp: timeout")}
	svc := NewCatalogService(src, []string{"iPhone"}, nopLogger{})

	_, err := svc.Load(context.Background(), "iPhone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iPhone")
}
