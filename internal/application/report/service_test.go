package report

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockReportRepository is a mock implementation of report.Repository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SalesSummary(ctx context.Context, period report.Period) (*report.SalesSummary, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.SalesSummary), args.Error(1)
}

func (m *MockReportRepository) GSTSummary(ctx context.Context, period report.Period) (*report.GSTSummary, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.GSTSummary), args.Error(1)
}

func (m *MockReportRepository) TopItems(ctx context.Context, period report.Period, limit int) ([]report.TopItem, error) {
	args := m.Called(ctx, period, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.TopItem), args.Error(1)
}

func (m *MockReportRepository) OutstandingDues(ctx context.Context, limit int) ([]report.OutstandingDue, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.OutstandingDue), args.Error(1)
}

// memoryCache is a map-backed Cache for tests
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	lastTTL time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.lastTTL = ttl
	return nil
}

func testPeriod() report.Period {
	return report.MonthPeriod(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
}

func TestSalesSummary_CachesResult(t *testing.T) {
	repo := new(MockReportRepository)
	cache := newMemoryCache()
	svc := NewService(repo, cache, 2*time.Minute, zap.NewNop())

	period := testPeriod()
	summary := &report.SalesSummary{
		Period:     period,
		SaleCount:  3,
		GrandTotal: decimal.NewFromInt(1500),
	}
	repo.On("SalesSummary", mock.Anything, period).Return(summary, nil).Once()

	first, err := svc.SalesSummary(context.Background(), period)
	require.NoError(t, err)
	assert.Equal(t, int64(3), first.SaleCount)

	// Second call must be served from cache; the repository expectation
	// is Once, so a second hit would fail the mock assertion.
	second, err := svc.SalesSummary(context.Background(), period)
	require.NoError(t, err)
	assert.True(t, second.GrandTotal.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, 2*time.Minute, cache.lastTTL)

	repo.AssertExpectations(t)
}

func TestSalesSummary_NilCacheHitsRepository(t *testing.T) {
	repo := new(MockReportRepository)
	svc := NewService(repo, nil, time.Minute, zap.NewNop())

	period := testPeriod()
	summary := &report.SalesSummary{Period: period, SaleCount: 1}
	repo.On("SalesSummary", mock.Anything, period).Return(summary, nil).Twice()

	for i := 0; i < 2; i++ {
		_, err := svc.SalesSummary(context.Background(), period)
		require.NoError(t, err)
	}

	repo.AssertExpectations(t)
}

func TestTopItems_DefaultLimitAndCacheKey(t *testing.T) {
	repo := new(MockReportRepository)
	cache := newMemoryCache()
	svc := NewService(repo, cache, time.Minute, zap.NewNop())

	period := testPeriod()
	repo.On("TopItems", mock.Anything, period, 10).Return([]report.TopItem{}, nil).Once()
	repo.On("TopItems", mock.Anything, period, 5).Return([]report.TopItem{}, nil).Once()

	_, err := svc.TopItems(context.Background(), period, 0)
	require.NoError(t, err)

	// A different limit is a different cache entry.
	_, err = svc.TopItems(context.Background(), period, 5)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestOutstandingDues_NeverCached(t *testing.T) {
	repo := new(MockReportRepository)
	cache := newMemoryCache()
	svc := NewService(repo, cache, time.Minute, zap.NewNop())

	repo.On("OutstandingDues", mock.Anything, 50).Return([]report.OutstandingDue{}, nil).Twice()

	for i := 0; i < 2; i++ {
		_, err := svc.OutstandingDues(context.Background(), 0)
		require.NoError(t, err)
	}

	assert.Empty(t, cache.entries)
	repo.AssertExpectations(t)
}
