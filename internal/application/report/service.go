package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/report"
	"go.uber.org/zap"
)

// Cache is the key-value cache behind report results. Implementations
// must treat a missing key as (nil, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Service computes reports, caching results for a short window. Reports
// are read models over committed sales; a few minutes of staleness is
// acceptable.
type Service struct {
	reportRepo report.Repository
	cache      Cache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewService creates a new report Service. Cache may be nil, in which
// case every call hits the database.
func NewService(reportRepo report.Repository, cache Cache, cacheTTL time.Duration, logger *zap.Logger) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Service{
		reportRepo: reportRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// SalesSummary returns the sales summary for a period
func (s *Service) SalesSummary(ctx context.Context, period report.Period) (*report.SalesSummary, error) {
	key := cacheKey("sales_summary", period)

	var cached report.SalesSummary
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	summary, err := s.reportRepo.SalesSummary(ctx, period)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, summary)
	return summary, nil
}

// GSTSummary returns the rate-wise GST collection report for a period
func (s *Service) GSTSummary(ctx context.Context, period report.Period) (*report.GSTSummary, error) {
	key := cacheKey("gst_summary", period)

	var cached report.GSTSummary
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	summary, err := s.reportRepo.GSTSummary(ctx, period)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, summary)
	return summary, nil
}

// TopItems returns the best selling items for a period
func (s *Service) TopItems(ctx context.Context, period report.Period, limit int) ([]report.TopItem, error) {
	if limit <= 0 {
		limit = 10
	}
	key := fmt.Sprintf("%s:limit=%d", cacheKey("top_items", period), limit)

	var cached []report.TopItem
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	items, err := s.reportRepo.TopItems(ctx, period, limit)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, items)
	return items, nil
}

// OutstandingDues returns sales with unpaid balances. Dues change with
// every payment, so they are never cached.
func (s *Service) OutstandingDues(ctx context.Context, limit int) ([]report.OutstandingDue, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.reportRepo.OutstandingDues(ctx, limit)
}

func cacheKey(name string, period report.Period) string {
	return fmt.Sprintf("report:%s:%s:%s", name,
		period.From.Format("20060102"), period.To.Format("20060102"))
}

func (s *Service) fromCache(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn("report cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
