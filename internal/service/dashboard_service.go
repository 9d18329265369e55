package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
)

type applicationCounter interface {
	CountByStatus(ctx context.Context, dept models.Department) ([]models.StatusCount, error)
	CountSubmittedSince(ctx context.Context, dept models.Department, since time.Time) (int, error)
}

type complaintCounter interface {
	CountByStatus(ctx context.Context, dept models.Department) ([]models.StatusCount, error)
	CountCreatedSince(ctx context.Context, dept models.Department, since time.Time) (int, error)
}

type paymentSummer interface {
	SumPaymentsSince(ctx context.Context, dept models.Department, since time.Time) (float64, error)
}

type summaryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// DashboardServiceConfig tunes dashboard caching.
type DashboardServiceConfig struct {
	Enabled  bool
	CacheTTL time.Duration
}

// DashboardService builds the per-department admin landing summary,
// serving it from Redis when fresh.
type DashboardService struct {
	applications applicationCounter
	complaints   complaintCounter
	payments     paymentSummer
	cache        summaryCache
	metrics      *MetricsService
	logger       *zap.Logger
	cfg          DashboardServiceConfig
	now          func() time.Time
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(applications applicationCounter, complaints complaintCounter, payments paymentSummer, cache summaryCache, metrics *MetricsService, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &DashboardService{
		applications: applications,
		complaints:   complaints,
		payments:     payments,
		cache:        cache,
		metrics:      metrics,
		logger:       logger,
		cfg:          cfg,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func dashboardCacheKey(dept models.Department) string {
	return fmt.Sprintf("dashboard:%s:summary", dept)
}

// Summary returns the department dashboard, from cache when possible.
func (s *DashboardService) Summary(ctx context.Context, dept models.Department) (*models.DashboardSummary, error) {
	if s.cfg.Enabled && s.cache != nil {
		start := time.Now()
		var cached models.DashboardSummary
		err := s.cache.Get(ctx, dashboardCacheKey(dept), &cached)
		if err == nil {
			s.metrics.RecordCacheOperation(true, time.Since(start))
			return &cached, nil
		}
		s.metrics.RecordCacheOperation(false, time.Since(start))
	}

	summary, err := s.build(ctx, dept)
	if err != nil {
		return nil, err
	}

	if s.cfg.Enabled && s.cache != nil {
		start := time.Now()
		if err := s.cache.Set(ctx, dashboardCacheKey(dept), summary, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("failed to cache dashboard summary", zap.String("department", string(dept)), zap.Error(err))
		}
		s.metrics.ObserveCacheWrite(time.Since(start))
	}
	return summary, nil
}

// Invalidate drops the cached summary for a department after a write.
func (s *DashboardService) Invalidate(ctx context.Context, dept models.Department) {
	if !s.cfg.Enabled || s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, fmt.Sprintf("dashboard:%s:*", dept)); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.String("department", string(dept)), zap.Error(err))
	}
}

func (s *DashboardService) build(ctx context.Context, dept models.Department) (*models.DashboardSummary, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	applications, err := s.applications.CountByStatus(ctx, dept)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count applications")
	}
	complaints, err := s.complaints.CountByStatus(ctx, dept)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count complaints")
	}
	applicationsToday, err := s.applications.CountSubmittedSince(ctx, dept, midnight)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count today's applications")
	}
	complaintsToday, err := s.complaints.CountCreatedSince(ctx, dept, midnight)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count today's complaints")
	}
	paymentsToday, err := s.payments.SumPaymentsSince(ctx, dept, midnight)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sum today's payments")
	}

	return &models.DashboardSummary{
		Department:        dept,
		Applications:      applications,
		Complaints:        complaints,
		ApplicationsToday: applicationsToday,
		ComplaintsToday:   complaintsToday,
		PaymentsToday:     paymentsToday,
		GeneratedAt:       now,
	}, nil
}
