package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
)

type mockCounters struct {
	appCounts       []models.StatusCount
	complaintCounts []models.StatusCount
	appsToday       int
	complaintsToday int
	paymentsToday   float64
	buildCalls      int
}

func (m *mockCounters) CountByStatus(_ context.Context, _ models.Department) ([]models.StatusCount, error) {
	m.buildCalls++
	return m.appCounts, nil
}

func (m *mockCounters) CountSubmittedSince(_ context.Context, _ models.Department, _ time.Time) (int, error) {
	return m.appsToday, nil
}

type mockComplaintCounters struct{ inner *mockCounters }

func (m mockComplaintCounters) CountByStatus(_ context.Context, _ models.Department) ([]models.StatusCount, error) {
	return m.inner.complaintCounts, nil
}

func (m mockComplaintCounters) CountCreatedSince(_ context.Context, _ models.Department, _ time.Time) (int, error) {
	return m.inner.complaintsToday, nil
}

type mockPayments struct{ total float64 }

func (m mockPayments) SumPaymentsSince(_ context.Context, _ models.Department, _ time.Time) (float64, error) {
	return m.total, nil
}

type mockCache struct {
	values   map[string][]byte
	deleted  []string
	setCalls int
}

func newMockCache() *mockCache {
	return &mockCache{values: make(map[string][]byte)}
}

func (m *mockCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := m.values[key]
	if !ok {
		return appErrors.Clone(appErrors.ErrCacheMiss, "")
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.setCalls++
	m.values[key] = raw
	return nil
}

func (m *mockCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.deleted = append(m.deleted, pattern)
	m.values = make(map[string][]byte)
	return nil
}

func newDashboardService(counters *mockCounters, cache *mockCache) *DashboardService {
	return NewDashboardService(counters, mockComplaintCounters{inner: counters}, mockPayments{total: counters.paymentsToday}, cache, NewMetricsService(), nil, DashboardServiceConfig{
		Enabled:  true,
		CacheTTL: time.Minute,
	})
}

func TestDashboardServiceSummaryBuildsAndCaches(t *testing.T) {
	counters := &mockCounters{
		appCounts:       []models.StatusCount{{Status: "submitted", Count: 4}},
		complaintCounts: []models.StatusCount{{Status: "open", Count: 2}},
		appsToday:       3,
		complaintsToday: 1,
		paymentsToday:   1500.50,
	}
	cache := newMockCache()
	svc := newDashboardService(counters, cache)

	summary, err := svc.Summary(context.Background(), models.DepartmentElectricity)

	require.NoError(t, err)
	assert.Equal(t, 3, summary.ApplicationsToday)
	assert.Equal(t, 1500.50, summary.PaymentsToday)
	assert.Equal(t, 1, cache.setCalls)
	assert.Contains(t, cache.values, "dashboard:electricity:summary")
}

func TestDashboardServiceSummaryServedFromCache(t *testing.T) {
	counters := &mockCounters{appsToday: 3}
	cache := newMockCache()
	svc := newDashboardService(counters, cache)

	_, err := svc.Summary(context.Background(), models.DepartmentElectricity)
	require.NoError(t, err)
	firstBuild := counters.buildCalls

	summary, err := svc.Summary(context.Background(), models.DepartmentElectricity)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.ApplicationsToday)
	assert.Equal(t, firstBuild, counters.buildCalls, "second call should not rebuild")
}

func TestDashboardServiceInvalidateDropsCache(t *testing.T) {
	counters := &mockCounters{appsToday: 3}
	cache := newMockCache()
	svc := newDashboardService(counters, cache)

	_, err := svc.Summary(context.Background(), models.DepartmentGas)
	require.NoError(t, err)

	svc.Invalidate(context.Background(), models.DepartmentGas)

	assert.Equal(t, []string{"dashboard:gas:*"}, cache.deleted)

	counters.appsToday = 9
	summary, err := svc.Summary(context.Background(), models.DepartmentGas)
	require.NoError(t, err)
	assert.Equal(t, 9, summary.ApplicationsToday)
}

func TestDashboardServiceDisabledSkipsCache(t *testing.T) {
	counters := &mockCounters{appsToday: 2}
	cache := newMockCache()
	svc := NewDashboardService(counters, mockComplaintCounters{inner: counters}, mockPayments{}, cache, NewMetricsService(), nil, DashboardServiceConfig{Enabled: false})

	_, err := svc.Summary(context.Background(), models.DepartmentWater)
	require.NoError(t, err)
	assert.Zero(t, cache.setCalls)
}
