package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
)

type mockNotificationRepo struct {
	mu      sync.Mutex
	created []models.Notification
	sent    []string
	failed  []string
}

func (m *mockNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, *n)
	return nil
}

func (m *mockNotificationRepo) MarkSent(_ context.Context, id string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, id)
	return nil
}

func (m *mockNotificationRepo) MarkFailed(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = append(m.failed, id)
	return nil
}

func (m *mockNotificationRepo) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *mockNotificationRepo) failedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.failed)
}

type failingSender struct {
	mu       sync.Mutex
	attempts int
}

func (s *failingSender) Send(_ context.Context, _ models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	return errors.New("gateway unreachable")
}

func smsNotification(recipient string) models.Notification {
	return models.Notification{
		Department: models.DepartmentWater,
		Channel:    models.ChannelSMS,
		Recipient:  recipient,
		Subject:    "Application received",
		Body:       "Your application WA-2026-00001 has been received.",
		Resource:   "application",
		ResourceID: "app-1",
	}
}

func TestNotificationServiceQueueRecordsWhenDisabled(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, NewLogSender(nil), nil, NotificationServiceConfig{Enabled: false})

	svc.Queue(context.Background(), smsNotification("9822001122"))

	require.Len(t, repo.created, 1)
	assert.Equal(t, models.NotificationStatusQueued, repo.created[0].Status)
	assert.NotEmpty(t, repo.created[0].ID)
	assert.Zero(t, repo.sentCount())
}

func TestNotificationServiceQueueSkipsEmptyRecipient(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, NewLogSender(nil), nil, NotificationServiceConfig{Enabled: true})
	svc.Start(context.Background())
	defer svc.Stop()

	svc.Queue(context.Background(), smsNotification(""))

	assert.Empty(t, repo.created)
}

func TestNotificationServiceDispatchMarksSent(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo, NewLogSender(nil), nil, NotificationServiceConfig{
		Enabled: true,
		Workers: 1,
	})
	svc.Start(context.Background())
	defer svc.Stop()

	svc.Queue(context.Background(), smsNotification("9822001122"))

	require.Eventually(t, func() bool { return repo.sentCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Zero(t, repo.failedCount())
}

func TestNotificationServiceDispatchMarksFailedAfterRetries(t *testing.T) {
	repo := &mockNotificationRepo{}
	sender := &failingSender{}
	svc := NewNotificationService(repo, sender, nil, NotificationServiceConfig{
		Enabled:    true,
		Workers:    1,
		MaxRetries: 2,
		RetryDelay: 5 * time.Millisecond,
	})
	svc.Start(context.Background())
	defer svc.Stop()

	svc.Queue(context.Background(), smsNotification("9822001122"))

	require.Eventually(t, func() bool { return repo.failedCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Zero(t, repo.sentCount())
}
