package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/jobs"
)

type notificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	MarkSent(ctx context.Context, id string, sentAt time.Time) error
	MarkFailed(ctx context.Context, id string) error
}

// Sender delivers a notification over its channel. The gateway integration
// lives behind this seam; the default implementation only logs.
type Sender interface {
	Send(ctx context.Context, n models.Notification) error
}

// LogSender is the development Sender. It pretends every dispatch succeeds.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender constructs a LogSender.
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send logs the outbound message instead of delivering it.
func (s *LogSender) Send(_ context.Context, n models.Notification) error {
	s.logger.Info("notification dispatched",
		zap.String("channel", string(n.Channel)),
		zap.String("recipient", n.Recipient),
		zap.String("subject", n.Subject),
		zap.String("resource", n.Resource),
		zap.String("resource_id", n.ResourceID))
	return nil
}

// NotificationServiceConfig tunes the dispatcher worker pool.
type NotificationServiceConfig struct {
	Enabled    bool
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
}

// NotificationService records outbound citizen messages and dispatches them
// asynchronously through the background queue.
type NotificationService struct {
	repo    notificationRepository
	sender  Sender
	logger  *zap.Logger
	queue   *jobs.Queue
	enabled bool
	retries int
}

// NewNotificationService constructs the notification dispatcher.
func NewNotificationService(repo notificationRepository, sender Sender, logger *zap.Logger, cfg NotificationServiceConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sender == nil {
		sender = NewLogSender(logger)
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	s := &NotificationService{
		repo:    repo,
		sender:  sender,
		logger:  logger,
		enabled: cfg.Enabled,
		retries: maxRetries,
	}
	s.queue = jobs.NewQueue("notifications", s.dispatch, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: maxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return s
}

// Start launches the dispatch workers.
func (s *NotificationService) Start(ctx context.Context) {
	if !s.enabled {
		s.logger.Info("notification dispatch disabled")
		return
	}
	s.queue.Start(ctx)
}

// Stop drains the dispatch workers.
func (s *NotificationService) Stop() {
	if !s.enabled {
		return
	}
	s.queue.Stop()
}

// Queue records the notification and schedules it for dispatch. Failures
// here are logged and swallowed; a lost acknowledgement must never fail
// the citizen-facing operation that triggered it.
func (s *NotificationService) Queue(ctx context.Context, n models.Notification) {
	if n.Recipient == "" {
		return
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.Status = models.NotificationStatusQueued

	if err := s.repo.Create(ctx, &n); err != nil {
		s.logger.Warn("failed to record notification", zap.Error(err))
		return
	}
	if !s.enabled {
		return
	}
	if err := s.queue.Enqueue(jobs.Job{ID: n.ID, Type: string(n.Channel), Payload: n}); err != nil {
		s.logger.Warn("failed to enqueue notification", zap.String("notification_id", n.ID), zap.Error(err))
	}
}

func (s *NotificationService) dispatch(ctx context.Context, job jobs.Job) error {
	n, ok := job.Payload.(models.Notification)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}

	if err := s.sender.Send(ctx, n); err != nil {
		if job.Attempt >= s.retries {
			if markErr := s.repo.MarkFailed(ctx, n.ID); markErr != nil {
				s.logger.Warn("failed to mark notification failed", zap.String("notification_id", n.ID), zap.Error(markErr))
			}
		}
		return err
	}

	if err := s.repo.MarkSent(ctx, n.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to mark notification sent", zap.String("notification_id", n.ID), zap.Error(err))
	}
	return nil
}
