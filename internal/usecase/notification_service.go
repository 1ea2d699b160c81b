package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/teamtrack/internal/domain/notification"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
	idgen "github.com/riskibarqy/teamtrack/internal/platform/id"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
)

const defaultNotificationWorkers = 8

type NotifyInput struct {
	Recipients []string
	Type       notification.Type
	Title      string
	Message    string
}

type NotificationService struct {
	repo     notification.Repository
	profiles profile.Repository
	idGen    idgen.Generator
	logger   *logging.Logger
	clock    clockwork.Clock
	pool     *ants.Pool
}

func NewNotificationService(
	repo notification.Repository,
	profiles profile.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
	clock clockwork.Clock,
	workers int,
) (*NotificationService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if workers <= 0 {
		workers = defaultNotificationWorkers
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create notification worker pool: %w", err)
	}

	return &NotificationService{
		repo:     repo,
		profiles: profiles,
		idGen:    idGen,
		logger:   logger,
		clock:    clock,
		pool:     pool,
	}, nil
}

// Close releases the worker pool.
func (s *NotificationService) Close() {
	s.pool.Release()
}

func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.repo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	count, err := s.repo.CountUnread(ctx, strings.TrimSpace(userID))
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID string, ids []string) (int, error) {
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}
	if len(cleaned) == 0 {
		return 0, fmt.Errorf("%w: notification ids are required", ErrInvalidInput)
	}

	updated, err := s.repo.MarkRead(ctx, userID, cleaned)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return updated, nil
}

// MarkReadByTypes marks every unread notification of the given kinds; no kinds means all.
func (s *NotificationService) MarkReadByTypes(ctx context.Context, userID string, kinds []notification.Type) (int, error) {
	updated, err := s.repo.MarkReadByTypes(ctx, userID, kinds)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read by type: %w", err)
	}
	return updated, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return s.MarkReadByTypes(ctx, userID, nil)
}

func (s *NotificationService) NotifyAllExcept(ctx context.Context, exceptUserID string, kind notification.Type, title, message string) error {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return fmt.Errorf("list notification recipients: %w", err)
	}

	recipients := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if p.ID == exceptUserID {
			continue
		}
		recipients = append(recipients, p.ID)
	}

	return s.Notify(ctx, NotifyInput{Recipients: recipients, Type: kind, Title: title, Message: message})
}

// Notify stores one notification per recipient using the worker pool.
func (s *NotificationService) Notify(ctx context.Context, input NotifyInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotificationService.Notify")
	defer span.End()

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return fmt.Errorf("%w: notification title is required", ErrInvalidInput)
	}
	if len(input.Recipients) == 0 {
		return nil
	}

	now := s.clock.Now().UTC()
	var (
		workers sync.WaitGroup
		mu      sync.Mutex
		errs    []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	for _, recipient := range input.Recipients {
		recipient := recipient
		workers.Add(1)
		submitErr := s.pool.Submit(func() {
			defer workers.Done()

			id, err := s.idGen.NewID()
			if err != nil {
				record(fmt.Errorf("generate notification id: %w", err))
				return
			}
			if err := s.repo.Create(ctx, notification.Notification{
				ID:        id,
				UserID:    recipient,
				Type:      input.Type,
				Title:     title,
				Message:   strings.TrimSpace(input.Message),
				CreatedAt: now,
			}); err != nil {
				record(fmt.Errorf("create notification for user=%s: %w", recipient, err))
			}
		})
		if submitErr != nil {
			workers.Done()
			record(fmt.Errorf("submit notification job: %w", submitErr))
		}
	}
	workers.Wait()

	if err := errors.Join(errs...); err != nil {
		s.logger.WarnContext(ctx, "notification fan-out incomplete", "type", input.Type, "failed", len(errs), "error", err)
		return err
	}
	return nil
}
