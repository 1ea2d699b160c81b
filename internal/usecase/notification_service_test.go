package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/teamtrack/internal/domain/notification"
	"github.com/riskibarqy/teamtrack/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/teamtrack/internal/platform/id"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
)

func newNotificationFixture(t *testing.T) (*NotificationService, *memory.NotificationRepository) {
	t.Helper()

	repo := memory.NewNotificationRepository()
	profiles := seededProfiles(managerProfile("coach"), playerProfile("kid"), parentProfile("mum", "kid"))
	service, err := NewNotificationService(repo, profiles, idgen.NewSequence("note"), logging.NewNop(), newTestClock(), 2)
	if err != nil {
		t.Fatalf("new notification service: %v", err)
	}
	t.Cleanup(service.Close)
	return service, repo
}

func TestNotificationService_NotifyAllExceptSkipsActor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newNotificationFixture(t)

	if err := service.NotifyAllExcept(ctx, "coach", notification.TypeEvent, "New event", " Training on Friday "); err != nil {
		t.Fatalf("notify: %v", err)
	}

	for _, userID := range []string{"kid", "mum"} {
		items, err := service.List(ctx, userID, false)
		if err != nil {
			t.Fatalf("list %s: %v", userID, err)
		}
		if len(items) != 1 || items[0].Type != notification.TypeEvent || items[0].Message != "Training on Friday" {
			t.Fatalf("unexpected notifications for %s: %+v", userID, items)
		}
		if items[0].IsRead || !items[0].CreatedAt.Equal(testNow) {
			t.Fatalf("expected unread notification stamped by clock, got %+v", items[0])
		}
	}

	own, err := service.List(ctx, "coach", false)
	if err != nil {
		t.Fatalf("list coach: %v", err)
	}
	if len(own) != 0 {
		t.Fatalf("actor must not be notified, got %+v", own)
	}
}

func TestNotificationService_NotifyRequiresTitle(t *testing.T) {
	t.Parallel()

	service, _ := newNotificationFixture(t)
	err := service.Notify(context.Background(), NotifyInput{Recipients: []string{"kid"}, Type: notification.TypeOther, Title: "  "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNotificationService_MarkRead(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newNotificationFixture(t)

	if err := service.Notify(ctx, NotifyInput{Recipients: []string{"kid"}, Type: notification.TypeEvent, Title: "Event"}); err != nil {
		t.Fatalf("notify event: %v", err)
	}
	if err := service.Notify(ctx, NotifyInput{Recipients: []string{"kid"}, Type: notification.TypeMessage, Title: "Message"}); err != nil {
		t.Fatalf("notify message: %v", err)
	}
	if err := service.Notify(ctx, NotifyInput{Recipients: []string{"kid"}, Type: notification.TypeLineup, Title: "Lineup"}); err != nil {
		t.Fatalf("notify lineup: %v", err)
	}

	count, err := service.UnreadCount(ctx, "kid")
	if err != nil || count != 3 {
		t.Fatalf("expected 3 unread, got %d err=%v", count, err)
	}

	updated, err := service.MarkReadByTypes(ctx, "kid", []notification.Type{notification.TypeEvent})
	if err != nil || updated != 1 {
		t.Fatalf("expected 1 event marked read, got %d err=%v", updated, err)
	}

	unread, err := service.List(ctx, "kid", true)
	if err != nil {
		t.Fatalf("list unread: %v", err)
	}
	if len(unread) != 2 {
		t.Fatalf("expected 2 unread, got %d", len(unread))
	}

	updated, err = service.MarkRead(ctx, "kid", []string{" " + unread[0].ID + " ", ""})
	if err != nil || updated != 1 {
		t.Fatalf("expected 1 marked read by id, got %d err=%v", updated, err)
	}
	if _, err := service.MarkRead(ctx, "kid", []string{" "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty ids, got %v", err)
	}

	updated, err = service.MarkAllRead(ctx, "kid")
	if err != nil || updated != 1 {
		t.Fatalf("expected last one marked read, got %d err=%v", updated, err)
	}
	count, err = service.UnreadCount(ctx, "kid")
	if err != nil || count != 0 {
		t.Fatalf("expected 0 unread, got %d err=%v", count, err)
	}
}

func TestNotificationService_MarkReadIgnoresOtherUsers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newNotificationFixture(t)

	if err := service.Notify(ctx, NotifyInput{Recipients: []string{"kid"}, Type: notification.TypeEvent, Title: "Event"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	items, err := service.List(ctx, "kid", false)
	if err != nil || len(items) != 1 {
		t.Fatalf("list: %d err=%v", len(items), err)
	}

	updated, err := service.MarkRead(ctx, "mum", []string{items[0].ID})
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if updated != 0 {
		t.Fatalf("expected other user's mark to touch nothing, got %d", updated)
	}
}

func TestNotificationService_EmptyExceptReachesEveryProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newNotificationFixture(t)

	if err := service.NotifyAllExcept(ctx, "", notification.TypeEvent, "New event scheduled", "Cup match"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	for _, userID := range []string{"coach", "kid", "mum"} {
		count, err := service.UnreadCount(ctx, userID)
		if err != nil {
			t.Fatalf("unread %s: %v", userID, err)
		}
		if count != 1 {
			t.Fatalf("expected one notification for %s, got %d", userID, count)
		}
	}
}
