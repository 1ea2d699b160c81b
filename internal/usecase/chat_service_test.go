package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamtrack/internal/domain/chat"
	"github.com/riskibarqy/teamtrack/internal/domain/notification"
	"github.com/riskibarqy/teamtrack/internal/domain/realtime"
	"github.com/riskibarqy/teamtrack/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/teamtrack/internal/platform/id"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
)

type chatFixture struct {
	service   *ChatService
	publisher *recordingPublisher
	notifier  *recordingNotifier
	clock     *clockwork.FakeClock
}

func newChatFixture() chatFixture {
	fx := chatFixture{
		publisher: &recordingPublisher{},
		notifier:  &recordingNotifier{},
		clock:     newTestClock(),
	}
	fx.service = NewChatService(
		memory.NewMessageRepository(),
		memory.NewAnnouncementRepository(),
		seededProfiles(managerProfile("coach"), playerProfile("kid")),
		fx.publisher,
		fx.notifier,
		idgen.NewSequence("msg"),
		logging.NewNop(),
		fx.clock,
	)
	return fx
}

func TestChatService_SendMessagePublishesAndNotifies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newChatFixture()

	sent, err := fx.service.SendMessage(ctx, "kid", "  See you at practice!  ")
	if err != nil {
		t.Fatalf("send message: %v", err)
	}
	if sent.Message.Content != "See you at practice!" || sent.Author.ID != "kid" {
		t.Fatalf("unexpected message view %+v", sent)
	}

	changes := fx.publisher.Changes()
	if len(changes) != 1 {
		t.Fatalf("expected one realtime change, got %d", len(changes))
	}
	change := changes[0]
	if change.Channel != realtime.ChannelChatMessages || change.Type != realtime.ChangeInsert || change.ID != sent.Message.ID {
		t.Fatalf("unexpected change %+v", change)
	}
	record, ok := change.Record.(realtime.MessageRecord)
	if !ok || record.Author == nil || record.Author.ID != "kid" {
		t.Fatalf("expected message record with author, got %#v", change.Record)
	}

	notes := fx.notifier.Sent()
	if len(notes) != 1 || notes[0].Kind != notification.TypeMessage || notes[0].ExceptUserID != "kid" {
		t.Fatalf("unexpected notifications %+v", notes)
	}
	if notes[0].Title != "New message from Player kid" {
		t.Fatalf("unexpected notification title %q", notes[0].Title)
	}
}

func TestChatService_SendMessageRejections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newChatFixture()

	if _, err := fx.service.SendMessage(ctx, "kid", "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank content, got %v", err)
	}
	if _, err := fx.service.SendMessage(ctx, "kid", strings.Repeat("a", chat.MaxContentLength+1)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for long content, got %v", err)
	}
	if _, err := fx.service.SendMessage(ctx, "stranger", "hello"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown user, got %v", err)
	}
	if len(fx.publisher.Changes()) != 0 {
		t.Fatalf("rejected messages must not be published")
	}
}

func TestChatService_ListMessagesOldestFirstWithLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newChatFixture()

	for _, content := range []string{"one", "two", "three"} {
		if _, err := fx.service.SendMessage(ctx, "coach", content); err != nil {
			t.Fatalf("send %s: %v", content, err)
		}
		fx.clock.Advance(time.Minute)
	}

	items, err := fx.service.ListMessages(ctx, 2)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(items) != 2 || items[0].Message.Content != "two" || items[1].Message.Content != "three" {
		t.Fatalf("expected last two messages oldest first, got %+v", items)
	}
	if items[0].Author.ID != "coach" {
		t.Fatalf("expected author joined, got %+v", items[0].Author)
	}
}

func TestChatService_DeleteMessageManagerOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newChatFixture()

	sent, err := fx.service.SendMessage(ctx, "kid", "oops")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := fx.service.DeleteMessage(ctx, "kid", sent.Message.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := fx.service.DeleteMessage(ctx, "coach", sent.Message.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := fx.service.DeleteMessage(ctx, "coach", sent.Message.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	changes := fx.publisher.Changes()
	last := changes[len(changes)-1]
	if last.Type != realtime.ChangeDelete || last.ID != sent.Message.ID {
		t.Fatalf("expected delete change, got %+v", last)
	}
}

func TestChatService_PostAnnouncement(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newChatFixture()

	if _, err := fx.service.PostAnnouncement(ctx, "kid", AnnouncementInput{Title: "Hi", Content: "x"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := fx.service.PostAnnouncement(ctx, "coach", AnnouncementInput{Title: "Hi", Content: "x", Priority: "urgent"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for priority, got %v", err)
	}
	if _, err := fx.service.PostAnnouncement(ctx, "coach", AnnouncementInput{Content: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for title, got %v", err)
	}

	long := strings.Repeat("b", notificationPreviewLength+20)
	posted, err := fx.service.PostAnnouncement(ctx, "coach", AnnouncementInput{Title: " Kit day ", Content: long, Priority: "HIGH"})
	if err != nil {
		t.Fatalf("post announcement: %v", err)
	}
	if posted.Announcement.Priority != chat.PriorityHigh || posted.Announcement.Title != "Kit day" {
		t.Fatalf("unexpected announcement %+v", posted.Announcement)
	}

	notes := fx.notifier.Sent()
	if len(notes) != 1 || notes[0].Kind != notification.TypeAnnouncement {
		t.Fatalf("unexpected notifications %+v", notes)
	}
	if notes[0].Message != long[:notificationPreviewLength]+"..." {
		t.Fatalf("expected truncated preview, got %q", notes[0].Message)
	}

	listed, err := fx.service.ListAnnouncements(ctx, 0)
	if err != nil {
		t.Fatalf("list announcements: %v", err)
	}
	if len(listed) != 1 || listed[0].Author.ID != "coach" {
		t.Fatalf("unexpected announcements %+v", listed)
	}

	if err := fx.service.DeleteAnnouncement(ctx, "coach", posted.Announcement.ID); err != nil {
		t.Fatalf("delete announcement: %v", err)
	}
	changes := fx.publisher.Changes()
	if len(changes) != 2 || changes[1].Channel != realtime.ChannelAnnouncements || changes[1].Type != realtime.ChangeDelete {
		t.Fatalf("unexpected announcement changes %+v", changes)
	}
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, realtime.Change) error {
	return errors.New("feed down")
}

func TestChatService_PublishFailureDoesNotFailSend(t *testing.T) {
	t.Parallel()

	repo := memory.NewMessageRepository()
	service := NewChatService(repo, memory.NewAnnouncementRepository(), seededProfiles(playerProfile("kid")), failingPublisher{}, nil, idgen.NewSequence("msg"), logging.NewNop(), newTestClock())

	if _, err := service.SendMessage(context.Background(), "kid", "hello"); err != nil {
		t.Fatalf("expected send to succeed, got %v", err)
	}
	items, err := repo.ListRecent(context.Background(), 10)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected stored message, got %d err=%v", len(items), err)
	}
}
