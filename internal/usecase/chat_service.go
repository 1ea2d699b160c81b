package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamtrack/internal/domain/chat"
	"github.com/riskibarqy/teamtrack/internal/domain/notification"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
	"github.com/riskibarqy/teamtrack/internal/domain/realtime"
	idgen "github.com/riskibarqy/teamtrack/internal/platform/id"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
)

const (
	defaultChatHistory         = 100
	maxChatHistory             = 500
	defaultAnnouncementHistory = 50
	notificationPreviewLength  = 100
)

// MessageView is a chat message with its author; Author is zero when the profile is gone.
type MessageView struct {
	Message chat.Message
	Author  profile.Profile
}

type AnnouncementView struct {
	Announcement chat.Announcement
	Author       profile.Profile
}

type AnnouncementInput struct {
	Title    string
	Content  string
	Priority string
}

type ChatService struct {
	messages      chat.MessageRepository
	announcements chat.AnnouncementRepository
	profiles      profile.Repository
	publisher     realtime.Publisher
	notifier      Notifier
	idGen         idgen.Generator
	logger        *logging.Logger
	clock         clockwork.Clock
}

func NewChatService(
	messages chat.MessageRepository,
	announcements chat.AnnouncementRepository,
	profiles profile.Repository,
	publisher realtime.Publisher,
	notifier Notifier,
	idGen idgen.Generator,
	logger *logging.Logger,
	clock clockwork.Clock,
) *ChatService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &ChatService{
		messages:      messages,
		announcements: announcements,
		profiles:      profiles,
		publisher:     publisher,
		notifier:      notifier,
		idGen:         idGen,
		logger:        logger,
		clock:         clock,
	}
}

func (s *ChatService) ListMessages(ctx context.Context, limit int) ([]MessageView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChatService.ListMessages")
	defer span.End()

	if limit <= 0 {
		limit = defaultChatHistory
	}
	if limit > maxChatHistory {
		limit = maxChatHistory
	}

	items, err := s.messages.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}

	userIDs := make([]string, 0, len(items))
	for _, item := range items {
		userIDs = append(userIDs, item.UserID)
	}
	authors, err := s.authors(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]MessageView, 0, len(items))
	for _, item := range items {
		out = append(out, MessageView{Message: item, Author: authors[item.UserID]})
	}
	return out, nil
}

func (s *ChatService) SendMessage(ctx context.Context, userID, content string) (MessageView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChatService.SendMessage", actorAttr(userID))
	defer span.End()

	actor, err := loadActor(ctx, s.profiles, userID)
	if err != nil {
		return MessageView{}, err
	}

	content = strings.TrimSpace(content)
	if err := chat.ValidateContent(content); err != nil {
		return MessageView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return MessageView{}, fmt.Errorf("generate message id: %w", err)
	}
	item := chat.Message{
		ID:        id,
		UserID:    actor.ID,
		Content:   content,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.messages.Create(ctx, item); err != nil {
		return MessageView{}, fmt.Errorf("create chat message: %w", err)
	}

	s.publish(ctx, realtime.ChannelChatMessages, realtime.ChangeInsert, item.ID, realtime.MessageRecord{
		ID:        item.ID,
		UserID:    item.UserID,
		Content:   item.Content,
		CreatedAt: item.CreatedAt,
		Author:    authorRecord(actor),
	})
	s.notify(ctx, actor.ID, notification.TypeMessage, "New message from "+actor.DisplayName(), preview(item.Content))

	return MessageView{Message: item, Author: actor}, nil
}

func (s *ChatService) DeleteMessage(ctx context.Context, actorID, messageID string) error {
	if _, err := requireManager(ctx, s.profiles, actorID, "delete messages"); err != nil {
		return err
	}

	messageID = strings.TrimSpace(messageID)
	_, exists, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return fmt.Errorf("get chat message: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: message=%s", ErrNotFound, messageID)
	}

	if err := s.messages.Delete(ctx, messageID); err != nil {
		return fmt.Errorf("delete chat message: %w", err)
	}
	s.publish(ctx, realtime.ChannelChatMessages, realtime.ChangeDelete, messageID, realtime.DeletedRecord{ID: messageID})
	return nil
}

func (s *ChatService) ListAnnouncements(ctx context.Context, limit int) ([]AnnouncementView, error) {
	if limit <= 0 {
		limit = defaultAnnouncementHistory
	}

	items, err := s.announcements.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	userIDs := make([]string, 0, len(items))
	for _, item := range items {
		userIDs = append(userIDs, item.UserID)
	}
	authors, err := s.authors(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]AnnouncementView, 0, len(items))
	for _, item := range items {
		out = append(out, AnnouncementView{Announcement: item, Author: authors[item.UserID]})
	}
	return out, nil
}

func (s *ChatService) PostAnnouncement(ctx context.Context, actorID string, input AnnouncementInput) (AnnouncementView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChatService.PostAnnouncement", actorAttr(actorID))
	defer span.End()

	actor, err := requireManager(ctx, s.profiles, actorID, "post announcements")
	if err != nil {
		return AnnouncementView{}, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return AnnouncementView{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	content := strings.TrimSpace(input.Content)
	if err := chat.ValidateContent(content); err != nil {
		return AnnouncementView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	priority, err := chat.ParsePriority(input.Priority)
	if err != nil {
		return AnnouncementView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return AnnouncementView{}, fmt.Errorf("generate announcement id: %w", err)
	}
	item := chat.Announcement{
		ID:        id,
		UserID:    actor.ID,
		Title:     title,
		Content:   content,
		Priority:  priority,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.announcements.Create(ctx, item); err != nil {
		return AnnouncementView{}, fmt.Errorf("create announcement: %w", err)
	}

	s.publish(ctx, realtime.ChannelAnnouncements, realtime.ChangeInsert, item.ID, realtime.AnnouncementRecord{
		ID:        item.ID,
		UserID:    item.UserID,
		Title:     item.Title,
		Content:   item.Content,
		Priority:  string(item.Priority),
		CreatedAt: item.CreatedAt,
		Author:    authorRecord(actor),
	})
	s.notify(ctx, actor.ID, notification.TypeAnnouncement, item.Title, preview(item.Content))

	return AnnouncementView{Announcement: item, Author: actor}, nil
}

func (s *ChatService) DeleteAnnouncement(ctx context.Context, actorID, announcementID string) error {
	if _, err := requireManager(ctx, s.profiles, actorID, "delete announcements"); err != nil {
		return err
	}

	announcementID = strings.TrimSpace(announcementID)
	_, exists, err := s.announcements.GetByID(ctx, announcementID)
	if err != nil {
		return fmt.Errorf("get announcement: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: announcement=%s", ErrNotFound, announcementID)
	}

	if err := s.announcements.Delete(ctx, announcementID); err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	s.publish(ctx, realtime.ChannelAnnouncements, realtime.ChangeDelete, announcementID, realtime.DeletedRecord{ID: announcementID})
	return nil
}

func (s *ChatService) authors(ctx context.Context, userIDs []string) (map[string]profile.Profile, error) {
	out := make(map[string]profile.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	items, err := s.profiles.GetByIDs(ctx, dedupe(userIDs))
	if err != nil {
		return nil, fmt.Errorf("get author profiles: %w", err)
	}
	for _, item := range items {
		out[item.ID] = item
	}
	return out, nil
}

// publish is best effort; the row is already stored.
func (s *ChatService) publish(ctx context.Context, channel realtime.Channel, kind realtime.ChangeType, id string, record any) {
	if s.publisher == nil {
		return
	}
	change := realtime.Change{
		ID:         id,
		Channel:    channel,
		Type:       kind,
		Record:     record,
		OccurredAt: s.clock.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, change); err != nil {
		s.logger.WarnContext(ctx, "publish realtime change failed", "channel", channel, "type", kind, "id", id, "error", err)
	}
}

func (s *ChatService) notify(ctx context.Context, actorID string, kind notification.Type, title, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyAllExcept(ctx, actorID, kind, title, message); err != nil {
		s.logger.WarnContext(ctx, "notify chat activity failed", "type", kind, "error", err)
	}
}

func authorRecord(p profile.Profile) *realtime.Author {
	return &realtime.Author{
		ID:        p.ID,
		FullName:  p.FullName,
		Role:      string(p.Role),
		AvatarURL: p.AvatarURL,
	}
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= notificationPreviewLength {
		return content
	}
	return string(runes[:notificationPreviewLength]) + "..."
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
