package usecase

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamtrack/internal/domain/event"
	"github.com/riskibarqy/teamtrack/internal/domain/notification"
	"github.com/riskibarqy/teamtrack/internal/domain/player"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
)

type Home struct {
	Profile       profile.Profile
	NextEvent     event.Event
	HasNextEvent  bool
	LastResult    event.Event
	HasLastResult bool
	UnreadCount   int
	SquadSize     int
}

type HomeService struct {
	profiles      profile.Repository
	events        event.Repository
	players       player.Repository
	notifications notification.Repository
	logger        *logging.Logger
	clock         clockwork.Clock
}

func NewHomeService(
	profiles profile.Repository,
	events event.Repository,
	players player.Repository,
	notifications notification.Repository,
	logger *logging.Logger,
	clock clockwork.Clock,
) *HomeService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &HomeService{
		profiles:      profiles,
		events:        events,
		players:       players,
		notifications: notifications,
		logger:        logger,
		clock:         clock,
	}
}

// Get assembles the home screen. Opening it clears unread event notifications.
func (s *HomeService) Get(ctx context.Context, userID string) (Home, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HomeService.Get", actorAttr(userID))
	defer span.End()

	me, err := loadActor(ctx, s.profiles, userID)
	if err != nil {
		return Home{}, err
	}
	out := Home{Profile: me}
	now := s.clock.Now()

	out.NextEvent, out.HasNextEvent, err = s.events.NextFrom(ctx, now, "")
	if err != nil {
		return Home{}, fmt.Errorf("get next event: %w", err)
	}
	out.LastResult, out.HasLastResult, err = s.events.LastResultBefore(ctx, now)
	if err != nil {
		return Home{}, fmt.Errorf("get last result: %w", err)
	}

	players, err := s.players.List(ctx)
	if err != nil {
		return Home{}, fmt.Errorf("list players: %w", err)
	}
	out.SquadSize = len(players)

	if _, err := s.notifications.MarkReadByTypes(ctx, me.ID, []notification.Type{notification.TypeEvent}); err != nil {
		s.logger.WarnContext(ctx, "mark event notifications read failed", "user_id", me.ID, "error", err)
	}
	out.UnreadCount, err = s.notifications.CountUnread(ctx, me.ID)
	if err != nil {
		return Home{}, fmt.Errorf("count unread notifications: %w", err)
	}

	return out, nil
}
