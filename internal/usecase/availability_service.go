package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamtrack/internal/domain/availability"
	"github.com/riskibarqy/teamtrack/internal/domain/event"
	"github.com/riskibarqy/teamtrack/internal/domain/player"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
)

type RespondInput struct {
	EventID string
	Status  string
	Note    string
}

// AvailabilityResponse is an answer joined with the responder's profile.
type AvailabilityResponse struct {
	Availability availability.Availability
	Responder    profile.Profile
}

type AvailabilityService struct {
	events       event.Repository
	availability availability.Repository
	players      player.Repository
	profiles     profile.Repository
	clock        clockwork.Clock
}

func NewAvailabilityService(
	events event.Repository,
	availabilityRepo availability.Repository,
	players player.Repository,
	profiles profile.Repository,
	clock clockwork.Clock,
) *AvailabilityService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AvailabilityService{
		events:       events,
		availability: availabilityRepo,
		players:      players,
		profiles:     profiles,
		clock:        clock,
	}
}

func (s *AvailabilityService) Respond(ctx context.Context, userID string, input RespondInput) (availability.Availability, error) {
	actor, err := loadActor(ctx, s.profiles, userID)
	if err != nil {
		return availability.Availability{}, err
	}

	eventID := strings.TrimSpace(input.EventID)
	if eventID == "" {
		return availability.Availability{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	status, err := availability.ParseStatus(input.Status)
	if err != nil {
		return availability.Availability{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return availability.Availability{}, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return availability.Availability{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	item := availability.Availability{
		EventID:   eventID,
		UserID:    actor.ID,
		Status:    status,
		Note:      strings.TrimSpace(input.Note),
		UpdatedAt: s.clock.Now().UTC(),
	}
	if err := s.availability.Upsert(ctx, item); err != nil {
		return availability.Availability{}, fmt.Errorf("upsert availability: %w", err)
	}
	return item, nil
}

func (s *AvailabilityService) ListByEvent(ctx context.Context, eventID string) ([]AvailabilityResponse, error) {
	rows, err := s.availability.ListByEvent(ctx, strings.TrimSpace(eventID))
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}

	userIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		userIDs = append(userIDs, row.UserID)
	}
	profiles, err := s.profiles.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("get responder profiles: %w", err)
	}
	byID := make(map[string]profile.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	out := make([]AvailabilityResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, AvailabilityResponse{Availability: row, Responder: byID[row.UserID]})
	}
	return out, nil
}

func (s *AvailabilityService) Summary(ctx context.Context, eventID string) (availability.Summary, error) {
	rows, err := s.availability.ListByEvent(ctx, strings.TrimSpace(eventID))
	if err != nil {
		return availability.Summary{}, fmt.Errorf("list availability: %w", err)
	}
	return availability.Summarize(rows), nil
}

// AvailablePlayers returns roster players whose parent answered "available" for the event.
func (s *AvailabilityService) AvailablePlayers(ctx context.Context, eventID string) ([]player.Player, error) {
	return availablePlayers(ctx, s.availability, s.players, eventID)
}

func availablePlayers(ctx context.Context, availabilityRepo availability.Repository, players player.Repository, eventID string) ([]player.Player, error) {
	rows, err := availabilityRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}

	parentIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Status == availability.StatusAvailable {
			parentIDs = append(parentIDs, row.UserID)
		}
	}
	if len(parentIDs) == 0 {
		return []player.Player{}, nil
	}

	items, err := players.ListByParentIDs(ctx, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("list players by parent: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return player.Less(items[i], items[j]) })
	return items, nil
}
