package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamtrack/internal/domain/availability"
	"github.com/riskibarqy/teamtrack/internal/domain/event"
	"github.com/riskibarqy/teamtrack/internal/domain/lineup"
	"github.com/riskibarqy/teamtrack/internal/domain/notification"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
	idgen "github.com/riskibarqy/teamtrack/internal/platform/id"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const availabilityLoadConcurrency = 8

type EventInput struct {
	Title      string
	Type       string
	EventDate  time.Time
	Location   string
	Opponent   string
	IsHomeGame bool
	Notes      string
}

// EventWithAvailability is a fixture row with its response counts.
type EventWithAvailability struct {
	Event        event.Event
	Availability availability.Summary
}

type EventService struct {
	events       event.Repository
	availability availability.Repository
	lineups      lineup.Repository
	picks        lineup.StartingPickRepository
	profiles     profile.Repository
	notifier     Notifier
	idGen        idgen.Generator
	logger       *logging.Logger
	clock        clockwork.Clock
}

func NewEventService(
	events event.Repository,
	availabilityRepo availability.Repository,
	lineups lineup.Repository,
	picks lineup.StartingPickRepository,
	profiles profile.Repository,
	notifier Notifier,
	idGen idgen.Generator,
	logger *logging.Logger,
	clock clockwork.Clock,
) *EventService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &EventService{
		events:       events,
		availability: availabilityRepo,
		lineups:      lineups,
		picks:        picks,
		profiles:     profiles,
		notifier:     notifier,
		idGen:        idGen,
		logger:       logger,
		clock:        clock,
	}
}

func (s *EventService) List(ctx context.Context, filter event.Filter) ([]EventWithAvailability, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.List", attribute.String("teamtrack.event_filter", string(filter)))
	defer span.End()

	items, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	now := s.clock.Now()
	filtered := make([]event.Event, 0, len(items))
	for _, item := range items {
		switch filter {
		case event.FilterUpcoming:
			if item.EventDate.Before(now) {
				continue
			}
		case event.FilterPast:
			if !item.EventDate.Before(now) {
				continue
			}
		}
		filtered = append(filtered, item)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filter == event.FilterPast {
			return filtered[i].EventDate.After(filtered[j].EventDate)
		}
		return filtered[i].EventDate.Before(filtered[j].EventDate)
	})

	summaries, err := s.summaries(ctx, filtered)
	if err != nil {
		return nil, err
	}

	out := make([]EventWithAvailability, 0, len(filtered))
	for _, item := range filtered {
		out = append(out, EventWithAvailability{Event: item, Availability: summaries[item.ID]})
	}
	return out, nil
}

type eventSummary struct {
	eventID string
	summary availability.Summary
}

func (s *EventService) summaries(ctx context.Context, items []event.Event) (map[string]availability.Summary, error) {
	p := pool.NewWithResults[eventSummary]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(availabilityLoadConcurrency)
	for _, item := range items {
		eventID := item.ID
		p.Go(func(ctx context.Context) (eventSummary, error) {
			rows, err := s.availability.ListByEvent(ctx, eventID)
			if err != nil {
				return eventSummary{}, fmt.Errorf("list availability for event=%s: %w", eventID, err)
			}
			return eventSummary{eventID: eventID, summary: availability.Summarize(rows)}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	out := make(map[string]availability.Summary, len(results))
	for _, r := range results {
		out[r.eventID] = r.summary
	}
	return out, nil
}

func (s *EventService) Get(ctx context.Context, eventID string) (EventWithAvailability, error) {
	item, err := s.mustGet(ctx, eventID)
	if err != nil {
		return EventWithAvailability{}, err
	}

	rows, err := s.availability.ListByEvent(ctx, item.ID)
	if err != nil {
		return EventWithAvailability{}, fmt.Errorf("list availability: %w", err)
	}
	return EventWithAvailability{Event: item, Availability: availability.Summarize(rows)}, nil
}

func (s *EventService) Create(ctx context.Context, actorID string, input EventInput) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.Create", actorAttr(actorID))
	defer span.End()

	actor, err := requireManager(ctx, s.profiles, actorID, "create events")
	if err != nil {
		return event.Event{}, err
	}

	item, err := applyEventInput(event.Event{}, input)
	if err != nil {
		return event.Event{}, err
	}
	item.ID, err = s.idGen.NewID()
	if err != nil {
		return event.Event{}, fmt.Errorf("generate event id: %w", err)
	}
	now := s.clock.Now().UTC()
	item.CreatedBy = actor.ID
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.events.Create(ctx, item); err != nil {
		return event.Event{}, fmt.Errorf("create event: %w", err)
	}

	if s.notifier != nil {
		message := fmt.Sprintf("%s on %s", item.Title, item.EventDate.Format("Mon 02 Jan 15:04"))
		if err := s.notifier.NotifyAllExcept(ctx, "", notification.TypeEvent, "New event scheduled", message); err != nil {
			s.logger.WarnContext(ctx, "notify new event failed", "event_id", item.ID, "error", err)
		}
	}

	return item, nil
}

func (s *EventService) Update(ctx context.Context, actorID, eventID string, input EventInput) (event.Event, error) {
	if _, err := requireManager(ctx, s.profiles, actorID, "edit events"); err != nil {
		return event.Event{}, err
	}

	existing, err := s.mustGet(ctx, eventID)
	if err != nil {
		return event.Event{}, err
	}

	item, err := applyEventInput(existing, input)
	if err != nil {
		return event.Event{}, err
	}
	if !item.IsMatch() {
		item.HomeScore, item.AwayScore, item.Result = nil, nil, ""
	} else if item.HomeScore != nil && item.AwayScore != nil {
		item.Result = event.DeriveResult(*item.HomeScore, *item.AwayScore, item.IsHomeGame)
	}
	item.UpdatedAt = s.clock.Now().UTC()

	if err := s.events.Update(ctx, item); err != nil {
		return event.Event{}, fmt.Errorf("update event: %w", err)
	}
	return item, nil
}

func (s *EventService) Delete(ctx context.Context, actorID, eventID string) error {
	if _, err := requireManager(ctx, s.profiles, actorID, "delete events"); err != nil {
		return err
	}
	if _, err := s.mustGet(ctx, eventID); err != nil {
		return err
	}

	if err := s.availability.DeleteByEvent(ctx, eventID); err != nil {
		return fmt.Errorf("delete event availability: %w", err)
	}
	if err := s.lineups.DeleteByEvent(ctx, eventID); err != nil {
		return fmt.Errorf("delete event lineup: %w", err)
	}
	if err := s.picks.DeleteByEvent(ctx, eventID); err != nil {
		return fmt.Errorf("delete event starting picks: %w", err)
	}
	if err := s.events.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// RecordScore stores the final score of a match and derives the result for our side.
func (s *EventService) RecordScore(ctx context.Context, actorID, eventID string, homeScore, awayScore int) (event.Event, error) {
	if _, err := requireManager(ctx, s.profiles, actorID, "record scores"); err != nil {
		return event.Event{}, err
	}
	if homeScore < 0 || awayScore < 0 {
		return event.Event{}, fmt.Errorf("%w: scores must be >= 0", ErrInvalidInput)
	}

	item, err := s.mustGet(ctx, eventID)
	if err != nil {
		return event.Event{}, err
	}
	if !item.IsMatch() {
		return event.Event{}, fmt.Errorf("%w: scores can only be recorded for matches", ErrInvalidInput)
	}

	item.HomeScore = &homeScore
	item.AwayScore = &awayScore
	item.Result = event.DeriveResult(homeScore, awayScore, item.IsHomeGame)
	item.UpdatedAt = s.clock.Now().UTC()

	if err := s.events.Update(ctx, item); err != nil {
		return event.Event{}, fmt.Errorf("record event score: %w", err)
	}
	return item, nil
}

// NextEvent is the earliest event of any type at or after now.
func (s *EventService) NextEvent(ctx context.Context) (event.Event, bool, error) {
	item, exists, err := s.events.NextFrom(ctx, s.clock.Now(), "")
	if err != nil {
		return event.Event{}, false, fmt.Errorf("get next event: %w", err)
	}
	return item, exists, nil
}

func (s *EventService) NextMatch(ctx context.Context) (event.Event, bool, error) {
	item, exists, err := s.events.NextFrom(ctx, s.clock.Now(), event.TypeMatch)
	if err != nil {
		return event.Event{}, false, fmt.Errorf("get next match: %w", err)
	}
	return item, exists, nil
}

func (s *EventService) LastResult(ctx context.Context) (event.Event, bool, error) {
	item, exists, err := s.events.LastResultBefore(ctx, s.clock.Now())
	if err != nil {
		return event.Event{}, false, fmt.Errorf("get last result: %w", err)
	}
	return item, exists, nil
}

func (s *EventService) mustGet(ctx context.Context, eventID string) (event.Event, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return event.Event{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	item, exists, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return event.Event{}, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return event.Event{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}
	return item, nil
}

func applyEventInput(item event.Event, input EventInput) (event.Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return event.Event{}, fmt.Errorf("%w: event title is required", ErrInvalidInput)
	}
	if input.EventDate.IsZero() {
		return event.Event{}, fmt.Errorf("%w: event date is required", ErrInvalidInput)
	}
	eventType, err := event.ParseType(input.Type)
	if err != nil {
		return event.Event{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item.Title = title
	item.Type = eventType
	item.EventDate = input.EventDate.UTC()
	item.Location = strings.TrimSpace(input.Location)
	item.Opponent = strings.TrimSpace(input.Opponent)
	item.IsHomeGame = input.IsHomeGame
	item.Notes = strings.TrimSpace(input.Notes)
	if eventType != event.TypeMatch {
		item.Opponent = ""
	}
	return item, nil
}
