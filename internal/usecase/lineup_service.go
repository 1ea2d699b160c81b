package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamtrack/internal/domain/availability"
	"github.com/riskibarqy/teamtrack/internal/domain/event"
	"github.com/riskibarqy/teamtrack/internal/domain/formation"
	"github.com/riskibarqy/teamtrack/internal/domain/lineup"
	"github.com/riskibarqy/teamtrack/internal/domain/notification"
	"github.com/riskibarqy/teamtrack/internal/domain/player"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
	idgen "github.com/riskibarqy/teamtrack/internal/platform/id"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
)

type SaveMatchLineupInput struct {
	EventID       string
	Formation     string
	StarterIDs    []string
	SubstituteIDs []string
}

// MatchBuilder is everything the lineup screen needs for the next match.
type MatchBuilder struct {
	Match            event.Event
	HasMatch         bool
	AvailablePlayers []player.Player
	Lineup           lineup.MatchLineup
	HasLineup        bool
	Formations       []formation.Formation
}

type LineupService struct {
	events       event.Repository
	players      player.Repository
	availability availability.Repository
	lineups      lineup.Repository
	picks        lineup.StartingPickRepository
	profiles     profile.Repository
	notifier     Notifier
	idGen        idgen.Generator
	logger       *logging.Logger
	clock        clockwork.Clock
}

func NewLineupService(
	events event.Repository,
	players player.Repository,
	availabilityRepo availability.Repository,
	lineups lineup.Repository,
	picks lineup.StartingPickRepository,
	profiles profile.Repository,
	notifier Notifier,
	idGen idgen.Generator,
	logger *logging.Logger,
	clock clockwork.Clock,
) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &LineupService{
		events:       events,
		players:      players,
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

func (s *LineupService) GetMatchLineup(ctx context.Context, eventID string) (lineup.MatchLineup, bool, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return lineup.MatchLineup{}, false, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	item, exists, err := s.lineups.GetByEvent(ctx, eventID)
	if err != nil {
		return lineup.MatchLineup{}, false, fmt.Errorf("get match lineup: %w", err)
	}
	return item, exists, nil
}

// SaveMatchLineup places exactly one starter per formation slot and appends substitutes.
func (s *LineupService) SaveMatchLineup(ctx context.Context, actorID string, input SaveMatchLineupInput) (lineup.MatchLineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.SaveMatchLineup", actorAttr(actorID), eventAttr(input.EventID))
	defer span.End()

	actor, err := requireManager(ctx, s.profiles, actorID, "save lineups")
	if err != nil {
		return lineup.MatchLineup{}, err
	}

	match, err := s.getMatch(ctx, input.EventID)
	if err != nil {
		return lineup.MatchLineup{}, err
	}

	f, err := lookupFormation(input.Formation)
	if err != nil {
		return lineup.MatchLineup{}, err
	}

	starters := trimIDs(input.StarterIDs)
	substitutes := trimIDs(input.SubstituteIDs)
	if err := formation.ValidateStarters(f, starters); err != nil {
		return lineup.MatchLineup{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	seen := make(map[string]struct{}, len(starters)+len(substitutes))
	for _, id := range starters {
		seen[id] = struct{}{}
	}
	for _, id := range substitutes {
		if _, ok := seen[id]; ok || id == "" {
			return lineup.MatchLineup{}, fmt.Errorf("%w: %w: %s", ErrInvalidInput, formation.ErrDuplicatePlayer, id)
		}
		seen[id] = struct{}{}
	}

	byID, err := s.loadPlayers(ctx, append(append([]string(nil), starters...), substitutes...))
	if err != nil {
		return lineup.MatchLineup{}, err
	}

	positions := make([]lineup.FieldPosition, 0, len(starters)+len(substitutes))
	for _, placement := range formation.Assign(f, starters) {
		positions = append(positions, lineup.FieldPosition{
			PlayerID:     placement.PlayerID,
			X:            placement.Slot.X,
			Y:            placement.Slot.Y,
			JerseyNumber: byID[placement.PlayerID].JerseyNumber,
		})
	}
	for _, id := range substitutes {
		positions = append(positions, lineup.FieldPosition{
			PlayerID:     id,
			JerseyNumber: byID[id].JerseyNumber,
			IsSubstitute: true,
		})
	}

	now := s.clock.Now().UTC()
	existing, exists, err := s.lineups.GetByEvent(ctx, match.ID)
	if err != nil {
		return lineup.MatchLineup{}, fmt.Errorf("get existing lineup: %w", err)
	}

	item := lineup.MatchLineup{
		ID:         existing.ID,
		EventID:    match.ID,
		Formation:  f.Name,
		Positions:  positions,
		CreatedBy:  actor.ID,
		IsHomeGame: match.IsHomeGame,
		CreatedAt:  existing.CreatedAt,
		UpdatedAt:  now,
	}
	if !exists {
		item.ID, err = s.idGen.NewID()
		if err != nil {
			return lineup.MatchLineup{}, fmt.Errorf("generate lineup id: %w", err)
		}
		item.CreatedAt = now
	}

	if err := s.lineups.Upsert(ctx, item); err != nil {
		return lineup.MatchLineup{}, fmt.Errorf("upsert match lineup: %w", err)
	}

	if s.notifier != nil {
		message := fmt.Sprintf("Lineup for %s is ready (%s)", match.Title, f.Name)
		if err := s.notifier.NotifyAllExcept(ctx, actor.ID, notification.TypeLineup, "Lineup announced", message); err != nil {
			s.logger.WarnContext(ctx, "notify lineup failed", "event_id", match.ID, "error", err)
		}
	}

	return item, nil
}

// LineupPreview is the pitch layout for an unsaved starter selection.
type LineupPreview struct {
	Formation  formation.Formation
	Selected   []string
	Placements []formation.Placement
}

// PreviewLineupInput describes one step of the lineup builder. FromFormation is set when
// the manager switches formation; the selection is then trimmed to the new capacity.
type PreviewLineupInput struct {
	Formation     string
	FromFormation string
	SelectedIDs   []string
	ToggleID      string
}

// PreviewLineup toggles one player in an unsaved selection and lays the result out on the pitch.
func (s *LineupService) PreviewLineup(ctx context.Context, input PreviewLineupInput) (LineupPreview, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LineupService.PreviewLineup")
	defer span.End()

	target, err := lookupFormation(input.Formation)
	if err != nil {
		return LineupPreview{}, err
	}
	current := target
	if strings.TrimSpace(input.FromFormation) != "" {
		if current, err = lookupFormation(input.FromFormation); err != nil {
			return LineupPreview{}, err
		}
	}

	sel, err := formation.NewSelection(current, trimIDs(input.SelectedIDs)...)
	if err != nil {
		return LineupPreview{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	sel.SwitchFormation(target)

	if toggleID := strings.TrimSpace(input.ToggleID); toggleID != "" {
		if _, err := sel.Toggle(toggleID); err != nil {
			return LineupPreview{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	return LineupPreview{Formation: target, Selected: sel.IDs(), Placements: sel.Placements()}, nil
}

func lookupFormation(name string) (formation.Formation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = formation.DefaultName
	}
	f, err := formation.Lookup(name)
	if err != nil {
		return formation.Formation{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return f, nil
}

func (s *LineupService) ListStartingPicks(ctx context.Context, eventID string) ([]lineup.StartingPick, error) {
	items, err := s.picks.ListByEvent(ctx, strings.TrimSpace(eventID))
	if err != nil {
		return nil, fmt.Errorf("list starting picks: %w", err)
	}
	return items, nil
}

// SaveStartingPicks replaces the event's picker rows with up to eleven starters.
func (s *LineupService) SaveStartingPicks(ctx context.Context, actorID, eventID string, playerIDs []string) ([]lineup.StartingPick, error) {
	if _, err := requireManager(ctx, s.profiles, actorID, "pick starting players"); err != nil {
		return nil, err
	}

	item, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	ids := trimIDs(playerIDs)
	if err := formation.ValidateStartingPicks(ids); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if _, err := s.loadPlayers(ctx, ids); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	picks := make([]lineup.StartingPick, 0, len(ids))
	for _, playerID := range ids {
		id, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate pick id: %w", err)
		}
		picks = append(picks, lineup.StartingPick{
			ID:         id,
			EventID:    item.ID,
			PlayerID:   playerID,
			Position:   lineup.DefaultPickPosition,
			IsStarting: true,
			CreatedAt:  now,
		})
	}

	if err := s.picks.Replace(ctx, item.ID, picks); err != nil {
		return nil, fmt.Errorf("replace starting picks: %w", err)
	}
	return picks, nil
}

// NextMatchBuilder loads the next upcoming match with its available players and saved lineup.
func (s *LineupService) NextMatchBuilder(ctx context.Context) (MatchBuilder, error) {
	out := MatchBuilder{Formations: formation.All()}

	match, exists, err := s.events.NextFrom(ctx, s.clock.Now(), event.TypeMatch)
	if err != nil {
		return MatchBuilder{}, fmt.Errorf("get next match: %w", err)
	}
	if !exists {
		out.AvailablePlayers = []player.Player{}
		return out, nil
	}
	out.Match = match
	out.HasMatch = true

	out.AvailablePlayers, err = availablePlayers(ctx, s.availability, s.players, match.ID)
	if err != nil {
		return MatchBuilder{}, err
	}

	out.Lineup, out.HasLineup, err = s.lineups.GetByEvent(ctx, match.ID)
	if err != nil {
		return MatchBuilder{}, fmt.Errorf("get match lineup: %w", err)
	}
	return out, nil
}

func (s *LineupService) getEvent(ctx context.Context, eventID string) (event.Event, error) {
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

func (s *LineupService) getMatch(ctx context.Context, eventID string) (event.Event, error) {
	item, err := s.getEvent(ctx, eventID)
	if err != nil {
		return event.Event{}, err
	}
	if !item.IsMatch() {
		return event.Event{}, fmt.Errorf("%w: lineups can only be saved for matches", ErrInvalidInput)
	}
	return item, nil
}

func (s *LineupService) loadPlayers(ctx context.Context, ids []string) (map[string]player.Player, error) {
	if len(ids) == 0 {
		return map[string]player.Player{}, nil
	}
	items, err := s.players.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}

	byID := make(map[string]player.Player, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("%w: player id %s not found", ErrInvalidInput, id)
		}
	}
	return byID, nil
}

func trimIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strings.TrimSpace(id))
	}
	return out
}
