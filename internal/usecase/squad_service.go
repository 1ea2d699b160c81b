package usecase

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamtrack/internal/domain/player"
	"github.com/riskibarqy/teamtrack/internal/domain/playerstats"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
	idgen "github.com/riskibarqy/teamtrack/internal/platform/id"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
)

type PlayerInput struct {
	FullName     string
	Position     string
	JerseyNumber *int
	AvatarURL    string
	ParentID     string
}

type SquadService struct {
	players  player.Repository
	stats    playerstats.Repository
	profiles profile.Repository
	idGen    idgen.Generator
	logger   *logging.Logger
	clock    clockwork.Clock
}

func NewSquadService(
	players player.Repository,
	stats playerstats.Repository,
	profiles profile.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
	clock clockwork.Clock,
) *SquadService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &SquadService{
		players:  players,
		stats:    stats,
		profiles: profiles,
		idGen:    idGen,
		logger:   logger,
		clock:    clock,
	}
}

// List returns the roster by jersey number, unnumbered players last.
func (s *SquadService) List(ctx context.Context) ([]player.Player, error) {
	items, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return player.Less(items[i], items[j]) })
	return items, nil
}

func (s *SquadService) Get(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return item, nil
}

// CanEdit allows managers and the parent linked to the player.
func CanEdit(actor profile.Profile, item player.Player) bool {
	if actor.IsManager() {
		return true
	}
	return actor.IsParent() && item.ParentID != "" && item.ParentID == actor.ID
}

func (s *SquadService) Create(ctx context.Context, actorID string, input PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Create", actorAttr(actorID))
	defer span.End()

	if _, err := requireManager(ctx, s.profiles, actorID, "add players"); err != nil {
		return player.Player{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}
	now := s.clock.Now().UTC()
	item := applyPlayerInput(player.Player{ID: id, CreatedAt: now}, input)
	item.ParentID = strings.TrimSpace(input.ParentID)
	item.UpdatedAt = now
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.ensureParent(ctx, item.ParentID); err != nil {
		return player.Player{}, err
	}

	if err := s.players.Create(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}
	if err := s.stats.Upsert(ctx, playerstats.Stats{PlayerID: item.ID, UpdatedAt: now}); err != nil {
		return player.Player{}, fmt.Errorf("seed player stats: %w", err)
	}
	if err := s.relinkParent(ctx, item.ID, "", item.ParentID, now); err != nil {
		return player.Player{}, err
	}

	s.logger.InfoContext(ctx, "player added", "player_id", item.ID)
	return item, nil
}

func (s *SquadService) Update(ctx context.Context, actorID, playerID string, input PlayerInput) (player.Player, error) {
	actor, err := loadActor(ctx, s.profiles, actorID)
	if err != nil {
		return player.Player{}, err
	}
	existing, err := s.Get(ctx, playerID)
	if err != nil {
		return player.Player{}, err
	}
	if !CanEdit(actor, existing) {
		return player.Player{}, fmt.Errorf("%w: you can only edit your own child's details", ErrForbidden)
	}

	item := applyPlayerInput(existing, input)
	// Only managers may move a player to another parent.
	if actor.IsManager() {
		item.ParentID = strings.TrimSpace(input.ParentID)
		if err := s.ensureParent(ctx, item.ParentID); err != nil {
			return player.Player{}, err
		}
	}
	item.UpdatedAt = s.clock.Now().UTC()
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.players.Update(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}
	if err := s.relinkParent(ctx, item.ID, existing.ParentID, item.ParentID, item.UpdatedAt); err != nil {
		return player.Player{}, err
	}
	return item, nil
}

func (s *SquadService) Delete(ctx context.Context, actorID, playerID string) error {
	if _, err := requireManager(ctx, s.profiles, actorID, "remove players"); err != nil {
		return err
	}
	existing, err := s.Get(ctx, playerID)
	if err != nil {
		return err
	}

	if err := s.stats.DeleteByPlayerID(ctx, playerID); err != nil {
		return fmt.Errorf("delete player stats: %w", err)
	}
	if err := s.players.Delete(ctx, playerID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return s.relinkParent(ctx, existing.ID, existing.ParentID, "", s.clock.Now().UTC())
}

// relinkParent moves playerID from one parent's parent_of list to another's.
// Missing parent profiles are skipped.
func (s *SquadService) relinkParent(ctx context.Context, playerID, from, to string, now time.Time) error {
	if from == to {
		return nil
	}
	if from != "" {
		if err := s.updateParentOf(ctx, from, now, func(ids []string) []string {
			return slices.DeleteFunc(ids, func(id string) bool { return id == playerID })
		}); err != nil {
			return err
		}
	}
	if to != "" {
		if err := s.updateParentOf(ctx, to, now, func(ids []string) []string {
			if slices.Contains(ids, playerID) {
				return ids
			}
			return append(ids, playerID)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *SquadService) updateParentOf(ctx context.Context, parentID string, now time.Time, change func([]string) []string) error {
	parent, exists, err := s.profiles.GetByID(ctx, parentID)
	if err != nil {
		return fmt.Errorf("get parent profile: %w", err)
	}
	if !exists {
		s.logger.WarnContext(ctx, "parent profile missing while relinking player", "parent_id", parentID)
		return nil
	}

	parent.ParentOf = change(slices.Clone(parent.ParentOf))
	parent.UpdatedAt = now
	if err := s.profiles.Update(ctx, parent); err != nil {
		return fmt.Errorf("update parent profile: %w", err)
	}
	return nil
}

func (s *SquadService) ensureParent(ctx context.Context, parentID string) error {
	if parentID == "" {
		return nil
	}
	parent, exists, err := s.profiles.GetByID(ctx, parentID)
	if err != nil {
		return fmt.Errorf("get parent profile: %w", err)
	}
	if !exists || !parent.IsParent() {
		return fmt.Errorf("%w: parent=%s is not a parent profile", ErrInvalidInput, parentID)
	}
	return nil
}

func applyPlayerInput(item player.Player, input PlayerInput) player.Player {
	item.FullName = strings.TrimSpace(input.FullName)
	item.Position = strings.TrimSpace(input.Position)
	item.JerseyNumber = input.JerseyNumber
	item.AvatarURL = strings.TrimSpace(input.AvatarURL)
	return item
}
