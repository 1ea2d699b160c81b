package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamtrack/internal/domain/player"
	"github.com/riskibarqy/teamtrack/internal/domain/playerstats"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
)

type StatsInput struct {
	MatchesPlayed int
	Goals         int
	Assists       int
	YellowCards   int
	RedCards      int
	CleanSheets   int
	MinutesPlayed int
}

// Leaderboard is the ranked stats table with team totals.
type Leaderboard struct {
	Items  []playerstats.Ranked
	Totals playerstats.Totals
}

type StatsService struct {
	stats    playerstats.Repository
	players  player.Repository
	profiles profile.Repository
	logger   *logging.Logger
	clock    clockwork.Clock
}

func NewStatsService(
	stats playerstats.Repository,
	players player.Repository,
	profiles profile.Repository,
	logger *logging.Logger,
	clock clockwork.Clock,
) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &StatsService{
		stats:    stats,
		players:  players,
		profiles: profiles,
		logger:   logger,
		clock:    clock,
	}
}

// Leaderboard ranks every squad player by key. Players without a stats row count as zero.
func (s *StatsService) Leaderboard(ctx context.Context, key playerstats.SortKey) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Leaderboard")
	defer span.End()

	players, err := s.players.List(ctx)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list players: %w", err)
	}
	rows, err := s.stats.List(ctx)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list player stats: %w", err)
	}

	byPlayer := make(map[string]playerstats.Stats, len(rows))
	for _, row := range rows {
		byPlayer[row.PlayerID] = row
	}

	items := make([]playerstats.Ranked, 0, len(players))
	all := make([]playerstats.Stats, 0, len(players))
	for _, p := range players {
		row, ok := byPlayer[p.ID]
		if !ok {
			row = playerstats.Stats{PlayerID: p.ID}
		}
		items = append(items, playerstats.Ranked{Stats: row, PlayerName: p.FullName})
		all = append(all, row)
	}
	playerstats.Sort(items, key)

	return Leaderboard{Items: items, Totals: playerstats.ComputeTotals(all)}, nil
}

func (s *StatsService) Get(ctx context.Context, playerID string) (playerstats.Stats, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return playerstats.Stats{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if _, exists, err := s.players.GetByID(ctx, playerID); err != nil {
		return playerstats.Stats{}, fmt.Errorf("get player: %w", err)
	} else if !exists {
		return playerstats.Stats{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	row, exists, err := s.stats.GetByPlayerID(ctx, playerID)
	if err != nil {
		return playerstats.Stats{}, fmt.Errorf("get player stats: %w", err)
	}
	if !exists {
		row = playerstats.Stats{PlayerID: playerID}
	}
	return row, nil
}

func (s *StatsService) Upsert(ctx context.Context, actorID, playerID string, input StatsInput) (playerstats.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Upsert", actorAttr(actorID))
	defer span.End()

	if _, err := requireManager(ctx, s.profiles, actorID, "edit stats"); err != nil {
		return playerstats.Stats{}, err
	}

	playerID = strings.TrimSpace(playerID)
	_, exists, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return playerstats.Stats{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return playerstats.Stats{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	row := playerstats.Stats{
		PlayerID:      playerID,
		MatchesPlayed: input.MatchesPlayed,
		Goals:         input.Goals,
		Assists:       input.Assists,
		YellowCards:   input.YellowCards,
		RedCards:      input.RedCards,
		CleanSheets:   input.CleanSheets,
		MinutesPlayed: input.MinutesPlayed,
		UpdatedAt:     s.clock.Now().UTC(),
	}
	if err := row.Validate(); err != nil {
		return playerstats.Stats{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.stats.Upsert(ctx, row); err != nil {
		return playerstats.Stats{}, fmt.Errorf("upsert player stats: %w", err)
	}
	return row, nil
}

// ResetAll zeroes every counter for the new season.
func (s *StatsService) ResetAll(ctx context.Context, actorID string) error {
	actor, err := requireManager(ctx, s.profiles, actorID, "reset stats")
	if err != nil {
		return err
	}
	if err := s.stats.ResetAll(ctx); err != nil {
		return fmt.Errorf("reset player stats: %w", err)
	}
	s.logger.InfoContext(ctx, "player stats reset", "actor_id", actor.ID)
	return nil
}
