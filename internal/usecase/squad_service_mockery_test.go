package usecase

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/riskibarqy/teamtrack/internal/domain/player"
	"github.com/riskibarqy/teamtrack/internal/infrastructure/repository/memory"
	playermock "github.com/riskibarqy/teamtrack/internal/mocks/domain/player"
	idgen "github.com/riskibarqy/teamtrack/internal/platform/id"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestSquadService_Create_PersistsPlayerAndEmptyStatsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	statsRepo := memory.NewPlayerStatsRepository(nil)
	jersey := 7

	playerRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(item player.Player) bool {
			return item.ID == "player-1" &&
				item.FullName == "Abe Lowe" &&
				item.ParentID == "parent-a" &&
				item.JerseyNumber != nil && *item.JerseyNumber == 7 &&
				item.CreatedAt.Equal(testNow)
		})).
		Return(nil).
		Once()

	profiles := seededProfiles(managerProfile("coach"), parentProfile("parent-a"))
	service := NewSquadService(playerRepo, statsRepo, profiles, idgen.NewSequence("player"), logging.NewNop(), newTestClock())
	created, err := service.Create(ctx, "coach", PlayerInput{FullName: " Abe Lowe ", Position: "Forward", JerseyNumber: &jersey, ParentID: "parent-a"})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if created.Position != "Forward" {
		t.Fatalf("unexpected position %q", created.Position)
	}

	stats, exists, err := statsRepo.GetByPlayerID(ctx, "player-1")
	if err != nil || !exists {
		t.Fatalf("expected empty stats row, exists=%v err=%v", exists, err)
	}
	if stats.Goals != 0 || stats.MatchesPlayed != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
	assertParentOf(t, profiles, "parent-a", "player-1")
}

func TestSquadService_Create_RejectionsUsingMockery(t *testing.T) {
	t.Parallel()

	jersey := 100
	cases := []struct {
		name    string
		actor   string
		input   PlayerInput
		wantErr error
	}{
		{name: "player actor", actor: "kid", input: PlayerInput{FullName: "Abe"}, wantErr: ErrForbidden},
		{name: "missing name", actor: "coach", input: PlayerInput{FullName: "  "}, wantErr: ErrInvalidInput},
		{name: "jersey out of range", actor: "coach", input: PlayerInput{FullName: "Abe", JerseyNumber: &jersey}, wantErr: ErrInvalidInput},
		{name: "parent is not a parent", actor: "coach", input: PlayerInput{FullName: "Abe", ParentID: "kid"}, wantErr: ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// No repository call is expected; the mock fails the test on any unexpected call.
			playerRepo := playermock.NewRepository(t)
			service := NewSquadService(playerRepo, memory.NewPlayerStatsRepository(nil), seededProfiles(managerProfile("coach"), playerProfile("kid")), idgen.NewSequence("player"), logging.NewNop(), newTestClock())

			_, err := service.Create(context.Background(), tc.actor, tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSquadService_Update_ParentEditsOwnChildOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	players := memory.NewPlayerRepository([]player.Player{
		{ID: "kid-a", FullName: "Abe", ParentID: "parent-a", CreatedAt: testNow, UpdatedAt: testNow},
		{ID: "kid-b", FullName: "Bea", ParentID: "parent-b", CreatedAt: testNow, UpdatedAt: testNow},
	})
	profiles := seededProfiles(managerProfile("coach"), parentProfile("parent-a", "kid-a"), parentProfile("parent-b", "kid-b"))
	service := NewSquadService(players, memory.NewPlayerStatsRepository(nil), profiles, idgen.NewSequence("player"), logging.NewNop(), newTestClock())

	updated, err := service.Update(ctx, "parent-a", "kid-a", PlayerInput{FullName: "Abe Lowe", Position: "Midfielder", ParentID: "parent-b"})
	if err != nil {
		t.Fatalf("parent update: %v", err)
	}
	if updated.FullName != "Abe Lowe" || updated.ParentID != "parent-a" {
		t.Fatalf("parent must not relink player, got %+v", updated)
	}

	if _, err := service.Update(ctx, "parent-a", "kid-b", PlayerInput{FullName: "Nope"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	relinked, err := service.Update(ctx, "coach", "kid-a", PlayerInput{FullName: "Abe Lowe", ParentID: "parent-b"})
	if err != nil {
		t.Fatalf("manager update: %v", err)
	}
	if relinked.ParentID != "parent-b" {
		t.Fatalf("manager should relink player, got %+v", relinked)
	}
	assertParentOf(t, profiles, "parent-a")
	assertParentOf(t, profiles, "parent-b", "kid-b", "kid-a")

	if _, err := service.Update(ctx, "coach", "kid-a", PlayerInput{FullName: "Abe Lowe"}); err != nil {
		t.Fatalf("manager unlink: %v", err)
	}
	assertParentOf(t, profiles, "parent-b", "kid-b")
}

func TestSquadService_DeleteUnlinksParent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	players := memory.NewPlayerRepository([]player.Player{
		{ID: "kid-a", FullName: "Abe", ParentID: "parent-a", CreatedAt: testNow, UpdatedAt: testNow},
		{ID: "kid-b", FullName: "Bea", ParentID: "parent-a", CreatedAt: testNow, UpdatedAt: testNow},
	})
	profiles := seededProfiles(managerProfile("coach"), parentProfile("parent-a", "kid-a", "kid-b"))
	service := NewSquadService(players, memory.NewPlayerStatsRepository(nil), profiles, idgen.NewSequence("player"), logging.NewNop(), newTestClock())

	if err := service.Delete(ctx, "coach", "kid-a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertParentOf(t, profiles, "parent-a", "kid-b")
}

func assertParentOf(t *testing.T, profiles *memory.ProfileRepository, parentID string, want ...string) {
	t.Helper()

	parent, exists, err := profiles.GetByID(context.Background(), parentID)
	if err != nil || !exists {
		t.Fatalf("get parent %s: exists=%v err=%v", parentID, exists, err)
	}
	if !slices.Equal(parent.ParentOf, want) {
		t.Fatalf("parent %s: expected parent_of %v, got %v", parentID, want, parent.ParentOf)
	}
}

func TestSquadService_ListOrdersByJerseyThenName(t *testing.T) {
	t.Parallel()

	nine, three := 9, 3
	players := memory.NewPlayerRepository([]player.Player{
		{ID: "a", FullName: "Zed"},
		{ID: "b", FullName: "Amy", JerseyNumber: &nine},
		{ID: "c", FullName: "Bob"},
		{ID: "d", FullName: "Cat", JerseyNumber: &three},
	})
	service := NewSquadService(players, memory.NewPlayerStatsRepository(nil), seededProfiles(), idgen.NewSequence("player"), logging.NewNop(), newTestClock())

	items, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"d", "b", "c", "a"}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, items[i].ID)
		}
	}
}

func TestSquadService_DeleteRemovesStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	players := memory.SeedPlayers(testNow)
	stats := memory.NewPlayerStatsRepository(memory.SeedPlayerStats(players, testNow))
	service := NewSquadService(memory.NewPlayerRepository(players), stats, seededProfiles(managerProfile("coach")), idgen.NewSequence("player"), logging.NewNop(), newTestClock())

	if err := service.Delete(ctx, "coach", "seed-player-01"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := service.Get(ctx, "seed-player-01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if _, exists, _ := stats.GetByPlayerID(ctx, "seed-player-01"); exists {
		t.Fatalf("expected stats row removed")
	}
	if err := service.Delete(ctx, "coach", "seed-player-01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
