package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/teamtrack/internal/domain/availability"
	"github.com/riskibarqy/teamtrack/internal/domain/event"
	"github.com/riskibarqy/teamtrack/internal/domain/lineup"
	"github.com/riskibarqy/teamtrack/internal/domain/notification"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
	"github.com/riskibarqy/teamtrack/internal/infrastructure/repository/memory"
	eventmock "github.com/riskibarqy/teamtrack/internal/mocks/domain/event"
	profilemock "github.com/riskibarqy/teamtrack/internal/mocks/domain/profile"
	idgen "github.com/riskibarqy/teamtrack/internal/platform/id"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestEventService_Create_ForbiddenForPlayerUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eventRepo := eventmock.NewRepository(t)
	profileRepo := profilemock.NewRepository(t)

	profileRepo.
		On("GetByID", mock.Anything, "player-1").
		Return(playerProfile("player-1"), true, nil).
		Once()

	service := NewEventService(eventRepo, memory.NewAvailabilityRepository(), memory.NewLineupRepository(), memory.NewStartingPickRepository(), profileRepo, nil, idgen.NewSequence("evt"), logging.NewNop(), newTestClock())
	_, err := service.Create(ctx, "player-1", EventInput{Title: "Training", Type: "training", EventDate: testNow.Add(time.Hour)})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestEventService_Create_NotifiesTeamUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eventRepo := eventmock.NewRepository(t)
	profileRepo := profilemock.NewRepository(t)
	notifier := &recordingNotifier{}

	profileRepo.
		On("GetByID", mock.Anything, "coach").
		Return(managerProfile("coach"), true, nil).
		Once()
	eventRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(item event.Event) bool {
			return item.ID == "evt-1" &&
				item.Type == event.TypeTraining &&
				item.CreatedBy == "coach" &&
				item.Opponent == "" &&
				item.CreatedAt.Equal(testNow)
		})).
		Return(nil).
		Once()

	service := NewEventService(eventRepo, memory.NewAvailabilityRepository(), memory.NewLineupRepository(), memory.NewStartingPickRepository(), profileRepo, notifier, idgen.NewSequence("evt"), logging.NewNop(), newTestClock())
	created, err := service.Create(ctx, "coach", EventInput{
		Title:     "  Friday training ",
		Type:      "training",
		EventDate: testNow.Add(48 * time.Hour),
		Opponent:  "ignored for training",
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if created.Title != "Friday training" {
		t.Fatalf("expected trimmed title, got %q", created.Title)
	}

	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected one notification fan-out, got %d", len(sent))
	}
	if sent[0].ExceptUserID != "" || sent[0].Kind != notification.TypeEvent {
		t.Fatalf("unexpected notification: %+v", sent[0])
	}
}

func TestEventService_Create_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	profiles := seededProfiles(managerProfile("coach"))
	service := NewEventService(memory.NewEventRepository(nil), memory.NewAvailabilityRepository(), memory.NewLineupRepository(), memory.NewStartingPickRepository(), profiles, nil, idgen.NewSequence("evt"), logging.NewNop(), newTestClock())

	cases := []EventInput{
		{Title: "", Type: "match", EventDate: testNow},
		{Title: "Match", Type: "match"},
		{Title: "Match", Type: "tournament", EventDate: testNow},
	}
	for _, input := range cases {
		if _, err := service.Create(context.Background(), "coach", input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", input, err)
		}
	}
}

func TestEventService_RecordScore_DerivesResultForAwayGameUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eventRepo := eventmock.NewRepository(t)
	profileRepo := profilemock.NewRepository(t)

	match := event.Event{ID: "m1", Title: "Away at Hillside", Type: event.TypeMatch, EventDate: testNow.Add(-time.Hour), IsHomeGame: false}
	profileRepo.
		On("GetByID", mock.Anything, "coach").
		Return(managerProfile("coach"), true, nil).
		Once()
	eventRepo.
		On("GetByID", mock.Anything, "m1").
		Return(match, true, nil).
		Once()
	eventRepo.
		On("Update", mock.Anything, mock.MatchedBy(func(item event.Event) bool {
			return item.Result == event.ResultLoss && *item.HomeScore == 2 && *item.AwayScore == 1
		})).
		Return(nil).
		Once()

	service := NewEventService(eventRepo, memory.NewAvailabilityRepository(), memory.NewLineupRepository(), memory.NewStartingPickRepository(), profileRepo, nil, idgen.NewSequence("evt"), logging.NewNop(), newTestClock())
	got, err := service.RecordScore(ctx, "coach", "m1", 2, 1)
	if err != nil {
		t.Fatalf("record score: %v", err)
	}
	if got.Result != event.ResultLoss {
		t.Fatalf("expected loss for away side conceding more, got %s", got.Result)
	}
}

func TestEventService_RecordScore_RejectsTraining(t *testing.T) {
	t.Parallel()

	events := memory.NewEventRepository([]event.Event{{ID: "t1", Title: "Training", Type: event.TypeTraining, EventDate: testNow}})
	service := NewEventService(events, memory.NewAvailabilityRepository(), memory.NewLineupRepository(), memory.NewStartingPickRepository(), seededProfiles(managerProfile("coach")), nil, idgen.NewSequence("evt"), logging.NewNop(), newTestClock())

	if _, err := service.RecordScore(context.Background(), "coach", "t1", 1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.RecordScore(context.Background(), "coach", "t1", -1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative score, got %v", err)
	}
}

func TestEventService_List_FiltersAndCountsAvailability(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	events := memory.NewEventRepository([]event.Event{
		{ID: "past-old", Title: "Old", Type: event.TypeMatch, EventDate: testNow.Add(-72 * time.Hour)},
		{ID: "past-new", Title: "Recent", Type: event.TypeMatch, EventDate: testNow.Add(-24 * time.Hour)},
		{ID: "soon", Title: "Soon", Type: event.TypeTraining, EventDate: testNow.Add(24 * time.Hour)},
		{ID: "later", Title: "Later", Type: event.TypeMatch, EventDate: testNow.Add(96 * time.Hour)},
	})
	availabilityRepo := memory.NewAvailabilityRepository()
	for _, row := range []availability.Availability{
		{EventID: "soon", UserID: "a", Status: availability.StatusAvailable},
		{EventID: "soon", UserID: "b", Status: availability.StatusMaybe},
		{EventID: "soon", UserID: "c", Status: availability.StatusAvailable},
	} {
		if err := availabilityRepo.Upsert(ctx, row); err != nil {
			t.Fatalf("seed availability: %v", err)
		}
	}

	service := NewEventService(events, availabilityRepo, memory.NewLineupRepository(), memory.NewStartingPickRepository(), seededProfiles(), nil, idgen.NewSequence("evt"), logging.NewNop(), newTestClock())

	upcoming, err := service.List(ctx, event.FilterUpcoming)
	if err != nil {
		t.Fatalf("list upcoming: %v", err)
	}
	if len(upcoming) != 2 || upcoming[0].Event.ID != "soon" || upcoming[1].Event.ID != "later" {
		t.Fatalf("unexpected upcoming order: %+v", upcoming)
	}
	if upcoming[0].Availability.Available != 2 || upcoming[0].Availability.Total != 3 {
		t.Fatalf("unexpected availability summary: %+v", upcoming[0].Availability)
	}

	past, err := service.List(ctx, event.FilterPast)
	if err != nil {
		t.Fatalf("list past: %v", err)
	}
	if len(past) != 2 || past[0].Event.ID != "past-new" {
		t.Fatalf("expected past events newest first, got %+v", past)
	}

	all, err := service.List(ctx, event.FilterAll)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 4 || all[0].Event.ID != "past-old" {
		t.Fatalf("expected all events ascending, got %+v", all)
	}
}

func TestEventService_Delete_RemovesEventRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	events := memory.NewEventRepository([]event.Event{{ID: "e1", Title: "Match", Type: event.TypeMatch, EventDate: testNow}})
	availabilityRepo := memory.NewAvailabilityRepository()
	if err := availabilityRepo.Upsert(ctx, availability.Availability{EventID: "e1", UserID: "p1", Status: availability.StatusAvailable}); err != nil {
		t.Fatalf("seed availability: %v", err)
	}
	lineups := memory.NewLineupRepository()
	if err := lineups.Upsert(ctx, lineup.MatchLineup{ID: "l1", EventID: "e1", Formation: "2-3-1"}); err != nil {
		t.Fatalf("seed lineup: %v", err)
	}
	picks := memory.NewStartingPickRepository()
	if err := picks.Replace(ctx, "e1", []lineup.StartingPick{{ID: "s1", EventID: "e1", PlayerID: "p1", IsStarting: true}}); err != nil {
		t.Fatalf("seed starting picks: %v", err)
	}
	profiles := seededProfiles(managerProfile("coach"), profile.Profile{ID: "p1", Role: profile.RolePlayer})
	service := NewEventService(events, availabilityRepo, lineups, picks, profiles, nil, idgen.NewSequence("evt"), logging.NewNop(), newTestClock())

	if err := service.Delete(ctx, "p1", "e1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for player delete, got %v", err)
	}
	if err := service.Delete(ctx, "coach", "e1"); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	if _, err := service.Get(ctx, "e1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	rows, err := availabilityRepo.ListByEvent(ctx, "e1")
	if err != nil {
		t.Fatalf("list availability: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected availability cleared, got %d rows", len(rows))
	}
	if _, exists, _ := lineups.GetByEvent(ctx, "e1"); exists {
		t.Fatalf("expected match lineup removed with its event")
	}
	if left, _ := picks.ListByEvent(ctx, "e1"); len(left) != 0 {
		t.Fatalf("expected starting picks removed with their event, got %+v", left)
	}
}

func TestEventService_NextMatchUsingMockery(t *testing.T) {
	t.Parallel()

	eventRepo := eventmock.NewRepository(t)
	eventRepo.
		On("NextFrom", mock.Anything, testNow, event.TypeMatch).
		Return(event.Event{ID: "next"}, true, nil).
		Once()

	service := NewEventService(eventRepo, memory.NewAvailabilityRepository(), memory.NewLineupRepository(), memory.NewStartingPickRepository(), profilemock.NewRepository(t), nil, idgen.NewSequence("evt"), logging.NewNop(), newTestClock())
	got, exists, err := service.NextMatch(context.Background())
	if err != nil || !exists || got.ID != "next" {
		t.Fatalf("unexpected next match: %+v exists=%v err=%v", got, exists, err)
	}
}
