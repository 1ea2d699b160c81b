package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamtrack/internal/domain/realtime"
	"github.com/riskibarqy/teamtrack/internal/infrastructure/auth"
	"github.com/riskibarqy/teamtrack/internal/infrastructure/pubsub"
	"github.com/riskibarqy/teamtrack/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/teamtrack/internal/infrastructure/storage"
	idgen "github.com/riskibarqy/teamtrack/internal/platform/id"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
	"github.com/riskibarqy/teamtrack/internal/usecase"
	"github.com/stretchr/testify/require"
)

var handlerTestNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

type stubRealtime struct{}

func (stubRealtime) Serve(w http.ResponseWriter, _ *http.Request, _ string, _ realtime.Channel) error {
	w.WriteHeader(http.StatusSwitchingProtocols)
	return nil
}

type apiEnvelope struct {
	APIVersion string          `json:"apiVersion"`
	Data       json.RawMessage `json:"data"`
	Error      *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	clock := clockwork.NewFakeClockAt(handlerTestNow)
	logger := logging.NewNop()
	players := memory.SeedPlayers(handlerTestNow)

	profiles := memory.NewProfileRepository(nil)
	events := memory.NewEventRepository(memory.SeedEvents(handlerTestNow))
	playerRepo := memory.NewPlayerRepository(players)
	statsRepo := memory.NewPlayerStatsRepository(memory.SeedPlayerStats(players, handlerTestNow))
	availabilityRepo := memory.NewAvailabilityRepository()
	lineupRepo := memory.NewLineupRepository()
	pickRepo := memory.NewStartingPickRepository()
	notifications := memory.NewNotificationRepository()
	broker := pubsub.NewBroker()
	ids := idgen.NewUUIDGenerator()

	tokens, err := auth.NewTokenManager(auth.TokenConfig{Secret: "handler-secret", Issuer: "teamtrack", TTL: time.Hour}, clock)
	require.NoError(t, err)
	objects, err := storage.NewLocalStorage(storage.LocalConfig{RootDir: t.TempDir(), PublicBaseURL: "http://api.test"}, logger)
	require.NoError(t, err)
	notifier, err := usecase.NewNotificationService(notifications, profiles, ids, logger, clock, 2)
	require.NoError(t, err)
	t.Cleanup(notifier.Close)

	services := Services{
		Auth:          usecase.NewAuthService(memory.NewCredentialRepository(), profiles, auth.NewBcryptHasher(4), tokens, ids, logger, clock),
		Profiles:      usecase.NewProfileService(profiles, playerRepo, objects, logger, clock),
		Events:        usecase.NewEventService(events, availabilityRepo, lineupRepo, pickRepo, profiles, notifier, ids, logger, clock),
		Availability:  usecase.NewAvailabilityService(events, availabilityRepo, playerRepo, profiles, clock),
		Squad:         usecase.NewSquadService(playerRepo, statsRepo, profiles, ids, logger, clock),
		Stats:         usecase.NewStatsService(statsRepo, playerRepo, profiles, logger, clock),
		Lineups:       usecase.NewLineupService(events, playerRepo, availabilityRepo, lineupRepo, pickRepo, profiles, notifier, ids, logger, clock),
		Chat:          usecase.NewChatService(memory.NewMessageRepository(), memory.NewAnnouncementRepository(), profiles, broker, notifier, ids, logger, clock),
		Media:         usecase.NewMediaService(memory.NewMediaRepository(), objects, profiles, ids, logger, clock),
		Notifications: notifier,
		Home:          usecase.NewHomeService(profiles, events, playerRepo, notifications, logger, clock),
	}

	return NewRouter(NewHandler(services, stubRealtime{}, 0, logger), tokens, logger, []string{"*"})
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env apiEnvelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func signUp(t *testing.T, router http.Handler, email, role string) (string, string) {
	t.Helper()

	body := `{"email":"` + email + `","password":"secret1","full_name":"Test ` + role + `","role":"` + role + `"}`
	rec, env := doJSON(t, router, http.MethodPost, "/v1/auth/sign-up", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var session sessionDTO
	require.NoError(t, json.Unmarshal(env.Data, &session))
	return session.AccessToken, session.Profile.ID
}

func TestHandler_SignUpRejectsInvalidPayloads(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doJSON(t, router, http.MethodPost, "/v1/auth/sign-up", "", `{"email":"nope","password":"secret1","full_name":"X"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalidInput", env.Error.Errors[0].Reason)

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/auth/sign-up", "", `{"email":"a@b.co","password":"secret1","full_name":"X","extra":true}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	signUp(t, router, "taken@example.com", "player")
	rec, env = doJSON(t, router, http.MethodPost, "/v1/auth/sign-up", "", `{"email":"taken@example.com","password":"secret1","full_name":"X"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "2.0", env.APIVersion)
}

func TestHandler_SignInAndProfile(t *testing.T) {
	router := newTestRouter(t)
	signUp(t, router, "kid@example.com", "player")

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/auth/sign-in", "", `{"email":"kid@example.com","password":"wrong!"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := doJSON(t, router, http.MethodPost, "/v1/auth/sign-in", "", `{"email":"kid@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var session sessionDTO
	require.NoError(t, json.Unmarshal(env.Data, &session))

	rec, env = doJSON(t, router, http.MethodPut, "/v1/profiles/me", session.AccessToken, `{"full_name":"Kid Kim","jersey_number":9}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var me profileDTO
	require.NoError(t, json.Unmarshal(env.Data, &me))
	require.Equal(t, "Kid Kim", me.FullName)
	require.NotNil(t, me.JerseyNumber)
	require.Equal(t, 9, *me.JerseyNumber)

	rec, _ = doJSON(t, router, http.MethodGet, "/v1/profiles/me", "not-a-token", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_ManagerOnlyEventCreation(t *testing.T) {
	router := newTestRouter(t)
	managerToken, _ := signUp(t, router, "coach@example.com", "manager")
	playerToken, _ := signUp(t, router, "kid@example.com", "player")

	body := `{"title":"Friendly","event_type":"match","event_date":"2026-03-20T10:00:00Z","opponent":"Rovers","is_home_game":true}`

	rec, env := doJSON(t, router, http.MethodPost, "/v1/events", playerToken, body)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "forbidden", env.Error.Errors[0].Reason)

	rec, env = doJSON(t, router, http.MethodPost, "/v1/events", managerToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created eventDTO
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Equal(t, "match", created.Type)

	rec, env = doJSON(t, router, http.MethodPut, "/v1/events/"+created.ID+"/score", managerToken, `{"home_score":2,"away_score":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var scored eventDTO
	require.NoError(t, json.Unmarshal(env.Data, &scored))
	require.Equal(t, "draw", scored.Result)

	rec, env = doJSON(t, router, http.MethodGet, "/v1/events?filter=upcoming", playerToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var upcoming []eventDTO
	require.NoError(t, json.Unmarshal(env.Data, &upcoming))
	require.NotEmpty(t, upcoming)

	rec, _ = doJSON(t, router, http.MethodGet, "/v1/events?filter=someday", playerToken, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_SaveLineupRejectsTooManyStarters(t *testing.T) {
	router := newTestRouter(t)
	managerToken, _ := signUp(t, router, "coach@example.com", "manager")

	ids := []string{
		"seed-player-01", "seed-player-02", "seed-player-03", "seed-player-04",
		"seed-player-05", "seed-player-06", "seed-player-07", "seed-player-08",
	}
	tooMany, err := json.Marshal(map[string]any{"formation": "2-3-1", "starter_ids": ids})
	require.NoError(t, err)

	rec, env := doJSON(t, router, http.MethodPut, "/v1/events/seed-event-03/lineup", managerToken, string(tooMany))
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	require.Equal(t, "invalidLineup", env.Error.Errors[0].Reason)

	exact, err := json.Marshal(map[string]any{"formation": "2-3-1", "starter_ids": ids[:7], "substitute_ids": ids[7:]})
	require.NoError(t, err)
	rec, env = doJSON(t, router, http.MethodPut, "/v1/events/seed-event-03/lineup", managerToken, string(exact))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var saved matchLineupDTO
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	require.Equal(t, "2-3-1", saved.Formation)
	require.Len(t, saved.Positions, 8)
	require.True(t, saved.Positions[7].IsSubstitute)

	rec, env = doJSON(t, router, http.MethodGet, "/v1/events/seed-event-03/lineup", managerToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	require.Equal(t, "seed-event-03", saved.EventID)

	rec, env = doJSON(t, router, http.MethodGet, "/v1/formations", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var formations []formationDTO
	require.NoError(t, json.Unmarshal(env.Data, &formations))
	require.Len(t, formations, 5)
}

func TestHandler_PreviewLineupTogglesWithinCapacity(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signUp(t, router, "coach@example.com", "manager")

	seven := []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"}
	full, err := json.Marshal(map[string]any{"formation": "2-3-1", "selected_ids": seven, "toggle_id": "p8"})
	require.NoError(t, err)

	rec, env := doJSON(t, router, http.MethodPost, "/v1/lineups/preview", token, string(full))
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	require.Equal(t, "invalidLineup", env.Error.Errors[0].Reason)
	require.Contains(t, env.Error.Message, "This formation allows 7 players")

	drop, err := json.Marshal(map[string]any{"formation": "2-3-1", "selected_ids": seven, "toggle_id": "p3"})
	require.NoError(t, err)
	rec, env = doJSON(t, router, http.MethodPost, "/v1/lineups/preview", token, string(drop))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var preview lineupPreviewDTO
	require.NoError(t, json.Unmarshal(env.Data, &preview))
	require.Equal(t, []string{"p1", "p2", "p4", "p5", "p6", "p7"}, preview.SelectedIDs)
	require.Len(t, preview.Positions, 6)
	require.Equal(t, 7, preview.Formation.Capacity)

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/lineups/preview", "", string(drop))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_ChatRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	token, userID := signUp(t, router, "kid@example.com", "player")

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/chat/messages", token, `{"content":"hello team"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := doJSON(t, router, http.MethodGet, "/v1/chat/messages?limit=10", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var messages []messageDTO
	require.NoError(t, json.Unmarshal(env.Data, &messages))
	require.Len(t, messages, 1)
	require.Equal(t, userID, messages[0].UserID)
	require.NotNil(t, messages[0].Author)

	rec, _ = doJSON(t, router, http.MethodGet, "/v1/chat/messages?limit=ten", token, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UploadAndServeMedia(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signUp(t, router, "kid@example.com", "player")

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", `form-data; name="file"; filename="goal.png"`)
	partHeader.Set("Content-Type", "image/png")
	part, err := form.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.WriteField("caption", "Winner"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/media", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var env apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var uploaded mediaFileDTO
	require.NoError(t, json.Unmarshal(env.Data, &uploaded))
	require.Equal(t, "image", uploaded.FileType)
	require.True(t, strings.HasPrefix(uploaded.FileURL, "http://api.test/v1/files/media/"))

	filePath := strings.TrimPrefix(uploaded.FileURL, "http://api.test")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, filePath, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "png-bytes", rec.Body.String())
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec, _ = doJSON(t, router, http.MethodDelete, "/v1/media/"+uploaded.ID, token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandler_RealtimeRejectsUnknownChannel(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signUp(t, router, "kid@example.com", "player")

	rec, _ := doJSON(t, router, http.MethodGet, "/v1/realtime?channel=secrets&access_token="+token, "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, router, http.MethodGet, "/v1/realtime?channel=chat_messages", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
