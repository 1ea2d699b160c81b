package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/teamtrack/internal/config"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

func memoryConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		AppEnv:              config.EnvDev,
		ServiceName:         "teamtrack-api-test",
		HTTPAddr:            ":0",
		CORSAllowedOrigins:  []string{"*"},
		JWTSecret:           "test-secret",
		JWTIssuer:           "teamtrack",
		JWTTTL:              time.Hour,
		BcryptCost:          4,
		StorageDir:          t.TempDir(),
		PublicBaseURL:       "http://localhost:8080",
		NotificationWorkers: 2,
		ReadTimeout:         time.Second,
		WriteTimeout:        time.Second,
	}
}

func TestNew_MemoryModeServesAuthenticatedRoutes(t *testing.T) {
	a, err := New(t.Context(), memoryConfig(t), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := `{"email":"Coach@Example.com","password":"secret1","full_name":"Coach Kim","role":"manager"}`
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/sign-up", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	a.Server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var session struct {
		Data struct {
			AccessToken string `json:"access_token"`
			Profile     struct {
				Email string `json:"email"`
			} `json:"profile"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.NotEmpty(t, session.Data.AccessToken)
	require.Equal(t, "coach@example.com", session.Data.Profile.Email)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/players", nil)
	req.Header.Set("Authorization", "Bearer "+session.Data.AccessToken)
	a.Server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var players struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &players))
	require.NotEmpty(t, players.Data)
}

func TestNew_RejectsMissingToken(t *testing.T) {
	a, err := New(t.Context(), memoryConfig(t), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/home", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNew_RequiresHTTPAddr(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.HTTPAddr = ""
	_, err := New(t.Context(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestFormatDBQueryForTrace(t *testing.T) {
	got := formatDBQueryForTrace("  SELECT id\n\tFROM players\n  WHERE id = $1 ")
	require.Equal(t, "SELECT id FROM players WHERE id = $1", got)

	long := "SELECT " + strings.Repeat("x", maxTracedQueryLength+10)
	require.True(t, strings.HasSuffix(formatDBQueryForTrace(long), "..."))
	require.Len(t, formatDBQueryForTrace(long), maxTracedQueryLength+3)
}
