package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/teamtrack/internal/domain/media"
	"github.com/riskibarqy/teamtrack/internal/domain/realtime"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
	"github.com/riskibarqy/teamtrack/internal/usecase"
)

const maxJSONBodyBytes = 1 << 20

// RealtimeServer upgrades an authenticated request into a channel subscription.
type RealtimeServer interface {
	Serve(w http.ResponseWriter, r *http.Request, userID string, channel realtime.Channel) error
}

type Services struct {
	Auth          *usecase.AuthService
	Profiles      *usecase.ProfileService
	Events        *usecase.EventService
	Availability  *usecase.AvailabilityService
	Squad         *usecase.SquadService
	Stats         *usecase.StatsService
	Lineups       *usecase.LineupService
	Chat          *usecase.ChatService
	Media         *usecase.MediaService
	Notifications *usecase.NotificationService
	Home          *usecase.HomeService
}

type Handler struct {
	authService         *usecase.AuthService
	profileService      *usecase.ProfileService
	eventService        *usecase.EventService
	availabilityService *usecase.AvailabilityService
	squadService        *usecase.SquadService
	statsService        *usecase.StatsService
	lineupService       *usecase.LineupService
	chatService         *usecase.ChatService
	mediaService        *usecase.MediaService
	notificationService *usecase.NotificationService
	homeService         *usecase.HomeService
	realtime            RealtimeServer
	maxUploadBytes      int64
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(services Services, realtimeServer RealtimeServer, maxUploadBytes int64, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = media.MaxFileSize + 1<<20
	}

	return &Handler{
		authService:         services.Auth,
		profileService:      services.Profiles,
		eventService:        services.Events,
		availabilityService: services.Availability,
		squadService:        services.Squad,
		statsService:        services.Stats,
		lineupService:       services.Lineups,
		chatService:         services.Chat,
		mediaService:        services.Media,
		notificationService: services.Notifications,
		homeService:         services.Home,
		realtime:            realtimeServer,
		maxUploadBytes:      maxUploadBytes,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest decodes a strict JSON body and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, out any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxJSONBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, out)
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

func queryBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(r.URL.Query().Get(key)))
	return err == nil && v
}
