package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/teamtrack/internal/domain/event"
	"github.com/riskibarqy/teamtrack/internal/usecase"
)

type eventRequest struct {
	Title      string    `json:"title" validate:"required,max=200"`
	EventType  string    `json:"event_type" validate:"required,oneof=match training other"`
	EventDate  time.Time `json:"event_date" validate:"required"`
	Location   string    `json:"location" validate:"omitempty,max=200"`
	Opponent   string    `json:"opponent" validate:"omitempty,max=120"`
	IsHomeGame bool      `json:"is_home_game"`
	Notes      string    `json:"notes" validate:"omitempty,max=2000"`
}

func (r eventRequest) toInput() usecase.EventInput {
	return usecase.EventInput{
		Title:      r.Title,
		Type:       r.EventType,
		EventDate:  r.EventDate,
		Location:   r.Location,
		Opponent:   r.Opponent,
		IsHomeGame: r.IsHomeGame,
		Notes:      r.Notes,
	}
}

type scoreRequest struct {
	HomeScore *int `json:"home_score" validate:"required,min=0"`
	AwayScore *int `json:"away_score" validate:"required,min=0"`
}

type availabilityRequest struct {
	Status string `json:"status" validate:"required,oneof=available unavailable maybe"`
	Note   string `json:"note" validate:"omitempty,max=500"`
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvents")
	defer span.End()

	filter, err := event.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	items, err := h.eventService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list events failed", "filter", filter, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]eventDTO, 0, len(items))
	for _, item := range items {
		out = append(out, eventWithAvailabilityToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEvent")
	defer span.End()

	eventID := r.PathValue("eventID")
	item, err := h.eventService.Get(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get event failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventWithAvailabilityToDTO(item))
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateEvent")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req eventRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.eventService.Create(ctx, principal.UserID, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "create event failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, eventToDTO(item))
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateEvent")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req eventRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	eventID := r.PathValue("eventID")
	item, err := h.eventService.Update(ctx, principal.UserID, eventID, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "update event failed", "user_id", principal.UserID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventToDTO(item))
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteEvent")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	eventID := r.PathValue("eventID")
	if err := h.eventService.Delete(ctx, principal.UserID, eventID); err != nil {
		h.logger.WarnContext(ctx, "delete event failed", "user_id", principal.UserID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RecordEventScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordEventScore")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req scoreRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	eventID := r.PathValue("eventID")
	item, err := h.eventService.RecordScore(ctx, principal.UserID, eventID, *req.HomeScore, *req.AwayScore)
	if err != nil {
		h.logger.WarnContext(ctx, "record event score failed", "user_id", principal.UserID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventToDTO(item))
}

func (h *Handler) ListEventAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEventAvailability")
	defer span.End()

	eventID := r.PathValue("eventID")
	items, err := h.availabilityService.ListByEvent(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "list availability failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]availabilityDTO, 0, len(items))
	for _, item := range items {
		dto := availabilityToDTO(item.Availability)
		dto.Responder = authorToDTO(item.Responder)
		out = append(out, dto)
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) RespondAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RespondAvailability")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req availabilityRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	eventID := r.PathValue("eventID")
	item, err := h.availabilityService.Respond(ctx, principal.UserID, usecase.RespondInput{
		EventID: eventID,
		Status:  req.Status,
		Note:    req.Note,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "respond availability failed", "user_id", principal.UserID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, availabilityToDTO(item))
}

func (h *Handler) ListAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAvailablePlayers")
	defer span.End()

	eventID := r.PathValue("eventID")
	items, err := h.availabilityService.AvailablePlayers(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "list available players failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(items))
}

func (h *Handler) GetNextEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNextEvent")
	defer span.End()

	var (
		item   event.Event
		exists bool
		err    error
	)
	if r.URL.Query().Get("type") == string(event.TypeMatch) {
		item, exists, err = h.eventService.NextMatch(ctx)
	} else {
		item, exists, err = h.eventService.NextEvent(ctx)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "get next event failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, optionalEventDTO(item, exists))
}

func (h *Handler) GetLastResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLastResult")
	defer span.End()

	item, exists, err := h.eventService.LastResult(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get last result failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, optionalEventDTO(item, exists))
}
