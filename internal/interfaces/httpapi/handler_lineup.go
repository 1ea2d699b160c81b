package httpapi

import (
	"net/http"

	"github.com/riskibarqy/teamtrack/internal/domain/formation"
	"github.com/riskibarqy/teamtrack/internal/usecase"
)

type saveMatchLineupRequest struct {
	Formation     string   `json:"formation" validate:"omitempty,max=16"`
	StarterIDs    []string `json:"starter_ids" validate:"required,max=11,dive,required"`
	SubstituteIDs []string `json:"substitute_ids" validate:"omitempty,dive,required"`
}

type previewLineupRequest struct {
	Formation     string   `json:"formation" validate:"omitempty,max=16"`
	FromFormation string   `json:"from_formation" validate:"omitempty,max=16"`
	SelectedIDs   []string `json:"selected_ids" validate:"omitempty,dive,required"`
	ToggleID      string   `json:"toggle_id" validate:"omitempty,max=64"`
}

type saveStartingPicksRequest struct {
	PlayerIDs []string `json:"player_ids" validate:"omitempty,dive,required"`
}

func (h *Handler) ListFormations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFormations")
	defer span.End()

	items := formation.All()
	out := make([]formationDTO, 0, len(items))
	for _, item := range items {
		out = append(out, formationToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMatchBuilder(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchBuilder")
	defer span.End()

	builder, err := h.lineupService.NextMatchBuilder(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get match builder failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchBuilderToDTO(builder))
}

func (h *Handler) GetMatchLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchLineup")
	defer span.End()

	eventID := r.PathValue("eventID")
	item, exists, err := h.lineupService.GetMatchLineup(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match lineup failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchLineupToDTO(item))
}

func (h *Handler) SaveMatchLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMatchLineup")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req saveMatchLineupRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	eventID := r.PathValue("eventID")
	item, err := h.lineupService.SaveMatchLineup(ctx, principal.UserID, usecase.SaveMatchLineupInput{
		EventID:       eventID,
		Formation:     req.Formation,
		StarterIDs:    req.StarterIDs,
		SubstituteIDs: req.SubstituteIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save match lineup failed", "user_id", principal.UserID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchLineupToDTO(item))
}

func (h *Handler) PreviewLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewLineup")
	defer span.End()

	var req previewLineupRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	preview, err := h.lineupService.PreviewLineup(ctx, usecase.PreviewLineupInput{
		Formation:     req.Formation,
		FromFormation: req.FromFormation,
		SelectedIDs:   req.SelectedIDs,
		ToggleID:      req.ToggleID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "preview lineup failed", "formation", req.Formation, "toggle_id", req.ToggleID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupPreviewToDTO(preview))
}

func (h *Handler) ListStartingPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStartingPicks")
	defer span.End()

	eventID := r.PathValue("eventID")
	items, err := h.lineupService.ListStartingPicks(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "list starting picks failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, startingPicksToDTO(items))
}

func (h *Handler) SaveStartingPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveStartingPicks")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req saveStartingPicksRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	eventID := r.PathValue("eventID")
	items, err := h.lineupService.SaveStartingPicks(ctx, principal.UserID, eventID, req.PlayerIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "save starting picks failed", "user_id", principal.UserID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, startingPicksToDTO(items))
}
