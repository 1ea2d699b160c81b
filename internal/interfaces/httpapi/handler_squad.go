package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/teamtrack/internal/domain/playerstats"
	"github.com/riskibarqy/teamtrack/internal/usecase"
)

type playerRequest struct {
	FullName     string `json:"full_name" validate:"required,max=120"`
	Position     string `json:"position" validate:"omitempty,max=60"`
	JerseyNumber *int   `json:"jersey_number" validate:"omitempty,min=1,max=99"`
	AvatarURL    string `json:"avatar_url" validate:"omitempty,url"`
	ParentID     string `json:"parent_id" validate:"omitempty,max=64"`
}

func (r playerRequest) toInput() usecase.PlayerInput {
	return usecase.PlayerInput{
		FullName:     r.FullName,
		Position:     r.Position,
		JerseyNumber: r.JerseyNumber,
		AvatarURL:    r.AvatarURL,
		ParentID:     r.ParentID,
	}
}

type statsRequest struct {
	MatchesPlayed int `json:"matches_played" validate:"min=0"`
	Goals         int `json:"goals" validate:"min=0"`
	Assists       int `json:"assists" validate:"min=0"`
	YellowCards   int `json:"yellow_cards" validate:"min=0"`
	RedCards      int `json:"red_cards" validate:"min=0"`
	CleanSheets   int `json:"clean_sheets" validate:"min=0"`
	MinutesPlayed int `json:"minutes_played" validate:"min=0"`
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	items, err := h.squadService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(items))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	item, err := h.squadService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req playerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.squadService.Create(ctx, principal.UserID, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req playerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	playerID := r.PathValue("playerID")
	item, err := h.squadService.Update(ctx, principal.UserID, playerID, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "user_id", principal.UserID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	playerID := r.PathValue("playerID")
	if err := h.squadService.Delete(ctx, principal.UserID, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "user_id", principal.UserID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	key, err := playerstats.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	board, err := h.statsService.Leaderboard(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "sort", key, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(board))
}

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStats")
	defer span.End()

	playerID := r.PathValue("playerID")
	item, err := h.statsService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player stats failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statsToDTO(item, ""))
}

func (h *Handler) UpsertPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertPlayerStats")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req statsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	playerID := r.PathValue("playerID")
	item, err := h.statsService.Upsert(ctx, principal.UserID, playerID, usecase.StatsInput{
		MatchesPlayed: req.MatchesPlayed,
		Goals:         req.Goals,
		Assists:       req.Assists,
		YellowCards:   req.YellowCards,
		RedCards:      req.RedCards,
		CleanSheets:   req.CleanSheets,
		MinutesPlayed: req.MinutesPlayed,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert player stats failed", "user_id", principal.UserID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statsToDTO(item, ""))
}

func (h *Handler) ResetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetPlayerStats")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	if err := h.statsService.ResetAll(ctx, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "reset player stats failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
