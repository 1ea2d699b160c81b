package httpapi

import (
	"net/http"

	"github.com/riskibarqy/teamtrack/internal/usecase"
)

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

type announcementRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"omitempty,max=8000"`
	Priority string `json:"priority" validate:"omitempty,oneof=normal high"`
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMessages")
	defer span.End()

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.chatService.ListMessages(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list messages failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]messageDTO, 0, len(items))
	for _, item := range items {
		out = append(out, messageToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SendMessage")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.chatService.SendMessage(ctx, principal.UserID, req.Content)
	if err != nil {
		h.logger.WarnContext(ctx, "send message failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, messageToDTO(item))
}

func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMessage")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	messageID := r.PathValue("messageID")
	if err := h.chatService.DeleteMessage(ctx, principal.UserID, messageID); err != nil {
		h.logger.WarnContext(ctx, "delete message failed", "user_id", principal.UserID, "message_id", messageID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAnnouncements")
	defer span.End()

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.chatService.ListAnnouncements(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list announcements failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]announcementDTO, 0, len(items))
	for _, item := range items {
		out = append(out, announcementToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) PostAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PostAnnouncement")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req announcementRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.chatService.PostAnnouncement(ctx, principal.UserID, usecase.AnnouncementInput{
		Title:    req.Title,
		Content:  req.Content,
		Priority: req.Priority,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "post announcement failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, announcementToDTO(item))
}

func (h *Handler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteAnnouncement")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	announcementID := r.PathValue("announcementID")
	if err := h.chatService.DeleteAnnouncement(ctx, principal.UserID, announcementID); err != nil {
		h.logger.WarnContext(ctx, "delete announcement failed", "user_id", principal.UserID, "announcement_id", announcementID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
