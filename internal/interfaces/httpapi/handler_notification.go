package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/teamtrack/internal/domain/notification"
	"github.com/riskibarqy/teamtrack/internal/usecase"
)

type markNotificationsReadRequest struct {
	IDs   []string `json:"ids" validate:"omitempty,dive,required"`
	Types []string `json:"types" validate:"omitempty,dive,oneof=event lineup message announcement other"`
	All   bool     `json:"all"`
}

type unreadCountDTO struct {
	Unread int `json:"unread"`
}

type markedDTO struct {
	Updated int `json:"updated"`
}

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListNotifications")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	items, err := h.notificationService.List(ctx, principal.UserID, queryBool(r, "unread"))
	if err != nil {
		h.logger.WarnContext(ctx, "list notifications failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]notificationDTO, 0, len(items))
	for _, item := range items {
		out = append(out, notificationToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetUnreadNotificationCount(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUnreadNotificationCount")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "count unread notifications failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, unreadCountDTO{Unread: count})
}

// MarkNotificationsRead accepts exactly one of ids, types or all.
func (h *Handler) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkNotificationsRead")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req markNotificationsReadRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var (
		updated int
		err     error
	)
	switch {
	case req.All:
		updated, err = h.notificationService.MarkAllRead(ctx, principal.UserID)
	case len(req.IDs) > 0:
		updated, err = h.notificationService.MarkRead(ctx, principal.UserID, req.IDs)
	case len(req.Types) > 0:
		kinds := make([]notification.Type, 0, len(req.Types))
		for _, raw := range req.Types {
			kind, parseErr := notification.ParseType(raw)
			if parseErr != nil {
				writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, parseErr))
				return
			}
			kinds = append(kinds, kind)
		}
		updated, err = h.notificationService.MarkReadByTypes(ctx, principal.UserID, kinds)
	default:
		writeError(ctx, w, fmt.Errorf("%w: one of ids, types or all is required", usecase.ErrInvalidInput))
		return
	}
	if err != nil {
		h.logger.WarnContext(ctx, "mark notifications read failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, markedDTO{Updated: updated})
}
