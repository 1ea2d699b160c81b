package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/teamtrack/internal/domain/realtime"
	"github.com/riskibarqy/teamtrack/internal/usecase"
)

func (h *Handler) Realtime(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Realtime")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}
	if h.realtime == nil {
		writeError(ctx, w, fmt.Errorf("%w: realtime feed is disabled", usecase.ErrDependencyUnavailable))
		return
	}

	channel, ok := realtime.ParseChannel(r.URL.Query().Get("channel"))
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: channel must be chat_messages or announcements", usecase.ErrInvalidInput))
		return
	}

	// The upgrader writes its own HTTP error on a failed handshake.
	if err := h.realtime.Serve(w, r.WithContext(ctx), principal.UserID, channel); err != nil {
		h.logger.WarnContext(ctx, "realtime upgrade failed", "user_id", principal.UserID, "channel", channel, "error", err)
	}
}
