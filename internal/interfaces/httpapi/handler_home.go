package httpapi

import "net/http"

func (h *Handler) GetHome(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHome")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	home, err := h.homeService.Get(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get home failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, homeToDTO(home))
}
