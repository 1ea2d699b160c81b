package httpapi

import (
	"net/http"

	"github.com/riskibarqy/teamtrack/internal/usecase"
)

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"full_name" validate:"required,max=120"`
	Role     string `json:"role" validate:"omitempty,oneof=manager player parent"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignUp")
	defer span.End()

	var req signUpRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.authService.SignUp(ctx, usecase.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "sign up failed", "email", req.Email, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, sessionToDTO(session))
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignIn")
	defer span.End()

	var req signInRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.authService.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "sign in failed", "email", req.Email, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(session))
}

// SignOut is stateless; the client discards its token.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignOut")
	defer span.End()

	if _, ok := requirePrincipal(ctx, w); !ok {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
