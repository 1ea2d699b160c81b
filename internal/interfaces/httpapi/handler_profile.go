package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/teamtrack/internal/usecase"
)

type updateProfileRequest struct {
	FullName     string `json:"full_name" validate:"required,max=120"`
	TeamName     string `json:"team_name" validate:"omitempty,max=120"`
	Position     string `json:"position" validate:"omitempty,max=60"`
	JerseyNumber *int   `json:"jersey_number" validate:"omitempty,min=1,max=99"`
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyProfile")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	item, err := h.profileService.GetMe(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get my profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProfile")
	defer span.End()

	profileID := r.PathValue("profileID")
	item, err := h.profileService.Get(ctx, profileID)
	if err != nil {
		h.logger.WarnContext(ctx, "get profile failed", "profile_id", profileID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMyProfile")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.profileService.UpdateMe(ctx, principal.UserID, usecase.UpdateProfileInput{
		FullName:     req.FullName,
		TeamName:     req.TeamName,
		Position:     req.Position,
		JerseyNumber: req.JerseyNumber,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update my profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) UploadMyAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadMyAvatar")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	upload, cleanup, err := h.readUpload(w, r, "file")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	defer cleanup()

	item, err := h.profileService.UploadAvatar(ctx, principal.UserID, upload)
	if err != nil {
		h.logger.WarnContext(ctx, "upload avatar failed", "user_id", principal.UserID, "file_name", upload.FileName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) ListMyChildren(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyChildren")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	items, err := h.profileService.ListMyChildren(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my children failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(items))
}

func (h *Handler) LinkChild(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LinkChild")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	playerID := r.PathValue("playerID")
	item, err := h.profileService.LinkPlayer(ctx, principal.UserID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "link child failed", "user_id", principal.UserID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) UnlinkChild(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnlinkChild")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	playerID := r.PathValue("playerID")
	item, err := h.profileService.UnlinkPlayer(ctx, principal.UserID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "unlink child failed", "user_id", principal.UserID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

// readUpload reads a single multipart file part. cleanup must always be called.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request, field string) (usecase.UploadInput, func(), error) {
	noop := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		return usecase.UploadInput{}, noop, fmt.Errorf("%w: invalid multipart form: %v", usecase.ErrInvalidInput, err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		_ = r.MultipartForm.RemoveAll()
		return usecase.UploadInput{}, noop, fmt.Errorf("%w: %s is required", usecase.ErrInvalidInput, field)
	}

	cleanup := func() {
		_ = file.Close()
		_ = r.MultipartForm.RemoveAll()
	}

	return usecase.UploadInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Caption:     r.FormValue("caption"),
		Body:        file,
	}, cleanup, nil
}
