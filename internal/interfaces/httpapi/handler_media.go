package httpapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/riskibarqy/teamtrack/internal/domain/media"
)

func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMedia")
	defer span.End()

	filter := r.URL.Query().Get("type")
	items, err := h.mediaService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list media failed", "filter", filter, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]mediaFileDTO, 0, len(items))
	for _, item := range items {
		out = append(out, mediaFileToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadMedia")
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

	item, err := h.mediaService.Upload(ctx, principal.UserID, upload)
	if err != nil {
		h.logger.WarnContext(ctx, "upload media failed", "user_id", principal.UserID, "file_name", upload.FileName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, mediaFileToDTO(item))
}

func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMedia")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	fileID := r.PathValue("fileID")
	if err := h.mediaService.Delete(ctx, principal.UserID, fileID); err != nil {
		h.logger.WarnContext(ctx, "delete media failed", "user_id", principal.UserID, "file_id", fileID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ServeFile streams a stored object. Buckets are public like the URLs stored on rows.
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ServeFile")
	defer span.End()

	bucket := r.PathValue("bucket")
	objectPath := r.PathValue("path")
	obj, err := h.mediaService.Open(ctx, bucket, objectPath)
	if err != nil {
		h.logger.WarnContext(ctx, "serve file failed", "bucket", bucket, "path", objectPath, "error", err)
		writeError(ctx, w, err)
		return
	}
	defer func() {
		_ = obj.Body.Close()
	}()

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	cacheControl := "public, max-age=3600"
	if bucket == media.BucketAvatars {
		cacheControl = "public, max-age=300"
	}
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, obj.Body); err != nil {
		h.logger.WarnContext(ctx, "stream file failed", "bucket", bucket, "path", objectPath, "error", err)
	}
}
