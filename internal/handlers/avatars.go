package handlers

import (
	"errors"
	"net/http"
	"path"

	"go.uber.org/zap"

	"BOOKING_BACK-END/internal/objectstore"
	"BOOKING_BACK-END/internal/objectstore/local"
	"BOOKING_BACK-END/internal/utils"
)

// AvatarObjectsHandler serves objects of the local store behind its signed read tokens
type AvatarObjectsHandler struct {
	log   *zap.Logger
	store *local.Store
}

func NewAvatarObjectsHandler(log *zap.Logger, store *local.Store) *AvatarObjectsHandler {
	return &AvatarObjectsHandler{log: log, store: store}
}

// Serve streams the object a read token grants
// @Summary Read a stored avatar
// @Tags profile
// @Produce image/jpeg,image/png
// @Param token query string true "Signed read token"
// @Success 200 {file} binary
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/avatars/object [get]
func (h *AvatarObjectsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	f, key, err := h.store.Open(r.URL.Query().Get("token"))
	switch {
	case errors.Is(err, local.ErrInvalidToken), errors.Is(err, local.ErrInvalidKey):
		utils.WriteErrorResponse(w, http.StatusForbidden, "unauthorized", "Invalid or expired link")
		return
	case errors.Is(err, objectstore.ErrObjectNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, "not_found", "Avatar not found")
		return
	case err != nil:
		h.log.Error("failed to open avatar", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.log.Error("failed to stat avatar", zap.String("key", key), zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}

	w.Header().Set("Cache-Control", "private, max-age=300")
	// ServeContent picks the content type from the key's extension
	http.ServeContent(w, r, path.Base(key), info.ModTime(), f)
}
