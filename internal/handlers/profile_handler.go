package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"BOOKING_BACK-END/internal/dto"
	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/services/avatars"
	"BOOKING_BACK-END/internal/services/profiles"
	"BOOKING_BACK-END/internal/utils"
)

// multipartOverhead is the room left for form boundaries and headers
// on top of the avatar itself.
const multipartOverhead = 1 << 20

// ProfileHandler serves the caller's own profile and avatar
type ProfileHandler struct {
	log      *zap.Logger
	profiles *profiles.Service
	avatars  *avatars.Service
	maxBytes int64
}

func NewProfileHandler(log *zap.Logger, p *profiles.Service, a *avatars.Service, maxAvatarBytes int64) *ProfileHandler {
	if maxAvatarBytes <= 0 {
		maxAvatarBytes = avatars.DefaultMaxBytes
	}
	return &ProfileHandler{log: log, profiles: p, avatars: a, maxBytes: maxAvatarBytes}
}

// GetProfile returns the caller's profile, creating it on first access
// @Summary Get my profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	account, ok := accountFromRequest(w, r)
	if !ok {
		return
	}

	p, err := h.profiles.EnsureProfile(r.Context(), account)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toProfileResponse(p, h.avatars.ResolveAvatar(r.Context(), p)))
}

// UpdateProfile applies a partial update to the caller's profile
// @Summary Update my profile
// @Description Omitted fields keep their value. Changing the country fills in its dialing prefix unless one is given.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProfileUpdateRequest true "Fields to change"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/profile [put]
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	account, ok := accountFromRequest(w, r)
	if !ok {
		return
	}

	var req dto.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_input", "Invalid request body")
		return
	}

	p, err := h.profiles.UpdateProfile(r.Context(), account.ID, models.ProfileUpdate{
		FullName:    req.FullName,
		Country:     req.Country,
		PhonePrefix: req.PhonePrefix,
		PhoneNumber: req.PhoneNumber,
		PostalCode:  req.PostalCode,
		City:        req.City,
		AddressLine: req.AddressLine,
	})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toProfileResponse(p, h.avatars.ResolveAvatar(r.Context(), p)))
}

// UploadAvatar stores a new avatar image and points the profile at it
// @Summary Upload my avatar
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "JPEG or PNG image"
// @Success 200 {object} dto.AvatarUploadResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 415 {object} dto.ErrorResponse
// @Router /api/profile/avatar [post]
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	account, ok := accountFromRequest(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxBytes + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.WriteErrorResponse(w, http.StatusRequestEntityTooLarge, "payload_too_large", "Avatar is too large")
			return
		}
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_input", "Expected a multipart form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_input", "avatar file is required")
		return
	}
	defer file.Close()

	// one byte past the limit is enough for the service to reject it
	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_input", "Failed to read avatar")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	// make sure the profile row exists before the upload points at it
	if _, err := h.profiles.EnsureProfile(r.Context(), account); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	key, err := h.avatars.StoreAvatar(r.Context(), account.ID, data, mimeType)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	p, err := h.profiles.SetAvatar(r.Context(), account.ID, key)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AvatarUploadResponse{
		AvatarPath: key,
		Profile:    toProfileResponse(p, h.avatars.ResolveAvatar(r.Context(), p)),
	})
}

// ListProviders returns the provider directory clients book from
// @Summary List providers
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProvidersListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/providers [get]
func (h *ProfileHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	if _, ok := accountFromRequest(w, r); !ok {
		return
	}

	list, err := h.profiles.ListProviders(r.Context())
	if err != nil {
		h.log.Error("failed to list providers", zap.Error(err))
		utils.WriteAppError(w, err)
		return
	}

	items := make([]dto.ProviderItem, 0, len(list))
	for _, p := range list {
		items = append(items, toProviderItem(p))
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ProvidersListResponse{Providers: items})
}
