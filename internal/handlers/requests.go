package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"BOOKING_BACK-END/internal/dto"
	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/services/requests"
	"BOOKING_BACK-END/internal/utils"
)

// NameSource looks up display names of request counterparts.
type NameSource interface {
	Names(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// RequestsHandler serves service request booking and the provider's decisions
type RequestsHandler struct {
	log      *zap.Logger
	requests *requests.Service
	names    NameSource
}

func NewRequestsHandler(log *zap.Logger, svc *requests.Service, names NameSource) *RequestsHandler {
	return &RequestsHandler{log: log, requests: svc, names: names}
}

// CreateRequest books a provider
// @Summary Create a service request
// @Description The caller must be a client. requested_for accepts RFC3339, YYYY-MM-DDTHH:MM (UTC) or YYYY-MM-DD and may not be in the past.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateServiceRequest true "Booking"
// @Success 201 {object} dto.ServiceRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/requests [post]
func (h *RequestsHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	account, ok := accountFromRequest(w, r)
	if !ok {
		return
	}

	var req dto.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_input", "Invalid request body")
		return
	}
	providerID, err := uuid.Parse(req.ProviderID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_input", "provider_id must be a valid UUID")
		return
	}

	created, err := h.requests.Create(r.Context(), account.ID, providerID, req.RequestedFor, req.Note)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated,
		toRequestResponse(created, account.ID, h.counterpartName(r.Context(), created, account.ID)))
}

// ListRequests returns the requests the caller is a party to, newest first
// @Summary List my service requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ServiceRequestsListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/requests [get]
func (h *RequestsHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	account, ok := accountFromRequest(w, r)
	if !ok {
		return
	}

	list, err := h.requests.ListVisible(r.Context(), account.ID)
	if err != nil {
		h.log.Error("failed to list requests", zap.Stringer("account_id", account.ID), zap.Error(err))
		utils.WriteAppError(w, err)
		return
	}

	others := make([]uuid.UUID, 0, len(list))
	for _, sr := range list {
		others = append(others, counterpartID(sr, account.ID))
	}
	names, err := h.names.Names(r.Context(), others)
	if err != nil {
		h.log.Warn("counterpart names unavailable", zap.Stringer("account_id", account.ID), zap.Error(err))
		names = nil
	}

	items := make([]dto.ServiceRequestResponse, 0, len(list))
	for _, sr := range list {
		items = append(items, toRequestResponse(sr, account.ID, names[counterpartID(sr, account.ID)]))
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ServiceRequestsListResponse{Requests: items})
}

// GetRequest returns one request the caller is a party to
// @Summary Get a service request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.ServiceRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/requests/{id} [get]
func (h *RequestsHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	account, ok := accountFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := requestIDParam(w, r)
	if !ok {
		return
	}

	sr, err := h.requests.Get(r.Context(), id, account.ID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toRequestResponse(sr, account.ID, h.counterpartName(r.Context(), sr, account.ID)))
}

// TransitionRequest moves a request to a new status
// @Summary Accept, reject or complete a request
// @Description Only the request's provider may do this. pending can become accepted or rejected, accepted can become done.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body dto.TransitionRequest true "Target status"
// @Success 200 {object} dto.ServiceRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requests/{id}/status [post]
func (h *RequestsHandler) TransitionRequest(w http.ResponseWriter, r *http.Request) {
	account, ok := accountFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := requestIDParam(w, r)
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_input", "Invalid request body")
		return
	}

	updated, err := h.requests.Transition(r.Context(), id, account.ID, req.Status)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toRequestResponse(updated, account.ID, h.counterpartName(r.Context(), updated, account.ID)))
}

func requestIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_input", "request id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func counterpartID(sr models.ServiceRequest, viewer uuid.UUID) uuid.UUID {
	if sr.ProviderID == viewer {
		return sr.ClientID
	}
	return sr.ProviderID
}

// counterpartName is best effort; a missing profile renders as an empty name.
func (h *RequestsHandler) counterpartName(ctx context.Context, sr models.ServiceRequest, viewer uuid.UUID) string {
	other := counterpartID(sr, viewer)
	names, err := h.names.Names(ctx, []uuid.UUID{other})
	if err != nil {
		return ""
	}
	return names[other]
}
