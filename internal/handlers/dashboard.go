package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"BOOKING_BACK-END/internal/dto"
	"BOOKING_BACK-END/internal/services/dashboard"
	"BOOKING_BACK-END/internal/utils"
)

type DashboardHandler struct {
	log        *zap.Logger
	controller *dashboard.Controller
}

func NewDashboardHandler(log *zap.Logger, c *dashboard.Controller) *DashboardHandler {
	return &DashboardHandler{log: log, controller: c}
}

// Dashboard renders the signed-in home screen
// @Summary Load the dashboard
// @Description Creates the caller's profile on first visit, then returns it with their requests. Clients also get the provider directory.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/dashboard [get]
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	account, ok := accountFromRequest(w, r)
	if !ok {
		return
	}

	d, err := h.controller.Load(r.Context(), account)
	if err != nil {
		h.log.Error("failed to load dashboard", zap.Stringer("account_id", account.ID), zap.Error(err))
		utils.WriteAppError(w, err)
		return
	}

	resp := dto.DashboardResponse{
		Profile:       toProfileResponse(d.Profile, d.AvatarURL),
		Requests:      make([]dto.ServiceRequestResponse, 0, len(d.Requests)),
		CanBook:       d.CanBook,
		CanTransition: d.CanTransition,
	}
	for _, sr := range d.Requests {
		resp.Requests = append(resp.Requests, toRequestResponse(sr, account.ID, d.Counterparts[counterpartID(sr, account.ID)]))
	}
	for _, p := range d.Providers {
		resp.Providers = append(resp.Providers, toProviderItem(p))
	}

	utils.WriteJSONResponse(w, http.StatusOK, resp)
}
