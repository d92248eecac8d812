package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"BOOKING_BACK-END/internal/dto"
	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/services/notifications"
	"BOOKING_BACK-END/internal/utils"
)

type NotificationsHandler struct {
	log           *zap.Logger
	notifications *notifications.Service
}

func NewNotificationsHandler(log *zap.Logger, svc *notifications.Service) *NotificationsHandler {
	return &NotificationsHandler{log: log, notifications: svc}
}

// List returns the caller's notifications
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread"
// @Param type query string false "booking_requested, booking_accepted, booking_rejected or booking_completed"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.NotificationsListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/notifications [get]
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	account, ok := accountFromRequest(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	f := models.NotificationFilter{Type: models.NotificationType(q.Get("type"))}
	if v := q.Get("unread"); v != "" {
		unread, err := strconv.ParseBool(v)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_input", "unread must be true or false")
			return
		}
		f.UnreadOnly = unread
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_input", "limit must be a positive integer")
			return
		}
		f.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_input", "offset must be a non-negative integer")
			return
		}
		f.Offset = n
	}
	f = notifications.Page(f)

	list, unread, err := h.notifications.List(r.Context(), account.ID, f)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	items := make([]dto.NotificationItem, 0, len(list))
	for _, n := range list {
		items = append(items, toNotificationItem(n))
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.NotificationsListResponse{
		Notifications: items,
		Pagination: dto.NotificationsPagination{
			Count:       len(items),
			UnreadCount: unread,
			Limit:       f.Limit,
			Offset:      f.Offset,
		},
	})
}

// MarkRead marks one notification as read
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/notifications/{id}/read [post]
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	account, ok := accountFromRequest(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_input", "notification id must be a valid UUID")
		return
	}

	if err := h.notifications.MarkRead(r.Context(), account.ID, id); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{
		"message": "Notification marked as read",
	})
}

// MarkAllRead marks every unread notification of the caller as read
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MarkAllReadResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/notifications/read-all [post]
func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	account, ok := accountFromRequest(w, r)
	if !ok {
		return
	}

	n, err := h.notifications.MarkAllRead(r.Context(), account.ID)
	if err != nil {
		h.log.Error("failed to mark notifications read", zap.Stringer("account_id", account.ID), zap.Error(err))
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MarkAllReadResponse{Updated: n})
}
