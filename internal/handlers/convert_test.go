package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"BOOKING_BACK-END/internal/models"
)

func TestToRequestResponseAllowedStatus(t *testing.T) {
	client, provider := uuid.New(), uuid.New()
	r := models.ServiceRequest{
		ID:           uuid.New(),
		ClientID:     client,
		ProviderID:   provider,
		RequestedFor: time.Date(2030, 1, 2, 15, 0, 0, 0, time.UTC),
		Status:       models.StatusPending,
		CreatedAt:    time.Date(2029, 12, 1, 9, 0, 0, 0, time.UTC),
	}

	asProvider := toRequestResponse(r, provider, "Ana")
	assert.Equal(t, []string{"accepted", "rejected"}, asProvider.AllowedStatus)
	assert.Equal(t, "2030-01-02T15:00:00Z", asProvider.RequestedFor)
	assert.Equal(t, "Ana", asProvider.Counterpart)

	assert.Empty(t, toRequestResponse(r, client, "Bruno").AllowedStatus)

	r.Status = models.StatusDone
	assert.Empty(t, toRequestResponse(r, provider, "").AllowedStatus)
}

func TestToProfileResponse(t *testing.T) {
	p := models.Profile{
		ID:          uuid.New(),
		FullName:    "Ana Souza",
		Role:        models.RoleClient,
		Country:     "GB",
		City:        "Leeds",
		PhonePrefix: "+44",
		PhoneNumber: "7700 900123",
		AvatarPath:  "x/profile.png",
	}

	out := toProfileResponse(p, "https://cdn.test/a.png")
	assert.Equal(t, "Postcode", out.PostalLabel)
	assert.True(t, out.HasAvatar)
	assert.Equal(t, "https://cdn.test/a.png", out.AvatarURL)
	assert.Equal(t, p.PhoneDisplay(), out.PhoneDisplay)
	assert.Empty(t, out.UpdatedAt)
}

func TestToNotificationItemMessage(t *testing.T) {
	n := models.Notification{ID: uuid.New(), Type: models.NotificationBookingAccepted, Title: "Accepted"}
	assert.Empty(t, toNotificationItem(n).Message)

	msg := "see you then"
	n.Message = &msg
	assert.Equal(t, msg, toNotificationItem(n).Message)
}
