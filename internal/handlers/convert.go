package handlers

import (
	"time"

	"github.com/google/uuid"

	"BOOKING_BACK-END/internal/countries"
	"BOOKING_BACK-END/internal/dto"
	"BOOKING_BACK-END/internal/models"
)

func toAccountResponse(a models.Account) dto.AccountResponse {
	out := dto.AccountResponse{ID: a.ID.String(), Email: a.Email}
	if !a.CreatedAt.IsZero() {
		out.CreatedAt = a.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func toProfileResponse(p models.Profile, avatarURL string) dto.ProfileResponse {
	out := dto.ProfileResponse{
		ID:              p.ID.String(),
		FullName:        p.FullName,
		Role:            string(p.Role),
		PhonePrefix:     p.PhonePrefix,
		PhoneNumber:     p.PhoneNumber,
		Country:         p.Country,
		City:            p.City,
		AddressLine:     p.AddressLine,
		PostalCode:      p.PostalCode,
		PostalLabel:     countries.PostalLabel(p.Country),
		AvatarURL:       avatarURL,
		HasAvatar:       p.AvatarPath != "",
		PhoneDisplay:    p.PhoneDisplay(),
		LocationDisplay: p.LocationDisplay(),
	}
	if !p.UpdatedAt.IsZero() {
		out.UpdatedAt = p.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func toProviderItem(p models.Profile) dto.ProviderItem {
	return dto.ProviderItem{ID: p.ID.String(), FullName: p.FullName, LocationDisplay: p.LocationDisplay()}
}

// toRequestResponse renders r for viewer. Allowed statuses are only listed
// for the provider, the one party allowed to move it.
func toRequestResponse(r models.ServiceRequest, viewer uuid.UUID, counterpart string) dto.ServiceRequestResponse {
	out := dto.ServiceRequestResponse{
		ID:           r.ID.String(),
		ClientID:     r.ClientID.String(),
		ProviderID:   r.ProviderID.String(),
		Counterpart:  counterpart,
		RequestedFor: r.RequestedFor.UTC().Format(time.RFC3339),
		Note:         r.Note,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if viewer == r.ProviderID {
		for _, s := range r.Status.Next() {
			out.AllowedStatus = append(out.AllowedStatus, string(s))
		}
	}
	return out
}

func toNotificationItem(n models.Notification) dto.NotificationItem {
	item := dto.NotificationItem{
		ID:        n.ID.String(),
		Type:      string(n.Type),
		Title:     n.Title,
		Data:      n.Data,
		ActionURL: n.ActionURL,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
	if n.Message != nil {
		item.Message = *n.Message
	}
	return item
}
