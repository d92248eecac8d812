package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationBookingRequested NotificationType = "booking_requested"
	NotificationBookingAccepted  NotificationType = "booking_accepted"
	NotificationBookingRejected  NotificationType = "booking_rejected"
	NotificationBookingCompleted NotificationType = "booking_completed"
)

// Valid reports whether t is one of the known notification types.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationBookingRequested, NotificationBookingAccepted,
		NotificationBookingRejected, NotificationBookingCompleted:
		return true
	}
	return false
}

// Notification is a message addressed to one account
type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   *string          `json:"message,omitempty" db:"message"`
	Data      map[string]any   `json:"data,omitempty" db:"data"`
	ActionURL *string          `json:"action_url,omitempty" db:"action_url"`
	Read      bool             `json:"read" db:"read"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// NotificationFilter narrows a notification listing.
type NotificationFilter struct {
	UnreadOnly bool
	Type       NotificationType
	Limit      int
	Offset     int
}
