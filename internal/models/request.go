package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a service request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusDone     Status = "done"
)

// transitions lists every legal edge; anything absent is refused.
var transitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusDone},
}

// ParseStatus maps a label onto a Status.
func ParseStatus(label string) (Status, bool) {
	switch s := Status(strings.ToLower(strings.TrimSpace(label))); s {
	case StatusPending, StatusAccepted, StatusRejected, StatusDone:
		return s, true
	default:
		return "", false
	}
}

// CanTransition reports whether from→to is an edge of the request graph.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// ServiceRequest represents one booking between a client and a provider
type ServiceRequest struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ClientID     uuid.UUID `json:"client_id" db:"client_id"`
	ProviderID   uuid.UUID `json:"provider_id" db:"provider_id"`
	RequestedFor time.Time `json:"requested_for" db:"requested_for"`
	Note         *string   `json:"note,omitempty" db:"note"`
	Status       Status    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Involves reports whether accountID is the client or the provider of r.
func (r ServiceRequest) Involves(accountID uuid.UUID) bool {
	return r.ClientID == accountID || r.ProviderID == accountID
}

// Next lists the statuses s may move to, in graph order.
func (s Status) Next() []Status {
	out := make([]Status, len(transitions[s]))
	copy(out, transitions[s])
	return out
}
