package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the marketplace side an account acts on.
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
)

// ParseRole returns the role for a hint, or false when the hint is not a known role.
func ParseRole(hint string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(hint))) {
	case RoleClient:
		return RoleClient, true
	case RoleProvider:
		return RoleProvider, true
	default:
		return "", false
	}
}

// Profile represents a row of public.profiles, keyed by the account id
type Profile struct {
	ID          uuid.UUID `json:"id" db:"id"`
	FullName    string    `json:"full_name" db:"full_name"`
	Role        Role      `json:"role" db:"role"`
	PhonePrefix string    `json:"phone_prefix" db:"phone_prefix"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	Country     string    `json:"country" db:"country"`
	City        string    `json:"city" db:"city"`
	AddressLine string    `json:"address_line" db:"address_line"`
	PostalCode  string    `json:"postal_code" db:"postal_code"`
	AvatarPath  string    `json:"-" db:"avatar_path"` // storage key, never a fetchable URL
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// PhoneDisplay joins prefix and number the way the dashboard shows them.
func (p Profile) PhoneDisplay() string {
	prefix := strings.TrimSpace(p.PhonePrefix)
	number := strings.TrimSpace(p.PhoneNumber)
	switch {
	case prefix == "" && number == "":
		return ""
	case prefix == "":
		return number
	case number == "":
		return prefix
	default:
		return prefix + " " + number
	}
}

// LocationDisplay returns "City, Country" with empty parts dropped.
func (p Profile) LocationDisplay() string {
	parts := make([]string, 0, 2)
	if c := strings.TrimSpace(p.City); c != "" {
		parts = append(parts, c)
	}
	if c := strings.TrimSpace(p.Country); c != "" {
		parts = append(parts, c)
	}
	return strings.Join(parts, ", ")
}

// ProfileUpdate carries the editable attributes of a profile.
// A nil field keeps the stored value. id and role are deliberately absent.
type ProfileUpdate struct {
	FullName    *string
	Country     *string
	PhonePrefix *string
	PhoneNumber *string
	PostalCode  *string
	City        *string
	AddressLine *string
	AvatarPath  *string
}

// Apply returns p with every non-nil field of u copied over (trimmed).
func (u ProfileUpdate) Apply(p Profile) Profile {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&p.FullName, u.FullName)
	set(&p.Country, u.Country)
	set(&p.PhonePrefix, u.PhonePrefix)
	set(&p.PhoneNumber, u.PhoneNumber)
	set(&p.PostalCode, u.PostalCode)
	set(&p.City, u.City)
	set(&p.AddressLine, u.AddressLine)
	set(&p.AvatarPath, u.AvatarPath)
	return p
}
