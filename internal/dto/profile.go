package dto

// ProfileResponse represents a profile with its displayable avatar URL
type ProfileResponse struct {
	ID              string `json:"id"`
	FullName        string `json:"full_name"`
	Role            string `json:"role"`
	PhonePrefix     string `json:"phone_prefix"`
	PhoneNumber     string `json:"phone_number"`
	Country         string `json:"country"`
	City            string `json:"city"`
	AddressLine     string `json:"address_line"`
	PostalCode      string `json:"postal_code"`
	PostalLabel     string `json:"postal_label"`
	AvatarURL       string `json:"avatar_url"`
	HasAvatar       bool   `json:"has_avatar"`
	PhoneDisplay    string `json:"phone_display"`
	LocationDisplay string `json:"location_display"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// ProfileUpdateRequest carries the editable profile fields.
// Omitted fields keep their stored value.
type ProfileUpdateRequest struct {
	FullName    *string `json:"full_name"`
	Country     *string `json:"country"`
	PhonePrefix *string `json:"phone_prefix"`
	PhoneNumber *string `json:"phone_number"`
	PostalCode  *string `json:"postal_code"`
	City        *string `json:"city"`
	AddressLine *string `json:"address_line"`
}

// AvatarUploadResponse is returned after an avatar upload
type AvatarUploadResponse struct {
	AvatarPath string          `json:"avatar_path"`
	Profile    ProfileResponse `json:"profile"`
}

// ProviderItem is one entry of the provider directory
type ProviderItem struct {
	ID              string `json:"id"`
	FullName        string `json:"full_name"`
	LocationDisplay string `json:"location_display"`
}

type ProvidersListResponse struct {
	Providers []ProviderItem `json:"providers"`
}
