package dto

// CreateServiceRequest represents the payload to book a provider
type CreateServiceRequest struct {
	ProviderID   string  `json:"provider_id"`
	RequestedFor string  `json:"requested_for"` // RFC3339, YYYY-MM-DDTHH:MM (UTC) or YYYY-MM-DD
	Note         *string `json:"note,omitempty"`
}

// TransitionRequest represents a status change by the provider
type TransitionRequest struct {
	Status string `json:"status"` // accepted | rejected | done
}

// ServiceRequestResponse represents a booking in responses
type ServiceRequestResponse struct {
	ID            string   `json:"id"`
	ClientID      string   `json:"client_id"`
	ProviderID    string   `json:"provider_id"`
	Counterpart   string   `json:"counterpart,omitempty"`
	RequestedFor  string   `json:"requested_for"`
	Note          *string  `json:"note,omitempty"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"created_at"`
	AllowedStatus []string `json:"allowed_status,omitempty"`
}

type ServiceRequestsListResponse struct {
	Requests []ServiceRequestResponse `json:"requests"`
}
