package dto

// DashboardResponse is the signed-in home screen
type DashboardResponse struct {
	Profile       ProfileResponse          `json:"profile"`
	Requests      []ServiceRequestResponse `json:"requests"`
	Providers     []ProviderItem           `json:"providers,omitempty"`
	CanBook       bool                     `json:"can_book"`
	CanTransition bool                     `json:"can_transition"`
}
