package models

// DTOs shared by team and person identities.

type CreateIdentityRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateIdentityRequest struct {
	Name *string `json:"name,omitempty"`
}

// IdentityView decorates an identity with the display label computed from
// its most recently linked record.
type IdentityView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}
