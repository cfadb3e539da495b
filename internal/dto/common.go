package dto

// MutationResponse acknowledges a create/update/delete with an optional
// new-row identifier.
type MutationResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id,omitempty"`
}
