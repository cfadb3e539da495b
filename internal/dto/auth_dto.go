package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	PIN      string `json:"pin"      validate:"required,min=4"`
}

type RegisterRequest struct {
	LocationID uint   `json:"location_id" validate:"required"`
	Username   string `json:"username"    validate:"required,min=1,max=150"`
	PIN        string `json:"pin"         validate:"required,min=4"`
	FullName   string `json:"full_name"   validate:"required,min=2,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UserSummary is the non-sensitive user projection returned on login.
// The PIN hash never appears here.
type UserSummary struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	LocationID   uint   `json:"location_id"`
	LocationName string `json:"location_name"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"userId"`
}
