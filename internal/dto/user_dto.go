package dto

type CreateUserRequest struct {
	Username   string `json:"username"  validate:"required,min=1,max=150"`
	PIN        string `json:"pin"       validate:"required,min=4"`
	FullName   string `json:"full_name" validate:"required,min=2,max=100"`
	LocationID *uint  `json:"location_id"`
	IsActive   *bool  `json:"is_active"`
}

// UpdateUserRequest: the PIN is re-hashed only when provided (min 4 chars);
// an empty PIN leaves the stored hash untouched.
type UpdateUserRequest struct {
	Username   string `json:"username"  validate:"required,min=1,max=150"`
	PIN        string `json:"pin"       validate:"omitempty,min=4"`
	FullName   string `json:"full_name" validate:"required,min=2,max=100"`
	LocationID *uint  `json:"location_id"`
	IsActive   *bool  `json:"is_active"`
}

// UserRow is one joined listing row. The PIN hash is deliberately absent.
type UserRow struct {
	ID           uint    `json:"id"`
	Username     string  `json:"username"`
	FullName     string  `json:"full_name"`
	LocationID   *uint   `json:"location_id"`
	IsActive     bool    `json:"is_active"`
	LocationName *string `json:"location_name"`
}
