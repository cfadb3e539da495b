package dto

type CreateLocationRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	IsActive *bool  `json:"is_active"`
}

type UpdateLocationRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	IsActive *bool  `json:"is_active"`
}
