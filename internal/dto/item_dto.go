package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	Name       string          `json:"name"        validate:"required,min=1,max=150"`
	Price      decimal.Decimal `json:"price"       validate:"required,gt=0"`
	LocationID uint            `json:"location_id" validate:"required"`
	IconBase64 *string         `json:"icon_base64"`
}

// UpdateItemRequest: a nil IconBase64 keeps the stored icon instead of
// clearing it — the client only sends the payload when it changed.
type UpdateItemRequest struct {
	Name       string          `json:"name"        validate:"required,min=1,max=150"`
	Price      decimal.Decimal `json:"price"       validate:"required,gt=0"`
	LocationID uint            `json:"location_id" validate:"required"`
	IconBase64 *string         `json:"icon_base64"`
	IsActive   *bool           `json:"is_active"`
}

// ItemRow is one joined catalog row with the location name resolved.
type ItemRow struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	LocationID   uint            `json:"location_id"`
	IconBase64   *string         `json:"icon_base64"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	LocationName *string         `json:"location_name"`
}
