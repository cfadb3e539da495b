package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a sellable product tied to one location. IconBase64 holds an
// optional client-rendered icon; it can be large, so updates that omit it
// keep the stored value instead of clearing it.
type Item struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Name       string          `gorm:"index;not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	LocationID uint            `gorm:"index;not null" json:"location_id"`
	IconBase64 *string         `gorm:"type:text" json:"icon_base64"`
	IsActive   bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Location *Location `gorm:"foreignKey:LocationID" json:"-"`
}
