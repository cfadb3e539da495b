package model

import "time"

// User is a POS operator identified by username + hashed PIN.
// LocationID is optional at registration time, but login requires it:
// a user without an assigned location cannot open a session.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"uniqueIndex;not null" json:"username"`
	PinHash    string    `gorm:"not null" json:"-"`
	FullName   string    `gorm:"not null" json:"full_name"`
	LocationID *uint     `gorm:"index" json:"location_id"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Location *Location `gorm:"foreignKey:LocationID" json:"-"`
}
