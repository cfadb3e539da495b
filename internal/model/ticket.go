package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ticket is one sale record synced up from the mobile POS. Created only by
// the sync endpoint, never updated afterwards. LocalTicketUUID is the
// client-generated idempotency key: the unique index makes a retried batch
// a no-op instead of duplicating rows.
type Ticket struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	LocalTicketUUID   string          `gorm:"column:local_ticket_uuid;uniqueIndex;not null" json:"local_ticket_uuid"`
	UserID            uint            `gorm:"index;not null" json:"user_id"`
	LocationID        uint            `gorm:"index;not null" json:"location_id"`
	CorrelativeNumber int             `gorm:"not null" json:"correlative_number"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	PaymentType       string          `gorm:"type:varchar(20);not null" json:"payment_type"`
	// CreatedAtLocal is the sale instant on the device, mapped from epoch ms.
	CreatedAtLocal time.Time `gorm:"index;not null" json:"created_at_local"`
	CreatedAt      time.Time `json:"created_at"`

	// Line items are exclusively owned by their ticket.
	Items    []TicketItem `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	User     *User        `gorm:"foreignKey:UserID" json:"-"`
	Location *Location    `gorm:"foreignKey:LocationID" json:"-"`
}

// TicketItem is one immutable sale line. ItemName snapshots the catalog
// name at sale time so later renames don't rewrite history.
type TicketItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	TicketID  uint            `gorm:"index;not null" json:"ticket_id"`
	ItemID    uint            `gorm:"index;not null" json:"item_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	ItemName  string          `gorm:"not null" json:"item_name"`

	Item *Item `gorm:"foreignKey:ItemID" json:"-"`
}
