package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Sync (write path) ───────────────────────────────────────────────────────

// TicketItemSubmission is one sale line inside a submitted ticket.
type TicketItemSubmission struct {
	ItemID    uint            `json:"itemId"    validate:"required"`
	Quantity  int             `json:"quantity"  validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"min=0"`
	ItemName  string          `json:"itemName"  validate:"required"`
}

// TicketSubmission is one client-accumulated sale. CreatedAtLocal is the
// device clock in epoch milliseconds; LocalUUID is the client-generated
// idempotency key.
type TicketSubmission struct {
	LocalUUID         string                 `json:"localUuid"         validate:"required"`
	UserID            uint                   `json:"userId"            validate:"required"`
	LocationID        uint                   `json:"locationId"        validate:"required"`
	CorrelativeNumber int                    `json:"correlativeNumber" validate:"required"`
	TotalAmount       decimal.Decimal        `json:"totalAmount"       validate:"required"`
	PaymentType       string                 `json:"paymentType"       validate:"required"`
	CreatedAtLocal    int64                  `json:"createdAtLocal"    validate:"required"`
	Items             []TicketItemSubmission `json:"items"             validate:"omitempty,dive"`
}

// SyncRequest holds the ordered batch flushed by the client's outbox.
type SyncRequest struct {
	Tickets []TicketSubmission `json:"tickets" validate:"required,min=1,dive"`
}

type SyncResponse struct {
	Message string `json:"message"`
}

// ─── History (read path) ─────────────────────────────────────────────────────

// TicketFilter is bound from the query string of GET /api/tickets.
// Dates are YYYY-MM-DD; date_to is inclusive of the whole day.
type TicketFilter struct {
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
	UserID     *uint  `form:"user_id"`
	LocationID *uint  `form:"location_id"`
}

// TicketRow is one joined history row: ticket columns plus the issuing
// username and location name.
type TicketRow struct {
	ID                uint            `json:"id"`
	LocalTicketUUID   string          `json:"local_ticket_uuid"`
	UserID            uint            `json:"user_id"`
	LocationID        uint            `json:"location_id"`
	CorrelativeNumber int             `json:"correlative_number"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	PaymentType       string          `json:"payment_type"`
	CreatedAtLocal    time.Time       `json:"created_at_local"`
	Username          string          `json:"username"`
	LocationName      string          `json:"location_name"`
}
