package repository

import (
	"context"
	"time"

	"github.com/lturcios/turicash-backend/internal/dto"
	"github.com/lturcios/turicash-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TicketQuery is the parsed, typed form of the history filter. Every
// predicate binds through a placeholder — no user input ever reaches the
// SQL text.
type TicketQuery struct {
	From       *time.Time
	To         *time.Time
	UserID     *uint
	LocationID *uint
}

// historyLimit caps GET /api/tickets result sets.
const historyLimit = 500

type TicketRepository interface {
	// DB exposes the handle so the service layer can open the per-batch
	// transaction that CreateHeaderTx / CreateItemsTx run inside.
	DB() *gorm.DB
	// CreateHeaderTx inserts one ticket header inside tx. Returns false
	// when the client-supplied local UUID already exists — the submission
	// was applied by an earlier sync and must be skipped, not re-inserted.
	CreateHeaderTx(ctx context.Context, tx *gorm.DB, t *model.Ticket) (bool, error)
	// CreateItemsTx inserts all line items of one ticket in a single
	// multi-row statement inside tx.
	CreateItemsTx(ctx context.Context, tx *gorm.DB, items []model.TicketItem) error
	List(ctx context.Context, q TicketQuery) ([]dto.TicketRow, error)
	ItemsByTicketID(ctx context.Context, ticketID uint) ([]model.TicketItem, error)
	CountAll(ctx context.Context) (int64, error)
}

type ticketRepo struct{ db *gorm.DB }

func NewTicketRepository(db *gorm.DB) TicketRepository { return &ticketRepo{db: db} }

func (r *ticketRepo) DB() *gorm.DB { return r.db }

func (r *ticketRepo) CreateHeaderTx(ctx context.Context, tx *gorm.DB, t *model.Ticket) (bool, error) {
	res := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "local_ticket_uuid"}},
			DoNothing: true,
		}).
		Create(t)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *ticketRepo) CreateItemsTx(ctx context.Context, tx *gorm.DB, items []model.TicketItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *ticketRepo) List(ctx context.Context, q TicketQuery) ([]dto.TicketRow, error) {
	rows := make([]dto.TicketRow, 0)
	query := r.db.WithContext(ctx).
		Table("tickets AS t").
		Select(`t.id, t.local_ticket_uuid, t.user_id, t.location_id,
		        t.correlative_number, t.total_amount, t.payment_type,
		        t.created_at_local, u.username, l.name AS location_name`).
		Joins("LEFT JOIN users u ON u.id = t.user_id").
		Joins("LEFT JOIN locations l ON l.id = t.location_id")

	if q.From != nil {
		query = query.Where("t.created_at_local >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("t.created_at_local <= ?", *q.To)
	}
	if q.UserID != nil {
		query = query.Where("t.user_id = ?", *q.UserID)
	}
	if q.LocationID != nil {
		query = query.Where("t.location_id = ?", *q.LocationID)
	}

	err := query.Order("t.created_at_local DESC").Limit(historyLimit).Scan(&rows).Error
	return rows, err
}

func (r *ticketRepo) ItemsByTicketID(ctx context.Context, ticketID uint) ([]model.TicketItem, error) {
	items := make([]model.TicketItem, 0)
	err := r.db.WithContext(ctx).Where("ticket_id = ?", ticketID).Find(&items).Error
	return items, err
}

func (r *ticketRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Ticket{}).Count(&n).Error
	return n, err
}
