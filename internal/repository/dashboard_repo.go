package repository

import (
	"context"
	"slices"
	"time"

	"github.com/lturcios/turicash-backend/internal/dto"
	"github.com/lturcios/turicash-backend/internal/model"

	"gorm.io/gorm"
)

// DashboardQuery carries the parsed optional filters shared by the
// aggregation endpoints.
type DashboardQuery struct {
	LocationID *uint
	From       *time.Time
	To         *time.Time
	Limit      int
}

// DashboardRepository serves the read-only reporting projections. Pure
// aggregation queries over committed tickets — no state, no transactions.
type DashboardRepository interface {
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	SalesByPeriod(ctx context.Context, period string, q DashboardQuery) ([]dto.PeriodSalesRow, error)
	TopItems(ctx context.Context, q DashboardQuery) ([]dto.TopItemRow, error)
	SalesByLocation(ctx context.Context, q DashboardQuery) ([]dto.LocationSalesRow, error)
	SalesByUser(ctx context.Context, q DashboardQuery) ([]dto.UserSalesRow, error)
	PaymentMethods(ctx context.Context, q DashboardQuery) ([]dto.PaymentMethodRow, error)
	RecentActivity(ctx context.Context, q DashboardQuery) ([]dto.RecentActivityRow, error)
	SalesToday(ctx context.Context, locationID *uint) (*dto.TodaySalesResponse, error)
	HourlySales(ctx context.Context, day time.Time, locationID *uint) ([]dto.HourlySalesRow, error)
}

type dashboardRepo struct{ db *gorm.DB }

func NewDashboardRepository(db *gorm.DB) DashboardRepository { return &dashboardRepo{db: db} }

func (r *dashboardRepo) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	var resp dto.StatsResponse
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Ticket{}).Count(&resp.TotalTickets).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Ticket{}).
		Select("COALESCE(SUM(total_amount), 0) AS total_sales, COALESCE(AVG(total_amount), 0) AS average_ticket").
		Row().Scan(&resp.TotalSales, &resp.AverageTicket); err != nil {
		return nil, err
	}
	if err := db.Model(&model.User{}).Where("is_active = true").Count(&resp.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Item{}).Where("is_active = true").Count(&resp.TotalItems).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Location{}).Where("is_active = true").Count(&resp.TotalLocations).Error; err != nil {
		return nil, err
	}
	return &resp, nil
}

// periodFormat maps the requested grouping to a to_char format string. The
// format is chosen from a fixed set — user input never reaches SQL text.
func periodFormat(period string) string {
	switch period {
	case "week":
		return `IYYY-"W"IW`
	case "month":
		return "YYYY-MM"
	default: // day
		return "YYYY-MM-DD"
	}
}

func (r *dashboardRepo) SalesByPeriod(ctx context.Context, period string, q DashboardQuery) ([]dto.PeriodSalesRow, error) {
	rows := make([]dto.PeriodSalesRow, 0)
	query := r.db.WithContext(ctx).
		Model(&model.Ticket{}).
		Select(`to_char(created_at_local, ?) AS period,
		        COUNT(*) AS ticket_count,
		        COALESCE(SUM(total_amount), 0) AS total_sales,
		        COALESCE(AVG(total_amount), 0) AS avg_ticket`, periodFormat(period))
	if q.LocationID != nil {
		query = query.Where("location_id = ?", *q.LocationID)
	}
	// The limit selects the most recent periods; the chart wants them
	// oldest-first, so reverse after the scan.
	err := query.Group("1").Order("period DESC").Limit(q.Limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	slices.Reverse(rows)
	return rows, nil
}

func (r *dashboardRepo) TopItems(ctx context.Context, q DashboardQuery) ([]dto.TopItemRow, error) {
	rows := make([]dto.TopItemRow, 0)
	query := r.db.WithContext(ctx).
		Table("ticket_items AS ti").
		Select(`ti.item_id, ti.item_name,
		        SUM(ti.quantity) AS total_quantity,
		        COUNT(DISTINCT ti.ticket_id) AS times_ordered,
		        COALESCE(SUM(ti.quantity * ti.unit_price), 0) AS total_revenue,
		        COALESCE(AVG(ti.unit_price), 0) AS avg_price`).
		Joins("INNER JOIN tickets t ON t.id = ti.ticket_id")
	if q.LocationID != nil {
		query = query.Where("t.location_id = ?", *q.LocationID)
	}
	if q.From != nil {
		query = query.Where("t.created_at_local >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("t.created_at_local <= ?", *q.To)
	}
	err := query.Group("ti.item_id, ti.item_name").
		Order("total_quantity DESC").
		Limit(q.Limit).
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepo) SalesByLocation(ctx context.Context, q DashboardQuery) ([]dto.LocationSalesRow, error) {
	rows := make([]dto.LocationSalesRow, 0)
	query := r.db.WithContext(ctx).
		Table("locations AS l").
		Select(`l.id, l.name AS location_name,
		        COUNT(t.id) AS ticket_count,
		        COALESCE(SUM(t.total_amount), 0) AS total_sales,
		        COALESCE(AVG(t.total_amount), 0) AS avg_ticket`).
		Joins("LEFT JOIN tickets t ON t.location_id = l.id").
		Where("l.is_active = true")
	if q.From != nil {
		query = query.Where("t.created_at_local >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("t.created_at_local <= ?", *q.To)
	}
	err := query.Group("l.id, l.name").Order("total_sales DESC").Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepo) SalesByUser(ctx context.Context, q DashboardQuery) ([]dto.UserSalesRow, error) {
	rows := make([]dto.UserSalesRow, 0)
	query := r.db.WithContext(ctx).
		Table("users AS u").
		Select(`u.id, u.username, u.full_name, l.name AS location_name,
		        COUNT(t.id) AS ticket_count,
		        COALESCE(SUM(t.total_amount), 0) AS total_sales,
		        COALESCE(AVG(t.total_amount), 0) AS avg_ticket`).
		Joins("LEFT JOIN tickets t ON t.user_id = u.id").
		Joins("LEFT JOIN locations l ON l.id = u.location_id").
		Where("u.is_active = true")
	if q.LocationID != nil {
		query = query.Where("u.location_id = ?", *q.LocationID)
	}
	if q.From != nil {
		query = query.Where("t.created_at_local >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("t.created_at_local <= ?", *q.To)
	}
	err := query.Group("u.id, u.username, u.full_name, l.name").
		Order("total_sales DESC").
		Limit(q.Limit).
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepo) PaymentMethods(ctx context.Context, q DashboardQuery) ([]dto.PaymentMethodRow, error) {
	rows := make([]dto.PaymentMethodRow, 0)
	query := r.db.WithContext(ctx).
		Model(&model.Ticket{}).
		Select(`payment_type,
		        COUNT(*) AS ticket_count,
		        COALESCE(SUM(total_amount), 0) AS total_sales,
		        COALESCE(AVG(total_amount), 0) AS avg_ticket`)
	if q.LocationID != nil {
		query = query.Where("location_id = ?", *q.LocationID)
	}
	if q.From != nil {
		query = query.Where("created_at_local >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("created_at_local <= ?", *q.To)
	}
	err := query.Group("payment_type").Order("total_sales DESC").Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepo) RecentActivity(ctx context.Context, q DashboardQuery) ([]dto.RecentActivityRow, error) {
	rows := make([]dto.RecentActivityRow, 0)
	query := r.db.WithContext(ctx).
		Table("tickets AS t").
		Select(`t.id, t.correlative_number, t.total_amount, t.payment_type,
		        t.created_at_local, u.username, u.full_name, l.name AS location_name`).
		Joins("LEFT JOIN users u ON u.id = t.user_id").
		Joins("LEFT JOIN locations l ON l.id = t.location_id")
	if q.LocationID != nil {
		query = query.Where("t.location_id = ?", *q.LocationID)
	}
	err := query.Order("t.created_at_local DESC").Limit(q.Limit).Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepo) SalesToday(ctx context.Context, locationID *uint) (*dto.TodaySalesResponse, error) {
	var resp dto.TodaySalesResponse
	query := r.db.WithContext(ctx).
		Model(&model.Ticket{}).
		Select(`COUNT(*) AS ticket_count,
		        COALESCE(SUM(total_amount), 0) AS total_sales,
		        COALESCE(AVG(total_amount), 0) AS avg_ticket,
		        COALESCE(MIN(total_amount), 0) AS min_ticket,
		        COALESCE(MAX(total_amount), 0) AS max_ticket`).
		Where("created_at_local::date = CURRENT_DATE")
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	}
	if err := query.Scan(&resp).Error; err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *dashboardRepo) HourlySales(ctx context.Context, day time.Time, locationID *uint) ([]dto.HourlySalesRow, error) {
	rows := make([]dto.HourlySalesRow, 0)
	query := r.db.WithContext(ctx).
		Model(&model.Ticket{}).
		Select(`EXTRACT(HOUR FROM created_at_local)::int AS hour,
		        COUNT(*) AS ticket_count,
		        COALESCE(SUM(total_amount), 0) AS total_sales`).
		Where("created_at_local::date = ?::date", day)
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	}
	err := query.Group("1").Order("hour ASC").Scan(&rows).Error
	return rows, err
}
