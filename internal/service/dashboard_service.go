package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/lturcios/turicash-backend/internal/apierror"
	"github.com/lturcios/turicash-backend/internal/dto"
	"github.com/lturcios/turicash-backend/internal/repository"
	"github.com/lturcios/turicash-backend/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	statsCacheKey = worker.CachePrefix + "stats"
	statsCacheTTL = 60 * time.Second

	defaultPeriodLimit = 30
	defaultRowLimit    = 10
)

type DashboardService interface {
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	SalesByPeriod(ctx context.Context, filter dto.DashboardFilter) ([]dto.PeriodSalesRow, error)
	TopItems(ctx context.Context, filter dto.DashboardFilter) ([]dto.TopItemRow, error)
	SalesByLocation(ctx context.Context, filter dto.DashboardFilter) ([]dto.LocationSalesRow, error)
	SalesByUser(ctx context.Context, filter dto.DashboardFilter) ([]dto.UserSalesRow, error)
	PaymentMethods(ctx context.Context, filter dto.DashboardFilter) ([]dto.PaymentMethodRow, error)
	RecentActivity(ctx context.Context, filter dto.DashboardFilter) ([]dto.RecentActivityRow, error)
	SalesToday(ctx context.Context, locationID *uint) (*dto.TodaySalesResponse, error)
	HourlySales(ctx context.Context, filter dto.DashboardFilter) ([]dto.HourlySalesRow, error)
}

type dashboardService struct {
	repo repository.DashboardRepository
	rdb  *redis.Client
}

func NewDashboardService(repo repository.DashboardRepository, rdb *redis.Client) DashboardService {
	return &dashboardService{repo: repo, rdb: rdb}
}

// buildQuery parses the shared optional filters. Invalid dates are rejected
// before any query runs.
func buildQuery(filter dto.DashboardFilter, defaultLimit int) (repository.DashboardQuery, error) {
	q := repository.DashboardQuery{LocationID: filter.LocationID, Limit: filter.Limit}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if filter.DateFrom != "" {
		from, err := time.Parse(dateLayout, filter.DateFrom)
		if err != nil {
			return q, apierror.New(apierror.KindValidation, "Fecha date_from invalida (YYYY-MM-DD)")
		}
		q.From = &from
	}
	if filter.DateTo != "" {
		to, err := time.Parse(dateLayout, filter.DateTo)
		if err != nil {
			return q, apierror.New(apierror.KindValidation, "Fecha date_to invalida (YYYY-MM-DD)")
		}
		end := to.Add(24*time.Hour - time.Millisecond)
		q.To = &end
	}
	return q, nil
}

// Stats reads through a short-lived Redis entry; the invalidation worker
// drops it whenever a sync commits new tickets.
func (s *dashboardService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, statsCacheKey).Result()
		if err == nil {
			var resp dto.StatsResponse
			if jsonErr := json.Unmarshal([]byte(cached), &resp); jsonErr == nil {
				return &resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("dashboard: stats cache read failed")
		}
	}

	resp, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}

	if s.rdb != nil {
		if payload, jsonErr := json.Marshal(resp); jsonErr == nil {
			if err := s.rdb.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("dashboard: stats cache write failed")
			}
		}
	}
	return resp, nil
}

func (s *dashboardService) SalesByPeriod(ctx context.Context, filter dto.DashboardFilter) ([]dto.PeriodSalesRow, error) {
	period := filter.Period
	switch period {
	case "day", "week", "month":
	case "":
		period = "day"
	default:
		return nil, apierror.New(apierror.KindValidation, "Periodo invalido: use day, week o month")
	}
	q, err := buildQuery(filter, defaultPeriodLimit)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.SalesByPeriod(ctx, period, q)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return rows, nil
}

func (s *dashboardService) TopItems(ctx context.Context, filter dto.DashboardFilter) ([]dto.TopItemRow, error) {
	q, err := buildQuery(filter, defaultRowLimit)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.TopItems(ctx, q)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return rows, nil
}

func (s *dashboardService) SalesByLocation(ctx context.Context, filter dto.DashboardFilter) ([]dto.LocationSalesRow, error) {
	q, err := buildQuery(filter, defaultRowLimit)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.SalesByLocation(ctx, q)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return rows, nil
}

func (s *dashboardService) SalesByUser(ctx context.Context, filter dto.DashboardFilter) ([]dto.UserSalesRow, error) {
	q, err := buildQuery(filter, defaultRowLimit)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.SalesByUser(ctx, q)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return rows, nil
}

func (s *dashboardService) PaymentMethods(ctx context.Context, filter dto.DashboardFilter) ([]dto.PaymentMethodRow, error) {
	q, err := buildQuery(filter, defaultRowLimit)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.PaymentMethods(ctx, q)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return rows, nil
}

func (s *dashboardService) RecentActivity(ctx context.Context, filter dto.DashboardFilter) ([]dto.RecentActivityRow, error) {
	q, err := buildQuery(filter, defaultRowLimit)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.RecentActivity(ctx, q)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return rows, nil
}

func (s *dashboardService) SalesToday(ctx context.Context, locationID *uint) (*dto.TodaySalesResponse, error) {
	resp, err := s.repo.SalesToday(ctx, locationID)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return resp, nil
}

func (s *dashboardService) HourlySales(ctx context.Context, filter dto.DashboardFilter) ([]dto.HourlySalesRow, error) {
	day := time.Now()
	if filter.Date != "" {
		parsed, err := time.Parse(dateLayout, filter.Date)
		if err != nil {
			return nil, apierror.New(apierror.KindValidation, "Fecha date invalida (YYYY-MM-DD)")
		}
		day = parsed
	}
	rows, err := s.repo.HourlySales(ctx, day, filter.LocationID)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}

	// The bar chart indexes by hour: always return all 24 slots, zero-filled
	// for hours without sales.
	dense := make([]dto.HourlySalesRow, 24)
	for h := range dense {
		dense[h] = dto.HourlySalesRow{Hour: h, TotalSales: decimal.Zero}
	}
	for _, row := range rows {
		if row.Hour >= 0 && row.Hour < 24 {
			dense[row.Hour] = row
		}
	}
	return dense, nil
}
