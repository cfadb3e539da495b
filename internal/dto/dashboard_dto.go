package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardFilter is bound from the query string of dashboard endpoints.
// Each endpoint reads only the fields it documents.
type DashboardFilter struct {
	Period     string `form:"period,default=day"` // day | week | month
	Limit      int    `form:"limit"`
	LocationID *uint  `form:"location_id"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
	Date       string `form:"date"` // YYYY-MM-DD, hourly-sales only
}

type StatsResponse struct {
	TotalTickets   int64           `json:"totalTickets"`
	TotalSales     decimal.Decimal `json:"totalSales"`
	TotalUsers     int64           `json:"totalUsers"`
	TotalItems     int64           `json:"totalItems"`
	TotalLocations int64           `json:"totalLocations"`
	AverageTicket  decimal.Decimal `json:"averageTicket"`
}

type PeriodSalesRow struct {
	Period      string          `json:"period"`
	TicketCount int64           `json:"ticket_count"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	AvgTicket   decimal.Decimal `json:"avg_ticket"`
}

type TopItemRow struct {
	ItemID        uint            `json:"item_id"`
	ItemName      string          `json:"item_name"`
	TotalQuantity int64           `json:"total_quantity"`
	TimesOrdered  int64           `json:"times_ordered"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	AvgPrice      decimal.Decimal `json:"avg_price"`
}

type LocationSalesRow struct {
	ID           uint            `json:"id"`
	LocationName string          `json:"location_name"`
	TicketCount  int64           `json:"ticket_count"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	AvgTicket    decimal.Decimal `json:"avg_ticket"`
}

type UserSalesRow struct {
	ID           uint            `json:"id"`
	Username     string          `json:"username"`
	FullName     string          `json:"full_name"`
	LocationName *string         `json:"location_name"`
	TicketCount  int64           `json:"ticket_count"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	AvgTicket    decimal.Decimal `json:"avg_ticket"`
}

type PaymentMethodRow struct {
	PaymentType string          `json:"payment_type"`
	TicketCount int64           `json:"ticket_count"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	AvgTicket   decimal.Decimal `json:"avg_ticket"`
}

type RecentActivityRow struct {
	ID                uint            `json:"id"`
	CorrelativeNumber int             `json:"correlative_number"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	PaymentType       string          `json:"payment_type"`
	CreatedAtLocal    time.Time       `json:"created_at_local"`
	Username          *string         `json:"username"`
	FullName          *string         `json:"full_name"`
	LocationName      *string         `json:"location_name"`
}

type TodaySalesResponse struct {
	TicketCount int64           `json:"ticket_count"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	AvgTicket   decimal.Decimal `json:"avg_ticket"`
	MinTicket   decimal.Decimal `json:"min_ticket"`
	MaxTicket   decimal.Decimal `json:"max_ticket"`
}

type HourlySalesRow struct {
	Hour        int             `json:"hour"`
	TicketCount int64           `json:"ticket_count"`
	TotalSales  decimal.Decimal `json:"total_sales"`
}
