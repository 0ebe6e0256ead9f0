package dto

import "github.com/shopspring/decimal"

// SalesSummaryResponse KPIs de ventas (solo órdenes completed suman ingresos).
type SalesSummaryResponse struct {
	TodayRevenue     decimal.Decimal `json:"today_revenue"`
	TodayOrders      int             `json:"today_orders"`
	MonthRevenue     decimal.Decimal `json:"month_revenue"`
	MonthOrders      int             `json:"month_orders"`
	AverageTicket    decimal.Decimal `json:"average_ticket"` // MonthRevenue / MonthOrders
	StatusCountToday map[string]int  `json:"status_count_today"`
}

// TopItemDTO artículo más vendido en un período.
type TopItemDTO struct {
	ItemID   *int64          `json:"item_id,omitempty"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}
