package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardKPIs totales del tablero, calculados en la zona horaria de referencia.
type DashboardKPIs struct {
	SoldToday          decimal.Decimal `json:"soldToday"`
	SoldWeek           decimal.Decimal `json:"soldWeek"`
	SoldMonth          decimal.Decimal `json:"soldMonth"`
	SalesCountToday    int             `json:"salesCountToday"`
	TicketAverageToday decimal.Decimal `json:"ticketAverageToday"`
	SoldTodayFormatted string          `json:"soldTodayFormatted"`
}

// TopProductDTO producto del ranking de más vendidos.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	QtySold   int             `json:"qty_sold"`
	TotalSold decimal.Decimal `json:"total_sold"`
}

// RecentSaleDTO venta reciente con conteo de líneas.
type RecentSaleDTO struct {
	ID            string          `json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	Total         decimal.Decimal `json:"total"`
	ItemsCount    int             `json:"items_count"`
	PaymentMethod string          `json:"payment_method"`
}

// DashboardResponse respuesta completa del tablero.
type DashboardResponse struct {
	KPIs             DashboardKPIs     `json:"kpis"`
	TopProducts      []TopProductDTO   `json:"topProducts"`
	RecentSales      []RecentSaleDTO   `json:"recentSales"`
	LowStockProducts []ProductResponse `json:"lowStockProducts"`
}
