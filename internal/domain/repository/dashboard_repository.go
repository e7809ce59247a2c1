package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductRow producto con sus unidades e ingresos vendidos históricos.
type TopProductRow struct {
	ProductID string
	Name      string
	QtySold   int
	TotalSold decimal.Decimal
}

// RecentSaleRow venta reciente con el conteo de líneas.
type RecentSaleRow struct {
	ID            string
	CreatedAt     time.Time
	Total         decimal.Decimal
	ItemsCount    int
	PaymentMethod string
}

// DashboardRepository consultas de solo lectura para el tablero.
// Los rangos son [from, to) en UTC; el caso de uso los arma en la
// zona horaria de referencia.
type DashboardRepository interface {
	SumTotals(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	CountSales(ctx context.Context, from, to time.Time) (int, error)
	TopProducts(ctx context.Context, limit int) ([]TopProductRow, error)
	RecentSales(ctx context.Context, limit int) ([]RecentSaleRow, error)
}
