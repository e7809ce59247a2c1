package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kiosco-pos-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas para el panel de indicadores.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// SumTotals suma los totales de ventas en el rango [from, to).
func (r *DashboardRepo) SumTotals(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM sales WHERE created_at >= $1 AND created_at < $2`,
		from, to,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum sale totals: %w", err)
	}
	return total, nil
}

// CountSales cuenta las ventas en el rango [from, to).
func (r *DashboardRepo) CountSales(ctx context.Context, from, to time.Time) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM sales WHERE created_at >= $1 AND created_at < $2`,
		from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return count, nil
}

// TopProducts devuelve los productos más vendidos, por cantidad y desempate por monto.
func (r *DashboardRepo) TopProducts(ctx context.Context, limit int) ([]repository.TopProductRow, error) {
	query := `
		SELECT p.id, p.name, COALESCE(SUM(si.qty), 0) AS qty_sold, COALESCE(SUM(si.line_total), 0) AS total_sold
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		GROUP BY p.id, p.name
		ORDER BY qty_sold DESC, total_sold DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.QtySold, &row.TotalSold); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// RecentSales devuelve las últimas ventas con el número de líneas de cada una.
func (r *DashboardRepo) RecentSales(ctx context.Context, limit int) ([]repository.RecentSaleRow, error) {
	query := `
		SELECT s.id, s.created_at, s.total, s.payment_method, COUNT(si.id) AS item_count
		FROM sales s
		LEFT JOIN sale_items si ON si.sale_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent sales: %w", err)
	}
	defer rows.Close()
	var list []repository.RecentSaleRow
	for rows.Next() {
		var row repository.RecentSaleRow
		if err := rows.Scan(&row.ID, &row.CreatedAt, &row.Total, &row.PaymentMethod, &row.ItemsCount); err != nil {
			return nil, fmt.Errorf("scan recent sale: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
