package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kiosco-pos-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, created_at, total, payment_method, created_by)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CreatedAt, sale.Total, sale.PaymentMethod, sale.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, qty, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Qty, item.UnitPrice, item.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, created_at, total, payment_method, created_by
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.CreatedAt, &s.Total, &s.PaymentMethod, &s.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// List devuelve las ventas más recientes.
func (r *SaleRepo) List(limit int) ([]*entity.Sale, error) {
	query := `
		SELECT id, created_at, total, payment_method, created_by
		FROM sales ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.Total, &s.PaymentMethod, &s.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListItems devuelve las líneas de una venta con nombre y barcode del producto.
func (r *SaleRepo) ListItems(saleID string) ([]repository.SaleItemRow, error) {
	query := `
		SELECT si.id, si.product_id, si.qty, si.unit_price, si.line_total, p.name, p.barcode
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = $1
		ORDER BY p.name ASC`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []repository.SaleItemRow
	for rows.Next() {
		var row repository.SaleItemRow
		if err := rows.Scan(&row.ID, &row.ProductID, &row.Qty, &row.UnitPrice, &row.LineTotal,
			&row.ProductName, &row.ProductBarcode); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ExistsItemForProduct indica si algún sale_item referencia el producto.
func (r *SaleRepo) ExistsItemForProduct(productID string) (bool, error) {
	var found int
	err := r.q.QueryRow(context.Background(),
		`SELECT 1 FROM sale_items WHERE product_id = $1 LIMIT 1`, productID,
	).Scan(&found)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("exists sale item for product: %w", err)
	}
	return true, nil
}

// CountByCreator cuenta las ventas registradas por un usuario.
func (r *SaleRepo) CountByCreator(userID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM sales WHERE created_by = $1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sales by creator: %w", err)
	}
	return count, nil
}
