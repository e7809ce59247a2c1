package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kiosco-pos-api/internal/domain/entity"
)

// SaleItemRow es una línea de venta con los datos del producto ya unidos.
type SaleItemRow struct {
	ID             string
	ProductID      string
	Qty            int
	UnitPrice      decimal.Decimal
	LineTotal      decimal.Decimal
	ProductName    string
	ProductBarcode string
}

// SaleRepository define el puerto de persistencia para Sale y SaleItem.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	List(limit int) ([]*entity.Sale, error)
	ListItems(saleID string) ([]SaleItemRow, error)

	// ExistsItemForProduct indica si algún sale_item referencia el producto
	// (bloquea la eliminación del producto).
	ExistsItemForProduct(productID string) (bool, error)
	// CountByCreator cuenta las ventas registradas por un usuario
	// (bloquea la eliminación del usuario).
	CountByCreator(userID string) (int, error)
}
