package repository

import (
	"github.com/jhoicas/kiosco-pos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los getters devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	List() ([]*entity.Product, error)
	ListLowStock(threshold int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	ExistsBarcode(barcode string) (bool, error)

	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	// Solo tiene efecto dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	// DecrementStock resta qty al stock del producto bloqueado.
	DecrementStock(id string, qty int) error
}
