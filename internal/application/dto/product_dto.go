package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Barcode vacío dispara la generación automática.
type CreateProductRequest struct {
	Name    string          `json:"name" validate:"required,min=1,max=200"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock" validate:"gte=0"`
	Barcode string          `json:"barcode" validate:"omitempty,max=64"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Name    string          `json:"name" validate:"required,min=1,max=200"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock" validate:"gte=0"`
	Barcode string          `json:"barcode" validate:"omitempty,max=64"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Barcode   string          `json:"barcode"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}
