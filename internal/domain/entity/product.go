package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible del kiosco.
// El barcode es único a nivel global; Stock nunca baja de cero
// (garantizado por el motor de checkout y el CHECK de la tabla).
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal // precio de venta, 2 decimales
	Stock     int
	Barcode   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
