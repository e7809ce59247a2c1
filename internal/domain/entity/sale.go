package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago válidos para Sale.
const (
	PaymentCash        = "CASH"
	PaymentMercadoPago = "MERCADO_PAGO"
)

// ValidPaymentMethod verifica el enum de método de pago.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentMercadoPago
}

// Sale representa una venta cerrada. Se crea una sola vez en el checkout
// y es inmutable después; Total es derivado, nunca viene del cliente.
type Sale struct {
	ID            string
	CreatedAt     time.Time
	Total         decimal.Decimal
	PaymentMethod string
	CreatedBy     string // profile id del vendedor
}

// SaleItem es una línea de venta: snapshot de precio al momento de vender.
// Invariante: LineTotal = UnitPrice × Qty y la suma de líneas = Sale.Total.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Qty       int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}
