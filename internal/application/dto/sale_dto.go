package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutItem una línea solicitada del carrito.
type CheckoutItem struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Qty       int    `json:"qty" validate:"required,gt=0"`
}

// CheckoutRequest entrada del checkout. PaymentMethod vacío = CASH.
type CheckoutRequest struct {
	Items         []CheckoutItem `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string         `json:"paymentMethod" validate:"payment_method"`
}

// CheckoutResponse salida del checkout.
type CheckoutResponse struct {
	SaleID string          `json:"saleId"`
	Total  decimal.Decimal `json:"total"`
}

// SaleResponse una venta del historial.
type SaleResponse struct {
	ID            string          `json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	CreatedBy     string          `json:"created_by"`
}

// SaleItemResponse una línea de la venta con datos del producto.
type SaleItemResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	ProductBarcode string          `json:"product_barcode"`
	Qty            int             `json:"qty"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// SaleDetailResponse venta con sus líneas.
type SaleDetailResponse struct {
	SaleResponse
	TotalFormatted string             `json:"total_formatted"`
	Items          []SaleItemResponse `json:"items"`
}

// SaleListResponse historial reciente.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
}
