package checkout

import (
	"context"

	"github.com/jhoicas/kiosco-pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el checkout:
// o se confirman todos los descuentos de stock, las líneas y la venta,
// o no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
