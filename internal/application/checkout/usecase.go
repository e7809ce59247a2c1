package checkout

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kiosco-pos-api/internal/application/dto"
	"github.com/jhoicas/kiosco-pos-api/internal/domain"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/repository"
	"github.com/jhoicas/kiosco-pos-api/pkg/money"
)

// UseCase convierte un carrito en una venta persistida descontando stock,
// todo dentro de una transacción con bloqueo de fila (SELECT FOR UPDATE)
// y Commit/Rollback.
type UseCase struct {
	txRunner TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner) *UseCase {
	return &UseCase{txRunner: txRunner}
}

// Checkout ejecuta la venta.
//
// Flujo:
//  1. Agrupa líneas repetidas del mismo producto sumando cantidades.
//  2. Bloquea cada producto en orden estable (ids ascendentes) para que
//     checkouts concurrentes no se crucen en orden distinto.
//  3. Verifica stock, calcula cada línea como precio × cantidad redondeado
//     al centavo (half-up) y acumula el total con el mismo redondeo.
//  4. Inserta la venta, descuenta stock e inserta las líneas.
//
// Cualquier fallo revierte la transacción completa: sin efectos parciales.
func (uc *UseCase) Checkout(ctx context.Context, userID string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = entity.PaymentCash
	}
	if !entity.ValidPaymentMethod(paymentMethod) {
		return nil, domain.ErrInvalidInput
	}

	// Agrupar por producto: defensa contra líneas duplicadas en un mismo request
	grouped := make(map[string]int, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" || item.Qty <= 0 {
			return nil, domain.ErrInvalidInput
		}
		grouped[item.ProductID] += item.Qty
	}

	// Orden estable de bloqueo para evitar deadlocks innecesarios
	productIDs := make([]string, 0, len(grouped))
	for id := range grouped {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	saleID := uuid.New().String()
	now := time.Now()
	var total decimal.Decimal

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		total = decimal.Zero
		items := make([]*entity.SaleItem, 0, len(productIDs))

		for _, productID := range productIDs {
			qty := grouped[productID]

			product, err := productRepo.GetForUpdate(productID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}
			if product.Stock < qty {
				return &domain.InsufficientStockError{
					ProductID: productID,
					Requested: qty,
					Available: product.Stock,
				}
			}

			lineTotal := money.LineTotal(product.Price, qty)
			total = money.Round2(total.Add(lineTotal))

			items = append(items, &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: productID,
				Qty:       qty,
				UnitPrice: product.Price,
				LineTotal: lineTotal,
			})
		}

		// Venta con líneas y total cero: defecto de redondeo o de escritura,
		// nunca una venta legítima. Aborta antes del commit.
		if len(items) > 0 && total.IsZero() {
			return domain.ErrTotalIntegrity
		}

		sale := &entity.Sale{
			ID:            saleID,
			CreatedAt:     now,
			Total:         total,
			PaymentMethod: paymentMethod,
			CreatedBy:     userID,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		for _, item := range items {
			if err := productRepo.DecrementStock(item.ProductID, item.Qty); err != nil {
				return err
			}
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{SaleID: saleID, Total: total}, nil
}
