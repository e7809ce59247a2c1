package usecase

import (
	"github.com/jhoicas/kiosco-pos-api/internal/application/dto"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/repository"
	"github.com/jhoicas/kiosco-pos-api/pkg/money"
)

// defaultSaleHistoryLimit tope del historial reciente.
const defaultSaleHistoryLimit = 50

// SaleUseCase lecturas del historial de ventas (el alta pasa por checkout).
type SaleUseCase struct {
	saleRepo repository.SaleRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(saleRepo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{saleRepo: saleRepo}
}

// List devuelve las ventas más recientes.
func (uc *SaleUseCase) List() (*dto.SaleListResponse, error) {
	sales, err := uc.saleRepo.List(defaultSaleHistoryLimit)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{Items: make([]dto.SaleResponse, 0, len(sales))}
	for _, s := range sales {
		out.Items = append(out.Items, dto.SaleResponse{
			ID:            s.ID,
			CreatedAt:     s.CreatedAt,
			Total:         s.Total,
			PaymentMethod: s.PaymentMethod,
			CreatedBy:     s.CreatedBy,
		})
	}
	return out, nil
}

// GetByID devuelve la venta con sus líneas; (nil, nil) si no existe.
func (uc *SaleUseCase) GetByID(id string) (*dto.SaleDetailResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil || sale == nil {
		return nil, err
	}
	rows, err := uc.saleRepo.ListItems(id)
	if err != nil {
		return nil, err
	}

	out := &dto.SaleDetailResponse{
		SaleResponse: dto.SaleResponse{
			ID:            sale.ID,
			CreatedAt:     sale.CreatedAt,
			Total:         sale.Total,
			PaymentMethod: sale.PaymentMethod,
			CreatedBy:     sale.CreatedBy,
		},
		TotalFormatted: money.FormatCOP(sale.Total),
		Items:          make([]dto.SaleItemResponse, 0, len(rows)),
	}
	for _, row := range rows {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:             row.ID,
			ProductID:      row.ProductID,
			ProductName:    row.ProductName,
			ProductBarcode: row.ProductBarcode,
			Qty:            row.Qty,
			UnitPrice:      row.UnitPrice,
			LineTotal:      row.LineTotal,
		})
	}
	return out, nil
}
