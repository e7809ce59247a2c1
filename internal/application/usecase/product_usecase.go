package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kiosco-pos-api/internal/application/dto"
	"github.com/jhoicas/kiosco-pos-api/internal/domain"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/barcode"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/repository"
)

// maxBarcodeAttempts acota el loop generar-y-verificar de barcodes.
const maxBarcodeAttempts = 50

// ProductUseCase CRUD del catálogo de productos.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	generator   *barcode.Generator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	generator *barcode.Generator,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		generator:   generator,
	}
}

// Create persiste un producto; sin barcode genera uno único.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.LessThan(decimal.Zero) || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}

	code := strings.TrimSpace(in.Barcode)
	if code == "" {
		generated, err := uc.uniqueBarcode()
		if err != nil {
			return nil, err
		}
		code = generated
	}

	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Price:     in.Price.Round(2),
		Stock:     in.Stock,
		Barcode:   code,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto; (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil || product == nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByBarcode busca un producto escaneado; (nil, nil) si no existe.
func (uc *ProductUseCase) GetByBarcode(code string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByBarcode(strings.TrimSpace(code))
	if err != nil || product == nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List devuelve el catálogo completo ordenado por fecha de alta.
func (uc *ProductUseCase) List() (*dto.ProductListResponse, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	return toProductList(products), nil
}

// ListLowStock productos con stock en o bajo el umbral.
func (uc *ProductUseCase) ListLowStock(threshold int) (*dto.ProductListResponse, error) {
	if threshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	products, err := uc.productRepo.ListLowStock(threshold)
	if err != nil {
		return nil, err
	}
	return toProductList(products), nil
}

// Update actualiza nombre, precio, stock y barcode; sin barcode genera uno nuevo.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.LessThan(decimal.Zero) || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	code := strings.TrimSpace(in.Barcode)
	if code == "" {
		generated, err := uc.uniqueBarcode()
		if err != nil {
			return nil, err
		}
		code = generated
	}

	product.Name = name
	product.Price = in.Price.Round(2)
	product.Stock = in.Stock
	product.Barcode = code
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto sin ventas asociadas; con ventas devuelve
// ErrProductInUse (los sale_items referencian el producto, nunca se huérfanan).
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	used, err := uc.saleRepo.ExistsItemForProduct(id)
	if err != nil {
		return err
	}
	if used {
		return domain.ErrProductInUse
	}
	return uc.productRepo.Delete(id)
}

// uniqueBarcode genera candidatos hasta encontrar uno libre, con tope de
// intentos: o devuelve un barcode sin colisión o falla determinísticamente.
func (uc *ProductUseCase) uniqueBarcode() (string, error) {
	for i := 0; i < maxBarcodeAttempts; i++ {
		candidate := uc.generator.Candidate()
		exists, err := uc.productRepo.ExistsBarcode(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", &domain.BarcodeExhaustedError{Attempts: maxBarcodeAttempts}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		Barcode:   p.Barcode,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toProductList(products []*entity.Product) *dto.ProductListResponse {
	out := &dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		out.Items = append(out.Items, *toProductResponse(p))
	}
	return out
}
