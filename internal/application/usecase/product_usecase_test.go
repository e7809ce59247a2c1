package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosco-pos-api/internal/application/dto"
	"github.com/jhoicas/kiosco-pos-api/internal/application/usecase"
	"github.com/jhoicas/kiosco-pos-api/internal/domain"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/barcode"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	byID      map[string]*entity.Product
	byBarcode map[string]*entity.Product
	// allTaken fuerza colisión permanente de barcodes generados
	allTaken bool
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		byID:      map[string]*entity.Product{},
		byBarcode: map[string]*entity.Product{},
	}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	if _, ok := r.byBarcode[p.Barcode]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.byID[p.ID] = &cp
	r.byBarcode[p.Barcode] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByBarcode(code string) (*entity.Product, error) {
	p, ok := r.byBarcode[code]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List() ([]*entity.Product, error) {
	var all []*entity.Product
	for _, p := range r.byID {
		cp := *p
		all = append(all, &cp)
	}
	return all, nil
}

func (r *fakeProductRepo) ListLowStock(threshold int) ([]*entity.Product, error) {
	var low []*entity.Product
	for _, p := range r.byID {
		if p.Stock <= threshold {
			cp := *p
			low = append(low, &cp)
		}
	}
	return low, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	old, ok := r.byID[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byBarcode, old.Barcode)
	cp := *p
	r.byID[p.ID] = &cp
	r.byBarcode[p.Barcode] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byBarcode, p.Barcode)
	delete(r.byID, id)
	return nil
}

func (r *fakeProductRepo) ExistsBarcode(code string) (bool, error) {
	if r.allTaken {
		return true, nil
	}
	_, ok := r.byBarcode[code]
	return ok, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) DecrementStock(id string, qty int) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock -= qty
	return nil
}

type fakeSaleRepoForProducts struct {
	soldProducts map[string]bool
}

func (r *fakeSaleRepoForProducts) Create(*entity.Sale) error         { return nil }
func (r *fakeSaleRepoForProducts) CreateItem(*entity.SaleItem) error { return nil }
func (r *fakeSaleRepoForProducts) GetByID(string) (*entity.Sale, error) {
	return nil, nil
}
func (r *fakeSaleRepoForProducts) List(int) ([]*entity.Sale, error) { return nil, nil }
func (r *fakeSaleRepoForProducts) ListItems(string) ([]repository.SaleItemRow, error) {
	return nil, nil
}
func (r *fakeSaleRepoForProducts) ExistsItemForProduct(productID string) (bool, error) {
	return r.soldProducts[productID], nil
}
func (r *fakeSaleRepoForProducts) CountByCreator(string) (int, error) { return 0, nil }

// fixedGenerator genera siempre el mismo candidato (reloj y random congelados).
func fixedGenerator() *barcode.Generator {
	now := func() time.Time { return time.UnixMilli(1700000123456) }
	randInt := func(n int) int { return 7 }
	return barcode.NewGeneratorWith(now, randInt)
}

func buildProductUC(productRepo *fakeProductRepo, saleRepo *fakeSaleRepoForProducts) *usecase.ProductUseCase {
	if saleRepo == nil {
		saleRepo = &fakeSaleRepoForProducts{soldProducts: map[string]bool{}}
	}
	return usecase.NewProductUseCase(productRepo, saleRepo, fixedGenerator())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_GeneraBarcodeSiFalta(t *testing.T) {
	repo := newFakeProductRepo()
	uc := buildProductUC(repo, nil)

	out, err := uc.Create(dto.CreateProductRequest{
		Name:  "Alfajor",
		Price: decimal.RequireFromString("1500"),
		Stock: 10,
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.NotEmpty(t, out.ID)
	assert.True(t, len(out.Barcode) == 14, "barcode generado debe tener 14 caracteres")
	assert.Equal(t, "KSK", out.Barcode[:3], "barcode generado debe llevar el prefijo KSK")
}

func TestProductCreate_RespetaBarcodeDado(t *testing.T) {
	repo := newFakeProductRepo()
	uc := buildProductUC(repo, nil)

	out, err := uc.Create(dto.CreateProductRequest{
		Name:    "Gaseosa",
		Price:   decimal.RequireFromString("3000"),
		Stock:   5,
		Barcode: "7791234567890",
	})
	require.NoError(t, err)
	assert.Equal(t, "7791234567890", out.Barcode)
}

func TestProductCreate_BarcodeAgotado(t *testing.T) {
	repo := newFakeProductRepo()
	repo.allTaken = true // toda candidata colisiona
	uc := buildProductUC(repo, nil)

	_, err := uc.Create(dto.CreateProductRequest{
		Name:  "Chicle",
		Price: decimal.RequireFromString("500"),
		Stock: 1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBarcodeExhausted)

	var exhausted *domain.BarcodeExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 50, exhausted.Attempts)
}

func TestProductCreate_EntradaInvalida(t *testing.T) {
	uc := buildProductUC(newFakeProductRepo(), nil)

	cases := []dto.CreateProductRequest{
		{Name: "", Price: decimal.RequireFromString("100"), Stock: 1},
		{Name: "   ", Price: decimal.RequireFromString("100"), Stock: 1},
		{Name: "Precio negativo", Price: decimal.RequireFromString("-1"), Stock: 1},
		{Name: "Stock negativo", Price: decimal.RequireFromString("100"), Stock: -1},
	}
	for _, in := range cases {
		_, err := uc.Create(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestProductUpdate_NoExiste(t *testing.T) {
	uc := buildProductUC(newFakeProductRepo(), nil)

	_, err := uc.Update("00000000-0000-0000-0000-0000000000ff", dto.UpdateProductRequest{
		Name:    "Lo que sea",
		Price:   decimal.RequireFromString("100"),
		Stock:   1,
		Barcode: "X",
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductUpdate_ActualizaCampos(t *testing.T) {
	repo := newFakeProductRepo()
	uc := buildProductUC(repo, nil)

	created, err := uc.Create(dto.CreateProductRequest{
		Name:    "Agua",
		Price:   decimal.RequireFromString("1000"),
		Stock:   3,
		Barcode: "AGUA-001",
	})
	require.NoError(t, err)

	out, err := uc.Update(created.ID, dto.UpdateProductRequest{
		Name:    "Agua con gas",
		Price:   decimal.RequireFromString("1200.559"),
		Stock:   8,
		Barcode: "AGUA-002",
	})
	require.NoError(t, err)

	assert.Equal(t, "Agua con gas", out.Name)
	assert.True(t, out.Price.Equal(decimal.RequireFromString("1200.56")), "el precio se redondea a 2 decimales")
	assert.Equal(t, 8, out.Stock)
	assert.Equal(t, "AGUA-002", out.Barcode)
}

func TestProductDelete_ConVentas_Bloqueado(t *testing.T) {
	repo := newFakeProductRepo()
	saleRepo := &fakeSaleRepoForProducts{soldProducts: map[string]bool{}}
	uc := buildProductUC(repo, saleRepo)

	created, err := uc.Create(dto.CreateProductRequest{
		Name:    "Caramelo",
		Price:   decimal.RequireFromString("200"),
		Stock:   100,
		Barcode: "CARAMELO-1",
	})
	require.NoError(t, err)

	saleRepo.soldProducts[created.ID] = true

	err = uc.Delete(created.ID)
	assert.ErrorIs(t, err, domain.ErrProductInUse)

	still, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.NotNil(t, still, "el producto no debe borrarse si tiene ventas")
}

func TestProductDelete_SinVentas(t *testing.T) {
	repo := newFakeProductRepo()
	uc := buildProductUC(repo, nil)

	created, err := uc.Create(dto.CreateProductRequest{
		Name:    "Turrón",
		Price:   decimal.RequireFromString("800"),
		Stock:   4,
		Barcode: "TURRON-1",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))

	gone, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestProductDelete_NoExiste(t *testing.T) {
	uc := buildProductUC(newFakeProductRepo(), nil)
	err := uc.Delete("00000000-0000-0000-0000-0000000000aa")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductListLowStock_UmbralNegativo(t *testing.T) {
	uc := buildProductUC(newFakeProductRepo(), nil)
	_, err := uc.ListLowStock(-1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductListLowStock_FiltraPorUmbral(t *testing.T) {
	repo := newFakeProductRepo()
	uc := buildProductUC(repo, nil)

	_, err := uc.Create(dto.CreateProductRequest{Name: "Casi agotado", Price: decimal.RequireFromString("100"), Stock: 2, Barcode: "A"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateProductRequest{Name: "Con stock", Price: decimal.RequireFromString("100"), Stock: 20, Barcode: "B"})
	require.NoError(t, err)

	out, err := uc.ListLowStock(3)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Casi agotado", out.Items[0].Name)
}
