package checkout_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosco-pos-api/internal/application/checkout"
	"github.com/jhoicas/kiosco-pos-api/internal/application/dto"
	"github.com/jhoicas/kiosco-pos-api/internal/domain"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/repository"
)

const (
	productA = "11111111-1111-1111-1111-111111111111"
	productB = "22222222-2222-2222-2222-222222222222"
	sellerID = "99999999-9999-9999-9999-999999999999"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes: emulan bloqueo de fila y rollback transaccional en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeDB struct {
	mu       sync.Mutex // protege los mapas
	rowLocks map[string]*sync.Mutex
	products map[string]*entity.Product
	sales    map[string]*entity.Sale
	items    []*entity.SaleItem
}

func newFakeDB(products ...*entity.Product) *fakeDB {
	db := &fakeDB{
		rowLocks: map[string]*sync.Mutex{},
		products: map[string]*entity.Product{},
		sales:    map[string]*entity.Sale{},
	}
	for _, p := range products {
		db.products[p.ID] = p
	}
	return db
}

func (db *fakeDB) rowLock(id string) *sync.Mutex {
	db.mu.Lock()
	defer db.mu.Unlock()
	m, ok := db.rowLocks[id]
	if !ok {
		m = &sync.Mutex{}
		db.rowLocks[id] = m
	}
	return m
}

func (db *fakeDB) stock(t *testing.T, id string) int {
	t.Helper()
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.products[id]
	require.True(t, ok)
	return p.Stock
}

// fakeTx acumula un journal para poder revertir en caso de error.
type fakeTx struct {
	db        *fakeDB
	locked    map[string]*sync.Mutex
	prevStock map[string]int
	saleIDs   []string
	itemCount int
}

func (tx *fakeTx) rollback() {
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	for id, s := range tx.prevStock {
		tx.db.products[id].Stock = s
	}
	for _, id := range tx.saleIDs {
		delete(tx.db.sales, id)
	}
	if tx.itemCount > 0 {
		tx.db.items = tx.db.items[:len(tx.db.items)-tx.itemCount]
	}
}

func (tx *fakeTx) releaseLocks() {
	for _, m := range tx.locked {
		m.Unlock()
	}
}

type fakeTxRunner struct {
	db *fakeDB
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx := &fakeTx{
		db:        r.db,
		locked:    map[string]*sync.Mutex{},
		prevStock: map[string]int{},
	}
	err := fn(&txProductRepo{tx: tx}, &txSaleRepo{tx: tx})
	if err != nil {
		tx.rollback()
	}
	tx.releaseLocks()
	return err
}

type txProductRepo struct {
	tx *fakeTx
}

func (r *txProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	// Emula SELECT FOR UPDATE: bloquea la "fila" hasta el fin de la tx
	if _, held := r.tx.locked[id]; !held {
		m := r.tx.db.rowLock(id)
		m.Lock()
		r.tx.locked[id] = m
	}
	r.tx.db.mu.Lock()
	defer r.tx.db.mu.Unlock()
	p, ok := r.tx.db.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *txProductRepo) DecrementStock(id string, qty int) error {
	r.tx.db.mu.Lock()
	defer r.tx.db.mu.Unlock()
	p := r.tx.db.products[id]
	if _, saved := r.tx.prevStock[id]; !saved {
		r.tx.prevStock[id] = p.Stock
	}
	p.Stock -= qty
	return nil
}

func (r *txProductRepo) Create(*entity.Product) error                  { panic("no usado") }
func (r *txProductRepo) GetByID(string) (*entity.Product, error)       { panic("no usado") }
func (r *txProductRepo) GetByBarcode(string) (*entity.Product, error)  { panic("no usado") }
func (r *txProductRepo) List() ([]*entity.Product, error)              { panic("no usado") }
func (r *txProductRepo) ListLowStock(int) ([]*entity.Product, error)   { panic("no usado") }
func (r *txProductRepo) Update(*entity.Product) error                  { panic("no usado") }
func (r *txProductRepo) Delete(string) error                           { panic("no usado") }
func (r *txProductRepo) ExistsBarcode(string) (bool, error)            { panic("no usado") }

type txSaleRepo struct {
	tx *fakeTx
}

func (r *txSaleRepo) Create(sale *entity.Sale) error {
	r.tx.db.mu.Lock()
	defer r.tx.db.mu.Unlock()
	cp := *sale
	r.tx.db.sales[sale.ID] = &cp
	r.tx.saleIDs = append(r.tx.saleIDs, sale.ID)
	return nil
}

func (r *txSaleRepo) CreateItem(item *entity.SaleItem) error {
	r.tx.db.mu.Lock()
	defer r.tx.db.mu.Unlock()
	cp := *item
	r.tx.db.items = append(r.tx.db.items, &cp)
	r.tx.itemCount++
	return nil
}

func (r *txSaleRepo) GetByID(string) (*entity.Sale, error)                 { panic("no usado") }
func (r *txSaleRepo) List(int) ([]*entity.Sale, error)                     { panic("no usado") }
func (r *txSaleRepo) ListItems(string) ([]repository.SaleItemRow, error)   { panic("no usado") }
func (r *txSaleRepo) ExistsItemForProduct(string) (bool, error)            { panic("no usado") }
func (r *txSaleRepo) CountByCreator(string) (int, error)                   { panic("no usado") }

func product(id, price string, stock int) *entity.Product {
	return &entity.Product{
		ID:    id,
		Name:  "producto " + id[:8],
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
}

func checkoutWith(db *fakeDB, userID string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uc := checkout.NewUseCase(&fakeTxRunner{db: db})
	return uc.Checkout(context.Background(), userID, in)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_VentaSimple(t *testing.T) {
	db := newFakeDB(product(productA, "1500", 5))

	out, err := checkoutWith(db, sellerID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItem{{ProductID: productA, Qty: 2}},
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	assert.True(t, out.Total.Equal(decimal.RequireFromString("3000")),
		"total = 1500 × 2")
	assert.Equal(t, 3, db.stock(t, productA), "stock 5 - 2 = 3")

	sale, ok := db.sales[out.SaleID]
	require.True(t, ok, "la venta debe quedar persistida")
	assert.Equal(t, entity.PaymentCash, sale.PaymentMethod)
	assert.Equal(t, sellerID, sale.CreatedBy)
	require.Len(t, db.items, 1)
	assert.Equal(t, 2, db.items[0].Qty)
	assert.True(t, db.items[0].UnitPrice.Equal(decimal.RequireFromString("1500")),
		"unit_price es snapshot del precio al vender")
}

func TestCheckout_SumaDeLineasIgualTotal(t *testing.T) {
	db := newFakeDB(
		product(productA, "1999.99", 10),
		product(productB, "0.335", 10),
	)

	out, err := checkoutWith(db, sellerID, dto.CheckoutRequest{
		Items: []dto.CheckoutItem{
			{ProductID: productA, Qty: 3},
			{ProductID: productB, Qty: 3},
		},
	})
	require.NoError(t, err)

	sum := decimal.Zero
	for _, item := range db.items {
		sum = sum.Add(item.LineTotal)
	}
	assert.True(t, sum.Equal(out.Total),
		"sum(line_total) = %s debe igualar sale.total = %s", sum, out.Total)
	// 1999.99×3 = 5999.97; 0.335×3 = 1.005 → 1.01 (half-up); total 6000.98
	assert.True(t, out.Total.Equal(decimal.RequireFromString("6000.98")))
}

func TestCheckout_AgrupaLineasDuplicadas(t *testing.T) {
	db := newFakeDB(product(productA, "1000", 10))

	out, err := checkoutWith(db, sellerID, dto.CheckoutRequest{
		Items: []dto.CheckoutItem{
			{ProductID: productA, Qty: 1},
			{ProductID: productA, Qty: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, db.items, 1, "líneas del mismo producto se consolidan")
	assert.Equal(t, 3, db.items[0].Qty)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("3000")))
	assert.Equal(t, 7, db.stock(t, productA))
}

func TestCheckout_StockInsuficiente_SinEfectos(t *testing.T) {
	db := newFakeDB(product(productA, "1500", 2))

	_, err := checkoutWith(db, sellerID, dto.CheckoutRequest{
		Items: []dto.CheckoutItem{{ProductID: productA, Qty: 3}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr, "el error debe identificar el producto ofensor")
	assert.Equal(t, productA, stockErr.ProductID)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)

	assert.Equal(t, 2, db.stock(t, productA), "el stock no debe cambiar")
	assert.Empty(t, db.sales, "no debe quedar venta registrada")
	assert.Empty(t, db.items)
}

func TestCheckout_RollbackCompletoConVariosProductos(t *testing.T) {
	// A alcanza, B no: nada debe persistir (ni el descuento de A)
	db := newFakeDB(
		product(productA, "1000", 10),
		product(productB, "500", 1),
	)

	_, err := checkoutWith(db, sellerID, dto.CheckoutRequest{
		Items: []dto.CheckoutItem{
			{ProductID: productA, Qty: 2},
			{ProductID: productB, Qty: 5},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, db.stock(t, productA), "rollback debe restaurar el stock de A")
	assert.Equal(t, 1, db.stock(t, productB))
	assert.Empty(t, db.sales)
	assert.Empty(t, db.items)
}

func TestCheckout_ProductoInexistente(t *testing.T) {
	db := newFakeDB()

	_, err := checkoutWith(db, sellerID, dto.CheckoutRequest{
		Items: []dto.CheckoutItem{{ProductID: productA, Qty: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, db.sales)
}

func TestCheckout_CarritoVacio(t *testing.T) {
	db := newFakeDB(product(productA, "1000", 5))

	_, err := checkoutWith(db, sellerID, dto.CheckoutRequest{Items: nil})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 5, db.stock(t, productA))
}

func TestCheckout_CantidadInvalida(t *testing.T) {
	db := newFakeDB(product(productA, "1000", 5))

	_, err := checkoutWith(db, sellerID, dto.CheckoutRequest{
		Items: []dto.CheckoutItem{{ProductID: productA, Qty: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckout_MetodoDePago(t *testing.T) {
	db := newFakeDB(product(productA, "1000", 10))

	// vacío → CASH por defecto
	out, err := checkoutWith(db, sellerID, dto.CheckoutRequest{
		Items: []dto.CheckoutItem{{ProductID: productA, Qty: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCash, db.sales[out.SaleID].PaymentMethod)

	// MERCADO_PAGO se respeta
	out, err = checkoutWith(db, sellerID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItem{{ProductID: productA, Qty: 1}},
		PaymentMethod: entity.PaymentMercadoPago,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentMercadoPago, db.sales[out.SaleID].PaymentMethod)

	// método desconocido se rechaza antes de tocar el store
	_, err = checkoutWith(db, sellerID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItem{{ProductID: productA, Qty: 1}},
		PaymentMethod: "BITCOIN",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckout_SinUsuario(t *testing.T) {
	db := newFakeDB(product(productA, "1000", 5))

	_, err := checkoutWith(db, "", dto.CheckoutRequest{
		Items: []dto.CheckoutItem{{ProductID: productA, Qty: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCheckout_TotalCeroConItems_EsErrorDeIntegridad(t *testing.T) {
	db := newFakeDB(product(productA, "0", 5))

	_, err := checkoutWith(db, sellerID, dto.CheckoutRequest{
		Items: []dto.CheckoutItem{{ProductID: productA, Qty: 2}},
	})
	require.ErrorIs(t, err, domain.ErrTotalIntegrity)

	assert.Equal(t, 5, db.stock(t, productA), "la tx debe revertirse completa")
	assert.Empty(t, db.sales)
	assert.Empty(t, db.items)
}

// Checkouts concurrentes sobre un producto con stock N: a lo sumo N unidades
// vendidas en total; los intentos que exceden N fallan con stock insuficiente
// y no dejan efectos.
func TestCheckout_ConcurrenciaNoSobrevende(t *testing.T) {
	const stock = 5
	const attempts = 12

	db := newFakeDB(product(productA, "1000", stock))
	uc := checkout.NewUseCase(&fakeTxRunner{db: db})

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Checkout(context.Background(), sellerID, dto.CheckoutRequest{
				Items: []dto.CheckoutItem{{ProductID: productA, Qty: 1}},
			})
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.True(t, errors.Is(err, domain.ErrInsufficientStock),
				"los fallos deben ser por stock insuficiente, no %v", err)
		}
	}
	assert.Equal(t, stock, okCount, "exactamente N intentos deben vender")
	assert.Equal(t, 0, db.stock(t, productA), "el stock termina en cero, nunca negativo")
	assert.Len(t, db.sales, stock)
	assert.Len(t, db.items, stock)
}
