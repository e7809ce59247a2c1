// Package analytics contiene el caso de uso del tablero del kiosco:
// KPIs de ventas, ranking de productos y alertas de stock bajo.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kiosco-pos-api/internal/application/dto"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/repository"
	"github.com/jhoicas/kiosco-pos-api/pkg/money"
)

const (
	dashboardTopProducts = 10 // filas del ranking de más vendidos
	dashboardRecentSales = 10 // ventas recientes listadas
)

// DashboardUseCase arma el resumen del tablero. Todas las ventanas de fecha
// se calculan en la zona horaria de referencia del negocio, no en UTC,
// para que "hoy" coincida con el día del mostrador.
//
// Fuente de datos: DashboardRepository + ProductRepository (solo lectura).
type DashboardUseCase struct {
	dashboardRepo     repository.DashboardRepository
	productRepo       repository.ProductRepository
	location          *time.Location
	lowStockThreshold int
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	dashboardRepo repository.DashboardRepository,
	productRepo repository.ProductRepository,
	location *time.Location,
	lowStockThreshold int,
) *DashboardUseCase {
	return &DashboardUseCase{
		dashboardRepo:     dashboardRepo,
		productRepo:       productRepo,
		location:          location,
		lowStockThreshold: lowStockThreshold,
	}
}

// GetSummary construye el DashboardResponse.
//
// Consultas en paralelo:
//  1. SumTotals(hoy) + CountSales(hoy) → vendido hoy y ticket promedio
//  2. SumTotals(últimos 7 días)       → vendido semana
//  3. SumTotals(mes calendario)       → vendido mes
//  4. TopProducts / RecentSales / stock bajo
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	now := time.Now().In(uc.location)

	// ── Rangos de fecha en la zona de referencia ──────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.location)
	todayEnd := todayStart.Add(24 * time.Hour)
	weekStart := now.Add(-7 * 24 * time.Hour)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.location)

	type sumResult struct {
		value decimal.Decimal
		err   error
	}
	type countResult struct {
		value int
		err   error
	}
	type topResult struct {
		rows []repository.TopProductRow
		err  error
	}
	type recentResult struct {
		rows []repository.RecentSaleRow
		err  error
	}
	type lowStockResult struct {
		products []dto.ProductResponse
		err      error
	}

	todayCh := make(chan sumResult, 1)
	weekCh := make(chan sumResult, 1)
	monthCh := make(chan sumResult, 1)
	countCh := make(chan countResult, 1)
	topCh := make(chan topResult, 1)
	recentCh := make(chan recentResult, 1)
	lowCh := make(chan lowStockResult, 1)

	go func() {
		v, err := uc.dashboardRepo.SumTotals(ctx, todayStart, todayEnd)
		todayCh <- sumResult{v, err}
	}()
	go func() {
		v, err := uc.dashboardRepo.SumTotals(ctx, weekStart, now)
		weekCh <- sumResult{v, err}
	}()
	go func() {
		v, err := uc.dashboardRepo.SumTotals(ctx, monthStart, todayEnd)
		monthCh <- sumResult{v, err}
	}()
	go func() {
		v, err := uc.dashboardRepo.CountSales(ctx, todayStart, todayEnd)
		countCh <- countResult{v, err}
	}()
	go func() {
		rows, err := uc.dashboardRepo.TopProducts(ctx, dashboardTopProducts)
		topCh <- topResult{rows, err}
	}()
	go func() {
		rows, err := uc.dashboardRepo.RecentSales(ctx, dashboardRecentSales)
		recentCh <- recentResult{rows, err}
	}()
	go func() {
		products, err := uc.lowStock()
		lowCh <- lowStockResult{products, err}
	}()

	today := <-todayCh
	week := <-weekCh
	month := <-monthCh
	count := <-countCh
	top := <-topCh
	recent := <-recentCh
	low := <-lowCh

	if today.err != nil {
		return nil, fmt.Errorf("tablero: vendido hoy: %w", today.err)
	}
	if week.err != nil {
		return nil, fmt.Errorf("tablero: vendido semana: %w", week.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("tablero: vendido mes: %w", month.err)
	}
	if count.err != nil {
		return nil, fmt.Errorf("tablero: ventas de hoy: %w", count.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("tablero: top productos: %w", top.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("tablero: ventas recientes: %w", recent.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("tablero: stock bajo: %w", low.err)
	}

	ticketAverage := decimal.Zero
	if count.value > 0 {
		ticketAverage = money.Round2(today.value.Div(decimal.NewFromInt(int64(count.value))))
	}

	out := &dto.DashboardResponse{
		KPIs: dto.DashboardKPIs{
			SoldToday:          money.Round2(today.value),
			SoldWeek:           money.Round2(week.value),
			SoldMonth:          money.Round2(month.value),
			SalesCountToday:    count.value,
			TicketAverageToday: ticketAverage,
			SoldTodayFormatted: money.FormatCOP(today.value),
		},
		TopProducts:      make([]dto.TopProductDTO, 0, len(top.rows)),
		RecentSales:      make([]dto.RecentSaleDTO, 0, len(recent.rows)),
		LowStockProducts: make([]dto.ProductResponse, 0, len(low.products)),
	}
	for _, row := range top.rows {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductID: row.ProductID,
			Name:      row.Name,
			QtySold:   row.QtySold,
			TotalSold: row.TotalSold,
		})
	}
	for _, row := range recent.rows {
		out.RecentSales = append(out.RecentSales, dto.RecentSaleDTO{
			ID:            row.ID,
			CreatedAt:     row.CreatedAt,
			Total:         row.Total,
			ItemsCount:    row.ItemsCount,
			PaymentMethod: row.PaymentMethod,
		})
	}
	out.LowStockProducts = append(out.LowStockProducts, low.products...)
	return out, nil
}

func (uc *DashboardUseCase) lowStock() ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.ListLowStock(uc.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		rows = append(rows, dto.ProductResponse{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Stock:     p.Stock,
			Barcode:   p.Barcode,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	return rows, nil
}
