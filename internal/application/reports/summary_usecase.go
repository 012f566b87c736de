// Package reports contiene el resumen de ventas por periodo: totales, productos más vendidos
// y serie mensual.
package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/dto"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

const topProductsLimit = 5

// SummaryUseCase agrega el histórico de ventas. Solo lectura; cada llamada consulta la DB.
type SummaryUseCase struct {
	repo repository.SalesReportRepository
	loc  *time.Location
	now  func() time.Time
}

// NewSummaryUseCase construye el caso de uso. loc es la zona horaria del negocio para agrupar meses.
func NewSummaryUseCase(repo repository.SalesReportRepository, loc *time.Location) *SummaryUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &SummaryUseCase{repo: repo, loc: loc, now: time.Now}
}

// Summary datos crudos del resumen, compartidos por la respuesta JSON y el PDF.
type Summary = dto.SalesSummaryResponse

// Summarize calcula el resumen del periodo (1m, 3m, 6m, 12m).
//
// Tres consultas en paralelo:
//  1. GetTotals          → ingresos y descuentos
//  2. GetTopProducts     → top 5 por cantidad
//  3. GetMonthlyRevenue  → serie mensual
func (uc *SummaryUseCase) Summarize(ctx context.Context, period string) (*Summary, error) {
	months, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	if period == "" {
		period = DefaultPeriod
	}
	from, to := Window(uc.now().In(uc.loc), months)

	var (
		totals  dto.ReportTotals
		top     []repository.TopProductRow
		monthly []repository.MonthlyRevenueRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rev, disc, err := uc.repo.GetTotals(gctx, from, to)
		if err != nil {
			return fmt.Errorf("resumen: totales: %w", err)
		}
		totals = dto.ReportTotals{Revenue: rev, Discounts: disc}
		return nil
	})
	g.Go(func() error {
		rows, err := uc.repo.GetTopProducts(gctx, from, to, topProductsLimit)
		if err != nil {
			return fmt.Errorf("resumen: top productos: %w", err)
		}
		top = rows
		return nil
	})
	g.Go(func() error {
		rows, err := uc.repo.GetMonthlyRevenue(gctx, from, to, uc.loc)
		if err != nil {
			return fmt.Errorf("resumen: serie mensual: %w", err)
		}
		monthly = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortTopProducts(top)
	if len(top) > topProductsLimit {
		top = top[:topProductsLimit]
	}
	sort.SliceStable(monthly, func(i, j int) bool { return monthly[i].Month.Before(monthly[j].Month) })

	out := &Summary{
		Period:      period,
		From:        from,
		To:          to,
		Totals:      totals,
		TopProducts: make([]dto.TopProductResponse, 0, len(top)),
		Series:      make([]dto.MonthlyPoint, 0, len(monthly)),
	}
	for _, r := range top {
		out.TopProducts = append(out.TopProducts, dto.TopProductResponse{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
			Revenue:     r.Revenue,
		})
	}
	for _, m := range monthly {
		out.Series = append(out.Series, dto.MonthlyPoint{
			Month: m.Month.In(uc.loc).Format("2006-01"),
			Total: m.Total,
		})
	}
	return out, nil
}

// sortTopProducts cantidad desc; empates por ingresos desc y luego nombre.
func sortTopProducts(rows []repository.TopProductRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		if c := a.Revenue.Cmp(b.Revenue); c != 0 {
			return c > 0
		}
		return a.ProductName < b.ProductName
	})
}
