package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

var _ repository.SalesReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados de ventas calculados sobre el almacén.
type ReportRepo struct {
	sc scope
}

// NewReportRepository construye el repositorio.
func NewReportRepository(s *Store) *ReportRepo {
	return &ReportRepo{sc: scope{s: s}}
}

func (r *ReportRepo) inWindow(from, to time.Time, fn func(t *tables, s entity.Sale)) {
	r.sc.read(func(t *tables) {
		for _, s := range t.sales {
			if s.Date.Before(from) || s.Date.After(to) {
				continue
			}
			fn(t, s)
		}
	})
}

func (r *ReportRepo) GetTotals(_ context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	revenue, discounts := decimal.Zero, decimal.Zero
	r.inWindow(from, to, func(_ *tables, s entity.Sale) {
		revenue = revenue.Add(s.Total)
		discounts = discounts.Add(s.Discount)
	})
	return revenue, discounts, nil
}

func (r *ReportRepo) GetTopProducts(_ context.Context, from, to time.Time, limit int) ([]repository.TopProductRow, error) {
	byProduct := map[string]*repository.TopProductRow{}
	r.inWindow(from, to, func(t *tables, s entity.Sale) {
		for _, l := range s.Lines {
			row, ok := byProduct[l.ProductID]
			if !ok {
				row = &repository.TopProductRow{
					ProductID:   l.ProductID,
					ProductName: t.products[l.ProductID].Name,
					Revenue:     decimal.Zero,
				}
				byProduct[l.ProductID] = row
			}
			row.Quantity += l.Quantity
			row.Revenue = row.Revenue.Add(l.Subtotal)
		}
	})
	rows := make([]repository.TopProductRow, 0, len(byProduct))
	for _, row := range byProduct {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.ProductName < b.ProductName
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *ReportRepo) GetMonthlyRevenue(_ context.Context, from, to time.Time, loc *time.Location) ([]repository.MonthlyRevenueRow, error) {
	if loc == nil {
		loc = time.UTC
	}
	byMonth := map[time.Time]decimal.Decimal{}
	r.inWindow(from, to, func(_ *tables, s entity.Sale) {
		d := s.Date.In(loc)
		month := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, loc)
		byMonth[month] = byMonth[month].Add(s.Total)
	})
	rows := make([]repository.MonthlyRevenueRow, 0, len(byMonth))
	for m, total := range byMonth {
		rows = append(rows, repository.MonthlyRevenueRow{Month: m, Total: total})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month.Before(rows[j].Month) })
	return rows, nil
}
