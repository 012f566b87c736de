package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

var _ repository.SalesReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el resumen de ventas.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// GetTotals suma total y descuento de las ventas del periodo.
// COALESCE devuelve cero si no hay filas (periodo sin ventas).
func (r *ReportRepo) GetTotals(ctx context.Context, from, to time.Time) (revenue, discounts decimal.Decimal, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(s.total),    0) AS revenue,
	    COALESCE(SUM(s.discount), 0) AS discounts
	FROM sales s
	WHERE s.date BETWEEN $1 AND $2`

	err = r.pool.QueryRow(ctx, query, from, to).Scan(&revenue, &discounts)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("reports.GetTotals: %w", err)
	}
	return revenue, discounts, nil
}

// GetTopProducts devuelve los `limit` productos más vendidos por cantidad.
// Empates: ingresos desc y luego nombre.
func (r *ReportRepo) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProductRow, error) {
	const query = `
	SELECT
	    p.id             AS product_id,
	    p.name           AS product_name,
	    SUM(l.quantity)  AS quantity_sold,
	    SUM(l.subtotal)  AS revenue
	FROM sale_lines l
	JOIN sales    s ON s.id = l.sale_id
	JOIN products p ON p.id = l.product_id
	WHERE s.date BETWEEN $1 AND $2
	GROUP BY p.id, p.name
	ORDER BY quantity_sold DESC, revenue DESC, p.name ASC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.GetTopProducts: %w", err)
	}
	defer rows.Close()

	results := []repository.TopProductRow{}
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Quantity, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reports.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reports.GetTopProducts rows: %w", err)
	}
	return results, nil
}

// GetMonthlyRevenue agrupa el total vendido por mes calendario en la zona horaria del negocio.
func (r *ReportRepo) GetMonthlyRevenue(ctx context.Context, from, to time.Time, loc *time.Location) ([]repository.MonthlyRevenueRow, error) {
	if loc == nil {
		loc = time.UTC
	}
	const query = `
	SELECT
	    to_char(date_trunc('month', s.date AT TIME ZONE $3), 'YYYY-MM') AS month,
	    SUM(s.total)                                                    AS total
	FROM sales s
	WHERE s.date BETWEEN $1 AND $2
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.pool.Query(ctx, query, from, to, loc.String())
	if err != nil {
		return nil, fmt.Errorf("reports.GetMonthlyRevenue: %w", err)
	}
	defer rows.Close()

	results := []repository.MonthlyRevenueRow{}
	for rows.Next() {
		var (
			month string
			row   repository.MonthlyRevenueRow
		)
		if err := rows.Scan(&month, &row.Total); err != nil {
			return nil, fmt.Errorf("reports.GetMonthlyRevenue scan: %w", err)
		}
		t, err := time.ParseInLocation("2006-01", month, loc)
		if err != nil {
			return nil, fmt.Errorf("reports.GetMonthlyRevenue mes %q: %w", month, err)
		}
		row.Month = t
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reports.GetMonthlyRevenue rows: %w", err)
	}
	return results, nil
}
