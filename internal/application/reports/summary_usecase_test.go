package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/infrastructure/memory"
)

var bogota = time.FixedZone("COT", -5*3600)

type salesFixture struct {
	store      *memory.Store
	employeeID string
	categoryID string
}

func newSalesFixture(t *testing.T) *salesFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	cat := &entity.Category{ID: uuid.NewString(), Name: "Accesorios"}
	require.NoError(t, memory.NewCategoryRepository(store).Create(ctx, cat))
	user := &entity.User{ID: uuid.NewString(), Username: "vendedor", Active: true}
	require.NoError(t, memory.NewUserRepository(store).Create(ctx, user))
	emp := &entity.Employee{ID: uuid.NewString(), UserID: user.ID, Active: true}
	require.NoError(t, memory.NewEmployeeRepository(store).Create(ctx, emp))
	return &salesFixture{store: store, employeeID: emp.ID, categoryID: cat.ID}
}

func (f *salesFixture) product(t *testing.T, name string) string {
	t.Helper()
	p := &entity.Product{ID: uuid.NewString(), Name: name, CategoryID: f.categoryID, Active: true}
	require.NoError(t, memory.NewProductRepository(f.store).Create(context.Background(), p))
	return p.ID
}

type line struct {
	productID string
	qty       int
	price     string
}

func (f *salesFixture) sale(t *testing.T, at time.Time, discount string, lines ...line) {
	t.Helper()
	ctx := context.Background()
	repo := memory.NewSaleRepository(f.store)
	s := &entity.Sale{
		ID:         uuid.NewString(),
		Channel:    entity.ChannelNequi,
		EmployeeID: f.employeeID,
		Discount:   decimal.RequireFromString(discount),
		Date:       at,
	}
	subtotal := decimal.Zero
	for _, ln := range lines {
		subtotal = subtotal.Add(decimal.RequireFromString(ln.price).Mul(decimal.NewFromInt(int64(ln.qty))))
	}
	s.Subtotal = subtotal
	s.Total = subtotal.Sub(s.Discount)
	require.NoError(t, repo.Create(ctx, s))
	for _, ln := range lines {
		price := decimal.RequireFromString(ln.price)
		require.NoError(t, repo.CreateLine(ctx, &entity.SaleLine{
			ID:        uuid.NewString(),
			SaleID:    s.ID,
			ProductID: ln.productID,
			Quantity:  ln.qty,
			UnitPrice: price,
			Subtotal:  price.Mul(decimal.NewFromInt(int64(ln.qty))),
		}))
	}
}

func (f *salesFixture) useCase(now time.Time) *SummaryUseCase {
	uc := NewSummaryUseCase(memory.NewReportRepository(f.store), bogota)
	uc.now = func() time.Time { return now }
	return uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Periodos
// ──────────────────────────────────────────────────────────────────────────────

func TestParsePeriod(t *testing.T) {
	for code, want := range map[string]int{"": 1, "1m": 1, "3m": 3, "6m": 6, "12m": 12} {
		got, err := ParsePeriod(code)
		require.NoError(t, err, code)
		assert.Equal(t, want, got, code)
	}
	for _, code := range []string{"2m", "1y", "abc"} {
		_, err := ParsePeriod(code)
		assert.True(t, errors.Is(err, domain.ErrInvalidPeriod), code)
	}
}

func TestWindow_MesesCalendario(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, bogota)
	from, to := Window(now, 3)
	assert.Equal(t, time.Date(2024, time.December, 15, 10, 0, 0, 0, bogota), from)
	assert.Equal(t, now, to)
}

func TestWindow_FinDeMesRecortaAlUltimoDia(t *testing.T) {
	cases := []struct {
		name   string
		now    time.Time
		months int
		from   time.Time
	}{
		{"31-mar 1m", time.Date(2025, time.March, 31, 18, 0, 0, 0, bogota), 1, time.Date(2025, time.February, 28, 18, 0, 0, 0, bogota)},
		{"31-may 3m", time.Date(2025, time.May, 31, 9, 0, 0, 0, bogota), 3, time.Date(2025, time.February, 28, 9, 0, 0, 0, bogota)},
		{"bisiesto", time.Date(2024, time.March, 31, 0, 0, 0, 0, bogota), 1, time.Date(2024, time.February, 29, 0, 0, 0, 0, bogota)},
		{"31-ene 6m cruza año", time.Date(2025, time.January, 31, 12, 0, 0, 0, bogota), 6, time.Date(2024, time.July, 31, 12, 0, 0, 0, bogota)},
		{"31-dic 12m", time.Date(2025, time.December, 31, 12, 0, 0, 0, bogota), 12, time.Date(2024, time.December, 31, 12, 0, 0, 0, bogota)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			from, _ := Window(tc.now, tc.months)
			assert.Equal(t, tc.from, from)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen
// ──────────────────────────────────────────────────────────────────────────────

func TestSummarize_SumaSoloVentasDentroDeLaVentana(t *testing.T) {
	f := newSalesFixture(t)
	p := f.product(t, "Gafas")
	now := time.Date(2025, time.June, 20, 12, 0, 0, 0, bogota)

	f.sale(t, now.AddDate(0, 0, -3), "0", line{p, 1, "100"})
	f.sale(t, now.AddDate(0, 0, -10), "10", line{p, 1, "60"})
	f.sale(t, now.AddDate(0, -2, 0), "0", line{p, 5, "100"})

	s, err := f.useCase(now).Summarize(context.Background(), "1m")
	require.NoError(t, err)

	assert.Equal(t, "1m", s.Period)
	assert.True(t, s.Totals.Revenue.Equal(decimal.NewFromInt(150)), "ingresos %s", s.Totals.Revenue)
	assert.True(t, s.Totals.Discounts.Equal(decimal.NewFromInt(10)))
	require.Len(t, s.TopProducts, 1)
	assert.Equal(t, 2, s.TopProducts[0].Quantity)
}

func TestSummarize_FinDeMesIncluyeVentasDelMesAnterior(t *testing.T) {
	f := newSalesFixture(t)
	p := f.product(t, "Bufanda")
	now := time.Date(2025, time.March, 31, 12, 0, 0, 0, bogota)

	f.sale(t, time.Date(2025, time.March, 2, 10, 0, 0, 0, bogota), "0", line{p, 1, "100"})

	s, err := f.useCase(now).Summarize(context.Background(), "1m")
	require.NoError(t, err)
	assert.True(t, s.Totals.Revenue.Equal(decimal.NewFromInt(100)), "ingresos %s", s.Totals.Revenue)
}

func TestSummarize_SerieMensualCronologica(t *testing.T) {
	f := newSalesFixture(t)
	p := f.product(t, "Reloj")
	now := time.Date(2025, time.June, 20, 12, 0, 0, 0, bogota)

	f.sale(t, time.Date(2025, time.June, 2, 9, 0, 0, 0, bogota), "0", line{p, 1, "30"})
	f.sale(t, time.Date(2025, time.April, 5, 9, 0, 0, 0, bogota), "0", line{p, 1, "10"})
	f.sale(t, time.Date(2025, time.April, 25, 9, 0, 0, 0, bogota), "0", line{p, 1, "15"})
	// 1 de mayo 02:00 UTC todavía es 30 de abril en Bogotá.
	f.sale(t, time.Date(2025, time.May, 1, 2, 0, 0, 0, time.UTC), "0", line{p, 1, "5"})

	s, err := f.useCase(now).Summarize(context.Background(), "3m")
	require.NoError(t, err)

	require.Len(t, s.Series, 2)
	assert.Equal(t, "2025-04", s.Series[0].Month)
	assert.True(t, s.Series[0].Total.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, "2025-06", s.Series[1].Month)
}

func TestSummarize_TopProductosPorCantidadMaximoCinco(t *testing.T) {
	f := newSalesFixture(t)
	now := time.Date(2025, time.June, 20, 12, 0, 0, 0, bogota)
	at := now.AddDate(0, 0, -1)

	names := []string{"A", "B", "C", "D", "E", "F"}
	for i, name := range names {
		p := f.product(t, name)
		f.sale(t, at, "0", line{p, i + 1, "10"})
	}

	s, err := f.useCase(now).Summarize(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, s.TopProducts, 5)
	assert.Equal(t, "F", s.TopProducts[0].ProductName)
	assert.Equal(t, 6, s.TopProducts[0].Quantity)
	assert.Equal(t, "B", s.TopProducts[4].ProductName)
	assert.Equal(t, DefaultPeriod, s.Period)
}

func TestSummarize_PeriodoInvalido(t *testing.T) {
	f := newSalesFixture(t)
	_, err := f.useCase(time.Now()).Summarize(context.Background(), "5m")
	assert.True(t, errors.Is(err, domain.ErrInvalidPeriod))
}

func TestSortTopProducts_Desempates(t *testing.T) {
	rows := []repository.TopProductRow{
		{ProductName: "Zeta", Quantity: 3, Revenue: decimal.NewFromInt(30)},
		{ProductName: "Alfa", Quantity: 3, Revenue: decimal.NewFromInt(30)},
		{ProductName: "Beta", Quantity: 3, Revenue: decimal.NewFromInt(90)},
		{ProductName: "Gama", Quantity: 7, Revenue: decimal.NewFromInt(10)},
	}
	sortTopProducts(rows)

	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.ProductName
	}
	assert.Equal(t, []string{"Gama", "Beta", "Alfa", "Zeta"}, got)
}

func TestSortTopProducts_EmpatadosAntesQueCantidadMenor(t *testing.T) {
	rows := []repository.TopProductRow{
		{ProductName: "Correa", Quantity: 3, Revenue: decimal.NewFromInt(900)},
		{ProductName: "Blusa", Quantity: 5, Revenue: decimal.NewFromInt(50)},
		{ProductName: "Abrigo", Quantity: 5, Revenue: decimal.NewFromInt(50)},
	}
	sortTopProducts(rows)

	got := make([]string, len(rows))
	qtys := make([]int, len(rows))
	for i, r := range rows {
		got[i] = r.ProductName
		qtys[i] = r.Quantity
	}
	assert.Equal(t, []int{5, 5, 3}, qtys)
	assert.Equal(t, []string{"Abrigo", "Blusa", "Correa"}, got, "el empate se resuelve por nombre y no desplaza a la cantidad menor")
}
