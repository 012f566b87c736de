package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/dto"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/inventory"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/sales"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type negativeStockCounter struct {
	products []string
}

func (m *negativeStockCounter) SaleCreated(string, decimal.Decimal) {}
func (m *negativeStockCounter) MovementRecorded(string, bool)       {}
func (m *negativeStockCounter) NegativeStock(id string)             { m.products = append(m.products, id) }

type fixture struct {
	products   repository.ProductRepository
	sales      repository.SaleRepository
	create     *sales.CreateSaleUseCase
	query      *sales.SaleUseCase
	metrics    *negativeStockCounter
	employeeID string
	categoryID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	cat := &entity.Category{ID: uuid.NewString(), Name: "Pantalones"}
	require.NoError(t, memory.NewCategoryRepository(store).Create(ctx, cat))

	user := &entity.User{ID: uuid.NewString(), Username: "caja1", FirstName: "Luis", Active: true}
	require.NoError(t, memory.NewUserRepository(store).Create(ctx, user))
	emp := &entity.Employee{ID: uuid.NewString(), UserID: user.ID, Active: true}
	employees := memory.NewEmployeeRepository(store)
	require.NoError(t, employees.Create(ctx, emp))

	metrics := &negativeStockCounter{}
	saleRepo := memory.NewSaleRepository(store)
	return &fixture{
		products: memory.NewProductRepository(store),
		sales:    saleRepo,
		create: sales.NewCreateSaleUseCase(
			memory.NewTxRunner(store), inventory.NewStockLedger(metrics), employees, nil, metrics,
		),
		query:      sales.NewSaleUseCase(saleRepo, nil),
		metrics:    metrics,
		employeeID: emp.ID,
		categoryID: cat.ID,
	}
}

func (f *fixture) newProduct(t *testing.T, name, price string, stock int) string {
	t.Helper()
	ctx := context.Background()
	p := &entity.Product{
		ID:         uuid.NewString(),
		Name:       name,
		CategoryID: f.categoryID,
		UnitPrice:  decimal.RequireFromString(price),
		MinStock:   entity.DefaultMinStock,
		Active:     true,
	}
	require.NoError(t, f.products.Create(ctx, p))
	require.NoError(t, f.products.UpdateStock(ctx, p.ID, stock, time.Now()))
	return p.ID
}

func (f *fixture) stock(t *testing.T, productID string) int {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación de ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_CalculaTotalesYDescuentaStock(t *testing.T) {
	f := newFixture(t)
	p1 := f.newProduct(t, "Jogger", "10.00", 10)
	p2 := f.newProduct(t, "Short", "5.00", 10)

	out, err := f.create.CreateSale(context.Background(), sales.CreateSaleInput{
		Channel:    entity.ChannelNequi,
		EmployeeID: f.employeeID,
		Discount:   decimal.RequireFromString("3.00"),
		Lines: []sales.LineInput{
			{ProductID: p1, Quantity: 2, UnitPrice: price("10.00")},
			{ProductID: p2, Quantity: 1, UnitPrice: price("5.00")},
		},
	})
	require.NoError(t, err)

	assert.True(t, out.Subtotal.Equal(decimal.RequireFromString("25.00")), "subtotal %s", out.Subtotal)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("22.00")), "total %s", out.Total)
	require.Len(t, out.Lines, 2)
	assert.True(t, out.Lines[0].Subtotal.Equal(decimal.RequireFromString("20.00")))
	assert.Equal(t, "Luis", out.EmployeeName)

	assert.Equal(t, 8, f.stock(t, p1))
	assert.Equal(t, 9, f.stock(t, p2))

	stored, err := f.query.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.Lines, 2)
	assert.True(t, stored.Total.Equal(out.Total))
}

func TestCreateSale_LineaConProductoInexistente_RevierteTodo(t *testing.T) {
	f := newFixture(t)
	p1 := f.newProduct(t, "Jogger", "10.00", 10)

	_, err := f.create.CreateSale(context.Background(), sales.CreateSaleInput{
		Channel:    entity.ChannelInStore,
		EmployeeID: f.employeeID,
		Lines: []sales.LineInput{
			{ProductID: p1, Quantity: 2},
			{ProductID: uuid.NewString(), Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.Equal(t, 10, f.stock(t, p1), "el descuento de P1 debe revertirse")
	list, err := f.sales.List(context.Background(), repository.SaleFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateSale_DescuentoMayorAlSubtotal_RevierteStock(t *testing.T) {
	f := newFixture(t)
	p1 := f.newProduct(t, "Camisa", "10.00", 4)

	_, err := f.create.CreateSale(context.Background(), sales.CreateSaleInput{
		Channel:    entity.ChannelCard,
		EmployeeID: f.employeeID,
		Discount:   decimal.RequireFromString("50"),
		Lines:      []sales.LineInput{{ProductID: p1, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, 4, f.stock(t, p1))
}

func TestCreateSale_SinPrecioUsaPrecioDelProducto(t *testing.T) {
	f := newFixture(t)
	p1 := f.newProduct(t, "Vestido", "89900", 3)

	out, err := f.create.CreateSale(context.Background(), sales.CreateSaleInput{
		Channel:    entity.ChannelDaviplata,
		EmployeeID: f.employeeID,
		Lines:      []sales.LineInput{{ProductID: p1, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("179800")))
}

func TestCreateSale_StockNegativoSePermiteYSeRegistra(t *testing.T) {
	f := newFixture(t)
	p1 := f.newProduct(t, "Bolso", "30", 1)

	_, err := f.create.CreateSale(context.Background(), sales.CreateSaleInput{
		Channel:    entity.ChannelBancolombia,
		EmployeeID: f.employeeID,
		Lines:      []sales.LineInput{{ProductID: p1, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, -2, f.stock(t, p1))
	assert.Equal(t, []string{p1}, f.metrics.products)
}

func TestCreateSale_ValidaEntrada(t *testing.T) {
	f := newFixture(t)
	p1 := f.newProduct(t, "Correa", "15", 5)

	cases := []struct {
		name string
		in   sales.CreateSaleInput
	}{
		{"canal desconocido", sales.CreateSaleInput{Channel: "efectivo", EmployeeID: f.employeeID, Lines: []sales.LineInput{{ProductID: p1, Quantity: 1}}}},
		{"sin lineas", sales.CreateSaleInput{Channel: entity.ChannelNequi, EmployeeID: f.employeeID}},
		{"cantidad cero", sales.CreateSaleInput{Channel: entity.ChannelNequi, EmployeeID: f.employeeID, Lines: []sales.LineInput{{ProductID: p1, Quantity: 0}}}},
		{"precio negativo", sales.CreateSaleInput{Channel: entity.ChannelNequi, EmployeeID: f.employeeID, Lines: []sales.LineInput{{ProductID: p1, Quantity: 1, UnitPrice: price("-1")}}}},
		{"descuento negativo", sales.CreateSaleInput{Channel: entity.ChannelNequi, EmployeeID: f.employeeID, Discount: decimal.NewFromInt(-1), Lines: []sales.LineInput{{ProductID: p1, Quantity: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.create.CreateSale(context.Background(), tc.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
	assert.Equal(t, 5, f.stock(t, p1))
}

func TestCreateSale_ImportesConMasDeDosDecimales_Rechazados(t *testing.T) {
	f := newFixture(t)
	p1 := f.newProduct(t, "Pañuelo", "10", 5)
	p2 := f.newProduct(t, "Broche", "10", 5)

	_, err := f.create.CreateSale(context.Background(), sales.CreateSaleInput{
		Channel:    entity.ChannelNequi,
		EmployeeID: f.employeeID,
		Lines: []sales.LineInput{
			{ProductID: p1, Quantity: 1, UnitPrice: price("0.005")},
			{ProductID: p2, Quantity: 1, UnitPrice: price("0.005")},
		},
	})
	var ferr *domain.FieldError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "detalles.precio_unitario", ferr.Field)

	_, err = f.create.CreateSale(context.Background(), sales.CreateSaleInput{
		Channel:    entity.ChannelNequi,
		EmployeeID: f.employeeID,
		Discount:   decimal.RequireFromString("1.999"),
		Lines:      []sales.LineInput{{ProductID: p1, Quantity: 1}},
	})
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "descuento", ferr.Field)

	assert.Equal(t, 5, f.stock(t, p1))
	assert.Equal(t, 5, f.stock(t, p2))
}

func TestCreateSale_SubtotalEsSumaExactaDeLineas(t *testing.T) {
	f := newFixture(t)
	p1 := f.newProduct(t, "Cinta", "0.01", 10)

	out, err := f.create.CreateSale(context.Background(), sales.CreateSaleInput{
		Channel:    entity.ChannelNequi,
		EmployeeID: f.employeeID,
		Lines: []sales.LineInput{
			{ProductID: p1, Quantity: 3},
			{ProductID: p1, Quantity: 1, UnitPrice: price("0.50")},
		},
	})
	require.NoError(t, err)

	sum := decimal.Zero
	for _, ln := range out.Lines {
		assert.True(t, ln.Subtotal.Equal(ln.Subtotal.Round(entity.MoneyPlaces)))
		sum = sum.Add(ln.Subtotal)
	}
	assert.True(t, out.Subtotal.Equal(sum))
	assert.True(t, out.Subtotal.Equal(decimal.RequireFromString("0.53")), "subtotal %s", out.Subtotal)
}

func TestCreateSaleFromRequest_UsaEmpleadoAutenticado(t *testing.T) {
	f := newFixture(t)
	p1 := f.newProduct(t, "Top", "20", 5)

	out, err := f.create.CreateSaleFromRequest(context.Background(), f.employeeID, dto.CreateSaleRequest{
		Channel: entity.ChannelNequi,
		Lines:   []dto.SaleLineRequest{{ProductID: p1, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, f.employeeID, out.EmployeeID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteSale_NoRestituyeStock(t *testing.T) {
	f := newFixture(t)
	p1 := f.newProduct(t, "Blusa", "25", 5)
	out, err := f.create.CreateSale(context.Background(), sales.CreateSaleInput{
		Channel:    entity.ChannelNequi,
		EmployeeID: f.employeeID,
		Lines:      []sales.LineInput{{ProductID: p1, Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, f.query.Delete(context.Background(), out.ID))

	got, err := f.query.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 3, f.stock(t, p1))
}
