package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/dto"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/usecase"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/infrastructure/memory"
)

type catalogFixture struct {
	store    *memory.Store
	products *usecase.ProductUseCase
	catalog  *usecase.CatalogUseCase
}

func newCatalogFixture() *catalogFixture {
	store := memory.NewStore()
	categories := memory.NewCategoryRepository(store)
	collections := memory.NewCollectionRepository(store)
	return &catalogFixture{
		store:    store,
		products: usecase.NewProductUseCase(memory.NewProductRepository(store), categories, collections),
		catalog:  usecase.NewCatalogUseCase(categories, collections),
	}
}

func (f *catalogFixture) category(t *testing.T, name string) string {
	t.Helper()
	c, err := f.catalog.CreateCategory(context.Background(), dto.CategoryRequest{Name: name})
	require.NoError(t, err)
	return c.ID
}

func (f *catalogFixture) product(t *testing.T, categoryID, name, price string, stock int) string {
	t.Helper()
	p, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		Name:       name,
		CategoryID: categoryID,
		UnitPrice:  decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	if stock != 0 {
		require.NoError(t, memory.NewProductRepository(f.store).UpdateStock(context.Background(), p.ID, stock, time.Now()))
	}
	return p.ID
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intp(n int) *int { return &n }

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_ValoresPorDefecto(t *testing.T) {
	f := newCatalogFixture()
	cat := f.category(t, "Camisetas")

	p, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Camiseta oversize",
		CategoryID: cat,
		UnitPrice:  decimal.RequireFromString("59900"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, entity.DefaultMinStock, p.MinStock)
	assert.True(t, p.Active)
	assert.True(t, p.LowStock)
	assert.True(t, p.OutOfStock)
	assert.Equal(t, "Camisetas", p.CategoryName)
	assert.Nil(t, p.CollectionID)
}

func TestCreateProduct_CategoriaInexistente(t *testing.T) {
	f := newCatalogFixture()
	_, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Sin categoría",
		CategoryID: "00000000-0000-0000-0000-000000000099",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCreateProduct_PrecioConMasDeDosDecimales(t *testing.T) {
	f := newCatalogFixture()
	cat := f.category(t, "Accesorios")

	_, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Pulsera",
		CategoryID: cat,
		UnitPrice:  decimal.RequireFromString("12.345"),
	})
	var ferr *domain.FieldError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "precio_unitario", ferr.Field)

	// ceros a la derecha no cuentan como decimales extra
	id := f.product(t, cat, "Anillo", "12.500", 0)
	_, err = f.products.Update(context.Background(), id, dto.UpdateProductRequest{UnitPrice: dec("0.001")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestListProducts_FiltrosSeCombinanConAND(t *testing.T) {
	f := newCatalogFixture()
	cat := f.category(t, "Pantalones")
	f.product(t, cat, "Barato", "5", 10)
	f.product(t, cat, "En rango", "20", 3)
	f.product(t, cat, "En rango sin stock", "30", 0)
	f.product(t, cat, "Caro", "80", 10)

	out, err := f.products.List(context.Background(), dto.ProductListRequest{
		PriceMin: dec("10"),
		PriceMax: dec("50"),
		StockMin: intp(1),
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "En rango", out.Items[0].Name)
}

func TestListProducts_NombreYStockBajo(t *testing.T) {
	f := newCatalogFixture()
	cat := f.category(t, "Buzos")
	f.product(t, cat, "Buzo Capotero", "90", 2)
	f.product(t, cat, "Buzo Clásico", "90", 40)
	f.product(t, cat, "Chaqueta", "150", 1)

	out, err := f.products.List(context.Background(), dto.ProductListRequest{Name: "buzo", LowStock: true})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Buzo Capotero", out.Items[0].Name)
}

func TestListProducts_OmiteInactivos(t *testing.T) {
	f := newCatalogFixture()
	cat := f.category(t, "Gorras")
	id := f.product(t, cat, "Gorra plana", "40", 1)
	inactive := false
	_, err := f.products.Update(context.Background(), id, dto.UpdateProductRequest{Active: &inactive})
	require.NoError(t, err)

	out, err := f.products.List(context.Background(), dto.ProductListRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestListProducts_RangoInvertido(t *testing.T) {
	f := newCatalogFixture()
	_, err := f.products.List(context.Background(), dto.ProductListRequest{PriceMin: dec("50"), PriceMax: dec("10")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUpdateProduct_NoTocaStockYQuitaColeccion(t *testing.T) {
	f := newCatalogFixture()
	cat := f.category(t, "Vestidos")
	col, err := f.catalog.CreateCollection(context.Background(), dto.CollectionRequest{Name: "Verano 2025", Season: "verano"})
	require.NoError(t, err)

	colID := col.ID
	p, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		Name:         "Vestido lino",
		CategoryID:   cat,
		CollectionID: &colID,
		UnitPrice:    decimal.RequireFromString("120000"),
	})
	require.NoError(t, err)
	require.NotNil(t, p.CollectionID)
	require.NoError(t, memory.NewProductRepository(f.store).UpdateStock(context.Background(), p.ID, 7, time.Now()))

	empty := ""
	updated, err := f.products.Update(context.Background(), p.ID, dto.UpdateProductRequest{
		CollectionID: &empty,
		UnitPrice:    dec("99000"),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.CollectionID)
	assert.Equal(t, 7, updated.Stock)
	assert.True(t, updated.UnitPrice.Equal(decimal.RequireFromString("99000")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteCategory_ConProductos_EnUso(t *testing.T) {
	f := newCatalogFixture()
	cat := f.category(t, "Jeans")
	f.product(t, cat, "Jean slim", "100", 0)

	err := f.catalog.DeleteCategory(context.Background(), cat)
	assert.True(t, errors.Is(err, domain.ErrInUse))
}

func TestCreateCategory_NombreDuplicado(t *testing.T) {
	f := newCatalogFixture()
	f.category(t, "Accesorios")
	_, err := f.catalog.CreateCategory(context.Background(), dto.CategoryRequest{Name: "Accesorios"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestDeleteCollection_DejaProductosSinColeccion(t *testing.T) {
	f := newCatalogFixture()
	cat := f.category(t, "Faldas")
	col, err := f.catalog.CreateCollection(context.Background(), dto.CollectionRequest{Name: "Invierno"})
	require.NoError(t, err)
	colID := col.ID
	p, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		Name: "Falda midi", CategoryID: cat, CollectionID: &colID, UnitPrice: decimal.NewFromInt(80),
	})
	require.NoError(t, err)

	require.NoError(t, f.catalog.DeleteCollection(context.Background(), col.ID))

	got, err := f.products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.CollectionID)
}
