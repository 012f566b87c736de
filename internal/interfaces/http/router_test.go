package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/auth"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/inventory"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/reports"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/sales"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/usecase"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/access"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/infrastructure/memory"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/infrastructure/pdf"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/infrastructure/redis"
	apphttp "github.com/miguelitowashere/Proyecto-Final-Software/internal/interfaces/http"
	pkgjwt "github.com/miguelitowashere/Proyecto-Final-Software/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de prueba sobre el backend en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testServer struct {
	app        *fiber.App
	adminToken string
	staffToken string
	staffEmpID string
}

func newTestServer(t *testing.T, limiter apphttp.RateLimiter) *testServer {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	users := memory.NewUserRepository(store)
	employees := memory.NewEmployeeRepository(store)
	products := memory.NewProductRepository(store)
	categories := memory.NewCategoryRepository(store)
	collections := memory.NewCollectionRepository(store)
	saleRepo := memory.NewSaleRepository(store)
	txRunner := memory.NewTxRunner(store)
	ledger := inventory.NewStockLedger(nil)
	loc := time.FixedZone("COT", -5*3600)

	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura-1"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &entity.User{ID: uuid.NewString(), Username: "admin", Email: "admin@tienda.co", FirstName: "Marta", LastName: "Gil", PasswordHash: string(hash), IsStaff: true, Active: true}
	staff := &entity.User{ID: uuid.NewString(), Username: "caja1", FirstName: "Luis", LastName: "Mora", PasswordHash: string(hash), Active: true}
	require.NoError(t, users.Create(ctx, admin))
	require.NoError(t, users.Create(ctx, staff))
	adminEmp := &entity.Employee{ID: uuid.NewString(), UserID: admin.ID, Active: true, HireDate: time.Now()}
	staffEmp := &entity.Employee{ID: uuid.NewString(), UserID: staff.ID, Active: true, HireDate: time.Now()}
	require.NoError(t, employees.Create(ctx, adminEmp))
	require.NoError(t, employees.Create(ctx, staffEmp))

	jwtCfg := auth.JWTConfig{Secret: testJWTSecret, AccessMinutes: 60, RefreshMinutes: 120, Issuer: testIssuer}
	summary := reports.NewSummaryUseCase(memory.NewReportRepository(store), loc)
	generator := pdf.NewMarotoPDFGenerator("Tienda de prueba", loc)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           auth.NewAuthUseCase(users, employees, nil, jwtCfg),
		ProductUC:        usecase.NewProductUseCase(products, categories, collections),
		CatalogUC:        usecase.NewCatalogUseCase(categories, collections),
		ClientUC:         usecase.NewClientUseCase(memory.NewClientRepository(store)),
		EmployeeUC:       usecase.NewEmployeeUseCase(txRunner, employees, users),
		RegisterMovement: inventory.NewRegisterMovementUseCase(txRunner, ledger, employees, nil, nil),
		MovementUC:       inventory.NewMovementUseCase(memory.NewMovementRepository(store), employees),
		CreateSale:       sales.NewCreateSaleUseCase(txRunner, ledger, employees, nil, nil),
		SaleUC:           sales.NewSaleUseCase(saleRepo, nil),
		ReceiptUC:        sales.NewReceiptUseCase(saleRepo, generator),
		SummaryUC:        summary,
		SummaryPDFUC:     reports.NewPDFUseCase(summary, generator),
		Policy:           access.DefaultPolicy(),
		JWTSecret:        testJWTSecret,
		LoginLimiter:     limiter,
	})

	token := func(u *entity.User, empID string) string {
		tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, pkgjwt.Principal{UserID: u.ID, EmployeeID: empID, Role: u.Role()}, 60)
		require.NoError(t, err)
		return tok
	}
	return &testServer{
		app:        app,
		adminToken: token(admin, adminEmp.ID),
		staffToken: token(staff, staffEmp.ID),
		staffEmpID: staffEmp.ID,
	}
}

// do envía la petición y devuelve estado y cuerpo crudo.
func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (s *testServer) doJSON(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	status, raw := s.do(t, method, path, token, body)
	var out map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return status, out
}

func decimalField(t *testing.T, v any) decimal.Decimal {
	t.Helper()
	s, ok := v.(string)
	require.True(t, ok, "se esperaba un decimal serializado como string, llegó %v", v)
	return decimal.RequireFromString(s)
}

// seedProduct crea categoría y producto vía API y devuelve el ID del producto.
func (s *testServer) seedProduct(t *testing.T, name, price string) string {
	t.Helper()
	status, cat := s.doJSON(t, http.MethodPost, "/api/categorias", s.adminToken, map[string]any{"nombre": "Cat " + name})
	require.Equal(t, http.StatusCreated, status, cat)
	status, prod := s.doJSON(t, http.MethodPost, "/api/productos", s.adminToken, map[string]any{
		"nombre":          name,
		"categoria":       cat["id"],
		"precio_unitario": price,
		"stock_minimo":    2,
	})
	require.Equal(t, http.StatusCreated, status, prod)
	return prod["id"].(string)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_MovimientoVentaYResumen(t *testing.T) {
	s := newTestServer(t, nil)
	p1 := s.seedProduct(t, "Camiseta", "10.00")
	p2 := s.seedProduct(t, "Medias", "5.00")

	for _, id := range []string{p1, p2} {
		status, mov := s.doJSON(t, http.MethodPost, "/api/movimientos-inventario", s.staffToken, map[string]any{
			"producto": id, "tipo": "entrada", "cantidad": 10, "motivo": "compra",
		})
		require.Equal(t, http.StatusCreated, status, mov)
		assert.EqualValues(t, 10, mov["stock_resultante"])
		assert.Equal(t, s.staffEmpID, mov["empleado"], "sin empleado se usa el del token")
	}

	status, sale := s.doJSON(t, http.MethodPost, "/api/ventas", s.staffToken, map[string]any{
		"canal_venta": "nequi",
		"descuento":   "3.00",
		"detalles": []map[string]any{
			{"producto": p1, "cantidad": 2, "precio_unitario": "10.00"},
			{"producto": p2, "cantidad": 1},
		},
	})
	require.Equal(t, http.StatusCreated, status, sale)
	assert.True(t, decimalField(t, sale["subtotal"]).Equal(decimal.NewFromInt(25)))
	assert.True(t, decimalField(t, sale["total"]).Equal(decimal.NewFromInt(22)))
	assert.Equal(t, "Luis Mora", sale["empleado_nombre"])

	_, prod := s.doJSON(t, http.MethodGet, "/api/productos/"+p1, s.staffToken, nil)
	assert.EqualValues(t, 8, prod["stock_actual"])

	status, summary := s.doJSON(t, http.MethodGet, "/api/ventas/reportes/resumen?periodo=1m", s.adminToken, nil)
	require.Equal(t, http.StatusOK, status, summary)
	totals := summary["totales"].(map[string]any)
	assert.True(t, decimalField(t, totals["ingresos"]).Equal(decimal.NewFromInt(22)))
	top := summary["top_productos"].([]any)
	require.Len(t, top, 2)
	assert.Equal(t, "Camiseta", top[0].(map[string]any)["producto_nombre"])

	status, raw := s.do(t, http.MethodGet, "/api/ventas/"+sale["id"].(string)+"/recibo", s.staffToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestAPI_VentaConProductoInexistenteNoPersisteNada(t *testing.T) {
	s := newTestServer(t, nil)
	p1 := s.seedProduct(t, "Jean", "50")
	s.doJSON(t, http.MethodPost, "/api/movimientos-inventario", s.adminToken, map[string]any{
		"producto": p1, "tipo": "entrada", "cantidad": 5,
	})

	status, body := s.doJSON(t, http.MethodPost, "/api/ventas", s.staffToken, map[string]any{
		"canal_venta": "presencial",
		"detalles": []map[string]any{
			{"producto": p1, "cantidad": 2},
			{"producto": uuid.NewString(), "cantidad": 1},
		},
	})
	assert.Equal(t, http.StatusNotFound, status, body)

	_, prod := s.doJSON(t, http.MethodGet, "/api/productos/"+p1, s.staffToken, nil)
	assert.EqualValues(t, 5, prod["stock_actual"])

	status, raw := s.do(t, http.MethodGet, "/api/ventas", s.adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(raw))
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores y permisos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_ValidacionDevuelve422ConCampos(t *testing.T) {
	s := newTestServer(t, nil)

	status, body := s.doJSON(t, http.MethodPost, "/api/ventas", s.staffToken, map[string]any{
		"canal_venta": "efectivo",
		"detalles":    []map[string]any{},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "VALIDATION", body["code"])
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields, "canal_venta")
	assert.Contains(t, fields, "detalles")
}

func TestAPI_CuerpoIlegibleDevuelve400(t *testing.T) {
	s := newTestServer(t, nil)
	status, _ := s.do(t, http.MethodPost, "/api/clientes", s.staffToken, "{no es json")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_FiltroDeProductosInvalido(t *testing.T) {
	s := newTestServer(t, nil)
	status, body := s.doJSON(t, http.MethodGet, "/api/productos?precio_min=abc", s.staffToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["fields"], "precio_min")
}

func TestAPI_FiltroDeProductosPorPrecioYStock(t *testing.T) {
	s := newTestServer(t, nil)
	cheap := s.seedProduct(t, "Gorra", "8")
	mid := s.seedProduct(t, "Camisa", "30")
	s.seedProduct(t, "Chaqueta", "120")
	for _, id := range []string{cheap, mid} {
		s.doJSON(t, http.MethodPost, "/api/movimientos-inventario", s.adminToken, map[string]any{
			"producto": id, "tipo": "entrada", "cantidad": 3,
		})
	}

	status, body := s.doJSON(t, http.MethodGet, "/api/productos?precio_min=10&precio_max=50&stock_min=1", s.staffToken, nil)
	require.Equal(t, http.StatusOK, status)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, mid, items[0].(map[string]any)["id"])
}

func TestAPI_StaffNoPuedeEliminarVentasNiVerReportes(t *testing.T) {
	s := newTestServer(t, nil)

	status, body := s.doJSON(t, http.MethodDelete, "/api/ventas/"+uuid.NewString(), s.staffToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])

	status, _ = s.doJSON(t, http.MethodGet, "/api/ventas/reportes/resumen", s.staffToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.doJSON(t, http.MethodDelete, "/api/ventas/"+uuid.NewString(), s.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status, "admin sí puede; la venta no existe")
}

func TestAPI_PeriodoInvalido(t *testing.T) {
	s := newTestServer(t, nil)
	status, body := s.doJSON(t, http.MethodGet, "/api/ventas/reportes/resumen?periodo=2y", s.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_PERIOD", body["code"])
}

func TestAPI_CategoriaEnUsoDevuelve409(t *testing.T) {
	s := newTestServer(t, nil)
	p := s.seedProduct(t, "Blusa", "40")
	_, prod := s.doJSON(t, http.MethodGet, "/api/productos/"+p, s.adminToken, nil)

	status, body := s.doJSON(t, http.MethodDelete, "/api/categorias/"+prod["categoria"].(string), s.adminToken, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "IN_USE", body["code"])
}

func TestAPI_ProductoInexistenteDevuelve404(t *testing.T) {
	s := newTestServer(t, nil)
	status, body := s.doJSON(t, http.MethodGet, "/api/productos/"+uuid.NewString(), s.staffToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestAPI_IDNoUUIDDevuelve404(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{
		"/api/productos/not-a-uuid",
		"/api/categorias/123",
		"/api/clientes/abc",
		"/api/movimientos-inventario/abc",
		"/api/ventas/abc",
		"/api/ventas/abc/recibo",
	} {
		status, body := s.doJSON(t, http.MethodGet, path, s.adminToken, nil)
		assert.Equal(t, http.StatusNotFound, status, path)
		assert.Equal(t, "NOT_FOUND", body["code"], path)
	}

	status, _ := s.doJSON(t, http.MethodDelete, "/api/ventas/abc", s.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = s.doJSON(t, http.MethodPut, "/api/productos/abc", s.adminToken, map[string]any{"nombre": "X"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_FiltroPorIDNoUUIDDevuelve400(t *testing.T) {
	s := newTestServer(t, nil)

	for path, field := range map[string]string{
		"/api/productos?categoria=abc":             "categoria",
		"/api/productos?coleccion=abc":             "coleccion",
		"/api/movimientos-inventario?producto=abc": "producto",
		"/api/ventas?empleado=abc":                 "empleado",
	} {
		status, body := s.doJSON(t, http.MethodGet, path, s.adminToken, nil)
		assert.Equal(t, http.StatusBadRequest, status, path)
		assert.Equal(t, "INVALID_INPUT", body["code"], path)
		assert.Contains(t, body["fields"], field, path)
	}
}

func TestAPI_PrecioConMasDeDosDecimalesDevuelve400(t *testing.T) {
	s := newTestServer(t, nil)
	_, cat := s.doJSON(t, http.MethodPost, "/api/categorias", s.adminToken, map[string]any{"nombre": "Joyas"})

	status, body := s.doJSON(t, http.MethodPost, "/api/productos", s.adminToken, map[string]any{
		"nombre":          "Aretes",
		"categoria":       cat["id"],
		"precio_unitario": "12.345",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["fields"], "precio_unitario")
}

func TestAPI_EmpleadoMe(t *testing.T) {
	s := newTestServer(t, nil)
	status, body := s.doJSON(t, http.MethodGet, "/api/empleados/me", s.staffToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, s.staffEmpID, body["id"])
	assert.Equal(t, "Luis Mora", body["nombre_completo"])

	status, _ = s.doJSON(t, http.MethodGet, "/api/empleados", s.staffToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_LoginYRefresh(t *testing.T) {
	s := newTestServer(t, nil)

	status, body := s.doJSON(t, http.MethodPost, "/api/token", "", map[string]any{
		"username": "admin", "password": "clave-segura-1",
	})
	require.Equal(t, http.StatusOK, status, body)
	require.NotEmpty(t, body["access"])
	require.NotEmpty(t, body["refresh"])
	assert.Equal(t, "admin", body["user"].(map[string]any)["rol"])

	status, refreshed := s.doJSON(t, http.MethodPost, "/api/token/refresh", "", map[string]any{"refresh": body["refresh"]})
	require.Equal(t, http.StatusOK, status, refreshed)
	assert.NotEmpty(t, refreshed["access"])

	status, _ = s.doJSON(t, http.MethodPost, "/api/token", "", map[string]any{
		"username": "admin", "password": "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_LoginConLimiteDeIntentos(t *testing.T) {
	s := newTestServer(t, redis.NewMemoryLimiter(2, time.Minute))
	creds := map[string]any{"username": "caja1", "password": "mala-clave"}

	status, _ := s.doJSON(t, http.MethodPost, "/api/token", "", creds)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = s.doJSON(t, http.MethodPost, "/api/token", "", creds)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := s.doJSON(t, http.MethodPost, "/api/token", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "TOO_MANY_REQUESTS", body["code"])
}

func TestAPI_GoogleSinVerificadorConfigurado(t *testing.T) {
	s := newTestServer(t, nil)
	status, body := s.doJSON(t, http.MethodPost, "/api/auth/google", "", map[string]any{"credential": "x.y.z"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "TOKEN_VERIFICATION", body["code"])
}
