package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/ports"
)

var _ ports.BusinessMetrics = (*Metrics)(nil)

// Metrics contadores de negocio y de HTTP registrados en un Registerer de Prometheus.
type Metrics struct {
	salesTotal     *prometheus.CounterVec
	salesRevenue   *prometheus.CounterVec
	movements      *prometheus.CounterVec
	negativeStock  prometheus.Counter
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	loginThrottled prometheus.Counter
}

// New registra las métricas en reg. Con reg nil devuelve un Metrics que no registra nada.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	m := &Metrics{
		salesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ventas_total",
			Help: "Ventas registradas por canal.",
		}, []string{"canal"}),
		salesRevenue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ventas_ingresos_total",
			Help: "Suma del total de las ventas registradas por canal.",
		}, []string{"canal"}),
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "movimientos_inventario_total",
			Help: "Movimientos de inventario por tipo; clamped=true si el stock se recortó a cero.",
		}, []string{"tipo", "clamped"}),
		negativeStock: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stock_negativo_total",
			Help: "Líneas de venta que dejaron un producto con stock negativo.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Peticiones HTTP por método, ruta y estado.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP en segundos.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		loginThrottled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "login_throttled_total",
			Help: "Intentos de login rechazados por límite de frecuencia.",
		}),
	}
	reg.MustRegister(
		m.salesTotal, m.salesRevenue, m.movements, m.negativeStock,
		m.httpRequests, m.httpDuration, m.loginThrottled,
	)
	return m
}

func (m *Metrics) SaleCreated(channel string, total decimal.Decimal) {
	if m == nil || m.salesTotal == nil {
		return
	}
	label := normalizeLabel(channel)
	m.salesTotal.WithLabelValues(label).Inc()
	m.salesRevenue.WithLabelValues(label).Add(total.InexactFloat64())
}

func (m *Metrics) MovementRecorded(kind string, clamped bool) {
	if m == nil || m.movements == nil {
		return
	}
	m.movements.WithLabelValues(normalizeLabel(kind), strconv.FormatBool(clamped)).Inc()
}

// NegativeStock no etiqueta por producto para no disparar la cardinalidad; el ID queda en el log.
func (m *Metrics) NegativeStock(string) {
	if m == nil || m.negativeStock == nil {
		return
	}
	m.negativeStock.Inc()
}

// ObserveRequest registra una petición HTTP ya respondida.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.httpRequests == nil {
		return
	}
	route = normalizeLabel(route)
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// LoginThrottled cuenta un login rechazado por el limitador.
func (m *Metrics) LoginThrottled() {
	if m == nil || m.loginThrottled == nil {
		return
	}
	m.loginThrottled.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
