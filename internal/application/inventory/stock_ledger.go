package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/ports"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	domaininv "github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/inventory"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

// StockLedger aplica el efecto de movimientos y líneas de venta sobre el stock de los productos.
// Siempre opera con repositorios atados a la transacción del caller y bloquea la fila del
// producto (GetForUpdate) antes de leer el stock.
type StockLedger struct {
	metrics ports.BusinessMetrics
}

// NewStockLedger construye el servicio. metrics puede ser nil.
func NewStockLedger(metrics ports.BusinessMetrics) *StockLedger {
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &StockLedger{metrics: metrics}
}

// MovementResult resultado de aplicar un movimiento.
type MovementResult struct {
	Product *entity.Product // con el stock ya actualizado
	Clamped bool            // el stock se recortó en cero
}

// ApplyMovement aplica un movimiento recién creado. Debe llamarse una sola vez por movimiento.
func (l *StockLedger) ApplyMovement(
	ctx context.Context,
	productRepo repository.ProductRepository,
	mov *entity.Movement,
	now time.Time,
) (*MovementResult, error) {
	product, err := productRepo.GetForUpdate(ctx, mov.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", mov.ProductID, domain.ErrNotFound)
	}

	next, clamped, err := domaininv.ApplyMovement(product.Stock, mov.Kind, mov.Quantity)
	if err != nil {
		return nil, err
	}
	if clamped {
		log.Warn().
			Str("producto_id", product.ID).
			Str("tipo", mov.Kind).
			Int("cantidad", mov.Quantity).
			Int("stock_previo", product.Stock).
			Msg("movimiento dejaría stock negativo; se recorta en cero")
	}
	if err := productRepo.UpdateStock(ctx, product.ID, next, now); err != nil {
		return nil, err
	}
	product.Stock = next
	product.UpdatedAt = now
	return &MovementResult{Product: product, Clamped: clamped}, nil
}

// LineQty cantidad vendida de un producto.
type LineQty struct {
	ProductID string
	Quantity  int
}

// ApplySaleLines descuenta el stock de todas las líneas de una venta.
// Los productos se bloquean en orden de ID para que ventas concurrentes no se bloqueen mutuamente.
// El descuento no recorta en cero: una venta puede dejar stock negativo, lo cual solo se registra.
// Devuelve los productos bloqueados, ya con el stock final, indexados por ID.
func (l *StockLedger) ApplySaleLines(
	ctx context.Context,
	productRepo repository.ProductRepository,
	lines []LineQty,
	now time.Time,
) (map[string]*entity.Product, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, ln := range lines {
		if !seen[ln.ProductID] {
			seen[ln.ProductID] = true
			ids = append(ids, ln.ProductID)
		}
	}
	sort.Strings(ids)

	products := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		p, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		products[id] = p
	}

	for _, ln := range lines {
		p := products[ln.ProductID]
		next, err := domaininv.ApplySaleLine(p.Stock, ln.Quantity)
		if err != nil {
			return nil, err
		}
		p.Stock = next
	}

	for _, id := range ids {
		p := products[id]
		if p.Stock < 0 {
			log.Warn().
				Str("producto_id", p.ID).
				Int("stock", p.Stock).
				Msg("venta deja stock negativo")
			l.metrics.NegativeStock(p.ID)
		}
		if err := productRepo.UpdateStock(ctx, id, p.Stock, now); err != nil {
			return nil, err
		}
		p.UpdatedAt = now
	}
	return products, nil
}
