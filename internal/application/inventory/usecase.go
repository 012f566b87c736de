package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/dto"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/ports"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (entrada, salida, ajuste, devolución) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	ledger       *StockLedger
	employeeRepo repository.EmployeeRepository
	events       ports.EventPublisher
	metrics      ports.BusinessMetrics
	now          func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. events y metrics pueden ser nil.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	ledger *StockLedger,
	employeeRepo repository.EmployeeRepository,
	events ports.EventPublisher,
	metrics ports.BusinessMetrics,
) *RegisterMovementUseCase {
	if events == nil {
		events = ports.NoopPublisher{}
	}
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		employeeRepo: employeeRepo,
		events:       events,
		metrics:      metrics,
		now:          time.Now,
	}
}

// MovementInputDTO entrada para registrar un movimiento.
type MovementInputDTO struct {
	ProductID  string
	Kind       string
	Quantity   int
	EmployeeID string // opcional
	Reason     string
}

// RegisterMovement valida la entrada, inicia una transacción, crea el movimiento y aplica su
// efecto sobre el stock del producto. El efecto se aplica solo aquí; editar o borrar el
// movimiento después no vuelve a tocar el stock.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*dto.MovementResponse, error) {
	if err := validateMovement(input.Kind, input.Quantity); err != nil {
		return nil, err
	}
	if input.ProductID == "" {
		return nil, domain.Invalid("producto", "es requerido")
	}

	var employeeName string
	if input.EmployeeID != "" {
		emp, err := uc.employeeRepo.GetByID(ctx, input.EmployeeID)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			return nil, domain.ErrNotFound
		}
		employeeName = emp.User.FullName()
	}

	now := uc.now()
	mov := &entity.Movement{
		ID:         uuid.New().String(),
		ProductID:  input.ProductID,
		Kind:       input.Kind,
		Quantity:   input.Quantity,
		Date:       now,
		EmployeeID: input.EmployeeID,
		Reason:     input.Reason,
		CreatedAt:  now,
	}

	var result *MovementResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		res, err := uc.ledger.ApplyMovement(ctx, productRepo, mov, now)
		if err != nil {
			return err
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	mov.ProductName = result.Product.Name
	mov.EmployeeName = employeeName
	uc.metrics.MovementRecorded(mov.Kind, result.Clamped)
	uc.publish(ctx, mov, result.Product)

	out := toMovementResponse(mov)
	stock := result.Product.Stock
	out.StockAfter = &stock
	return out, nil
}

func (uc *RegisterMovementUseCase) publish(ctx context.Context, mov *entity.Movement, product *entity.Product) {
	events := []ports.Event{{
		Type:       ports.EventMovementRecorded,
		Key:        product.ID,
		OccurredAt: mov.Date,
		Payload: map[string]any{
			"movimiento_id": mov.ID,
			"producto_id":   product.ID,
			"tipo":          mov.Kind,
			"cantidad":      mov.Quantity,
			"stock":         product.Stock,
		},
	}}
	if product.LowStock() {
		events = append(events, lowStockEvent(product, mov.Date))
	}
	for _, ev := range events {
		if err := uc.events.Publish(ctx, ev); err != nil {
			log.Error().Err(err).Str("evento", ev.Type).Str("movimiento_id", mov.ID).Msg("publicar evento")
		}
	}
}

// lowStockEvent evento de alerta cuando el producto queda en o por debajo del mínimo.
func lowStockEvent(p *entity.Product, at time.Time) ports.Event {
	return ports.Event{
		Type:       ports.EventStockBelowMinimum,
		Key:        p.ID,
		OccurredAt: at,
		Payload: map[string]any{
			"producto_id":  p.ID,
			"nombre":       p.Name,
			"stock":        p.Stock,
			"stock_minimo": p.MinStock,
		},
	}
}

// LowStockEvent expone el evento de stock bajo para otros casos de uso (ventas).
func LowStockEvent(p *entity.Product, at time.Time) ports.Event { return lowStockEvent(p, at) }

// validateMovement tipo conocido; cantidad negativa solo en ajustes.
func validateMovement(kind string, qty int) error {
	if !entity.ValidMovementKind(kind) {
		return domain.Invalid("tipo", "debe ser entrada, salida, ajuste o devolucion")
	}
	if qty < 0 && kind != entity.MovementAdjustment {
		return domain.Invalid("cantidad", "solo los ajustes admiten cantidad negativa")
	}
	return nil
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	out := &dto.MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		ProductName:  m.ProductName,
		Kind:         m.Kind,
		Quantity:     m.Quantity,
		Date:         m.Date,
		EmployeeName: m.EmployeeName,
		Reason:       m.Reason,
	}
	if m.EmployeeID != "" {
		id := m.EmployeeID
		out.EmployeeID = &id
	}
	return out
}
