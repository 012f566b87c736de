package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/dto"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/inventory"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/ports"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

// CreateSaleUseCase crea una venta con todas sus líneas en una sola transacción:
// encabezado, líneas y descuentos de stock se confirman juntos o no se confirma nada.
type CreateSaleUseCase struct {
	txRunner     SalesTxRunner
	ledger       *inventory.StockLedger
	employeeRepo repository.EmployeeRepository
	events       ports.EventPublisher
	metrics      ports.BusinessMetrics
	now          func() time.Time
}

// NewCreateSaleUseCase construye el caso de uso. events y metrics pueden ser nil.
func NewCreateSaleUseCase(
	txRunner SalesTxRunner,
	ledger *inventory.StockLedger,
	employeeRepo repository.EmployeeRepository,
	events ports.EventPublisher,
	metrics ports.BusinessMetrics,
) *CreateSaleUseCase {
	if events == nil {
		events = ports.NoopPublisher{}
	}
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		employeeRepo: employeeRepo,
		events:       events,
		metrics:      metrics,
		now:          time.Now,
	}
}

// LineInput línea pedida. UnitPrice nil = precio vigente del producto.
type LineInput struct {
	ProductID string
	Quantity  int
	UnitPrice *decimal.Decimal
}

// CreateSaleInput entrada del caso de uso.
type CreateSaleInput struct {
	Channel    string
	EmployeeID string
	Discount   decimal.Decimal
	Notes      string
	Lines      []LineInput
}

// CreateSale valida la venta, descuenta stock y persiste encabezado y líneas.
// Subtotal = Σ cantidad × precio; Total = Subtotal - Descuento.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in CreateSaleInput) (*dto.SaleResponse, error) {
	if err := validateSaleInput(in); err != nil {
		return nil, err
	}

	if in.EmployeeID == "" {
		return nil, domain.Invalid("empleado", "es requerido")
	}
	emp, err := uc.employeeRepo.GetByID(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	sale := &entity.Sale{
		ID:           uuid.New().String(),
		Channel:      in.Channel,
		EmployeeID:   emp.ID,
		EmployeeName: emp.User.FullName(),
		Discount:     in.Discount,
		Date:         now,
		Notes:        in.Notes,
	}

	qtys := make([]inventory.LineQty, len(in.Lines))
	for i, ln := range in.Lines {
		qtys[i] = inventory.LineQty{ProductID: ln.ProductID, Quantity: ln.Quantity}
	}

	var touched map[string]*entity.Product
	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error {
		products, err := uc.ledger.ApplySaleLines(ctx, productRepo, qtys, now)
		if err != nil {
			return err
		}

		subtotal := decimal.Zero
		lines := make([]entity.SaleLine, len(in.Lines))
		for i, ln := range in.Lines {
			p := products[ln.ProductID]
			price := p.UnitPrice
			if ln.UnitPrice != nil {
				price = *ln.UnitPrice
			}
			lineSubtotal := price.Mul(decimal.NewFromInt(int64(ln.Quantity)))
			lines[i] = entity.SaleLine{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    ln.Quantity,
				UnitPrice:   price,
				Subtotal:    lineSubtotal,
			}
			subtotal = subtotal.Add(lineSubtotal)
		}
		if msg := entity.MoneyError(subtotal); msg != "" {
			return domain.Invalid("detalles", msg)
		}
		if sale.Discount.GreaterThan(subtotal) {
			return domain.Invalid("descuento", "no puede superar el subtotal de la venta")
		}
		sale.Subtotal = subtotal
		sale.Total = subtotal.Sub(sale.Discount)
		sale.Lines = lines

		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for i := range lines {
			if err := saleRepo.CreateLine(ctx, &lines[i]); err != nil {
				return err
			}
		}
		touched = products
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("venta_id", sale.ID).
		Str("canal", sale.Channel).
		Str("total", sale.Total.StringFixed(2)).
		Int("lineas", len(sale.Lines)).
		Msg("venta registrada")
	uc.metrics.SaleCreated(sale.Channel, sale.Total)
	uc.publish(ctx, sale, touched)

	return toSaleResponse(sale, true), nil
}

// CreateSaleFromRequest adapta el request HTTP. Sin empleado en el cuerpo se usa el del usuario autenticado.
func (uc *CreateSaleUseCase) CreateSaleFromRequest(ctx context.Context, callerEmployeeID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	employeeID := in.EmployeeID
	if employeeID == "" {
		employeeID = callerEmployeeID
	}
	lines := make([]LineInput, len(in.Lines))
	for i, ln := range in.Lines {
		lines[i] = LineInput{ProductID: ln.ProductID, Quantity: ln.Quantity, UnitPrice: ln.UnitPrice}
	}
	return uc.CreateSale(ctx, CreateSaleInput{
		Channel:    in.Channel,
		EmployeeID: employeeID,
		Discount:   in.Discount,
		Notes:      in.Notes,
		Lines:      lines,
	})
}

func (uc *CreateSaleUseCase) publish(ctx context.Context, sale *entity.Sale, products map[string]*entity.Product) {
	lines := make([]map[string]any, 0, len(sale.Lines))
	for _, ln := range sale.Lines {
		lines = append(lines, map[string]any{
			"producto_id": ln.ProductID,
			"cantidad":    ln.Quantity,
			"subtotal":    ln.Subtotal.String(),
		})
	}
	events := []ports.Event{{
		Type:       ports.EventSaleCreated,
		Key:        sale.ID,
		OccurredAt: sale.Date,
		Payload: map[string]any{
			"venta_id":  sale.ID,
			"canal":     sale.Channel,
			"empleado":  sale.EmployeeID,
			"subtotal":  sale.Subtotal.String(),
			"descuento": sale.Discount.String(),
			"total":     sale.Total.String(),
			"detalles":  lines,
		},
	}}
	for _, p := range products {
		if p.LowStock() {
			events = append(events, inventory.LowStockEvent(p, sale.Date))
		}
	}
	for _, ev := range events {
		if err := uc.events.Publish(ctx, ev); err != nil {
			log.Error().Err(err).Str("evento", ev.Type).Str("venta_id", sale.ID).Msg("publicar evento")
		}
	}
}

func validateSaleInput(in CreateSaleInput) error {
	if !entity.ValidChannel(in.Channel) {
		return domain.Invalid("canal_venta", "canal de venta desconocido")
	}
	if len(in.Lines) == 0 {
		return domain.Invalid("detalles", "la venta debe tener al menos una línea")
	}
	if msg := entity.MoneyError(in.Discount); msg != "" {
		return domain.Invalid("descuento", msg)
	}
	for _, ln := range in.Lines {
		if ln.ProductID == "" {
			return domain.Invalid("detalles.producto", "es requerido")
		}
		if ln.Quantity <= 0 {
			return domain.Invalid("detalles.cantidad", "debe ser mayor que cero")
		}
		if ln.UnitPrice != nil {
			if msg := entity.MoneyError(*ln.UnitPrice); msg != "" {
				return domain.Invalid("detalles.precio_unitario", msg)
			}
		}
	}
	return nil
}
