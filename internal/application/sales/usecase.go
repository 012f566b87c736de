package sales

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/dto"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/ports"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

// SaleUseCase consultas y borrado de ventas.
type SaleUseCase struct {
	saleRepo repository.SaleRepository
	events   ports.EventPublisher
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(saleRepo repository.SaleRepository, events ports.EventPublisher) *SaleUseCase {
	if events == nil {
		events = ports.NoopPublisher{}
	}
	return &SaleUseCase{saleRepo: saleRepo, events: events}
}

// GetByID devuelve la venta con sus líneas o (nil, nil).
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	return toSaleResponse(s, true), nil
}

// List lista encabezados de venta, más recientes primero.
func (uc *SaleUseCase) List(ctx context.Context, in dto.SaleListRequest) ([]dto.SaleResponse, error) {
	in.DefaultPage()
	list, err := uc.saleRepo.List(ctx, repository.SaleFilter{
		EmployeeID: in.EmployeeID,
		Channel:    in.Channel,
		From:       in.From,
		To:         in.To,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSaleResponse(s, false))
	}
	return out, nil
}

// Delete borra la venta y sus líneas. El stock descontado no se devuelve.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.saleRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Warn().Str("venta_id", id).Msg("venta eliminada; el stock no se restituye")
	ev := ports.Event{Type: ports.EventSaleDeleted, Key: id, OccurredAt: time.Now(), Payload: map[string]any{"venta_id": id}}
	if err := uc.events.Publish(ctx, ev); err != nil {
		log.Error().Err(err).Str("venta_id", id).Msg("publicar evento")
	}
	return nil
}

func toSaleResponse(s *entity.Sale, withLines bool) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:           s.ID,
		Date:         s.Date,
		Channel:      s.Channel,
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		Subtotal:     s.Subtotal,
		Discount:     s.Discount,
		Total:        s.Total,
		Notes:        s.Notes,
	}
	if withLines {
		out.Lines = make([]dto.SaleLineResponse, 0, len(s.Lines))
		for _, ln := range s.Lines {
			out.Lines = append(out.Lines, dto.SaleLineResponse{
				ID:          ln.ID,
				ProductID:   ln.ProductID,
				ProductName: ln.ProductName,
				Quantity:    ln.Quantity,
				UnitPrice:   ln.UnitPrice,
				Subtotal:    ln.Subtotal,
			})
		}
	}
	return out
}
