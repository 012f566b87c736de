package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/dto"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

// ClientUseCase CRUD de clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create registra un cliente. Sin tipo se asume minorista.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	c := &entity.Client{
		ID:           uuid.New().String(),
		RegisteredAt: time.Now(),
		Active:       true,
	}
	if err := applyClient(c, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// GetByID devuelve el cliente o (nil, nil).
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// List lista clientes activos por nombre.
func (uc *ClientUseCase) List(ctx context.Context, name, clientType string, page dto.PageRequest) ([]dto.ClientResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ClientFilter{
		Name:   name,
		Type:   clientType,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

// Update reemplaza los datos del cliente.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	if err := applyClient(c, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Delete elimina el cliente.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func applyClient(c *entity.Client, in dto.ClientRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Invalid("nombre", "es requerido")
	}
	kind := in.Type
	if kind == "" {
		kind = entity.ClientRetail
	}
	if !entity.ValidClientType(kind) {
		return domain.Invalid("tipo_cliente", "debe ser minorista, mayorista o internacional")
	}
	c.Name = name
	c.Type = kind
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = in.Phone
	c.Address = in.Address
	c.Instagram = in.Instagram
	c.BusinessName = in.BusinessName
	c.TaxID = in.TaxID
	if in.Active != nil {
		c.Active = *in.Active
	}
	return nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:           c.ID,
		Name:         c.Name,
		Type:         c.Type,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		Instagram:    c.Instagram,
		BusinessName: c.BusinessName,
		TaxID:        c.TaxID,
		RegisteredAt: c.RegisteredAt,
		Active:       c.Active,
	}
}
