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

// CatalogUseCase CRUD de categorías y colecciones.
type CatalogUseCase struct {
	categories  repository.CategoryRepository
	collections repository.CollectionRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(categories repository.CategoryRepository, collections repository.CollectionRepository) *CatalogUseCase {
	return &CatalogUseCase{categories: categories, collections: collections}
}

// CreateCategory crea una categoría. Nombre duplicado → ErrDuplicate.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("nombre", "es requerido")
	}
	now := time.Now()
	c := &entity.Category{ID: uuid.New().String(), Name: name, Description: in.Description, CreatedAt: now, UpdatedAt: now}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// GetCategory devuelve la categoría o (nil, nil).
func (uc *CatalogUseCase) GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// UpdateCategory reemplaza nombre y descripción.
func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Description = in.Description
	c.UpdatedAt = time.Now()
	if err := uc.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// ListCategories lista categorías por nombre.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// DeleteCategory elimina la categoría; ErrInUse si tiene productos.
func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, id string) error {
	return uc.categories.Delete(ctx, id)
}

// CreateCollection crea una colección.
func (uc *CatalogUseCase) CreateCollection(ctx context.Context, in dto.CollectionRequest) (*dto.CollectionResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("nombre", "es requerido")
	}
	now := time.Now()
	c := &entity.Collection{ID: uuid.New().String(), Name: name, Season: in.Season, CreatedAt: now, UpdatedAt: now}
	if err := uc.collections.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCollectionResponse(c), nil
}

// GetCollection devuelve la colección o (nil, nil).
func (uc *CatalogUseCase) GetCollection(ctx context.Context, id string) (*dto.CollectionResponse, error) {
	c, err := uc.collections.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	return toCollectionResponse(c), nil
}

// UpdateCollection reemplaza nombre y temporada.
func (uc *CatalogUseCase) UpdateCollection(ctx context.Context, id string, in dto.CollectionRequest) (*dto.CollectionResponse, error) {
	c, err := uc.collections.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Season = in.Season
	c.UpdatedAt = time.Now()
	if err := uc.collections.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCollectionResponse(c), nil
}

// ListCollections lista colecciones por nombre.
func (uc *CatalogUseCase) ListCollections(ctx context.Context) ([]dto.CollectionResponse, error) {
	list, err := uc.collections.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CollectionResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCollectionResponse(c))
	}
	return out, nil
}

// DeleteCollection elimina la colección; los productos quedan sin colección.
func (uc *CatalogUseCase) DeleteCollection(ctx context.Context, id string) error {
	return uc.collections.Delete(ctx, id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
}

func toCollectionResponse(c *entity.Collection) *dto.CollectionResponse {
	return &dto.CollectionResponse{ID: c.ID, Name: c.Name, Season: c.Season, CreatedAt: c.CreatedAt}
}
