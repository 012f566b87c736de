package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/dto"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos y ventas.
type ProductUseCase struct {
	repo           repository.ProductRepository
	categoryRepo   repository.CategoryRepository
	collectionRepo repository.CollectionRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	collectionRepo repository.CollectionRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, collectionRepo: collectionRepo}
}

// Create crea un nuevo producto. El stock inicia en 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if msg := entity.MoneyError(in.UnitPrice); msg != "" {
		return nil, domain.Invalid("precio_unitario", msg)
	}
	category, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.Invalid("categoria", "la categoría no existe")
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         in.Name,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Sizes:        in.Sizes,
		Description:  in.Description,
		ImageURL:     in.ImageURL,
		UnitPrice:    in.UnitPrice,
		Stock:        0,
		MinStock:     entity.DefaultMinStock,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if in.CollectionID != nil && *in.CollectionID != "" {
		if err := uc.setCollection(ctx, product, *in.CollectionID); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar el stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		category, err := uc.categoryRepo.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.Invalid("categoria", "la categoría no existe")
		}
		product.CategoryID = category.ID
		product.CategoryName = category.Name
	}
	if in.CollectionID != nil {
		if *in.CollectionID == "" {
			product.CollectionID = ""
			product.CollectionName = ""
		} else if err := uc.setCollection(ctx, product, *in.CollectionID); err != nil {
			return nil, err
		}
	}
	if in.Sizes != nil {
		product.Sizes = *in.Sizes
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.UnitPrice != nil {
		if msg := entity.MoneyError(*in.UnitPrice); msg != "" {
			return nil, domain.Invalid("precio_unitario", msg)
		}
		product.UnitPrice = *in.UnitPrice
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos activos aplicando los filtros (AND), ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	if in.PriceMin != nil && in.PriceMax != nil && in.PriceMin.GreaterThan(*in.PriceMax) {
		return nil, domain.Invalid("precio_min", "no puede ser mayor que precio_max")
	}
	if in.StockMin != nil && in.StockMax != nil && *in.StockMin > *in.StockMax {
		return nil, domain.Invalid("stock_min", "no puede ser mayor que stock_max")
	}
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		Name:         in.Name,
		CategoryID:   in.CategoryID,
		CollectionID: in.CollectionID,
		PriceMin:     in.PriceMin,
		PriceMax:     in.PriceMax,
		StockMin:     in.StockMin,
		StockMax:     in.StockMax,
		LowStock:     in.LowStock,
		Limit:        in.Limit,
		Offset:       in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Delete elimina un producto. Devuelve ErrInUse si tiene movimientos o ventas.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) setCollection(ctx context.Context, product *entity.Product, collectionID string) error {
	col, err := uc.collectionRepo.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if col == nil {
		return domain.Invalid("coleccion", "la colección no existe")
	}
	product.CollectionID = col.ID
	product.CollectionName = col.Name
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	out := &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		CategoryID:     p.CategoryID,
		CategoryName:   p.CategoryName,
		CollectionName: p.CollectionName,
		Sizes:          p.Sizes,
		Description:    p.Description,
		ImageURL:       p.ImageURL,
		UnitPrice:      p.UnitPrice,
		Stock:          p.Stock,
		MinStock:       p.MinStock,
		Active:         p.Active,
		LowStock:       p.LowStock(),
		OutOfStock:     p.OutOfStock(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.CollectionID != "" {
		id := p.CollectionID
		out.CollectionID = &id
	}
	return out
}
