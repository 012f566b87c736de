package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El stock inicia en 0.
type CreateProductRequest struct {
	Name         string          `json:"nombre" validate:"required,min=1,max=200"`
	CategoryID   string          `json:"categoria" validate:"required,uuid"`
	CollectionID *string         `json:"coleccion" validate:"omitempty,uuid"`
	Sizes        string          `json:"tallas" validate:"max=50"`
	Description  string          `json:"descripcion"`
	ImageURL     string          `json:"imagen" validate:"omitempty,url"`
	UnitPrice    decimal.Decimal `json:"precio_unitario" validate:"gte=0"`
	MinStock     *int            `json:"stock_minimo" validate:"omitempty,gte=0"`
	Active       *bool           `json:"activo"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock).
// Coleccion con cadena vacía quita la colección.
type UpdateProductRequest struct {
	Name         *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	CategoryID   *string          `json:"categoria" validate:"omitempty,uuid"`
	CollectionID *string          `json:"coleccion" validate:"omitempty,uuid|len=0"`
	Sizes        *string          `json:"tallas" validate:"omitempty,max=50"`
	Description  *string          `json:"descripcion"`
	ImageURL     *string          `json:"imagen" validate:"omitempty,url"`
	UnitPrice    *decimal.Decimal `json:"precio_unitario" validate:"omitempty,gte=0"`
	MinStock     *int             `json:"stock_minimo" validate:"omitempty,gte=0"`
	Active       *bool            `json:"activo"`
}

// ProductListRequest filtros de listado (query string).
type ProductListRequest struct {
	Name         string
	CategoryID   string
	CollectionID string
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
	StockMin     *int
	StockMax     *int
	LowStock     bool
	PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"nombre"`
	CategoryID     string          `json:"categoria"`
	CategoryName   string          `json:"categoria_nombre"`
	CollectionID   *string         `json:"coleccion"`
	CollectionName string          `json:"coleccion_nombre,omitempty"`
	Sizes          string          `json:"tallas"`
	Description    string          `json:"descripcion"`
	ImageURL       string          `json:"imagen"`
	UnitPrice      decimal.Decimal `json:"precio_unitario"`
	Stock          int             `json:"stock_actual"`
	MinStock       int             `json:"stock_minimo"`
	Active         bool            `json:"activo"`
	LowStock       bool            `json:"stock_bajo"`
	OutOfStock     bool            `json:"sin_stock"`
	CreatedAt      time.Time       `json:"fecha_creacion"`
	UpdatedAt      time.Time       `json:"fecha_actualizacion"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
