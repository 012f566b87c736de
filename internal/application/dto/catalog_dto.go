package dto

import "time"

// CategoryRequest entrada para crear o actualizar una categoría.
type CategoryRequest struct {
	Name        string `json:"nombre" validate:"required,min=1,max=100"`
	Description string `json:"descripcion"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	CreatedAt   time.Time `json:"fecha_creacion"`
}

// CollectionRequest entrada para crear o actualizar una colección.
type CollectionRequest struct {
	Name   string `json:"nombre" validate:"required,min=1,max=100"`
	Season string `json:"temporada" validate:"max=50"`
}

// CollectionResponse salida de una colección.
type CollectionResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Season    string    `json:"temporada"`
	CreatedAt time.Time `json:"fecha_creacion"`
}
