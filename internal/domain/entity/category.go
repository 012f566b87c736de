package entity

import "time"

// Category agrupa productos (ej. "Camisetas"). El nombre es único.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Collection agrupa productos por temporada o lanzamiento. El nombre es único.
type Collection struct {
	ID        string
	Name      string
	Season    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
