package entity

import "time"

// Product representa un SKU del inventario. Quantity es un entero con signo:
// puede quedar negativo solo si AllowNegative es true. MinThreshold nunca es
// negativo (se recorta a 0 al crear/editar).
type Product struct {
	ID            string
	SKU           string // código único en todo el inventario
	Name          string
	Quantity      int
	MinThreshold  int
	AllowNegative bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
