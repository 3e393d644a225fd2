package dto

import "time"

// CreateProductRequest entrada para crear un producto.
// MinThreshold negativo se recorta a 0; si se omite se usa el default de config.
type CreateProductRequest struct {
	SKU           string `json:"sku" validate:"required,min=1,max=64"`
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Quantity      int    `json:"quantity"`
	MinThreshold  *int   `json:"min_threshold"`
	AllowNegative *bool  `json:"allow_negative"` // default true
}

// UpdateProductRequest entrada para editar un producto. Quantity aquí se fija
// directamente, sin pasar por el ledger de movimientos.
type UpdateProductRequest struct {
	SKU           *string `json:"sku" validate:"omitempty,min=1,max=64"`
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	Quantity      *int    `json:"quantity"`
	MinThreshold  *int    `json:"min_threshold"`
	AllowNegative *bool   `json:"allow_negative"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string    `json:"id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	Quantity      int       `json:"quantity"`
	MinThreshold  int       `json:"min_threshold"`
	AllowNegative bool      `json:"allow_negative"`
	Status        string    `json:"status"` // OK | LOW, mismo predicado que el reporte
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductListResponse listado de productos ordenado por nombre, con la
// subsecuencia de bajo stock.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Low   []ProductResponse `json:"low"`
	Total int               `json:"total"`
}
