package dto

import "time"

// AdjustStockRequest entrada para agregar o retirar stock de un producto.
type AdjustStockRequest struct {
	Amount int    `json:"amount" validate:"required,gt=0"`
	Note   string `json:"note" validate:"max=300"`
}

// MovementResponse un movimiento del ledger.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Delta     int       `json:"delta"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MovementListResponse historial de movimientos de un producto, junto con la
// suma de deltas (puede divergir de la cantidad actual si hubo ediciones
// directas).
type MovementListResponse struct {
	Items    []MovementResponse `json:"items"`
	DeltaSum int                `json:"delta_sum"`
}

// AdjustStockResponse resultado de un ajuste. El ajuste ya quedó confirmado
// cuando se evalúa la notificación: Notification es informativo, nunca un
// fallo de la operación.
type AdjustStockResponse struct {
	Product      ProductResponse  `json:"product"`
	Movement     MovementResponse `json:"movement"`
	LowStock     bool             `json:"low_stock"`
	Notification string           `json:"notification,omitempty"` // sent | skipped_config | transport_failure
}

// StockCheckResponse resultado de la corrida administrativa del chequeo de
// bajo stock sobre todos los productos.
type StockCheckResponse struct {
	Checked int `json:"checked"`
	Low     int `json:"low"`
	Sent    int `json:"sent"`
}
