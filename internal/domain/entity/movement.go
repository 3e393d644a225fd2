package entity

import "time"

// Movement representa un cambio atómico de cantidad en el ledger de un producto.
// Delta es positivo para entradas y negativo para salidas; nunca es cero.
// Los movimientos son inmutables: no existe operación de update ni de delete
// individual, solo se eliminan en cascada al borrar el producto dueño.
type Movement struct {
	ID        string
	ProductID string
	Delta     int
	Note      string
	CreatedAt time.Time
}
