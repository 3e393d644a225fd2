package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// MovementRepository puerto de persistencia para el ledger de movimientos.
// El ledger es append-only: no hay Update ni Delete individual; DeleteByProduct
// existe solo para la cascada de borrado del producto dueño.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error)
	// SumByProduct suma los deltas registrados para un producto. Puede no
	// coincidir con Product.Quantity si hubo ediciones directas de cantidad.
	SumByProduct(productID string) (int, error)
	DeleteByProduct(productID string) error
}
