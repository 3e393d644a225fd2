package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE)
	// para serializar ajustes concurrentes sobre el mismo producto. Solo tiene
	// sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// List devuelve todos los productos ordenados por nombre. Si q no es vacío,
	// filtra por coincidencia parcial en nombre o SKU (case-insensitive).
	List(q string) ([]*entity.Product, error)
	Delete(id string) error
}
