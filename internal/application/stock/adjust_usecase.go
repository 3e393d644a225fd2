package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/report"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// AdjustStockUseCase aplica entradas y salidas de stock de forma transaccional:
// bloquea la fila del producto (SELECT FOR UPDATE), muta la cantidad y agrega
// el movimiento al ledger en la misma transacción. La notificación de bajo
// stock se intenta recién después del Commit, así una falla del transporte
// nunca revierte el inventario.
type AdjustStockUseCase struct {
	txRunner TxRunner
	notifier Notifier
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner, notifier Notifier) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, notifier: notifier}
}

// Add suma amount (> 0) a la cantidad del producto y registra Movement(+amount).
// Las entradas nunca disparan notificación.
func (uc *AdjustStockUseCase) Add(ctx context.Context, productID string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	product, movement, err := uc.apply(ctx, productID, in.Amount, in.Note)
	if err != nil {
		return nil, err
	}
	return &dto.AdjustStockResponse{
		Product:  toProductResponse(product),
		Movement: toMovementResponse(movement),
		LowStock: report.Classify(product) == report.StatusLow,
	}, nil
}

// Remove resta amount (> 0) de la cantidad del producto y registra
// Movement(-amount). Si el producto no permite negativo y amount supera la
// cantidad actual, falla con ErrNegativeStockDenied sin tocar estado. Si tras
// el commit la cantidad quedó por debajo del umbral (estrictamente), se invoca
// el notifier exactamente una vez; su resultado es informativo.
func (uc *AdjustStockUseCase) Remove(ctx context.Context, productID string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	product, movement, err := uc.apply(ctx, productID, -in.Amount, in.Note)
	if err != nil {
		return nil, err
	}

	out := &dto.AdjustStockResponse{
		Product:  toProductResponse(product),
		Movement: toMovementResponse(movement),
		LowStock: report.Classify(product) == report.StatusLow,
	}
	// El ajuste ya está confirmado: el outcome del notifier no puede fallar
	// la operación.
	if out.LowStock {
		out.Notification = string(uc.notifier.Notify(ctx, product))
	}
	return out, nil
}

// apply ejecuta la mutación + append al ledger dentro de una transacción con
// bloqueo de fila. delta ya viene con signo.
func (uc *AdjustStockUseCase) apply(ctx context.Context, productID string, delta int, note string) (*entity.Product, *entity.Movement, error) {
	var product *entity.Product
	var movement *entity.Movement

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		p, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if delta < 0 && !p.AllowNegative && -delta > p.Quantity {
			return domain.ErrNegativeStockDenied
		}

		now := time.Now()
		p.Quantity += delta
		p.UpdatedAt = now
		if err := productRepo.Update(p); err != nil {
			return err
		}
		m := &entity.Movement{
			ID:        uuid.New().String(),
			ProductID: p.ID,
			Delta:     delta,
			Note:      note,
			CreatedAt: now,
		}
		if err := movementRepo.Create(m); err != nil {
			return err
		}
		product, movement = p, m
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return product, movement, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Quantity:      p.Quantity,
		MinThreshold:  p.MinThreshold,
		AllowNegative: p.AllowNegative,
		Status:        string(report.Classify(p)),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Delta:     m.Delta,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}
