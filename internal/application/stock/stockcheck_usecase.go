package stock

import (
	"context"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain/report"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// StockCheckUseCase corrida administrativa: recorre todos los productos y
// notifica cada uno que esté por debajo de su umbral. Es la vía manual para
// reponer una notificación perdida (no hay reintentos automáticos).
type StockCheckUseCase struct {
	productRepo repository.ProductRepository
	notifier    Notifier
}

// NewStockCheckUseCase construye el caso de uso.
func NewStockCheckUseCase(productRepo repository.ProductRepository, notifier Notifier) *StockCheckUseCase {
	return &StockCheckUseCase{productRepo: productRepo, notifier: notifier}
}

// Run recorre el inventario completo (ordenado por nombre) y cuenta cuántas
// alertas aceptó el transporte.
func (uc *StockCheckUseCase) Run(ctx context.Context) (*dto.StockCheckResponse, error) {
	products, err := uc.productRepo.List("")
	if err != nil {
		return nil, err
	}
	out := &dto.StockCheckResponse{Checked: len(products)}
	for _, p := range products {
		if report.Classify(p) != report.StatusLow {
			continue
		}
		out.Low++
		if uc.notifier.Notify(ctx, p) == NotifySent {
			out.Sent++
		}
	}
	return out, nil
}
