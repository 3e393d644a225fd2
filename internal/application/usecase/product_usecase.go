package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/report"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Los ajustes de stock van
// por el AdjustStockUseCase; aquí la edición puede fijar cantidad directamente
// (sin pasar por el ledger — brecha conocida y documentada).
type ProductUseCase struct {
	productRepo      repository.ProductRepository
	movementRepo     repository.MovementRepository
	txRunner         stock.TxRunner
	defaultThreshold int
}

// NewProductUseCase construye el caso de uso. defaultThreshold se aplica al
// crear productos que no indican umbral (config LOW_STOCK_THRESHOLD).
func NewProductUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	txRunner stock.TxRunner,
	defaultThreshold int,
) *ProductUseCase {
	if defaultThreshold < 0 {
		defaultThreshold = 0
	}
	return &ProductUseCase{
		productRepo:      productRepo,
		movementRepo:     movementRepo,
		txRunner:         txRunner,
		defaultThreshold: defaultThreshold,
	}
}

// Create crea un producto. Falla con ErrDuplicateSKU si el SKU ya existe;
// el umbral negativo se recorta a 0. AllowNegative por defecto es true.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateSKU
	}

	threshold := uc.defaultThreshold
	if in.MinThreshold != nil {
		threshold = clampThreshold(*in.MinThreshold)
	}
	allowNegative := true
	if in.AllowNegative != nil {
		allowNegative = *in.AllowNegative
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           sku,
		Name:          name,
		Quantity:      in.Quantity,
		MinThreshold:  threshold,
		AllowNegative: allowNegative,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	out := toProductResponse(product)
	return &out, nil
}

// GetByID obtiene un producto por ID. Devuelve nil sin error si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	out := toProductResponse(product)
	return &out, nil
}

// Update edita un producto. Aplica las mismas reglas de unicidad de SKU y
// recorte de umbral que Create. Quantity se fija directamente: NO genera
// movimiento en el ledger.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.ErrInvalidInput
		}
		if sku != product.SKU {
			existing, err := uc.productRepo.GetBySKU(sku)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrDuplicateSKU
			}
			product.SKU = sku
		}
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if in.MinThreshold != nil {
		product.MinThreshold = clampThreshold(*in.MinThreshold)
	}
	if in.AllowNegative != nil {
		product.AllowNegative = *in.AllowNegative
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	out := toProductResponse(product)
	return &out, nil
}

// List lista todos los productos ordenados por nombre, con búsqueda opcional
// por nombre o SKU, e incluye la subsecuencia LOW con el mismo predicado del
// reporte.
func (uc *ProductUseCase) List(q string) (*dto.ProductListResponse, error) {
	products, err := uc.productRepo.List(strings.TrimSpace(q))
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Total: len(products),
	}
	for _, p := range products {
		item := toProductResponse(p)
		out.Items = append(out.Items, item)
		if item.Status == string(report.StatusLow) {
			out.Low = append(out.Low, item)
		}
	}
	return out, nil
}

// Delete elimina el producto y, en la misma transacción, todos sus movimientos
// (el producto es dueño exclusivo de su ledger; no quedan huérfanos).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		if err := movementRepo.DeleteByProduct(id); err != nil {
			return err
		}
		return productRepo.Delete(id)
	})
}

// Movements historial del ledger de un producto más la suma de deltas.
func (uc *ProductUseCase) Movements(id string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	movements, err := uc.movementRepo.ListByProduct(id, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	sum, err := uc.movementRepo.SumByProduct(id)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{
		Items:    make([]dto.MovementResponse, 0, len(movements)),
		DeltaSum: sum,
	}
	for _, m := range movements {
		out.Items = append(out.Items, dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Delta:     m.Delta,
			Note:      m.Note,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

func clampThreshold(threshold int) int {
	if threshold < 0 {
		return 0
	}
	return threshold
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
