package usecase_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (mismo patrón que en los tests de stock).
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	products map[string]entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = *p
	return nil
}

// List emula el ORDER BY name + filtro ILIKE del repo real.
func (r *memProductRepo) List(q string) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.products {
		if q != "" {
			needle := strings.ToLower(q)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.SKU), needle) {
				continue
			}
		}
		cp := p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type memMovementRepo struct {
	movements []entity.Movement
}

func (r *memMovementRepo) Create(m *entity.Movement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for i := range r.movements {
		if r.movements[i].ProductID == productID {
			cp := r.movements[i]
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *memMovementRepo) SumByProduct(productID string) (int, error) {
	sum := 0
	for _, m := range r.movements {
		if m.ProductID == productID {
			sum += m.Delta
		}
	}
	return sum, nil
}

func (r *memMovementRepo) DeleteByProduct(productID string) error {
	var kept []entity.Movement
	for _, m := range r.movements {
		if m.ProductID != productID {
			kept = append(kept, m)
		}
	}
	r.movements = kept
	return nil
}

type memTxRunner struct {
	products  *memProductRepo
	movements *memMovementRepo
}

func (tr *memTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) error) error {
	return fn(tr.products, tr.movements)
}

const defaultThreshold = 3

func newUC() (*usecase.ProductUseCase, *memProductRepo, *memMovementRepo) {
	products := &memProductRepo{products: map[string]entity.Product{}}
	movements := &memMovementRepo{}
	uc := usecase.NewProductUseCase(products, movements,
		&memTxRunner{products: products, movements: movements}, defaultThreshold)
	return uc, products, movements
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AplicaDefaults(t *testing.T) {
	uc, _, _ := newUC()

	out, err := uc.Create(dto.CreateProductRequest{SKU: "A1", Name: "Arroz", Quantity: 5})
	require.NoError(t, err)

	assert.Equal(t, defaultThreshold, out.MinThreshold, "sin umbral explícito usa el default de config")
	assert.True(t, out.AllowNegative, "allow_negative por defecto es true")
	assert.Equal(t, "OK", out.Status)
	assert.NotEmpty(t, out.ID)
}

func TestCreate_SKUDuplicado_Rechazado(t *testing.T) {
	uc, products, _ := newUC()

	_, err := uc.Create(dto.CreateProductRequest{SKU: "A1", Name: "Arroz"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateProductRequest{SKU: "A1", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
	assert.Len(t, products.products, 1, "el registro no cambia ante un SKU duplicado")
}

func TestCreate_UmbralNegativo_SeRecortaACero(t *testing.T) {
	uc, _, _ := newUC()

	out, err := uc.Create(dto.CreateProductRequest{SKU: "A1", Name: "Arroz", MinThreshold: intPtr(-7)})
	require.NoError(t, err)
	assert.Equal(t, 0, out.MinThreshold)
}

func TestCreate_SinSKUONombre_Invalido(t *testing.T) {
	uc, _, _ := newUC()
	_, err := uc.Create(dto.CreateProductRequest{SKU: "  ", Name: "Arroz"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(dto.CreateProductRequest{SKU: "A1", Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func seedProduct(t *testing.T, uc *usecase.ProductUseCase, sku, name string, qty int) string {
	t.Helper()
	out, err := uc.Create(dto.CreateProductRequest{SKU: sku, Name: name, Quantity: qty})
	require.NoError(t, err)
	return out.ID
}

func TestUpdate_SKUDuplicado_Rechazado(t *testing.T) {
	uc, _, _ := newUC()
	seedProduct(t, uc, "A1", "Arroz", 5)
	id := seedProduct(t, uc, "B2", "Frijol", 5)

	_, err := uc.Update(id, dto.UpdateProductRequest{SKU: strPtr("A1")})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
}

func TestUpdate_MismoSKU_NoCuentaComoDuplicado(t *testing.T) {
	uc, _, _ := newUC()
	id := seedProduct(t, uc, "A1", "Arroz", 5)

	out, err := uc.Update(id, dto.UpdateProductRequest{SKU: strPtr("A1"), Name: strPtr("Arroz Integral")})
	require.NoError(t, err)
	assert.Equal(t, "Arroz Integral", out.Name)
}

func TestUpdate_CantidadDirecta_NoGeneraMovimiento(t *testing.T) {
	// La edición administrativa fija la cantidad sin pasar por el ledger:
	// brecha de consistencia conocida, el ledger NO debe crecer.
	uc, _, movements := newUC()
	id := seedProduct(t, uc, "A1", "Arroz", 5)

	out, err := uc.Update(id, dto.UpdateProductRequest{Quantity: intPtr(99)})
	require.NoError(t, err)
	assert.Equal(t, 99, out.Quantity)
	assert.Empty(t, movements.movements, "la edición directa no registra movimientos")
}

func TestUpdate_UmbralNegativo_SeRecortaACero(t *testing.T) {
	uc, _, _ := newUC()
	id := seedProduct(t, uc, "A1", "Arroz", 5)

	out, err := uc.Update(id, dto.UpdateProductRequest{MinThreshold: intPtr(-1)})
	require.NoError(t, err)
	assert.Equal(t, 0, out.MinThreshold)
}

func TestUpdate_Inexistente_DevuelveNil(t *testing.T) {
	uc, _, _ := newUC()
	out, err := uc.Update("nope", dto.UpdateProductRequest{Name: strPtr("X")})
	require.NoError(t, err)
	assert.Nil(t, out)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete (cascada) y Movements
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_CascadaDeMovimientos(t *testing.T) {
	uc, products, movements := newUC()
	id := seedProduct(t, uc, "A1", "Arroz", 5)
	otherID := seedProduct(t, uc, "B2", "Frijol", 5)

	movements.movements = []entity.Movement{
		{ID: "m1", ProductID: id, Delta: 5},
		{ID: "m2", ProductID: id, Delta: -2},
		{ID: "m3", ProductID: otherID, Delta: 1},
	}

	require.NoError(t, uc.Delete(context.Background(), id))

	_, ok := products.products[id]
	assert.False(t, ok, "el producto debe desaparecer")
	require.Len(t, movements.movements, 1, "solo sobreviven los movimientos del otro producto")
	assert.Equal(t, otherID, movements.movements[0].ProductID)
}

func TestDelete_Inexistente(t *testing.T) {
	uc, _, _ := newUC()
	err := uc.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovements_IncluyeSumaDeDeltas(t *testing.T) {
	uc, _, movements := newUC()
	id := seedProduct(t, uc, "A1", "Arroz", 5)
	movements.movements = []entity.Movement{
		{ID: "m1", ProductID: id, Delta: 5},
		{ID: "m2", ProductID: id, Delta: -2},
	}

	out, err := uc.Movements(id, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 3, out.DeltaSum)
}

func TestMovements_ProductoInexistente(t *testing.T) {
	uc, _, _ := newUC()
	_, err := uc.Movements("nope", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestList_OrdenadoPorNombreConSubsecuenciaLow(t *testing.T) {
	uc, _, _ := newUC()
	seedProduct(t, uc, "C3", "Sal", 10)
	seedProduct(t, uc, "A1", "Arroz", 0) // LOW (0 < 3)
	seedProduct(t, uc, "B2", "Frijol", 1) // LOW (1 < 3)

	out, err := uc.List("")
	require.NoError(t, err)

	require.Len(t, out.Items, 3)
	assert.Equal(t, "Arroz", out.Items[0].Name)
	assert.Equal(t, "Frijol", out.Items[1].Name)
	assert.Equal(t, "Sal", out.Items[2].Name)

	require.Len(t, out.Low, 2)
	assert.Equal(t, "A1", out.Low[0].SKU)
	assert.Equal(t, "B2", out.Low[1].SKU)
}

func TestList_BusquedaPorNombreOSKU(t *testing.T) {
	uc, _, _ := newUC()
	seedProduct(t, uc, "A1", "Arroz", 5)
	seedProduct(t, uc, "B2", "Frijol", 5)

	out, err := uc.List("arr")
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "A1", out.Items[0].SKU)

	out, err = uc.List("b2")
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Frijol", out.Items[0].Name)
}
