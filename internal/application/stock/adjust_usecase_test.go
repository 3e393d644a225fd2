package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: repos + TxRunner con rollback por snapshot + notifier espía.
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) List(q string) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.products {
		cp := p
		list = append(list, &cp)
	}
	return list, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type fakeMovementRepo struct {
	movements []entity.Movement
}

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for i := range r.movements {
		if r.movements[i].ProductID == productID {
			cp := r.movements[i]
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeMovementRepo) SumByProduct(productID string) (int, error) {
	sum := 0
	for _, m := range r.movements {
		if m.ProductID == productID {
			sum += m.Delta
		}
	}
	return sum, nil
}

func (r *fakeMovementRepo) DeleteByProduct(productID string) error {
	var kept []entity.Movement
	for _, m := range r.movements {
		if m.ProductID != productID {
			kept = append(kept, m)
		}
	}
	r.movements = kept
	return nil
}

// fakeTxRunner simula la transacción: toma snapshot del estado y lo restaura
// si fn devuelve error, igual que un Rollback real.
type fakeTxRunner struct {
	products  *fakeProductRepo
	movements *fakeMovementRepo
}

func (tr *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) error) error {
	snapProducts := make(map[string]entity.Product, len(tr.products.products))
	for k, v := range tr.products.products {
		snapProducts[k] = v
	}
	snapMovements := append([]entity.Movement(nil), tr.movements.movements...)

	if err := fn(tr.products, tr.movements); err != nil {
		tr.products.products = snapProducts
		tr.movements.movements = snapMovements
		return err
	}
	return nil
}

// spyNotifier registra cada invocación y devuelve un outcome configurable.
type spyNotifier struct {
	outcome stock.NotifyOutcome
	calls   []entity.Product
}

func (n *spyNotifier) Notify(_ context.Context, p *entity.Product) stock.NotifyOutcome {
	n.calls = append(n.calls, *p)
	return n.outcome
}

type fixture struct {
	uc        *stock.AdjustStockUseCase
	products  *fakeProductRepo
	movements *fakeMovementRepo
	notifier  *spyNotifier
}

func newFixture(seed ...entity.Product) *fixture {
	products := &fakeProductRepo{products: map[string]entity.Product{}}
	for _, p := range seed {
		products.products[p.ID] = p
	}
	movements := &fakeMovementRepo{}
	notifier := &spyNotifier{outcome: stock.NotifySent}
	uc := stock.NewAdjustStockUseCase(&fakeTxRunner{products: products, movements: movements}, notifier)
	return &fixture{uc: uc, products: products, movements: movements, notifier: notifier}
}

func productA1() entity.Product {
	return entity.Product{
		ID: "p1", SKU: "A1", Name: "Arroz",
		Quantity: 5, MinThreshold: 3, AllowNegative: false,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Add
// ──────────────────────────────────────────────────────────────────────────────

func TestAdd_IncrementaYRegistraMovimiento(t *testing.T) {
	f := newFixture(productA1())

	out, err := f.uc.Add(context.Background(), "p1", dto.AdjustStockRequest{Amount: 7, Note: "compra"})
	require.NoError(t, err)

	assert.Equal(t, 12, out.Product.Quantity)
	require.Len(t, f.movements.movements, 1)
	assert.Equal(t, 7, f.movements.movements[0].Delta)
	assert.Equal(t, "compra", f.movements.movements[0].Note)
	assert.Equal(t, "p1", f.movements.movements[0].ProductID)
}

func TestAdd_CantidadNoPositiva_Rechazada(t *testing.T) {
	f := newFixture(productA1())

	for _, amount := range []int{0, -4} {
		_, err := f.uc.Add(context.Background(), "p1", dto.AdjustStockRequest{Amount: amount})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}
	// Sin cambios de estado ni movimientos.
	p, _ := f.products.GetByID("p1")
	assert.Equal(t, 5, p.Quantity)
	assert.Empty(t, f.movements.movements)
}

func TestAdd_NuncaNotifica(t *testing.T) {
	// Aunque el producto ya esté por debajo del umbral, Add no dispara alertas.
	p := productA1()
	p.Quantity = 0
	f := newFixture(p)

	out, err := f.uc.Add(context.Background(), "p1", dto.AdjustStockRequest{Amount: 1})
	require.NoError(t, err)

	assert.True(t, out.LowStock, "1 < 3 sigue siendo LOW")
	assert.Empty(t, out.Notification)
	assert.Empty(t, f.notifier.calls, "Add no debe invocar el notifier")
}

func TestAdd_ProductoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Add(context.Background(), "nope", dto.AdjustStockRequest{Amount: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Remove
// ──────────────────────────────────────────────────────────────────────────────

func TestRemove_EscenarioUmbral(t *testing.T) {
	// {sku A1, qty 5, umbral 3}: Remove(2) => 3, OK, sin alerta.
	// Remove(1) => 2, LOW, una sola invocación del notifier.
	f := newFixture(productA1())
	ctx := context.Background()

	out, err := f.uc.Remove(ctx, "p1", dto.AdjustStockRequest{Amount: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Product.Quantity)
	assert.False(t, out.LowStock, "cantidad igual al umbral es OK, no LOW")
	assert.Empty(t, f.notifier.calls)

	out, err = f.uc.Remove(ctx, "p1", dto.AdjustStockRequest{Amount: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Product.Quantity)
	assert.True(t, out.LowStock)
	assert.Equal(t, string(stock.NotifySent), out.Notification)
	require.Len(t, f.notifier.calls, 1, "cruzar el umbral notifica exactamente una vez")
	assert.Equal(t, 2, f.notifier.calls[0].Quantity, "el notifier recibe el producto ya actualizado")
}

func TestRemove_StockNegativoDenegado(t *testing.T) {
	p := productA1()
	p.Quantity = 2
	f := newFixture(p)

	_, err := f.uc.Remove(context.Background(), "p1", dto.AdjustStockRequest{Amount: 10})
	assert.ErrorIs(t, err, domain.ErrNegativeStockDenied)

	// Ni la cantidad ni el ledger cambian; tampoco se notifica.
	got, _ := f.products.GetByID("p1")
	assert.Equal(t, 2, got.Quantity)
	assert.Empty(t, f.movements.movements)
	assert.Empty(t, f.notifier.calls)
}

func TestRemove_AllowNegative_PermiteCualquierSigno(t *testing.T) {
	p := productA1()
	p.AllowNegative = true
	p.Quantity = 2
	f := newFixture(p)

	out, err := f.uc.Remove(context.Background(), "p1", dto.AdjustStockRequest{Amount: 10, Note: "merma"})
	require.NoError(t, err)

	assert.Equal(t, -8, out.Product.Quantity)
	require.Len(t, f.movements.movements, 1)
	assert.Equal(t, -10, f.movements.movements[0].Delta)
}

func TestRemove_CantidadNoPositiva_Rechazada(t *testing.T) {
	f := newFixture(productA1())
	_, err := f.uc.Remove(context.Background(), "p1", dto.AdjustStockRequest{Amount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Empty(t, f.movements.movements)
}

func TestRemove_SinCruzarUmbral_NoNotifica(t *testing.T) {
	p := productA1()
	p.Quantity = 10
	f := newFixture(p)

	out, err := f.uc.Remove(context.Background(), "p1", dto.AdjustStockRequest{Amount: 2})
	require.NoError(t, err)
	assert.False(t, out.LowStock)
	assert.Empty(t, out.Notification)
	assert.Empty(t, f.notifier.calls)
}

func TestRemove_FalloDeTransporte_NoEsErrorDelAjuste(t *testing.T) {
	f := newFixture(productA1())
	f.notifier.outcome = stock.NotifyTransportFailure

	out, err := f.uc.Remove(context.Background(), "p1", dto.AdjustStockRequest{Amount: 4})
	require.NoError(t, err, "el ajuste ya está confirmado: el transporte no puede fallarlo")

	assert.Equal(t, 1, out.Product.Quantity)
	assert.Equal(t, string(stock.NotifyTransportFailure), out.Notification)
	// El movimiento quedó registrado aunque la alerta no haya salido.
	require.Len(t, f.movements.movements, 1)
	assert.Equal(t, -4, f.movements.movements[0].Delta)
}

func TestRemove_ConfigIncompleta_DegradaAWarning(t *testing.T) {
	f := newFixture(productA1())
	f.notifier.outcome = stock.NotifySkippedConfig

	out, err := f.uc.Remove(context.Background(), "p1", dto.AdjustStockRequest{Amount: 4})
	require.NoError(t, err)
	assert.Equal(t, string(stock.NotifySkippedConfig), out.Notification)
}

// ──────────────────────────────────────────────────────────────────────────────
// StockCheck
// ──────────────────────────────────────────────────────────────────────────────

func TestStockCheck_NotificaSoloLosLow(t *testing.T) {
	products := &fakeProductRepo{products: map[string]entity.Product{
		"p1": {ID: "p1", SKU: "A1", Quantity: 5, MinThreshold: 3},
		"p2": {ID: "p2", SKU: "B2", Quantity: 1, MinThreshold: 3},
		"p3": {ID: "p3", SKU: "C3", Quantity: -1, MinThreshold: 0, AllowNegative: true},
	}}
	notifier := &spyNotifier{outcome: stock.NotifySent}
	uc := stock.NewStockCheckUseCase(products, notifier)

	out, err := uc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, out.Checked)
	assert.Equal(t, 2, out.Low)
	assert.Equal(t, 2, out.Sent)
	assert.Len(t, notifier.calls, 2)
}

func TestStockCheck_SkippedConfigNoCuentaComoEnviado(t *testing.T) {
	products := &fakeProductRepo{products: map[string]entity.Product{
		"p1": {ID: "p1", SKU: "A1", Quantity: 0, MinThreshold: 3},
	}}
	notifier := &spyNotifier{outcome: stock.NotifySkippedConfig}
	uc := stock.NewStockCheckUseCase(products, notifier)

	out, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Low)
	assert.Equal(t, 0, out.Sent)
}
