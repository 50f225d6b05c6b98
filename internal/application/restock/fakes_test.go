package restock_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-backoffice/internal/application/restock"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
	"github.com/tu-usuario/retail-backoffice/internal/domain/scope"
	"github.com/tu-usuario/retail-backoffice/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los puertos del motor de restock.
// ──────────────────────────────────────────────────────────────────────────────

// fakeProductRepo catálogo en memoria con aislamiento por tenant.
type fakeProductRepo struct {
	products map[string]*repository.RestockProductView
	tenants  map[string]string // productID -> tenantID dueño
	costs    map[string]decimal.Decimal
	lookups  int
	failLock map[string]bool // productos que "desaparecen" entre validación y ejecución
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: map[string]*repository.RestockProductView{},
		tenants:  map[string]string{},
		costs:    map[string]decimal.Decimal{},
		failLock: map[string]bool{},
	}
}

func (f *fakeProductRepo) add(tenantID string, view repository.RestockProductView) {
	f.products[view.ID] = &view
	f.tenants[view.ID] = tenantID
	f.costs[view.ID] = view.PurchaseCost
}

func (f *fakeProductRepo) visible(sc scope.AccessScope, id string) bool {
	if _, ok := f.products[id]; !ok {
		return false
	}
	if sc.EnforceTenant && f.tenants[id] != sc.TenantID {
		return false
	}
	return true
}

func (f *fakeProductRepo) GetForRestock(_ context.Context, sc scope.AccessScope, productID string) (*repository.RestockProductView, error) {
	f.lookups++
	if !f.visible(sc, productID) {
		return nil, nil
	}
	view := *f.products[productID]
	return &view, nil
}

func (f *fakeProductRepo) Lock(_ context.Context, sc scope.AccessScope, productID string) (*entity.Product, error) {
	if f.failLock[productID] || !f.visible(sc, productID) {
		return nil, nil
	}
	view := f.products[productID]
	return &entity.Product{
		ID:           view.ID,
		TenantID:     f.tenants[productID],
		SKU:          view.SKU,
		Name:         view.Name,
		IsActive:     view.IsActive,
		PurchaseCost: f.costs[productID],
	}, nil
}

func (f *fakeProductRepo) UpdateCost(_ context.Context, productID string, cost decimal.Decimal) error {
	if _, ok := f.products[productID]; !ok {
		return fmt.Errorf("update cost: producto %s inexistente", productID)
	}
	f.costs[productID] = cost
	return nil
}

// fakeInventoryRepo stock en memoria por (producto, tienda).
type fakeInventoryRepo struct {
	stock map[string]int64 // key productID|storeID
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{stock: map[string]int64{}}
}

func invKey(productID, storeID string) string { return productID + "|" + storeID }

func (f *fakeInventoryRepo) set(productID, storeID string, qty int64) {
	f.stock[invKey(productID, storeID)] = qty
}

func (f *fakeInventoryRepo) AddStock(_ context.Context, productID, storeID string, qty int64) (int64, error) {
	key := invKey(productID, storeID)
	f.stock[key] += qty
	return f.stock[key], nil
}

func (f *fakeInventoryRepo) ListByStore(context.Context, scope.AccessScope, int, int) ([]repository.StoreInventoryItem, error) {
	return nil, errors.New("no implementado en el fake")
}

func (f *fakeInventoryRepo) ListBelow(context.Context, scope.AccessScope, int64) ([]repository.StoreInventoryItem, error) {
	return nil, errors.New("no implementado en el fake")
}

// fakeAuditRepo bitácora en memoria.
type fakeAuditRepo struct {
	created []*entity.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, log *entity.AuditLog) error {
	f.created = append(f.created, log)
	return nil
}

func (f *fakeAuditRepo) ListByTenant(context.Context, scope.AccessScope, int, int) ([]*entity.AuditLog, error) {
	return f.created, nil
}

// fakeTxRunner simula Begin/Commit/Rollback: toma un snapshot del estado
// mutable antes de fn y lo restaura si fn falla, igual que un rollback real.
type fakeTxRunner struct {
	products *fakeProductRepo
	inv      *fakeInventoryRepo
	audit    *fakeAuditRepo

	began      int
	committed  int
	rolledBack int
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	invRepo repository.InventoryRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	r.began++

	stockBefore := make(map[string]int64, len(r.inv.stock))
	for k, v := range r.inv.stock {
		stockBefore[k] = v
	}
	costsBefore := make(map[string]decimal.Decimal, len(r.products.costs))
	for k, v := range r.products.costs {
		costsBefore[k] = v
	}
	auditBefore := len(r.audit.created)

	if err := fn(r.products, r.inv, r.audit); err != nil {
		r.rolledBack++
		r.inv.stock = stockBefore
		r.products.costs = costsBefore
		r.audit.created = r.audit.created[:auditBefore]
		return err
	}
	r.committed++
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func ptrDecimal(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func activeProduct(id, name, sku string, cost, stock int64) repository.RestockProductView {
	return repository.RestockProductView{
		ID:           id,
		Name:         name,
		SKU:          sku,
		IsActive:     true,
		PurchaseCost: decimal.NewFromInt(cost),
		CurrentStock: stock,
	}
}

var _ restock.TxRunner = (*fakeTxRunner)(nil)
var _ repository.ProductRepository = (*fakeProductRepo)(nil)
var _ repository.InventoryRepository = (*fakeInventoryRepo)(nil)
var _ repository.AuditLogRepository = (*fakeAuditRepo)(nil)
