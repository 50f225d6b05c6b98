package restock_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-backoffice/internal/application/restock"
	"github.com/tu-usuario/retail-backoffice/internal/domain/scope"
)

const (
	testTenantID = "tenant-123"
	testStoreID  = "store-123"
	testUserID   = "user-123"
)

func testScope() scope.AccessScope {
	return scope.ForUser(testTenantID, testStoreID, scope.LevelStoreAdmin, "store_admin", false)
}

// Scope sin tienda: un solo error y ningún chequeo por ítem.
func TestValidate_ScopeSinTienda(t *testing.T) {
	repo := newFakeProductRepo()
	v := restock.NewValidator(repo, restock.DefaultThresholds())

	sc := scope.ForUser(testTenantID, "", scope.LevelTenantAdmin, "admin", false)
	result, err := v.Validate(context.Background(), sc, []restock.Item{
		{ProductID: "prod-1", Qty: 10},
	})

	require.NoError(t, err)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "store id is required")
	assert.Zero(t, repo.lookups, "sin tienda no debe consultarse ningún producto")
	assert.Empty(t, result.ValidatedItems)
}

// Duplicados: isValid=false y el id repetido aparece exactamente una vez.
func TestValidate_ProductosDuplicados(t *testing.T) {
	repo := newFakeProductRepo()
	repo.add(testTenantID, activeProduct("prod-1", "Producto A", "SKU-A", 10000, 50))
	v := restock.NewValidator(repo, restock.DefaultThresholds())

	result, err := v.Validate(context.Background(), testScope(), []restock.Item{
		{ProductID: "prod-1", Qty: 10},
		{ProductID: "prod-1", Qty: 5},
	})

	require.NoError(t, err)
	assert.False(t, result.IsValid)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "duplicate products found in request: prod-1")
	assert.Equal(t, 1, strings.Count(result.Errors[0], "prod-1"),
		"el id duplicado debe listarse exactamente una vez")
}

// Producto inexistente o de otro tenant: error y el ítem queda fuera de ValidatedItems.
func TestValidate_ProductoNoAccesible(t *testing.T) {
	repo := newFakeProductRepo()
	repo.add("tenant-ajeno", activeProduct("prod-ajeno", "Ajeno", "SKU-X", 5000, 10))
	v := restock.NewValidator(repo, restock.DefaultThresholds())

	result, err := v.Validate(context.Background(), testScope(), []restock.Item{
		{ProductID: "prod-inexistente", Qty: 10},
		{ProductID: "prod-ajeno", Qty: 5},
	})

	require.NoError(t, err)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "prod-inexistente not found or not accessible")
	assert.Contains(t, result.Errors[1], "prod-ajeno not found or not accessible",
		"un producto de otro tenant debe ser indistinguible de uno inexistente")
	assert.Empty(t, result.ValidatedItems)
}

func TestValidate_ProductoInactivo(t *testing.T) {
	repo := newFakeProductRepo()
	inactive := activeProduct("prod-1", "Descontinuado", "SKU-D", 10000, 0)
	inactive.IsActive = false
	repo.add(testTenantID, inactive)
	v := restock.NewValidator(repo, restock.DefaultThresholds())

	result, err := v.Validate(context.Background(), testScope(), []restock.Item{
		{ProductID: "prod-1", Qty: 10},
	})

	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors[0], "inactive")
}

func TestValidate_CantidadInvalida(t *testing.T) {
	repo := newFakeProductRepo()
	repo.add(testTenantID, activeProduct("prod-1", "Producto A", "SKU-A", 10000, 50))
	v := restock.NewValidator(repo, restock.DefaultThresholds())

	for _, qty := range []int64{0, -5} {
		result, err := v.Validate(context.Background(), testScope(), []restock.Item{
			{ProductID: "prod-1", Qty: qty},
		})
		require.NoError(t, err)
		assert.False(t, result.IsValid, "qty=%d debe rechazarse", qty)
	}
}

// Cantidad enorme: warning, nunca error.
func TestValidate_CantidadGrandeEsWarning(t *testing.T) {
	repo := newFakeProductRepo()
	repo.add(testTenantID, activeProduct("prod-1", "Producto A", "SKU-A", 10000, 50))
	v := restock.NewValidator(repo, restock.DefaultThresholds())

	result, err := v.Validate(context.Background(), testScope(), []restock.Item{
		{ProductID: "prod-1", Qty: 10001},
	})

	require.NoError(t, err)
	assert.True(t, result.IsValid, "superar el umbral de cantidad no bloquea")
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "large quantity")
}

func TestValidate_CostoNegativoEsError(t *testing.T) {
	repo := newFakeProductRepo()
	repo.add(testTenantID, activeProduct("prod-1", "Producto A", "SKU-A", 10000, 50))
	v := restock.NewValidator(repo, restock.DefaultThresholds())

	result, err := v.Validate(context.Background(), testScope(), []restock.Item{
		{ProductID: "prod-1", Qty: 10, UnitCost: ptrDecimal(-1)},
	})

	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors[0], "invalid unit cost")
}

// Desviación de costo: 100% de salto genera warning; 20% no.
func TestValidate_DesviacionDeCosto(t *testing.T) {
	repo := newFakeProductRepo()
	repo.add(testTenantID, activeProduct("prod-1", "Producto A", "SKU-A", 10000, 50))
	v := restock.NewValidator(repo, restock.DefaultThresholds())

	// 10000 -> 20000: 100% de desviación, por encima del umbral del 50%.
	result, err := v.Validate(context.Background(), testScope(), []restock.Item{
		{ProductID: "prod-1", Qty: 10, UnitCost: ptrDecimal(20000)},
	})
	require.NoError(t, err)
	assert.True(t, result.IsValid, "la desviación de costo nunca bloquea")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "cost change")
	assert.Contains(t, result.Warnings[0], "10000")
	assert.Contains(t, result.Warnings[0], "20000")

	// 10000 -> 12000: 20%, por debajo del umbral, sin warning.
	result, err = v.Validate(context.Background(), testScope(), []restock.Item{
		{ProductID: "prod-1", Qty: 10, UnitCost: ptrDecimal(12000)},
	})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
}

// Lote completamente válido: isValid=true e ítems enriquecidos.
func TestValidate_LoteValido(t *testing.T) {
	repo := newFakeProductRepo()
	repo.add(testTenantID, activeProduct("prod-1", "Producto A", "SKU-A", 10000, 50))
	repo.add(testTenantID, activeProduct("prod-2", "Producto B", "SKU-B", 8000, 20))
	v := restock.NewValidator(repo, restock.DefaultThresholds())

	result, err := v.Validate(context.Background(), testScope(), []restock.Item{
		{ProductID: "prod-1", Qty: 10, UnitCost: ptrDecimal(12000)},
		{ProductID: "prod-2", Qty: 5},
	})

	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	require.Len(t, result.ValidatedItems, 2)
	assert.Equal(t, "Producto A", result.ValidatedItems[0].ProductName)
	assert.Equal(t, "SKU-A", result.ValidatedItems[0].SKU)
	assert.EqualValues(t, 50, result.ValidatedItems[0].CurrentStock)
	assert.True(t, result.ValidatedItems[0].IsActive)
}

// Reglas agregadas del lote: valor alto, ítems de alto volumen y tamaño del lote.
func TestValidate_ReglasAgregadasSoloAdvierten(t *testing.T) {
	thresholds := restock.DefaultThresholds()
	repo := newFakeProductRepo()
	repo.add(testTenantID, activeProduct("prod-1", "Producto A", "SKU-A", 500_000, 0))
	repo.add(testTenantID, activeProduct("prod-2", "Producto B", "SKU-B", 1000, 0))
	v := restock.NewValidator(repo, thresholds)

	// 5000 × 500000 = 2.5e9 > 1e9 y además qty > 1000 en ambos ítems.
	result, err := v.Validate(context.Background(), testScope(), []restock.Item{
		{ProductID: "prod-1", Qty: 5000, UnitCost: ptrDecimal(500_000)},
		{ProductID: "prod-2", Qty: 2000},
	})

	require.NoError(t, err)
	assert.True(t, result.IsValid, "las reglas agregadas jamás bloquean")

	joined := strings.Join(result.Warnings, "\n")
	assert.Contains(t, joined, "very large restock value")
	assert.Contains(t, joined, "high quantity items detected")
	assert.Contains(t, joined, "Producto A (5000)")
	assert.Contains(t, joined, "Producto B (2000)")
}

func TestValidate_LoteConMuchosItems(t *testing.T) {
	repo := newFakeProductRepo()
	v := restock.NewValidator(repo, restock.Thresholds{
		LargeQty: 10000, HighQtyItem: 1000, BatchSizeWarn: 3,
		HighValue: restock.DefaultThresholds().HighValue, CostDeviationPct: 0.5,
	})

	var items []restock.Item
	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		repo.add(testTenantID, activeProduct(id, "Prod "+id, "SKU-"+id, 100, 0))
		items = append(items, restock.Item{ProductID: id, Qty: 1})
	}

	result, err := v.Validate(context.Background(), testScope(), items)
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "large number of items in single restock: 4")
}

// El caller global (root) valida sin filtro de tenant siempre que indique tienda.
func TestValidate_RootAccedeCualquierTenant(t *testing.T) {
	repo := newFakeProductRepo()
	repo.add("tenant-ajeno", activeProduct("prod-1", "Producto A", "SKU-A", 10000, 50))
	v := restock.NewValidator(repo, restock.DefaultThresholds())

	root := scope.ForUser("root-tenant", "store-123", scope.LevelRoot, "root", true)
	result, err := v.Validate(context.Background(), root, []restock.Item{
		{ProductID: "prod-1", Qty: 10},
	})

	require.NoError(t, err)
	assert.True(t, result.IsValid)
}
