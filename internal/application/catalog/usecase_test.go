package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finovex-pos/internal/application/catalog"
	"github.com/jhoicas/finovex-pos/internal/application/dto"
	"github.com/jhoicas/finovex-pos/internal/application/inventory"
	"github.com/jhoicas/finovex-pos/internal/domain"
	"github.com/jhoicas/finovex-pos/internal/domain/entity"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/document"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/kv"
)

func newCatalog(t *testing.T) (*catalog.UseCase, *inventory.LedgerUseCase) {
	t.Helper()
	store := kv.NewMemoryStore()
	products := document.NewProductRepository(store)
	txRunner := document.NewTxRunner(store)
	uc := catalog.NewUseCase(products, txRunner, nil)
	ledger := inventory.NewLedgerUseCase(txRunner, products, document.NewTransactionRepository(store))
	return uc, ledger
}

func TestListProducts_SiembraCatalogo(t *testing.T) {
	uc, _ := newCatalog(t)

	list, err := uc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "1", list[0].ID)
}

func TestFindBySKU_SinDistinguirMayusculas(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()

	upper, err := uc.FindBySKU(ctx, "THREAD-SILK-BURG-001")
	require.NoError(t, err)
	lower, err := uc.FindBySKU(ctx, "thread-silk-burg-001")
	require.NoError(t, err)

	require.NotNil(t, upper)
	require.NotNil(t, lower)
	assert.Equal(t, upper.ID, lower.ID)

	missing, err := uc.FindBySKU(ctx, "NO-EXISTE")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSave_NuevoProductoSeAntepone(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()

	p, err := uc.Save(ctx, dto.SaveProductRequest{
		SKU: "PAT-DRESS-01", Name: "Dress Pattern", Category: "pattern",
		Price: decimal.RequireFromString("8.00"), MOQ: 1, Stock: 40,
	})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.NotEmpty(t, p.ID, "se genera un id")
	require.NotNil(t, p.OpeningStock)
	assert.Equal(t, 40, *p.OpeningStock)

	list, err := uc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, p.ID, list[0].ID)
}

func TestSave_EdicionConservaStockYNoDuplica(t *testing.T) {
	uc, ledger := newCatalog(t)
	ctx := context.Background()

	res, err := ledger.Restock(ctx, "2", 10, entity.Actor{ID: "w", Role: entity.RoleWorker})
	require.NoError(t, err)
	require.True(t, res.Success)

	p, err := uc.Save(ctx, dto.SaveProductRequest{
		ID: "2", SKU: "FABRIC-EGY-COT-WHT", Name: "Egyptian Cotton Bolt - Ivory", Category: "fabric",
		Price: decimal.RequireFromString("150.00"), MOQ: 2, Stock: 0,
	})
	require.NoError(t, err)

	assert.Equal(t, "Egyptian Cotton Bolt - Ivory", p.Name)
	assert.Equal(t, 60, p.Stock, "el stock pertenece al ledger")
	require.NotNil(t, p.OpeningStock)
	assert.Equal(t, 50, *p.OpeningStock)

	list, err := uc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, "2", list[1].ID, "la edición conserva la posición")
}

func TestSave_SKUDuplicado(t *testing.T) {
	uc, _ := newCatalog(t)

	_, err := uc.Save(context.Background(), dto.SaveProductRequest{
		SKU: "thread-silk-burg-001", Name: "Copia", Category: "thread",
		Price: decimal.NewFromInt(1), MOQ: 1,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSave_Invalido(t *testing.T) {
	uc, _ := newCatalog(t)

	_, err := uc.Save(context.Background(), dto.SaveProductRequest{
		SKU: "X-1", Name: "Sin categoría", Category: "yarn", Price: decimal.NewFromInt(1), MOQ: 1,
	})
	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)
}

func TestImport_CreaActualizaYReportaFilas(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()

	rows := []dto.ImportRow{
		{Row: 2, Product: dto.SaveProductRequest{SKU: "acc-needle-ind-14", Name: "Needles 14 (box)", Category: "accessory", Price: decimal.NewFromInt(27), MOQ: 5}},
		{Row: 3, Product: dto.SaveProductRequest{SKU: "PAT-SKIRT-02", Name: "Skirt Pattern", Category: "pattern", Price: decimal.NewFromInt(6), MOQ: 1, Stock: 12}},
		{Row: 4, Product: dto.SaveProductRequest{SKU: "BAD-1", Name: "", Category: "fabric", Price: decimal.NewFromInt(1), MOQ: 1}},
		{Row: 5, Product: dto.SaveProductRequest{ID: "nuevo", SKU: "FABRIC-EGY-COT-WHT", Name: "Dup", Category: "fabric", Price: decimal.NewFromInt(1), MOQ: 1}},
	}
	res, err := uc.Import(ctx, rows)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)
	require.Len(t, res.Failed, 2)
	assert.Equal(t, 4, res.Failed[0].Row)
	assert.Equal(t, 5, res.Failed[1].Row)

	needles, err := uc.GetByID(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Needles 14 (box)", needles.Name)
	assert.Equal(t, 200, needles.Stock)

	list, err := uc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4)
}
