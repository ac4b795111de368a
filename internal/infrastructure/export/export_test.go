package export_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/finovex-pos/internal/application/dto"
	"github.com/jhoicas/finovex-pos/internal/domain/entity"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/export"
)

func sampleLedger() []*entity.Transaction {
	pickup, cash := entity.FulfillmentPickup, entity.PaymentCash
	return []*entity.Transaction{
		{
			ID: "tx-2", Type: entity.TransactionOfflineSale, ProductID: "1", ProductName: "Royal Burgundy Silk Thread",
			Quantity: 1, Timestamp: time.Date(2024, 3, 15, 15, 0, 0, 0, time.UTC).UnixMilli(),
			TotalAmount: decimal.RequireFromString("12.50"), PerformedBy: "w-1",
			FulfillmentMethod: &pickup, PaymentMethod: &cash,
		},
		{
			ID: "tx-1", Type: entity.TransactionRestock, ProductID: "2", ProductName: "Egyptian Cotton Bolt - White",
			Quantity: 20, Timestamp: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC).UnixMilli(),
			TotalAmount: decimal.RequireFromString("2900"), PerformedBy: "admin",
		},
	}
}

func TestGenerateStatsPDF(t *testing.T) {
	gen := export.NewMarotoReportGenerator(time.UTC)
	seed := entity.DefaultProducts()
	stats := &dto.ReportStatsDTO{
		TotalProducts:       3,
		TotalInventoryValue: decimal.RequireFromString("31000"),
		LowStockCount:       1,
		SalesToday:          decimal.RequireFromString("12.50"),
		RecentTransactions:  sampleLedger(),
		LowStockList:        seed[1:2],
		GeneratedAt:         time.Date(2024, 3, 15, 16, 0, 0, 0, time.UTC).UnixMilli(),
	}
	recon := &dto.ReconciliationDTO{
		ProductsChecked: 3, TransactionsCount: 2,
		Discrepancies: []dto.StockDiscrepancyDTO{{ProductID: "3", SKU: "ACC-NEEDLE-IND-14", ExpectedStock: 200, ActualStock: 7}},
	}

	b, err := gen.GenerateStatsPDF(context.Background(), stats, recon)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")), "debe ser un PDF")

	b, err = gen.GenerateStatsPDF(context.Background(), &dto.ReportStatsDTO{}, nil)
	require.NoError(t, err, "sin transacciones ni reconciliación también se genera")
	assert.NotEmpty(t, b)

	_, err = gen.GenerateStatsPDF(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestGenerateLedgerXLSX_Hojas(t *testing.T) {
	exp := export.NewExcelLedgerExporter(time.UTC)

	b, err := exp.GenerateLedgerXLSX(context.Background(), entity.DefaultProducts(), sampleLedger())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.SheetLedger, export.SheetCatalog}, f.GetSheetList())

	rows, err := f.GetRows(export.SheetLedger)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "tx-2", rows[1][0])
	assert.Equal(t, "2024-03-15 15:00:00", rows[1][1])
	assert.Equal(t, "offline_sale", rows[1][2])
	assert.Equal(t, "pickup", rows[1][8])
	assert.Equal(t, "restock", rows[2][2])

	catalog, err := f.GetRows(export.SheetCatalog)
	require.NoError(t, err)
	require.Len(t, catalog, 4)
	assert.Equal(t, "THREAD-SILK-BURG-001", catalog[1][1])
}

func TestReadCatalogXLSX_IdaYVuelta(t *testing.T) {
	exp := export.NewExcelLedgerExporter(time.UTC)
	b, err := exp.GenerateLedgerXLSX(context.Background(), entity.DefaultProducts(), nil)
	require.NoError(t, err)

	rows, issues, err := export.ReadCatalogXLSX(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, rows, 3)

	first := rows[0]
	assert.Equal(t, 2, first.Row, "número de fila del archivo")
	assert.Equal(t, "1", first.Product.ID)
	assert.Equal(t, "THREAD-SILK-BURG-001", first.Product.SKU)
	assert.Equal(t, "thread", first.Product.Category)
	assert.True(t, first.Product.Price.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, 10, first.Product.MOQ)
	assert.Equal(t, 1500, first.Product.Stock)
	assert.InDelta(t, 4.8, first.Product.Rating, 0.0001)
}

func TestReadCatalogXLSX_FilasInvalidasYPrimeraHoja(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"ID", "SKU", "Name", "Category", "Price", "MOQ", "Stock"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"", "PAT-01", "Pattern", "Pattern", "6.5", "1", "4"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]interface{}{"", "PAT-02", "Pattern 2", "pattern", "caro", "1", "4"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, issues, err := export.ReadCatalogXLSX(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "pattern", rows[0].Product.Category, "la categoría se normaliza")
	require.Len(t, issues, 1)
	assert.Equal(t, 4, issues[0].Row)
	assert.Contains(t, issues[0].Reason, "price")
}

func TestReadCatalogXLSX_ArchivoInvalido(t *testing.T) {
	_, _, err := export.ReadCatalogXLSX(bytes.NewReader([]byte("no es un xlsx")))
	assert.Error(t, err)
}
