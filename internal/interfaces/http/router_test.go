package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finovex-pos/internal/application/dto"
	"github.com/jhoicas/finovex-pos/internal/bootstrap"
	"github.com/jhoicas/finovex-pos/internal/domain/entity"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/export"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/kv"
	apphttp "github.com/jhoicas/finovex-pos/internal/interfaces/http"
	"github.com/jhoicas/finovex-pos/pkg/config"
	"github.com/jhoicas/finovex-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newAPI arma la API completa sobre un almacén en memoria (catálogo semilla).
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{Report: config.ReportConfig{Timezone: "UTC"}}
	c, err := bootstrap.NewWithStore(kv.NewMemoryStore(), cfg, logger.Nop())
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CatalogUC: c.Catalog,
		LedgerUC:  c.Ledger,
		ReportUC:  c.Reports,
		ExportUC:  c.Exports,
		AdvisorUC: c.Advisor,
		JWTSecret: testJWTSecret,
	})
	return app
}

// call envía body como JSON (si no es nil) con el token del rol indicado ("" = sin token).
func call(t *testing.T, app *fiber.App, method, path, role string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_ListarProductosComoInvitado(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ProductListResponse
	decode(t, resp, &body)
	assert.Equal(t, 3, body.Total)
}

func TestAPI_BuscarPorSKU(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodGet, "/api/products/sku/thread-silk-burg-001", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var p entity.Product
	decode(t, resp, &p)
	assert.Equal(t, "1", p.ID)

	resp = call(t, app, http.MethodGet, "/api/products/sku/NOPE", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_GuardarProductoSoloAdmin(t *testing.T) {
	app := newAPI(t)
	body := map[string]interface{}{
		"sku": "PAT-DRESS-01", "name": "Dress Pattern", "category": "pattern", "price": "8.00", "moq": 1, "stock": 5,
	}

	resp := call(t, app, http.MethodPut, "/api/products", "", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPut, "/api/products", "worker", body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPut, "/api/products", "admin", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var p entity.Product
	decode(t, resp, &p)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 5, p.Stock)

	body["sku"] = "fabric-egy-cot-wht"
	resp = call(t, app, http.MethodPut, "/api/products", "admin", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "SKU de otro producto")
	resp.Body.Close()

	body["sku"], body["category"] = "NEW-1", "yarn"
	resp = call(t, app, http.MethodPut, "/api/products", "admin", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_ImportarCatalogo(t *testing.T) {
	app := newAPI(t)

	wb, err := export.NewExcelLedgerExporter(nil).GenerateLedgerXLSX(context.Background(), []*entity.Product{
		{SKU: "PAT-99", Name: "Imported", Category: entity.CategoryPattern, Price: decimal.NewFromInt(9), MOQ: 1, Stock: 3},
	}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "catalog.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(wb)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var res dto.ImportResultDTO
	decode(t, resp, &res)
	assert.Equal(t, 1, res.Created)
	assert.Empty(t, res.Failed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_EscaneoPOS(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/pos/scan", "customer", dto.ScanRequest{SKU: "THREAD-SILK-BURG-001"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/pos/scan", "worker", dto.ScanRequest{SKU: "thread-silk-burg-001"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var res dto.TransactionResult
	decode(t, resp, &res)
	assert.True(t, res.Success)
	require.NotNil(t, res.NewStock)
	assert.Equal(t, 1499, *res.NewStock)
	assert.Equal(t, testUserID, res.Transaction.PerformedBy)

	resp = call(t, app, http.MethodPost, "/api/pos/scan", "worker", dto.ScanRequest{SKU: "NOPE"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	decode(t, resp, &res)
	assert.Equal(t, "Product SKU Not Found", res.Message)
}

func TestAPI_RestockYTransaccionesAdmin(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/inventory/restock", "worker", dto.RestockRequest{ProductID: "2", Quantity: 20})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/inventory/restock", "worker", dto.RestockRequest{ProductID: "2", Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var res dto.TransactionResult
	decode(t, resp, &res)
	assert.Equal(t, dto.CodeInvalidQuantity, res.Code)

	resp = call(t, app, http.MethodPost, "/api/inventory/transactions", "admin", dto.RecordTransactionRequest{
		Type: "online_order", ProductID: "2", Quantity: 100, FulfillmentMethod: "delivery", PaymentMethod: "card",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	decode(t, resp, &res)
	assert.Equal(t, "Insufficient stock. Only 70 available.", res.Message)

	resp = call(t, app, http.MethodGet, "/api/transactions", "worker", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.TransactionListResponse
	decode(t, resp, &list)
	assert.Equal(t, 1, list.Total)
}

func TestAPI_CheckoutInvitado(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/checkout", "", dto.CheckoutRequest{
		Items:             []dto.CartLineRequest{{ProductID: "1", Quantity: 3}, {ProductID: "3", Quantity: 5}},
		FulfillmentMethod: "delivery",
		PaymentMethod:     "card",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.CheckoutResponse
	decode(t, resp, &out)
	assert.True(t, out.AllSucceeded)
	require.Len(t, out.Lines, 2)
	assert.Equal(t, 10, out.Lines[0].Quantity, "la cantidad se ajusta al MOQ")
	assert.Equal(t, "guest", out.Lines[0].Result.Transaction.PerformedBy)
	assert.Equal(t, "250", out.Total.String())
}

func TestAPI_CheckoutParcialYProductoInexistente(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/checkout", "customer", dto.CheckoutRequest{
		Items:             []dto.CartLineRequest{{ProductID: "2", Quantity: 60}, {ProductID: "3", Quantity: 5}, {ProductID: "zz", Quantity: 1}},
		FulfillmentMethod: "pickup",
		PaymentMethod:     "cash",
	})
	assert.Equal(t, http.StatusMultiStatus, resp.StatusCode)

	var out dto.CheckoutResponse
	decode(t, resp, &out)
	assert.False(t, out.AllSucceeded)
	require.Len(t, out.Lines, 3)
	assert.Equal(t, dto.CodeInsufficientStock, out.Lines[0].Result.Code)
	assert.True(t, out.Lines[1].Result.Success)
	assert.Equal(t, dto.CodeNotFound, out.Lines[2].Result.Code)
}

func TestAPI_CheckoutMetodoInvalido(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/checkout", "", dto.CheckoutRequest{
		Items:             []dto.CartLineRequest{{ProductID: "1", Quantity: 10}},
		FulfillmentMethod: "drone",
		PaymentMethod:     "card",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/checkout", "", dto.CheckoutRequest{FulfillmentMethod: "pickup", PaymentMethod: "cash"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes y asistente
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_ReportesSoloStaff(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodGet, "/api/reports/stats", "customer", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/reports/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/reports/stats", "worker", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var stats dto.ReportStatsDTO
	decode(t, resp, &stats)
	assert.Equal(t, 3, stats.TotalProducts)

	resp = call(t, app, http.MethodGet, "/api/reports/reconcile", "admin", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var recon dto.ReconciliationDTO
	decode(t, resp, &recon)
	assert.True(t, recon.Consistent)

	resp = call(t, app, http.MethodGet, "/api/reports/replenishment", "worker", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_Descargas(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodGet, "/api/reports/stats.pdf", "worker", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "finovex-report-")
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))

	resp = call(t, app, http.MethodGet, "/api/reports/transactions.xlsx", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
	resp.Body.Close()
}

func TestAPI_AsistenteSinModelo(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/assistant/ask", "", dto.AdviceRequest{Query: "silk?"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.AdviceResponse
	decode(t, resp, &out)
	assert.True(t, out.Fallback)

	resp = call(t, app, http.MethodPost, "/api/assistant/ask", "", dto.AdviceRequest{Query: ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_Health(t *testing.T) {
	app := newAPI(t)
	resp := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_TransaccionesPaginadas(t *testing.T) {
	app := newAPI(t)
	for i := 0; i < 3; i++ {
		resp := call(t, app, http.MethodPost, "/api/pos/scan", "worker", dto.ScanRequest{SKU: "ACC-NEEDLE-IND-14"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := call(t, app, http.MethodGet, "/api/transactions?limit=2&offset=1", "admin", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.TransactionListResponse
	decode(t, resp, &list)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 3, list.Total)
	require.NotNil(t, list.Page)
	assert.Equal(t, 1, list.Page.Offset)

	resp = call(t, app, http.MethodGet, "/api/transactions?offset=10", "admin", nil)
	decode(t, resp, &list)
	assert.Empty(t, list.Items)

	resp = call(t, app, http.MethodGet, "/api/transactions?limit=abc", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
