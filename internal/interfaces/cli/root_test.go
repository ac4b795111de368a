package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finovex-pos/internal/bootstrap"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/kv"
	"github.com/jhoicas/finovex-pos/internal/interfaces/cli"
	"github.com/jhoicas/finovex-pos/pkg/config"
	pkgjwt "github.com/jhoicas/finovex-pos/pkg/jwt"
	"github.com/jhoicas/finovex-pos/pkg/logger"
)

const testSecret = "posctl-test-secret"

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// memoryFactory comparte un único almacén en memoria entre todas las ejecuciones del test.
func memoryFactory(t *testing.T) cli.RuntimeFactory {
	t.Helper()
	cfg := &config.Config{
		JWT:    config.JWTConfig{Secret: testSecret, Issuer: "finovex-test", Expiration: 30},
		Report: config.ReportConfig{Timezone: "UTC"},
	}
	store := kv.NewMemoryStore()
	return func(ctx context.Context) (*cli.Runtime, error) {
		c, err := bootstrap.NewWithStore(store, cfg, logger.Nop())
		if err != nil {
			return nil, err
		}
		return &cli.Runtime{Config: cfg, Container: c}, nil
	}
}

// run ejecuta posctl con args y devuelve stdout y el error del comando.
func run(t *testing.T, factory cli.RuntimeFactory, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommandWith(factory)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// ──────────────────────────────────────────────────────────────────────────────
// Estructura del comando
// ──────────────────────────────────────────────────────────────────────────────

func TestRootCommand_Subcomandos(t *testing.T) {
	cmd := cli.NewRootCommandWith(memoryFactory(t))

	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"products", "scan", "restock", "report", "reconcile", "export", "import", "ask", "token"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCommand_FlagsInvalidos(t *testing.T) {
	f := memoryFactory(t)

	_, err := run(t, f, "products", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")

	_, err = run(t, f, "products", "--role", "root")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid role")
}

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones de terminal
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_Texto(t *testing.T) {
	out, err := run(t, memoryFactory(t), "products")
	require.NoError(t, err)
	assert.Contains(t, out, "THREAD-SILK-BURG-001")
	assert.Contains(t, out, "FABRIC-EGY-COT-WHT")
	assert.Contains(t, out, "ACC-NEEDLE-IND-14")
}

func TestScan_ExitoYPersistencia(t *testing.T) {
	f := memoryFactory(t)

	out, err := run(t, f, "scan", "--as", "cajero-1", "thread-silk-burg-001", "ACC-NEEDLE-IND-14")
	require.NoError(t, err)
	assert.Contains(t, out, "stock 1499")
	assert.Contains(t, out, "stock 199")

	out, err = run(t, f, "--format", "json", "report")
	require.NoError(t, err)
	var resp struct {
		Status string `json:"status"`
		Data   struct {
			RecentTransactions []struct {
				PerformedBy string `json:"performedBy"`
			} `json:"recentTransactions"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.RecentTransactions, 2)
	assert.Equal(t, "cajero-1", resp.Data.RecentTransactions[0].PerformedBy)
}

func TestScan_SKUDesconocido(t *testing.T) {
	out, err := run(t, memoryFactory(t), "scan", "THREAD-SILK-BURG-001", "NOPE-000")
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.GetExitCode(err))
	assert.Contains(t, err.Error(), "1 of 2 scans rejected")
	assert.Contains(t, out, "Product SKU Not Found")
}

func TestScan_ClienteNoPuedeOperar(t *testing.T) {
	_, err := run(t, memoryFactory(t), "scan", "--role", "customer", "THREAD-SILK-BURG-001")
	require.Error(t, err)
	assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))
}

func TestRestock(t *testing.T) {
	f := memoryFactory(t)

	out, err := run(t, f, "restock", "FABRIC-EGY-COT-WHT", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "stock 70")

	_, err = run(t, f, "restock", "FABRIC-EGY-COT-WHT", "veinte")
	assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))

	_, err = run(t, f, "restock", "FABRIC-EGY-COT-WHT", "0")
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.GetExitCode(err))

	_, err = run(t, f, "restock", "NOPE", "5")
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.GetExitCode(err))
}

func TestReconcile_Consistente(t *testing.T) {
	f := memoryFactory(t)
	_, err := run(t, f, "scan", "THREAD-SILK-BURG-001")
	require.NoError(t, err)

	out, err := run(t, f, "reconcile")
	require.NoError(t, err)
	assert.Contains(t, out, "Ledger consistent: 3 products, 1 transactions")
}

// ──────────────────────────────────────────────────────────────────────────────
// Archivos y utilidades
// ──────────────────────────────────────────────────────────────────────────────

func TestExportImport(t *testing.T) {
	f := memoryFactory(t)
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "report.pdf")
	xlsxPath := filepath.Join(dir, "ledger.xlsx")

	_, err := run(t, f, "export")
	assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err), "sin --pdf ni --xlsx")

	_, err = run(t, f, "export", "--pdf", pdfPath, "--xlsx", xlsxPath)
	require.NoError(t, err)
	pdf, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = run(t, f, "import", xlsxPath)
	require.Error(t, err, "import es solo admin")

	out, err := run(t, f, "--role", "admin", "--format", "json", "import", xlsxPath)
	require.NoError(t, err)
	var resp struct {
		Data struct {
			Created int `json:"created"`
			Updated int `json:"updated"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 0, resp.Data.Created)
	assert.Equal(t, 3, resp.Data.Updated)
}

func TestAsk_SinModeloUsaContingencia(t *testing.T) {
	out, err := run(t, memoryFactory(t), "--role", "customer", "ask", "which", "silk?")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestToken_Firmado(t *testing.T) {
	out, err := run(t, memoryFactory(t), "token", "--role", "admin", "--user", "ana")
	require.NoError(t, err)

	userID, role, err := pkgjwt.Parse(testSecret, strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ana", userID)
	assert.Equal(t, "admin", role)
}
