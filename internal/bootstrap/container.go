// Package bootstrap arma el grafo de dependencias a partir de la configuración.
// Lo comparten el servidor HTTP (cmd/api) y la terminal POS (cmd/posctl).
package bootstrap

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/finovex-pos/internal/application/advisor"
	"github.com/jhoicas/finovex-pos/internal/application/analytics"
	"github.com/jhoicas/finovex-pos/internal/application/catalog"
	"github.com/jhoicas/finovex-pos/internal/application/inventory"
	"github.com/jhoicas/finovex-pos/internal/application/ports"
	infraai "github.com/jhoicas/finovex-pos/internal/infrastructure/ai"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/document"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/export"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/kv"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/finovex-pos/internal/infrastructure/redis"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/sqlite"
	"github.com/jhoicas/finovex-pos/pkg/config"
	"github.com/jhoicas/finovex-pos/pkg/logger"
)

// Container casos de uso listos para usar y la función de cierre del almacén.
type Container struct {
	Store    kv.Transactor
	Catalog  *catalog.UseCase
	Ledger   *inventory.LedgerUseCase
	Reports  *analytics.ReportUseCase
	Exports  *analytics.ExportUseCase
	Advisor  *advisor.UseCase
	Location *time.Location

	closers []func()
}

// Close libera conexiones del almacén en orden inverso.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// New abre el almacén configurado y construye los casos de uso.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	loc, err := loadLocation(cfg.Report.Timezone)
	if err != nil {
		return nil, err
	}
	c := &Container{Location: loc}

	store, err := c.openStore(ctx, cfg.Store, log)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Store = store
	c.wire(cfg, log)
	return c, nil
}

// NewWithStore construye los casos de uso sobre un almacén ya abierto (tests, memoria).
func NewWithStore(store kv.Transactor, cfg *config.Config, log *logger.Logger) (*Container, error) {
	loc, err := loadLocation(cfg.Report.Timezone)
	if err != nil {
		return nil, err
	}
	c := &Container{Store: store, Location: loc}
	c.wire(cfg, log)
	return c, nil
}

func (c *Container) wire(cfg *config.Config, log *logger.Logger) {
	productRepo := document.NewProductRepository(c.Store)
	txRepo := document.NewTransactionRepository(c.Store)
	txRunner := document.NewTxRunner(c.Store)

	c.Catalog = catalog.NewUseCase(productRepo, txRunner, log)
	c.Ledger = inventory.NewLedgerUseCase(txRunner, productRepo, txRepo, inventory.WithLogger(log))
	c.Reports = analytics.NewReportUseCase(txRunner, analytics.WithLocation(c.Location))
	c.Exports = analytics.NewExportUseCase(
		c.Reports,
		export.NewMarotoReportGenerator(c.Location),
		export.NewExcelLedgerExporter(c.Location),
	)
	c.Advisor = advisor.NewUseCase(newLLM(cfg.AI), log)
}

func (c *Container) openStore(ctx context.Context, cfg config.StoreConfig, log *logger.Logger) (kv.Transactor, error) {
	switch cfg.Driver {
	case config.StoreDriverMemory:
		return kv.NewMemoryStore(), nil

	case config.StoreDriverSQLite:
		s, err := sqlite.Open(cfg.SQLitePath, cfg.KeyPrefix)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func() { _ = s.Close() })
		log.Info().Str("path", cfg.SQLitePath).Msg("almacén sqlite abierto")
		return s, nil

	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		c.closers = append(c.closers, pool.Close)
		s, err := postgres.NewKVStore(ctx, pool, cfg.KeyPrefix)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("almacén postgres listo")
		return s, nil

	case config.StoreDriverRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		c.closers = append(c.closers, func() { _ = client.Close() })
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("conexión a Redis %s: %w", cfg.Redis.Addr, err)
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("almacén redis listo")
		return infraredis.NewKVStore(client, cfg.KeyPrefix), nil
	}
	return nil, fmt.Errorf("STORE_DRIVER desconocido %q", cfg.Driver)
}

// newLLM selecciona el proveedor del asistente. Sin API key el asistente queda
// deshabilitado y responde con el texto de contingencia.
func newLLM(cfg config.AIConfig) ports.LLMService {
	switch cfg.Provider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil
		}
		return infraai.NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel, "")
	default:
		if cfg.GeminiAPIKey == "" {
			return nil
		}
		return infraai.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, "")
	}
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("REPORT_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}
