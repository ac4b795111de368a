// Package analytics contiene los reportes derivados del catálogo y del ledger.
// Los reportes solo leen catálogo y ledger; sobre un almacén vacío la lectura siembra el catálogo.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/finovex-pos/internal/application/dto"
	"github.com/jhoicas/finovex-pos/internal/domain/entity"
	"github.com/jhoicas/finovex-pos/internal/domain/inventory"
	"github.com/jhoicas/finovex-pos/internal/domain/repository"
)

const recentTransactionsLimit = 10 // transacciones en recentTransactions

// Option configura ReportUseCase.
type Option func(*ReportUseCase)

// WithClock fija la fuente de tiempo (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *ReportUseCase) { uc.now = now }
}

// WithLocation zona horaria que define "hoy" para salesToday. Por defecto time.Local.
func WithLocation(loc *time.Location) Option {
	return func(uc *ReportUseCase) {
		if loc != nil {
			uc.loc = loc
		}
	}
}

// SnapshotReader abre una unidad exclusiva sobre catálogo y ledger. Ninguna escritura del
// ledger se intercala entre las lecturas hechas dentro de fn.
type SnapshotReader interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error) error
}

// ReportUseCase estadísticas del panel, reconciliación y sugerencias de reposición.
type ReportUseCase struct {
	reader SnapshotReader
	now    func() time.Time
	loc    *time.Location

	// Lecturas concurrentes del panel comparten una sola carga de ambos documentos.
	reads singleflight.Group
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reader SnapshotReader, opts ...Option) *ReportUseCase {
	uc := &ReportUseCase{
		reader: reader,
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// GetStats calcula los indicadores del panel de administración.
func (uc *ReportUseCase) GetStats(ctx context.Context) (*dto.ReportStatsDTO, error) {
	products, transactions, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()

	stats := &dto.ReportStatsDTO{
		TotalProducts:       len(products),
		TotalInventoryValue: decimal.Zero,
		SalesToday:          decimal.Zero,
		LowStockList:        []*entity.Product{},
		GeneratedAt:         now.UnixMilli(),
	}
	for _, p := range products {
		stats.TotalInventoryValue = stats.TotalInventoryValue.Add(p.InventoryValue())
		if p.IsLowStock() {
			stats.LowStockList = append(stats.LowStockList, p)
		}
	}
	stats.LowStockCount = len(stats.LowStockList)

	// Hoy: 00:00 local – 00:00 del día siguiente
	local := now.In(uc.loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, uc.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	for _, tx := range transactions {
		if !tx.Type.IsSale() {
			continue
		}
		at := tx.At()
		if !at.Before(dayStart) && at.Before(dayEnd) {
			stats.SalesToday = stats.SalesToday.Add(tx.TotalAmount)
		}
	}

	n := len(transactions)
	if n > recentTransactionsLimit {
		n = recentTransactionsLimit
	}
	stats.RecentTransactions = transactions[:n]
	return stats, nil
}

// Reconcile reproduce el ledger sobre el stock de apertura de cada producto y lista los
// productos cuyo stock cacheado no coincide.
func (uc *ReportUseCase) Reconcile(ctx context.Context) (*dto.ReconciliationDTO, error) {
	products, transactions, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	expected := inventory.ReplayStock(products, transactions)

	out := &dto.ReconciliationDTO{
		ProductsChecked:   len(products),
		TransactionsCount: len(transactions),
		Discrepancies:     []dto.StockDiscrepancyDTO{},
		Unreconcilable:    []dto.UnreconcilableProductDTO{},
	}
	known := make(map[string]struct{}, len(products))
	for _, p := range products {
		known[p.ID] = struct{}{}
	}
	for _, tx := range transactions {
		if _, ok := known[tx.ProductID]; !ok {
			out.OrphanTransaction++
		}
	}
	for _, p := range products {
		opening, ok := p.Baseline()
		if !ok {
			out.Unreconcilable = append(out.Unreconcilable, dto.UnreconcilableProductDTO{
				ProductID:   p.ID,
				SKU:         p.SKU,
				ProductName: p.Name,
				ActualStock: p.Stock,
			})
			continue
		}
		if exp := expected[p.ID]; exp != p.Stock {
			out.Discrepancies = append(out.Discrepancies, dto.StockDiscrepancyDTO{
				ProductID:     p.ID,
				SKU:           p.SKU,
				ProductName:   p.Name,
				OpeningStock:  opening,
				ExpectedStock: exp,
				ActualStock:   p.Stock,
			})
		}
	}
	out.Consistent = len(out.Discrepancies) == 0
	return out, nil
}

type readSnapshot struct {
	products     []*entity.Product
	transactions []*entity.Transaction
}

// snapshot lee catálogo y ledger dentro de una misma unidad. El resultado puede
// compartirse entre llamadas concurrentes: es de solo lectura. La carga compartida no
// depende del contexto de quien la inició; cada llamador deja de esperar con el suyo.
func (uc *ReportUseCase) snapshot(ctx context.Context) ([]*entity.Product, []*entity.Transaction, error) {
	ch := uc.reads.DoChan("snapshot", func() (interface{}, error) {
		shared := context.WithoutCancel(ctx)
		var snap readSnapshot
		err := uc.reader.Run(shared, func(productRepo repository.ProductRepository, txRepo repository.TransactionRepository) error {
			products, err := productRepo.List(shared)
			if err != nil {
				return fmt.Errorf("leer catálogo: %w", err)
			}
			transactions, err := txRepo.List(shared)
			if err != nil {
				return fmt.Errorf("leer ledger: %w", err)
			}
			snap = readSnapshot{products: products, transactions: transactions}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return snap, nil
	})
	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, nil, res.Err
		}
		snap := res.Val.(readSnapshot)
		return snap.products, snap.transactions, nil
	}
}
