package ports

import (
	"context"

	"github.com/jhoicas/finovex-pos/internal/application/dto"
	"github.com/jhoicas/finovex-pos/internal/domain/entity"
)

// ReportPDFGenerator genera el reporte imprimible del panel de administración.
type ReportPDFGenerator interface {
	GenerateStatsPDF(ctx context.Context, stats *dto.ReportStatsDTO, recon *dto.ReconciliationDTO) ([]byte, error)
}

// LedgerSpreadsheet exporta el ledger y el catálogo a una hoja de cálculo (XLSX).
type LedgerSpreadsheet interface {
	GenerateLedgerXLSX(ctx context.Context, products []*entity.Product, transactions []*entity.Transaction) ([]byte, error)
}
