package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/finovex-pos/internal/application/ports"
)

// ExportUseCase descarga de reportes en PDF y del ledger en XLSX.
type ExportUseCase struct {
	reports *ReportUseCase
	pdf     ports.ReportPDFGenerator
	xlsx    ports.LedgerSpreadsheet
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(reports *ReportUseCase, pdf ports.ReportPDFGenerator, xlsx ports.LedgerSpreadsheet) *ExportUseCase {
	return &ExportUseCase{reports: reports, pdf: pdf, xlsx: xlsx}
}

// StatsPDF genera el PDF con las estadísticas y el resultado de la reconciliación.
// Devuelve los bytes y un nombre de archivo sugerido.
func (uc *ExportUseCase) StatsPDF(ctx context.Context) ([]byte, string, error) {
	stats, err := uc.reports.GetStats(ctx)
	if err != nil {
		return nil, "", err
	}
	recon, err := uc.reports.Reconcile(ctx)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateStatsPDF(ctx, stats, recon)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: %w", err)
	}
	return b, fmt.Sprintf("finovex-report-%s.pdf", uc.reports.now().In(uc.reports.loc).Format("20060102")), nil
}

// LedgerXLSX genera el libro con las hojas del ledger y del catálogo.
func (uc *ExportUseCase) LedgerXLSX(ctx context.Context) ([]byte, string, error) {
	products, transactions, err := uc.reports.snapshot(ctx)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.xlsx.GenerateLedgerXLSX(ctx, products, transactions)
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: %w", err)
	}
	return b, fmt.Sprintf("finovex-ledger-%s.xlsx", uc.reports.now().In(uc.reports.loc).Format("20060102")), nil
}
