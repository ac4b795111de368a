// Package export genera los archivos descargables del panel de administración:
// el reporte de estadísticas en PDF (Maroto v2) y el ledger en XLSX (excelize).
//
// Layout del PDF (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Finovex + título      │  Fecha de generación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Productos | Valor inventario | Bajo stock | Ventas hoy│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: productos con bajo stock                             │
//	│  TABLA: transacciones recientes                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: estado de la reconciliación del ledger              │
//	└─────────────────────────────────────────────────────────────┘
package export

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/finovex-pos/internal/application/dto"
	"github.com/jhoicas/finovex-pos/internal/application/ports"
	"github.com/jhoicas/finovex-pos/internal/domain/entity"
)

var _ ports.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 178, Green: 34, Blue: 34}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	loc *time.Location
}

// NewMarotoReportGenerator construye el generador. loc define la zona de las fechas impresas.
func NewMarotoReportGenerator(loc *time.Location) *MarotoReportGenerator {
	if loc == nil {
		loc = time.Local
	}
	return &MarotoReportGenerator{loc: loc}
}

// GenerateStatsPDF genera el PDF y devuelve sus bytes. recon puede ser nil.
func (g *MarotoReportGenerator) GenerateStatsPDF(
	_ context.Context,
	stats *dto.ReportStatsDTO,
	recon *dto.ReconciliationDTO,
) ([]byte, error) {
	if stats == nil {
		return nil, fmt.Errorf("pdf: estadísticas vacías")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Finovex Inventory Report", true).
		WithAuthor("Finovex", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("Low stock (stock < MOQ x 2)"))
	m.AddRows(lowStockHeaderRow())
	if len(stats.LowStockList) == 0 {
		m.AddRows(emptyRow("All products above reorder threshold"))
	}
	for _, r := range lowStockRows(stats.LowStockList) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("Recent transactions"))
	m.AddRows(transactionHeaderRow())
	if len(stats.RecentTransactions) == 0 {
		m.AddRows(emptyRow("No transactions recorded"))
	}
	for _, r := range g.transactionRows(stats.RecentTransactions) {
		m.AddRows(r)
	}

	if recon != nil {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		for _, r := range reconciliationRows(recon) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) headerRow(stats *dto.ReportStatsDTO) core.Row {
	generated := time.UnixMilli(stats.GeneratedAt).In(g.loc).Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(8).Add(
			text.New("FINOVEX", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Wholesale textile inventory report", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generated", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(generated, props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func kpiRow(stats *dto.ReportStatsDTO) core.Row {
	kpi := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Color: c, Top: 6, Align: align.Center}),
		)
	}
	lowColor := colorPrimary
	if stats.LowStockCount > 0 {
		lowColor = colorAlert
	}
	return row.New(16).Add(
		kpi("Total products", strconv.Itoa(stats.TotalProducts), colorPrimary),
		kpi("Inventory value", "$"+stats.TotalInventoryValue.StringFixed(2), colorPrimary),
		kpi("Low stock", strconv.Itoa(stats.LowStockCount), lowColor),
		kpi("Sales today", "$"+stats.SalesToday.StringFixed(2), colorPrimary),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(8).Add(col.New(12).Add(text.New(s, props.Text{
		Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
	})))
}

func emptyRow(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(s, props.Text{
		Size: 8, Color: colorGray, Style: fontstyle.Italic, Top: 1,
	})))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func lowStockHeaderRow() core.Row {
	return row.New(7).Add(
		headerCell("SKU", 3, align.Left),
		headerCell("Product", 5, align.Left),
		headerCell("Stock", 2, align.Right),
		headerCell("MOQ", 2, align.Right),
	)
}

func lowStockRows(products []*entity.Product) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, row.New(6).Add(
			cell(p.SKU, 3, align.Left),
			cell(p.Name, 5, align.Left),
			cell(strconv.Itoa(p.Stock), 2, align.Right),
			cell(strconv.Itoa(p.MOQ), 2, align.Right),
		))
	}
	return rows
}

func transactionHeaderRow() core.Row {
	return row.New(7).Add(
		headerCell("Date", 2, align.Left),
		headerCell("Type", 2, align.Left),
		headerCell("Product", 4, align.Left),
		headerCell("Qty", 1, align.Right),
		headerCell("Amount", 2, align.Right),
		headerCell("By", 1, align.Left),
	)
}

func (g *MarotoReportGenerator) transactionRows(txs []*entity.Transaction) []core.Row {
	rows := make([]core.Row, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, row.New(6).Add(
			cell(tx.At().In(g.loc).Format("02/01 15:04"), 2, align.Left),
			cell(string(tx.Type), 2, align.Left),
			cell(tx.ProductName, 4, align.Left),
			cell(strconv.Itoa(tx.Quantity), 1, align.Right),
			cell("$"+tx.TotalAmount.StringFixed(2), 2, align.Right),
			cell(tx.PerformedBy, 1, align.Left),
		))
	}
	return rows
}

func reconciliationRows(recon *dto.ReconciliationDTO) []core.Row {
	status, c := "Ledger consistent with catalog stock", colorPrimary
	if !recon.Consistent {
		status, c = fmt.Sprintf("%d product(s) out of sync with the ledger", len(recon.Discrepancies)), colorAlert
	}
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(text.New(status, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: c, Top: 2,
		}))),
		row.New(6).Add(col.New(12).Add(text.New(
			fmt.Sprintf("%d products checked, %d transactions replayed", recon.ProductsChecked, recon.TransactionsCount),
			props.Text{Size: 7, Color: colorGray, Top: 1},
		))),
	}
	for _, d := range recon.Discrepancies {
		rows = append(rows, row.New(6).Add(
			cell(d.SKU, 3, align.Left),
			cell(d.ProductName, 5, align.Left),
			cell(fmt.Sprintf("expected %d", d.ExpectedStock), 2, align.Right),
			cell(fmt.Sprintf("actual %d", d.ActualStock), 2, align.Right),
		))
	}
	return rows
}
