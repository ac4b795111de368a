package export

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/finovex-pos/internal/application/ports"
	"github.com/jhoicas/finovex-pos/internal/domain/entity"
)

var _ ports.LedgerSpreadsheet = (*ExcelLedgerExporter)(nil)

// Nombres de las hojas del libro exportado.
const (
	SheetLedger  = "Ledger"
	SheetCatalog = "Catalog"
)

var ledgerHeader = []interface{}{
	"ID", "Date", "Type", "Product ID", "Product", "Quantity", "Total Amount", "Performed By", "Fulfillment", "Payment",
}

var catalogHeader = []interface{}{
	"ID", "SKU", "Name", "Category", "Price", "MOQ", "Stock", "Opening Stock", "Description", "Rating",
}

// ExcelLedgerExporter implementa ports.LedgerSpreadsheet con excelize.
type ExcelLedgerExporter struct {
	loc *time.Location
}

// NewExcelLedgerExporter construye el exportador. loc define la zona de la columna Date.
func NewExcelLedgerExporter(loc *time.Location) *ExcelLedgerExporter {
	if loc == nil {
		loc = time.Local
	}
	return &ExcelLedgerExporter{loc: loc}
}

// GenerateLedgerXLSX escribe el ledger (más reciente primero) y el catálogo en dos hojas.
func (e *ExcelLedgerExporter) GenerateLedgerXLSX(
	_ context.Context,
	products []*entity.Product,
	transactions []*entity.Transaction,
) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetLedger); err != nil {
		return nil, fmt.Errorf("renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(SheetCatalog); err != nil {
		return nil, fmt.Errorf("crear hoja %s: %w", SheetCatalog, err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("estilo cabecera: %w", err)
	}

	if err := writeRow(f, SheetLedger, 1, ledgerHeader); err != nil {
		return nil, err
	}
	for i, tx := range transactions {
		var fulfillment, payment string
		if tx.FulfillmentMethod != nil {
			fulfillment = string(*tx.FulfillmentMethod)
		}
		if tx.PaymentMethod != nil {
			payment = string(*tx.PaymentMethod)
		}
		amount, _ := tx.TotalAmount.Float64()
		values := []interface{}{
			tx.ID,
			tx.At().In(e.loc).Format("2006-01-02 15:04:05"),
			string(tx.Type),
			tx.ProductID,
			tx.ProductName,
			tx.Quantity,
			amount,
			tx.PerformedBy,
			fulfillment,
			payment,
		}
		if err := writeRow(f, SheetLedger, i+2, values); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, SheetCatalog, 1, catalogHeader); err != nil {
		return nil, err
	}
	for i, p := range products {
		price, _ := p.Price.Float64()
		var opening interface{} = ""
		if n, ok := p.Baseline(); ok {
			opening = n
		}
		values := []interface{}{
			p.ID, p.SKU, p.Name, string(p.Category), price, p.MOQ, p.Stock, opening, p.Description, p.Rating,
		}
		if err := writeRow(f, SheetCatalog, i+2, values); err != nil {
			return nil, err
		}
	}

	for _, sheet := range []string{SheetLedger, SheetCatalog} {
		if err := f.SetCellStyle(sheet, "A1", "J1", bold); err != nil {
			return nil, fmt.Errorf("aplicar estilo: %w", err)
		}
		if err := f.SetColWidth(sheet, "A", "J", 18); err != nil {
			return nil, fmt.Errorf("ancho de columnas: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cellName, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cellName, &values); err != nil {
		return fmt.Errorf("escribir fila %d de %s: %w", rowNum, sheet, err)
	}
	return nil
}
