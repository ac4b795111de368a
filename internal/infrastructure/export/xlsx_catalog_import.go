package export

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/finovex-pos/internal/application/dto"
)

// ImportIssue fila del archivo que no se pudo interpretar.
type ImportIssue struct {
	Row    int
	Reason string
}

// ReadCatalogXLSX lee productos desde la hoja Catalog (o la primera hoja si no existe) con la
// misma cabecera que produce GenerateLedgerXLSX. Las filas vacías se ignoran; las filas con
// valores no numéricos se reportan en issues y no detienen la lectura.
func ReadCatalogXLSX(r io.Reader) ([]dto.ImportRow, []ImportIssue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("leer archivo: %w", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("abrir xlsx: %w", err)
	}
	defer f.Close()

	sheet := SheetCatalog
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("xlsx sin hojas")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("leer filas de %s: %w", sheet, err)
	}

	var (
		out    []dto.ImportRow
		issues []ImportIssue
	)
	for i, row := range rows {
		if i == 0 || isBlank(row) {
			continue // cabecera
		}
		req, err := parseCatalogRow(row)
		if err != nil {
			issues = append(issues, ImportIssue{Row: i + 1, Reason: err.Error()})
			continue
		}
		out = append(out, dto.ImportRow{Row: i + 1, Product: req})
	}
	return out, issues, nil
}

func parseCatalogRow(row []string) (dto.SaveProductRequest, error) {
	get := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	var req dto.SaveProductRequest
	req.ID = get(0)
	req.SKU = get(1)
	req.Name = get(2)
	req.Category = strings.ToLower(get(3))
	req.Description = get(8)

	price, err := decimal.NewFromString(orZero(get(4)))
	if err != nil {
		return req, fmt.Errorf("price %q no es numérico", get(4))
	}
	req.Price = price
	if req.MOQ, err = strconv.Atoi(orZero(get(5))); err != nil {
		return req, fmt.Errorf("moq %q no es entero", get(5))
	}
	if req.Stock, err = strconv.Atoi(orZero(get(6))); err != nil {
		return req, fmt.Errorf("stock %q no es entero", get(6))
	}
	if req.Rating, err = strconv.ParseFloat(orZero(get(9)), 64); err != nil {
		return req, fmt.Errorf("rating %q no es numérico", get(9))
	}
	return req, nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
