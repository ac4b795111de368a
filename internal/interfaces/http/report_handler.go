package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/finovex-pos/internal/application/analytics"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler estadísticas, reconciliación y descargas del panel de administración.
type ReportHandler struct {
	reports *analytics.ReportUseCase
	exports *analytics.ExportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *analytics.ReportUseCase, exports *analytics.ExportUseCase) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports}
}

// GetStats godoc
// @Summary      Indicadores del panel
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReportStatsDTO
// @Router       /api/reports/stats [get]
func (h *ReportHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.reports.GetStats(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}

// Reconcile godoc
// @Summary      Reconciliar stock contra el ledger
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconciliationDTO
// @Router       /api/reports/reconcile [get]
func (h *ReportHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.reports.Reconcile(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Router       /api/reports/replenishment [get]
func (h *ReportHandler) Replenishment(c *fiber.Ctx) error {
	list, err := h.reports.Replenishment(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

// StatsPDF godoc
// @Summary      Descargar reporte en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/stats.pdf [get]
func (h *ReportHandler) StatsPDF(c *fiber.Ctx) error {
	b, name, err := h.exports.StatsPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(b)
}

// LedgerXLSX godoc
// @Summary      Descargar ledger y catálogo en XLSX
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/reports/transactions.xlsx [get]
func (h *ReportHandler) LedgerXLSX(c *fiber.Ctx) error {
	b, name, err := h.exports.LedgerXLSX(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(b)
}
