package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/finovex-pos/internal/application/advisor"
	"github.com/jhoicas/finovex-pos/internal/application/dto"
)

// AdvisorHandler endpoint del consultor textil.
type AdvisorHandler struct {
	uc *advisor.UseCase
}

// NewAdvisorHandler construye el handler.
func NewAdvisorHandler(uc *advisor.UseCase) *AdvisorHandler {
	return &AdvisorHandler{uc: uc}
}

// Ask godoc
// @Summary      Consultar al asesor textil
// @Description  Si el proveedor de IA falla se responde 200 con el texto de contingencia (fallback=true).
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdviceRequest  true  "Consulta del cliente"
// @Success      200   {object}  dto.AdviceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/assistant/ask [post]
func (h *AdvisorHandler) Ask(c *fiber.Ctx) error {
	var in dto.AdviceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Ask(c.Context(), in.Query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
