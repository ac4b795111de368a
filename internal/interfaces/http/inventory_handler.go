package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/finovex-pos/internal/application/catalog"
	"github.com/jhoicas/finovex-pos/internal/application/dto"
	"github.com/jhoicas/finovex-pos/internal/application/inventory"
	"github.com/jhoicas/finovex-pos/internal/domain/entity"
)

// InventoryHandler maneja checkout, ventas de mostrador, reposición y el ledger.
type InventoryHandler struct {
	ledger  *inventory.LedgerUseCase
	catalog *catalog.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, catalog *catalog.UseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, catalog: catalog}
}

// Checkout godoc
// @Summary      Confirmar carrito (pedido online)
// @Description  Registra un online_order por línea. Cada línea se valida por separado;
//
//	las cantidades por debajo del MOQ se ajustan al MOQ.
//
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Líneas del carrito, fulfillmentMethod y paymentMethod"
// @Success      201   {object}  dto.CheckoutResponse
// @Success      207   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/checkout [post]
func (h *InventoryHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	// El carrito se reconstruye desde el catálogo: precio y MOQ nunca vienen del cliente.
	cart := entity.NewCart()
	var missing []dto.CheckoutLineResult
	for _, line := range in.Items {
		p, err := h.catalog.GetByID(c.Context(), line.ProductID)
		if err != nil {
			return writeError(c, err)
		}
		if p == nil {
			missing = append(missing, dto.CheckoutLineResult{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Result:    &dto.TransactionResult{Code: dto.CodeNotFound, Message: inventory.MsgProductNotFound},
			})
			continue
		}
		cart.Add(p, line.Quantity)
	}
	if cart.Len() == 0 {
		if len(missing) > 0 {
			return c.Status(fiber.StatusNotFound).JSON(dto.CheckoutResponse{Lines: missing})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "el carrito está vacío"})
	}

	out, err := h.ledger.Checkout(c.Context(), inventory.CheckoutInput{
		Actor:       GetActor(c),
		Cart:        cart,
		Fulfillment: entity.FulfillmentMethod(in.FulfillmentMethod),
		Payment:     entity.PaymentMethod(in.PaymentMethod),
	})
	if err != nil {
		return writeError(c, err)
	}
	if len(missing) > 0 {
		out.Lines = append(out.Lines, missing...)
		out.AllSucceeded = false
	}
	if !out.AllSucceeded {
		return c.Status(fiber.StatusMultiStatus).JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Scan godoc
// @Summary      Venta de mostrador por escaneo de SKU
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "SKU escaneado"
// @Success      201   {object}  dto.TransactionResult
// @Failure      404   {object}  dto.TransactionResult
// @Failure      409   {object}  dto.TransactionResult
// @Router       /api/pos/scan [post]
func (h *InventoryHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil || in.SKU == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "sku es requerido"})
	}
	res, err := h.ledger.ScanSale(c.Context(), in.SKU, GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(resultStatus(res)).JSON(res)
}

// Restock godoc
// @Summary      Reponer stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RestockRequest  true  "productId y quantity"
// @Success      201   {object}  dto.TransactionResult
// @Failure      400   {object}  dto.TransactionResult
// @Failure      404   {object}  dto.TransactionResult
// @Router       /api/inventory/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.ledger.Restock(c.Context(), in.ProductID, in.Quantity, GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(resultStatus(res)).JSON(res)
}

// RecordTransaction godoc
// @Summary      Registrar transacción arbitraria en el ledger (admin)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordTransactionRequest  true  "type, productId, quantity, fulfillmentMethod, paymentMethod"
// @Success      201   {object}  dto.TransactionResult
// @Failure      400   {object}  dto.TransactionResult
// @Failure      404   {object}  dto.TransactionResult
// @Failure      409   {object}  dto.TransactionResult
// @Router       /api/inventory/transactions [post]
func (h *InventoryHandler) RecordTransaction(c *fiber.Ctx) error {
	var in dto.RecordTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.ledger.RecordTransaction(c.Context(), inventory.RecordInput{
		Type:        entity.TransactionType(in.Type),
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		PerformedBy: GetUserID(c),
		Fulfillment: entity.FulfillmentMethod(in.FulfillmentMethod),
		Payment:     entity.PaymentMethod(in.PaymentMethod),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(resultStatus(res)).JSON(res)
}

// ListTransactions godoc
// @Summary      Ledger completo (más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (0 = todo)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "limit y offset deben ser enteros"})
	}
	page.Normalize()

	list, err := h.ledger.ListTransactions(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	resp := dto.TransactionListResponse{Items: list, Total: len(list)}
	if page.Limit > 0 || page.Offset > 0 {
		start, end := page.Bounds(len(list))
		resp.Items = list[start:end]
		resp.Page = &dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(list)}
	}
	return c.JSON(resp)
}
