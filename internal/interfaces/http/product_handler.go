package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/finovex-pos/internal/application/catalog"
	"github.com/jhoicas/finovex-pos/internal/application/dto"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/export"
)

// ProductHandler maneja las peticiones HTTP del catálogo.
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar catálogo
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListProducts(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ProductListResponse{Items: list, Total: len(list)})
}

// GetBySKU godoc
// @Summary      Buscar producto por SKU (sin distinguir mayúsculas)
// @Tags         products
// @Produce      json
// @Param        sku  path  string  true  "SKU o código de barras"
// @Success      200  {object}  entity.Product
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/sku/{sku} [get]
func (h *ProductHandler) GetBySKU(c *fiber.Ctx) error {
	sku := c.Params("sku")
	if sku == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SKU", Message: "sku es requerido"})
	}
	p, err := h.uc.FindBySKU(c.Context(), sku)
	if err != nil {
		return writeError(c, err)
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Product SKU Not Found"})
	}
	return c.JSON(p)
}

// Save godoc
// @Summary      Crear o actualizar producto (admin)
// @Description  Sin id se crea un producto nuevo. Con id existente se actualizan los datos
//
//	del catálogo; el stock no se modifica (pertenece al ledger).
//
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveProductRequest  true  "Datos del producto"
// @Success      200   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [put]
func (h *ProductHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.Save(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}

// Import godoc
// @Summary      Importar catálogo desde XLSX (admin)
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Planilla con la hoja Catalog"
// @Success      200   {object}  dto.ImportResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/import [post]
func (h *ProductHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo requerido (campo file)"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	defer f.Close()

	rows, issues, err := export.ReadCatalogXLSX(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	res, err := h.uc.Import(c.Context(), rows)
	if err != nil {
		return writeError(c, err)
	}
	for _, is := range issues {
		res.Failed = append(res.Failed, dto.ImportRowError{Row: is.Row, Reason: is.Reason})
	}
	return c.JSON(res)
}
