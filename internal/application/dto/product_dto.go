package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/finovex-pos/internal/domain/entity"
)

// SaveProductRequest body de PUT /api/products (formulario de administración).
// Si ID viene vacío se genera uno nuevo. Stock solo se usa al crear: en un producto
// existente el stock pertenece al ledger.
type SaveProductRequest struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	MOQ         int             `json:"moq"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
	Rating      float64         `json:"rating"`
}

// ProductListResponse catálogo completo.
type ProductListResponse struct {
	Items []*entity.Product `json:"items"`
	Total int               `json:"total"`
}

// ImportRow producto leído de una planilla junto con su número de fila en el archivo.
type ImportRow struct {
	Row     int
	Product SaveProductRequest
}

// ImportRowError fila del archivo de importación que no se pudo guardar.
type ImportRowError struct {
	Row    int    `json:"row"`
	SKU    string `json:"sku,omitempty"`
	Reason string `json:"reason"`
}

// ImportResultDTO resultado de la importación masiva del catálogo.
type ImportResultDTO struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Failed  []ImportRowError `json:"failed"`
}
