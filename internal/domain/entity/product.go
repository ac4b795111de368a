package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/finovex-pos/internal/domain"
)

// Category clasificación fija del catálogo textil.
type Category string

const (
	CategoryThread    Category = "thread"
	CategoryFabric    Category = "fabric"
	CategoryAccessory Category = "accessory"
	CategoryPattern   Category = "pattern"
)

// Valid indica si la categoría pertenece a la enumeración.
func (c Category) Valid() bool {
	switch c {
	case CategoryThread, CategoryFabric, CategoryAccessory, CategoryPattern:
		return true
	}
	return false
}

// Product representa una entrada del catálogo.
// Stock es una proyección cacheada del ledger: solo el ledger lo modifica después de la creación.
// OpeningStock guarda el stock con el que nació el producto (base para reconciliar con el ledger).
// Es nil en documentos escritos antes de que existiera el campo.
type Product struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"` // código de barras / SKU, único sin distinguir mayúsculas
	Name         string          `json:"name"`
	Category     Category        `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image"`
	MOQ          int             `json:"moq"`   // cantidad mínima de pedido
	Stock        int             `json:"stock"` // existencias actuales, nunca negativas
	OpeningStock *int            `json:"openingStock,omitempty"`
	Description  string          `json:"description"`
	Rating       float64         `json:"rating"`
}

// ValidationError error tipado de validación de un campo. Envuelve domain.ErrInvalidInput.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap permite errors.Is(err, domain.ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

// ProductInput datos crudos del formulario de administración.
type ProductInput struct {
	ID          string
	SKU         string
	Name        string
	Category    Category
	Price       decimal.Decimal
	Image       string
	MOQ         int
	Stock       int
	Description string
	Rating      float64
}

// NewProduct construye un Product validado a partir del input del administrador.
func NewProduct(in ProductInput) (*Product, error) {
	p := &Product{
		ID:           strings.TrimSpace(in.ID),
		SKU:          strings.TrimSpace(in.SKU),
		Name:         strings.TrimSpace(in.Name),
		Category:     in.Category,
		Price:        in.Price,
		Image:        in.Image,
		MOQ:          in.MOQ,
		Stock:        in.Stock,
		Description:  in.Description,
		Rating:       in.Rating,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.SetOpeningStock(in.Stock)
	return p, nil
}

// Validate verifica campos obligatorios y rangos numéricos.
func (p *Product) Validate() error {
	switch {
	case p.ID == "":
		return &ValidationError{Field: "id", Reason: "es requerido"}
	case p.SKU == "":
		return &ValidationError{Field: "sku", Reason: "es requerido"}
	case p.Name == "":
		return &ValidationError{Field: "name", Reason: "es requerido"}
	case !p.Category.Valid():
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("categoría desconocida %q", p.Category)}
	case p.Price.IsNegative():
		return &ValidationError{Field: "price", Reason: "no puede ser negativo"}
	case p.Stock < 0:
		return &ValidationError{Field: "stock", Reason: "no puede ser negativo"}
	case p.MOQ < 1:
		return &ValidationError{Field: "moq", Reason: "debe ser al menos 1"}
	case p.Rating < 0 || p.Rating > 5:
		return &ValidationError{Field: "rating", Reason: "debe estar entre 0 y 5"}
	}
	return nil
}

// Baseline devuelve el stock de apertura; ok=false si el documento no lo trae.
func (p *Product) Baseline() (stock int, ok bool) {
	if p.OpeningStock == nil {
		return 0, false
	}
	return *p.OpeningStock, true
}

// SetOpeningStock fija el stock de apertura.
func (p *Product) SetOpeningStock(n int) {
	p.OpeningStock = &n
}

// IsLowStock umbral conservador de reorden: stock < moq*2.
func (p *Product) IsLowStock() bool {
	return p.Stock < p.MOQ*2
}

// InventoryValue price * stock.
func (p *Product) InventoryValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// Clone copia por valor (los decimales son inmutables).
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	if p.OpeningStock != nil {
		c.SetOpeningStock(*p.OpeningStock)
	}
	return &c
}

// DefaultProducts catálogo semilla cuando no existe documento de productos.
func DefaultProducts() []*Product {
	return []*Product{
		{
			ID:           "1",
			SKU:          "THREAD-SILK-BURG-001",
			Name:         "Royal Burgundy Silk Thread",
			Category:     CategoryThread,
			Price:        decimal.RequireFromString("12.50"),
			Image:        "https://picsum.photos/400/400?random=1",
			MOQ:          10,
			Stock:        1500,
			OpeningStock: intPtr(1500),
			Description:  "High-tensile strength pure silk thread.",
			Rating:       4.8,
		},
		{
			ID:           "2",
			SKU:          "FABRIC-EGY-COT-WHT",
			Name:         "Egyptian Cotton Bolt - White",
			Category:     CategoryFabric,
			Price:        decimal.RequireFromString("145.00"),
			Image:        "https://picsum.photos/400/400?random=2",
			MOQ:          2,
			Stock:        50,
			OpeningStock: intPtr(50),
			Description:  "Premium 800 thread count Egyptian cotton.",
			Rating:       4.9,
		},
		{
			ID:           "3",
			SKU:          "ACC-NEEDLE-IND-14",
			Name:         "Industrial Sewing Needles (Size 14)",
			Category:     CategoryAccessory,
			Price:        decimal.RequireFromString("25.00"),
			Image:        "https://picsum.photos/400/400?random=3",
			MOQ:          5,
			Stock:        200,
			OpeningStock: intPtr(200),
			Description:  "Titanium-coated needles.",
			Rating:       4.6,
		},
	}
}

func intPtr(n int) *int { return &n }
