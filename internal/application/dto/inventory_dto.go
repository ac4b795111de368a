package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/finovex-pos/internal/domain/entity"
)

// Códigos de resultado del ledger.
const (
	CodeOK                = "OK"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeInvalidQuantity   = "INVALID_QUANTITY"
	CodeInvalidInput      = "INVALID_INPUT"
)

// TransactionResult resultado de RecordTransaction. Los rechazos de dominio viajan aquí
// (Success=false) y no como error; Err conserva el sentinel para errors.Is.
type TransactionResult struct {
	Success     bool                `json:"success"`
	Code        string              `json:"code"`
	Message     string              `json:"message"`
	Transaction *entity.Transaction `json:"transaction,omitempty"`
	NewStock    *int                `json:"newStock,omitempty"`
	Err         error               `json:"-"`
}

// RecordTransactionRequest body de POST /api/inventory/transactions.
type RecordTransactionRequest struct {
	Type              string `json:"type"`
	ProductID         string `json:"productId"`
	Quantity          int    `json:"quantity"`
	FulfillmentMethod string `json:"fulfillmentMethod,omitempty"`
	PaymentMethod     string `json:"paymentMethod,omitempty"`
}

// CartLineRequest línea del carrito enviada por el cliente.
type CartLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest body de POST /api/checkout.
type CheckoutRequest struct {
	Items             []CartLineRequest `json:"items"`
	FulfillmentMethod string            `json:"fulfillmentMethod"`
	PaymentMethod     string            `json:"paymentMethod"`
}

// CheckoutLineResult resultado por línea del checkout.
type CheckoutLineResult struct {
	ProductID string             `json:"productId"`
	Quantity  int                `json:"quantity"`
	Result    *TransactionResult `json:"result"`
}

// CheckoutResponse resultado del checkout completo. Cada línea es independiente:
// una línea rechazada no revierte las aceptadas.
type CheckoutResponse struct {
	Lines        []CheckoutLineResult `json:"lines"`
	AllSucceeded bool                 `json:"allSucceeded"`
	Total        decimal.Decimal      `json:"total"` // suma de las líneas aceptadas
}

// ScanRequest body de POST /api/pos/scan.
type ScanRequest struct {
	SKU string `json:"sku"`
}

// RestockRequest body de POST /api/inventory/restock.
type RestockRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// TransactionListResponse ledger, más reciente primero. Total cuenta el ledger completo;
// Page solo se informa si se pidió paginación.
type TransactionListResponse struct {
	Items []*entity.Transaction `json:"items"`
	Total int                   `json:"total"`
	Page  *PageResponse         `json:"page,omitempty"`
}
