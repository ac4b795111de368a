package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tipo de evento del ledger; determina el signo del delta de stock.
type TransactionType string

const (
	TransactionOnlineOrder TransactionType = "online_order"
	TransactionOfflineSale TransactionType = "offline_sale"
	TransactionRestock     TransactionType = "restock"
)

// Valid indica si el tipo pertenece a la enumeración.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionOnlineOrder, TransactionOfflineSale, TransactionRestock:
		return true
	}
	return false
}

// Decrements true para ventas (online u offline); restock incrementa.
func (t TransactionType) Decrements() bool {
	return t == TransactionOnlineOrder || t == TransactionOfflineSale
}

// IsSale ventas que cuentan para salesToday.
func (t TransactionType) IsSale() bool { return t.Decrements() }

// FulfillmentMethod entrega o retiro en tienda.
type FulfillmentMethod string

const (
	FulfillmentDelivery FulfillmentMethod = "delivery"
	FulfillmentPickup   FulfillmentMethod = "pickup"
)

// Valid indica si el método es conocido.
func (f FulfillmentMethod) Valid() bool {
	return f == FulfillmentDelivery || f == FulfillmentPickup
}

// PaymentMethod tarjeta o efectivo.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

// Valid indica si el método es conocido.
func (p PaymentMethod) Valid() bool {
	return p == PaymentCard || p == PaymentCash
}

// Transaction entrada inmutable del ledger (solo se antepone, nunca se modifica ni borra).
// ProductName y TotalAmount son snapshots al momento de la transacción.
type Transaction struct {
	ID                string             `json:"id"`
	Type              TransactionType    `json:"type"`
	ProductID         string             `json:"productId"`
	ProductName       string             `json:"productName"`
	Quantity          int                `json:"quantity"`
	Timestamp         int64              `json:"timestamp"` // epoch en milisegundos
	TotalAmount       decimal.Decimal    `json:"totalAmount"`
	PerformedBy       string             `json:"performedBy"`
	FulfillmentMethod *FulfillmentMethod `json:"fulfillmentMethod,omitempty"`
	PaymentMethod     *PaymentMethod     `json:"paymentMethod,omitempty"`
}

// At devuelve el instante de creación.
func (t *Transaction) At() time.Time {
	return time.UnixMilli(t.Timestamp)
}

// SignedQuantity +quantity para restock, -quantity para ventas.
func (t *Transaction) SignedQuantity() int {
	if t.Type.Decrements() {
		return -t.Quantity
	}
	return t.Quantity
}
