// Package inventory contiene el ledger de transacciones: única vía para modificar el stock.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/finovex-pos/internal/application/dto"
	"github.com/jhoicas/finovex-pos/internal/domain"
	"github.com/jhoicas/finovex-pos/internal/domain/entity"
	"github.com/jhoicas/finovex-pos/internal/domain/inventory"
	"github.com/jhoicas/finovex-pos/internal/domain/repository"
	"github.com/jhoicas/finovex-pos/pkg/logger"
)

// Mensajes de resultado visibles por el usuario.
const (
	MsgSuccess           = "Transaction processed successfully"
	MsgProductNotFound   = "Product not found"
	MsgSKUNotFound       = "Product SKU Not Found"
	MsgInvalidQuantity   = "Quantity must be a positive integer"
	MsgUnknownType       = "Unknown transaction type"
	MsgUnknownFulfilment = "Unknown fulfillment method"
	MsgUnknownPayment    = "Unknown payment method"
)

// MsgInsufficientStock mensaje de sobreventa con el stock disponible.
func MsgInsufficientStock(available int) string {
	return fmt.Sprintf("Insufficient stock. Only %d available.", available)
}

// RecordInput entrada de RecordTransaction. Fulfillment y Payment vacíos se omiten;
// en restock se descartan siempre.
type RecordInput struct {
	Type        entity.TransactionType
	ProductID   string
	Quantity    int
	PerformedBy string
	Fulfillment entity.FulfillmentMethod
	Payment     entity.PaymentMethod
}

// CheckoutInput carrito a confirmar como pedido online.
type CheckoutInput struct {
	Actor       entity.Actor
	Cart        *entity.Cart
	Fulfillment entity.FulfillmentMethod
	Payment     entity.PaymentMethod
}

// LedgerOption configura el caso de uso.
type LedgerOption func(*LedgerUseCase)

// WithClock reemplaza time.Now (tests).
func WithClock(c Clock) LedgerOption {
	return func(uc *LedgerUseCase) { uc.now = c }
}

// WithLogger inyecta el logger estructurado.
func WithLogger(l *logger.Logger) LedgerOption {
	return func(uc *LedgerUseCase) { uc.log = l.Component("ledger") }
}

// LedgerUseCase valida y registra movimientos de stock. Cada movimiento aceptado modifica
// exactamente un producto y antepone exactamente una transacción, dentro de una unidad exclusiva.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	now         Clock
	log         *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	opts ...LedgerOption,
) *LedgerUseCase {
	uc := &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		txRepo:      txRepo,
		now:         time.Now,
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// RecordTransaction aplica un movimiento al stock y lo registra en el ledger.
//
// Los rechazos de dominio (producto inexistente, sobreventa, cantidad o tipo inválidos) se
// devuelven como TransactionResult con Success=false y error nil; en ese caso no se escribe nada.
// Solo los fallos de almacenamiento se devuelven como error.
func (uc *LedgerUseCase) RecordTransaction(ctx context.Context, in RecordInput) (*dto.TransactionResult, error) {
	if res := validateRecord(&in); res != nil {
		uc.logRejected(in, res)
		return res, nil
	}

	var result *dto.TransactionResult
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, txRepo repository.TransactionRepository) error {
		// fn puede re-ejecutarse (almacenes optimistas): el resultado se recalcula siempre.
		result = nil

		product, err := productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			result = reject(domain.ErrNotFound, dto.CodeNotFound, MsgProductNotFound)
			return nil
		}

		newStock, err := inventory.StockCalculator(product.Stock, in.Type, in.Quantity)
		if errors.Is(err, domain.ErrInsufficientStock) {
			result = reject(err, dto.CodeInsufficientStock, MsgInsufficientStock(product.Stock))
			return nil
		}
		if err != nil {
			return err
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generar id de transacción: %w", err)
		}
		tx := &entity.Transaction{
			ID:          id.String(),
			Type:        in.Type,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			Timestamp:   uc.now().UnixMilli(),
			TotalAmount: product.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
			PerformedBy: in.PerformedBy,
		}
		if in.Type != entity.TransactionRestock {
			if in.Fulfillment != "" {
				f := in.Fulfillment
				tx.FulfillmentMethod = &f
			}
			if in.Payment != "" {
				p := in.Payment
				tx.PaymentMethod = &p
			}
		}

		product.Stock = newStock
		if err := productRepo.Save(ctx, product); err != nil {
			return err
		}
		if err := txRepo.Prepend(ctx, tx); err != nil {
			return err
		}

		result = &dto.TransactionResult{
			Success:     true,
			Code:        dto.CodeOK,
			Message:     MsgSuccess,
			Transaction: tx,
			NewStock:    &newStock,
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).
			Str("type", string(in.Type)).
			Str("product_id", in.ProductID).
			Msg("registro de transacción fallido")
		return nil, fmt.Errorf("registrar transacción: %w", err)
	}

	if result.Success {
		uc.log.Info().
			Str("transaction_id", result.Transaction.ID).
			Str("type", string(in.Type)).
			Str("product_id", in.ProductID).
			Int("quantity", in.Quantity).
			Int("new_stock", *result.NewStock).
			Str("performed_by", in.PerformedBy).
			Msg("transacción registrada")
	} else {
		uc.logRejected(in, result)
	}
	return result, nil
}

// Checkout registra un online_order por cada línea del carrito. Las líneas se procesan de forma
// independiente y en orden: un rechazo no revierte las líneas ya aceptadas. El carrito se vacía
// solo si todas las líneas fueron aceptadas.
func (uc *LedgerUseCase) Checkout(ctx context.Context, in CheckoutInput) (*dto.CheckoutResponse, error) {
	if in.Cart == nil || in.Cart.Len() == 0 {
		return nil, &entity.ValidationError{Field: "items", Reason: "el carrito está vacío"}
	}
	if !in.Fulfillment.Valid() {
		return nil, &entity.ValidationError{Field: "fulfillmentMethod", Reason: MsgUnknownFulfilment}
	}
	if !in.Payment.Valid() {
		return nil, &entity.ValidationError{Field: "paymentMethod", Reason: MsgUnknownPayment}
	}

	resp := &dto.CheckoutResponse{AllSucceeded: true, Total: decimal.Zero}
	for _, item := range in.Cart.Items() {
		res, err := uc.RecordTransaction(ctx, RecordInput{
			Type:        entity.TransactionOnlineOrder,
			ProductID:   item.Product.ID,
			Quantity:    item.Quantity,
			PerformedBy: in.Actor.ID,
			Fulfillment: in.Fulfillment,
			Payment:     in.Payment,
		})
		if err != nil {
			return nil, err
		}
		resp.Lines = append(resp.Lines, dto.CheckoutLineResult{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			Result:    res,
		})
		if !res.Success {
			resp.AllSucceeded = false
			continue
		}
		resp.Total = resp.Total.Add(res.Transaction.TotalAmount)
	}
	if resp.AllSucceeded {
		in.Cart.Clear()
	}
	return resp, nil
}

// ScanSale registra una venta de mostrador de una unidad a partir de un SKU escaneado
// (retiro en tienda, pago en efectivo).
func (uc *LedgerUseCase) ScanSale(ctx context.Context, sku string, actor entity.Actor) (*dto.TransactionResult, error) {
	product, err := uc.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("buscar sku: %w", err)
	}
	if product == nil {
		res := reject(domain.ErrNotFound, dto.CodeNotFound, MsgSKUNotFound)
		uc.log.Warn().Str("sku", sku).Str("performed_by", actor.ID).Msg("sku escaneado desconocido")
		return res, nil
	}
	return uc.RecordTransaction(ctx, RecordInput{
		Type:        entity.TransactionOfflineSale,
		ProductID:   product.ID,
		Quantity:    1,
		PerformedBy: actor.ID,
		Fulfillment: entity.FulfillmentPickup,
		Payment:     entity.PaymentCash,
	})
}

// Restock ingresa mercancía al inventario.
func (uc *LedgerUseCase) Restock(ctx context.Context, productID string, quantity int, actor entity.Actor) (*dto.TransactionResult, error) {
	return uc.RecordTransaction(ctx, RecordInput{
		Type:        entity.TransactionRestock,
		ProductID:   productID,
		Quantity:    quantity,
		PerformedBy: actor.ID,
	})
}

// ListTransactions devuelve el ledger completo, más reciente primero.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context) ([]*entity.Transaction, error) {
	list, err := uc.txRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar transacciones: %w", err)
	}
	return list, nil
}

// validateRecord normaliza la entrada y devuelve un rechazo si no es válida.
func validateRecord(in *RecordInput) *dto.TransactionResult {
	if in.PerformedBy == "" {
		in.PerformedBy = entity.GuestActorID
	}
	if in.Type == entity.TransactionRestock {
		in.Fulfillment = ""
		in.Payment = ""
	}
	switch {
	case in.Quantity <= 0:
		return reject(domain.ErrInvalidQuantity, dto.CodeInvalidQuantity, MsgInvalidQuantity)
	case !in.Type.Valid():
		return reject(domain.ErrInvalidInput, dto.CodeInvalidInput, MsgUnknownType)
	case in.Fulfillment != "" && !in.Fulfillment.Valid():
		return reject(domain.ErrInvalidInput, dto.CodeInvalidInput, MsgUnknownFulfilment)
	case in.Payment != "" && !in.Payment.Valid():
		return reject(domain.ErrInvalidInput, dto.CodeInvalidInput, MsgUnknownPayment)
	}
	return nil
}

func reject(err error, code, msg string) *dto.TransactionResult {
	return &dto.TransactionResult{Success: false, Code: code, Message: msg, Err: err}
}

func (uc *LedgerUseCase) logRejected(in RecordInput, res *dto.TransactionResult) {
	uc.log.Warn().
		Str("type", string(in.Type)).
		Str("product_id", in.ProductID).
		Int("quantity", in.Quantity).
		Str("code", res.Code).
		Msg(res.Message)
}
