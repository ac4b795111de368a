package inventory

import (
	"github.com/jhoicas/finovex-pos/internal/domain"
	"github.com/jhoicas/finovex-pos/internal/domain/entity"
)

// StockCalculator aplica un movimiento al stock actual (servicio de dominio).
// NuevoStock = StockActual + Cantidad (restock) | StockActual - Cantidad (ventas).
// Nunca devuelve un stock negativo: si la venta excede el stock retorna ErrInsufficientStock.
func StockCalculator(stockActual int, txType entity.TransactionType, cantidad int) (int, error) {
	if cantidad <= 0 {
		return stockActual, domain.ErrInvalidQuantity
	}
	if !txType.Valid() {
		return stockActual, domain.ErrInvalidInput
	}
	if !txType.Decrements() {
		return stockActual + cantidad, nil
	}
	if stockActual < cantidad {
		return stockActual, domain.ErrInsufficientStock
	}
	return stockActual - cantidad, nil
}

// ReplayStock reconstruye el stock esperado por producto a partir del stock de apertura
// y la suma con signo de todas las transacciones del ledger que lo referencian.
// Los productos sin stock de apertura conocido no aparecen en el resultado.
func ReplayStock(products []*entity.Product, ledger []*entity.Transaction) map[string]int {
	expected := make(map[string]int, len(products))
	for _, p := range products {
		if opening, ok := p.Baseline(); ok {
			expected[p.ID] = opening
		}
	}
	for _, tx := range ledger {
		if _, ok := expected[tx.ProductID]; !ok {
			continue
		}
		expected[tx.ProductID] += tx.SignedQuantity()
	}
	return expected
}
