package analytics

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/finovex-pos/internal/application/dto"
)

const replenishmentWindowDays = 30 // ventana de ventas recientes para priorizar

// Replenishment genera la lista de reposición para los productos bajo el umbral (stock < moq*2).
// IdealStock = ReorderPoint * 1.5; la cantidad sugerida se redondea hacia arriba a múltiplos
// del MOQ. Orden: mayor volumen vendido en la ventana, luego mayor déficit.
func (uc *ReportUseCase) Replenishment(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, transactions, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	since := uc.now().AddDate(0, 0, -replenishmentWindowDays).UnixMilli()
	sold := make(map[string]int)
	for _, tx := range transactions {
		if tx.Type.IsSale() && tx.Timestamp >= since {
			sold[tx.ProductID] += tx.Quantity
		}
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, p := range products {
		if !p.IsLowStock() {
			continue
		}
		moq := max(p.MOQ, 1)
		reorderPoint := moq * 2
		idealStock := (reorderPoint*3 + 1) / 2
		qty := max(idealStock-p.Stock, moq)
		if rem := qty % moq; rem != 0 {
			qty += moq - rem
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:         p.ID,
			SKU:               p.SKU,
			ProductName:       p.Name,
			CurrentStock:      p.Stock,
			ReorderPoint:      reorderPoint,
			IdealStock:        idealStock,
			SuggestedOrderQty: qty,
			EstimatedCost:     p.Price.Mul(decimal.NewFromInt(int64(qty))),
			UnitsSoldRecent:   sold[p.ID],
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.UnitsSoldRecent != b.UnitsSoldRecent {
			return a.UnitsSoldRecent > b.UnitsSoldRecent
		}
		return a.ReorderPoint-a.CurrentStock > b.ReorderPoint-b.CurrentStock
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
