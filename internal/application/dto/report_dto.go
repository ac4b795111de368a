package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/finovex-pos/internal/domain/entity"
)

// ReportStatsDTO respuesta de GET /api/reports/stats. Derivado solo de catálogo + ledger.
type ReportStatsDTO struct {
	TotalProducts       int                   `json:"totalProducts"`
	TotalInventoryValue decimal.Decimal       `json:"totalInventoryValue"` // Σ price * stock
	LowStockCount       int                   `json:"lowStockCount"`
	SalesToday          decimal.Decimal       `json:"salesToday"`
	RecentTransactions  []*entity.Transaction `json:"recentTransactions"` // las 10 más recientes
	LowStockList        []*entity.Product     `json:"lowStockList"`
	GeneratedAt         int64                 `json:"generatedAt"`
}

// StockDiscrepancyDTO producto cuyo stock no coincide con la reproducción del ledger.
type StockDiscrepancyDTO struct {
	ProductID     string `json:"productId"`
	SKU           string `json:"sku"`
	ProductName   string `json:"productName"`
	OpeningStock  int    `json:"openingStock"`
	ExpectedStock int    `json:"expectedStock"`
	ActualStock   int    `json:"actualStock"`
}

// UnreconcilableProductDTO producto sin stock de apertura: no se puede reproducir su ledger.
type UnreconcilableProductDTO struct {
	ProductID   string `json:"productId"`
	SKU         string `json:"sku"`
	ProductName string `json:"productName"`
	ActualStock int    `json:"actualStock"`
}

// ReconciliationDTO respuesta de GET /api/reports/reconcile.
// Consistent solo considera Discrepancies; Unreconcilable se informa aparte.
type ReconciliationDTO struct {
	Consistent        bool                       `json:"consistent"`
	ProductsChecked   int                        `json:"productsChecked"`
	TransactionsCount int                        `json:"transactionsCount"`
	OrphanTransaction int                        `json:"orphanTransactions"` // referencian productos inexistentes
	Discrepancies     []StockDiscrepancyDTO      `json:"discrepancies"`
	Unreconcilable    []UnreconcilableProductDTO `json:"unreconcilable"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto bajo el umbral.
type ReplenishmentSuggestionDTO struct {
	ProductID         string          `json:"productId"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"productName"`
	CurrentStock      int             `json:"currentStock"`
	ReorderPoint      int             `json:"reorderPoint"`      // moq * 2
	IdealStock        int             `json:"idealStock"`        // ReorderPoint * 1.5, redondeado hacia arriba
	SuggestedOrderQty int             `json:"suggestedOrderQty"` // IdealStock - CurrentStock, múltiplo de moq
	EstimatedCost     decimal.Decimal `json:"estimatedCost"`     // SuggestedOrderQty * price
	UnitsSoldRecent   int             `json:"unitsSoldRecent"`   // ventas de los últimos 30 días
	Priority          int             `json:"priority"`          // 1 = más urgente
}
