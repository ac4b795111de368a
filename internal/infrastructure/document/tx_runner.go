package document

import (
	"context"

	"github.com/jhoicas/finovex-pos/internal/application/inventory"
	"github.com/jhoicas/finovex-pos/internal/domain/repository"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/kv"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// lockedKeys documentos que cubre cada unidad exclusiva.
var lockedKeys = []string{kv.KeyProducts, kv.KeyTransactions}

// TxRunner ejecuta callbacks con acceso exclusivo a los documentos de productos y transacciones.
type TxRunner struct {
	store kv.Transactor
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store kv.Transactor) *TxRunner {
	return &TxRunner{store: store}
}

// Run pasa a fn repositorios atados a la unidad; si fn falla no se persiste nada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
) error) error {
	return r.store.Update(ctx, lockedKeys, func(tx kv.Store) error {
		return fn(NewProductRepository(tx), NewTransactionRepository(tx))
	})
}
