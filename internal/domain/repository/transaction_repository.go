package repository

import (
	"context"

	"github.com/jhoicas/finovex-pos/internal/domain/entity"
)

// TransactionRepository define el puerto del ledger append-only.
// List devuelve las transacciones de la más reciente a la más antigua.
type TransactionRepository interface {
	List(ctx context.Context) ([]*entity.Transaction, error)
	Prepend(ctx context.Context, tx *entity.Transaction) error
}
