package document

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/finovex-pos/internal/domain/entity"
	"github.com/jhoicas/finovex-pos/internal/domain/repository"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/kv"
)

var _ repository.TransactionRepository = (*TransactionRepository)(nil)

// TransactionRepository ledger sobre el documento finovex_db_transactions (más reciente primero).
// Un documento ausente equivale a un ledger vacío.
type TransactionRepository struct {
	store kv.Store
}

// NewTransactionRepository construye el repositorio.
func NewTransactionRepository(store kv.Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// List devuelve el ledger completo, de la más reciente a la más antigua.
func (r *TransactionRepository) List(ctx context.Context) ([]*entity.Transaction, error) {
	raw, ok, err := r.store.Get(ctx, kv.KeyTransactions)
	if err != nil {
		return nil, fmt.Errorf("leer transacciones: %w", err)
	}
	if !ok {
		return []*entity.Transaction{}, nil
	}
	var list []*entity.Transaction
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decodificar transacciones: %w", err)
	}
	return list, nil
}

// Prepend antepone la transacción al ledger.
func (r *TransactionRepository) Prepend(ctx context.Context, tx *entity.Transaction) error {
	list, err := r.List(ctx)
	if err != nil {
		return err
	}
	b, err := json.Marshal(append([]*entity.Transaction{tx}, list...))
	if err != nil {
		return fmt.Errorf("codificar transacciones: %w", err)
	}
	if err := r.store.Set(ctx, kv.KeyTransactions, string(b)); err != nil {
		return fmt.Errorf("guardar transacciones: %w", err)
	}
	return nil
}
