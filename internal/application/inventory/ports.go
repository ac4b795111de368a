package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/finovex-pos/internal/domain/repository"
)

// TxRunner ejecuta una función con acceso exclusivo al catálogo y al ledger, pasando
// repositorios atados a esa unidad. Si fn devuelve error no se persiste ninguna escritura.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error) error
}

// Clock fuente de tiempo inyectable (timestamps del ledger).
type Clock func() time.Time
