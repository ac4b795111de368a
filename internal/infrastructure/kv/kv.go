// Package kv define el colaborador de persistencia clave-valor sobre el que viven
// los documentos JSON del catálogo y del ledger, y una implementación en memoria.
package kv

import (
	"context"
	"fmt"

	"github.com/jhoicas/finovex-pos/internal/domain"
)

// Claves de los documentos persistidos.
const (
	KeyProducts     = "finovex_db_products"
	KeyTransactions = "finovex_db_transactions"
	KeySession      = "finovex_session" // reservado para la capa UI; el núcleo no lo escribe
)

// ErrConflict se devuelve cuando una actualización optimista agotó sus reintentos.
// Envuelve domain.ErrConflict.
var ErrConflict = fmt.Errorf("kv: escritura concurrente: %w", domain.ErrConflict)

// Store contrato mínimo del almacén: lectura y escritura de strings por clave.
// Get devuelve ok=false cuando la clave no existe.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Transactor almacén que además ofrece una unidad exclusiva sobre un conjunto de claves.
// Dentro de fn ninguna otra Update sobre esas claves puede intercalarse; si fn devuelve
// error no se aplica ninguna escritura.
type Transactor interface {
	Store
	Update(ctx context.Context, keys []string, fn func(tx Store) error) error
}

// staged acumula escrituras sobre una lectura base; lo usan las implementaciones
// que confirman todo al final (memoria, redis).
type staged struct {
	read   func(ctx context.Context, key string) (string, bool, error)
	writes map[string]string
	order  []string
}

func newStaged(read func(ctx context.Context, key string) (string, bool, error)) *staged {
	return &staged{read: read, writes: make(map[string]string)}
}

func (s *staged) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok := s.writes[key]; ok {
		return v, true, nil
	}
	return s.read(ctx, key)
}

func (s *staged) Set(_ context.Context, key, value string) error {
	if _, ok := s.writes[key]; !ok {
		s.order = append(s.order, key)
	}
	s.writes[key] = value
	return nil
}

// Staged expone las escrituras pendientes en orden de primera escritura.
type Staged interface {
	Store
	Pending() [][2]string
}

// NewStaged construye un Store transaccional que lee de read y retiene las escrituras.
func NewStaged(read func(ctx context.Context, key string) (string, bool, error)) Staged {
	return newStaged(read)
}

func (s *staged) Pending() [][2]string {
	out := make([][2]string, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, [2]string{k, s.writes[k]})
	}
	return out
}
