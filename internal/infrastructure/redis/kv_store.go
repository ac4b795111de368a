// Package redis implementa el almacén de documentos sobre Redis, compartible entre terminales.
// La exclusión de la unidad verificación-escritura es optimista: WATCH sobre las claves y
// MULTI/EXEC al confirmar (compare-and-swap), con reintentos acotados.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/finovex-pos/internal/infrastructure/kv"
)

var _ kv.Transactor = (*KVStore)(nil)

// DefaultMaxRetries reintentos de Update ante redis.TxFailedErr.
const DefaultMaxRetries = 8

// KVStore implementación de kv.Transactor sobre go-redis.
type KVStore struct {
	client     *redis.Client
	prefix     string
	maxRetries int
}

// NewKVStore construye el adaptador. prefix se antepone a todas las claves.
func NewKVStore(client *redis.Client, prefix string) *KVStore {
	return &KVStore{client: client, prefix: prefix, maxRetries: DefaultMaxRetries}
}

// Get lee un documento.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	return get(ctx, s.client, s.prefix+key)
}

// Set escribe un documento sin expiración.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Update observa las claves, ejecuta fn sobre una vista con escrituras retenidas y las
// confirma en MULTI/EXEC. Si otra terminal modificó alguna clave observada, se reintenta
// desde el principio; fn debe ser re-ejecutable.
func (s *KVStore) Update(ctx context.Context, keys []string, fn func(tx kv.Store) error) error {
	watched := make([]string, len(keys))
	for i, k := range keys {
		watched[i] = s.prefix + k
	}

	txf := func(rtx *redis.Tx) error {
		staged := kv.NewStaged(func(ctx context.Context, key string) (string, bool, error) {
			return get(ctx, rtx, s.prefix+key)
		})
		if err := fn(staged); err != nil {
			return err
		}
		_, err := rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, w := range staged.Pending() {
				pipe.Set(ctx, s.prefix+w[0], w[1], 0)
			}
			return nil
		})
		return err
	}

	for i := 0; i < s.maxRetries; i++ {
		err := s.client.Watch(ctx, txf, watched...)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return kv.ErrConflict
}

func get(ctx context.Context, c redis.Cmdable, key string) (string, bool, error) {
	v, err := c.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}
