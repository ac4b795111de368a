// Package kvtest pruebas de contrato compartidas por todas las implementaciones de kv.Transactor.
package kvtest

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finovex-pos/internal/infrastructure/kv"
)

// Run ejecuta el contrato sobre un almacén vacío nuevo por subtest.
func Run(t *testing.T, newStore func(t *testing.T) kv.Transactor) {
	t.Run("get de clave inexistente", func(t *testing.T) {
		s := newStore(t)
		_, ok, err := s.Get(context.Background(), "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set y get", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, kv.KeyProducts, `[{"id":"1"}]`))
		require.NoError(t, s.Set(ctx, kv.KeyProducts, `[{"id":"2"}]`))

		v, ok, err := s.Get(ctx, kv.KeyProducts)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":"2"}]`, v)
	})

	t.Run("update lee sus propias escrituras y confirma", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		err := s.Update(ctx, []string{"a", "b"}, func(tx kv.Store) error {
			if err := tx.Set(ctx, "a", "1"); err != nil {
				return err
			}
			v, ok, err := tx.Get(ctx, "a")
			if err != nil {
				return err
			}
			assert.True(t, ok)
			assert.Equal(t, "1", v)
			return tx.Set(ctx, "b", "2")
		})
		require.NoError(t, err)

		a, _, _ := s.Get(ctx, "a")
		b, _, _ := s.Get(ctx, "b")
		assert.Equal(t, "1", a)
		assert.Equal(t, "2", b)
	})

	t.Run("update con error no escribe nada", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "a", "original"))

		boom := errors.New("boom")
		err := s.Update(ctx, []string{"a", "b"}, func(tx kv.Store) error {
			_ = tx.Set(ctx, "a", "cambiado")
			_ = tx.Set(ctx, "b", "nuevo")
			return boom
		})
		require.ErrorIs(t, err, boom)

		a, _, _ := s.Get(ctx, "a")
		_, okB, _ := s.Get(ctx, "b")
		assert.Equal(t, "original", a)
		assert.False(t, okB)
	})

	t.Run("updates concurrentes no pierden incrementos", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "counter", "0"))

		const workers = 20
		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- s.Update(ctx, []string{"counter"}, func(tx kv.Store) error {
					v, _, err := tx.Get(ctx, "counter")
					if err != nil {
						return err
					}
					n, _ := strconv.Atoi(v)
					return tx.Set(ctx, "counter", strconv.Itoa(n+1))
				})
			}()
		}
		wg.Wait()
		close(errs)

		committed := 0
		for err := range errs {
			if err == nil {
				committed++
				continue
			}
			require.ErrorIs(t, err, kv.ErrConflict, "solo se admite el conflicto optimista")
		}
		v, _, err := s.Get(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(committed), v)
	})
}
