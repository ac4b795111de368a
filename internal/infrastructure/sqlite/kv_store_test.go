package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/finovex-pos/internal/infrastructure/kv"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/kv/kvtest"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/sqlite"
)

func openTemp(t *testing.T, prefix string) *sqlite.KVStore {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "finovex.db"), prefix)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestKVStore_Contrato(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) kv.Transactor { return openTemp(t, "") })
}

func TestKVStore_PersisteEntreAperturas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finovex.db")
	ctx := context.Background()

	s, err := sqlite.Open(path, "tienda:")
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, kv.KeyTransactions, "[]"))
	require.NoError(t, s.Close())

	s, err = sqlite.Open(path, "tienda:")
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get(ctx, kv.KeyTransactions)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	other, err := sqlite.Open(path, "otra:")
	require.NoError(t, err)
	defer other.Close()
	_, ok, err = other.Get(ctx, kv.KeyTransactions)
	require.NoError(t, err)
	assert.False(t, ok, "el prefijo aísla los documentos")
}
