package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/finovex-pos/internal/infrastructure/kv"
)

var _ kv.Transactor = (*KVStore)(nil)

const schemaKV = `
	CREATE TABLE IF NOT EXISTS kv_documents (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// KVStore implementación de kv.Transactor sobre una tabla kv_documents.
// Update toma un advisory lock de transacción por clave: dos procesos que comparten la base
// no pueden intercalar la verificación y la escritura de stock.
type KVStore struct {
	pool   *pgxpool.Pool
	prefix string
}

// NewKVStore construye el adaptador y crea la tabla si no existe.
func NewKVStore(ctx context.Context, pool *pgxpool.Pool, prefix string) (*KVStore, error) {
	if _, err := pool.Exec(ctx, schemaKV); err != nil {
		return nil, fmt.Errorf("crear tabla kv_documents: %w", err)
	}
	return &KVStore{pool: pool, prefix: prefix}, nil
}

// Get lee un documento.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	return getDocument(ctx, s.pool, s.prefix+key)
}

// Set escribe un documento (upsert).
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	return setDocument(ctx, s.pool, s.prefix+key, value)
}

// Update inicia una transacción, bloquea las claves (pg_advisory_xact_lock en orden estable
// para evitar deadlocks), ejecuta fn y hace Commit o Rollback.
func (s *KVStore) Update(ctx context.Context, keys []string, fn func(tx kv.Store) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	for _, k := range sorted {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, s.prefix+k); err != nil {
			return fmt.Errorf("lock %s: %w", k, err)
		}
	}

	if err := fn(&txStore{q: tx, prefix: s.prefix}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore vista kv.Store atada a una transacción abierta.
type txStore struct {
	q      Querier
	prefix string
}

func (t *txStore) Get(ctx context.Context, key string) (string, bool, error) {
	return getDocument(ctx, t.q, t.prefix+key)
}

func (t *txStore) Set(ctx context.Context, key, value string) error {
	return setDocument(ctx, t.q, t.prefix+key, value)
}

func getDocument(ctx context.Context, q Querier, key string) (string, bool, error) {
	var value string
	err := q.QueryRow(ctx, `SELECT value FROM kv_documents WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get document %s: %w", key, err)
	}
	return value, true, nil
}

func setDocument(ctx context.Context, q Querier, key, value string) error {
	_, err := q.Exec(ctx, `
		INSERT INTO kv_documents (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, key, value)
	if err != nil {
		return fmt.Errorf("set document %s: %w", key, err)
	}
	return nil
}
