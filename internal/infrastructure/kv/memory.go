package kv

import (
	"context"
	"sync"
)

var _ Transactor = (*MemoryStore)(nil)

// MemoryStore almacén en memoria del proceso. Update serializa a todos los escritores.
type MemoryStore struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore crea un almacén vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get lee una clave.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set escribe una clave.
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Update ejecuta fn con exclusión mutua y aplica sus escrituras solo si fn termina sin error.
func (s *MemoryStore) Update(ctx context.Context, _ []string, fn func(tx Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := newStaged(s.Get)
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, kv := range tx.Pending() {
		s.data[kv[0]] = kv[1]
	}
	return nil
}
