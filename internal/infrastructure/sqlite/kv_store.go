// Package sqlite implementa el almacén de documentos sobre un archivo SQLite local (GORM):
// el equivalente durable de un único dispositivo.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/jhoicas/finovex-pos/internal/infrastructure/kv"
)

var _ kv.Transactor = (*KVStore)(nil)

// Document fila de la tabla kv_documents.
type Document struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName mismo nombre de tabla que el adaptador PostgreSQL.
func (Document) TableName() string { return "kv_documents" }

// KVStore implementación de kv.Transactor con GORM + SQLite.
// SQLite serializa escritores a nivel de archivo; el mutex evita SQLITE_BUSY entre
// goroutines del mismo proceso y hace exclusiva la unidad verificación-escritura.
type KVStore struct {
	db     *gorm.DB
	prefix string
	mu     sync.Mutex
}

// Open abre (o crea) el archivo y migra la tabla.
func Open(path, prefix string) (*KVStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, fmt.Errorf("migrar kv_documents: %w", err)
	}
	return &KVStore{db: db, prefix: prefix}, nil
}

// Close cierra la conexión subyacente.
func (s *KVStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get lee un documento.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	return getDocument(s.db.WithContext(ctx), s.prefix+key)
}

// Set escribe un documento.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return setDocument(s.db.WithContext(ctx), s.prefix+key, value)
}

// Update ejecuta fn dentro de una transacción GORM con exclusión mutua del proceso.
func (s *KVStore) Update(ctx context.Context, _ []string, fn func(tx kv.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txStore{db: tx, prefix: s.prefix})
	})
}

type txStore struct {
	db     *gorm.DB
	prefix string
}

func (t *txStore) Get(_ context.Context, key string) (string, bool, error) {
	return getDocument(t.db, t.prefix+key)
}

func (t *txStore) Set(_ context.Context, key, value string) error {
	return setDocument(t.db, t.prefix+key, value)
}

func getDocument(db *gorm.DB, key string) (string, bool, error) {
	var doc Document
	if err := db.First(&doc, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get document %s: %w", key, err)
	}
	return doc.Value, true, nil
}

func setDocument(db *gorm.DB, key, value string) error {
	doc := Document{Key: key, Value: value, UpdatedAt: time.Now()}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("set document %s: %w", key, err)
	}
	return nil
}
