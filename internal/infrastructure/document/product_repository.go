// Package document implementa los repositorios del catálogo y del ledger como documentos JSON
// dentro de un kv.Store. Es el formato de persistencia que también lee la UI web.
package document

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/finovex-pos/internal/domain/entity"
	"github.com/jhoicas/finovex-pos/internal/domain/repository"
	"github.com/jhoicas/finovex-pos/internal/infrastructure/kv"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementación de repository.ProductRepository sobre el documento
// finovex_db_products. Si el documento no existe, se siembra con entity.DefaultProducts()
// siempre bajo una unidad exclusiva.
type ProductRepository struct {
	store kv.Store
}

// NewProductRepository construye el repositorio.
func NewProductRepository(store kv.Store) *ProductRepository {
	return &ProductRepository{store: store}
}

// List devuelve el catálogo en el orden almacenado.
func (r *ProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	raw, ok, err := r.store.Get(ctx, kv.KeyProducts)
	if err != nil {
		return nil, fmt.Errorf("leer productos: %w", err)
	}
	if ok {
		return decodeProducts(raw)
	}
	if t, isTx := r.store.(kv.Transactor); isTx {
		return r.seed(ctx, t)
	}
	// Dentro de una unidad la semilla se confirma junto con el resto de escrituras.
	seed := entity.DefaultProducts()
	if err := r.write(ctx, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// seed siembra el catálogo en una unidad exclusiva. Si otra unidad lo escribió entre la
// lectura y el bloqueo, devuelve lo que encontró sin sobrescribirlo.
func (r *ProductRepository) seed(ctx context.Context, t kv.Transactor) ([]*entity.Product, error) {
	var list []*entity.Product
	err := t.Update(ctx, []string{kv.KeyProducts}, func(tx kv.Store) error {
		raw, ok, err := tx.Get(ctx, kv.KeyProducts)
		if err != nil {
			return fmt.Errorf("leer productos: %w", err)
		}
		if ok {
			list, err = decodeProducts(raw)
			return err
		}
		list = entity.DefaultProducts()
		return NewProductRepository(tx).write(ctx, list)
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func decodeProducts(raw string) ([]*entity.Product, error) {
	var list []*entity.Product
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decodificar productos: %w", err)
	}
	return list, nil
}

// GetByID busca por id exacto.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

// GetBySKU busca por SKU sin distinguir mayúsculas (case folding Unicode).
func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		if entity.SameSKU(p.SKU, sku) {
			return p, nil
		}
	}
	return nil, nil
}

// Save reemplaza en su posición si el id existe; si no, antepone.
func (r *ProductRepository) Save(ctx context.Context, product *entity.Product) error {
	list, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i, p := range list {
		if p.ID == product.ID {
			list[i] = product
			return r.write(ctx, list)
		}
	}
	return r.write(ctx, append([]*entity.Product{product}, list...))
}

func (r *ProductRepository) write(ctx context.Context, list []*entity.Product) error {
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("codificar productos: %w", err)
	}
	if err := r.store.Set(ctx, kv.KeyProducts, string(b)); err != nil {
		return fmt.Errorf("guardar productos: %w", err)
	}
	return nil
}
