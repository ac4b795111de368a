package repository

import (
	"context"

	"github.com/jhoicas/finovex-pos/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetBySKU devuelven (nil, nil) cuando no existe: "no encontrado" no es un error.
type ProductRepository interface {
	List(ctx context.Context) ([]*entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Save inserta (anteponiendo) si el id no existe, o reemplaza en su posición si existe.
	Save(ctx context.Context, product *entity.Product) error
}
