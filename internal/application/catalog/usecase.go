// Package catalog casos de uso del catálogo: consulta, búsqueda por SKU y alta/edición
// desde el panel de administración.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/finovex-pos/internal/application/dto"
	"github.com/jhoicas/finovex-pos/internal/application/inventory"
	"github.com/jhoicas/finovex-pos/internal/domain"
	"github.com/jhoicas/finovex-pos/internal/domain/entity"
	"github.com/jhoicas/finovex-pos/internal/domain/repository"
	"github.com/jhoicas/finovex-pos/pkg/logger"
)

// UseCase operaciones sobre el catálogo. El stock no se edita aquí: pertenece al ledger.
type UseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
	log      *logger.Logger
}

// NewUseCase construye el caso de uso. Las escrituras pasan por txRunner para no
// intercalarse con el ledger.
func NewUseCase(repo repository.ProductRepository, txRunner inventory.TxRunner, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repo: repo, txRunner: txRunner, log: log.Component("catalog")}
}

// ListProducts devuelve el catálogo en el orden almacenado (siembra el catálogo por defecto si no existe).
func (uc *UseCase) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	return list, nil
}

// FindBySKU búsqueda sin distinguir mayúsculas. Devuelve (nil, nil) si no existe.
func (uc *UseCase) FindBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("buscar sku: %w", err)
	}
	return p, nil
}

// GetByID devuelve (nil, nil) si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	return p, nil
}

// Upsert reemplaza el producto en su posición si el id ya existe (conservando stock y
// openingStock, propiedad del ledger) o lo antepone con openingStock = stock.
// Un SKU ya usado por otro id devuelve domain.ErrDuplicate.
func (uc *UseCase) Upsert(ctx context.Context, product *entity.Product) error {
	if product == nil {
		return &entity.ValidationError{Field: "product", Reason: "es requerido"}
	}
	if err := product.Validate(); err != nil {
		return err
	}
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.TransactionRepository) error {
		bySKU, err := productRepo.GetBySKU(ctx, product.SKU)
		if err != nil {
			return err
		}
		if bySKU != nil && bySKU.ID != product.ID {
			return fmt.Errorf("sku %q ya pertenece al producto %s: %w", product.SKU, bySKU.ID, domain.ErrDuplicate)
		}

		toSave := product.Clone()
		existing, err := productRepo.GetByID(ctx, product.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			toSave.Stock = existing.Stock
			toSave.OpeningStock = existing.OpeningStock
		} else {
			toSave.SetOpeningStock(toSave.Stock)
		}
		return productRepo.Save(ctx, toSave)
	})
	if err != nil {
		return fmt.Errorf("guardar producto: %w", err)
	}
	uc.log.Info().Str("product_id", product.ID).Str("sku", product.SKU).Msg("producto guardado")
	return nil
}

// Save punto de entrada del formulario de administración: genera el id si falta,
// valida con entity.NewProduct y delega en Upsert. Devuelve el producto tal como quedó guardado.
func (uc *UseCase) Save(ctx context.Context, in dto.SaveProductRequest) (*entity.Product, error) {
	id := in.ID
	if id == "" {
		id = uuid.New().String()
	}
	product, err := entity.NewProduct(entity.ProductInput{
		ID:          id,
		SKU:         in.SKU,
		Name:        in.Name,
		Category:    entity.Category(in.Category),
		Price:       in.Price,
		Image:       in.Image,
		MOQ:         in.MOQ,
		Stock:       in.Stock,
		Description: in.Description,
		Rating:      in.Rating,
	})
	if err != nil {
		return nil, err
	}
	if err := uc.Upsert(ctx, product); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, product.ID)
}

// Import guarda en bloque productos leídos de una planilla. Una fila se identifica por su
// id o, si no trae id, por su SKU (se actualiza el producto existente). Cada fila se guarda
// por separado: los errores de validación o SKU duplicado se reportan por fila y no detienen el resto.
func (uc *UseCase) Import(ctx context.Context, rows []dto.ImportRow) (*dto.ImportResultDTO, error) {
	res := &dto.ImportResultDTO{Failed: []dto.ImportRowError{}}
	for _, r := range rows {
		in, rowNum := r.Product, r.Row
		if in.ID == "" && in.SKU != "" {
			existing, err := uc.FindBySKU(ctx, in.SKU)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				in.ID = existing.ID
			}
		}
		created := true
		if in.ID != "" {
			existing, err := uc.GetByID(ctx, in.ID)
			if err != nil {
				return nil, err
			}
			created = existing == nil
		}
		if _, err := uc.Save(ctx, in); err != nil {
			if !isRowError(err) {
				return nil, err
			}
			res.Failed = append(res.Failed, dto.ImportRowError{Row: rowNum, SKU: in.SKU, Reason: err.Error()})
			continue
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
	}
	uc.log.Info().Int("created", res.Created).Int("updated", res.Updated).Int("failed", len(res.Failed)).Msg("importación de catálogo")
	return res, nil
}

func isRowError(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrDuplicate)
}
