package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-gst/internal/application/dto"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
	"github.com/jhoicas/facturacion-gst/pkg/logger"
)

// ItemUseCase casos de uso del inventario: CRUD y ajuste de stock.
type ItemUseCase struct {
	repo repository.InventoryItemRepository
	log  *logger.Logger
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.InventoryItemRepository, log *logger.Logger) *ItemUseCase {
	return &ItemUseCase{repo: repo, log: log.Component("inventory")}
}

// Create crea un artículo. Stock inicial 0 si no se indica.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio", nil)
	}
	if err := checkAmounts(in.Price, in.TaxRate); err != nil {
		return nil, err
	}
	if in.Stock < 0 {
		return nil, domain.NewValidationError("stock", "el stock no puede ser negativo", nil)
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		HSNCode:     in.HSNCode,
		Unit:        in.Unit,
		Price:       in.Price,
		TaxRate:     in.TaxRate,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// Get obtiene un artículo por ID.
func (uc *ItemUseCase) Get(ctx context.Context, id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// List lista artículos, los más recientes primero.
func (uc *ItemUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.InventoryItemResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, ToItemResponse(it))
	}
	return out, nil
}

// Update aplica los campos presentes.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.HSNCode != nil {
		item.HSNCode = *in.HSNCode
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.TaxRate != nil {
		item.TaxRate = *in.TaxRate
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.NewValidationError("stock", "el stock no puede ser negativo", nil)
		}
		item.Stock = *in.Stock
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio", nil)
	}
	if err := checkAmounts(item.Price, item.TaxRate); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// AdjustStock suma delta (con signo) al stock. Si el resultado fuese negativo se rechaza
// con el detalle (actual, pedido, resultante) y el artículo no cambia.
func (uc *ItemUseCase) AdjustStock(ctx context.Context, id string, delta int64) (*dto.InventoryItemResponse, error) {
	item, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := item.StockAfter(delta); err != nil {
		return nil, err
	}

	updated, err := uc.repo.AdjustStock(ctx, id, delta)
	if errors.Is(err, domain.ErrInsufficientStock) {
		// otro ajuste ganó la carrera: informar con el stock vigente
		current, findErr := uc.find(ctx, id)
		if findErr != nil {
			return nil, findErr
		}
		if _, err := current.StockAfter(delta); err != nil {
			return nil, err
		}
		return nil, domain.ErrConflict
	}
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("item_id", id).
		Int64("delta", delta).
		Int64("stock", updated.Stock).
		Msg("stock ajustado")
	resp := ToItemResponse(updated)
	return &resp, nil
}

// Delete elimina un artículo.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *ItemUseCase) find(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound("artículo", id)
	}
	return item, nil
}

var maxTaxRate = decimal.NewFromInt(100)

func checkAmounts(price, taxRate decimal.Decimal) error {
	if price.IsNegative() {
		return domain.NewValidationError("price", "el precio no puede ser negativo", nil)
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(maxTaxRate) {
		return domain.NewValidationError("tax_rate", "la tasa debe estar entre 0 y 100", nil)
	}
	return nil
}

// ToItemResponse mapea la entidad a su DTO.
func ToItemResponse(it *entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		HSNCode:     it.HSNCode,
		Unit:        it.Unit,
		Price:       it.Price,
		TaxRate:     it.TaxRate,
		Stock:       it.Stock,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}
