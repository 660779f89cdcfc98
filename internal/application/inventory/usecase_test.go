package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-gst/internal/application/dto"
	"github.com/jhoicas/facturacion-gst/internal/application/inventory"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/memory"
	"github.com/jhoicas/facturacion-gst/pkg/logger"
)

func newUseCase() *inventory.ItemUseCase {
	return inventory.NewItemUseCase(memory.NewStore().Items(), logger.Nop())
}

func TestAdjustStock_NoBajaDeCero(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	item, err := uc.Create(ctx, dto.CreateInventoryItemRequest{
		Name: "Cable 2.5mm", HSNCode: "8544", Unit: "Mtr", Price: decimal.NewFromInt(35), Stock: 10,
	})
	require.NoError(t, err)

	_, err = uc.AdjustStock(ctx, item.ID, -15)
	require.Error(t, err)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, int64(10), vErr.Details["current_stock"])
	assert.Equal(t, int64(-15), vErr.Details["requested_change"])
	assert.Equal(t, int64(-5), vErr.Details["resulting_stock"])

	stored, err := uc.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stored.Stock, "el artículo queda intacto")

	adjusted, err := uc.AdjustStock(ctx, item.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), adjusted.Stock)
}

func TestAdjustStock_ArticuloInexistente(t *testing.T) {
	_, err := newUseCase().AdjustStock(context.Background(), "no-existe", 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	_, err := uc.Create(ctx, dto.CreateInventoryItemRequest{Name: "X", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateInventoryItemRequest{Name: "X", Stock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateInventoryItemRequest{Name: "X", TaxRate: decimal.NewFromInt(101)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	created, err := uc.Create(ctx, dto.CreateInventoryItemRequest{Name: "X"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), created.Stock)
}

func TestUpdate_Parcial(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	item, err := uc.Create(ctx, dto.CreateInventoryItemRequest{Name: "Foco LED", Unit: "Nos", Price: decimal.NewFromInt(120)})
	require.NoError(t, err)

	price := decimal.NewFromInt(110)
	updated, err := uc.Update(ctx, item.ID, dto.UpdateInventoryItemRequest{Price: &price})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(price))
	assert.Equal(t, "Foco LED", updated.Name)
	assert.Equal(t, "Nos", updated.Unit)
}
