package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/application/dto"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/memory"
)

func clientRequest() dto.CreateClientRequest {
	return dto.CreateClientRequest{
		Name:    "Gupta Traders",
		Email:   "gupta@example.in",
		Phone:   "9811122233",
		GSTIN:   "09AAACG1234K1Z2",
		Address: dto.AddressDTO{Street: "14 MG Road", City: "Lucknow", State: "Uttar Pradesh", Pincode: "226001"},
	}
}

func TestClient_CreatePaisPorDefecto(t *testing.T) {
	uc := billing.NewClientUseCase(memory.NewStore().Clients())
	c, err := uc.Create(context.Background(), clientRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "India", c.Address.Country)
}

func TestClient_GSTINDuplicado(t *testing.T) {
	ctx := context.Background()
	uc := billing.NewClientUseCase(memory.NewStore().Clients())
	_, err := uc.Create(ctx, clientRequest())
	require.NoError(t, err)

	req := clientRequest()
	req.Email = "otro@example.in"
	_, err = uc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestClient_UpdateFusionaDireccion(t *testing.T) {
	ctx := context.Background()
	uc := billing.NewClientUseCase(memory.NewStore().Clients())
	c, err := uc.Create(ctx, clientRequest())
	require.NoError(t, err)

	phone := "9000000001"
	updated, err := uc.Update(ctx, c.ID, dto.UpdateClientRequest{
		Phone:   &phone,
		Address: &dto.AddressDTO{City: "Kanpur"},
	})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Kanpur", updated.Address.City)
	assert.Equal(t, "14 MG Road", updated.Address.Street)
	assert.Equal(t, "Gupta Traders", updated.Name)
}

func TestClient_NoEncontrado(t *testing.T) {
	ctx := context.Background()
	uc := billing.NewClientUseCase(memory.NewStore().Clients())

	_, err := uc.Get(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Update(ctx, "nada", dto.UpdateClientRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "nada"), domain.ErrNotFound)
}
