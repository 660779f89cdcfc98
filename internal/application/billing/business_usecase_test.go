package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/application/dto"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/memory"
	"github.com/jhoicas/facturacion-gst/pkg/timeutil"
)

func profileRequest(name string) dto.BusinessProfileRequest {
	return dto.BusinessProfileRequest{
		Name:    name,
		Address: dto.BusinessAddressDTO{Street: "Plot 7, MIDC", City: "Pune", State: "Maharashtra", Pincode: "411019"},
		Phone:   "020-2745000",
		Email:   "accounts@example.in",
		GSTIN:   "27AAACR5055K1ZK",
		PAN:     "AAACR5055K",
		BankDetails: dto.BankDetailsDTO{
			AccountName: name, AccountNumber: "50200012345678", BankName: "HDFC Bank",
			IFSCCode: "HDFC0000123", Branch: "Pimpri",
		},
	}
}

func TestBusiness_SegundoCreateFalla(t *testing.T) {
	ctx := context.Background()
	uc := billing.NewBusinessUseCase(memory.NewStore().Business())

	first, err := uc.Create(ctx, profileRequest("Rao Industries"))
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultTermsAndConditions, first.TermsAndConditions)

	_, err = uc.Create(ctx, profileRequest("Otra"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBusiness_UpsertConservaIdentidad(t *testing.T) {
	ctx := context.Background()
	uc := billing.NewBusinessUseCase(memory.NewStore().Business())

	created, err := uc.Upsert(ctx, profileRequest("Rao Industries"))
	require.NoError(t, err)

	updated, err := uc.Upsert(ctx, profileRequest("Rao Industries Pvt Ltd"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Rao Industries Pvt Ltd", updated.Name)
	assert.Equal(t, created.TermsAndConditions, updated.TermsAndConditions, "términos vacíos conservan los actuales")

	got, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestBusiness_CamposObligatorios(t *testing.T) {
	req := profileRequest("Rao Industries")
	req.BankDetails.IFSCCode = ""
	_, err := billing.NewBusinessUseCase(memory.NewStore().Business()).Upsert(context.Background(), req)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"bank_details.ifsc_code"}, vErr.Details["missing"])
}

func TestBusiness_UpdateLogo(t *testing.T) {
	ctx := context.Background()
	uc := billing.NewBusinessUseCase(memory.NewStore().Business())

	assert.ErrorIs(t, uc.UpdateLogo(ctx, "aGVsbG8="), domain.ErrNotFound)

	_, err := uc.Upsert(ctx, profileRequest("Rao Industries"))
	require.NoError(t, err)

	assert.ErrorIs(t, uc.UpdateLogo(ctx, ""), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.UpdateLogo(ctx, "no es base64!"), domain.ErrInvalidInput)
	require.NoError(t, uc.UpdateLogo(ctx, "data:image/png;base64,aGVsbG8="))

	got, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", got.Logo)
}

func TestBusiness_GetSinPerfil(t *testing.T) {
	_, err := billing.NewBusinessUseCase(memory.NewStore().Business()).Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBusiness_ErrorDeDuplicadoPorLlamada(t *testing.T) {
	ctx := context.Background()
	uc := billing.NewBusinessUseCase(memory.NewStore().Business())
	_, err := uc.Create(ctx, profileRequest("Rao Industries"))
	require.NoError(t, err)

	_, first := uc.Create(ctx, profileRequest("Otra"))
	_, second := uc.Create(ctx, profileRequest("Otra"))

	var e1, e2 *domain.ValidationError
	require.ErrorAs(t, first, &e1)
	require.ErrorAs(t, second, &e2)
	assert.NotSame(t, e1, e2)
}

func TestBusiness_UsaElReloj(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, time.June, 10, 11, 0, 0, 0, timeutil.IST)
	uc := billing.NewBusinessUseCase(memory.NewStore().Business()).
		WithClock(func() time.Time { return clock })

	created, err := uc.Upsert(ctx, profileRequest("Rao Industries"))
	require.NoError(t, err)
	assert.True(t, clock.Equal(created.CreatedAt))
	assert.True(t, clock.Equal(created.UpdatedAt))

	clock = clock.Add(time.Hour)
	updated, err := uc.Upsert(ctx, profileRequest("Rao Industries Pvt Ltd"))
	require.NoError(t, err)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, clock.Equal(updated.UpdatedAt))
}
