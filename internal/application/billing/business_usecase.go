package billing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturacion-gst/internal/application/dto"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
	"github.com/jhoicas/facturacion-gst/pkg/timeutil"
)

// profileExists se devuelve al intentar crear un segundo perfil.
func profileExists() error {
	return domain.NewValidationError("business", "ya existe un perfil de empresa", nil)
}

// BusinessUseCase gestiona el perfil único de la empresa emisora.
type BusinessUseCase struct {
	repo repository.BusinessProfileRepository
	now  func() time.Time
}

// NewBusinessUseCase construye el caso de uso.
func NewBusinessUseCase(repo repository.BusinessProfileRepository) *BusinessUseCase {
	return &BusinessUseCase{repo: repo, now: timeutil.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *BusinessUseCase) WithClock(now func() time.Time) *BusinessUseCase {
	uc.now = now
	return uc
}

// Get devuelve el perfil o NotFound si aún no se ha registrado.
func (uc *BusinessUseCase) Get(ctx context.Context) (*dto.BusinessProfileResponse, error) {
	b, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.NotFound("perfil de empresa", "")
	}
	resp := toBusinessResponse(b)
	return &resp, nil
}

// Create registra el perfil. Falla si ya existe uno (chequeo explícito + constraint en almacenamiento).
func (uc *BusinessUseCase) Create(ctx context.Context, in dto.BusinessProfileRequest) (*dto.BusinessProfileResponse, error) {
	existing, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, profileExists()
	}

	now := uc.now()
	b := &entity.BusinessProfile{ID: uuid.New().String(), CreatedAt: now}
	applyProfile(b, in)
	b.UpdatedAt = now
	if b.TermsAndConditions == "" {
		b.TermsAndConditions = entity.DefaultTermsAndConditions
	}
	if err := validateProfile(b); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, b); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, profileExists()
		}
		return nil, err
	}
	resp := toBusinessResponse(b)
	return &resp, nil
}

// Upsert busca el perfil y lo actualiza en el lugar (misma identidad) o lo crea si no existe.
func (uc *BusinessUseCase) Upsert(ctx context.Context, in dto.BusinessProfileRequest) (*dto.BusinessProfileResponse, error) {
	b, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return uc.Create(ctx, in)
	}

	applyProfile(b, in)
	b.UpdatedAt = uc.now()
	if err := validateProfile(b); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	resp := toBusinessResponse(b)
	return &resp, nil
}

// UpdateLogo reemplaza el logo (base64, admite prefijo data URI).
func (uc *BusinessUseCase) UpdateLogo(ctx context.Context, logo string) error {
	if strings.TrimSpace(logo) == "" {
		return domain.NewValidationError("logo", "el logo es obligatorio", nil)
	}
	b, err := uc.repo.Get(ctx)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.NotFound("perfil de empresa", "")
	}
	b.Logo = logo
	if _, _, err := b.LogoBytes(); err != nil {
		return domain.NewValidationError("logo", "el logo no es base64 válido", nil)
	}
	b.UpdatedAt = uc.now()
	return uc.repo.Update(ctx, b)
}

// applyProfile copia la petición; logo y términos vacíos conservan el valor actual.
func applyProfile(b *entity.BusinessProfile, in dto.BusinessProfileRequest) {
	b.Name = in.Name
	b.Address = entity.BusinessAddress{
		Street:  in.Address.Street,
		City:    in.Address.City,
		State:   in.Address.State,
		Pincode: in.Address.Pincode,
	}
	b.Phone = in.Phone
	b.Email = in.Email
	b.Website = in.Website
	b.GSTIN = in.GSTIN
	b.PAN = in.PAN
	b.Bank = entity.BankDetails{
		AccountName:   in.BankDetails.AccountName,
		AccountNumber: in.BankDetails.AccountNumber,
		BankName:      in.BankDetails.BankName,
		IFSCCode:      in.BankDetails.IFSCCode,
		Branch:        in.BankDetails.Branch,
	}
	if in.Logo != "" {
		b.Logo = in.Logo
	}
	if in.TermsAndConditions != "" {
		b.TermsAndConditions = in.TermsAndConditions
	}
}

func validateProfile(b *entity.BusinessProfile) error {
	if missing := b.MissingFields(); len(missing) > 0 {
		return domain.NewValidationError("business", "faltan campos obligatorios", map[string]any{"missing": missing})
	}
	if _, _, err := b.LogoBytes(); err != nil {
		return domain.NewValidationError("logo", "el logo no es base64 válido", nil)
	}
	return nil
}

func toBusinessResponse(b *entity.BusinessProfile) dto.BusinessProfileResponse {
	return dto.BusinessProfileResponse{
		ID:   b.ID,
		Name: b.Name,
		Address: dto.BusinessAddressDTO{
			Street:  b.Address.Street,
			City:    b.Address.City,
			State:   b.Address.State,
			Pincode: b.Address.Pincode,
		},
		Phone:   b.Phone,
		Email:   b.Email,
		Website: b.Website,
		GSTIN:   b.GSTIN,
		PAN:     b.PAN,
		BankDetails: dto.BankDetailsDTO{
			AccountName:   b.Bank.AccountName,
			AccountNumber: b.Bank.AccountNumber,
			BankName:      b.Bank.BankName,
			IFSCCode:      b.Bank.IFSCCode,
			Branch:        b.Bank.Branch,
		},
		Logo:               b.Logo,
		TermsAndConditions: b.TermsAndConditions,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
