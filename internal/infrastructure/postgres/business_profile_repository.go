package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
)

var _ repository.BusinessProfileRepository = (*BusinessProfileRepo)(nil)

// BusinessProfileRepo persiste el perfil único de empresa.
// La columna singleton (UNIQUE, siempre TRUE) impide una segunda fila.
type BusinessProfileRepo struct {
	q Querier
}

// NewBusinessProfileRepository construye el adaptador.
func NewBusinessProfileRepository(q Querier) *BusinessProfileRepo {
	return &BusinessProfileRepo{q: q}
}

const businessColumns = `id, name, street, city, state, pincode, phone, email, website, gstin, pan,
	bank_account_name, bank_account_number, bank_name, bank_ifsc_code, bank_branch,
	logo, terms_and_conditions, created_at, updated_at`

// Get devuelve el perfil o nil si no existe.
func (r *BusinessProfileRepo) Get(ctx context.Context) (*entity.BusinessProfile, error) {
	var b entity.BusinessProfile
	err := r.q.QueryRow(ctx, `SELECT `+businessColumns+` FROM business_profile LIMIT 1`).Scan(
		&b.ID, &b.Name, &b.Address.Street, &b.Address.City, &b.Address.State, &b.Address.Pincode,
		&b.Phone, &b.Email, &b.Website, &b.GSTIN, &b.PAN,
		&b.Bank.AccountName, &b.Bank.AccountNumber, &b.Bank.BankName, &b.Bank.IFSCCode, &b.Bank.Branch,
		&b.Logo, &b.TermsAndConditions, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business profile: %w", err)
	}
	return &b, nil
}

// Create inserta el perfil; si ya hay uno, el constraint singleton devuelve domain.ErrDuplicate.
func (r *BusinessProfileRepo) Create(ctx context.Context, b *entity.BusinessProfile) error {
	query := `
		INSERT INTO business_profile (` + businessColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Name, b.Address.Street, b.Address.City, b.Address.State, b.Address.Pincode,
		b.Phone, b.Email, b.Website, b.GSTIN, b.PAN,
		b.Bank.AccountName, b.Bank.AccountNumber, b.Bank.BankName, b.Bank.IFSCCode, b.Bank.Branch,
		b.Logo, b.TermsAndConditions, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert business profile: %w", err)
	}
	return nil
}

// Update actualiza el perfil existente conservando su ID.
func (r *BusinessProfileRepo) Update(ctx context.Context, b *entity.BusinessProfile) error {
	query := `
		UPDATE business_profile SET name = $2, street = $3, city = $4, state = $5, pincode = $6,
			phone = $7, email = $8, website = $9, gstin = $10, pan = $11,
			bank_account_name = $12, bank_account_number = $13, bank_name = $14, bank_ifsc_code = $15, bank_branch = $16,
			logo = $17, terms_and_conditions = $18, updated_at = $19
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		b.ID, b.Name, b.Address.Street, b.Address.City, b.Address.State, b.Address.Pincode,
		b.Phone, b.Email, b.Website, b.GSTIN, b.PAN,
		b.Bank.AccountName, b.Bank.AccountNumber, b.Bank.BankName, b.Bank.IFSCCode, b.Bank.Branch,
		b.Logo, b.TermsAndConditions, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update business profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("perfil de empresa", b.ID)
	}
	return nil
}
