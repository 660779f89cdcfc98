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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, email, phone, gstin, street, city, state, pincode, country, created_at, updated_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.GSTIN,
		&c.Address.Street, &c.Address.City, &c.Address.State, &c.Address.Pincode, &c.Address.Country,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente. Email o GSTIN repetidos -> domain.ErrDuplicate.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.GSTIN,
		c.Address.Street, c.Address.City, c.Address.State, c.Address.Pincode, c.Address.Country,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	if !isUUID(id) {
		return nil, nil
	}
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// GetByGSTIN obtiene un cliente por su GSTIN.
func (r *ClientRepo) GetByGSTIN(ctx context.Context, gstin string) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE gstin = $1`, gstin))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by gstin: %w", err)
	}
	return c, nil
}

// List lista clientes, los más recientes primero.
func (r *ClientRepo) List(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, email = $3, phone = $4, gstin = $5,
			street = $6, city = $7, state = $8, pincode = $9, country = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.GSTIN,
		c.Address.Street, c.Address.City, c.Address.State, c.Address.Pincode, c.Address.Country,
		c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("cliente", c.ID)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.NotFound("cliente", id)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("cliente", id)
	}
	return nil
}
