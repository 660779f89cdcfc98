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

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación del puerto InventoryItemRepository sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `id, name, description, hsn_code, unit, price, tax_rate, stock, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	if err := row.Scan(
		&it.ID, &it.Name, &it.Description, &it.HSNCode, &it.Unit,
		&it.Price, &it.TaxRate, &it.Stock, &it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un nuevo artículo.
func (r *InventoryItemRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Name, it.Description, it.HSNCode, it.Unit,
		it.Price, it.TaxRate, it.Stock, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return writeError("insert inventory item", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if !isUUID(id) {
		return nil, nil
	}
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// GetByIDs resuelve varios artículos en una sola consulta (líneas de factura).
func (r *InventoryItemRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.InventoryItem, error) {
	out := make(map[string]*entity.InventoryItem, len(ids))
	ids = uuidsOnly(ids)
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("get inventory items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out[it.ID] = it
	}
	return out, rows.Err()
}

// List lista artículos, los más recientes primero.
func (r *InventoryItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+itemColumns+` FROM inventory_items ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Update actualiza los datos del artículo (incluido el stock ya validado).
func (r *InventoryItemRepo) Update(ctx context.Context, it *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET name = $2, description = $3, hsn_code = $4, unit = $5,
			price = $6, tax_rate = $7, stock = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		it.ID, it.Name, it.Description, it.HSNCode, it.Unit, it.Price, it.TaxRate, it.Stock, it.UpdatedAt,
	)
	if err != nil {
		return writeError("update inventory item", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("artículo", it.ID)
	}
	return nil
}

// AdjustStock aplica delta de forma atómica; la condición stock + delta >= 0 evita carreras entre ajustes.
func (r *InventoryItemRepo) AdjustStock(ctx context.Context, id string, delta int64) (*entity.InventoryItem, error) {
	if !isUUID(id) {
		return nil, domain.NotFound("artículo", id)
	}
	query := `
		UPDATE inventory_items SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1 AND stock + $2 >= 0
		RETURNING ` + itemColumns
	it, err := scanItem(r.q.QueryRow(ctx, query, id, delta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInsufficientStock
		}
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	return it, nil
}

// Delete elimina un artículo por ID.
func (r *InventoryItemRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.NotFound("artículo", id)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("artículo", id)
	}
	return nil
}
