package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/facturacion-gst/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator aplica los scripts SQL embebidos en orden alfabético, una sola vez cada uno.
type Migrator struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewMigrator construye el migrador.
func NewMigrator(pool *pgxpool.Pool, log *logger.Logger) *Migrator {
	return &Migrator{pool: pool, log: log.Component("migrator")}
}

// Run crea la tabla de control si falta y ejecuta las migraciones pendientes.
func (m *Migrator) Run(ctx context.Context) error {
	if _, err := m.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename   VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return fmt.Errorf("crear schema_migrations: %w", err)
	}

	applied, err := m.applied(ctx)
	if err != nil {
		return err
	}

	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("listar migraciones: %w", err)
	}
	sort.Strings(files)

	ran := 0
	for _, path := range files {
		name := strings.TrimPrefix(path, "migrations/")
		if applied[name] {
			continue
		}
		content, err := migrationsFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("leer migración %s: %w", name, err)
		}
		if err := m.apply(ctx, name, string(content)); err != nil {
			return err
		}
		m.log.Info().Str("migration", name).Msg("migración aplicada")
		ran++
	}
	m.log.Info().Int("applied", ran).Msg("esquema al día")
	return nil
}

func (m *Migrator) applied(ctx context.Context) (map[string]bool, error) {
	rows, err := m.pool.Query(ctx, `SELECT filename FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("leer schema_migrations: %w", err)
	}
	defer rows.Close()
	out := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan schema_migrations: %w", err)
		}
		out[name] = true
	}
	return out, rows.Err()
}

// apply ejecuta el script y lo registra en la misma transacción.
func (m *Migrator) apply(ctx context.Context, name, sql string) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migración %s: %w", name, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, sql); err != nil {
		return fmt.Errorf("ejecutar migración %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (filename) VALUES ($1)`, name); err != nil {
		return fmt.Errorf("registrar migración %s: %w", name, err)
	}
	return tx.Commit(ctx)
}
