package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/facturacion-gst/internal/domain"
)

// SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

// isUUID indica si id puede compararse con una columna UUID. Un id mal formado
// no puede existir: los repos lo tratan como no encontrado sin consultar.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// uuidsOnly descarta los ids mal formados de una búsqueda múltiple.
func uuidsOnly(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if isUUID(id) {
			out = append(out, id)
		}
	}
	return out
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return sqlState(err) == codeUniqueViolation
}

// writeError envuelve un error de escritura: UNIQUE -> ErrDuplicate, CHECK -> ErrInvalidInput.
func writeError(op string, err error) error {
	switch sqlState(err) {
	case codeUniqueViolation:
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case codeCheckViolation:
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}
