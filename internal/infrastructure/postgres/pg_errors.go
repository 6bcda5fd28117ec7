package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos de error de PostgreSQL relevantes para mapear a errores de dominio.
const (
	pgCodeUniqueViolation = "23505"
)

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation indica si el error proviene de un índice o constraint UNIQUE,
// típicamente por un nombre de producto o número de pedido repetido.
func isUniqueViolation(err error) bool {
	return pgErrCode(err) == pgCodeUniqueViolation
}
