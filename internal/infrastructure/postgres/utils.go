package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE de Postgres.
const codeUniqueViolation = "23505"

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation detecta choques contra constraints únicos: recibos
// repetidos sobre una orden o un consecutivo ya usado.
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}
