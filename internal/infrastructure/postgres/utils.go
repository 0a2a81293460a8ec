package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == "23505"
}

// isForeignKeyViolation (23503): la fila referenciada no existe.
func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == "23503"
}

// violatedConstraint nombre del constraint que falló, "" si no es un error de PostgreSQL.
func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func pgErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	for _, code := range []string{"23505", "23503"} {
		if strings.Contains(err.Error(), code) {
			return code
		}
	}
	return ""
}
