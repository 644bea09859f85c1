package employee

import (
	"errors"

	employeeerrors "go-hrgql/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == "uq_employees_code":
			return employeeerrors.ErrEmployeeCodeAlreadyExists
		case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == "uq_employees_email":
			return employeeerrors.ErrEmployeeAlreadyExists
		case pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == "fk_employees_manager":
			// manager dihapus di antara pengecekan dan insert
			return employeeerrors.ErrManagerNotFound
		case pgErr.Code == pgCheckViolation:
			return employeeerrors.ErrConstraintViolated
		}
	}

	return err
}
