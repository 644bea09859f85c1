package employeeerrors

import (
	"net/http"

	"go-hrgql/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrEmployeeCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee code already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrManagerNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Manager not found",
		http.StatusBadRequest,
	)
	ErrSelfManager = apperror.New(
		apperror.CodeInvalidInput,
		"An employee cannot be their own manager",
		http.StatusBadRequest,
	)
	ErrManagerCycle = apperror.New(
		apperror.CodeInvalidInput,
		"Manager assignment would create a reporting cycle",
		http.StatusBadRequest,
	)
	ErrManagerChainTooDeep = apperror.New(
		apperror.CodeInvalidInput,
		"Manager chain is too deep",
		http.StatusBadRequest,
	)
	ErrDateOfBirthInFuture = apperror.New(
		apperror.CodeInvalidInput,
		"Date Of Birth cannot be in the future",
		http.StatusBadRequest,
	)
	ErrNoFieldsToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"No fields to update",
		http.StatusBadRequest,
	)
	ErrNoBulkFieldsToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"No valid fields to update",
		http.StatusBadRequest,
	)
	ErrBulkEmpty = apperror.New(
		apperror.CodeInvalidInput,
		"At least one employee ID is required",
		http.StatusBadRequest,
	)
	ErrBulkTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"Cannot process more than 50 employees at once",
		http.StatusBadRequest,
	)
	ErrConstraintViolated = apperror.New(
		apperror.CodeInvalidInput,
		"Employee data violates a field constraint",
		http.StatusBadRequest,
	)
	ErrNotOwnRecord = apperror.New(
		apperror.CodeForbidden,
		"You can only update your own employee record",
		http.StatusForbidden,
	)
	ErrProfileFieldsOnly = apperror.New(
		apperror.CodeForbidden,
		"You can only update your own profile fields",
		http.StatusForbidden,
	)
)
