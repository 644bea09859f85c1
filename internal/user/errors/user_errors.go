package usererrors

import (
	"go-hrgql/internal/shared/apperror"
	"net/http"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUserAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"User with the same email already exists",
		http.StatusConflict,
	)

	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthenticated,
		"Invalid credentials",
		http.StatusUnauthorized,
	)

	ErrWrongPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Current password is incorrect",
		http.StatusBadRequest,
	)

	ErrSamePassword = apperror.New(
		apperror.CodeInvalidInput,
		"New password must be different from the current password",
		http.StatusBadRequest,
	)
)
