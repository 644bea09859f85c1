package autherrors

import (
	"go-hrgql/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthenticated,
		"Invalid token",
		http.StatusUnauthorized,
	)

	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthenticated,
		"Token expired",
		http.StatusUnauthorized,
	)

	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to generate token",
		http.StatusInternalServerError,
	)

	ErrRegistrationForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only administrators can register accounts with elevated roles",
		http.StatusForbidden,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be one of: ADMIN, HR, EMPLOYEE",
		http.StatusBadRequest,
	)
)
