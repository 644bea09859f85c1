package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to perform this action",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"Internal server error",
		http.StatusInternalServerError,
	)

	ErrUnauthenticated = New(
		CodeUnauthenticated,
		"You must be logged in to perform this action",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	ErrTooManyRequests = New(
		CodeTooManyRequests,
		"Too many requests, please try again later",
		http.StatusTooManyRequests,
	)
)

func Validation(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}

func Validationf(format string, args ...any) *AppError {
	return Validation(fmt.Sprintf(format, args...))
}

func RequiredField(field string) *AppError {
	return Validationf("%s is required", field)
}

func InvalidField(field string) *AppError {
	return Validationf("%s is invalid", field)
}
