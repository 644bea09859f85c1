package rbacerrors

import (
	"go-hrgql/internal/shared/apperror"
	"net/http"
)

var (
	ErrNotLoggedIn = apperror.New(
		apperror.CodeUnauthenticated,
		"You must be logged in to perform this action",
		http.StatusUnauthorized,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to perform this action",
		http.StatusForbidden,
	)

	ErrPolicyEvaluation = apperror.New(
		apperror.CodeInternalError,
		"Failed to evaluate access policy",
		http.StatusInternalServerError,
	)
)
