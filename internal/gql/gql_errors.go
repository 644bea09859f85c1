package gql

import (
	"context"
	"net/http"

	"go-hrgql/internal/shared/apperror"
	"go-hrgql/internal/shared/contextutil"

	"go.uber.org/zap"
)

// fail converts a service error into the error handed to the executor.
// AppErrors pass through so their code lands in extensions; anything else
// is logged and, in production, replaced by a generic internal error.
func (r *Resolver) fail(ctx context.Context, op string, err error) error {
	l := contextutil.GetLogger(ctx, r.logger).With(zap.String("operation", op))

	if appErr, ok := apperror.As(err); ok {
		if apperror.IsExpected(appErr) {
			l.Debug("operation rejected", zap.String("code", appErr.Code), zap.Error(err))
			return appErr
		}
		l.Error("operation failed", zap.Error(err))
		if r.production {
			return apperror.New(appErr.Code, appErr.Message, appErr.HTTPStatus)
		}
		return appErr
	}

	l.Error("operation failed", zap.Error(err))
	if r.production {
		return apperror.ErrInternal
	}
	return apperror.Wrap(err, apperror.CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func isNotFound(err error) bool {
	return apperror.CodeOf(err) == apperror.CodeNotFound
}
