package middleware

import (
	"time"

	"go-hrgql/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	requestIDHeader = "X-Request-ID"
	maxRequestIDLen = 64
)

// ContextLogger scopes a logger to the request and writes one access line
// once the handler chain returns. Register it after Authenticate so the
// caller's user_id and role are known.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid := incomingRequestID(c.GetHeader(requestIDHeader))
		c.Set("request_id", rid)
		c.Header(requestIDHeader, rid)

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("user_id", c.GetString("user_id")),
			zap.String("role", c.GetString("role")),
		)

		ctx := contextutil.WithRequestID(c.Request.Context(), rid)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		if ce := reqLogger.Check(accessLevel(status), "request completed"); ce != nil {
			ce.Write(
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("client_ip", c.ClientIP()),
			)
		}
	}
}

// incomingRequestID keeps a client supplied id only when it is short and
// printable ASCII; anything else gets a fresh uuid.
func incomingRequestID(rid string) string {
	if rid == "" || len(rid) > maxRequestIDLen {
		return uuid.NewString()
	}
	for i := 0; i < len(rid); i++ {
		if rid[i] < 0x21 || rid[i] > 0x7e {
			return uuid.NewString()
		}
	}
	return rid
}

func accessLevel(status int) zapcore.Level {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel
	case status >= 400:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
