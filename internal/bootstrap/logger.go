package bootstrap

import (
	"go.uber.org/zap"
)

// NewLogger returns the JSON production logger for production and a
// human-readable development logger otherwise.
func NewLogger(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
