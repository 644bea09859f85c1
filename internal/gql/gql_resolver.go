package gql

import (
	"context"
	_ "embed"
	"fmt"

	"go-hrgql/internal/auth"
	"go-hrgql/internal/department"
	"go-hrgql/internal/employee"
	"go-hrgql/internal/shared/contextutil"

	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

//go:embed schema.graphql
var schemaSDL string

const DefaultMaxDepth = 10

// Resolver is the root resolver for both Query and Mutation.
type Resolver struct {
	employees  employee.Service
	auth       auth.Service
	catalog    department.Service
	production bool
	logger     *zap.Logger
}

type Option func(*Resolver)

// WithProduction hides internal error details from clients.
func WithProduction(production bool) Option {
	return func(r *Resolver) { r.production = production }
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger.Named("gql.resolver")
		}
	}
}

func NewResolver(employees employee.Service, authSvc auth.Service, catalog department.Service, opts ...Option) *Resolver {
	r := &Resolver{
		employees: employees,
		auth:      authSvc,
		catalog:   catalog,
		logger:    zap.L().Named("gql.resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewSchema parses the embedded SDL against r. maxDepth < 1 falls back to
// DefaultMaxDepth.
func NewSchema(r *Resolver, maxDepth int) (*graphql.Schema, error) {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}

	schema, err := graphql.ParseSchema(schemaSDL, r,
		graphql.MaxDepth(maxDepth),
		graphql.Logger(panicLogger{logger: r.logger}),
	)
	if err != nil {
		return nil, fmt.Errorf("parse graphql schema: %w", err)
	}
	return schema, nil
}

type panicLogger struct {
	logger *zap.Logger
}

func (p panicLogger) LogPanic(ctx context.Context, value interface{}) {
	contextutil.GetLogger(ctx, p.logger).Error("graphql resolver panic", zap.Any("panic", value))
}
