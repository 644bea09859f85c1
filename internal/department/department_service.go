package department

import (
	"context"
	"encoding/json"
	"time"

	"go-hrgql/internal/rbac"
	"go-hrgql/internal/shared/contextutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DepartmentsCacheKey = "catalog:departments"
	PositionsCacheKey   = "catalog:positions"

	// master data, changes only through employee writes which invalidate it
	CacheTTL = time.Hour
)

// CacheKeys lists every key an employee write must invalidate.
func CacheKeys() []string {
	return []string{DepartmentsCacheKey, PositionsCacheKey}
}

var metricsCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hrgql",
	Subsystem: "catalog",
	Name:      "cache_lookups_total",
	Help:      "Department/position catalog cache lookups, by key and result.",
}, []string{"key", "result"})

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	ListDepartments(ctx context.Context) ([]string, error)
	ListPositions(ctx context.Context) ([]string, error)
}

type service struct {
	repo   Repository
	gate   rbac.Service
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService builds the catalog. rdb may be nil, in which case every call
// goes to the database.
func NewService(repo Repository, gate rbac.Service, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{
		repo:   repo,
		gate:   gate,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) ListDepartments(ctx context.Context) ([]string, error) {
	if _, err := s.gate.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return s.cached(ctx, DepartmentsCacheKey, s.repo.DistinctDepartments)
}

func (s *service) ListPositions(ctx context.Context) ([]string, error) {
	if _, err := s.gate.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return s.cached(ctx, PositionsCacheKey, s.repo.DistinctPositions)
}

func (s *service) cached(
	ctx context.Context,
	key string,
	load func(context.Context) ([]string, error),
) ([]string, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	// 1. Cek Redis
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var values []string
			if json.Unmarshal([]byte(cached), &values) == nil {
				metricsCacheLookups.WithLabelValues(key, "hit").Inc()
				return values, nil
			}
		} else if err != redis.Nil {
			l.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		metricsCacheLookups.WithLabelValues(key, "miss").Inc()
	}

	// 2. Singleflight supaya cache miss bersamaan hanya sekali ke DB.
	// The shared load must outlive the caller that started it.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		values, err := load(loadCtx)
		if err != nil {
			l.Error("catalog load failed", zap.String("key", key), zap.Error(err))
			return nil, err
		}

		// 3. Simpan ke Redis
		if s.rdb != nil {
			if data, err := json.Marshal(values); err == nil {
				if err := s.rdb.Set(loadCtx, key, data, CacheTTL).Err(); err != nil {
					l.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
		}

		return values, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]string), nil
}
