package department

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	DistinctDepartments(ctx context.Context) ([]string, error)
	DistinctPositions(ctx context.Context) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) DistinctDepartments(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "department")
}

func (r *repository) DistinctPositions(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "position")
}

// column is one of the two constants above, never user input.
func (r *repository) distinct(ctx context.Context, column string) ([]string, error) {
	values := []string{}
	err := r.db.WithContext(ctx).
		Table("employees").
		Distinct(column).
		Where(column+" IS NOT NULL AND "+column+" <> ''").
		Order(column).
		Pluck(column, &values).Error
	return values, err
}
