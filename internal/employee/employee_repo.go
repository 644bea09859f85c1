package employee

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxManagerChainDepth bounds the manager chain walk on write.
const MaxManagerChainDepth = 64

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByCode(ctx context.Context, code string) (*Employee, error)
	List(ctx context.Context, q ListQuery) ([]Employee, int64, error)
	FindDirectReports(ctx context.Context, managerID uuid.UUID) ([]Employee, error)
	FindManagers(ctx context.Context) ([]Employee, error)
	FindConflicts(ctx context.Context, code, email string, excludeID *uuid.UUID) ([]Employee, error)
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	ManagerChain(ctx context.Context, startID uuid.UUID, maxDepth int) ([]uuid.UUID, error)
	UpdateFields(ctx context.Context, id uuid.UUID, changes map[string]interface{}) error
	BulkUpdateFields(ctx context.Context, ids []uuid.UUID, changes map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error)
	Stats(ctx context.Context, now time.Time) (EmployeeStats, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.conn(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	if err := r.conn(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Employee, error) {
	var e Employee
	if err := r.conn(ctx).First(&e, "employee_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) List(ctx context.Context, q ListQuery) ([]Employee, int64, error) {
	base := r.conn(ctx).Model(&Employee{})
	if q.Where != "" {
		base = base.Where(q.Where, q.Args...)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []Employee{}, 0, nil
	}

	var items []Employee
	err := base.
		Order(q.OrderBy).
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repository) FindDirectReports(ctx context.Context, managerID uuid.UUID) ([]Employee, error) {
	var items []Employee
	err := r.conn(ctx).
		Where("manager_id = ?", managerID).
		Order("first_name ASC, last_name ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindManagers(ctx context.Context) ([]Employee, error) {
	var items []Employee
	err := r.conn(ctx).
		Where("id IN (SELECT DISTINCT manager_id FROM employees WHERE manager_id IS NOT NULL)").
		Order("first_name ASC, last_name ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindConflicts(ctx context.Context, code, email string, excludeID *uuid.UUID) ([]Employee, error) {
	q := r.conn(ctx).
		Where("(employee_code = ? OR LOWER(email) = LOWER(?))", code, email)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var items []Employee
	err := q.Limit(2).Find(&items).Error
	return items, err
}

func (r *repository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	var found []uuid.UUID
	err := r.conn(ctx).
		Model(&Employee{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	return found, err
}

// ManagerChain returns startID followed by its managers, nearest first,
// stopping after maxDepth rows so a pre-existing cycle still terminates.
func (r *repository) ManagerChain(ctx context.Context, startID uuid.UUID, maxDepth int) ([]uuid.UUID, error) {
	const chainSQL = `
WITH RECURSIVE chain AS (
	SELECT id, manager_id, 1 AS depth FROM employees WHERE id = ?
	UNION ALL
	SELECT e.id, e.manager_id, c.depth + 1
	FROM employees e
	JOIN chain c ON e.id = c.manager_id
	WHERE c.depth < ?
)
SELECT id FROM chain ORDER BY depth`

	var ids []uuid.UUID
	err := r.conn(ctx).Raw(chainSQL, startID, maxDepth).Scan(&ids).Error
	return ids, err
}

func (r *repository) UpdateFields(ctx context.Context, id uuid.UUID, changes map[string]interface{}) error {
	res := r.conn(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) BulkUpdateFields(ctx context.Context, ids []uuid.UUID, changes map[string]interface{}) (int64, error) {
	res := r.conn(ctx).
		Model(&Employee{}).
		Where("id IN ?", ids).
		Updates(changes)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.conn(ctx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	res := r.conn(ctx).Delete(&Employee{}, "id IN ?", ids)
	return res.RowsAffected, res.Error
}

func (r *repository) Stats(ctx context.Context, now time.Time) (EmployeeStats, error) {
	const totalsSQL = `
SELECT
	COUNT(*) AS total_employees,
	COUNT(*) FILTER (WHERE status = 'active') AS active_employees,
	COUNT(*) FILTER (WHERE status = 'inactive') AS inactive_employees,
	COUNT(*) FILTER (WHERE status = 'terminated') AS terminated_employees,
	AVG(FLOOR((?::date - date_of_birth) / 365.25)) AS average_age,
	AVG(salary) AS average_salary,
	COALESCE(SUM(salary) FILTER (WHERE status = 'active'), 0) AS total_salary_expense,
	COUNT(*) FILTER (WHERE hire_date >= ?) AS new_hires_this_month,
	COUNT(*) FILTER (WHERE hire_date >= ?) AS new_hires_this_year
FROM employees`

	const departmentsSQL = `
SELECT department, COUNT(*) AS count, AVG(salary) AS average_salary
FROM employees
GROUP BY department
ORDER BY count DESC, department ASC`

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	var stats EmployeeStats
	db := r.conn(ctx)
	if err := db.Raw(totalsSQL, now, monthStart, yearStart).Scan(&stats).Error; err != nil {
		return EmployeeStats{}, err
	}

	var departments []DepartmentCount
	if err := db.Raw(departmentsSQL).Scan(&departments).Error; err != nil {
		return EmployeeStats{}, err
	}
	if departments == nil {
		departments = []DepartmentCount{}
	}
	stats.DepartmentCounts = departments

	return stats, nil
}
