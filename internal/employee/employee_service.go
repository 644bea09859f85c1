package employee

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go-hrgql/internal/department"
	employeeerrors "go-hrgql/internal/employee/errors"
	"go-hrgql/internal/events"
	"go-hrgql/internal/messaging/kafka"
	"go-hrgql/internal/rbac"
	rbacerrors "go-hrgql/internal/rbac/errors"
	"go-hrgql/internal/shared/apperror"
	"go-hrgql/internal/shared/contextutil"
	"go-hrgql/internal/shared/response"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	MaxBulkIDs = 50

	defaultSearchLimit = 10
	aggregateType      = "employee"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, req ListEmployeesRequest) (EmployeePage, error)
	Search(ctx context.Context, query string, limit int) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetByCode(ctx context.Context, code string) (EmployeeResponse, error)
	ListDirectReports(ctx context.Context, managerID string) ([]EmployeeResponse, error)
	ListManagers(ctx context.Context) ([]EmployeeResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	SetStatus(ctx context.Context, id, status string) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	BulkUpdate(ctx context.Context, req BulkUpdateRequest) (BulkResult, error)
	BulkDelete(ctx context.Context, ids []string) (BulkResult, error)
	Stats(ctx context.Context) (EmployeeStats, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	gate   rbac.Service
	rdb    *redis.Client
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*service)

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger.Named("employee.service")
		}
	}
}

// NewService wires the record service. outbox and rdb may be nil: no change
// events are queued and no catalog cache is invalidated.
func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	gate rbac.Service,
	rdb *redis.Client,
	opts ...Option,
) Service {
	s := &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		gate:   gate,
		rdb:    rdb,
		now:    time.Now,
		logger: zap.L().Named("employee.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) List(ctx context.Context, req ListEmployeesRequest) (EmployeePage, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if _, err := s.gate.Authorize(ctx, rbac.ResourceEmployee, rbac.ActionRead); err != nil {
		return EmployeePage{}, err
	}

	now := s.now()
	q, err := BuildListQuery(req, now)
	if err != nil {
		l.Warn("list employees invalid query", zap.Error(err))
		return EmployeePage{}, err
	}

	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		l.Error("list employees failed", zap.Error(err))
		return EmployeePage{}, err
	}

	return EmployeePage{
		Items:      mapEmployeeResponses(items, now),
		Pagination: response.NewPageInfo(total, req.Page, req.Limit),
	}, nil
}

func (s *service) Search(ctx context.Context, query string, limit int) ([]EmployeeResponse, error) {
	if _, err := s.gate.Authorize(ctx, rbac.ResourceEmployee, rbac.ActionRead); err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []EmployeeResponse{}, nil
	}
	if limit < 1 {
		limit = defaultSearchLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	now := s.now()
	q, err := BuildListQuery(ListEmployeesRequest{
		Page:    1,
		Limit:   limit,
		SortBy:  "firstName",
		Filters: EmployeeFilter{Search: &query},
	}, now)
	if err != nil {
		return nil, err
	}

	items, _, err := s.repo.List(ctx, q)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("search employees failed", zap.Error(err))
		return nil, err
	}
	return mapEmployeeResponses(items, now), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := s.gate.Authorize(ctx, rbac.ResourceEmployee, rbac.ActionRead); err != nil {
		return EmployeeResponse{}, err
	}

	empID, err := parseID(id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e, err := s.repo.FindByID(ctx, empID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapEmployeeResponse(*e, s.now()), nil
}

func (s *service) GetByCode(ctx context.Context, code string) (EmployeeResponse, error) {
	if _, err := s.gate.Authorize(ctx, rbac.ResourceEmployee, rbac.ActionRead); err != nil {
		return EmployeeResponse{}, err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return EmployeeResponse{}, apperror.RequiredField("Employee Code")
	}

	e, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapEmployeeResponse(*e, s.now()), nil
}

func (s *service) ListDirectReports(ctx context.Context, managerID string) ([]EmployeeResponse, error) {
	if _, err := s.gate.Authorize(ctx, rbac.ResourceEmployee, rbac.ActionRead); err != nil {
		return nil, err
	}

	id, err := parseID(managerID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.FindDirectReports(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapEmployeeResponses(items, s.now()), nil
}

func (s *service) ListManagers(ctx context.Context) ([]EmployeeResponse, error) {
	if _, err := s.gate.Authorize(ctx, rbac.ResourceEmployee, rbac.ActionRead); err != nil {
		return nil, err
	}

	items, err := s.repo.FindManagers(ctx)
	if err != nil {
		return nil, err
	}
	return mapEmployeeResponses(items, s.now()), nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)

	caller, err := s.gate.Authorize(ctx, rbac.ResourceEmployee, rbac.ActionCreate)
	if err != nil {
		return EmployeeResponse{}, err
	}

	l.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("employee_code", req.EmployeeCode),
		zap.String("email", req.Email),
	)

	now := s.now()
	req = normalizeCreateRequest(req)
	if err := apperror.ValidateStruct(req); err != nil {
		l.Warn("create employee validation failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if req.DateOfBirth != nil && req.DateOfBirth.After(now) {
		return EmployeeResponse{}, employeeerrors.ErrDateOfBirthInFuture
	}

	var managerID *uuid.UUID
	if req.ManagerID != nil {
		id, err := parseID(*req.ManagerID)
		if err != nil {
			return EmployeeResponse{}, err
		}
		managerID = &id
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	conflicts, err := qtx.FindConflicts(ctx, req.EmployeeCode, req.Email, nil)
	if err != nil {
		l.Error("create employee conflict check failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if err := conflictError(conflicts, req.EmployeeCode); err != nil {
		l.Warn("create employee duplicate", zap.String("employee_code", req.EmployeeCode), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if managerID != nil {
		if err := checkManager(ctx, qtx, *managerID, nil); err != nil {
			l.Warn("create employee invalid manager", zap.Error(err))
			return EmployeeResponse{}, err
		}
	}

	empl := &Employee{
		ID:                uuid.New(),
		EmployeeCode:      req.EmployeeCode,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		Department:        req.Department,
		Position:          req.Position,
		Salary:            req.Salary,
		HireDate:          req.HireDate,
		Status:            req.Status,
		ManagerID:         managerID,
		DateOfBirth:       req.DateOfBirth,
		Gender:            req.Gender,
		Address:           req.Address,
		City:              req.City,
		State:             req.State,
		ZipCode:           req.ZipCode,
		Country:           req.Country,
		EmergencyContact:  req.EmergencyContact,
		EmergencyPhone:    req.EmergencyPhone,
		Skills:            req.Skills,
		Experience:        req.Experience,
		Education:         req.Education,
		Certifications:    req.Certifications,
		PerformanceRating: req.PerformanceRating,
		AvatarURL:         req.AvatarURL,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		l.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, caller, events.EmployeeCreated, []uuid.UUID{empl.ID}, nil); err != nil {
		l.Error("create employee outbox persist failed",
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateCatalog(ctx)

	l.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)
	return mapEmployeeResponse(*empl, now), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)

	caller, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return EmployeeResponse{}, err
	}

	fullAccess := s.gate.Can(caller.Role, rbac.ResourceEmployee, rbac.ActionUpdate)
	if !fullAccess && !s.gate.Can(caller.Role, rbac.ResourceEmployee, rbac.ActionUpdateSelf) {
		l.Warn("update employee forbidden", zap.String("role", caller.Role))
		return EmployeeResponse{}, rbacerrors.ErrForbidden
	}

	empID, err := parseID(id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	now := s.now()
	cs, err := buildChangeSet(req, now)
	if err != nil {
		l.Warn("update employee validation failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if cs.empty() {
		return EmployeeResponse{}, employeeerrors.ErrNoFieldsToUpdate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("update employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := qtx.FindByID(ctx, empID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if !fullAccess {
		if !strings.EqualFold(current.Email, caller.Email) {
			l.Warn("self-service update on another record",
				zap.String("employee_id", id),
				zap.String("user_id", caller.UserID.String()),
			)
			return EmployeeResponse{}, employeeerrors.ErrNotOwnRecord
		}
		if !cs.profileOnly() {
			l.Warn("self-service update outside profile fields",
				zap.String("employee_id", id),
				zap.Strings("fields", cs.fields),
			)
			return EmployeeResponse{}, employeeerrors.ErrProfileFieldsOnly
		}
	}

	if cs.has("employeeCode") || cs.has("email") {
		code, email := current.EmployeeCode, current.Email
		if v, ok := cs.columns["employee_code"].(string); ok {
			code = v
		}
		if v, ok := cs.columns["email"].(string); ok {
			email = v
		}
		conflicts, err := qtx.FindConflicts(ctx, code, email, &empID)
		if err != nil {
			l.Error("update employee conflict check failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		if err := conflictError(conflicts, code); err != nil {
			return EmployeeResponse{}, err
		}
	}

	if cs.managerID != nil && *cs.managerID != uuid.Nil {
		if err := checkManager(ctx, qtx, *cs.managerID, []uuid.UUID{empID}); err != nil {
			l.Warn("update employee invalid manager", zap.String("employee_id", id), zap.Error(err))
			return EmployeeResponse{}, err
		}
	}

	cs.columns["updated_at"] = now
	if err := qtx.UpdateFields(ctx, empID, cs.columns); err != nil {
		l.Error("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	updated, err := qtx.FindByID(ctx, empID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, caller, events.EmployeeUpdated, []uuid.UUID{empID}, cs.fields); err != nil {
		l.Error("update employee outbox persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateCatalog(ctx)

	l.Info("update employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
		zap.Strings("fields", cs.fields),
	)
	return mapEmployeeResponse(*updated, now), nil
}

func (s *service) SetStatus(ctx context.Context, id, status string) (EmployeeResponse, error) {
	if err := apperror.ValidateVar("status", status, "required,oneof=active inactive terminated"); err != nil {
		return EmployeeResponse{}, err
	}
	return s.Update(ctx, id, UpdateEmployeeRequest{Status: &status})
}

func (s *service) Delete(ctx context.Context, id string) error {
	l := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)

	caller, err := s.gate.Authorize(ctx, rbac.ResourceEmployee, rbac.ActionDelete)
	if err != nil {
		return err
	}

	empID, err := parseID(id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("delete employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, empID); err != nil {
		mapped := mapRepositoryError(err)
		if apperror.IsExpected(mapped) {
			l.Warn("delete employee failed", zap.String("employee_id", id), zap.Error(mapped))
		} else {
			l.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		}
		return mapped
	}

	if err := s.enqueue(ctx, tx, caller, events.EmployeeDeleted, []uuid.UUID{empID}, nil); err != nil {
		l.Error("delete employee outbox persist failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	s.invalidateCatalog(ctx)

	l.Info("delete employee success", zap.String("request_id", rid), zap.String("employee_id", id))
	return nil
}

func (s *service) BulkUpdate(ctx context.Context, req BulkUpdateRequest) (BulkResult, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)

	caller, err := s.gate.Authorize(ctx, rbac.ResourceEmployee, rbac.ActionBulk)
	if err != nil {
		return BulkResult{}, err
	}

	ids, err := parseBulkIDs(req.IDs)
	if err != nil {
		return BulkResult{}, err
	}

	now := s.now()
	cs, err := buildChangeSet(req.Input, now)
	if err != nil {
		return BulkResult{}, err
	}
	if cs.empty() {
		return BulkResult{}, employeeerrors.ErrNoBulkFieldsToUpdate
	}
	if field, ok := cs.bulkOnly(); !ok {
		return BulkResult{}, apperror.Validationf("%s cannot be changed in a bulk update", apperror.FieldLabel(field))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("bulk update begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return BulkResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if missing, err := missingIDs(ctx, qtx, ids); err != nil {
		l.Error("bulk update existence check failed", zap.Error(err))
		return BulkResult{}, err
	} else if len(missing) > 0 {
		l.Warn("bulk update rejected, unknown ids", zap.Int("missing", len(missing)))
		return rejectedResult("updated", missing), nil
	}

	if cs.managerID != nil && *cs.managerID != uuid.Nil {
		if err := checkManager(ctx, qtx, *cs.managerID, ids); err != nil {
			return BulkResult{}, err
		}
	}

	cs.columns["updated_at"] = now
	affected, err := qtx.BulkUpdateFields(ctx, ids, cs.columns)
	if err != nil {
		l.Error("bulk update persist failed", zap.Error(err))
		return BulkResult{}, mapRepositoryError(err)
	}
	if affected != int64(len(ids)) {
		l.Error("bulk update affected count mismatch",
			zap.Int64("affected", affected),
			zap.Int("expected", len(ids)),
		)
		return BulkResult{}, fmt.Errorf("bulk update affected %d of %d rows", affected, len(ids))
	}

	if err := s.enqueue(ctx, tx, caller, events.EmployeeUpdated, ids, cs.fields); err != nil {
		l.Error("bulk update outbox persist failed", zap.Error(err))
		return BulkResult{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return BulkResult{}, err
	}

	s.invalidateCatalog(ctx)

	l.Info("bulk update success",
		zap.String("request_id", rid),
		zap.Int64("affected", affected),
		zap.Strings("fields", cs.fields),
	)
	return BulkResult{
		Success:       true,
		AffectedCount: int(affected),
		Errors:        []string{},
		Message:       fmt.Sprintf("Successfully updated %d employees", affected),
	}, nil
}

func (s *service) BulkDelete(ctx context.Context, rawIDs []string) (BulkResult, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)

	caller, err := s.gate.Authorize(ctx, rbac.ResourceEmployee, rbac.ActionBulk)
	if err != nil {
		return BulkResult{}, err
	}

	ids, err := parseBulkIDs(rawIDs)
	if err != nil {
		return BulkResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("bulk delete begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return BulkResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if missing, err := missingIDs(ctx, qtx, ids); err != nil {
		l.Error("bulk delete existence check failed", zap.Error(err))
		return BulkResult{}, err
	} else if len(missing) > 0 {
		l.Warn("bulk delete rejected, unknown ids", zap.Int("missing", len(missing)))
		return rejectedResult("deleted", missing), nil
	}

	affected, err := qtx.BulkDelete(ctx, ids)
	if err != nil {
		l.Error("bulk delete persist failed", zap.Error(err))
		return BulkResult{}, err
	}
	if affected != int64(len(ids)) {
		l.Error("bulk delete affected count mismatch",
			zap.Int64("affected", affected),
			zap.Int("expected", len(ids)),
		)
		return BulkResult{}, fmt.Errorf("bulk delete affected %d of %d rows", affected, len(ids))
	}

	if err := s.enqueue(ctx, tx, caller, events.EmployeeDeleted, ids, nil); err != nil {
		l.Error("bulk delete outbox persist failed", zap.Error(err))
		return BulkResult{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return BulkResult{}, err
	}

	s.invalidateCatalog(ctx)

	l.Info("bulk delete success", zap.String("request_id", rid), zap.Int64("affected", affected))
	return BulkResult{
		Success:       true,
		AffectedCount: int(affected),
		Errors:        []string{},
		Message:       fmt.Sprintf("Successfully deleted %d employees", affected),
	}, nil
}

func (s *service) Stats(ctx context.Context) (EmployeeStats, error) {
	if _, err := s.gate.Authorize(ctx, rbac.ResourceStats, rbac.ActionRead); err != nil {
		return EmployeeStats{}, err
	}

	stats, err := s.repo.Stats(ctx, s.now())
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("employee stats failed", zap.Error(err))
		return EmployeeStats{}, err
	}
	return stats, nil
}

// enqueue writes one outbox row per employee inside tx.
func (s *service) enqueue(
	ctx context.Context,
	tx *sql.Tx,
	caller rbac.Caller,
	eventType string,
	ids []uuid.UUID,
	fields []string,
) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	outboxRepo := s.outbox.WithTx(tx)
	for _, id := range ids {
		payload := events.EmployeeChangedEvent{
			EventType:  eventType,
			RequestID:  rid,
			EmployeeID: id.String(),
			ActorID:    caller.UserID.String(),
			Fields:     fields,
			Bulk:       len(ids) > 1,
			OccurredAt: s.now().UTC(),
		}
		event, err := kafka.NewOutboxEvent(aggregateType, id.String(), eventType, events.EmployeeChangesTopic, rid, payload)
		if err != nil {
			return err
		}
		if err := outboxRepo.Create(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) invalidateCatalog(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	keys := department.CacheKeys()
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to invalidate catalog cache",
			zap.Error(err),
			zap.Strings("keys", keys),
		)
	}
}

// checkManager verifies managerID exists and that none of subjects appears
// in its manager chain.
func checkManager(ctx context.Context, repo Repository, managerID uuid.UUID, subjects []uuid.UUID) error {
	for _, id := range subjects {
		if id == managerID {
			return employeeerrors.ErrSelfManager
		}
	}

	chain, err := repo.ManagerChain(ctx, managerID, MaxManagerChainDepth)
	if err != nil {
		return err
	}
	if len(chain) == 0 {
		return employeeerrors.ErrManagerNotFound
	}

	for _, ancestor := range chain {
		for _, id := range subjects {
			if ancestor == id {
				return employeeerrors.ErrManagerCycle
			}
		}
	}
	if len(chain) >= MaxManagerChainDepth {
		return employeeerrors.ErrManagerChainTooDeep
	}
	return nil
}

func conflictError(conflicts []Employee, code string) error {
	for _, c := range conflicts {
		if c.EmployeeCode == code {
			return employeeerrors.ErrEmployeeCodeAlreadyExists
		}
	}
	if len(conflicts) > 0 {
		return employeeerrors.ErrEmployeeAlreadyExists
	}
	return nil
}

func missingIDs(ctx context.Context, repo Repository, ids []uuid.UUID) ([]uuid.UUID, error) {
	found, err := repo.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		seen[id] = struct{}{}
	}

	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func rejectedResult(verb string, missing []uuid.UUID) BulkResult {
	errs := make([]string, 0, len(missing))
	for _, id := range missing {
		errs = append(errs, fmt.Sprintf("Employee %s not found", id))
	}
	return BulkResult{
		Success:       false,
		AffectedCount: 0,
		Errors:        errs,
		Message:       fmt.Sprintf("No employees were %s", verb),
	}
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, employeeerrors.ErrInvalidEmployeeID
	}
	return parsed, nil
}

// parseBulkIDs dedupes the list and enforces 1..MaxBulkIDs.
func parseBulkIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, employeeerrors.ErrBulkEmpty
	}

	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(strings.TrimSpace(r))
		if err != nil {
			return nil, apperror.Validationf("Invalid employee ID: %s", r)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(ids) > MaxBulkIDs {
		return nil, employeeerrors.ErrBulkTooLarge
	}
	return ids, nil
}

func normalizeCreateRequest(req CreateEmployeeRequest) CreateEmployeeRequest {
	req.EmployeeCode = strings.TrimSpace(req.EmployeeCode)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Department = strings.TrimSpace(req.Department)
	req.Position = strings.TrimSpace(req.Position)
	if req.Status == "" {
		req.Status = StatusActive
	}

	for _, p := range []**string{
		&req.Phone, &req.Gender, &req.ManagerID, &req.Address, &req.City,
		&req.State, &req.ZipCode, &req.Country, &req.EmergencyContact,
		&req.EmergencyPhone, &req.Education, &req.AvatarURL,
	} {
		*p = optional(*p)
	}

	req.Skills = compact(req.Skills)
	req.Certifications = compact(req.Certifications)
	return req
}

// optional trims s and turns an empty value into nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
