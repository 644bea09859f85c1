package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-hrgql/internal/department"
	"go-hrgql/internal/employee"
	employeeerrors "go-hrgql/internal/employee/errors"
	employeeMock "go-hrgql/internal/employee/mock"
	"go-hrgql/internal/events"
	"go-hrgql/internal/messaging/kafka"
	kafkaMock "go-hrgql/internal/messaging/kafka/mock"
	"go-hrgql/internal/rbac"
	rbacerrors "go-hrgql/internal/rbac/errors"
	"go-hrgql/internal/rbac/infra"
	"go-hrgql/internal/shared/apperror"
	"go-hrgql/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
	redismock redismock.ClientMock
}

var errRecordNotFound = gorm.ErrRecordNotFound

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := employee.NewService(db, repo, outboxRepo, rbac.NewService(enforcer), dbRedis,
		employee.WithClock(func() time.Time { return fixedNow }),
	)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		outbox:    outboxRepo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func asRole(role, email string) context.Context {
	ctx := contextutil.WithRequestID(context.Background(), "req-123")
	return rbac.WithCaller(ctx, rbac.Caller{UserID: uuid.New(), Email: email, Role: role})
}

func expectInvalidate(deps *serviceDeps) {
	deps.redismock.ExpectDel(department.CacheKeys()...).SetVal(2)
}

func validCreateRequest() employee.CreateEmployeeRequest {
	dob := time.Date(1990, time.June, 1, 0, 0, 0, 0, time.UTC)
	return employee.CreateEmployeeRequest{
		EmployeeCode: "EMP001",
		FirstName:    "Budi",
		LastName:     "Santoso",
		Email:        " Budi.Santoso@Company.com ",
		Department:   "Engineering",
		Position:     "Backend Engineer",
		HireDate:     time.Date(2022, time.January, 10, 0, 0, 0, 0, time.UTC),
		DateOfBirth:  &dob,
		Skills:       []string{"Go", "PostgreSQL"},
	}
}

func TestEmployeeService_Create(t *testing.T) {
	t.Run("success - persists with outbox event", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleHR, "hr@company.com")
		req := validCreateRequest()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindConflicts(ctx, "EMP001", "budi.santoso@company.com", nil).
			Return(nil, nil)

		var created *employee.Employee
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "budi.santoso@company.com", e.Email)
				assert.Equal(t, employee.StatusActive, e.Status)
				assert.Nil(t, e.ManagerID)
				created = e
				return nil
			})

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.EmployeeCreated, ev.EventType)
				assert.Equal(t, events.EmployeeChangesTopic, ev.Topic)
				assert.Equal(t, "req-123", ev.RequestID)
				assert.Equal(t, created.ID.String(), ev.AggregateID)

				var payload events.EmployeeChangedEvent
				assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, created.ID.String(), payload.EmployeeID)
				return nil
			})

		expectInvalidate(deps)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, created.ID.String(), resp.ID)
		assert.Equal(t, "Budi Santoso", resp.Name)
		assert.Equal(t, 35, *resp.Age)
		assert.Equal(t, []string{"Go", "PostgreSQL"}, resp.Skills)
		assert.Equal(t, []string{}, resp.Certifications)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("duplicate code is a conflict and nothing is written", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleAdmin, "admin@company.com")

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindConflicts(ctx, "EMP001", gomock.Any(), nil).
			Return([]employee.Employee{{ID: uuid.New(), EmployeeCode: "EMP001"}}, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		_, err := deps.service.Create(ctx, validCreateRequest())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeCodeAlreadyExists)
		assert.Equal(t, apperror.CodeConflict, apperror.CodeOf(err))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleAdmin, "admin@company.com")

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindConflicts(ctx, gomock.Any(), gomock.Any(), nil).
			Return([]employee.Employee{{ID: uuid.New(), EmployeeCode: "EMP999"}}, nil)

		_, err := deps.service.Create(ctx, validCreateRequest())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})

	t.Run("unique violation from insert is mapped", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleAdmin, "admin@company.com")

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindConflicts(ctx, gomock.Any(), gomock.Any(), nil).Return(nil, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employees_email"})

		_, err := deps.service.Create(ctx, validCreateRequest())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})

	t.Run("zero rating passes validation and check violations map to invalid input", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleAdmin, "admin@company.com")
		req := validCreateRequest()
		zero := 0.0
		req.PerformanceRating = &zero

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindConflicts(ctx, gomock.Any(), gomock.Any(), nil).Return(nil, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				if assert.NotNil(t, e.PerformanceRating) {
					assert.Zero(t, *e.PerformanceRating)
				}
				return &pgconn.PgError{Code: "23514", ConstraintName: "ck_employees_rating"}
			})

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrConstraintViolated)
		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
	})

	t.Run("manager must exist", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleAdmin, "admin@company.com")
		managerID := uuid.New()
		req := validCreateRequest()
		req.ManagerID = strPtr(managerID.String())

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindConflicts(ctx, gomock.Any(), gomock.Any(), nil).Return(nil, nil)
		deps.repo.EXPECT().
			ManagerChain(ctx, managerID, employee.MaxManagerChainDepth).
			Return([]uuid.UUID{}, nil)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrManagerNotFound)
	})

	t.Run("validation errors never open a transaction", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleAdmin, "admin@company.com")

		tests := []struct {
			name   string
			mutate func(r *employee.CreateEmployeeRequest)
			msg    string
		}{
			{"missing code", func(r *employee.CreateEmployeeRequest) { r.EmployeeCode = "" }, "Employee Code is required"},
			{"bad code", func(r *employee.CreateEmployeeRequest) { r.EmployeeCode = "e1" }, "Employee Code must be 3-10 characters long and contain only uppercase letters and numbers"},
			{"bad email", func(r *employee.CreateEmployeeRequest) { r.Email = "not-an-email" }, "Email must be a valid email address"},
			{"missing hire date", func(r *employee.CreateEmployeeRequest) { r.HireDate = time.Time{} }, "Hire Date is required"},
			{"salary too high", func(r *employee.CreateEmployeeRequest) { r.Salary = floatPtr(10000001) }, "Salary must be at most 10000000"},
			{"rating too high", func(r *employee.CreateEmployeeRequest) { r.PerformanceRating = floatPtr(6) }, "Performance Rating must be at most 5"},
			{"future birth date", func(r *employee.CreateEmployeeRequest) { r.DateOfBirth = timePtr(fixedNow.AddDate(0, 0, 1)) }, "Date Of Birth cannot be in the future"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := validCreateRequest()
				tt.mutate(&req)

				_, err := deps.service.Create(ctx, req)

				assert.EqualError(t, err, tt.msg)
				assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
			})
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("employee role cannot create", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(asRole(rbac.RoleEmployee, "e@company.com"), validCreateRequest())

		assert.ErrorIs(t, err, rbacerrors.ErrForbidden)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(context.Background(), validCreateRequest())

		assert.ErrorIs(t, err, rbacerrors.ErrNotLoggedIn)
	})
}

func existingEmployee(id uuid.UUID, email string) *employee.Employee {
	return &employee.Employee{
		ID:           id,
		EmployeeCode: "EMP010",
		FirstName:    "Siti",
		LastName:     "Rahma",
		Email:        email,
		Department:   "Finance",
		Position:     "Analyst",
		Status:       employee.StatusActive,
		HireDate:     time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestEmployeeService_Update(t *testing.T) {
	id := uuid.New()

	t.Run("empty input is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Update(asRole(rbac.RoleAdmin, "admin@company.com"), id.String(), employee.UpdateEmployeeRequest{})

		assert.ErrorIs(t, err, employeeerrors.ErrNoFieldsToUpdate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("admin updates any field", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleAdmin, "admin@company.com")
		current := existingEmployee(id, "siti@company.com")

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(current, nil)
		deps.repo.EXPECT().
			UpdateFields(ctx, id, map[string]interface{}{
				"position":   "Senior Analyst",
				"salary":     90000.0,
				"updated_at": fixedNow,
			}).
			Return(nil)

		updated := *current
		updated.Position = "Senior Analyst"
		updated.Salary = floatPtr(90000)
		deps.repo.EXPECT().FindByID(ctx, id).Return(&updated, nil)

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				var payload events.EmployeeChangedEvent
				assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, events.EmployeeUpdated, payload.EventType)
				assert.Equal(t, []string{"position", "salary"}, payload.Fields)
				return nil
			})
		expectInvalidate(deps)

		resp, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{
			Position: strPtr("Senior Analyst"),
			Salary:   floatPtr(90000),
		})

		assert.NoError(t, err)
		assert.Equal(t, "Senior Analyst", resp.Position)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("email change checked against other rows", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleAdmin, "admin@company.com")

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(existingEmployee(id, "siti@company.com"), nil)
		deps.repo.EXPECT().
			FindConflicts(ctx, "EMP010", "taken@company.com", &id).
			Return([]employee.Employee{{ID: uuid.New(), EmployeeCode: "EMP020"}}, nil)

		_, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{Email: strPtr("Taken@company.com")})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("manager cycle is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleAdmin, "admin@company.com")
		managerID := uuid.New()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(existingEmployee(id, "siti@company.com"), nil)
		// managerID melapor ke id, jadi id tidak boleh melapor ke managerID
		deps.repo.EXPECT().
			ManagerChain(ctx, managerID, employee.MaxManagerChainDepth).
			Return([]uuid.UUID{managerID, id}, nil)
		deps.repo.EXPECT().UpdateFields(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{ManagerID: strPtr(managerID.String())})

		assert.ErrorIs(t, err, employeeerrors.ErrManagerCycle)
	})

	t.Run("self manager is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleAdmin, "admin@company.com")

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(existingEmployee(id, "siti@company.com"), nil)

		_, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{ManagerID: strPtr(id.String())})

		assert.ErrorIs(t, err, employeeerrors.ErrSelfManager)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleAdmin, "admin@company.com")

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, errRecordNotFound)

		_, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{City: strPtr("Bandung")})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("self-service on own record", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleEmployee, "Siti@Company.com")
		current := existingEmployee(id, "siti@company.com")

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(current, nil).Times(2)
		deps.repo.EXPECT().UpdateFields(ctx, id, gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		expectInvalidate(deps)

		_, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{
			Phone: strPtr("+6281234567890"),
			City:  strPtr("Surabaya"),
		})

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("self-service on another record is forbidden", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleHR, "hr@company.com")

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(existingEmployee(id, "siti@company.com"), nil)
		deps.repo.EXPECT().UpdateFields(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{City: strPtr("Medan")})

		assert.ErrorIs(t, err, employeeerrors.ErrNotOwnRecord)
		assert.Equal(t, apperror.CodeForbidden, apperror.CodeOf(err))
	})

	t.Run("self-service outside profile fields is forbidden", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleEmployee, "siti@company.com")

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(existingEmployee(id, "siti@company.com"), nil)

		_, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{Salary: floatPtr(1)})

		assert.ErrorIs(t, err, employeeerrors.ErrProfileFieldsOnly)
	})

	t.Run("malformed id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Update(asRole(rbac.RoleAdmin, "admin@company.com"), "42", employee.UpdateEmployeeRequest{City: strPtr("Bogor")})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}

func TestEmployeeService_SetStatus(t *testing.T) {
	deps := setupServiceTest(t)
	id := uuid.New()

	t.Run("unknown status", func(t *testing.T) {
		_, err := deps.service.SetStatus(asRole(rbac.RoleAdmin, "admin@company.com"), id.String(), "retired")
		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
	})

	t.Run("employee cannot change own status", func(t *testing.T) {
		ctx := asRole(rbac.RoleEmployee, "siti@company.com")

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(existingEmployee(id, "siti@company.com"), nil)

		_, err := deps.service.SetStatus(ctx, id.String(), employee.StatusTerminated)

		assert.ErrorIs(t, err, employeeerrors.ErrProfileFieldsOnly)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleAdmin, "admin@company.com")

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, id).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.EmployeeDeleted, ev.EventType)
				return nil
			})
		expectInvalidate(deps)

		err := deps.service.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleAdmin, "admin@company.com")

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, id).Return(errRecordNotFound)

		err := deps.service.Delete(ctx, id.String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.Equal(t, apperror.CodeNotFound, apperror.CodeOf(err))
	})

	t.Run("hr cannot delete", func(t *testing.T) {
		deps := setupServiceTest(t)

		err := deps.service.Delete(asRole(rbac.RoleHR, "hr@company.com"), id.String())

		assert.ErrorIs(t, err, rbacerrors.ErrForbidden)
	})
}

func newIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = uuid.NewString()
	}
	return ids
}

func TestEmployeeService_BulkDelete(t *testing.T) {
	ctx := asRole(rbac.RoleAdmin, "admin@company.com")

	t.Run("id count bounds", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.BulkDelete(ctx, nil)
		assert.ErrorIs(t, err, employeeerrors.ErrBulkEmpty)

		_, err = deps.service.BulkDelete(ctx, newIDs(51))
		assert.ErrorIs(t, err, employeeerrors.ErrBulkTooLarge)

		_, err = deps.service.BulkDelete(ctx, []string{uuid.NewString(), "bogus"})
		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("fifty ids succeed atomically", func(t *testing.T) {
		deps := setupServiceTest(t)
		raw := newIDs(50)
		ids := make([]uuid.UUID, len(raw))
		for i, r := range raw {
			ids[i] = uuid.MustParse(r)
		}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistingIDs(ctx, ids).Return(ids, nil)
		deps.repo.EXPECT().BulkDelete(ctx, ids).Return(int64(50), nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(50)
		expectInvalidate(deps)

		res, err := deps.service.BulkDelete(ctx, raw)

		assert.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, 50, res.AffectedCount)
		assert.Empty(t, res.Errors)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown id rolls back everything", func(t *testing.T) {
		deps := setupServiceTest(t)
		known, unknown := uuid.New(), uuid.New()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistingIDs(ctx, []uuid.UUID{known, unknown}).Return([]uuid.UUID{known}, nil)
		deps.repo.EXPECT().BulkDelete(gomock.Any(), gomock.Any()).Times(0)

		res, err := deps.service.BulkDelete(ctx, []string{known.String(), unknown.String(), known.String()})

		assert.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, 0, res.AffectedCount)
		assert.Equal(t, []string{"Employee " + unknown.String() + " not found"}, res.Errors)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("hr cannot bulk delete", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.BulkDelete(asRole(rbac.RoleHR, "hr@company.com"), newIDs(1))

		assert.ErrorIs(t, err, rbacerrors.ErrForbidden)
	})
}

func TestEmployeeService_BulkUpdate(t *testing.T) {
	ctx := asRole(rbac.RoleAdmin, "admin@company.com")

	t.Run("non bulk field rejected", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.BulkUpdate(ctx, employee.BulkUpdateRequest{
			IDs:   newIDs(2),
			Input: employee.UpdateEmployeeRequest{Salary: floatPtr(1000)},
		})

		assert.EqualError(t, err, "Salary cannot be changed in a bulk update")
	})

	t.Run("no fields", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.BulkUpdate(ctx, employee.BulkUpdateRequest{IDs: newIDs(2)})

		assert.ErrorIs(t, err, employeeerrors.ErrNoBulkFieldsToUpdate)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		a, b := uuid.New(), uuid.New()
		ids := []uuid.UUID{a, b}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistingIDs(ctx, ids).Return(ids, nil)
		deps.repo.EXPECT().
			BulkUpdateFields(ctx, ids, map[string]interface{}{
				"department": "Operations",
				"status":     employee.StatusInactive,
				"updated_at": fixedNow,
			}).
			Return(int64(2), nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(2)
		expectInvalidate(deps)

		res, err := deps.service.BulkUpdate(ctx, employee.BulkUpdateRequest{
			IDs: []string{a.String(), b.String()},
			Input: employee.UpdateEmployeeRequest{
				Department: strPtr("Operations"),
				Status:     strPtr(employee.StatusInactive),
			},
		})

		assert.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, 2, res.AffectedCount)
		assert.Equal(t, "Successfully updated 2 employees", res.Message)
	})

	t.Run("manager inside the id set is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		a, b := uuid.New(), uuid.New()
		ids := []uuid.UUID{a, b}

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistingIDs(ctx, ids).Return(ids, nil)

		_, err := deps.service.BulkUpdate(ctx, employee.BulkUpdateRequest{
			IDs:   []string{a.String(), b.String()},
			Input: employee.UpdateEmployeeRequest{ManagerID: strPtr(b.String())},
		})

		assert.ErrorIs(t, err, employeeerrors.ErrSelfManager)
	})

	t.Run("affected count mismatch rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		a := uuid.New()
		ids := []uuid.UUID{a}

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistingIDs(ctx, ids).Return(ids, nil)
		deps.repo.EXPECT().BulkUpdateFields(ctx, ids, gomock.Any()).Return(int64(0), nil)

		_, err := deps.service.BulkUpdate(ctx, employee.BulkUpdateRequest{
			IDs:   []string{a.String()},
			Input: employee.UpdateEmployeeRequest{Position: strPtr("Lead")},
		})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_List(t *testing.T) {
	t.Run("returns page info", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleEmployee, "e@company.com")
		items := []employee.Employee{*existingEmployee(uuid.New(), "a@company.com")}

		deps.repo.EXPECT().
			List(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, q employee.ListQuery) ([]employee.Employee, int64, error) {
				assert.Equal(t, "department = ?", q.Where)
				assert.Equal(t, 10, q.Offset)
				return items, 21, nil
			})

		page, err := deps.service.List(ctx, employee.ListEmployeesRequest{
			Page:    2,
			Limit:   10,
			Filters: employee.EmployeeFilter{Department: strPtr("Finance")},
		})

		assert.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, int64(21), page.Pagination.TotalItems)
		assert.Equal(t, 3, page.Pagination.TotalPages)
		assert.True(t, page.Pagination.HasNextPage)
		assert.True(t, page.Pagination.HasPreviousPage)
	})

	t.Run("invalid sort never reaches the database", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.List(asRole(rbac.RoleAdmin, "admin@company.com"), employee.ListEmployeesRequest{
			Page: 1, Limit: 10, SortBy: "salary; --",
		})

		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
	})

	t.Run("anonymous", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.List(context.Background(), employee.ListEmployeesRequest{Page: 1, Limit: 10})

		assert.ErrorIs(t, err, rbacerrors.ErrNotLoggedIn)
	})
}

func TestEmployeeService_Search(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := asRole(rbac.RoleEmployee, "e@company.com")

	res, err := deps.service.Search(ctx, "   ", 5)
	assert.NoError(t, err)
	assert.Empty(t, res)

	deps.repo.EXPECT().
		List(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, q employee.ListQuery) ([]employee.Employee, int64, error) {
			assert.Equal(t, 5, q.Limit)
			assert.Equal(t, []interface{}{"%siti%", "%siti%", "%siti%", "%siti%"}, q.Args)
			return []employee.Employee{*existingEmployee(uuid.New(), "siti@company.com")}, 1, nil
		})

	res, err = deps.service.Search(ctx, "siti", 5)
	assert.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, "Siti Rahma", res[0].Name)
}

func TestEmployeeService_Stats(t *testing.T) {
	t.Run("hr can read stats", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := asRole(rbac.RoleHR, "hr@company.com")
		want := employee.EmployeeStats{TotalEmployees: 3, ActiveEmployees: 2}

		deps.repo.EXPECT().Stats(ctx, fixedNow).Return(want, nil)

		got, err := deps.service.Stats(ctx)

		assert.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("employee cannot", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Stats(asRole(rbac.RoleEmployee, "e@company.com"))

		assert.ErrorIs(t, err, rbacerrors.ErrForbidden)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := asRole(rbac.RoleEmployee, "e@company.com")
	id := uuid.New()

	deps.repo.EXPECT().FindByID(ctx, id).Return(nil, errRecordNotFound)

	_, err := deps.service.GetByID(ctx, id.String())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)

	_, err = deps.service.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
}
