package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestEmbeddedMigrations_Paired(t *testing.T) {
	entries, err := fs.ReadDir(files, "sql")
	assert.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %s", name)
		}
	}

	assert.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestEmbeddedMigrations_Constraints(t *testing.T) {
	raw, err := fs.ReadFile(files, "sql/000001_create_employees.up.sql")
	assert.NoError(t, err)

	// repository error mapping depends on these names
	for _, name := range []string{"uq_employees_code", "uq_employees_email", "fk_employees_manager"} {
		assert.Contains(t, string(raw), name)
	}
	assert.Contains(t, string(raw), "ON DELETE SET NULL")
	// same 0..5 range the request validation accepts
	assert.Contains(t, string(raw), "performance_rating BETWEEN 0 AND 5")

	users, err := fs.ReadFile(files, "sql/000002_create_users.up.sql")
	assert.NoError(t, err)
	assert.Contains(t, string(users), "uq_users_email")

	deps, err := fs.ReadFile(files, "sql/000003_create_attendance_leave.up.sql")
	assert.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(deps), "ON DELETE CASCADE"))
}

func TestRun_UnsupportedAction(t *testing.T) {
	err := Run("sideways", "postgres://localhost/none", zap.NewNop())
	assert.ErrorIs(t, err, ErrUnsupportedAction)
}
