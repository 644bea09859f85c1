package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-hrgql/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestRegisterOps_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("database reachable", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		assert.NoError(t, err)
		defer db.Close()
		mock.ExpectPing()

		r := gin.New()
		registerOps(r, db)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["status"])
		assert.NotEmpty(t, body["uptime"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database down", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		assert.NoError(t, err)
		defer db.Close()
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		r := gin.New()
		registerOps(r, db)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "unavailable")
	})
}

func TestRegisterOps_Metrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	r := gin.New()
	registerOps(r, db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestGlobalMiddleware_CORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{HTTP: config.HTTPConfig{FrontendURL: "http://localhost:3000"}}
	r := gin.New()
	r.Use(globalMiddleware(cfg)...)
	r.POST("/graphql", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("allowed origin preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/graphql", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("foreign origin rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
		req.Header.Set("Origin", "http://evil.example")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRunWorker_RequiresBroker(t *testing.T) {
	err := RunWorker(&config.Config{})
	assert.ErrorIs(t, err, ErrMissingKafkaBroker)
}

func TestRegisterModules_ServesGraphQL(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)

	cfg := &config.Config{
		AppEnv:          config.EnvDevelopment,
		Auth:            config.AuthConfig{JWTSecret: "test-secret", TokenTTL: 24 * time.Hour},
		HTTP:            config.HTTPConfig{RateLimit: 100, RateBurst: 100},
		GraphQLMaxDepth: 10,
	}

	r := gin.New()
	require.NoError(t, registerModules(r, cfg, db, gormDB, nil))

	query := `{"query":"{ __type(name: \"EmployeeInput\") { inputFields { name defaultValue } } }"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(query))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Type struct {
				InputFields []struct {
					Name         string
					DefaultValue *string
				}
			} `json:"__type"`
		}
		Errors []json.RawMessage
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Errors)

	defaults := map[string]string{}
	for _, f := range body.Data.Type.InputFields {
		if f.DefaultValue != nil {
			defaults[f.Name] = *f.DefaultValue
		}
	}
	assert.Equal(t, "ACTIVE", defaults["status"])
	assert.Equal(t, "[]", defaults["skills"])
	assert.Equal(t, "[]", defaults["certifications"])
}
