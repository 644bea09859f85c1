package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var files embed.FS

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

var ErrUnsupportedAction = errors.New("unsupported migration action")

func newMigrate(dbURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

// Run applies one migration action against the database at dbURL.
func Run(action, dbURL string, logger *zap.Logger) error {
	switch action {
	case ActionUp, ActionDown, ActionDrop, ActionVersion:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedAction, action)
	}

	m, err := newMigrate(dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	switch action {
	case ActionUp:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case ActionDown:
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case ActionDrop:
		return m.Drop()
	case ActionVersion:
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("no migration applied")
			return nil
		}
		if err != nil {
			return err
		}
		logger.Info("migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	}

	return nil
}
