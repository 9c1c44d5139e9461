// Package migration applies the versioned SQL schema under migrations/<dialect>
// with golang-migrate and scaffolds new migration files.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Supported dialects. Each has its own directory of migrations.
const (
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
)

// Dialects lists every dialect that ships SQL migrations
var Dialects = []string{DialectPostgres, DialectMySQL}

// Migrator runs the SQL migrations of one dialect
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

// SourceDir returns the migrations directory of a dialect under root
func SourceDir(root, dialect string) string {
	return filepath.Join(root, dialect)
}

// New creates a Migrator over an open connection. root is the migrations
// directory holding one subdirectory per dialect.
func New(db *sql.DB, dialect, root string, logger *zap.Logger) (*Migrator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		driver database.Driver
		err    error
	)
	switch dialect {
	case DialectPostgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	case DialectMySQL:
		driver, err = mysql.WithInstance(db, &mysql.Config{})
	default:
		return nil, fmt.Errorf("no SQL migrations for dialect %q", dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s migration driver: %w", dialect, err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+SourceDir(root, dialect), dialect, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{
		migrate: m,
		logger:  logger.With(zap.String("dialect", dialect)),
	}, nil
}

// Up applies every pending migration
func (m *Migrator) Up() error {
	return m.run("up", m.migrate.Up)
}

// Down rolls back every migration
func (m *Migrator) Down() error {
	return m.run("down", m.migrate.Down)
}

// Steps applies n migrations; a negative n rolls back
func (m *Migrator) Steps(n int) error {
	return m.run(fmt.Sprintf("steps %d", n), func() error {
		return m.migrate.Steps(n)
	})
}

// GoTo migrates up or down to version
func (m *Migrator) GoTo(version uint) error {
	return m.run(fmt.Sprintf("goto %d", version), func() error {
		return m.migrate.Migrate(version)
	})
}

// Version returns the applied version. Zero means nothing has been applied.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Force records version as applied without running anything. It clears
// the dirty flag left by a failed migration.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing migration version", zap.Int("version", version))
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}

// Close releases the source and database handles
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	return errors.Join(sourceErr, dbErr)
}

func (m *Migrator) run(op string, fn func() error) error {
	m.logger.Info("Running migrations", zap.String("op", op))

	err := fn()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to apply", zap.String("op", op))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", op, err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info("Migrations completed",
		zap.String("op", op),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}
