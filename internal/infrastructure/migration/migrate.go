package migration

import (
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Blank imports register the database drivers used by the kv backends
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

var ErrUnknownDialect = errors.New("unknown migration dialect")

//go:embed sql
var migrations embed.FS

// Migrator - интерфейс для самой библиотеки migrate.Migrate
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine - фабрика для создания мигратора (чтобы не лезть в БД в тестах)
type MigrationEngine func(src source.Driver, databaseURL string) (Migrator, error)

type Migration struct {
	dialect     string
	databaseURL string
	engine      MigrationEngine
}

func NewMigration(dialect, databaseURL string, engine MigrationEngine) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		dialect:     dialect,
		databaseURL: databaseURL,
		engine:      engine,
	}
}

// DefaultEngine - реальная реализация поверх встроенных SQL-файлов
func DefaultEngine(src source.Driver, databaseURL string) (Migrator, error) {
	return migrate.NewWithSourceInstance("iofs", src, databaseURL)
}

// SQLiteURL строит адрес базы для драйвера sqlite3 из пути к файлу
func SQLiteURL(path string) string {
	return "sqlite3://" + filepath.ToSlash(path)
}

// PostgresURL переводит DSN вида postgres://... на схему драйвера pgx5
func PostgresURL(dsn string) (string, error) {
	for _, scheme := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, scheme) {
			return "pgx5://" + strings.TrimPrefix(dsn, scheme), nil
		}
	}
	return "", fmt.Errorf("database uri must be a postgres:// url")
}

func (mg *Migration) Up() (err error) {
	switch mg.dialect {
	case DialectSQLite, DialectPostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDialect, mg.dialect)
	}

	src, err := iofs.New(migrations, "sql/"+mg.dialect)
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}

	m, err := mg.engine(src, mg.databaseURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}
