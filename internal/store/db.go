package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-tweeter/internal/config"
	"github.com/MKhiriev/go-tweeter/internal/logger"
	"github.com/MKhiriev/go-tweeter/migrations"
)

// DB is a database handle bound to one driver. It carries the squirrel
// builder with the driver's placeholder format and the driver's
// [ErrorClassifier].
type DB struct {
	*sql.DB
	driver          string
	builder         sq.StatementBuilderType
	errorClassifier ErrorClassifier
	logger          *logger.Logger
}

// NewDB opens a connection for cfg.Driver ("pgx" or "sqlite3"), pings it
// and applies the embedded migrations for that driver.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	db, err := open(cfg, log)
	if err != nil {
		return nil, err
	}

	// ping database
	if err = db.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewDB").Msg("error connecting database (ping)")
		db.Close()
		return nil, fmt.Errorf("error connecting database: %w", err)
	}

	if err = migrations.Migrate(ctx, db.DB, cfg.Driver); err != nil {
		log.Err(err).Str("func", "NewDB").Msg("error applying migrations")
		db.Close()
		return nil, err
	}

	log.Info().Str("func", "NewDB").Str("driver", cfg.Driver).Msg("connected to database successfully")
	return db, nil
}

func open(cfg config.DB, log *logger.Logger) (*DB, error) {
	var (
		placeholder sq.PlaceholderFormat
		classifier  ErrorClassifier
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		placeholder, classifier = sq.Dollar, NewPostgresErrorClassifier()
	case config.DriverSQLite:
		placeholder, classifier = sq.Question, NewSQLiteErrorClassifier()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}

	conn, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewDB").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	// setup connections
	if cfg.Driver == config.DriverSQLite {
		// one writer at a time
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(4)
	}

	return wrapDB(conn, cfg.Driver, placeholder, classifier, log), nil
}

func wrapDB(conn *sql.DB, driver string, placeholder sq.PlaceholderFormat, classifier ErrorClassifier, log *logger.Logger) *DB {
	return &DB{
		DB:              conn,
		driver:          driver,
		builder:         sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassifier: classifier,
		logger:          log,
	}
}

// Driver returns the database/sql driver name the handle was opened with.
func (db *DB) Driver() string {
	return db.driver
}
