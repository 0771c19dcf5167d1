package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"coopledger/internal/log"
)

// ErrNotFound is returned by single-row lookups when the row is absent.
var ErrNotFound = sql.ErrNoRows

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// SQLiteRepository is the embedded store behind the ledger. It is opened
// once at startup and closed at shutdown.
type SQLiteRepository struct {
	db     *sqlx.DB
	dsn    string
	logger *log.Logger
	now    func() time.Time
}

// DSN builds the connection string for a database file with foreign keys on.
func DSN(dbPath string) string {
	return "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
}

func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentStorage)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := DSN(dbPath)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer; also keeps the per-connection pragmas on the only connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Info("Ledger database opened", log.FieldOperation, log.OpMigrate, log.FieldPath, dbPath)

	return &SQLiteRepository{
		db:     db,
		dsn:    dsn,
		logger: logger,
		now:    time.Now,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Reset deletes all data and recreates the schema from the migrations.
func (r *SQLiteRepository) Reset(ctx context.Context) error {
	if err := resetSchema(r.dsn); err != nil {
		return fmt.Errorf("reset schema: %w", err)
	}

	r.logger.WarnContext(ctx, "Ledger database reset", log.FieldOperation, log.OpReset)
	return nil
}

// inTx runs fn inside a single transaction, rolling back on any error.
func (r *SQLiteRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func rowsAffected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// IsNotFound reports whether err came from a lookup of a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
