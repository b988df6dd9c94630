package kv

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/nero7007/Professional-To-Do-List/internal/filex"
	"github.com/nero7007/Professional-To-Do-List/internal/logging"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverBadger   = "badger"
	DriverMemory   = "memory"
)

// Options selects and configures a backend for Open.
type Options struct {
	Driver string
	// DSN is a file path for sqlite, a directory for badger and a
	// connection string for postgres and mysql. Ignored by memory.
	DSN        string
	SyncWrites bool
	Logger     logging.Logger
}

// Open connects to the configured backend and, for SQL backends, applies
// pending migrations.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case DriverSQLite:
		return openSQL(ctx, SQLiteDialect, opts.DSN)
	case DriverPostgres:
		return openSQL(ctx, PostgresDialect, opts.DSN)
	case DriverMySQL:
		return openSQL(ctx, MySQLDialect, opts.DSN)
	case DriverBadger:
		cfg := DefaultBadgerConfig(opts.DSN)
		cfg.SyncWrites = opts.SyncWrites
		cfg.Logger = opts.Logger
		return OpenBadger(cfg)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}

func openSQL(ctx context.Context, d Dialect, dsn string) (*SQLStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%s storage requires a dsn", d.Name)
	}
	if d.Name == SQLiteDialect.Name && isFileDSN(dsn) {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("failed to prepare sqlite storage: %w", err)
		}
	}

	db, err := sql.Open(d.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", d.Name, err)
	}
	if d.Name == SQLiteDialect.Name {
		// a single writer avoids SQLITE_BUSY inside Update transactions
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach %s storage: %w", d.Name, err)
	}

	if err := Migrate(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewSQLStore(db, d), nil
}

// isFileDSN reports whether a sqlite dsn names a plain file path rather
// than ":memory:" or a "file:" URI.
func isFileDSN(dsn string) bool {
	return dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}
