package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultTimeout = 5 * time.Second
)

// Config selects the relational backend and its connection string. For
// sqlite the DSN is a file path.
type Config struct {
	Driver  string
	DSN     string
	Timeout time.Duration
}

// DB wraps the relational connection pool shared by the repositories.
type DB struct {
	sql    *sql.DB
	pool   *pgxpool.Pool // postgres only
	driver string
	logger zerolog.Logger
}

// Open connects to the configured backend and verifies it with a ping.
func Open(ctx context.Context, cfg Config, logger zerolog.Logger) (*DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	switch cfg.Driver {
	case "", DriverSQLite:
		return openSQLite(pingCtx, cfg.DSN, logger)
	case DriverPostgres:
		return openPostgres(pingCtx, cfg.DSN, logger)
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", cfg.Driver)
	}
}

func openSQLite(ctx context.Context, path string, logger zerolog.Logger) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlstore: empty sqlite path")
	}
	dsn := sqliteDSN(path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// WAL allows concurrent readers; writers are serialized by sqlite itself.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	logger.Debug().Str("path", path).Msg("sqlite connection established")
	return &DB{sql: db, driver: DriverSQLite, logger: logger}, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
}

func openPostgres(ctx context.Context, dsn string, logger zerolog.Logger) (*DB, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Debug().Str("host", pcfg.ConnConfig.Host).Str("database", pcfg.ConnConfig.Database).Msg("postgres connection established")
	return &DB{sql: stdlib.OpenDBFromPool(pool), pool: pool, driver: DriverPostgres, logger: logger}, nil
}

// Driver reports which backend is in use.
func (db *DB) Driver() string {
	return db.driver
}

// Ping checks that the backend is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.sql.PingContext(ctx)
}

func (db *DB) Close() error {
	err := db.sql.Close()
	if db.pool != nil {
		db.pool.Close()
	}
	return err
}

// rebind rewrites '?' placeholders into the '$n' form postgres expects.
// Queries in this package never contain a literal '?'.
func (db *DB) rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
