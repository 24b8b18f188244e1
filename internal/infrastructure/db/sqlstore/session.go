package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
)

// querier is the subset of *sql.DB, *sql.Conn and *sql.Tx used by the
// repositories.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sessionKey struct{}

// Session is a single connection held for the duration of one request.
type Session struct {
	conn *sql.Conn
}

// Acquire takes a dedicated connection from the pool. The caller must call
// Release when the request completes, whatever its outcome.
func (db *DB) Acquire(ctx context.Context) (*Session, error) {
	conn, err := db.sql.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &Session{conn: conn}, nil
}

// Release returns the connection to the pool. Safe to call more than once.
func (s *Session) Release() error {
	if s == nil || s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// Active reports whether the session still holds its connection.
func (s *Session) Active() bool {
	return s != nil && s.conn != nil
}

// WithSession returns a context carrying s. Repositories called with that
// context run on the session's connection.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session bound to ctx, if any.
func SessionFrom(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

// querier returns the request session bound to ctx, or the pool when none is.
func (db *DB) querier(ctx context.Context) querier {
	if s := SessionFrom(ctx); s.Active() {
		return s.conn
	}
	return db.sql
}

func (db *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.querier(ctx).ExecContext(ctx, db.rebind(query), args...)
}

func (db *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.querier(ctx).QueryContext(ctx, db.rebind(query), args...)
}

func (db *DB) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.querier(ctx).QueryRowContext(ctx, db.rebind(query), args...)
}

// Transaction runs fn inside a transaction on the pool, rolling back when fn
// fails.
func (db *DB) Transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
