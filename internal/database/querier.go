package database

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hanatools/hanacli/internal/errs"
)

// Row is a single result row.
type Row interface {
	Scan(dest ...any) error
}

// Rows is an abstraction over a database result set.
// Callers must always call Close() when done, even on error.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Columns() ([]string, error)
	Close()
	Err() error
}

// Querier executes parameterized queries against one backend. The catalog
// inspector and the mass converter depend only on this interface, never on a
// concrete driver.
type Querier interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
}

// --- database/sql adapter (HANA, SQLite, MySQL) ---

type sqlQuerier struct {
	db *sql.DB
}

// NewSQLQuerier wraps a *sql.DB as a Querier.
func NewSQLQuerier(db *sql.DB) Querier {
	return &sqlQuerier{db: db}
}

func (q *sqlQuerier) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "query failed", err)
	}
	return &sqlRows{rows: rows}, nil
}

func (q *sqlQuerier) QueryRow(ctx context.Context, query string, args ...any) Row {
	return q.db.QueryRowContext(ctx, query, args...)
}

type sqlRows struct {
	rows *sql.Rows
}

func (r *sqlRows) Next() bool                  { return r.rows.Next() }
func (r *sqlRows) Scan(dest ...any) error      { return r.rows.Scan(dest...) }
func (r *sqlRows) Columns() ([]string, error)  { return r.rows.Columns() }
func (r *sqlRows) Close()                      { r.rows.Close() }
func (r *sqlRows) Err() error                  { return r.rows.Err() }

// --- pgx adapter (PostgreSQL) ---

type pgxQuerier struct {
	pool *pgxpool.Pool
}

// NewPgxQuerier wraps a pgx pool as a Querier.
func NewPgxQuerier(pool *pgxpool.Pool) Querier {
	return &pgxQuerier{pool: pool}
}

func (q *pgxQuerier) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := q.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "query failed", err)
	}
	return &pgRows{rows: rows}, nil
}

func (q *pgxQuerier) QueryRow(ctx context.Context, query string, args ...any) Row {
	return q.pool.QueryRow(ctx, query, args...)
}

type pgRows struct {
	rows pgx.Rows
}

func (r *pgRows) Next() bool             { return r.rows.Next() }
func (r *pgRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *pgRows) Close()                 { r.rows.Close() }
func (r *pgRows) Err() error             { return r.rows.Err() }

func (r *pgRows) Columns() ([]string, error) {
	fields := r.rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names, nil
}
