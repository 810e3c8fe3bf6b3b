package database

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/hanatools/hanacli/internal/errs"
)

// sqliteClient is the SQLite backend using the pure-Go modernc driver.
type sqliteClient struct {
	baseClient
	db *sql.DB
}

func (c *sqliteClient) Kind() Kind { return KindSQLite }

func (c *sqliteClient) Connect(ctx context.Context) error {
	dsn := c.profile.DSN
	if dsn == "" {
		dsn = c.profile.Database
	}
	if dsn == "" {
		return errs.New(errs.ErrKindUnsupportedConfig, "sqlite profile requires a dsn or database path")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return errs.Wrap(errs.ErrKindConnectionFailed, "cannot open sqlite database", err)
	}
	// modernc sqlite serializes writes; a single connection keeps locking simple.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return errs.Wrap(errs.ErrKindConnectionFailed, "cannot open sqlite database", err)
	}

	c.db = db
	return nil
}

func (c *sqliteClient) Disconnect(_ context.Context) error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *sqliteClient) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *sqliteClient) Querier() Querier {
	return NewSQLQuerier(c.db)
}

// ListTables reads sqlite_master. SQLite has no schema, OID or comment
// equivalents: SchemaName is fixed to "main" and the other fields stay empty.
func (c *sqliteClient) ListTables(ctx context.Context) ([]TableRow, error) {
	query := `SELECT name
	FROM sqlite_master
	WHERE type = 'table'
	  AND name NOT LIKE 'sqlite_%'
	  AND name LIKE ?
	ORDER BY name
	LIMIT ?`

	table := c.AdjustWildcard(c.prompts.Table)
	if table == "" {
		table = "%"
	}

	rows, err := c.db.QueryContext(ctx, query, table, c.limit())
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "list tables failed", err)
	}
	defer rows.Close()

	var out []TableRow
	for rows.Next() {
		var r TableRow
		if err := rows.Scan(&r.TableName); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan table row", err)
		}
		r.SchemaName = "main"
		out = append(out, r)
	}
	return out, rows.Err()
}
