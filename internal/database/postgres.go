package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hanatools/hanacli/internal/errs"
)

// postgresClient is the PostgreSQL backend using a pgx pool.
type postgresClient struct {
	baseClient
	pool *pgxpool.Pool
}

func (c *postgresClient) Kind() Kind { return KindPostgres }

func (c *postgresClient) Connect(ctx context.Context) error {
	dsn := c.profile.DSN
	if dsn == "" {
		sslMode := "disable"
		if c.profile.Encrypt {
			sslMode = "require"
		}
		port := c.profile.Port
		if port == 0 {
			port = 5432
		}
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.profile.Host, port, c.profile.User, c.profile.Password,
			c.profile.Database, sslMode)
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return errs.Wrap(errs.ErrKindUnsupportedConfig, "invalid postgres config", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return errs.Wrap(errs.ErrKindConnectionFailed, "cannot create postgres pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return errs.Wrap(errs.ErrKindConnectionFailed, "cannot reach postgres", err)
	}

	c.pool = pool

	// Session-level schema scoping: listing and inspection queries run
	// unqualified against the search path.
	if schema := c.SchemaCalculation(); schema != "%" {
		if _, err := pool.Exec(ctx, fmt.Sprintf("SET search_path TO %q", schema)); err != nil {
			pool.Close()
			return errs.Wrap(errs.ErrKindQueryFailed, "set search_path failed", err)
		}
	}
	return nil
}

func (c *postgresClient) Disconnect(_ context.Context) error {
	if c.pool != nil {
		c.pool.Close()
	}
	return nil
}

func (c *postgresClient) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

func (c *postgresClient) Querier() Querier {
	return NewPgxQuerier(c.pool)
}

// ListTables aliases pg_catalog rows back to the common TableRow shape.
// The table OID comes from pg_class and comments from obj_description.
func (c *postgresClient) ListTables(ctx context.Context) ([]TableRow, error) {
	query := `SELECT n.nspname  AS schema_name,
	       c.relname  AS table_name,
	       c.oid      AS table_oid,
	       COALESCE(obj_description(c.oid, 'pg_class'), '') AS comments
	FROM pg_class c
	JOIN pg_namespace n ON n.oid = c.relnamespace
	WHERE c.relkind = 'r'
	  AND n.nspname LIKE $1
	  AND c.relname LIKE $2
	ORDER BY n.nspname, c.relname
	LIMIT $3`

	schema := c.AdjustWildcard(c.SchemaCalculation())
	table := c.AdjustWildcard(c.prompts.Table)
	if table == "" {
		table = "%"
	}

	rows, err := c.pool.Query(ctx, query, schema, table, c.limit())
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "list tables failed", err)
	}
	defer rows.Close()

	var out []TableRow
	for rows.Next() {
		var r TableRow
		var oid uint32
		if err := rows.Scan(&r.SchemaName, &r.TableName, &oid, &r.Comments); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan table row", err)
		}
		r.TableOID = int64(oid)
		out = append(out, r)
	}
	return out, rows.Err()
}
