package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // register mysql driver

	"github.com/hanatools/hanacli/internal/errs"
)

// mysqlClient is the MySQL backend using go-sql-driver.
type mysqlClient struct {
	baseClient
	db *sql.DB
}

func (c *mysqlClient) Kind() Kind { return KindMySQL }

func (c *mysqlClient) Connect(ctx context.Context) error {
	dsn := c.profile.DSN
	if dsn == "" {
		port := c.profile.Port
		if port == 0 {
			port = 3306
		}
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			c.profile.User, c.profile.Password, c.profile.Host, port, c.profile.Database)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return errs.Wrap(errs.ErrKindConnectionFailed, "cannot open mysql connection", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return errs.Wrap(errs.ErrKindConnectionFailed, "cannot reach mysql", err)
	}

	c.db = db
	return nil
}

func (c *mysqlClient) Disconnect(_ context.Context) error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *mysqlClient) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *mysqlClient) Querier() Querier {
	return NewSQLQuerier(c.db)
}

// SchemaCalculation on MySQL falls back to the connected database name —
// MySQL schemas and databases are the same thing.
func (c *mysqlClient) SchemaCalculation() string {
	schema := c.prompts.Schema
	if schema == "" || schema == CurrentSchemaSentinel {
		if c.profile != nil && c.profile.Schema != "" {
			return c.profile.Schema
		}
		if c.profile != nil && c.profile.Database != "" {
			return c.profile.Database
		}
		return "public"
	}
	return c.baseClient.SchemaCalculation()
}

// ListTables aliases INFORMATION_SCHEMA.TABLES to the common TableRow shape.
// MySQL has no table OID; the comment column maps onto Comments.
func (c *mysqlClient) ListTables(ctx context.Context) ([]TableRow, error) {
	query := `SELECT TABLE_SCHEMA, TABLE_NAME, COALESCE(TABLE_COMMENT, '')
	FROM INFORMATION_SCHEMA.TABLES
	WHERE TABLE_TYPE = 'BASE TABLE'
	  AND TABLE_SCHEMA LIKE ?
	  AND TABLE_NAME LIKE ?
	ORDER BY TABLE_SCHEMA, TABLE_NAME
	LIMIT ?`

	schema := c.AdjustWildcard(c.SchemaCalculation())
	table := c.AdjustWildcard(c.prompts.Table)
	if table == "" {
		table = "%"
	}

	rows, err := c.db.QueryContext(ctx, query, schema, table, c.limit())
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "list tables failed", err)
	}
	defer rows.Close()

	var out []TableRow
	for rows.Next() {
		var r TableRow
		if err := rows.Scan(&r.SchemaName, &r.TableName, &r.Comments); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan table row", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
