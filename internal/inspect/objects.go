package inspect

import (
	"context"
	"database/sql"

	"github.com/hanatools/hanacli/internal/errs"
)

// ObjectKind names the catalog object families the inspector understands.
type ObjectKind string

const (
	KindTable     ObjectKind = "table"
	KindView      ObjectKind = "view"
	KindProcedure ObjectKind = "procedure"
	KindFunction  ObjectKind = "function"
)

// Object describes one catalog object (table, view, procedure or function).
// Fetched fresh per request; never mutated afterwards.
type Object struct {
	SchemaName string
	ObjectName string
	OID        int64

	// Kind-specific flags. Only the ones applying to the object's kind
	// carry meaning; the rest stay at their zero value.
	HasPrimaryKey bool // tables
	IsColumnTable bool // tables
	IsColumnView  bool // views
	HasParameters bool // views (HANA 2+ catalogs only)
	IsValid       bool // procedures, functions

	// CreateTime is empty on HANA 1 catalogs.
	CreateTime string

	Comments string
}

// hanaBool converts the catalog's 'TRUE'/'FALSE' flags.
func hanaBool(s string) bool {
	return s == "TRUE"
}

// GetTable returns the descriptor rows for tables matching schema (LIKE
// pattern) and name. Zero rows is a NotFound error naming the object kind.
func (i *Inspector) GetTable(ctx context.Context, schema, name string) ([]Object, error) {
	caps, err := i.caps(ctx)
	if err != nil {
		return nil, err
	}

	cols := "SCHEMA_NAME, TABLE_NAME, TABLE_OID, IS_COLUMN_TABLE, HAS_PRIMARY_KEY, COMMENTS"
	if caps.CreateTime {
		cols += ", TO_NVARCHAR(CREATE_TIME)"
	}
	query := "SELECT " + cols + ` FROM SYS.TABLES
	WHERE SCHEMA_NAME LIKE ? AND TABLE_NAME = ?
	ORDER BY SCHEMA_NAME, TABLE_NAME`

	rows, err := i.q.Query(ctx, query, schema, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Object
	for rows.Next() {
		var o Object
		var isColumn, hasPK string
		var comments sql.NullString
		dest := []any{&o.SchemaName, &o.ObjectName, &o.OID, &isColumn, &hasPK, &comments}
		if caps.CreateTime {
			var created sql.NullString
			if err := rows.Scan(append(dest, &created)...); err != nil {
				return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan table descriptor", err)
			}
			o.CreateTime = created.String
		} else {
			if err := rows.Scan(dest...); err != nil {
				return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan table descriptor", err)
			}
		}
		o.IsColumnTable = hanaBool(isColumn)
		o.HasPrimaryKey = hanaBool(hasPK)
		o.Comments = comments.String
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "read table descriptors", err)
	}
	if len(out) == 0 {
		return nil, errs.Newf(errs.ErrKindNotFound, "table %s not found", name)
	}
	return out, nil
}

// GetView returns the descriptor rows for views matching schema and name.
func (i *Inspector) GetView(ctx context.Context, schema, name string) ([]Object, error) {
	caps, err := i.caps(ctx)
	if err != nil {
		return nil, err
	}

	cols := "SCHEMA_NAME, VIEW_NAME, VIEW_OID, IS_COLUMN_VIEW, COMMENTS"
	if caps.ViewParameters {
		cols += ", HAS_PARAMETERS"
	}
	query := "SELECT " + cols + ` FROM SYS.VIEWS
	WHERE SCHEMA_NAME LIKE ? AND VIEW_NAME = ?
	ORDER BY SCHEMA_NAME, VIEW_NAME`

	rows, err := i.q.Query(ctx, query, schema, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Object
	for rows.Next() {
		var o Object
		var isColumn string
		var comments sql.NullString
		dest := []any{&o.SchemaName, &o.ObjectName, &o.OID, &isColumn, &comments}
		if caps.ViewParameters {
			var hasParams string
			if err := rows.Scan(append(dest, &hasParams)...); err != nil {
				return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan view descriptor", err)
			}
			o.HasParameters = hanaBool(hasParams)
		} else {
			if err := rows.Scan(dest...); err != nil {
				return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan view descriptor", err)
			}
		}
		o.IsColumnView = hanaBool(isColumn)
		o.Comments = comments.String
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "read view descriptors", err)
	}
	if len(out) == 0 {
		return nil, errs.Newf(errs.ErrKindNotFound, "view %s not found", name)
	}
	return out, nil
}

// GetProcedure returns the descriptor rows for procedures matching schema
// and name.
func (i *Inspector) GetProcedure(ctx context.Context, schema, name string) ([]Object, error) {
	return i.getRoutine(ctx, schema, name, KindProcedure)
}

// GetFunction returns the descriptor rows for functions matching schema
// and name.
func (i *Inspector) GetFunction(ctx context.Context, schema, name string) ([]Object, error) {
	return i.getRoutine(ctx, schema, name, KindFunction)
}

func (i *Inspector) getRoutine(ctx context.Context, schema, name string, kind ObjectKind) ([]Object, error) {
	caps, err := i.caps(ctx)
	if err != nil {
		return nil, err
	}

	table, nameCol, oidCol := "SYS.PROCEDURES", "PROCEDURE_NAME", "PROCEDURE_OID"
	if kind == KindFunction {
		table, nameCol, oidCol = "SYS.FUNCTIONS", "FUNCTION_NAME", "FUNCTION_OID"
	}

	cols := "SCHEMA_NAME, " + nameCol + ", " + oidCol + ", IS_VALID"
	if caps.CreateTime {
		cols += ", TO_NVARCHAR(CREATE_TIME)"
	}
	query := "SELECT " + cols + " FROM " + table +
		" WHERE SCHEMA_NAME LIKE ? AND " + nameCol + " = ?" +
		" ORDER BY SCHEMA_NAME, " + nameCol

	rows, err := i.q.Query(ctx, query, schema, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Object
	for rows.Next() {
		var o Object
		var isValid string
		dest := []any{&o.SchemaName, &o.ObjectName, &o.OID, &isValid}
		if caps.CreateTime {
			var created sql.NullString
			if err := rows.Scan(append(dest, &created)...); err != nil {
				return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan routine descriptor", err)
			}
			o.CreateTime = created.String
		} else {
			if err := rows.Scan(dest...); err != nil {
				return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan routine descriptor", err)
			}
		}
		o.IsValid = hanaBool(isValid)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "read routine descriptors", err)
	}
	if len(out) == 0 {
		return nil, errs.Newf(errs.ErrKindNotFound, "%s %s not found", string(kind), name)
	}
	return out, nil
}

// SearchTables returns tables matching a wildcard pattern, bounded by limit.
// Used by the mass converter's candidate listing phase.
func (i *Inspector) SearchTables(ctx context.Context, schema, pattern string, limit int) ([]Object, error) {
	if pattern == "" {
		pattern = "%"
	}
	if limit <= 0 {
		limit = 200
	}

	query := `SELECT SCHEMA_NAME, TABLE_NAME, TABLE_OID, HAS_PRIMARY_KEY, COMMENTS
	FROM SYS.TABLES
	WHERE SCHEMA_NAME LIKE ? AND TABLE_NAME LIKE ?
	ORDER BY SCHEMA_NAME, TABLE_NAME
	LIMIT ?`

	rows, err := i.q.Query(ctx, query, schema, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Object
	for rows.Next() {
		var o Object
		var hasPK string
		var comments sql.NullString
		if err := rows.Scan(&o.SchemaName, &o.ObjectName, &o.OID, &hasPK, &comments); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan table row", err)
		}
		o.HasPrimaryKey = hanaBool(hasPK)
		o.Comments = comments.String
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "search tables", err)
	}
	return out, nil
}
