package inspect

import (
	"context"
	"database/sql"

	"github.com/hanatools/hanacli/internal/errs"
)

// Field is one column of a table or view. Position is unique within an
// object and defines output order.
type Field struct {
	ColumnName string
	Position   int
	DataType   string // native catalog type name, e.g. NVARCHAR, ST_POINT
	Length     int64
	Scale      *int64
	Nullable   bool
	Default    *string
	Comment    *string

	// Key marks view columns the catalog flags as key attributes (they
	// carry an implicit index, so INDEX_TYPE is anything but NONE). Table
	// key membership comes from the constraint rows instead.
	Key bool
}

// Constraint is one primary-key column membership row. Tables only.
type Constraint struct {
	ColumnName string
	Position   int
}

// Parameter is one calculation-view or routine input parameter.
type Parameter struct {
	Name     string
	Position int
	DataType string
	Length   int64
	Scale    *int64
}

// GetTableFields returns the columns of the table identified by oid,
// in ordinal order. An empty result is not an error.
func (i *Inspector) GetTableFields(ctx context.Context, oid int64) ([]Field, error) {
	query := `SELECT COLUMN_NAME, POSITION, DATA_TYPE_NAME, LENGTH, SCALE,
	       IS_NULLABLE, DEFAULT_VALUE, COMMENTS
	FROM SYS.TABLE_COLUMNS
	WHERE TABLE_OID = ?
	ORDER BY POSITION`

	return i.scanFields(ctx, query, oid, false)
}

// GetViewFields returns the columns of the view identified by oid. View
// columns carry their key flag inline: the catalog marks key attributes
// with an implicit index, so INDEX_TYPE doubles as the key marker.
func (i *Inspector) GetViewFields(ctx context.Context, oid int64) ([]Field, error) {
	query := `SELECT COLUMN_NAME, POSITION, DATA_TYPE_NAME, LENGTH, SCALE,
	       IS_NULLABLE, DEFAULT_VALUE, COMMENTS, INDEX_TYPE
	FROM SYS.VIEW_COLUMNS
	WHERE VIEW_OID = ?
	ORDER BY POSITION`

	return i.scanFields(ctx, query, oid, true)
}

func (i *Inspector) scanFields(ctx context.Context, query string, oid int64, withKey bool) ([]Field, error) {
	rows, err := i.q.Query(ctx, query, oid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Field
	for rows.Next() {
		var f Field
		var nullable string
		var scale sql.NullInt64
		var def, comment, indexType sql.NullString
		dest := []any{&f.ColumnName, &f.Position, &f.DataType, &f.Length,
			&scale, &nullable, &def, &comment}
		if withKey {
			dest = append(dest, &indexType)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan column row", err)
		}
		f.Nullable = hanaBool(nullable)
		f.Key = indexType.Valid && indexType.String != "NONE"
		if scale.Valid {
			s := scale.Int64
			f.Scale = &s
		}
		if def.Valid {
			d := def.String
			f.Default = &d
		}
		if comment.Valid {
			c := comment.String
			f.Comment = &c
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "read column rows", err)
	}
	return out, nil
}

// GetConstraints returns the primary-key column membership rows for a table.
// An empty result is legitimate — not every table has a primary key.
func (i *Inspector) GetConstraints(ctx context.Context, schema, table string) ([]Constraint, error) {
	query := `SELECT COLUMN_NAME, POSITION
	FROM SYS.CONSTRAINTS
	WHERE SCHEMA_NAME = ? AND TABLE_NAME = ? AND IS_PRIMARY_KEY = 'TRUE'
	ORDER BY POSITION`

	rows, err := i.q.Query(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Constraint
	for rows.Next() {
		var c Constraint
		if err := rows.Scan(&c.ColumnName, &c.Position); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan constraint row", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "read constraint rows", err)
	}
	return out, nil
}

// GetViewParameters returns a view's input parameters, in ordinal order.
// HANA 1 catalogs have no view parameters; the result is empty there.
func (i *Inspector) GetViewParameters(ctx context.Context, oid int64) ([]Parameter, error) {
	caps, err := i.caps(ctx)
	if err != nil {
		return nil, err
	}
	if !caps.ViewParameters {
		return nil, nil
	}

	query := `SELECT PARAMETER_NAME, POSITION, DATA_TYPE_NAME, LENGTH, SCALE
	FROM SYS.VIEW_PARAMETERS
	WHERE VIEW_OID = ?
	ORDER BY POSITION`

	return i.scanParameters(ctx, query, oid)
}

// GetProcedureParameters returns a procedure's parameters, in ordinal order.
func (i *Inspector) GetProcedureParameters(ctx context.Context, oid int64) ([]Parameter, error) {
	query := `SELECT PARAMETER_NAME, POSITION, DATA_TYPE_NAME, LENGTH, SCALE
	FROM SYS.PROCEDURE_PARAMETERS
	WHERE PROCEDURE_OID = ?
	ORDER BY POSITION`

	return i.scanParameters(ctx, query, oid)
}

// GetFunctionParameters returns a function's parameters, in ordinal order.
func (i *Inspector) GetFunctionParameters(ctx context.Context, oid int64) ([]Parameter, error) {
	query := `SELECT PARAMETER_NAME, POSITION, DATA_TYPE_NAME, LENGTH, SCALE
	FROM SYS.FUNCTION_PARAMETERS
	WHERE FUNCTION_OID = ?
	ORDER BY POSITION`

	return i.scanParameters(ctx, query, oid)
}

func (i *Inspector) scanParameters(ctx context.Context, query string, oid int64) ([]Parameter, error) {
	rows, err := i.q.Query(ctx, query, oid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Parameter
	for rows.Next() {
		var p Parameter
		var scale sql.NullInt64
		if err := rows.Scan(&p.Name, &p.Position, &p.DataType, &p.Length, &scale); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan parameter row", err)
		}
		if scale.Valid {
			s := scale.Int64
			p.Scale = &s
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "read parameter rows", err)
	}
	return out, nil
}
