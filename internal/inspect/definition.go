package inspect

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hanatools/hanacli/internal/errs"
)

// GetObjectDefinition returns the raw CREATE statement for one object via
// the server-side GET_OBJECT_DEFINITION call. The result set's column
// layout differs between releases, so the statement column is located by
// name rather than position.
func (i *Inspector) GetObjectDefinition(ctx context.Context, schema, name string) (string, error) {
	rows, err := i.q.Query(ctx, `CALL GET_OBJECT_DEFINITION(?, ?)`, schema, name)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", errs.Wrap(errs.ErrKindQueryFailed, "read object definition", err)
		}
		return "", errs.Newf(errs.ErrKindNotFound, "definition for %s not found", name)
	}

	cols, err := rows.Columns()
	if err != nil {
		return "", errs.Wrap(errs.ErrKindQueryFailed, "read object definition", err)
	}

	stmtIdx := -1
	for idx, col := range cols {
		if strings.EqualFold(col, "OBJECT_CREATION_STATEMENT") {
			stmtIdx = idx
			break
		}
	}
	if stmtIdx < 0 {
		return "", errs.Newf(errs.ErrKindNotFound, "definition for %s not found", name)
	}

	dest := make([]any, len(cols))
	var stmt sql.NullString
	for idx := range dest {
		if idx == stmtIdx {
			dest[idx] = &stmt
			continue
		}
		dest[idx] = new(any)
	}
	if err := rows.Scan(dest...); err != nil {
		return "", errs.Wrap(errs.ErrKindQueryFailed, "scan object definition", err)
	}
	return stmt.String, nil
}

// RemoveCSTypes strips column-store internal type clauses (CS_FIXED,
// CS_RAW, …) from a raw CREATE statement. Best effort by design: the
// M_CS_COLUMNS catalog is absent on some deployment targets, so any lookup
// failure is logged at debug level and the input returned unchanged.
func (i *Inspector) RemoveCSTypes(ctx context.Context, definition, schema, table string) string {
	query := `SELECT COLUMN_NAME, INTERNAL_ATTRIBUTE_TYPE
	FROM SYS.M_CS_COLUMNS
	WHERE SCHEMA_NAME = ? AND TABLE_NAME = ?`

	rows, err := i.q.Query(ctx, query, schema, table)
	if err != nil {
		i.log.Debugf("column store type lookup failed, keeping definition as-is: %v", err)
		return definition
	}
	defer rows.Close()

	out := definition
	for rows.Next() {
		var column string
		var attr sql.NullString
		if err := rows.Scan(&column, &attr); err != nil {
			i.log.Debugf("column store type lookup failed, keeping definition as-is: %v", err)
			return definition
		}
		if attr.Valid && strings.HasPrefix(attr.String, "CS_") {
			out = strings.ReplaceAll(out, " "+attr.String, "")
		}
	}
	if err := rows.Err(); err != nil {
		i.log.Debugf("column store type lookup failed, keeping definition as-is: %v", err)
		return definition
	}
	return out
}
