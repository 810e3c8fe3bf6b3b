package inspect

import (
	"context"
	"strconv"

	"github.com/hanatools/hanacli/internal/errs"
)

// SRSID looks up the spatial reference system identifier for one geometry
// column. The lookup assumes the column is registered in the geometry
// catalog — a missing row is surfaced as a query failure, not tolerated.
// No caching: geometry columns are rare enough that each one pays for its
// own round trip.
func (i *Inspector) SRSID(ctx context.Context, schema, object, column string) (string, error) {
	query := `SELECT SRS_ID
	FROM SYS.ST_GEOMETRY_COLUMNS
	WHERE SCHEMA_NAME = ? AND TABLE_NAME = ? AND COLUMN_NAME = ?`

	var srs int64
	if err := i.q.QueryRow(ctx, query, schema, object, column).Scan(&srs); err != nil {
		return "", errs.Wrap(errs.ErrKindQueryFailed,
			"geometry column "+column+" has no spatial reference system", err)
	}
	return strconv.FormatInt(srs, 10), nil
}
